package services

import "fmt"

// ProjectState is the owned, by-value snapshot of one project's inputs.
// The engine never mutates it; every recalculation is a pure function of
// the current snapshot, so it can run on every edit with no side effects.
type ProjectState struct {
	ID        string
	Name      string
	Client    string
	Currency  string
	Mode      string // ModeStandard or ModeBOQ
	StartDate string // ISO date, empty when unset
	EndDate   string
	Config    CostConfig
	Labor     []LaborRecord
	LineItems []LineItem
	Itemized  ItemizedInputs
	Phases    []Phase
}

// Results is the flat record handed to document exporters and summary UI:
// every intermediate markup amount plus the aggregate quantities.
type Results struct {
	ProjectName        string             `json:"project_name"`
	Currency           string             `json:"currency"`
	Mode               string             `json:"mode"`
	Summary            CostSummary        `json:"summary"`
	Markups            MarkupBreakdown    `json:"markups"`
	CategoryShares     map[string]float64 `json:"category_shares"`
	TotalAssetUnits    float64            `json:"total_asset_units"`
	TotalManpowerHours float64            `json:"total_manpower_hours"`
	DurationDays       int                `json:"duration_days"`
	Phases             []PhaseDuration    `json:"phases,omitempty"`
	CostPerAssetUnit   float64            `json:"cost_per_asset_unit"`
}

// BuildResults runs the full pipeline for a project snapshot: the
// mode-specific rollup, the markup chain, and the aggregate quantities.
func BuildResults(state ProjectState) (Results, error) {
	labor := NewLaborTable(state.Labor)

	var summary CostSummary
	switch state.Mode {
	case ModeBOQ:
		summary = SummarizeLineItems(state.LineItems, labor)
	case ModeStandard, "":
		summary = SummarizeItemized(state.Itemized, labor)
	default:
		return Results{}, fmt.Errorf("unknown project mode %q", state.Mode)
	}

	markups, err := ApplyMarkups(summary.GrandTotal, state.Config)
	if err != nil {
		return Results{}, err
	}

	res := Results{
		ProjectName: state.Name,
		Currency:    state.Currency,
		Mode:        state.Mode,
		Summary:     summary,
		Markups:     markups,
		Phases:      PhaseDurations(state.Phases),
	}

	res.CategoryShares = make(map[string]float64, len(summary.Categories))
	for category, total := range summary.Categories {
		res.CategoryShares[category] = CategoryPercent(total, summary.GrandTotal)
	}

	switch state.Mode {
	case ModeBOQ:
		for _, item := range state.LineItems {
			res.TotalManpowerHours += sanitize(item.LaborHours) + sanitize(item.SupervisionHours)
		}
	default:
		for _, m := range state.Itemized.Manpower {
			res.TotalManpowerHours += sanitize(m.Quantity) * sanitize(m.Hours)
		}
		for _, s := range state.Itemized.Supervision {
			res.TotalManpowerHours += sanitize(s.Hours)
		}
		for _, a := range state.Itemized.Assets {
			res.TotalAssetUnits += sanitize(a.Quantity)
		}
	}

	if res.TotalAssetUnits > 0 {
		res.CostPerAssetUnit = markups.GrandTotal / res.TotalAssetUnits
	}

	if start, end, ok := parseDateRange(state.StartDate, state.EndDate); ok {
		res.DurationDays = DurationDays(start, end)
	}

	return res, nil
}
