package services

// CostSummary is the pre-markup rollup of a project's items. GrandTotal here
// is the base cost handed to ApplyMarkups; the summary owns no knowledge of
// markups. It is derived on every read and never stored.
type CostSummary struct {
	MaterialTotal      float64            `json:"material_total"`
	LaborTotal         float64            `json:"labor_total"`
	SupervisionTotal   float64            `json:"supervision_total"`
	DirectTotal        float64            `json:"direct_total"`
	SubcontractorTotal float64            `json:"subcontractor_total"`
	GrandTotal         float64            `json:"grand_total"`
	Categories         map[string]float64 `json:"categories"`
	ItemCount          int                `json:"item_count"`
}

// SummarizeLineItems accumulates the five cost-kind totals and a
// category -> total map over every BOQ line. Categories outside the
// advisory closed set are still bucketed verbatim.
func SummarizeLineItems(items []LineItem, labor LaborTable) CostSummary {
	summary := CostSummary{Categories: make(map[string]float64)}

	for _, item := range items {
		cost := CalcLineCost(item, labor)
		summary.MaterialTotal += cost.Material
		summary.LaborTotal += cost.Labor
		summary.SupervisionTotal += cost.Supervision
		summary.DirectTotal += cost.Direct
		summary.SubcontractorTotal += cost.Subcontractor
		summary.Categories[item.Category] += cost.Total
		summary.ItemCount++
	}

	summary.GrandTotal = summary.MaterialTotal + summary.LaborTotal +
		summary.SupervisionTotal + summary.DirectTotal + summary.SubcontractorTotal
	return summary
}

// SummarizeItemized rolls up standard-mode entries. Each variant maps onto
// one cost kind: materials -> material, manpower -> labor, supervision ->
// supervision, assets and logistics -> direct, subcontractors ->
// subcontractor. Category buckets are keyed per variant kind, except
// materials which bucket under their own category column.
func SummarizeItemized(in ItemizedInputs, labor LaborTable) CostSummary {
	summary := CostSummary{Categories: make(map[string]float64)}

	for _, m := range in.Manpower {
		cost := CalcManpowerCost(m, labor)
		summary.LaborTotal += cost
		summary.Categories["Manpower"] += cost
		summary.ItemCount++
	}
	for _, a := range in.Assets {
		cost := CalcAssetCost(a)
		summary.DirectTotal += cost
		summary.Categories["Assets"] += cost
		summary.ItemCount++
	}
	for _, m := range in.Materials {
		cost := CalcMaterialCost(m)
		summary.MaterialTotal += cost
		category := m.Category
		if category == "" {
			category = "Materials"
		}
		summary.Categories[category] += cost
		summary.ItemCount++
	}
	for _, s := range in.Subcontractors {
		cost := CalcSubcontractorCost(s)
		summary.SubcontractorTotal += cost
		summary.Categories["Subcontractors"] += cost
		summary.ItemCount++
	}
	for _, s := range in.Supervision {
		cost := CalcSupervisionCost(s, labor)
		summary.SupervisionTotal += cost
		summary.Categories["Supervision"] += cost
		summary.ItemCount++
	}
	for _, l := range in.Logistics {
		cost := CalcLogisticsCost(l)
		summary.DirectTotal += cost
		summary.Categories["Logistics"] += cost
		summary.ItemCount++
	}

	summary.GrandTotal = summary.MaterialTotal + summary.LaborTotal +
		summary.SupervisionTotal + summary.DirectTotal + summary.SubcontractorTotal
	return summary
}

// CategoryPercent returns a category's share of the grand total as a
// percentage, reporting 0 rather than NaN when the total is zero.
func CategoryPercent(categoryTotal, grandTotal float64) float64 {
	if grandTotal == 0 {
		return 0
	}
	return (categoryTotal / grandTotal) * 100
}
