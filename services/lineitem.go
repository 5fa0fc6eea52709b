package services

import "math"

// LineItem is one row of a BOQ: quantity plus per-unit cost fields and
// optional labor/supervisor references.
type LineItem struct {
	ID                string
	Category          string
	Description       string
	UOM               string
	Quantity          float64
	UnitMaterialCost  float64
	LaborID           string
	LaborHours        float64
	SupervisorID      string
	SupervisionHours  float64
	DirectCost        float64 // per unit
	SubcontractorCost float64 // per unit
}

// LineCost holds the derived costs of a single line item.
type LineCost struct {
	Material      float64
	Labor         float64
	Supervision   float64
	Direct        float64
	Subcontractor float64
	Total         float64
}

// CalcLineCost computes the derived costs for a BOQ line item.
//
// Direct and subcontractor costs here are per-unit rates multiplied by
// quantity. That is NOT true for the itemized entries in itemized.go, where
// subcontractor/logistics amounts are already totals. The two rules must
// stay separate.
//
// Malformed numeric inputs (NaN, negative) zero the affected contribution
// rather than erroring; the import validator rejects bad data before it
// reaches this calculator.
func CalcLineCost(item LineItem, labor LaborTable) LineCost {
	var c LineCost

	qty := sanitize(item.Quantity)
	c.Material = qty * sanitize(item.UnitMaterialCost)

	if item.LaborID != "" && item.LaborHours > 0 {
		rate := EffectiveHourlyRate(labor[item.LaborID], BOQMonthlyHours)
		c.Labor = sanitize(item.LaborHours) * rate
	}
	if item.SupervisorID != "" && item.SupervisionHours > 0 {
		rate := EffectiveHourlyRate(labor[item.SupervisorID], BOQMonthlyHours)
		c.Supervision = sanitize(item.SupervisionHours) * rate
	}

	c.Direct = qty * sanitize(item.DirectCost)
	c.Subcontractor = qty * sanitize(item.SubcontractorCost)

	c.Total = c.Material + c.Labor + c.Supervision + c.Direct + c.Subcontractor
	return c
}

// sanitize maps NaN and negative values to 0 so a single bad cell cannot
// poison a whole rollup.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
