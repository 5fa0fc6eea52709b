package services

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CostConfig holds the seven percentage knobs applied on top of the base
// cost. Overheads and profit are grossed-up margins; the other five are
// simple percentages of base cost.
type CostConfig struct {
	OverheadsPercent float64 `json:"overheads_percent"`
	RiskPercent      float64 `json:"risk_percent"`
	PMPercent        float64 `json:"pm_percent"`
	BondPercent      float64 `json:"bond_percent"`
	InsurancePercent float64 `json:"insurance_percent"`
	WarrantyPercent  float64 `json:"warranty_percent"`
	ProfitPercent    float64 `json:"profit_percent"`
}

// Validate range-checks every knob to [0, 100). Values at or above 100 would
// make the gross-up denominator zero or negative, so they are rejected here
// rather than surfacing as non-finite totals.
func (c CostConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.OverheadsPercent, validation.Min(0.0), validation.Max(100.0).Exclusive()),
		validation.Field(&c.RiskPercent, validation.Min(0.0), validation.Max(100.0).Exclusive()),
		validation.Field(&c.PMPercent, validation.Min(0.0), validation.Max(100.0).Exclusive()),
		validation.Field(&c.BondPercent, validation.Min(0.0), validation.Max(100.0).Exclusive()),
		validation.Field(&c.InsurancePercent, validation.Min(0.0), validation.Max(100.0).Exclusive()),
		validation.Field(&c.WarrantyPercent, validation.Min(0.0), validation.Max(100.0).Exclusive()),
		validation.Field(&c.ProfitPercent, validation.Min(0.0), validation.Max(100.0).Exclusive()),
	)
}

// MarkupBreakdown is the full pricing chain, every intermediate amount
// included. Exporters and comparison views display each line, so nothing
// collapses into the grand total.
type MarkupBreakdown struct {
	BaseCost            float64 `json:"base_cost"`
	OverheadsCost       float64 `json:"overheads_cost"`
	RiskContingencyCost float64 `json:"risk_contingency_cost"`
	PMGeneralsCost      float64 `json:"pm_generals_cost"`
	PerformanceBondCost float64 `json:"performance_bond_cost"`
	InsuranceCost       float64 `json:"insurance_cost"`
	WarrantyCost        float64 `json:"warranty_cost"`
	Subtotal            float64 `json:"subtotal"`
	ProfitAmount        float64 `json:"profit_amount"`
	GrandTotal          float64 `json:"grand_total"`
}

// GrossUp returns the add-on amount such that the result after adding it
// contains p percent of itself: x/(1-p/100) - x. This is margin-on-price,
// not a simple x*p/100 addition. Callers must range-check p < 100 first.
func GrossUp(x, p float64) float64 {
	return x/(1-p/100) - x
}

// ApplyMarkups derives the full markup chain from a base cost. The
// computation order is fixed: the six base-cost markups feed the subtotal,
// and profit is grossed up on that subtotal, not on the base.
func ApplyMarkups(baseCost float64, cfg CostConfig) (MarkupBreakdown, error) {
	if err := cfg.Validate(); err != nil {
		return MarkupBreakdown{}, fmt.Errorf("invalid cost config: %w", err)
	}

	b := MarkupBreakdown{BaseCost: baseCost}
	b.OverheadsCost = GrossUp(baseCost, cfg.OverheadsPercent)
	b.RiskContingencyCost = baseCost * cfg.RiskPercent / 100
	b.PMGeneralsCost = baseCost * cfg.PMPercent / 100
	b.PerformanceBondCost = baseCost * cfg.BondPercent / 100
	b.InsuranceCost = baseCost * cfg.InsurancePercent / 100
	b.WarrantyCost = baseCost * cfg.WarrantyPercent / 100

	b.Subtotal = baseCost + b.OverheadsCost + b.RiskContingencyCost +
		b.PMGeneralsCost + b.PerformanceBondCost + b.InsuranceCost + b.WarrantyCost

	b.ProfitAmount = GrossUp(b.Subtotal, cfg.ProfitPercent)
	b.GrandTotal = b.Subtotal + b.ProfitAmount
	return b, nil
}
