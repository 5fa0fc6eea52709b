package services

import (
	"math"
	"testing"
)

func TestBuildResults_BOQMode(t *testing.T) {
	state := ProjectState{
		Name:      "Warehouse Retrofit",
		Currency:  "USD",
		Mode:      ModeBOQ,
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		Config:    CostConfig{OverheadsPercent: 15, ProfitPercent: 10},
		Labor: []LaborRecord{
			{ID: "lab1", Role: "Electrician", HourlyRate: 50},
			{ID: "lab2", Role: "Supervisor", MonthlySalary: 4160},
		},
		LineItems: summaryFixtureItems(),
	}

	res, err := BuildResults(state)
	if err != nil {
		t.Fatalf("BuildResults: %v", err)
	}

	if math.Abs(res.Summary.GrandTotal-530) > 0.001 {
		t.Errorf("Summary.GrandTotal = %v, want 530", res.Summary.GrandTotal)
	}
	if math.Abs(res.Markups.BaseCost-530) > 0.001 {
		t.Errorf("Markups.BaseCost = %v, want 530", res.Markups.BaseCost)
	}
	if res.Markups.GrandTotal <= res.Summary.GrandTotal {
		t.Errorf("markups should raise the total, got %v from base %v", res.Markups.GrandTotal, res.Summary.GrandTotal)
	}
	if res.DurationDays != 30 {
		t.Errorf("DurationDays = %d, want 30", res.DurationDays)
	}
	// Labor and supervision hours from every line, regardless of category.
	if math.Abs(res.TotalManpowerHours-(2+10)) > 0.001 {
		t.Errorf("TotalManpowerHours = %v, want 12", res.TotalManpowerHours)
	}
	if res.TotalAssetUnits != 0 || res.CostPerAssetUnit != 0 {
		t.Errorf("BOQ mode has no asset units, got units=%v cost=%v", res.TotalAssetUnits, res.CostPerAssetUnit)
	}

	shareSum := 0.0
	for _, share := range res.CategoryShares {
		shareSum += share
	}
	if math.Abs(shareSum-100) > 0.01 {
		t.Errorf("category shares sum to %v, want 100", shareSum)
	}
}

func TestBuildResults_StandardMode(t *testing.T) {
	state := ProjectState{
		Name:     "Office Fit-out",
		Currency: "SAR",
		Mode:     ModeStandard,
		Itemized: ItemizedInputs{
			Manpower: []ManpowerItem{{LaborID: "crew", Quantity: 2, Hours: 100}},
			Assets:   []Asset{{Quantity: 10, UnitCost: 100, RemovalCost: 250}},
		},
		Labor: []LaborRecord{{ID: "crew", Role: "Fitter", HourlyRate: 10}},
	}

	res, err := BuildResults(state)
	if err != nil {
		t.Fatalf("BuildResults: %v", err)
	}

	if math.Abs(res.Summary.GrandTotal-3250) > 0.001 {
		t.Errorf("Summary.GrandTotal = %v, want 3250", res.Summary.GrandTotal)
	}
	if math.Abs(res.TotalManpowerHours-200) > 0.001 {
		t.Errorf("TotalManpowerHours = %v, want 200", res.TotalManpowerHours)
	}
	if math.Abs(res.TotalAssetUnits-10) > 0.001 {
		t.Errorf("TotalAssetUnits = %v, want 10", res.TotalAssetUnits)
	}
	if math.Abs(res.CostPerAssetUnit-325) > 0.001 {
		t.Errorf("CostPerAssetUnit = %v, want 325", res.CostPerAssetUnit)
	}
	if res.DurationDays != 0 {
		t.Errorf("no dates set, DurationDays = %d, want 0", res.DurationDays)
	}
}

func TestBuildResults_EmptyModeDefaultsToStandard(t *testing.T) {
	res, err := BuildResults(ProjectState{})
	if err != nil {
		t.Fatalf("BuildResults: %v", err)
	}
	if res.Summary.GrandTotal != 0 {
		t.Errorf("empty project grand total = %v, want 0", res.Summary.GrandTotal)
	}
}

func TestBuildResults_UnknownMode(t *testing.T) {
	if _, err := BuildResults(ProjectState{Mode: "hybrid"}); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestBuildResults_InvalidConfig(t *testing.T) {
	state := ProjectState{
		Mode:   ModeBOQ,
		Config: CostConfig{OverheadsPercent: 100},
	}
	if _, err := BuildResults(state); err == nil {
		t.Error("expected config validation error to propagate")
	}
}
