package services

import (
	"math"
	"math/rand"
	"testing"
)

func summaryFixtureItems() []LineItem {
	return []LineItem{
		{Category: "Civil", Quantity: 10, UnitMaterialCost: 5, LaborID: "lab1", LaborHours: 2},
		{Category: "Civil", Quantity: 4, DirectCost: 25},
		{Category: "Electrical", Quantity: 2, UnitMaterialCost: 30, SubcontractorCost: 10},
		{Category: "HVAC", Quantity: 1, SupervisorID: "lab2", SupervisionHours: 10},
	}
}

func TestSummarizeLineItems(t *testing.T) {
	labor := testLabor()
	summary := SummarizeLineItems(summaryFixtureItems(), labor)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"MaterialTotal", summary.MaterialTotal, 50 + 60},
		{"LaborTotal", summary.LaborTotal, 100},
		{"SupervisionTotal", summary.SupervisionTotal, 200},
		{"DirectTotal", summary.DirectTotal, 100},
		{"SubcontractorTotal", summary.SubcontractorTotal, 20},
		{"GrandTotal", summary.GrandTotal, 530},
		{"Categories[Civil]", summary.Categories["Civil"], 250},
		{"Categories[Electrical]", summary.Categories["Electrical"], 80},
		{"Categories[HVAC]", summary.Categories["HVAC"], 200},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 0.001 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if summary.ItemCount != 4 {
		t.Errorf("ItemCount = %d, want 4", summary.ItemCount)
	}
}

// Categories outside the advisory closed set are bucketed verbatim, not
// rejected.
func TestSummarizeLineItems_UnknownCategory(t *testing.T) {
	items := []LineItem{{Category: "Scaffolding Rental", Quantity: 1, UnitMaterialCost: 99}}
	summary := SummarizeLineItems(items, LaborTable{})
	if summary.Categories["Scaffolding Rental"] != 99 {
		t.Errorf("unknown category not bucketed verbatim: %v", summary.Categories)
	}
}

func TestSummarizeLineItems_OrderIndependent(t *testing.T) {
	labor := testLabor()
	items := summaryFixtureItems()
	want := SummarizeLineItems(items, labor)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]LineItem, len(items))
		copy(shuffled, items)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := SummarizeLineItems(shuffled, labor)
		if math.Abs(got.GrandTotal-want.GrandTotal) > 1e-9 {
			t.Fatalf("trial %d: GrandTotal = %v, want %v", trial, got.GrandTotal, want.GrandTotal)
		}
		for category, total := range want.Categories {
			if math.Abs(got.Categories[category]-total) > 1e-9 {
				t.Fatalf("trial %d: Categories[%s] = %v, want %v", trial, category, got.Categories[category], total)
			}
		}
	}
}

func TestSummarizeItemized(t *testing.T) {
	labor := NewLaborTable([]LaborRecord{
		{ID: "crew", Role: "Fitter", HourlyRate: 10},
		{ID: "sup", Role: "Site Manager", HourlyRate: 30},
	})

	in := ItemizedInputs{
		Manpower:       []ManpowerItem{{LaborID: "crew", Quantity: 2, Hours: 100}},
		Assets:         []Asset{{Quantity: 10, UnitCost: 100, RemovalCost: 250}},
		Materials:      []MaterialItem{{Category: "Steel", Quantity: 5, UnitRate: 40}},
		Subcontractors: []Subcontractor{{TotalCost: 5000}},
		Supervision:    []SupervisionRole{{LaborID: "sup", Hours: 20}},
		Logistics:      []LogisticsItem{{TotalCost: 800}},
	}

	summary := SummarizeItemized(in, labor)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"LaborTotal", summary.LaborTotal, 2000},
		{"MaterialTotal", summary.MaterialTotal, 200},
		{"SupervisionTotal", summary.SupervisionTotal, 600},
		{"SubcontractorTotal", summary.SubcontractorTotal, 5000},
		{"DirectTotal", summary.DirectTotal, 1250 + 800},
		{"GrandTotal", summary.GrandTotal, 2000 + 200 + 600 + 5000 + 2050},
		{"Categories[Manpower]", summary.Categories["Manpower"], 2000},
		{"Categories[Steel]", summary.Categories["Steel"], 200},
		{"Categories[Logistics]", summary.Categories["Logistics"], 800},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 0.001 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if summary.ItemCount != 6 {
		t.Errorf("ItemCount = %d, want 6", summary.ItemCount)
	}
}

func TestCategoryPercent(t *testing.T) {
	if got := CategoryPercent(250, 1000); got != 25 {
		t.Errorf("CategoryPercent(250, 1000) = %v, want 25", got)
	}
	// Zero grand total reports 0%, not NaN.
	if got := CategoryPercent(250, 0); got != 0 {
		t.Errorf("CategoryPercent(250, 0) = %v, want 0", got)
	}
}
