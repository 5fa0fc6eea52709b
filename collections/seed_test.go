package collections_test

import (
	"testing"

	"retrocost/collections"
	"retrocost/services"
	"retrocost/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	projects, err := app.FindAllRecords(projectsCol)
	if err != nil {
		t.Fatalf("query projects error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}

	// One BOQ-mode project with line items, one standard-mode project.
	modes := map[string]int{}
	for _, p := range projects {
		modes[p.GetString("mode")]++
	}
	if modes["boq"] != 1 || modes["standard"] != 1 {
		t.Errorf("project modes = %v, want one boq and one standard", modes)
	}

	lineItemsCol, _ := app.FindCollectionByNameOrId("line_items")
	lineItems, _ := app.FindAllRecords(lineItemsCol)
	if len(lineItems) != 7 {
		t.Errorf("expected 7 line items, got %d", len(lineItems))
	}

	laborCol, _ := app.FindCollectionByNameOrId("labor_records")
	labor, _ := app.FindAllRecords(laborCol)
	if len(labor) == 0 {
		t.Error("expected labor records to be created")
	}

	assetsCol, _ := app.FindCollectionByNameOrId("assets")
	assets, _ := app.FindAllRecords(assetsCol)
	if len(assets) != 1 {
		t.Errorf("expected 1 asset, got %d", len(assets))
	}

	phasesCol, _ := app.FindCollectionByNameOrId("phases")
	phases, _ := app.FindAllRecords(phasesCol)
	if len(phases) != 3 {
		t.Errorf("expected 3 phases, got %d", len(phases))
	}
}

// Both seeded projects must load and produce a positive estimate end to end.
func TestSeed_ProjectsProduceResults(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	projects, _ := app.FindAllRecords(projectsCol)

	for _, p := range projects {
		state, err := services.LoadProjectState(app, p.Id)
		if err != nil {
			t.Fatalf("LoadProjectState(%s): %v", p.GetString("name"), err)
		}
		res, err := services.BuildResults(state)
		if err != nil {
			t.Fatalf("BuildResults(%s): %v", p.GetString("name"), err)
		}
		if res.Markups.GrandTotal <= 0 {
			t.Errorf("project %q grand total = %v, want > 0", p.GetString("name"), res.Markups.GrandTotal)
		}
		if res.DurationDays <= 0 {
			t.Errorf("project %q duration = %d, want > 0", p.GetString("name"), res.DurationDays)
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	projects, _ := app.FindAllRecords(projectsCol)
	if len(projects) != 2 {
		t.Errorf("expected 2 projects after idempotent seed, got %d", len(projects))
	}
}
