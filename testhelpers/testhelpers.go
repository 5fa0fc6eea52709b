// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"retrocost/collections"
	"retrocost/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and mode.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name, mode string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	if mode == "" {
		mode = services.ModeBOQ
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("mode", mode)
	record.Set("currency", "USD")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestLaborRecord creates a labor record linked to a project.
func CreateTestLaborRecord(t *testing.T, app *pocketbase.PocketBase, projectID, role string, monthlySalary, hourlyRate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("labor_records")
	if err != nil {
		t.Fatalf("failed to find labor_records collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("role", role)
	record.Set("monthly_salary", monthlySalary)
	record.Set("hourly_rate", hourlyRate)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test labor record: %v", err)
	}

	return record
}

// CreateTestLineItem creates a line_items record linked to a project.
func CreateTestLineItem(t *testing.T, app *pocketbase.PocketBase, projectID, category, description string, quantity, unitMaterialCost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		t.Fatalf("failed to find line_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("category", category)
	record.Set("description", description)
	record.Set("uom", "Nos")
	record.Set("quantity", quantity)
	record.Set("unit_material_cost", unitMaterialCost)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test line item: %v", err)
	}

	return record
}

// CreateTestAsset creates an assets record linked to a project.
func CreateTestAsset(t *testing.T, app *pocketbase.PocketBase, projectID, name string, quantity, unitCost, removalCost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("assets")
	if err != nil {
		t.Fatalf("failed to find assets collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("name", name)
	record.Set("quantity", quantity)
	record.Set("unit_cost", unitCost)
	record.Set("removal_cost", removalCost)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test asset: %v", err)
	}

	return record
}

// CreateTestManpowerItem creates a manpower_items record linked to a project.
func CreateTestManpowerItem(t *testing.T, app *pocketbase.PocketBase, projectID, laborID string, quantity, hours float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("manpower_items")
	if err != nil {
		t.Fatalf("failed to find manpower_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("labor", laborID)
	record.Set("quantity", quantity)
	record.Set("hours", hours)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test manpower item: %v", err)
	}

	return record
}

// CreateTestPhase creates a phases record linked to a project. Dates are in
// the "2006-01-02 15:04:05.000Z" layout PocketBase stores.
func CreateTestPhase(t *testing.T, app *pocketbase.PocketBase, projectID, name, startDate, endDate string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("phases")
	if err != nil {
		t.Fatalf("failed to find phases collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("name", name)
	record.Set("start_date", startDate)
	record.Set("end_date", endDate)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test phase: %v", err)
	}

	return record
}
