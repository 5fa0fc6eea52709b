package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// LoadProjectState materializes the by-value ProjectState snapshot for one
// project from the collections. Handlers call this before every
// recalculation; the engine itself never touches storage.
func LoadProjectState(app *pocketbase.PocketBase, projectID string) (ProjectState, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return ProjectState{}, fmt.Errorf("project %s not found: %w", projectID, err)
	}

	state := ProjectState{
		ID:       project.Id,
		Name:     project.GetString("name"),
		Client:   project.GetString("client"),
		Currency: project.GetString("currency"),
		Mode:     project.GetString("mode"),
		Config:   ConfigFromRecord(project),
	}
	if start := project.GetDateTime("start_date"); !start.IsZero() {
		state.StartDate = start.Time().UTC().Format("2006-01-02")
	}
	if end := project.GetDateTime("end_date"); !end.IsZero() {
		state.EndDate = end.Time().UTC().Format("2006-01-02")
	}

	if state.Labor, err = loadLaborRecords(app, projectID); err != nil {
		return ProjectState{}, err
	}
	if state.LineItems, err = loadLineItems(app, projectID); err != nil {
		return ProjectState{}, err
	}
	if state.Itemized, err = loadItemized(app, projectID); err != nil {
		return ProjectState{}, err
	}
	if state.Phases, err = loadPhases(app, projectID); err != nil {
		return ProjectState{}, err
	}

	return state, nil
}

// ConfigFromRecord reads the seven percentage knobs off a project record.
func ConfigFromRecord(project *core.Record) CostConfig {
	return CostConfig{
		OverheadsPercent: project.GetFloat("overheads_percent"),
		RiskPercent:      project.GetFloat("risk_percent"),
		PMPercent:        project.GetFloat("pm_percent"),
		BondPercent:      project.GetFloat("bond_percent"),
		InsurancePercent: project.GetFloat("insurance_percent"),
		WarrantyPercent:  project.GetFloat("warranty_percent"),
		ProfitPercent:    project.GetFloat("profit_percent"),
	}
}

// LineItemFromRecord maps a line_items record into the engine type.
func LineItemFromRecord(rec *core.Record) LineItem {
	return LineItem{
		ID:                rec.Id,
		Category:          rec.GetString("category"),
		Description:       rec.GetString("description"),
		UOM:               rec.GetString("uom"),
		Quantity:          rec.GetFloat("quantity"),
		UnitMaterialCost:  rec.GetFloat("unit_material_cost"),
		LaborID:           rec.GetString("labor"),
		LaborHours:        rec.GetFloat("labor_hours"),
		SupervisorID:      rec.GetString("supervisor"),
		SupervisionHours:  rec.GetFloat("supervision_hours"),
		DirectCost:        rec.GetFloat("direct_cost"),
		SubcontractorCost: rec.GetFloat("subcontractor_cost"),
	}
}

func loadLaborRecords(app *pocketbase.PocketBase, projectID string) ([]LaborRecord, error) {
	records, err := findByProject(app, "labor_records", projectID, "")
	if err != nil {
		return nil, err
	}
	out := make([]LaborRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, LaborRecord{
			ID:             rec.Id,
			Role:           rec.GetString("role"),
			MonthlySalary:  rec.GetFloat("monthly_salary"),
			AdditionalCost: rec.GetFloat("additional_cost"),
			HourlyRate:     rec.GetFloat("hourly_rate"),
		})
	}
	return out, nil
}

func loadLineItems(app *pocketbase.PocketBase, projectID string) ([]LineItem, error) {
	records, err := findByProject(app, "line_items", projectID, "sort_order")
	if err != nil {
		return nil, err
	}
	out := make([]LineItem, 0, len(records))
	for _, rec := range records {
		out = append(out, LineItemFromRecord(rec))
	}
	return out, nil
}

func loadItemized(app *pocketbase.PocketBase, projectID string) (ItemizedInputs, error) {
	var in ItemizedInputs

	records, err := findByProject(app, "manpower_items", projectID, "")
	if err != nil {
		return in, err
	}
	for _, rec := range records {
		in.Manpower = append(in.Manpower, ManpowerItem{
			ID:       rec.Id,
			LaborID:  rec.GetString("labor"),
			Quantity: rec.GetFloat("quantity"),
			Hours:    rec.GetFloat("hours"),
		})
	}

	if records, err = findByProject(app, "assets", projectID, ""); err != nil {
		return in, err
	}
	for _, rec := range records {
		in.Assets = append(in.Assets, Asset{
			ID:          rec.Id,
			Name:        rec.GetString("name"),
			Description: rec.GetString("description"),
			Quantity:    rec.GetFloat("quantity"),
			UnitCost:    rec.GetFloat("unit_cost"),
			RemovalCost: rec.GetFloat("removal_cost"),
		})
	}

	if records, err = findByProject(app, "material_items", projectID, ""); err != nil {
		return in, err
	}
	for _, rec := range records {
		in.Materials = append(in.Materials, MaterialItem{
			ID:       rec.Id,
			Category: rec.GetString("category"),
			Item:     rec.GetString("item"),
			Unit:     rec.GetString("unit"),
			UnitRate: rec.GetFloat("unit_rate"),
			Quantity: rec.GetFloat("quantity"),
			Notes:    rec.GetString("notes"),
		})
	}

	if records, err = findByProject(app, "subcontractors", projectID, ""); err != nil {
		return in, err
	}
	for _, rec := range records {
		in.Subcontractors = append(in.Subcontractors, Subcontractor{
			ID:        rec.Id,
			Name:      rec.GetString("name"),
			Scope:     rec.GetString("scope"),
			TotalCost: rec.GetFloat("total_cost"),
		})
	}

	if records, err = findByProject(app, "supervision_roles", projectID, ""); err != nil {
		return in, err
	}
	for _, rec := range records {
		in.Supervision = append(in.Supervision, SupervisionRole{
			ID:      rec.Id,
			LaborID: rec.GetString("labor"),
			Hours:   rec.GetFloat("hours"),
		})
	}

	if records, err = findByProject(app, "logistics_items", projectID, ""); err != nil {
		return in, err
	}
	for _, rec := range records {
		in.Logistics = append(in.Logistics, LogisticsItem{
			ID:          rec.Id,
			Description: rec.GetString("description"),
			TotalCost:   rec.GetFloat("total_cost"),
		})
	}

	return in, nil
}

func loadPhases(app *pocketbase.PocketBase, projectID string) ([]Phase, error) {
	records, err := findByProject(app, "phases", projectID, "sort_order")
	if err != nil {
		return nil, err
	}
	out := make([]Phase, 0, len(records))
	for _, rec := range records {
		out = append(out, Phase{
			ID:        rec.Id,
			Name:      rec.GetString("name"),
			StartDate: rec.GetDateTime("start_date").Time().UTC(),
			EndDate:   rec.GetDateTime("end_date").Time().UTC(),
		})
	}
	return out, nil
}

func findByProject(app *pocketbase.PocketBase, collection, projectID, sort string) ([]*core.Record, error) {
	records, err := app.FindRecordsByFilter(collection,
		"project = {:projectId}", sort, 0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}
	return records, nil
}
