package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"retrocost/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type laborDef struct {
	role           string
	monthlySalary  float64
	additionalCost float64
	hourlyRate     float64
}

type lineItemDef struct {
	sortOrder         int
	category          string
	description       string
	uom               string
	quantity          float64
	unitMaterialCost  float64
	laborRole         string
	laborHours        float64
	supervisorRole    string
	supervisionHours  float64
	directCost        float64
	subcontractorCost float64
}

type phaseDef struct {
	sortOrder int
	name      string
	startDate string
	endDate   string
}

// Seed populates the collections with a realistic warehouse retrofit
// estimate. It is safe to call on every startup because it returns early if
// any project records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if projects already exist ──────────────────
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting seed data …")

	laborCol, err := app.FindCollectionByNameOrId("labor_records")
	if err != nil {
		return fmt.Errorf("seed: could not find labor_records collection: %w", err)
	}
	lineItemsCol, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		return fmt.Errorf("seed: could not find line_items collection: %w", err)
	}
	manpowerCol, err := app.FindCollectionByNameOrId("manpower_items")
	if err != nil {
		return fmt.Errorf("seed: could not find manpower_items collection: %w", err)
	}
	assetsCol, err := app.FindCollectionByNameOrId("assets")
	if err != nil {
		return fmt.Errorf("seed: could not find assets collection: %w", err)
	}
	materialsCol, err := app.FindCollectionByNameOrId("material_items")
	if err != nil {
		return fmt.Errorf("seed: could not find material_items collection: %w", err)
	}
	subcontractorsCol, err := app.FindCollectionByNameOrId("subcontractors")
	if err != nil {
		return fmt.Errorf("seed: could not find subcontractors collection: %w", err)
	}
	supervisionCol, err := app.FindCollectionByNameOrId("supervision_roles")
	if err != nil {
		return fmt.Errorf("seed: could not find supervision_roles collection: %w", err)
	}
	logisticsCol, err := app.FindCollectionByNameOrId("logistics_items")
	if err != nil {
		return fmt.Errorf("seed: could not find logistics_items collection: %w", err)
	}
	phasesCol, err := app.FindCollectionByNameOrId("phases")
	if err != nil {
		return fmt.Errorf("seed: could not find phases collection: %w", err)
	}

	// ── helper: create labor record, keyed by role for later lookup ──
	createLabor := func(projectID string, defs []laborDef) (map[string]string, error) {
		ids := make(map[string]string, len(defs))
		for _, d := range defs {
			r := core.NewRecord(laborCol)
			r.Set("project", projectID)
			r.Set("role", d.role)
			r.Set("monthly_salary", d.monthlySalary)
			r.Set("additional_cost", d.additionalCost)
			r.Set("hourly_rate", d.hourlyRate)
			if err := app.Save(r); err != nil {
				return nil, fmt.Errorf("seed: save labor record %q: %w", d.role, err)
			}
			ids[d.role] = r.Id
		}
		return ids, nil
	}

	createLineItem := func(projectID string, laborIDs map[string]string, d lineItemDef) error {
		r := core.NewRecord(lineItemsCol)
		r.Set("project", projectID)
		r.Set("sort_order", d.sortOrder)
		r.Set("category", d.category)
		r.Set("description", d.description)
		r.Set("uom", d.uom)
		r.Set("quantity", d.quantity)
		r.Set("unit_material_cost", d.unitMaterialCost)
		if d.laborRole != "" {
			r.Set("labor", laborIDs[d.laborRole])
			r.Set("labor_hours", d.laborHours)
		}
		if d.supervisorRole != "" {
			r.Set("supervisor", laborIDs[d.supervisorRole])
			r.Set("supervision_hours", d.supervisionHours)
		}
		r.Set("direct_cost", d.directCost)
		r.Set("subcontractor_cost", d.subcontractorCost)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save line item %q: %w", d.description, err)
		}
		return nil
	}

	createPhase := func(projectID string, d phaseDef) error {
		r := core.NewRecord(phasesCol)
		r.Set("project", projectID)
		r.Set("sort_order", d.sortOrder)
		r.Set("name", d.name)
		r.Set("start_date", d.startDate)
		r.Set("end_date", d.endDate)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save phase %q: %w", d.name, err)
		}
		return nil
	}

	// ══════════════════════════════════════════════════════════════════
	// PROJECT 1: Warehouse Retrofit (BOQ mode)
	// ══════════════════════════════════════════════════════════════════

	p1 := core.NewRecord(projectsCol)
	p1.Set("name", "Warehouse Retrofit — Unit 7, Industrial City")
	p1.Set("client", "Al Manar Logistics Co.")
	p1.Set("mode", services.ModeBOQ)
	p1.Set("currency", "SAR")
	p1.Set("start_date", "2026-01-05 00:00:00.000Z")
	p1.Set("end_date", "2026-04-30 00:00:00.000Z")
	p1.Set("overheads_percent", 12)
	p1.Set("risk_percent", 3)
	p1.Set("pm_percent", 5)
	p1.Set("bond_percent", 1.5)
	p1.Set("insurance_percent", 1)
	p1.Set("warranty_percent", 2)
	p1.Set("profit_percent", 10)
	if err := app.Save(p1); err != nil {
		return fmt.Errorf("seed: save project 1: %w", err)
	}

	p1Labor, err := createLabor(p1.Id, []laborDef{
		{role: "Electrician", monthlySalary: 5200, additionalCost: 800},
		{role: "HVAC Technician", monthlySalary: 5800, additionalCost: 900},
		{role: "General Laborer", monthlySalary: 2900, additionalCost: 450},
		{role: "Site Supervisor", hourlyRate: 45},
	})
	if err != nil {
		return err
	}

	p1Items := []lineItemDef{
		{sortOrder: 1, category: "Demolition", description: "Strip existing partition walls", uom: "Sqm", quantity: 240, directCost: 18, laborRole: "General Laborer", laborHours: 160},
		{sortOrder: 2, category: "Civil", description: "Repair and level floor slab", uom: "Sqm", quantity: 850, unitMaterialCost: 32, laborRole: "General Laborer", laborHours: 280, supervisorRole: "Site Supervisor", supervisionHours: 40},
		{sortOrder: 3, category: "Electrical", description: "New distribution board and rewiring", uom: "Lot", quantity: 1, unitMaterialCost: 28500, laborRole: "Electrician", laborHours: 320, supervisorRole: "Site Supervisor", supervisionHours: 60},
		{sortOrder: 4, category: "Electrical", description: "LED high-bay lighting, supply and install", uom: "Nos", quantity: 48, unitMaterialCost: 420, laborRole: "Electrician", laborHours: 96},
		{sortOrder: 5, category: "HVAC", description: "Replace roof-mounted package units", uom: "Nos", quantity: 4, unitMaterialCost: 36000, laborRole: "HVAC Technician", laborHours: 200, supervisorRole: "Site Supervisor", supervisionHours: 32},
		{sortOrder: 6, category: "Fire Protection", description: "Sprinkler network modification", uom: "Lot", quantity: 1, subcontractorCost: 86000},
		{sortOrder: 7, category: "Finishes", description: "Epoxy floor coating", uom: "Sqm", quantity: 850, subcontractorCost: 38},
	}
	for _, d := range p1Items {
		if err := createLineItem(p1.Id, p1Labor, d); err != nil {
			return err
		}
	}

	p1Phases := []phaseDef{
		{sortOrder: 1, name: "Demolition & Strip-out", startDate: "2026-01-05 00:00:00.000Z", endDate: "2026-01-24 00:00:00.000Z"},
		{sortOrder: 2, name: "Civil & MEP Works", startDate: "2026-01-25 00:00:00.000Z", endDate: "2026-03-28 00:00:00.000Z"},
		{sortOrder: 3, name: "Finishes & Handover", startDate: "2026-03-29 00:00:00.000Z", endDate: "2026-04-30 00:00:00.000Z"},
	}
	for _, d := range p1Phases {
		if err := createPhase(p1.Id, d); err != nil {
			return err
		}
	}

	// ══════════════════════════════════════════════════════════════════
	// PROJECT 2: Office Lighting Upgrade (standard mode)
	// ══════════════════════════════════════════════════════════════════

	p2 := core.NewRecord(projectsCol)
	p2.Set("name", "Office Lighting Upgrade — HQ Tower")
	p2.Set("client", "Gulf Horizon Holdings")
	p2.Set("mode", services.ModeStandard)
	p2.Set("currency", "SAR")
	p2.Set("start_date", "2026-02-01 00:00:00.000Z")
	p2.Set("end_date", "2026-03-15 00:00:00.000Z")
	p2.Set("overheads_percent", 10)
	p2.Set("risk_percent", 2)
	p2.Set("pm_percent", 4)
	p2.Set("profit_percent", 8)
	if err := app.Save(p2); err != nil {
		return fmt.Errorf("seed: save project 2: %w", err)
	}

	p2Labor, err := createLabor(p2.Id, []laborDef{
		{role: "Electrician", monthlySalary: 5200, additionalCost: 800},
		{role: "Foreman", monthlySalary: 7200, additionalCost: 1100},
	})
	if err != nil {
		return err
	}

	mp := core.NewRecord(manpowerCol)
	mp.Set("project", p2.Id)
	mp.Set("labor", p2Labor["Electrician"])
	mp.Set("quantity", 4)
	mp.Set("hours", 346)
	if err := app.Save(mp); err != nil {
		return fmt.Errorf("seed: save manpower item: %w", err)
	}

	asset := core.NewRecord(assetsCol)
	asset.Set("project", p2.Id)
	asset.Set("name", "Recessed LED Panel 600x600")
	asset.Set("description", "Replace fluorescent troffers, floors 2-14")
	asset.Set("quantity", 520)
	asset.Set("unit_cost", 145)
	asset.Set("removal_cost", 9500)
	if err := app.Save(asset); err != nil {
		return fmt.Errorf("seed: save asset: %w", err)
	}

	material := core.NewRecord(materialsCol)
	material.Set("project", p2.Id)
	material.Set("category", "Electrical")
	material.Set("item", "LSZH cable 3x2.5mm")
	material.Set("unit", "Rmt")
	material.Set("unit_rate", 4.2)
	material.Set("quantity", 2600)
	material.Set("notes", "ceiling void runs")
	if err := app.Save(material); err != nil {
		return fmt.Errorf("seed: save material item: %w", err)
	}

	sub := core.NewRecord(subcontractorsCol)
	sub.Set("project", p2.Id)
	sub.Set("name", "Ceiling Systems LLC")
	sub.Set("scope", "Open, reinstate and repaint ceiling tiles")
	sub.Set("total_cost", 41000)
	if err := app.Save(sub); err != nil {
		return fmt.Errorf("seed: save subcontractor: %w", err)
	}

	sup := core.NewRecord(supervisionCol)
	sup.Set("project", p2.Id)
	sup.Set("labor", p2Labor["Foreman"])
	sup.Set("hours", 120)
	if err := app.Save(sup); err != nil {
		return fmt.Errorf("seed: save supervision role: %w", err)
	}

	logistics := core.NewRecord(logisticsCol)
	logistics.Set("project", p2.Id)
	logistics.Set("description", "Night-shift access, hoist and disposal")
	logistics.Set("total_cost", 14500)
	if err := app.Save(logistics); err != nil {
		return fmt.Errorf("seed: save logistics item: %w", err)
	}

	log.Println("seed: all seed data inserted successfully (2 projects, 7 BOQ lines, 6 itemized entries)")
	return nil
}
