package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"retrocost/services"
)

// Setup programmatically creates/ensures the projects, labor_records,
// line_items and itemized-entry collections exist.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "client", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "mode",
			Required:  true,
			Values:    []string{services.ModeStandard, services.ModeBOQ},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "currency",
			Required:  false,
			Values:    services.CurrencyOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.DateField{Name: "start_date", Required: false})
		c.Fields.Add(&core.DateField{Name: "end_date", Required: false})
		c.Fields.Add(&core.NumberField{Name: "overheads_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "risk_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "pm_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "bond_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "insurance_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "warranty_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "profit_percent", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	laborRecords := ensureCollection(app, "labor_records", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "role", Required: true})
		c.Fields.Add(&core.NumberField{Name: "monthly_salary", Required: false})
		c.Fields.Add(&core.NumberField{Name: "additional_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "hourly_rate", Required: false})
	})

	ensureCollection(app, "line_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.TextField{Name: "category", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "uom", Required: true})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_material_cost", Required: false})
		c.Fields.Add(&core.RelationField{
			Name:         "labor",
			Required:     false,
			CollectionId: laborRecords.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "labor_hours", Required: false})
		c.Fields.Add(&core.RelationField{
			Name:         "supervisor",
			Required:     false,
			CollectionId: laborRecords.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "supervision_hours", Required: false})
		c.Fields.Add(&core.NumberField{Name: "direct_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "subcontractor_cost", Required: false})
	})

	ensureCollection(app, "manpower_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "labor",
			Required:     false,
			CollectionId: laborRecords.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.NumberField{Name: "hours", Required: true})
	})

	ensureCollection(app, "assets", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "removal_cost", Required: false})
	})

	ensureCollection(app, "material_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "category", Required: true})
		c.Fields.Add(&core.TextField{Name: "item", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
	})

	ensureCollection(app, "subcontractors", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "scope", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_cost", Required: false})
	})

	ensureCollection(app, "supervision_roles", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "labor",
			Required:     false,
			CollectionId: laborRecords.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "hours", Required: true})
	})

	ensureCollection(app, "logistics_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "total_cost", Required: false})
	})

	ensureCollection(app, "phases", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.DateField{Name: "start_date", Required: true})
		c.Fields.Add(&core.DateField{Name: "end_date", Required: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
