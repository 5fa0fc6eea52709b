package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"retrocost/services"
)

// lineItemJSON maps a record to JSON with its derived cost breakdown.
func lineItemJSON(rec *core.Record, labor services.LaborTable) map[string]any {
	item := services.LineItemFromRecord(rec)
	return map[string]any{
		"id":                 item.ID,
		"category":           item.Category,
		"description":        item.Description,
		"uom":                item.UOM,
		"quantity":           item.Quantity,
		"unit_material_cost": item.UnitMaterialCost,
		"labor":              item.LaborID,
		"labor_hours":        item.LaborHours,
		"supervisor":         item.SupervisorID,
		"supervision_hours":  item.SupervisionHours,
		"direct_cost":        item.DirectCost,
		"subcontractor_cost": item.SubcontractorCost,
		"cost":               services.CalcLineCost(item, labor).Total,
	}
}

// projectLaborTable loads a project's labor records as a lookup table.
func projectLaborTable(app *pocketbase.PocketBase, projectID string) (services.LaborTable, error) {
	records, err := app.FindRecordsByFilter("labor_records",
		"project = {:projectId}", "", 0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, err
	}
	out := make([]services.LaborRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, services.LaborRecord{
			ID:             rec.Id,
			Role:           rec.GetString("role"),
			MonthlySalary:  rec.GetFloat("monthly_salary"),
			AdditionalCost: rec.GetFloat("additional_cost"),
			HourlyRate:     rec.GetFloat("hourly_rate"),
		})
	}
	return services.NewLaborTable(out), nil
}

// HandleLineItemList returns a project's BOQ lines with derived costs.
// Route: GET /api/projects/{projectId}/line-items
func HandleLineItemList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		labor, err := projectLaborTable(app, projectID)
		if err != nil {
			log.Printf("line_items: could not load labor records: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter("line_items",
			"project = {:projectId}", "sort_order", 0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("line_items: could not list line items: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, lineItemJSON(rec, labor))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleLineItemSummary returns the aggregated cost rollup of a project's
// BOQ lines without running the markup chain.
// Route: GET /api/projects/{projectId}/line-items/summary
func HandleLineItemSummary(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		labor, err := projectLaborTable(app, projectID)
		if err != nil {
			log.Printf("line_items: could not load labor records: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter("line_items",
			"project = {:projectId}", "sort_order", 0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("line_items: could not list line items: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items := make([]services.LineItem, 0, len(records))
		for _, rec := range records {
			items = append(items, services.LineItemFromRecord(rec))
		}
		return e.JSON(http.StatusOK, services.SummarizeLineItems(items, labor))
	}
}

// HandleLineItemAdd adds a BOQ line to a project.
// Route: POST /api/projects/{projectId}/line-items
func HandleLineItemAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form data")
		}

		category := formString(e, "category")
		description := formString(e, "description")
		uom := formString(e, "uom")
		quantity := formFloat(e, "quantity")
		if category == "" || description == "" || uom == "" {
			return errorJSON(e, http.StatusBadRequest, "Category, description and UOM are required")
		}
		if quantity <= 0 {
			return errorJSON(e, http.StatusBadRequest, "Quantity must be greater than zero")
		}

		col, err := app.FindCollectionByNameOrId("line_items")
		if err != nil {
			log.Printf("line_items: could not find line_items collection: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("sort_order", formFloat(e, "sort_order"))
		record.Set("category", category)
		record.Set("description", description)
		record.Set("uom", uom)
		record.Set("quantity", quantity)
		record.Set("unit_material_cost", formFloat(e, "unit_material_cost"))
		record.Set("labor", formString(e, "labor"))
		record.Set("labor_hours", formFloat(e, "labor_hours"))
		record.Set("supervisor", formString(e, "supervisor"))
		record.Set("supervision_hours", formFloat(e, "supervision_hours"))
		record.Set("direct_cost", formFloat(e, "direct_cost"))
		record.Set("subcontractor_cost", formFloat(e, "subcontractor_cost"))

		if err := app.Save(record); err != nil {
			log.Printf("line_items: could not save line item: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		labor, err := projectLaborTable(app, projectID)
		if err != nil {
			labor = services.LaborTable{}
		}
		return e.JSON(http.StatusCreated, lineItemJSON(record, labor))
	}
}

// HandleLineItemPatch edits individual fields of a BOQ line.
// Route: PATCH /api/projects/{projectId}/line-items/{id}
func HandleLineItemPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		record, err := app.FindRecordById("line_items", e.Request.PathValue("id"))
		if err != nil || record.GetString("project") != projectID {
			return errorJSON(e, http.StatusNotFound, "Line item not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form data")
		}

		for _, field := range []string{"category", "description", "uom", "labor", "supervisor"} {
			if e.Request.Form.Has(field) {
				record.Set(field, formString(e, field))
			}
		}
		if e.Request.Form.Has("quantity") {
			quantity := formFloat(e, "quantity")
			if quantity <= 0 {
				return errorJSON(e, http.StatusBadRequest, "Quantity must be greater than zero")
			}
			record.Set("quantity", quantity)
		}
		for _, field := range []string{
			"sort_order", "unit_material_cost", "labor_hours",
			"supervision_hours", "direct_cost", "subcontractor_cost",
		} {
			if e.Request.Form.Has(field) {
				record.Set(field, formFloat(e, field))
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("line_items: could not update line item %s: %v", record.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		labor, err := projectLaborTable(app, projectID)
		if err != nil {
			labor = services.LaborTable{}
		}
		return e.JSON(http.StatusOK, lineItemJSON(record, labor))
	}
}

// HandleLineItemDelete removes a BOQ line.
// Route: DELETE /api/projects/{projectId}/line-items/{id}
func HandleLineItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("line_items", e.Request.PathValue("id"))
		if err != nil || record.GetString("project") != e.Request.PathValue("projectId") {
			return errorJSON(e, http.StatusNotFound, "Line item not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("line_items: could not delete line item %s: %v", record.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
