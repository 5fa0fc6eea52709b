package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"retrocost/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleBOQTemplateDownload serves the BOQ import template with the
// project's labor labels pre-wired into the dropdowns.
// Route: GET /api/projects/{projectId}/boq/template
func HandleBOQTemplateDownload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		labor, err := projectLaborSlice(app, projectID)
		if err != nil {
			log.Printf("boq_import: could not load labor records: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		xlsxBytes, err := services.GenerateBOQTemplate(labor, project.GetString("currency"))
		if err != nil {
			log.Printf("boq_import: template generation: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := fmt.Sprintf("BOQ_Template_%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleBOQImport receives a BOQ workbook upload, validates every row, and
// on success replaces the project's line items in one transaction. Any
// validation error anywhere leaves the stored items untouched.
// Route: POST /api/projects/{projectId}/boq/import
func HandleBOQImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return errorJSON(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, _, err := e.Request.FormFile("file")
		if err != nil {
			return errorJSON(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		labor, err := projectLaborSlice(app, projectID)
		if err != nil {
			log.Printf("boq_import: could not load labor records: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		result, err := services.ImportBOQ(file, labor)
		if err != nil {
			log.Printf("boq_import: %v", err)
			return errorJSON(e, http.StatusBadRequest, err.Error())
		}
		if result.Failed() {
			return e.JSON(http.StatusUnprocessableEntity, result)
		}

		if err := commitLineItems(app, projectID, result.Items); err != nil {
			log.Printf("boq_import: commit: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, result)
	}
}

// HandleBOQErrorReport downloads validation errors as an Excel file.
// Route: POST /api/projects/{projectId}/boq/import/errors
func HandleBOQErrorReport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var errs []services.ValidationError
		decoder := json.NewDecoder(e.Request.Body)
		if err := decoder.Decode(&errs); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid error data")
		}

		xlsxBytes, err := services.GenerateErrorReport(errs)
		if err != nil {
			log.Printf("boq_import: error report: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := fmt.Sprintf("BOQ_Errors_%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// commitLineItems replaces a project's line items with the imported batch.
// Runs in a transaction so a mid-batch failure rolls everything back.
func commitLineItems(app *pocketbase.PocketBase, projectID string, items []services.LineItem) error {
	return app.RunInTransaction(func(txApp core.App) error {
		existing, err := txApp.FindRecordsByFilter("line_items",
			"project = {:projectId}", "", 0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			return fmt.Errorf("load existing line items: %w", err)
		}
		for _, rec := range existing {
			if err := txApp.Delete(rec); err != nil {
				return fmt.Errorf("delete line item %s: %w", rec.Id, err)
			}
		}

		col, err := txApp.FindCollectionByNameOrId("line_items")
		if err != nil {
			return fmt.Errorf("find line_items collection: %w", err)
		}
		for i, item := range items {
			rec := core.NewRecord(col)
			rec.Set("project", projectID)
			rec.Set("sort_order", i+1)
			rec.Set("category", item.Category)
			rec.Set("description", item.Description)
			rec.Set("uom", item.UOM)
			rec.Set("quantity", item.Quantity)
			rec.Set("unit_material_cost", item.UnitMaterialCost)
			rec.Set("labor", item.LaborID)
			rec.Set("labor_hours", item.LaborHours)
			rec.Set("supervisor", item.SupervisorID)
			rec.Set("supervision_hours", item.SupervisionHours)
			rec.Set("direct_cost", item.DirectCost)
			rec.Set("subcontractor_cost", item.SubcontractorCost)
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("save line item %q: %w", item.Description, err)
			}
		}
		return nil
	})
}

// projectLaborSlice loads a project's labor records as a slice for the
// import and template services.
func projectLaborSlice(app *pocketbase.PocketBase, projectID string) ([]services.LaborRecord, error) {
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
	return out, nil
}
