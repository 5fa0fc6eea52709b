package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"retrocost/services"
)

func laborJSON(rec *core.Record) map[string]any {
	out := map[string]any{
		"id":              rec.Id,
		"role":            rec.GetString("role"),
		"monthly_salary":  rec.GetFloat("monthly_salary"),
		"additional_cost": rec.GetFloat("additional_cost"),
		"hourly_rate":     rec.GetFloat("hourly_rate"),
	}
	lr := services.LaborRecord{
		MonthlySalary:  rec.GetFloat("monthly_salary"),
		AdditionalCost: rec.GetFloat("additional_cost"),
		HourlyRate:     rec.GetFloat("hourly_rate"),
	}
	out["effective_hourly_rate"] = services.EffectiveHourlyRate(&lr, services.BOQMonthlyHours)
	return out
}

// HandleLaborList returns the project's labor records.
// Route: GET /api/projects/{projectId}/labor
func HandleLaborList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter("labor_records",
			"project = {:projectId}", "role", 0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("labor: could not list labor records: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, laborJSON(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleLaborCreate adds a labor record to a project.
// Route: POST /api/projects/{projectId}/labor
func HandleLaborCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form data")
		}

		role := formString(e, "role")
		if role == "" {
			return errorJSON(e, http.StatusBadRequest, "Role is required")
		}
		// Roles feed the label codec, which cannot represent parentheses.
		if err := services.ValidateRole(role); err != nil {
			return errorJSON(e, http.StatusBadRequest, err.Error())
		}

		col, err := app.FindCollectionByNameOrId("labor_records")
		if err != nil {
			log.Printf("labor: could not find labor_records collection: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("role", role)
		record.Set("monthly_salary", formFloat(e, "monthly_salary"))
		record.Set("additional_cost", formFloat(e, "additional_cost"))
		record.Set("hourly_rate", formFloat(e, "hourly_rate"))

		if err := app.Save(record); err != nil {
			log.Printf("labor: could not save labor record: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, laborJSON(record))
	}
}

// HandleLaborUpdate edits a labor record.
// Route: POST /api/projects/{projectId}/labor/{id}/save
func HandleLaborUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("labor_records", e.Request.PathValue("id"))
		if err != nil || record.GetString("project") != e.Request.PathValue("projectId") {
			return errorJSON(e, http.StatusNotFound, "Labor record not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form data")
		}

		if role := formString(e, "role"); role != "" {
			if err := services.ValidateRole(role); err != nil {
				return errorJSON(e, http.StatusBadRequest, err.Error())
			}
			record.Set("role", role)
		}
		for _, field := range []string{"monthly_salary", "additional_cost", "hourly_rate"} {
			if e.Request.Form.Has(field) {
				record.Set(field, formFloat(e, field))
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("labor: could not update labor record %s: %v", record.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, laborJSON(record))
	}
}

// HandleLaborDelete removes a labor record. Line items keep their dangling
// reference and simply stop accruing labor cost.
// Route: DELETE /api/projects/{projectId}/labor/{id}
func HandleLaborDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("labor_records", e.Request.PathValue("id"))
		if err != nil || record.GetString("project") != e.Request.PathValue("projectId") {
			return errorJSON(e, http.StatusNotFound, "Labor record not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("labor: could not delete labor record %s: %v", record.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// HandleLaborLabels returns the encoded dropdown labels for a project's labor
// records, the same strings the BOQ importer decodes.
// Route: GET /api/projects/{projectId}/labor/labels
func HandleLaborLabels(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}
		currency := project.GetString("currency")

		records, err := app.FindRecordsByFilter("labor_records",
			"project = {:projectId}", "role", 0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("labor: could not list labor records: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		labels := make([]string, 0, len(records))
		for _, rec := range records {
			lr := services.LaborRecord{
				MonthlySalary:  rec.GetFloat("monthly_salary"),
				AdditionalCost: rec.GetFloat("additional_cost"),
				HourlyRate:     rec.GetFloat("hourly_rate"),
			}
			rate := services.EffectiveHourlyRate(&lr, services.BOQMonthlyHours)
			labels = append(labels, services.EncodeLaborLabel(rec.GetString("role"), rate, currency))
		}
		return e.JSON(http.StatusOK, labels)
	}
}
