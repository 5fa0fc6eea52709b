package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"retrocost/services"
)

func phaseJSON(rec *core.Record) map[string]any {
	start := rec.GetDateTime("start_date").Time().UTC()
	end := rec.GetDateTime("end_date").Time().UTC()
	return map[string]any{
		"id":         rec.Id,
		"name":       rec.GetString("name"),
		"sort_order": rec.GetFloat("sort_order"),
		"start_date": start.Format("2006-01-02"),
		"end_date":   end.Format("2006-01-02"),
		"days":       services.DurationDays(start, end),
	}
}

// HandlePhaseList returns a project's phases with computed durations.
// Route: GET /api/projects/{projectId}/phases
func HandlePhaseList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter("phases",
			"project = {:projectId}", "sort_order", 0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("phases: could not list phases: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, phaseJSON(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandlePhaseAdd adds a phase to a project.
// Route: POST /api/projects/{projectId}/phases
func HandlePhaseAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form data")
		}

		name := formString(e, "name")
		startDate := formString(e, "start_date")
		endDate := formString(e, "end_date")
		if name == "" || startDate == "" || endDate == "" {
			return errorJSON(e, http.StatusBadRequest, "Name, start date and end date are required")
		}

		col, err := app.FindCollectionByNameOrId("phases")
		if err != nil {
			log.Printf("phases: could not find phases collection: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("name", name)
		record.Set("sort_order", formFloat(e, "sort_order"))
		setDateField(record, "start_date", startDate)
		setDateField(record, "end_date", endDate)

		if err := app.Save(record); err != nil {
			log.Printf("phases: could not save phase: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, phaseJSON(record))
	}
}

// HandlePhasePatch edits a phase.
// Route: PATCH /api/projects/{projectId}/phases/{id}
func HandlePhasePatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("phases", e.Request.PathValue("id"))
		if err != nil || record.GetString("project") != e.Request.PathValue("projectId") {
			return errorJSON(e, http.StatusNotFound, "Phase not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form data")
		}

		if name := formString(e, "name"); name != "" {
			record.Set("name", name)
		}
		if e.Request.Form.Has("sort_order") {
			record.Set("sort_order", formFloat(e, "sort_order"))
		}
		if e.Request.Form.Has("start_date") {
			setDateField(record, "start_date", formString(e, "start_date"))
		}
		if e.Request.Form.Has("end_date") {
			setDateField(record, "end_date", formString(e, "end_date"))
		}

		if err := app.Save(record); err != nil {
			log.Printf("phases: could not update phase %s: %v", record.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, phaseJSON(record))
	}
}

// HandlePhaseDelete removes a phase.
// Route: DELETE /api/projects/{projectId}/phases/{id}
func HandlePhaseDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("phases", e.Request.PathValue("id"))
		if err != nil || record.GetString("project") != e.Request.PathValue("projectId") {
			return errorJSON(e, http.StatusNotFound, "Phase not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("phases: could not delete phase %s: %v", record.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
