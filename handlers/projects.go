package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"retrocost/services"
)

// ProjectModeOptions are the accepted values for a project's mode field.
var ProjectModeOptions = []string{services.ModeStandard, services.ModeBOQ}

// projectJSON is the list/detail representation of a project record.
func projectJSON(rec *core.Record) map[string]any {
	out := map[string]any{
		"id":       rec.Id,
		"name":     rec.GetString("name"),
		"client":   rec.GetString("client"),
		"mode":     rec.GetString("mode"),
		"currency": rec.GetString("currency"),
		"config":   services.ConfigFromRecord(rec),
	}
	if start := rec.GetDateTime("start_date"); !start.IsZero() {
		out["start_date"] = start.Time().UTC().Format("2006-01-02")
	}
	if end := rec.GetDateTime("end_date"); !end.IsZero() {
		out["end_date"] = end.Time().UTC().Format("2006-01-02")
	}
	return out
}

// HandleProjectList returns all projects.
// Route: GET /api/projects
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("projects: could not find projects collection: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindAllRecords(projectsCol)
		if err != nil {
			log.Printf("projects: could not list projects: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, projectJSON(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleProjectCreate creates a project.
// Route: POST /api/projects
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form data")
		}

		name := formString(e, "name")
		if name == "" {
			return errorJSON(e, http.StatusBadRequest, "Project name is required")
		}

		existing, _ := app.FindRecordsByFilter(
			"projects",
			"name = {:name}",
			"", 1, 0,
			map[string]any{"name": name},
		)
		if len(existing) > 0 {
			return errorJSON(e, http.StatusBadRequest, "A project with this name already exists")
		}

		mode := formString(e, "mode")
		validMode := false
		for _, m := range ProjectModeOptions {
			if mode == m {
				validMode = true
				break
			}
		}
		if !validMode {
			mode = services.ModeStandard
		}

		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("projects: could not find projects collection: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(projectsCol)
		record.Set("name", name)
		record.Set("client", formString(e, "client"))
		record.Set("mode", mode)
		record.Set("currency", formString(e, "currency"))
		setDateField(record, "start_date", formString(e, "start_date"))
		setDateField(record, "end_date", formString(e, "end_date"))

		if err := app.Save(record); err != nil {
			log.Printf("projects: could not save project: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, projectJSON(record))
	}
}

// HandleProjectUpdate updates a project's identity fields and dates.
// Route: POST /api/projects/{id}/save
func HandleProjectUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form data")
		}

		if name := formString(e, "name"); name != "" {
			record.Set("name", name)
		}
		if e.Request.Form.Has("client") {
			record.Set("client", formString(e, "client"))
		}
		if mode := formString(e, "mode"); mode != "" {
			valid := false
			for _, m := range ProjectModeOptions {
				if mode == m {
					valid = true
					break
				}
			}
			if !valid {
				return errorJSON(e, http.StatusBadRequest, "Invalid project mode")
			}
			record.Set("mode", mode)
		}
		if e.Request.Form.Has("currency") {
			record.Set("currency", formString(e, "currency"))
		}
		if e.Request.Form.Has("start_date") {
			setDateField(record, "start_date", formString(e, "start_date"))
		}
		if e.Request.Form.Has("end_date") {
			setDateField(record, "end_date", formString(e, "end_date"))
		}

		if err := app.Save(record); err != nil {
			log.Printf("projects: could not update project %s: %v", record.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, projectJSON(record))
	}
}

// HandleProjectDelete removes a project; its labor records, line items,
// itemized entries and phases cascade with it.
// Route: DELETE /api/projects/{id}
func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("projects: could not delete project %s: %v", record.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// HandleProjectConfigUpdate updates the seven markup knobs. The whole update
// is rejected when any knob falls outside [0, 100).
// Route: PATCH /api/projects/{id}/config
func HandleProjectConfigUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form data")
		}

		cfg := services.ConfigFromRecord(record)
		knobs := []struct {
			field string
			dst   *float64
		}{
			{"overheads_percent", &cfg.OverheadsPercent},
			{"risk_percent", &cfg.RiskPercent},
			{"pm_percent", &cfg.PMPercent},
			{"bond_percent", &cfg.BondPercent},
			{"insurance_percent", &cfg.InsurancePercent},
			{"warranty_percent", &cfg.WarrantyPercent},
			{"profit_percent", &cfg.ProfitPercent},
		}
		for _, k := range knobs {
			if e.Request.Form.Has(k.field) {
				*k.dst = formFloat(e, k.field)
			}
		}

		if err := cfg.Validate(); err != nil {
			return errorJSON(e, http.StatusBadRequest, err.Error())
		}

		for _, k := range knobs {
			record.Set(k.field, *k.dst)
		}
		if err := app.Save(record); err != nil {
			log.Printf("projects: could not save config for %s: %v", record.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, cfg)
	}
}

// HandleProjectResults recalculates and returns the full estimate for a
// project: summary, markup chain, category shares and quantities.
// Route: GET /api/projects/{id}/results
func HandleProjectResults(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		state, err := services.LoadProjectState(app, e.Request.PathValue("id"))
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		res, err := services.BuildResults(state)
		if err != nil {
			return errorJSON(e, http.StatusBadRequest, err.Error())
		}

		return e.JSON(http.StatusOK, res)
	}
}

// HandleProjectActivate marks a project active via cookie so subsequent
// navigation is project-scoped.
// Route: POST /api/projects/{id}/activate
func HandleProjectActivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     "active_project",
			Value:    record.Id,
			Path:     "/",
			MaxAge:   60 * 60 * 24 * 30,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return e.JSON(http.StatusOK, projectJSON(record))
	}
}

// HandleProjectDeactivate clears the active project cookie.
// Route: POST /api/projects/deactivate
func HandleProjectDeactivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		http.SetCookie(e.Response, &http.Cookie{
			Name:   "active_project",
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		return e.JSON(http.StatusOK, map[string]string{"status": "deactivated"})
	}
}

// setDateField stores an ISO date string, clearing the field when empty.
func setDateField(record *core.Record, field, value string) {
	if value == "" {
		record.Set(field, "")
		return
	}
	record.Set(field, value+" 00:00:00.000Z")
}
