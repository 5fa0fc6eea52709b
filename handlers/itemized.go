package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// itemizedEntry describes one itemized-entry collection: its form fields and
// which of them are required. All six variants share the same CRUD shape, so
// the handlers are table-driven.
type itemizedEntry struct {
	collection     string
	textFields     []string
	numberFields   []string
	relationFields []string
	required       []string
	positive       []string
}

var itemizedEntries = map[string]itemizedEntry{
	"manpower": {
		collection:     "manpower_items",
		numberFields:   []string{"quantity", "hours"},
		relationFields: []string{"labor"},
		positive:       []string{"quantity", "hours"},
	},
	"assets": {
		collection:   "assets",
		textFields:   []string{"name", "description"},
		numberFields: []string{"quantity", "unit_cost", "removal_cost"},
		required:     []string{"name"},
		positive:     []string{"quantity"},
	},
	"materials": {
		collection:   "material_items",
		textFields:   []string{"category", "item", "unit", "notes"},
		numberFields: []string{"unit_rate", "quantity"},
		required:     []string{"category", "item", "unit"},
		positive:     []string{"quantity"},
	},
	"subcontractors": {
		collection:   "subcontractors",
		textFields:   []string{"name", "scope"},
		numberFields: []string{"total_cost"},
		required:     []string{"name"},
	},
	"supervision": {
		collection:     "supervision_roles",
		numberFields:   []string{"hours"},
		relationFields: []string{"labor"},
		positive:       []string{"hours"},
	},
	"logistics": {
		collection:   "logistics_items",
		textFields:   []string{"description"},
		numberFields: []string{"total_cost"},
		required:     []string{"description"},
	},
}

func itemizedRecordJSON(entry itemizedEntry, rec *core.Record) map[string]any {
	out := map[string]any{"id": rec.Id}
	for _, f := range entry.textFields {
		out[f] = rec.GetString(f)
	}
	for _, f := range entry.numberFields {
		out[f] = rec.GetFloat(f)
	}
	for _, f := range entry.relationFields {
		out[f] = rec.GetString(f)
	}
	return out
}

// HandleItemizedList returns a project's entries of one itemized kind.
// Route: GET /api/projects/{projectId}/items/{kind}
func HandleItemizedList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		entry, ok := itemizedEntries[e.Request.PathValue("kind")]
		if !ok {
			return errorJSON(e, http.StatusNotFound, "Unknown item kind")
		}
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter(entry.collection,
			"project = {:projectId}", "", 0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("itemized: could not list %s: %v", entry.collection, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, itemizedRecordJSON(entry, rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleItemizedAdd creates an entry of one itemized kind.
// Route: POST /api/projects/{projectId}/items/{kind}
func HandleItemizedAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		entry, ok := itemizedEntries[e.Request.PathValue("kind")]
		if !ok {
			return errorJSON(e, http.StatusNotFound, "Unknown item kind")
		}
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form data")
		}

		for _, f := range entry.required {
			if formString(e, f) == "" {
				return errorJSON(e, http.StatusBadRequest, f+" is required")
			}
		}
		for _, f := range entry.positive {
			if formFloat(e, f) <= 0 {
				return errorJSON(e, http.StatusBadRequest, f+" must be greater than zero")
			}
		}

		col, err := app.FindCollectionByNameOrId(entry.collection)
		if err != nil {
			log.Printf("itemized: could not find %s collection: %v", entry.collection, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		for _, f := range entry.textFields {
			record.Set(f, formString(e, f))
		}
		for _, f := range entry.numberFields {
			record.Set(f, formFloat(e, f))
		}
		for _, f := range entry.relationFields {
			record.Set(f, formString(e, f))
		}

		if err := app.Save(record); err != nil {
			log.Printf("itemized: could not save %s entry: %v", entry.collection, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, itemizedRecordJSON(entry, record))
	}
}

// HandleItemizedPatch edits individual fields of an itemized entry.
// Route: PATCH /api/projects/{projectId}/items/{kind}/{id}
func HandleItemizedPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		entry, ok := itemizedEntries[e.Request.PathValue("kind")]
		if !ok {
			return errorJSON(e, http.StatusNotFound, "Unknown item kind")
		}
		record, err := app.FindRecordById(entry.collection, e.Request.PathValue("id"))
		if err != nil || record.GetString("project") != e.Request.PathValue("projectId") {
			return errorJSON(e, http.StatusNotFound, "Item not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form data")
		}

		for _, f := range entry.textFields {
			if e.Request.Form.Has(f) {
				record.Set(f, formString(e, f))
			}
		}
		for _, f := range entry.numberFields {
			if e.Request.Form.Has(f) {
				record.Set(f, formFloat(e, f))
			}
		}
		for _, f := range entry.relationFields {
			if e.Request.Form.Has(f) {
				record.Set(f, formString(e, f))
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("itemized: could not update %s entry %s: %v", entry.collection, record.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, itemizedRecordJSON(entry, record))
	}
}

// HandleItemizedDelete removes an itemized entry.
// Route: DELETE /api/projects/{projectId}/items/{kind}/{id}
func HandleItemizedDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		entry, ok := itemizedEntries[e.Request.PathValue("kind")]
		if !ok {
			return errorJSON(e, http.StatusNotFound, "Unknown item kind")
		}
		record, err := app.FindRecordById(entry.collection, e.Request.PathValue("id"))
		if err != nil || record.GetString("project") != e.Request.PathValue("projectId") {
			return errorJSON(e, http.StatusNotFound, "Item not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("itemized: could not delete %s entry %s: %v", entry.collection, record.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
