package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"retrocost/services"
)

// HandleAssetsImport receives an assets workbook upload and appends the
// validated rows to the project in one transaction.
// Route: POST /api/projects/{projectId}/items/assets/import
func HandleAssetsImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		file, err := importUpload(e)
		if err != nil {
			return errorJSON(e, http.StatusBadRequest, err.Error())
		}
		defer file.Close()

		result, err := services.ImportAssets(file)
		if err != nil {
			log.Printf("sheet_import: assets: %v", err)
			return errorJSON(e, http.StatusBadRequest, err.Error())
		}
		if len(result.Errors) > 0 {
			return e.JSON(http.StatusUnprocessableEntity, result)
		}

		err = app.RunInTransaction(func(txApp core.App) error {
			col, err := txApp.FindCollectionByNameOrId("assets")
			if err != nil {
				return fmt.Errorf("find assets collection: %w", err)
			}
			for _, item := range result.Items {
				rec := core.NewRecord(col)
				rec.Set("project", projectID)
				rec.Set("name", item.Name)
				rec.Set("description", item.Description)
				rec.Set("quantity", item.Quantity)
				rec.Set("unit_cost", item.UnitCost)
				rec.Set("removal_cost", item.RemovalCost)
				if err := txApp.Save(rec); err != nil {
					return fmt.Errorf("save asset %q: %w", item.Name, err)
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("sheet_import: assets commit: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, result)
	}
}

// HandleMaterialsImport receives a materials workbook upload and appends the
// validated rows to the project in one transaction.
// Route: POST /api/projects/{projectId}/items/materials/import
func HandleMaterialsImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		file, err := importUpload(e)
		if err != nil {
			return errorJSON(e, http.StatusBadRequest, err.Error())
		}
		defer file.Close()

		result, err := services.ImportMaterials(file)
		if err != nil {
			log.Printf("sheet_import: materials: %v", err)
			return errorJSON(e, http.StatusBadRequest, err.Error())
		}
		if len(result.Errors) > 0 {
			return e.JSON(http.StatusUnprocessableEntity, result)
		}

		err = app.RunInTransaction(func(txApp core.App) error {
			col, err := txApp.FindCollectionByNameOrId("material_items")
			if err != nil {
				return fmt.Errorf("find material_items collection: %w", err)
			}
			for _, item := range result.Items {
				rec := core.NewRecord(col)
				rec.Set("project", projectID)
				rec.Set("category", item.Category)
				rec.Set("item", item.Item)
				rec.Set("unit", item.Unit)
				rec.Set("unit_rate", item.UnitRate)
				rec.Set("quantity", item.Quantity)
				rec.Set("notes", item.Notes)
				if err := txApp.Save(rec); err != nil {
					return fmt.Errorf("save material %q: %w", item.Item, err)
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("sheet_import: materials commit: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, result)
	}
}

// importUpload parses the multipart form and returns the uploaded file.
func importUpload(e *core.RequestEvent) (multipart.File, error) {
	if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
		return nil, fmt.Errorf("File too large or invalid form data")
	}
	file, _, err := e.Request.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("Please select a file to upload")
	}
	return file, nil
}
