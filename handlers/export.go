package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"retrocost/services"
)

// buildProjectResults loads a project snapshot and runs the full estimate
// pipeline for the export handlers.
func buildProjectResults(app *pocketbase.PocketBase, projectID string) (services.Results, error) {
	state, err := services.LoadProjectState(app, projectID)
	if err != nil {
		return services.Results{}, err
	}
	return services.BuildResults(state)
}

// exportFilename builds "<Project>_Estimate_<date>.<ext>" with spaces
// collapsed to underscores.
func exportFilename(projectName, ext string) string {
	name := strings.ReplaceAll(strings.TrimSpace(projectName), " ", "_")
	if name == "" {
		name = "Project"
	}
	return fmt.Sprintf("%s_Estimate_%s.%s", name, time.Now().Format("2006-01-02"), ext)
}

// HandleResultsExportExcel downloads the estimate workbook.
// Route: GET /api/projects/{projectId}/export/excel
func HandleResultsExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		res, err := buildProjectResults(app, e.Request.PathValue("projectId"))
		if err != nil {
			log.Printf("export: excel: %v", err)
			return errorJSON(e, http.StatusNotFound, "Project not found or has invalid configuration")
		}

		xlsxBytes, err := services.GenerateResultsExcel(res, time.Now().Format("02 Jan 2006"))
		if err != nil {
			log.Printf("export: excel generation: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, exportFilename(res.ProjectName, "xlsx")))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleResultsExportPDF downloads the estimate document.
// Route: GET /api/projects/{projectId}/export/pdf
func HandleResultsExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		res, err := buildProjectResults(app, e.Request.PathValue("projectId"))
		if err != nil {
			log.Printf("export: pdf: %v", err)
			return errorJSON(e, http.StatusNotFound, "Project not found or has invalid configuration")
		}

		pdfBytes, err := services.GenerateResultsPDF(res, time.Now().Format("02 Jan 2006"))
		if err != nil {
			log.Printf("export: pdf generation: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, exportFilename(res.ProjectName, "pdf")))
		e.Response.Write(pdfBytes)
		return nil
	}
}
