package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"retrocost/collections"
	"retrocost/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Apply active project middleware globally
		se.Router.BindFunc(handlers.ActiveProjectMiddleware(app))

		// ── Project activation ───────────────────────────────────
		se.Router.POST("/api/projects/{id}/activate", handlers.HandleProjectActivate(app))
		se.Router.POST("/api/projects/deactivate", handlers.HandleProjectDeactivate(app))

		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/api/projects", handlers.HandleProjectList(app))
		se.Router.POST("/api/projects", handlers.HandleProjectCreate(app))
		se.Router.POST("/api/projects/{id}/save", handlers.HandleProjectUpdate(app))
		se.Router.DELETE("/api/projects/{id}", handlers.HandleProjectDelete(app))

		// ── Estimate configuration and results ───────────────────
		se.Router.PATCH("/api/projects/{id}/config", handlers.HandleProjectConfigUpdate(app))
		se.Router.GET("/api/projects/{id}/results", handlers.HandleProjectResults(app))

		// ── Labor records ────────────────────────────────────────
		se.Router.GET("/api/projects/{projectId}/labor/labels", handlers.HandleLaborLabels(app))
		se.Router.GET("/api/projects/{projectId}/labor", handlers.HandleLaborList(app))
		se.Router.POST("/api/projects/{projectId}/labor", handlers.HandleLaborCreate(app))
		se.Router.POST("/api/projects/{projectId}/labor/{id}/save", handlers.HandleLaborUpdate(app))
		se.Router.DELETE("/api/projects/{projectId}/labor/{id}", handlers.HandleLaborDelete(app))

		// ── BOQ line items (summary before {id} routes) ──────────
		se.Router.GET("/api/projects/{projectId}/line-items/summary", handlers.HandleLineItemSummary(app))
		se.Router.GET("/api/projects/{projectId}/line-items", handlers.HandleLineItemList(app))
		se.Router.POST("/api/projects/{projectId}/line-items", handlers.HandleLineItemAdd(app))
		se.Router.PATCH("/api/projects/{projectId}/line-items/{id}", handlers.HandleLineItemPatch(app))
		se.Router.DELETE("/api/projects/{projectId}/line-items/{id}", handlers.HandleLineItemDelete(app))

		// ── BOQ import and template ──────────────────────────────
		se.Router.GET("/api/projects/{projectId}/boq/template", handlers.HandleBOQTemplateDownload(app))
		se.Router.POST("/api/projects/{projectId}/boq/import", handlers.HandleBOQImport(app))
		se.Router.POST("/api/projects/{projectId}/boq/import/errors", handlers.HandleBOQErrorReport(app))

		// ── Itemized entry imports (before {kind}/{id} routes) ───
		se.Router.POST("/api/projects/{projectId}/items/assets/import", handlers.HandleAssetsImport(app))
		se.Router.POST("/api/projects/{projectId}/items/materials/import", handlers.HandleMaterialsImport(app))

		// ── Itemized entries (standard mode) ─────────────────────
		se.Router.GET("/api/projects/{projectId}/items/{kind}", handlers.HandleItemizedList(app))
		se.Router.POST("/api/projects/{projectId}/items/{kind}", handlers.HandleItemizedAdd(app))
		se.Router.PATCH("/api/projects/{projectId}/items/{kind}/{id}", handlers.HandleItemizedPatch(app))
		se.Router.DELETE("/api/projects/{projectId}/items/{kind}/{id}", handlers.HandleItemizedDelete(app))

		// ── Phases ───────────────────────────────────────────────
		se.Router.GET("/api/projects/{projectId}/phases", handlers.HandlePhaseList(app))
		se.Router.POST("/api/projects/{projectId}/phases", handlers.HandlePhaseAdd(app))
		se.Router.PATCH("/api/projects/{projectId}/phases/{id}", handlers.HandlePhasePatch(app))
		se.Router.DELETE("/api/projects/{projectId}/phases/{id}", handlers.HandlePhaseDelete(app))

		// ── Estimate exports ─────────────────────────────────────
		se.Router.GET("/api/projects/{projectId}/export/excel", handlers.HandleResultsExportExcel(app))
		se.Router.GET("/api/projects/{projectId}/export/pdf", handlers.HandleResultsExportPDF(app))

		// Redirect home to the active project's results, or the project list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			activeProject := handlers.GetActiveProject(e.Request)
			if activeProject != nil {
				return e.Redirect(http.StatusFound, fmt.Sprintf("/api/projects/%s/results", activeProject.ID))
			}
			return e.Redirect(http.StatusFound, "/api/projects")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
