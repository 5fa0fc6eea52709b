package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"retrocost/testhelpers"
)

func TestHandleItemizedAdd_Asset(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Asset Project", "standard")

	handler := HandleItemizedAdd(app)

	form := url.Values{}
	form.Set("name", "AHU Unit")
	form.Set("quantity", "2")
	form.Set("unit_cost", "1200")
	form.Set("removal_cost", "150")

	req := newFormRequest(http.MethodPost, "/test", form)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("kind", "assets")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	records, _ := app.FindRecordsByFilter("assets", "project = {:p}", "", 0, 0,
		map[string]any{"p": project.Id})
	if len(records) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(records))
	}
	if got := records[0].GetFloat("unit_cost"); got != 1200 {
		t.Errorf("expected unit_cost 1200, got %v", got)
	}
}

func TestHandleItemizedAdd_UnknownKind(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Unknown Kind Project", "standard")

	handler := HandleItemizedAdd(app)

	form := url.Values{}
	form.Set("name", "Whatever")

	req := newFormRequest(http.MethodPost, "/test", form)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("kind", "gadgets")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown kind, got %d", rec.Code)
	}
}

func TestHandleItemizedAdd_MissingRequired(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Required Fields Project", "standard")

	handler := HandleItemizedAdd(app)

	form := url.Values{}
	form.Set("unit", "Kg")
	form.Set("unit_rate", "5")
	form.Set("quantity", "100")

	req := newFormRequest(http.MethodPost, "/test", form)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("kind", "materials")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing category/item, got %d", rec.Code)
	}
}

func TestHandleItemizedAdd_ManpowerZeroHours(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Manpower Project", "standard")
	labor := testhelpers.CreateTestLaborRecord(t, app, project.Id, "Technician", 0, 28)

	handler := HandleItemizedAdd(app)

	form := url.Values{}
	form.Set("labor", labor.Id)
	form.Set("quantity", "3")
	form.Set("hours", "0")

	req := newFormRequest(http.MethodPost, "/test", form)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("kind", "manpower")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for zero hours, got %d", rec.Code)
	}
}

func TestHandleItemizedList_Subcontractors(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Sub Project", "standard")

	addHandler := HandleItemizedAdd(app)
	form := url.Values{}
	form.Set("name", "FireStop LLC")
	form.Set("scope", "Fire sealing")
	form.Set("total_cost", "8500")

	req := newFormRequest(http.MethodPost, "/test", form)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("kind", "subcontractors")
	rec := httptest.NewRecorder()
	if err := addHandler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("add handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	listHandler := HandleItemizedList(app)
	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("kind", "subcontractors")
	rec = httptest.NewRecorder()
	if err := listHandler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("list handler returned error: %v", err)
	}

	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(body) != 1 {
		t.Fatalf("expected 1 subcontractor, got %d", len(body))
	}
	if got := body[0]["total_cost"].(float64); got != 8500 {
		t.Errorf("expected total_cost 8500, got %v", got)
	}
}

func TestHandleItemizedPatch(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Patch Asset Project", "standard")
	asset := testhelpers.CreateTestAsset(t, app, project.Id, "Chiller", 1, 5000, 300)

	handler := HandleItemizedPatch(app)

	form := url.Values{}
	form.Set("removal_cost", "450")

	req := newFormRequest(http.MethodPatch, "/test", form)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("kind", "assets")
	req.SetPathValue("id", asset.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated, err := app.FindRecordById("assets", asset.Id)
	if err != nil {
		t.Fatalf("failed to reload asset: %v", err)
	}
	if got := updated.GetFloat("removal_cost"); got != 450 {
		t.Errorf("expected removal_cost 450, got %v", got)
	}
	if got := updated.GetFloat("unit_cost"); got != 5000 {
		t.Errorf("expected unit_cost untouched, got %v", got)
	}
}

func TestHandleItemizedDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Delete Asset Project", "standard")
	asset := testhelpers.CreateTestAsset(t, app, project.Id, "Old Pump", 1, 900, 50)

	handler := HandleItemizedDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/test", nil)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("kind", "assets")
	req.SetPathValue("id", asset.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("assets", asset.Id); err == nil {
		t.Error("expected asset to be deleted")
	}
}
