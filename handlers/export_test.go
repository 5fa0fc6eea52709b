package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"retrocost/testhelpers"
)

func TestHandleResultsExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Excel Export Project", "boq")
	testhelpers.CreateTestLineItem(t, app, project.Id, "Electrical", "Cable trays", 10, 25)

	handler := HandleResultsExportExcel(app)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != xlsxContentType {
		t.Errorf("unexpected content-type: %s", got)
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "Excel_Export_Project_Estimate_") {
		t.Errorf("unexpected content-disposition: %s", disposition)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("downloaded export is not a workbook: %v", err)
	}
	defer f.Close()
	if idx, _ := f.GetSheetIndex("Estimate"); idx < 0 {
		t.Error("expected Estimate sheet in export")
	}
}

func TestHandleResultsExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "PDF Export Project", "boq")
	testhelpers.CreateTestLineItem(t, app, project.Id, "Civil", "Demolition works", 2, 500)

	handler := HandleResultsExportPDF(app)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("unexpected content-type: %s", got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("expected PDF magic bytes in response body")
	}
}

func TestHandleResultsExport_InvalidProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleResultsExportExcel(app)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.SetPathValue("projectId", "nonexistent")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		name    string
		project string
		ext     string
		prefix  string
	}{
		{"spaces replaced", "Warehouse Retrofit", "xlsx", "Warehouse_Retrofit_Estimate_"},
		{"empty name", "", "pdf", "Project_Estimate_"},
		{"trimmed", "  Edge  ", "pdf", "Edge_Estimate_"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exportFilename(tt.project, tt.ext)
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("exportFilename(%q) = %q, want prefix %q", tt.project, got, tt.prefix)
			}
			if !strings.HasSuffix(got, "."+tt.ext) {
				t.Errorf("exportFilename(%q) = %q, want suffix .%s", tt.project, got, tt.ext)
			}
		})
	}
}
