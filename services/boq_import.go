package services

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one row. Row is
// the 1-based spreadsheet row number; batch-level errors use row 0.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult is the outcome of one BOQ import attempt. Errors and Items
// are mutually exclusive: any error anywhere fails the whole batch and no
// items are committed, because a partially-imported BOQ would silently
// under-price the project.
type ImportResult struct {
	Items     []LineItem        `json:"items,omitempty"`
	Summary   CostSummary       `json:"summary"`
	Errors    []ValidationError `json:"errors,omitempty"`
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
}

// Failed reports whether the import attempt produced any error.
func (r *ImportResult) Failed() bool {
	return len(r.Errors) > 0
}

// boqSheetName is the worksheet read in template mode; imports fall back to
// the first sheet when it is absent.
const boqSheetName = "BOQ"

// BOQColumns is the fixed 11-column layout of the BOQ sheet, in order.
var BOQColumns = []string{
	"Category",
	"Description",
	"UOM",
	"Quantity",
	"Unit Material Cost",
	"Labor Details",
	"Labor Hours",
	"Supervisor Details",
	"Supervision Hours",
	"Direct Cost",
	"Subcontractor Cost",
}

// ImportBOQ parses an uploaded BOQ workbook, validates every data row, and
// resolves labor/supervisor label cells back to labor record IDs.
//
// Validation does not short-circuit: every rule violation on every row is
// collected so the user can fix the whole spreadsheet in one pass. On
// success the result also carries the aggregated CostSummary for immediate
// display.
func ImportBOQ(file io.Reader, labor []LaborRecord) (*ImportResult, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := boqSheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return &ImportResult{
			Errors: []ValidationError{{Row: 0, Field: "file", Message: "no worksheet found"}},
		}, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	result := &ImportResult{}
	errorRowSet := make(map[int]bool)

	for rowIdx, row := range rows {
		if rowIdx == 0 {
			continue // header
		}
		rowNum := rowIdx + 1 // 1-based spreadsheet row number

		category := cellAt(row, 0)
		description := cellAt(row, 1)
		uom := cellAt(row, 2)

		// A row blank across category/description/UOM is a spreadsheet
		// spacer, not an error.
		if category == "" && description == "" && uom == "" {
			continue
		}
		result.TotalRows++

		var rowErrors []ValidationError
		addErr := func(field, message string) {
			rowErrors = append(rowErrors, ValidationError{Row: rowNum, Field: field, Message: message})
		}

		if category == "" {
			addErr("Category", "Category is required")
		}
		if description == "" {
			addErr("Description", "Description is required")
		} else if len(description) < 3 {
			addErr("Description", "Description must be at least 3 characters")
		}
		if uom == "" {
			addErr("UOM", "UOM is required")
		}

		quantity, ok := parseCellFloat(cellAt(row, 3))
		if !ok {
			addErr("Quantity", "Quantity must be a number")
		} else if quantity <= 0 {
			addErr("Quantity", "Quantity must be greater than zero")
		}

		unitMaterialCost := parseCostCell(row, 4, "Unit Material Cost", addErr)
		laborHours := parseCostCell(row, 6, "Labor Hours", addErr)
		supervisionHours := parseCostCell(row, 8, "Supervision Hours", addErr)
		directCost := parseCostCell(row, 9, "Direct Cost", addErr)
		subcontractorCost := parseCostCell(row, 10, "Subcontractor Cost", addErr)

		laborID := resolveLaborCell(cellAt(row, 5), laborHours, "Labor Details", labor, addErr)
		supervisorID := resolveLaborCell(cellAt(row, 7), supervisionHours, "Supervisor Details", labor, addErr)

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			errorRowSet[rowNum] = true
			continue
		}

		result.Items = append(result.Items, LineItem{
			ID:                uuid.NewString(),
			Category:          category,
			Description:       description,
			UOM:               uom,
			Quantity:          quantity,
			UnitMaterialCost:  unitMaterialCost,
			LaborID:           laborID,
			LaborHours:        laborHours,
			SupervisorID:      supervisorID,
			SupervisionHours:  supervisionHours,
			DirectCost:        directCost,
			SubcontractorCost: subcontractorCost,
		})
	}

	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	// All-or-nothing: one bad row anywhere fails the entire import.
	if len(result.Errors) > 0 {
		result.Items = nil
		result.ValidRows = 0
		return result, nil
	}

	if len(result.Items) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Row: 0, Field: "file", Message: "no data rows found",
		})
		return result, nil
	}

	result.Summary = SummarizeLineItems(result.Items, NewLaborTable(labor))
	return result, nil
}

// resolveLaborCell decodes a labor/supervisor label cell and looks the role
// up in the labor table. Hours without an identified resource is
// inconsistent data; a label without hours is a legitimate "no cost assigned
// yet" state.
func resolveLaborCell(cell string, hours float64, field string, labor []LaborRecord, addErr func(field, message string)) string {
	if cell == "" {
		if hours > 0 {
			addErr(field, fmt.Sprintf("%s is required when hours are specified", field))
		}
		return ""
	}

	role, _, _, err := DecodeLaborLabel(cell)
	if err != nil {
		addErr(field, fmt.Sprintf("Unrecognized format %q, expected \"Role (Rate CUR/hr)\"", cell))
		return ""
	}

	rec := FindLaborByRole(labor, role)
	if rec == nil {
		addErr(field, fmt.Sprintf("No labor record with role %q found", role))
		return ""
	}
	return rec.ID
}

// parseCostCell coerces an optional numeric cell. Empty cells silently
// become 0; a non-empty cell that is not a number, or is negative, is a
// structural validation error.
func parseCostCell(row []string, col int, field string, addErr func(field, message string)) float64 {
	raw := cellAt(row, col)
	if raw == "" {
		return 0
	}
	v, ok := parseCellFloat(raw)
	if !ok {
		addErr(field, fmt.Sprintf("%s must be a number", field))
		return 0
	}
	if v < 0 {
		addErr(field, fmt.Sprintf("%s cannot be negative", field))
		return 0
	}
	return v
}

func parseCellFloat(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := cast.ToFloat64E(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return 0, false
	}
	return v, true
}

// cellAt returns the trimmed cell value, tolerating rows that excelize
// returns short of the full column count.
func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// GenerateErrorReport creates a downloadable .xlsx file from validation
// errors so a failed import can be fixed offline in one pass.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
