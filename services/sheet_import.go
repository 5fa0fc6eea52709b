package services

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// AssetColumns is the fixed layout of the assets sheet.
var AssetColumns = []string{"Name", "Description", "Quantity", "Unit Cost", "Removal Cost"}

// MaterialColumns is the fixed layout of the materials sheet.
var MaterialColumns = []string{"Category", "Item", "Unit", "Unit Rate", "Quantity", "Notes"}

// AssetImportResult is the outcome of one assets import attempt, with the
// same all-or-nothing batch policy as the BOQ import.
type AssetImportResult struct {
	Items     []Asset           `json:"items,omitempty"`
	Errors    []ValidationError `json:"errors,omitempty"`
	TotalRows int               `json:"total_rows"`
}

// MaterialImportResult is the outcome of one materials import attempt.
type MaterialImportResult struct {
	Items     []MaterialItem    `json:"items,omitempty"`
	Errors    []ValidationError `json:"errors,omitempty"`
	TotalRows int               `json:"total_rows"`
}

// ImportAssets parses an assets workbook: per-row required-field checks, no
// cross-reference resolution.
func ImportAssets(file io.Reader) (*AssetImportResult, error) {
	rows, err := readFirstSheet(file)
	if err != nil {
		return nil, err
	}

	result := &AssetImportResult{}
	for rowIdx, row := range rows {
		if rowIdx == 0 {
			continue
		}
		rowNum := rowIdx + 1

		name := cellAt(row, 0)
		description := cellAt(row, 1)
		if name == "" && description == "" {
			continue
		}
		result.TotalRows++

		var rowErrors []ValidationError
		addErr := func(field, message string) {
			rowErrors = append(rowErrors, ValidationError{Row: rowNum, Field: field, Message: message})
		}

		if name == "" {
			addErr("Name", "Name is required")
		}
		quantity, ok := parseCellFloat(cellAt(row, 2))
		if !ok {
			addErr("Quantity", "Quantity must be a number")
		} else if quantity <= 0 {
			addErr("Quantity", "Quantity must be greater than zero")
		}
		unitCost := parseCostCell(row, 3, "Unit Cost", addErr)
		removalCost := parseCostCell(row, 4, "Removal Cost", addErr)

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}

		result.Items = append(result.Items, Asset{
			ID:          uuid.NewString(),
			Name:        name,
			Description: description,
			Quantity:    quantity,
			UnitCost:    unitCost,
			RemovalCost: removalCost,
		})
	}

	if len(result.Errors) > 0 {
		result.Items = nil
		return result, nil
	}
	if len(result.Items) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Row: 0, Field: "file", Message: "no data rows found",
		})
	}
	return result, nil
}

// ImportMaterials parses a materials workbook.
func ImportMaterials(file io.Reader) (*MaterialImportResult, error) {
	rows, err := readFirstSheet(file)
	if err != nil {
		return nil, err
	}

	result := &MaterialImportResult{}
	for rowIdx, row := range rows {
		if rowIdx == 0 {
			continue
		}
		rowNum := rowIdx + 1

		category := cellAt(row, 0)
		item := cellAt(row, 1)
		if category == "" && item == "" {
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
		if item == "" {
			addErr("Item", "Item is required")
		}
		unit := cellAt(row, 2)
		if unit == "" {
			addErr("Unit", "Unit is required")
		}
		unitRate := parseCostCell(row, 3, "Unit Rate", addErr)
		quantity, ok := parseCellFloat(cellAt(row, 4))
		if !ok {
			addErr("Quantity", "Quantity must be a number")
		} else if quantity <= 0 {
			addErr("Quantity", "Quantity must be greater than zero")
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}

		result.Items = append(result.Items, MaterialItem{
			ID:       uuid.NewString(),
			Category: category,
			Item:     item,
			Unit:     unit,
			UnitRate: unitRate,
			Quantity: quantity,
			Notes:    cellAt(row, 5),
		})
	}

	if len(result.Errors) > 0 {
		result.Items = nil
		return result, nil
	}
	if len(result.Items) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Row: 0, Field: "file", Message: "no data rows found",
		})
	}
	return result, nil
}

// readFirstSheet opens a workbook and returns the rows of its first sheet.
func readFirstSheet(file io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
