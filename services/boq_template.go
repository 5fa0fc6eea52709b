package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateBOQTemplate creates a downloadable .xlsx template with the fixed
// 11-column BOQ layout. Labor and supervisor columns get dropdowns of the
// encoded labels for the project's labor records, so the same strings the
// importer decodes are the only values offered to spreadsheet users.
func GenerateBOQTemplate(labor []LaborRecord, currency string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, boqSheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})

	columns := columnLetters(len(BOQColumns))
	for i, header := range BOQColumns {
		cell := fmt.Sprintf("%s1", columns[i])
		f.SetCellValue(boqSheetName, cell, header)
		f.SetCellStyle(boqSheetName, cell, cell, headerStyle)

		width := float64(len(header)) * 1.3
		if width < 12 {
			width = 12
		}
		f.SetColWidth(boqSheetName, columns[i], columns[i], width)
	}

	// Encoded labor labels drive both dropdowns.
	laborLabels := make([]string, 0, len(labor))
	for _, rec := range labor {
		rate := EffectiveHourlyRate(&rec, BOQMonthlyHours)
		laborLabels = append(laborLabels, EncodeLaborLabel(rec.Role, rate, currency))
	}

	dropdowns := []struct {
		col    string
		values []string
	}{
		{columns[0], CategoryOptions},
		{columns[2], UOMOptions},
		{columns[5], laborLabels},
		{columns[7], laborLabels},
	}
	for _, d := range dropdowns {
		if len(d.values) == 0 {
			continue
		}
		dv := excelize.NewDataValidation(true)
		dv.Sqref = fmt.Sprintf("%s2:%s1048576", d.col, d.col)
		dv.SetDropList(d.values)
		f.AddDataValidation(boqSheetName, dv)
	}

	// Freeze header row.
	f.SetPanes(boqSheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	addBOQInstructionsSheet(f)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel template: %w", err)
	}
	return buf.Bytes(), nil
}

// addBOQInstructionsSheet creates a hidden sheet describing each column.
func addBOQInstructionsSheet(f *excelize.File) {
	instSheet := "Instructions"
	f.NewSheet(instSheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})

	f.SetCellValue(instSheet, "A1", "BOQ Import - Instructions")
	f.SetCellStyle(instSheet, "A1", "A1", titleStyle)

	instructionHeaders := []string{"Column", "Required?", "Rule"}
	cols := columnLetters(3)
	for i, h := range instructionHeaders {
		cell := fmt.Sprintf("%s3", cols[i])
		f.SetCellValue(instSheet, cell, h)
		f.SetCellStyle(instSheet, cell, cell, headerStyle)
	}

	rules := []struct {
		column, required, rule string
	}{
		{"Category", "Required", "Pick from the dropdown or enter a custom category"},
		{"Description", "Required", "At least 3 characters"},
		{"UOM", "Required", "Unit of measure, e.g. Nos, Sqm, Lot"},
		{"Quantity", "Required", "Number greater than zero"},
		{"Unit Material Cost", "Optional", "Number, zero or more, per unit"},
		{"Labor Details", "Optional", "Pick from the dropdown; required when Labor Hours is set"},
		{"Labor Hours", "Optional", "Number, zero or more"},
		{"Supervisor Details", "Optional", "Pick from the dropdown; required when Supervision Hours is set"},
		{"Supervision Hours", "Optional", "Number, zero or more"},
		{"Direct Cost", "Optional", "Number, zero or more, per unit"},
		{"Subcontractor Cost", "Optional", "Number, zero or more, per unit"},
	}
	for i, r := range rules {
		row := fmt.Sprintf("%d", i+4)
		f.SetCellValue(instSheet, cols[0]+row, r.column)
		f.SetCellValue(instSheet, cols[1]+row, r.required)
		f.SetCellValue(instSheet, cols[2]+row, r.rule)
	}

	widths := []float64{22, 12, 60}
	for i, w := range widths {
		f.SetColWidth(instSheet, cols[i], cols[i], w)
	}

	f.SetSheetVisible(instSheet, false)
}

// columnLetters returns Excel column letters for n columns: A, B, ... Z, AA ...
func columnLetters(n int) []string {
	cols := make([]string, n)
	for i := 0; i < n; i++ {
		name, _ := excelize.ColumnNumberToName(i + 1)
		cols[i] = name
	}
	return cols
}
