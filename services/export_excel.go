package services

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// GenerateResultsExcel creates a results workbook from a computed Results
// object: cost-kind totals, the full markup chain, the per-category
// breakdown, and the aggregate quantities.
func GenerateResultsExcel(res Results, generatedDate string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Estimate"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C"}
	lastCol := columns[len(columns)-1]

	widths := []float64{34, 20, 12}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	lineStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// ── Header rows ─────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(res.ProjectName))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A2", "Date: "+generatedDate)
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	row := 4
	writeSection := func(title string) {
		rowStr := fmt.Sprintf("%d", row)
		f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr)
		f.SetCellValue(sheetName, "A"+rowStr, title)
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, sectionStyle)
		row++
	}
	writeLine := func(label string, amount float64, bold bool) {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, label)
		f.SetCellValue(sheetName, "B"+rowStr, FormatMoney(amount, res.Currency))
		style := lineStyle
		if bold {
			style = totalStyle
		}
		f.SetCellStyle(sheetName, "A"+rowStr, "B"+rowStr, style)
		row++
	}

	// ── Cost summary ────────────────────────────────────────────────────

	writeSection("Cost Summary")
	writeLine("Materials", res.Summary.MaterialTotal, false)
	writeLine("Labor", res.Summary.LaborTotal, false)
	writeLine("Supervision", res.Summary.SupervisionTotal, false)
	writeLine("Direct Costs", res.Summary.DirectTotal, false)
	writeLine("Subcontractors", res.Summary.SubcontractorTotal, false)
	writeLine("Base Cost", res.Summary.GrandTotal, true)
	row++

	// ── Markup chain: every intermediate amount gets its own line ───────

	writeSection("Markups")
	writeLine("Overheads", res.Markups.OverheadsCost, false)
	writeLine("Risk & Contingency", res.Markups.RiskContingencyCost, false)
	writeLine("PM & Generals", res.Markups.PMGeneralsCost, false)
	writeLine("Performance Bond", res.Markups.PerformanceBondCost, false)
	writeLine("Insurance", res.Markups.InsuranceCost, false)
	writeLine("Warranty", res.Markups.WarrantyCost, false)
	writeLine("Subtotal", res.Markups.Subtotal, true)
	writeLine("Profit", res.Markups.ProfitAmount, false)
	writeLine("Grand Total", res.Markups.GrandTotal, true)
	row++

	// ── Category breakdown (sorted for a stable document) ───────────────

	writeSection("Category Breakdown")
	categories := make([]string, 0, len(res.Summary.Categories))
	for category := range res.Summary.Categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		total := res.Summary.Categories[category]
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(category))
		f.SetCellValue(sheetName, "B"+rowStr, FormatMoney(total, res.Currency))
		f.SetCellValue(sheetName, "C"+rowStr, FormatPercent(res.CategoryShares[category]))
		f.SetCellStyle(sheetName, "A"+rowStr, "C"+rowStr, lineStyle)
		row++
	}
	row++

	// ── Aggregate quantities ────────────────────────────────────────────

	writeSection("Quantities")
	quantityLines := []struct {
		label string
		value string
	}{
		{"Project Duration (days)", fmt.Sprintf("%d", res.DurationDays)},
		{"Total Manpower Hours", fmt.Sprintf("%.1f", res.TotalManpowerHours)},
		{"Total Asset Units", fmt.Sprintf("%.1f", res.TotalAssetUnits)},
		{"Cost per Asset Unit", FormatMoney(res.CostPerAssetUnit, res.Currency)},
	}
	for _, q := range quantityLines {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, q.label)
		f.SetCellValue(sheetName, "B"+rowStr, q.value)
		f.SetCellStyle(sheetName, "A"+rowStr, "B"+rowStr, lineStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
