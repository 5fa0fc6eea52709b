package services

import (
	"fmt"
	"sort"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateResultsPDF creates a PDF estimate document from a computed
// Results object using maroto/v2.
func GenerateResultsPDF(res Results, generatedDate string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addResultsHeader(m, res, generatedDate)
	addCostSummarySection(m, res)
	addMarkupSection(m, res)
	addCategorySection(m, res)
	addQuantitiesSection(m, res)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addResultsHeader adds the project title and date.
func addResultsHeader(m core.Maroto, res Results, generatedDate string) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(res.ProjectName, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New("Cost Estimate", props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", generatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
	m.AddRows(row.New(4))
}

// addSectionTitle adds a dark banner row naming the following block.
func addSectionTitle(m core.Maroto, title string) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 255, Green: 255, Blue: 255},
				}),
			).WithStyle(&props.Cell{BackgroundColor: headerBg}),
		),
	)
}

// addAmountRow adds one label/amount line, optionally emphasised.
func addAmountRow(m core.Maroto, label, amount string, emphasised bool) {
	textStyle := props.Text{Size: 8, Align: align.Left}
	valueStyle := props.Text{Size: 8, Align: align.Right}
	var cellStyle *props.Cell
	if emphasised {
		textStyle.Style = fontstyle.Bold
		valueStyle.Style = fontstyle.Bold
		cellStyle = &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	}

	labelCol := col.New(8).Add(text.New(label, textStyle))
	valueCol := col.New(4).Add(text.New(amount, valueStyle))
	if cellStyle != nil {
		labelCol = labelCol.WithStyle(cellStyle)
		valueCol = valueCol.WithStyle(cellStyle)
	}
	m.AddRows(row.New(7).Add(labelCol, valueCol))
}

func addCostSummarySection(m core.Maroto, res Results) {
	addSectionTitle(m, "Cost Summary")
	addAmountRow(m, "Materials", FormatMoney(res.Summary.MaterialTotal, res.Currency), false)
	addAmountRow(m, "Labor", FormatMoney(res.Summary.LaborTotal, res.Currency), false)
	addAmountRow(m, "Supervision", FormatMoney(res.Summary.SupervisionTotal, res.Currency), false)
	addAmountRow(m, "Direct Costs", FormatMoney(res.Summary.DirectTotal, res.Currency), false)
	addAmountRow(m, "Subcontractors", FormatMoney(res.Summary.SubcontractorTotal, res.Currency), false)
	addAmountRow(m, "Base Cost", FormatMoney(res.Summary.GrandTotal, res.Currency), true)
	m.AddRows(row.New(4))
}

func addMarkupSection(m core.Maroto, res Results) {
	addSectionTitle(m, "Markups")
	addAmountRow(m, "Overheads", FormatMoney(res.Markups.OverheadsCost, res.Currency), false)
	addAmountRow(m, "Risk & Contingency", FormatMoney(res.Markups.RiskContingencyCost, res.Currency), false)
	addAmountRow(m, "PM & Generals", FormatMoney(res.Markups.PMGeneralsCost, res.Currency), false)
	addAmountRow(m, "Performance Bond", FormatMoney(res.Markups.PerformanceBondCost, res.Currency), false)
	addAmountRow(m, "Insurance", FormatMoney(res.Markups.InsuranceCost, res.Currency), false)
	addAmountRow(m, "Warranty", FormatMoney(res.Markups.WarrantyCost, res.Currency), false)
	addAmountRow(m, "Subtotal", FormatMoney(res.Markups.Subtotal, res.Currency), true)
	addAmountRow(m, "Profit", FormatMoney(res.Markups.ProfitAmount, res.Currency), false)
	addAmountRow(m, "Grand Total", FormatMoney(res.Markups.GrandTotal, res.Currency), true)
	m.AddRows(row.New(4))
}

func addCategorySection(m core.Maroto, res Results) {
	if len(res.Summary.Categories) == 0 {
		return
	}
	addSectionTitle(m, "Category Breakdown")

	categories := make([]string, 0, len(res.Summary.Categories))
	for category := range res.Summary.Categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		label := fmt.Sprintf("%s (%s)", category, FormatPercent(res.CategoryShares[category]))
		addAmountRow(m, label, FormatMoney(res.Summary.Categories[category], res.Currency), false)
	}
	m.AddRows(row.New(4))
}

func addQuantitiesSection(m core.Maroto, res Results) {
	addSectionTitle(m, "Quantities")
	addAmountRow(m, "Project Duration (days)", fmt.Sprintf("%d", res.DurationDays), false)
	addAmountRow(m, "Total Manpower Hours", fmt.Sprintf("%.1f", res.TotalManpowerHours), false)
	addAmountRow(m, "Total Asset Units", fmt.Sprintf("%.1f", res.TotalAssetUnits), false)
	addAmountRow(m, "Cost per Asset Unit", FormatMoney(res.CostPerAssetUnit, res.Currency), false)
}
