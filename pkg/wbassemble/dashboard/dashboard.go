// Package dashboard builds the summary and instructions sheets.
package dashboard

import (
	"fmt"
	"time"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
)

const (
	metricsRow = 5
	howToRow   = 15
)

// Layout configures the dashboard sheet.
type Layout struct {
	SheetName string `yaml:"sheet_name"`
	// Purpose is the dashboard's entry in the sheet guide.
	Purpose      string   `yaml:"purpose"`
	Title        string   `yaml:"title"`
	Primary      string   `yaml:"primary_color"`
	SummaryTitle string   `yaml:"summary_title"`
	Summary      []Metric `yaml:"summary"`
	StatsTitle   string   `yaml:"stats_title"`
	Stats        []Metric `yaml:"stats"`
	HowToTitle   string   `yaml:"how_to_title"`
	HowTo        []string `yaml:"how_to"`
}

// Build creates the dashboard sheet at the front of the document. Metrics are
// written as formulas; nothing is computed here. Metrics that reference a sheet
// missing from the document are still written and reported in the returned
// slice. A metric that cannot be rendered is an error.
func Build(doc *models.Document, layout Layout, now time.Time) ([]error, error) {
	sheet := models.NewSheet(layout.SheetName)

	title := sheet.At(1, 1)
	title.SetValue(models.String(layout.Title))
	title.Style.Font = &models.Font{Size: 18, Bold: true, Color: layout.Primary}
	sheet.Merges = append(sheet.Merges, models.Area{R1: 1, C1: 1, R2: 1, C2: 6})

	updated := sheet.At(2, 1)
	updated.SetValue(models.String("Last Updated: " + now.Format("2006-01-02 15:04")))
	updated.Style.Font = &models.Font{Size: 10, Italic: true}

	section(sheet, 4, 1, layout.SummaryTitle, 14)
	section(sheet, 4, 4, layout.StatsTitle, 14)

	var warnings []error
	blocks := []struct {
		metrics []Metric
		col     int
		numFmt  string
	}{
		{layout.Summary, 1, "#,##0"},
		{layout.Stats, 4, "0.0"},
	}
	for _, block := range blocks {
		for i, m := range block.metrics {
			expr, err := m.Formula()
			if err != nil {
				return nil, err
			}
			if doc.Sheet(m.Sheet) == nil {
				warnings = append(warnings, fmt.Errorf("metric %q references missing sheet %q", m.Label, m.Sheet))
			}

			row := metricsRow + i
			label := sheet.At(row, block.col)
			label.SetValue(models.String(m.Label))
			label.Style.Font = &models.Font{Bold: true}

			value := sheet.At(row, block.col+1)
			value.SetValue(models.Formula(expr))
			value.Style.Font = &models.Font{Size: 12, Bold: true, Color: layout.Primary}
			value.Style.NumFmt = block.numFmt
		}
	}

	row := max(howToRow, metricsRow+max(len(layout.Summary), len(layout.Stats))+1)
	section(sheet, row, 1, layout.HowToTitle, 12)
	lines(sheet, row+1, layout.HowTo)

	sheet.SetColWidth(1, 30)
	sheet.SetColWidth(2, 15)
	sheet.SetColWidth(4, 25)
	sheet.SetColWidth(5, 15)

	if err := doc.InsertSheet(0, sheet); err != nil {
		return nil, err
	}
	return warnings, nil
}

// section writes a bold heading.
func section(sheet *models.Sheet, row, col int, text string, size float64) {
	cell := sheet.At(row, col)
	cell.SetValue(models.String(text))
	cell.Style.Font = &models.Font{Size: size, Bold: true}
}

// lines writes one plain text line per row in column A.
func lines(sheet *models.Sheet, row int, text []string) int {
	for i, line := range text {
		cell := sheet.At(row+i, 1)
		cell.SetValue(models.String(line))
		cell.Style.Font = &models.Font{Size: 10}
	}
	return row + len(text)
}
