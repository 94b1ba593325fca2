// Package formula writes the computed priority score column.
//
// The score is never computed here; each row gets a formula the spreadsheet
// evaluates:
//
//	severity weight * factor + user tier bonus
package formula

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
)

const rowToken = "{row}"

// Columns configures the score column and its inputs.
type Columns struct {
	Severity string  `yaml:"severity_column"`
	UserTier string  `yaml:"user_tier_column"`
	Score    string  `yaml:"score_column"`
	Factor   float64 `yaml:"factor"`
	NumFmt   string  `yaml:"num_fmt"`
}

// DefaultColumns returns the feedback log layout.
func DefaultColumns() Columns {
	return Columns{
		Severity: "N",
		UserTier: "E",
		Score:    "Z",
		Factor:   2.5,
		NumFmt:   "0.0",
	}
}

// Template is a score formula with the row number left open.
type Template struct {
	expr string
}

// NewTemplate builds the score formula for the configured columns.
func NewTemplate(cols Columns) Template {
	var sevLabels []string
	var sevWeights []float64
	for _, s := range Severities() {
		sevLabels = append(sevLabels, s.String())
		sevWeights = append(sevWeights, s.Weight())
	}

	var tierLabels []string
	var tierBonus []float64
	for _, u := range UserTiers() {
		tierLabels = append(tierLabels, u.String())
		tierBonus = append(tierBonus, u.Bonus())
	}

	expr := nestedIf(cols.Severity+rowToken, sevLabels, sevWeights) +
		"*" + formatNumber(cols.Factor) +
		"+" + nestedIf(cols.UserTier+rowToken, tierLabels, tierBonus)
	return Template{expr: expr}
}

// Instantiate returns the formula for one row, without a leading '='.
func (t Template) Instantiate(row int) string {
	return strings.ReplaceAll(t.expr, rowToken, strconv.Itoa(row))
}

// Apply writes the score formula into every data row (2..last row) of the
// named sheet and returns the number of rows written.
func Apply(doc *models.Document, sheetName string, cols Columns) (int, error) {
	sheet := doc.Sheet(sheetName)
	if sheet == nil {
		return 0, fmt.Errorf("score formula: sheet %q not found", sheetName)
	}
	for _, c := range []string{cols.Severity, cols.UserTier} {
		if _, err := excelize.ColumnNameToNumber(c); err != nil {
			return 0, fmt.Errorf("score formula: input column: %w", err)
		}
	}
	scoreCol, err := excelize.ColumnNameToNumber(cols.Score)
	if err != nil {
		return 0, fmt.Errorf("score formula: score column: %w", err)
	}

	tmpl := NewTemplate(cols)
	last := sheet.MaxRow()
	for row := 2; row <= last; row++ {
		sheet.Set(row, scoreCol, models.Formula(tmpl.Instantiate(row)))
		sheet.At(row, scoreCol).Style.NumFmt = cols.NumFmt
	}
	return max(0, last-1), nil
}

// nestedIf renders IF(ref="a",1,IF(ref="b",2,3)); the last value is the fallback.
func nestedIf(ref string, labels []string, values []float64) string {
	last := len(values) - 1
	var b strings.Builder
	for i := 0; i < last; i++ {
		fmt.Fprintf(&b, "IF(%s=%s,%s,", ref, quote(labels[i]), formatNumber(values[i]))
	}
	b.WriteString(formatNumber(values[last]))
	b.WriteString(strings.Repeat(")", last))
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
