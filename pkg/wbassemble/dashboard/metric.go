package dashboard

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
)

// MetricKind selects the aggregate a Metric renders to.
type MetricKind string

const (
	// CountRows counts non-empty cells of a column minus the header.
	CountRows MetricKind = "count_rows"
	// CountIf counts cells equal to any of Values.
	CountIf MetricKind = "count_if"
	// Average averages a column.
	Average MetricKind = "average"
)

// Metric is one labelled aggregate over a whole column of another sheet.
type Metric struct {
	Label  string     `yaml:"label"`
	Kind   MetricKind `yaml:"kind"`
	Sheet  string     `yaml:"sheet"`
	Column string     `yaml:"column"`
	Values []string   `yaml:"values,omitempty"`
}

// Formula renders the metric as a formula over Sheet!Column:Column.
func (m Metric) Formula() (string, error) {
	if _, err := excelize.ColumnNameToNumber(m.Column); err != nil {
		return "", fmt.Errorf("metric %q: %w", m.Label, err)
	}
	col := models.QuoteSheetName(m.Sheet) + "!" + m.Column + ":" + m.Column

	switch m.Kind {
	case CountRows:
		return fmt.Sprintf("COUNTA(%s)-1", col), nil
	case Average:
		return fmt.Sprintf("AVERAGE(%s)", col), nil
	case CountIf:
		switch len(m.Values) {
		case 0:
			return "", fmt.Errorf("metric %q: count_if needs at least one value", m.Label)
		case 1:
			return fmt.Sprintf("COUNTIF(%s,%s)", col, quote(m.Values[0])), nil
		}
		terms := make([]string, len(m.Values))
		for i, v := range m.Values {
			terms[i] = fmt.Sprintf("COUNTIFS(%s,%s)", col, quote(v))
		}
		return strings.Join(terms, "+"), nil
	}
	return "", fmt.Errorf("metric %q: unknown kind %q", m.Label, m.Kind)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
