// Package highlight registers equality-triggered fill rules for categorical
// columns. Rules are evaluated by the spreadsheet, not here.
package highlight

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/style"
)

// Columns names the highlighted columns.
type Columns struct {
	Priority string `yaml:"priority_column"`
	Status   string `yaml:"status_column"`
}

// DefaultColumns returns the feedback log layout.
func DefaultColumns() Columns {
	return Columns{Priority: "M", Status: "Y"}
}

type colored interface {
	String() string
	Color() string
}

// Apply registers one rule per priority value on the priority column and one
// per status value on the status column, each covering span. It returns the
// number of rules added.
func Apply(doc *models.Document, sheetName string, cols Columns, span style.RowSpan) (int, error) {
	sheet := doc.Sheet(sheetName)
	if sheet == nil {
		return 0, fmt.Errorf("highlight: sheet %q not found", sheetName)
	}

	priority, err := Rules(cols.Priority, span, Priorities())
	if err != nil {
		return 0, err
	}
	status, err := Rules(cols.Status, span, Statuses())
	if err != nil {
		return 0, err
	}

	sheet.VisualRules = append(sheet.VisualRules, priority...)
	sheet.VisualRules = append(sheet.VisualRules, status...)
	return len(priority) + len(status), nil
}

// Rules returns one independent rule per value, all over the same column span.
func Rules[T colored](column string, span style.RowSpan, values []T) ([]models.VisualRule, error) {
	col, err := excelize.ColumnNameToNumber(column)
	if err != nil {
		return nil, fmt.Errorf("highlight: %w", err)
	}

	rules := make([]models.VisualRule, 0, len(values))
	for _, v := range values {
		rules = append(rules, models.VisualRule{
			Area:  models.ColumnSpan(col, span.First, span.Last),
			Value: v.String(),
			Fill:  v.Color(),
		})
	}
	return rules, nil
}
