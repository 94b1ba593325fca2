package parser

import (
	"fmt"
	"iter"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
)

// Import reads rows into a new sheet named name and appends it to doc.
// Cells are stored verbatim as strings starting at A1. The document is left
// untouched if the name is taken or reading fails.
func Import(doc *models.Document, name string, rows iter.Seq2[[]string, error]) (*models.Sheet, error) {
	if doc.Sheet(name) != nil {
		return nil, fmt.Errorf("%w: %q", models.ErrDuplicateSheetName, name)
	}

	sheet := models.NewSheet(name)
	for row, err := range rows {
		if err != nil {
			return nil, err
		}
		sheet.AppendRow(row)
	}

	if err := doc.AddSheet(sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}
