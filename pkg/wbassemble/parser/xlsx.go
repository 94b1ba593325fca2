package parser

import (
	"iter"

	"github.com/thedatashed/xlsxreader"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX streams the rows of the first worksheet of an xlsx file.
// Entirely empty rows between data rows are returned as empty slices so row
// numbers are preserved.
func ReadXLSX(path string) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		xl, err := xlsxreader.OpenFile(path)
		if err != nil {
			yield(nil, sourceError("", path, err))
			return
		}
		defer xl.Close()

		if len(xl.Sheets) == 0 {
			return
		}

		rows := xl.ReadRows(xl.Sheets[0])
		// The reader goroutine blocks until the channel is drained.
		defer func() {
			for range rows {
			}
		}()

		next := 1
		for row := range rows {
			if row.Error != nil {
				yield(nil, readError(path, row.Error))
				return
			}
			index := row.Index
			if index <= 0 {
				index = next
			}
			for ; next < index; next++ {
				if !yield([]string{}, nil) {
					return
				}
			}
			values, err := rowValues(row.Cells)
			if err != nil {
				yield(nil, readError(path, err))
				return
			}
			next = index + 1
			if !yield(values, nil) {
				return
			}
		}
	}
}

// rowValues places sparse cells at their column positions.
func rowValues(cells []xlsxreader.Cell) ([]string, error) {
	var values []string
	for _, cell := range cells {
		col, err := excelize.ColumnNameToNumber(cell.Column)
		if err != nil {
			return nil, err
		}
		for len(values) < col {
			values = append(values, "")
		}
		values[col-1] = cell.Value
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}
