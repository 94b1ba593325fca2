package models

import (
	"fmt"
	"strings"
)

// RangeRef points at a contiguous run of rows in one column of a sheet.
type RangeRef struct {
	// Sheet is the owning sheet name.
	Sheet string `json:"sheet"`
	// Column is the column letter, e.g. "B".
	Column string `json:"column"`
	// StartRow is the first row (1-based).
	StartRow int `json:"start_row"`
	// EndRow is the last row (1-based, inclusive).
	EndRow int `json:"end_row"`
}

// Ref renders the reference as 'Sheet'!$B$2:$B$5.
func (r RangeRef) Ref() string {
	return fmt.Sprintf("%s!$%s$%d:$%s$%d", QuoteSheetName(r.Sheet), r.Column, r.StartRow, r.Column, r.EndRow)
}

// Len returns the number of rows covered.
func (r RangeRef) Len() int {
	return r.EndRow - r.StartRow + 1
}

// QuoteSheetName quotes a sheet name for use in a formula or reference.
func QuoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
