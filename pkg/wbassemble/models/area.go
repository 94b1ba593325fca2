package models

import "github.com/xuri/excelize/v2"

// Area represents cell coordinate bounds on one sheet.
type Area struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// ColumnSpan returns the area covering rows first..last of a single column.
func ColumnSpan(col, first, last int) Area {
	return Area{R1: first, C1: col, R2: last, C2: col}
}

// String renders the area in A1 notation, e.g. "E2:E1000".
func (a Area) String() string {
	start, err := excelize.CoordinatesToCellName(a.C1, a.R1)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(a.C2, a.R2)
	if err != nil {
		return ""
	}
	return start + ":" + end
}
