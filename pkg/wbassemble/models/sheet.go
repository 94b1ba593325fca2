package models

// Sheet is one named grid of cells plus its sheet-level attributes.
type Sheet struct {
	// Name is the sheet name, unique within a document.
	Name string `json:"name"`
	// Rows is the row-major grid. Rows may be ragged; missing cells are empty.
	Rows [][]Cell `json:"-"`
	// ColWidths maps a 1-based column number to its width in characters.
	ColWidths map[int]float64 `json:"col_widths,omitempty"`
	// FrozenRows is the number of rows frozen at the top (0 for none).
	FrozenRows int `json:"frozen_rows,omitempty"`
	// Protected marks the sheet as protected against edits.
	Protected bool `json:"protected,omitempty"`
	// AutoFilter is the filtered range, if any.
	AutoFilter *Area `json:"auto_filter,omitempty"`
	// Merges lists merged cell areas.
	Merges []Area `json:"merges,omitempty"`
	// Validations lists list-type data validations in registration order.
	Validations []ValidationRule `json:"validations,omitempty"`
	// VisualRules lists equality-triggered fill rules in registration order.
	VisualRules []VisualRule `json:"visual_rules,omitempty"`
}

// NewSheet returns an empty sheet.
func NewSheet(name string) *Sheet {
	return &Sheet{Name: name}
}

// MaxRow returns the number of rows in the grid.
func (s *Sheet) MaxRow() int {
	return len(s.Rows)
}

// MaxCol returns the length of the longest row.
func (s *Sheet) MaxCol() int {
	maxCol := 0
	for _, row := range s.Rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	return maxCol
}

// Cell returns the cell at row, col (1-based). Cells outside the grid are empty.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 1 || row > len(s.Rows) || col < 1 || col > len(s.Rows[row-1]) {
		return Cell{}
	}
	return s.Rows[row-1][col-1]
}

// At returns a pointer to the cell at row, col (1-based), growing the grid as needed.
func (s *Sheet) At(row, col int) *Cell {
	for len(s.Rows) < row {
		s.Rows = append(s.Rows, nil)
	}
	r := s.Rows[row-1]
	for len(r) < col {
		r = append(r, Cell{})
	}
	s.Rows[row-1] = r
	return &r[col-1]
}

// Set stores a value at row, col (1-based), keeping any style already applied there.
func (s *Sheet) Set(row, col int, c Cell) {
	cell := s.At(row, col)
	style := cell.Style
	*cell = c
	if c.Style.IsZero() {
		cell.Style = style
	}
}

// AppendRow appends a row of string cells.
func (s *Sheet) AppendRow(values []string) {
	row := make([]Cell, len(values))
	for i, v := range values {
		row[i] = String(v)
	}
	s.Rows = append(s.Rows, row)
}

// UsedArea returns the area from A1 to the last row and column of the grid.
// ok is false for an empty sheet.
func (s *Sheet) UsedArea() (area Area, ok bool) {
	maxRow, maxCol := s.MaxRow(), s.MaxCol()
	if maxRow == 0 || maxCol == 0 {
		return Area{}, false
	}
	return Area{R1: 1, C1: 1, R2: maxRow, C2: maxCol}, true
}

// SetColWidth records the width of a 1-based column.
func (s *Sheet) SetColWidth(col int, width float64) {
	if s.ColWidths == nil {
		s.ColWidths = make(map[int]float64)
	}
	s.ColWidths[col] = width
}
