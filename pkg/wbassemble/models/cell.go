// Package models defines the in-memory workbook document assembled by wbassemble.
package models

import "strconv"

// Kind discriminates the value held by a Cell.
type Kind int

const (
	// KindEmpty is a cell with no value.
	KindEmpty Kind = iota
	// KindString is a literal text value.
	KindString
	// KindNumber is a literal numeric value.
	KindNumber
	// KindFormula is an expression evaluated by the spreadsheet renderer.
	KindFormula
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindFormula:
		return "formula"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Cell is a single grid value plus its display style.
type Cell struct {
	// Kind selects which of Text or Number is meaningful.
	Kind Kind `json:"kind"`
	// Text holds the string value, or the formula expression without a leading '='.
	Text string `json:"text,omitempty"`
	// Number holds the numeric value for KindNumber.
	Number float64 `json:"number,omitempty"`
	// Style holds display attributes added by styling stages.
	Style Style `json:"style,omitzero"`
}

// String returns a string cell.
func String(s string) Cell {
	return Cell{Kind: KindString, Text: s}
}

// Number returns a numeric cell.
func Number(n float64) Cell {
	return Cell{Kind: KindNumber, Number: n}
}

// Formula returns a formula cell. A leading '=' is dropped.
func Formula(expr string) Cell {
	if len(expr) > 0 && expr[0] == '=' {
		expr = expr[1:]
	}
	return Cell{Kind: KindFormula, Text: expr}
}

// SetValue replaces the value of c and keeps its style.
func (c *Cell) SetValue(v Cell) {
	c.Kind, c.Text, c.Number = v.Kind, v.Text, v.Number
}

// Rendered returns the text a renderer would show before evaluation.
// Formulas render as their source text.
func (c Cell) Rendered() string {
	switch c.Kind {
	case KindString:
		return c.Text
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindFormula:
		return "=" + c.Text
	}
	return ""
}

// Style holds the additive display attributes of a cell.
type Style struct {
	Font *Font `json:"font,omitempty"`
	// Fill is a solid background color as RRGGBB hex.
	Fill      string     `json:"fill,omitempty"`
	Alignment *Alignment `json:"alignment,omitempty"`
	// NumFmt is a custom number format code such as "0.0".
	NumFmt string `json:"num_fmt,omitempty"`
}

// IsZero reports whether no style attribute is set.
func (s Style) IsZero() bool {
	return s.Font == nil && s.Fill == "" && s.Alignment == nil && s.NumFmt == ""
}

// Font describes text rendering.
type Font struct {
	Family string  `json:"family,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	// Color is RRGGBB hex.
	Color string `json:"color,omitempty"`
}

// Alignment describes cell text placement.
type Alignment struct {
	Horizontal string `json:"horizontal,omitempty"`
	Vertical   string `json:"vertical,omitempty"`
	WrapText   bool   `json:"wrap_text,omitempty"`
}
