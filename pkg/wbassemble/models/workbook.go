package models

import (
	"fmt"
	"slices"
)

// Document is the workbook being assembled: an ordered list of sheets plus
// document-scoped named ranges.
type Document struct {
	// Sheets in display order; the first is the default view.
	Sheets []*Sheet

	ranges     map[string]RangeRef
	rangeOrder []string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{ranges: make(map[string]RangeRef)}
}

// Sheet returns the sheet with the given name, or nil.
func (d *Document) Sheet(name string) *Sheet {
	for _, s := range d.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SheetNames returns sheet names in document order.
func (d *Document) SheetNames() []string {
	names := make([]string, len(d.Sheets))
	for i, s := range d.Sheets {
		names[i] = s.Name
	}
	return names
}

// AddSheet appends a sheet.
func (d *Document) AddSheet(s *Sheet) error {
	return d.InsertSheet(len(d.Sheets), s)
}

// InsertSheet inserts a sheet at position pos (clamped to the valid range).
func (d *Document) InsertSheet(pos int, s *Sheet) error {
	if d.Sheet(s.Name) != nil {
		return fmt.Errorf("%w: %q", ErrDuplicateSheetName, s.Name)
	}
	pos = max(0, min(pos, len(d.Sheets)))
	d.Sheets = slices.Insert(d.Sheets, pos, s)
	return nil
}

// DefineRange registers a named range. Registering an existing name replaces
// its reference and keeps its original position; replaced reports whether that
// happened.
func (d *Document) DefineRange(name string, ref RangeRef) (replaced bool) {
	if d.ranges == nil {
		d.ranges = make(map[string]RangeRef)
	}
	if _, ok := d.ranges[name]; ok {
		replaced = true
	} else {
		d.rangeOrder = append(d.rangeOrder, name)
	}
	d.ranges[name] = ref
	return replaced
}

// Range looks up a named range.
func (d *Document) Range(name string) (RangeRef, bool) {
	ref, ok := d.ranges[name]
	return ref, ok
}

// RangeNames returns range names in first-registration order.
func (d *Document) RangeNames() []string {
	return slices.Clone(d.rangeOrder)
}

// Resolve returns the named range after checking that its sheet exists and its
// row span lies within the sheet's rows.
func (d *Document) Resolve(name string) (RangeRef, error) {
	ref, ok := d.ranges[name]
	if !ok {
		return RangeRef{}, fmt.Errorf("%w: %q is not defined", ErrRangeResolution, name)
	}
	s := d.Sheet(ref.Sheet)
	if s == nil {
		return RangeRef{}, fmt.Errorf("%w: %q refers to missing sheet %q", ErrRangeResolution, name, ref.Sheet)
	}
	if ref.StartRow < 1 || ref.StartRow > ref.EndRow || ref.EndRow > s.MaxRow() {
		return RangeRef{}, fmt.Errorf("%w: %q rows %d-%d outside sheet %q (1-%d)",
			ErrRangeResolution, name, ref.StartRow, ref.EndRow, ref.Sheet, s.MaxRow())
	}
	return ref, nil
}
