package models

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound indicates a declared tabular source does not exist.
var ErrSourceNotFound = errors.New("source not found")

// ErrSourceRead indicates an I/O, parse or encoding fault while reading a source.
var ErrSourceRead = errors.New("source read error")

// ErrDuplicateSheetName indicates a sheet name is already used in the document.
var ErrDuplicateSheetName = errors.New("duplicate sheet name")

// ErrRangeResolution indicates a named range is unknown or points outside its sheet.
var ErrRangeResolution = errors.New("range resolution error")

// ErrSerialization indicates the document could not be emitted.
var ErrSerialization = errors.New("serialization error")

// SourceError represents a failure locating or reading one tabular source.
type SourceError struct {
	Sheet string
	Path  string
	Err   error
}

func (e *SourceError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("source %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("source %s for sheet %q: %v", e.Path, e.Sheet, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// RangeResolutionError reports a validation column whose range could not be bound.
type RangeResolutionError struct {
	Sheet  string
	Column string
	Range  string
	Err    error
}

func (e *RangeResolutionError) Error() string {
	return fmt.Sprintf("sheet %q column %s: range %q: %v", e.Sheet, e.Column, e.Range, e.Err)
}

func (e *RangeResolutionError) Unwrap() error {
	return e.Err
}
