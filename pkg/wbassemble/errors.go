package wbassemble

import (
	"fmt"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
)

var (
	// ErrSourceNotFound indicates a declared tabular source does not exist.
	ErrSourceNotFound = models.ErrSourceNotFound
	// ErrSourceRead indicates a source could not be read or decoded.
	ErrSourceRead = models.ErrSourceRead
	// ErrDuplicateSheetName indicates two sheets share a name.
	ErrDuplicateSheetName = models.ErrDuplicateSheetName
	// ErrRangeResolution indicates a named range could not be resolved.
	ErrRangeResolution = models.ErrRangeResolution
	// ErrSerialization indicates the workbook could not be written.
	ErrSerialization = models.ErrSerialization
)

// Stage names one step of the assembly pipeline.
type Stage string

const (
	StagePreflight    Stage = "preflight"
	StageImport       Stage = "import"
	StageSegment      Stage = "segment"
	StageFormula      Stage = "formula"
	StageHighlight    Stage = "highlight"
	StageDashboard    Stage = "dashboard"
	StageInstructions Stage = "instructions"
	StageWrite        Stage = "write"
)

// StageError represents a failure in one pipeline stage.
type StageError struct {
	Stage Stage
	Sheet string // empty when the stage is not tied to a sheet
	Err   error
}

func (e *StageError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s sheet %q: %v", e.Stage, e.Sheet, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, sheet string, err error) *StageError {
	return &StageError{
		Stage: stage,
		Sheet: sheet,
		Err:   err,
	}
}
