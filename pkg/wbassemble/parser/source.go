// Package parser reads tabular sources and imports them as document sheets.
package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
)

// Source names one tabular source and the sheet it becomes.
type Source struct {
	Sheet string
	Path  string
}

// Rows returns a lazy sequence of the rows of the source at path. The format
// is chosen by extension: .xlsx reads the first worksheet, anything else is
// read as CSV. Rows are returned as read; ragged rows are not padded.
// Iteration stops after the first error.
func Rows(path string) iter.Seq2[[]string, error] {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path)
	}
	return ReadCSV(path)
}

// CheckSources verifies every source exists before anything is read.
// The returned error joins one SourceError per missing or unreadable file.
func CheckSources(sources []Source) error {
	var errs []error
	for _, src := range sources {
		info, err := os.Stat(src.Path)
		switch {
		case err != nil:
			errs = append(errs, sourceError(src.Sheet, src.Path, err))
		case info.IsDir():
			errs = append(errs, &models.SourceError{
				Sheet: src.Sheet,
				Path:  src.Path,
				Err:   fmt.Errorf("%w: is a directory", models.ErrSourceRead),
			})
		}
	}
	return errors.Join(errs...)
}

// sourceError classifies an open or stat failure.
func sourceError(sheet, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &models.SourceError{Sheet: sheet, Path: path, Err: models.ErrSourceNotFound}
	}
	return &models.SourceError{Sheet: sheet, Path: path, Err: fmt.Errorf("%w: %v", models.ErrSourceRead, err)}
}

// readError wraps a fault that happened after the source was opened.
func readError(path string, err error) error {
	return &models.SourceError{Path: path, Err: fmt.Errorf("%w: %v", models.ErrSourceRead, err)}
}
