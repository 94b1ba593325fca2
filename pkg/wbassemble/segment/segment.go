// Package segment derives named value lists from a category reference sheet.
//
// The reference sheet holds a category label in column A and one allowed
// value in column B. A label is stated once; following rows with a blank
// column A belong to the same category:
//
//	Category   | Value
//	Platform   | iOS
//	           | Android
//	Priority   | Critical
//
// Each contiguous run of rows becomes one RangeRef over column B, registered
// on the document as <Category>_List.
package segment

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
)

const (
	categoryCol = 1
	valueCol    = 2
	valueLetter = "B"
	firstRow    = 2 // row 1 is the header

	// Suffix is appended to every derived range name.
	Suffix = "_List"

	maxNameLength = 255
)

// ErrInvalidName indicates a category label does not yield a legal defined name.
var ErrInvalidName = errors.New("invalid range name")

// Block is a named range derived from one run of rows.
type Block struct {
	// Category is the label as written in the reference sheet.
	Category string
	// Name is the derived range name.
	Name string
	Ref  models.RangeRef
}

// Scan segments the reference sheet into blocks in row order. A category that
// reappears after another one yields a second block with the same name.
func Scan(sheet *models.Sheet) []Block {
	var blocks []Block

	var (
		current string
		start   int
		open    bool
	)
	closeBlock := func(end int) {
		blocks = append(blocks, Block{
			Category: current,
			Name:     RangeName(current),
			Ref: models.RangeRef{
				Sheet:    sheet.Name,
				Column:   valueLetter,
				StartRow: start,
				EndRow:   end,
			},
		})
	}

	last := sheet.MaxRow()
	for row := firstRow; row <= last; row++ {
		category := sheet.Cell(row, categoryCol).Rendered()
		if isBlank(category) || (open && category == current) {
			continue
		}
		if open {
			closeBlock(row - 1)
		}
		current, start, open = category, row, true
	}
	if open {
		closeBlock(last)
	}

	return blocks
}

// Register scans the named reference sheet and defines one document range per
// block. Later blocks overwrite earlier ones with the same name. It returns the
// registered blocks in scan order. Blocks whose derived name is not a legal
// defined name are left out and reported in skipped. A missing sheet yields a
// range resolution error.
func Register(doc *models.Document, sheetName string) (blocks []Block, skipped []error, err error) {
	sheet := doc.Sheet(sheetName)
	if sheet == nil {
		return nil, nil, &models.RangeResolutionError{
			Sheet:  sheetName,
			Column: valueLetter,
			Err:    models.ErrRangeResolution,
		}
	}

	for _, b := range Scan(sheet) {
		if !ValidName(b.Name) {
			skipped = append(skipped, &models.RangeResolutionError{
				Sheet:  sheetName,
				Column: valueLetter,
				Range:  b.Name,
				Err:    fmt.Errorf("%w: %w: category %q", models.ErrRangeResolution, ErrInvalidName, b.Category),
			})
			continue
		}
		doc.DefineRange(b.Name, b.Ref)
		blocks = append(blocks, b)
	}
	return blocks, skipped, nil
}

// RangeName derives a range name from a category label: whitespace and path
// separators become underscores and Suffix is appended.
func RangeName(category string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, category)
	return name + Suffix
}

// ValidName reports whether name is usable as a workbook defined name. It must
// start with a letter or underscore and continue with letters, digits,
// underscores or periods.
func ValidName(name string) bool {
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return false
	}
	for i, r := range name {
		switch {
		case unicode.IsLetter(r), r == '_':
		case i > 0 && (r >= '0' && r <= '9' || r == '.'):
		default:
			return false
		}
	}
	return true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
