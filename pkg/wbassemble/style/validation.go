package style

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
)

// Binding ties a column of the data sheet to a named range.
type Binding struct {
	Column string `yaml:"column"`
	Range  string `yaml:"range"`
}

// RowSpan is an inclusive span of rows.
type RowSpan struct {
	First int `yaml:"first"`
	Last  int `yaml:"last"`
}

// Messages holds the user-facing validation text.
type Messages struct {
	PromptTitle string `yaml:"prompt_title"`
	Prompt      string `yaml:"prompt"`
	ErrorTitle  string `yaml:"error_title"`
	Error       string `yaml:"error"`
}

// DefaultMessages returns the standard dropdown prompt and error text.
func DefaultMessages() Messages {
	return Messages{
		PromptTitle: "Select Value",
		Prompt:      "Please select from the dropdown list",
		ErrorTitle:  "Invalid Selection",
		Error:       "Invalid value",
	}
}

// BindValidations adds one list validation per binding to the named sheet,
// covering span regardless of how many rows hold data. A binding whose range
// cannot be resolved is skipped and reported; the rest are still applied.
func BindValidations(doc *models.Document, sheetName string, bindings []Binding, span RowSpan, msg Messages) []error {
	sheet := doc.Sheet(sheetName)

	var errs []error
	for _, b := range bindings {
		if sheet == nil {
			errs = append(errs, &models.RangeResolutionError{
				Sheet:  sheetName,
				Column: b.Column,
				Range:  b.Range,
				Err:    fmt.Errorf("%w: sheet not found", models.ErrRangeResolution),
			})
			continue
		}

		col, err := excelize.ColumnNameToNumber(b.Column)
		if err != nil {
			errs = append(errs, &models.RangeResolutionError{
				Sheet:  sheetName,
				Column: b.Column,
				Range:  b.Range,
				Err:    fmt.Errorf("%w: %v", models.ErrRangeResolution, err),
			})
			continue
		}

		if _, err := doc.Resolve(b.Range); err != nil {
			errs = append(errs, &models.RangeResolutionError{
				Sheet:  sheetName,
				Column: b.Column,
				Range:  b.Range,
				Err:    err,
			})
			continue
		}

		sheet.Validations = append(sheet.Validations, models.ValidationRule{
			Area:        models.ColumnSpan(col, span.First, span.Last),
			RangeName:   b.Range,
			PromptTitle: msg.PromptTitle,
			Prompt:      msg.Prompt,
			ErrorTitle:  msg.ErrorTitle,
			Error:       msg.Error,
		})
	}
	return errs
}
