// Package style applies sheet formatting, list validations and protection.
package style

import (
	"unicode/utf8"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
)

// Theme configures sheet formatting.
type Theme struct {
	HeaderFont     string  `yaml:"header_font"`
	HeaderFontSize float64 `yaml:"header_font_size"`
	HeaderText     string  `yaml:"header_text"`
	HeaderFill     string  `yaml:"header_fill"`
	AlternateFill  string  `yaml:"alternate_fill"`
	// WidthPadding is added to the longest rendered value of a column.
	WidthPadding float64 `yaml:"width_padding"`
	// MaxWidth caps every computed column width.
	MaxWidth float64 `yaml:"max_width"`
}

// DefaultTheme returns the standard tracker theme.
func DefaultTheme() Theme {
	return Theme{
		HeaderFont:     "Arial",
		HeaderFontSize: 11,
		HeaderText:     "FFFFFF",
		HeaderFill:     "010080",
		AlternateFill:  "F5F5F5",
		WidthPadding:   2,
		MaxWidth:       50,
	}
}

// Apply formats a data sheet: styled header row, alternate fill on even rows,
// fitted column widths, frozen header and an auto-filter over the used range.
// Empty sheets are left unchanged.
func Apply(sheet *models.Sheet, theme Theme) {
	area, ok := sheet.UsedArea()
	if !ok {
		return
	}

	formatHeader(sheet, theme, area.C2)
	fillAlternateRows(sheet, theme.AlternateFill, area.R2, area.C2)
	fitColumns(sheet, theme, area.C2)

	sheet.FrozenRows = 1
	sheet.AutoFilter = &area
}

// Protect marks the sheet as protected.
func Protect(sheet *models.Sheet) {
	sheet.Protected = true
}

func formatHeader(sheet *models.Sheet, theme Theme, maxCol int) {
	for col := 1; col <= maxCol; col++ {
		cell := sheet.At(1, col)
		cell.Style.Font = &models.Font{
			Family: theme.HeaderFont,
			Size:   theme.HeaderFontSize,
			Bold:   true,
			Color:  theme.HeaderText,
		}
		cell.Style.Fill = theme.HeaderFill
		cell.Style.Alignment = &models.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		}
	}
}

// fillAlternateRows fills every even row below the header; odd rows keep the
// default background.
func fillAlternateRows(sheet *models.Sheet, fill string, maxRow, maxCol int) {
	for row := 2; row <= maxRow; row += 2 {
		for col := 1; col <= maxCol; col++ {
			sheet.At(row, col).Style.Fill = fill
		}
	}
}

func fitColumns(sheet *models.Sheet, theme Theme, maxCol int) {
	for col := 1; col <= maxCol; col++ {
		longest := 0
		for row := 1; row <= sheet.MaxRow(); row++ {
			if n := utf8.RuneCountInString(sheet.Cell(row, col).Rendered()); n > longest {
				longest = n
			}
		}
		sheet.SetColWidth(col, min(float64(longest)+theme.WidthPadding, theme.MaxWidth))
	}
}
