// Package output serializes an assembled document.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
)

// NewFile renders the document into an excelize workbook. The caller closes it.
func NewFile(doc *models.Document) (*excelize.File, error) {
	if len(doc.Sheets) == 0 {
		return nil, fmt.Errorf("%w: document has no sheets", models.ErrSerialization)
	}

	f := excelize.NewFile()
	w := &writer{
		f:          f,
		styles:     make(map[styleKey]int),
		conditions: make(map[string]int),
	}
	if err := w.writeDocument(doc); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Write serializes the document as xlsx to out.
func Write(doc *models.Document, out io.Writer) error {
	f, err := NewFile(doc)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("%w: %w", models.ErrSerialization, err)
	}
	return nil
}

// SaveAs writes the document to path, replacing any existing file. The file
// is written next to path first so a failed run leaves no partial output.
func SaveAs(doc *models.Document, path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".wbassemble-*.xlsx")
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrSerialization, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err := Write(doc, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", models.ErrSerialization, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("%w: %w", models.ErrSerialization, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", models.ErrSerialization, err)
	}
	return nil
}

type styleKey struct {
	font     models.Font
	hasFont  bool
	fill     string
	align    models.Alignment
	hasAlign bool
	numFmt   string
}

type writer struct {
	f          *excelize.File
	styles     map[styleKey]int
	conditions map[string]int
}

func (w *writer) writeDocument(doc *models.Document) error {
	// excelize.NewFile starts with one default sheet; reuse it for the first.
	first := w.f.GetSheetName(0)
	for i, s := range doc.Sheets {
		var err error
		if i == 0 {
			err = w.f.SetSheetName(first, s.Name)
		} else {
			_, err = w.f.NewSheet(s.Name)
		}
		if err != nil {
			return sheetError(s.Name, err)
		}
	}

	for _, s := range doc.Sheets {
		if err := w.writeSheet(s); err != nil {
			return sheetError(s.Name, err)
		}
	}

	for _, name := range doc.RangeNames() {
		ref, _ := doc.Range(name)
		if err := w.f.SetDefinedName(&excelize.DefinedName{
			Name:     name,
			RefersTo: ref.Ref(),
		}); err != nil {
			return fmt.Errorf("%w: defined name %q: %w", models.ErrSerialization, name, err)
		}
	}

	w.f.SetActiveSheet(0)
	return nil
}

func sheetError(name string, err error) error {
	return fmt.Errorf("%w: sheet %q: %w", models.ErrSerialization, name, err)
}

func (w *writer) writeSheet(s *models.Sheet) error {
	for r, row := range s.Rows {
		for c, cell := range row {
			if err := w.writeCell(s.Name, r+1, c+1, cell); err != nil {
				return err
			}
		}
	}

	cols := make([]int, 0, len(s.ColWidths))
	for col := range s.ColWidths {
		cols = append(cols, col)
	}
	slices.Sort(cols)
	for _, col := range cols {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(s.Name, name, name, s.ColWidths[col]); err != nil {
			return err
		}
	}

	for _, area := range s.Merges {
		start, end, _ := strings.Cut(area.String(), ":")
		if err := w.f.MergeCell(s.Name, start, end); err != nil {
			return err
		}
	}

	if s.FrozenRows > 0 {
		if err := w.f.SetPanes(s.Name, &excelize.Panes{
			Freeze:      true,
			YSplit:      s.FrozenRows,
			TopLeftCell: fmt.Sprintf("A%d", s.FrozenRows+1),
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}
	}

	if s.AutoFilter != nil {
		if err := w.f.AutoFilter(s.Name, s.AutoFilter.String(), nil); err != nil {
			return err
		}
	}

	for _, rule := range s.Validations {
		if err := w.addValidation(s.Name, rule); err != nil {
			return err
		}
	}

	for _, rule := range s.VisualRules {
		if err := w.addVisualRule(s.Name, rule); err != nil {
			return err
		}
	}

	if s.Protected {
		if err := w.f.ProtectSheet(s.Name, &excelize.SheetProtectionOptions{
			SelectLockedCells:   true,
			SelectUnlockedCells: true,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) writeCell(sheet string, row, col int, cell models.Cell) error {
	if cell.Kind == models.KindEmpty && cell.Style.IsZero() {
		return nil
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	switch cell.Kind {
	case models.KindString:
		if cell.Text != "" {
			err = w.f.SetCellStr(sheet, name, cell.Text)
		}
	case models.KindNumber:
		err = w.f.SetCellFloat(sheet, name, cell.Number, -1, 64)
	case models.KindFormula:
		err = w.f.SetCellFormula(sheet, name, cell.Text)
	}
	if err != nil {
		return err
	}

	if cell.Style.IsZero() {
		return nil
	}
	id, err := w.style(cell.Style)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(sheet, name, name, id)
}

// style returns a shared style id for s, creating it on first use.
func (w *writer) style(s models.Style) (int, error) {
	key := styleKey{fill: s.Fill, numFmt: s.NumFmt}
	if s.Font != nil {
		key.font, key.hasFont = *s.Font, true
	}
	if s.Alignment != nil {
		key.align, key.hasAlign = *s.Alignment, true
	}
	if id, ok := w.styles[key]; ok {
		return id, nil
	}

	style := &excelize.Style{}
	if key.hasFont {
		style.Font = &excelize.Font{
			Family: key.font.Family,
			Size:   key.font.Size,
			Bold:   key.font.Bold,
			Italic: key.font.Italic,
			Color:  key.font.Color,
		}
	}
	if key.fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{key.fill}}
	}
	if key.hasAlign {
		style.Alignment = &excelize.Alignment{
			Horizontal: key.align.Horizontal,
			Vertical:   key.align.Vertical,
			WrapText:   key.align.WrapText,
		}
	}
	if key.numFmt != "" {
		numFmt := key.numFmt
		style.CustomNumFmt = &numFmt
	}

	id, err := w.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	w.styles[key] = id
	return id, nil
}

func (w *writer) addValidation(sheet string, rule models.ValidationRule) error {
	dv := excelize.NewDataValidation(true)
	dv.Sqref = rule.Area.String()
	dv.SetSqrefDropList(rule.RangeName)
	dv.SetInput(rule.PromptTitle, rule.Prompt)
	dv.SetError(excelize.DataValidationErrorStyleStop, rule.ErrorTitle, rule.Error)
	return w.f.AddDataValidation(sheet, dv)
}

func (w *writer) addVisualRule(sheet string, rule models.VisualRule) error {
	format, ok := w.conditions[rule.Fill]
	if !ok {
		var err error
		format, err = w.f.NewConditionalStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{rule.Fill}},
		})
		if err != nil {
			return err
		}
		w.conditions[rule.Fill] = format
	}

	return w.f.SetConditionalFormat(sheet, rule.Area.String(), []excelize.ConditionalFormatOptions{{
		Type:     "cell",
		Criteria: "==",
		Format:   &format,
		Value:    `"` + strings.ReplaceAll(rule.Value, `"`, `""`) + `"`,
	}})
}
