package output

import (
	"encoding/json"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
)

// Manifest describes the structure of an assembled document.
type Manifest struct {
	Sheets []SheetManifest `json:"sheets"`
	Ranges []NamedRange    `json:"ranges"`
}

// SheetManifest describes one sheet without its cell values.
type SheetManifest struct {
	Name        string                  `json:"name"`
	Rows        int                     `json:"rows"`
	Cols        int                     `json:"cols"`
	Formulas    int                     `json:"formulas"`
	FrozenRows  int                     `json:"frozen_rows,omitempty"`
	Protected   bool                    `json:"protected,omitempty"`
	AutoFilter  string                  `json:"auto_filter,omitempty"`
	Validations []models.ValidationRule `json:"validations,omitempty"`
	VisualRules []models.VisualRule     `json:"visual_rules,omitempty"`
}

// NamedRange is one document-scoped defined name.
type NamedRange struct {
	Name     string `json:"name"`
	RefersTo string `json:"refers_to"`
}

// NewManifest summarizes doc.
func NewManifest(doc *models.Document) Manifest {
	m := Manifest{
		Sheets: make([]SheetManifest, 0, len(doc.Sheets)),
		Ranges: make([]NamedRange, 0),
	}
	for _, s := range doc.Sheets {
		sm := SheetManifest{
			Name:        s.Name,
			Rows:        s.MaxRow(),
			Cols:        s.MaxCol(),
			FrozenRows:  s.FrozenRows,
			Protected:   s.Protected,
			Validations: s.Validations,
			VisualRules: s.VisualRules,
		}
		if s.AutoFilter != nil {
			sm.AutoFilter = s.AutoFilter.String()
		}
		for _, row := range s.Rows {
			for _, c := range row {
				if c.Kind == models.KindFormula {
					sm.Formulas++
				}
			}
		}
		m.Sheets = append(m.Sheets, sm)
	}
	for _, name := range doc.RangeNames() {
		ref, _ := doc.Range(name)
		m.Ranges = append(m.Ranges, NamedRange{Name: name, RefersTo: ref.Ref()})
	}
	return m
}

// ToJSON serializes the document manifest to JSON.
func ToJSON(doc *models.Document, pretty bool) ([]byte, error) {
	m := NewManifest(doc)
	if pretty {
		return json.MarshalIndent(m, "", "  ")
	}
	return json.Marshal(m)
}
