package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
)

func sampleDocument(t *testing.T) *models.Document {
	t.Helper()
	doc := models.NewDocument()

	dash := models.NewSheet("Dashboard")
	dash.Set(1, 1, models.String("Feedback Dashboard"))
	dash.Set(5, 2, models.Formula("COUNTA('Feedback Log'!A:A)-1"))
	dash.At(5, 2).Style.NumFmt = "#,##0"
	dash.Merges = append(dash.Merges, models.Area{R1: 1, C1: 1, R2: 1, C2: 6})
	require.NoError(t, doc.AddSheet(dash))

	log := models.NewSheet("Feedback Log")
	log.AppendRow([]string{"ID", "Platform", "Priority"})
	log.AppendRow([]string{"1", "iOS", "High"})
	log.At(1, 1).Style.Font = &models.Font{Bold: true, Color: "FFFFFF"}
	log.At(1, 1).Style.Fill = "010080"
	log.Set(2, 4, models.Number(7.5))
	log.SetColWidth(2, 12)
	log.FrozenRows = 1
	log.AutoFilter = &models.Area{R1: 1, C1: 1, R2: 2, C2: 3}
	log.Validations = append(log.Validations, models.ValidationRule{
		Area:      models.ColumnSpan(2, 2, 1000),
		RangeName: "Platform_List",
		Prompt:    "Please select from the dropdown list",
		Error:     "Invalid value",
	})
	log.VisualRules = append(log.VisualRules,
		models.VisualRule{Area: models.ColumnSpan(3, 2, 1000), Value: "High", Fill: "FFA500"},
		models.VisualRule{Area: models.ColumnSpan(3, 2, 1000), Value: "Low", Fill: "90EE90"},
	)
	require.NoError(t, doc.AddSheet(log))

	ref := models.NewSheet("Dropdown Reference")
	ref.AppendRow([]string{"Category", "Value"})
	ref.AppendRow([]string{"Platform", "iOS"})
	ref.AppendRow([]string{"", "Android"})
	ref.Protected = true
	require.NoError(t, doc.AddSheet(ref))

	doc.DefineRange("Platform_List", models.RangeRef{Sheet: "Dropdown Reference", Column: "B", StartRow: 2, EndRow: 3})
	return doc
}

func TestWriteRoundTrip(t *testing.T) {
	doc := sampleDocument(t)

	var buf bytes.Buffer
	require.NoError(t, Write(doc, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Dashboard", "Feedback Log", "Dropdown Reference"}, f.GetSheetList())
	assert.Equal(t, 0, f.GetActiveSheetIndex())

	var refersTo string
	for _, dn := range f.GetDefinedName() {
		if dn.Name == "Platform_List" {
			refersTo = dn.RefersTo
		}
	}
	assert.Equal(t, "'Dropdown Reference'!$B$2:$B$3", refersTo)

	formula, err := f.GetCellFormula("Dashboard", "B5")
	require.NoError(t, err)
	assert.Equal(t, "COUNTA('Feedback Log'!A:A)-1", formula)

	value, err := f.GetCellValue("Feedback Log", "B2")
	require.NoError(t, err)
	assert.Equal(t, "iOS", value)

	width, err := f.GetColWidth("Feedback Log", "B")
	require.NoError(t, err)
	assert.Equal(t, 12.0, width)

	dvs, err := f.GetDataValidations("Feedback Log")
	require.NoError(t, err)
	require.Len(t, dvs, 1)
	assert.Equal(t, "B2:B1000", dvs[0].Sqref)
	assert.Contains(t, dvs[0].Formula1, "Platform_List")

	formats, err := f.GetConditionalFormats("Feedback Log")
	require.NoError(t, err)
	assert.Contains(t, formats, "C2:C1000")

	merged, err := f.GetMergeCells("Dashboard")
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "A1", merged[0].GetStartAxis())
	assert.Equal(t, "F1", merged[0].GetEndAxis())
}

func TestWriteEmptyDocument(t *testing.T) {
	err := Write(models.NewDocument(), &bytes.Buffer{})
	assert.ErrorIs(t, err, models.ErrSerialization)
}

func TestWriteInvalidSheetName(t *testing.T) {
	doc := models.NewDocument()
	require.NoError(t, doc.AddSheet(models.NewSheet("Fine")))
	require.NoError(t, doc.AddSheet(models.NewSheet("Bad[Name]")))

	err := Write(doc, &bytes.Buffer{})
	assert.ErrorIs(t, err, models.ErrSerialization)
}

func TestSaveAs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracker.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	require.NoError(t, SaveAs(sampleDocument(t), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 3)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestSaveAsFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracker.xlsx")

	err := SaveAs(models.NewDocument(), path)
	assert.ErrorIs(t, err, models.ErrSerialization)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestToJSON(t *testing.T) {
	doc := sampleDocument(t)

	data, err := ToJSON(doc, false)
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	require.Len(t, m.Sheets, 3)
	assert.Equal(t, "Dashboard", m.Sheets[0].Name)
	assert.Equal(t, 1, m.Sheets[0].Formulas)
	assert.Equal(t, "A1:C2", m.Sheets[1].AutoFilter)
	assert.Len(t, m.Sheets[1].VisualRules, 2)
	assert.True(t, m.Sheets[2].Protected)
	assert.Equal(t, []NamedRange{{Name: "Platform_List", RefersTo: "'Dropdown Reference'!$B$2:$B$3"}}, m.Ranges)

	again, err := ToJSON(doc, false)
	require.NoError(t, err)
	assert.Equal(t, data, again)

	pretty, err := ToJSON(doc, true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"sheets\"")
}
