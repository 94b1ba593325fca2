package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	require.NoError(t, f.SetCellValue(sheetName, "A1", "Category"))
	require.NoError(t, f.SetCellValue(sheetName, "B1", "Value"))
	require.NoError(t, f.SetCellValue(sheetName, "A2", "Platform"))
	require.NoError(t, f.SetCellValue(sheetName, "B2", "iOS"))
	// Row 3 left empty.
	require.NoError(t, f.SetCellValue(sheetName, "C4", "sparse"))

	path := filepath.Join(t.TempDir(), "ref.xlsx")
	require.NoError(t, f.SaveAs(path))

	rows, err := collect(t, path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Category", "Value"},
		{"Platform", "iOS"},
		{},
		{"", "", "sparse"},
	}, rows)
}

func TestReadXLSXNotAWorkbook(t *testing.T) {
	path := writeFile(t, "broken.xlsx", []byte("not a zip"))

	_, err := collect(t, path)
	assert.Error(t, err)
}
