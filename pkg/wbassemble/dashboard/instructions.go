package dashboard

import "github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"

const blockGap = 2

// SheetPurpose is one row of the sheet guide.
type SheetPurpose struct {
	Sheet   string `yaml:"sheet"`
	Purpose string `yaml:"purpose"`
}

// Guide configures the instructions sheet.
type Guide struct {
	SheetName    string   `yaml:"sheet_name"`
	Title        string   `yaml:"title"`
	Primary      string   `yaml:"primary_color"`
	UserTitle    string   `yaml:"user_title"`
	UserSteps    []string `yaml:"user_steps"`
	TeamTitle    string   `yaml:"team_title"`
	TeamSteps    []string `yaml:"team_steps"`
	GuideTitle   string   `yaml:"guide_title"`
	SupportTitle string   `yaml:"support_title"`
	Support      []string `yaml:"support"`
}

// BuildInstructions creates the instructions sheet as the second sheet. The
// sheet guide lists each sheet with its purpose. Everything is plain text.
func BuildInstructions(doc *models.Document, guide Guide, sheets []SheetPurpose) error {
	sheet := models.NewSheet(guide.SheetName)

	title := sheet.At(1, 1)
	title.SetValue(models.String(guide.Title))
	title.Style.Font = &models.Font{Size: 16, Bold: true, Color: guide.Primary}
	sheet.Merges = append(sheet.Merges, models.Area{R1: 1, C1: 1, R2: 1, C2: 4})

	row := 3
	section(sheet, row, 1, guide.UserTitle, 12)
	row = lines(sheet, row+1, guide.UserSteps) + blockGap

	section(sheet, row, 1, guide.TeamTitle, 12)
	row = lines(sheet, row+1, guide.TeamSteps) + blockGap

	section(sheet, row, 1, guide.GuideTitle, 12)
	row++
	for col, header := range []string{"Sheet Name", "Purpose"} {
		cell := sheet.At(row, col+1)
		cell.SetValue(models.String(header))
		cell.Style.Font = &models.Font{Bold: true}
	}
	for _, sp := range sheets {
		row++
		sheet.Set(row, 1, models.String(sp.Sheet))
		sheet.Set(row, 2, models.String(sp.Purpose))
	}
	row += 1 + blockGap

	section(sheet, row, 1, guide.SupportTitle, 12)
	for i, line := range guide.Support {
		sheet.Set(row+1+i, 1, models.String(line))
	}

	sheet.SetColWidth(1, 50)
	sheet.SetColWidth(2, 40)

	return doc.InsertSheet(1, sheet)
}
