package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
)

func TestMetricFormula(t *testing.T) {
	tests := []struct {
		metric   Metric
		expected string
	}{
		{Metric{Kind: CountRows, Sheet: "Feedback Log", Column: "A"}, "COUNTA('Feedback Log'!A:A)-1"},
		{Metric{Kind: CountIf, Sheet: "Feedback Log", Column: "Y", Values: []string{"Resolved"}}, `COUNTIF('Feedback Log'!Y:Y,"Resolved")`},
		{
			Metric{Kind: CountIf, Sheet: "Feedback Log", Column: "M", Values: []string{"Critical", "High"}},
			`COUNTIFS('Feedback Log'!M:M,"Critical")+COUNTIFS('Feedback Log'!M:M,"High")`,
		},
		{Metric{Kind: Average, Sheet: "Satisfaction Survey", Column: "E"}, "AVERAGE('Satisfaction Survey'!E:E)"},
		{Metric{Kind: CountIf, Sheet: "Won't Fix", Column: "A", Values: []string{`say "hi"`}}, `COUNTIF('Won''t Fix'!A:A,"say ""hi""")`},
	}

	for _, tt := range tests {
		got, err := tt.metric.Formula()
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got)
	}
}

func TestMetricFormulaErrors(t *testing.T) {
	for _, m := range []Metric{
		{Label: "bad kind", Kind: "median", Sheet: "S", Column: "A"},
		{Label: "no values", Kind: CountIf, Sheet: "S", Column: "A"},
		{Label: "bad column", Kind: Average, Sheet: "S", Column: "1"},
	} {
		_, err := m.Formula()
		assert.Error(t, err, m.Label)
	}
}

func testLayout() Layout {
	return Layout{
		SheetName:    "Dashboard",
		Title:        "Feedback Dashboard",
		Primary:      "010080",
		SummaryTitle: "Summary Metrics",
		Summary: []Metric{
			{Label: "Total Feedback Count", Kind: CountRows, Sheet: "Feedback Log", Column: "A"},
			{Label: "Resolved Items", Kind: CountIf, Sheet: "Feedback Log", Column: "Y", Values: []string{"Resolved"}},
		},
		StatsTitle: "Quick Stats",
		Stats: []Metric{
			{Label: "Average NPS Score", Kind: Average, Sheet: "Satisfaction Survey", Column: "E"},
		},
		HowToTitle: "How to Use This Dashboard",
		HowTo:      []string{"1. Add feedback", "2. Watch the numbers"},
	}
}

func TestBuild(t *testing.T) {
	doc := models.NewDocument()
	require.NoError(t, doc.AddSheet(models.NewSheet("Feedback Log")))

	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	warnings, err := Build(doc, testLayout(), now)
	require.NoError(t, err)

	assert.Equal(t, []string{"Dashboard", "Feedback Log"}, doc.SheetNames())
	require.Len(t, warnings, 1, "Satisfaction Survey is not in the document")
	assert.Contains(t, warnings[0].Error(), "Satisfaction Survey")

	s := doc.Sheet("Dashboard")
	assert.Equal(t, "Feedback Dashboard", s.Cell(1, 1).Text)
	assert.Equal(t, "Last Updated: 2026-10-16 09:30", s.Cell(2, 1).Text)
	assert.Equal(t, "A1:F1", s.Merges[0].String())

	assert.Equal(t, "Total Feedback Count", s.Cell(5, 1).Text)
	total := s.Cell(5, 2)
	assert.Equal(t, models.KindFormula, total.Kind)
	assert.Equal(t, "COUNTA('Feedback Log'!A:A)-1", total.Text)
	assert.Equal(t, "#,##0", total.Style.NumFmt)

	assert.Equal(t, "Average NPS Score", s.Cell(5, 4).Text)
	assert.Equal(t, "0.0", s.Cell(5, 5).Style.NumFmt)

	assert.Equal(t, "How to Use This Dashboard", s.Cell(15, 1).Text)
	assert.Equal(t, "2. Watch the numbers", s.Cell(17, 1).Text)
	assert.Equal(t, 30.0, s.ColWidths[1])
}

func TestBuildPushesHowToBelowLongMetricLists(t *testing.T) {
	layout := testLayout()
	for i := 0; i < 12; i++ {
		layout.Summary = append(layout.Summary, Metric{Label: "Extra", Kind: CountRows, Sheet: "Feedback Log", Column: "A"})
	}

	doc := models.NewDocument()
	_, err := Build(doc, layout, time.Time{})
	require.NoError(t, err)

	s := doc.Sheet("Dashboard")
	assert.Equal(t, "Extra", s.Cell(18, 1).Text)
	assert.Equal(t, "How to Use This Dashboard", s.Cell(20, 1).Text)
}

func TestBuildInvalidMetric(t *testing.T) {
	layout := testLayout()
	layout.Stats = append(layout.Stats, Metric{Label: "broken", Kind: "mode", Sheet: "X", Column: "A"})

	doc := models.NewDocument()
	_, err := Build(doc, layout, time.Time{})
	assert.Error(t, err)
	assert.Empty(t, doc.Sheets, "nothing inserted on failure")
}

func TestBuildInstructions(t *testing.T) {
	doc := models.NewDocument()
	require.NoError(t, doc.AddSheet(models.NewSheet("Dashboard")))
	require.NoError(t, doc.AddSheet(models.NewSheet("Feedback Log")))

	guide := Guide{
		SheetName:    "Instructions",
		Title:        "Quick Start Guide",
		UserTitle:    "For Users",
		UserSteps:    []string{"1. Open the log", "2. Fill a row"},
		TeamTitle:    "For the Team",
		TeamSteps:    []string{"1. Triage"},
		GuideTitle:   "Sheet Guide:",
		SupportTitle: "Need Help?",
		Support:      []string{"Email: team@example.com"},
	}
	err := BuildInstructions(doc, guide, []SheetPurpose{
		{Sheet: "Dashboard", Purpose: "Summary metrics"},
		{Sheet: "Feedback Log", Purpose: "Main feedback collection"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Dashboard", "Instructions", "Feedback Log"}, doc.SheetNames())

	s := doc.Sheet("Instructions")
	assert.Equal(t, "For Users", s.Cell(3, 1).Text)
	assert.Equal(t, "2. Fill a row", s.Cell(5, 1).Text)
	assert.Equal(t, "For the Team", s.Cell(8, 1).Text)
	assert.Equal(t, "Sheet Guide:", s.Cell(12, 1).Text)
	assert.Equal(t, "Sheet Name", s.Cell(13, 1).Text)
	assert.Equal(t, "Feedback Log", s.Cell(15, 1).Text)
	assert.Equal(t, "Main feedback collection", s.Cell(15, 2).Text)
	assert.Equal(t, "Need Help?", s.Cell(18, 1).Text)
	assert.Equal(t, "Email: team@example.com", s.Cell(19, 1).Text)
}
