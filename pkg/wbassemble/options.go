// Package wbassemble assembles a feedback-tracker workbook from tabular sources.
package wbassemble

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/dashboard"
	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/formula"
	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/highlight"
	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/parser"
	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/style"
)

// SourceSpec maps one source file to the sheet it becomes.
type SourceSpec struct {
	Sheet string `yaml:"sheet"`
	// File is resolved against Options.SourceDir unless absolute.
	File    string `yaml:"file"`
	Purpose string `yaml:"purpose"`
}

// Options configures an assembly run.
type Options struct {
	// SourceDir is the directory relative source files are read from.
	SourceDir string `yaml:"source_dir"`
	// Output is the default destination of the workbook.
	Output string `yaml:"output"`
	// Manifest, when set, receives a JSON description of the workbook.
	Manifest string `yaml:"manifest,omitempty"`
	// PrettyManifest indents the manifest.
	PrettyManifest bool `yaml:"pretty_manifest,omitempty"`
	// Sources are imported in order, one sheet each.
	Sources []SourceSpec `yaml:"sources"`
	// ReferenceSheet holds the category/value dropdown lists.
	ReferenceSheet string `yaml:"reference_sheet"`
	// DataSheet receives validations, the score column and highlighting.
	DataSheet      string            `yaml:"data_sheet"`
	Validations    []style.Binding   `yaml:"validations"`
	ValidationSpan style.RowSpan     `yaml:"validation_span"`
	Messages       style.Messages    `yaml:"messages"`
	Theme          style.Theme       `yaml:"theme"`
	Score          formula.Columns   `yaml:"score"`
	Highlight      highlight.Columns `yaml:"highlight"`
	Dashboard      dashboard.Layout  `yaml:"dashboard"`
	Instructions   dashboard.Guide   `yaml:"instructions"`

	// Logger receives stage progress. Nil disables logging.
	Logger *zap.Logger `yaml:"-"`
	// Now stamps the dashboard. Nil uses time.Now.
	Now func() time.Time `yaml:"-"`
}

// DefaultOptions returns the OrokiiPay feedback tracker layout.
func DefaultOptions() Options {
	const (
		primary  = "010080"
		feedback = "Feedback Log"
		survey   = "Satisfaction Survey"
	)
	return Options{
		SourceDir: ".",
		Output:    "OrokiiPay_User_Feedback_Tracker.xlsx",
		Sources: []SourceSpec{
			{Sheet: feedback, File: "OrokiiPay_User_Feedback_Template.csv", Purpose: "Main feedback collection (start here!)"},
			{Sheet: "AI Assistant Feedback", File: "AI_Assistant_Feedback_Template.csv", Purpose: "Detailed AI performance metrics"},
			{Sheet: "Feature Requests", File: "Feature_Requests_Template.csv", Purpose: "New features with voting"},
			{Sheet: "Bug Reports", File: "Bug_Reports_Template.csv", Purpose: "Bug tracking and resolution"},
			{Sheet: survey, File: "User_Satisfaction_Survey_Template.csv", Purpose: "User satisfaction and NPS"},
			{Sheet: "Dropdown Reference", File: "Dropdown_Values_Reference.csv", Purpose: "Master dropdown values (protected)"},
		},
		ReferenceSheet: "Dropdown Reference",
		DataSheet:      feedback,
		Validations: []style.Binding{
			{Column: "E", Range: "User_Type_List"},
			{Column: "H", Range: "Platform_List"},
			{Column: "K", Range: "Feature_Module_List"},
			{Column: "L", Range: "Feedback_Type_List"},
			{Column: "M", Range: "Priority_List"},
			{Column: "N", Range: "Severity_List"},
			{Column: "V", Range: "AI_Personality_List"},
			{Column: "Y", Range: "Status_List"},
			{Column: "AA", Range: "Assigned_To_List"},
		},
		ValidationSpan: style.RowSpan{First: 2, Last: 1000},
		Messages:       style.DefaultMessages(),
		Theme:          style.DefaultTheme(),
		Score:          formula.DefaultColumns(),
		Highlight:      highlight.DefaultColumns(),
		Dashboard: dashboard.Layout{
			SheetName:    "Dashboard",
			Purpose:      "Summary metrics and quick stats",
			Title:        "OrokiiPay User Feedback Dashboard",
			Primary:      primary,
			SummaryTitle: "Summary Metrics",
			Summary: []dashboard.Metric{
				{Label: "Total Feedback Count", Kind: dashboard.CountRows, Sheet: feedback, Column: "A"},
				{Label: "Open Items", Kind: dashboard.CountIf, Sheet: feedback, Column: "Y", Values: []string{"New", "Under Review", "In Progress"}},
				{Label: "Resolved Items", Kind: dashboard.CountIf, Sheet: feedback, Column: "Y", Values: []string{"Resolved"}},
				{Label: "Critical/High Priority", Kind: dashboard.CountIf, Sheet: feedback, Column: "M", Values: []string{"Critical", "High"}},
				{Label: "AI-Related Feedback", Kind: dashboard.CountIf, Sheet: feedback, Column: "K", Values: []string{"AI Assistant"}},
				{Label: "Bug Reports", Kind: dashboard.CountIf, Sheet: feedback, Column: "L", Values: []string{"Bug"}},
				{Label: "Feature Requests", Kind: dashboard.CountIf, Sheet: feedback, Column: "L", Values: []string{"Feature Request"}},
			},
			StatsTitle: "Quick Stats",
			Stats: []dashboard.Metric{
				{Label: "Average NPS Score", Kind: dashboard.Average, Sheet: survey, Column: "E"},
				{Label: "Overall Satisfaction", Kind: dashboard.Average, Sheet: survey, Column: "D"},
				{Label: "AI Assistant Rating", Kind: dashboard.Average, Sheet: survey, Column: "H"},
				{Label: "Gamification Rating", Kind: dashboard.Average, Sheet: survey, Column: "L"},
			},
			HowToTitle: "How to Use This Dashboard",
			HowTo: []string{
				"1. This dashboard auto-updates as you add feedback to the Feedback Log sheet",
				"2. Use the metrics above to track feedback trends",
				"3. Create pivot tables for deeper analysis (Insert → Pivot Table)",
				"4. Add charts to visualize data (Insert → Chart)",
				"5. Refresh data: Data → Refresh All",
			},
		},
		Instructions: dashboard.Guide{
			SheetName: "Instructions",
			Title:     "Quick Start Guide - User Feedback Template",
			Primary:   primary,
			UserTitle: "For Users Submitting Feedback:",
			UserSteps: []string{
				"1. Go to the 'Feedback Log' sheet",
				"2. Find the first empty row",
				"3. Fill in your details: Name, Email, App Version, Platform",
				"4. Select Feature/Module from dropdown",
				"5. Select Feedback Type (Bug, Feature Request, etc.)",
				"6. Write a clear title and description",
				"7. Rate your satisfaction",
				"8. Save the file",
			},
			TeamTitle: "For Product/Development Team:",
			TeamSteps: []string{
				"1. Review 'Dashboard' sheet for summary metrics",
				"2. Go to 'Feedback Log' sheet",
				"3. Use filters to find unassigned or high-priority items",
				"4. Assign Priority and Severity",
				"5. Assign to team member",
				"6. Update Status as work progresses",
				"7. Add Internal Notes for tracking",
				"8. Update Resolution Date and Notes when fixed",
				"",
				"Quick Filters:",
				"   • Critical Issues: Filter Priority = 'Critical'",
				"   • My Tasks: Filter Assigned To = Your Name",
				"   • AI Feedback: Filter Feature/Module = 'AI Assistant'",
				"   • This Week: Filter Submission Date >= Start of week",
			},
			GuideTitle:   "Sheet Guide:",
			SupportTitle: "Need Help?",
			Support: []string{
				"Email: development@orokiipay.com",
				"Docs: See USER_FEEDBACK_TEMPLATE.md in docs/ folder",
				"Setup: See FEEDBACK_TEMPLATE_SETUP_GUIDE.md",
			},
		},
	}
}

// LoadOptions reads a YAML file over DefaultOptions. Unknown keys are an error.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		return opts, fmt.Errorf("parse config %s: %w", path, err)
	}
	return opts, nil
}

// YAML renders the options as a config file.
func (o Options) YAML() ([]byte, error) {
	return yaml.Marshal(o)
}

// Validate checks that the sheet roles refer to configured sources.
func (o Options) Validate() error {
	if len(o.Sources) == 0 {
		return errors.New("no sources configured")
	}

	names := make([]string, 0, len(o.Sources))
	for _, s := range o.Sources {
		if s.Sheet == "" || s.File == "" {
			return fmt.Errorf("source %q: sheet and file are required", s.Sheet)
		}
		if slices.Contains(names, s.Sheet) {
			return fmt.Errorf("source %q: %w", s.Sheet, ErrDuplicateSheetName)
		}
		names = append(names, s.Sheet)
	}
	for _, name := range []string{o.Dashboard.SheetName, o.Instructions.SheetName} {
		if slices.Contains(names, name) {
			return fmt.Errorf("sheet %q: %w", name, ErrDuplicateSheetName)
		}
	}
	if !slices.Contains(names, o.ReferenceSheet) {
		return fmt.Errorf("reference sheet %q is not a configured source", o.ReferenceSheet)
	}
	if !slices.Contains(names, o.DataSheet) {
		return fmt.Errorf("data sheet %q is not a configured source", o.DataSheet)
	}
	if o.ValidationSpan.First < 1 || o.ValidationSpan.Last < o.ValidationSpan.First || o.ValidationSpan.Last > excelize.TotalRows {
		return fmt.Errorf("invalid validation span %d:%d", o.ValidationSpan.First, o.ValidationSpan.Last)
	}
	return nil
}

// sources resolves the configured files against SourceDir.
func (o Options) sources() []parser.Source {
	out := make([]parser.Source, 0, len(o.Sources))
	for _, s := range o.Sources {
		path := s.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(o.SourceDir, path)
		}
		out = append(out, parser.Source{Sheet: s.Sheet, Path: path})
	}
	return out
}

// SourcePaths returns the configured source files in import order.
func (o Options) SourcePaths() []string {
	paths := make([]string, 0, len(o.Sources))
	for _, s := range o.sources() {
		paths = append(paths, s.Path)
	}
	return paths
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}
