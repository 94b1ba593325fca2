package wbassemble

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/dashboard"
	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/formula"
	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/highlight"
	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/models"
	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/output"
	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/parser"
	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/segment"
	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/style"
)

// Assemble builds the workbook document described by opts. Every source is
// checked before any sheet is created. Validation columns whose range cannot
// be resolved are logged and skipped; any other failure aborts the build.
func Assemble(opts Options) (*models.Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, stageError(StagePreflight, "", err)
	}
	log := opts.logger()

	sources := opts.sources()
	if err := parser.CheckSources(sources); err != nil {
		return nil, stageError(StagePreflight, "", err)
	}

	doc := models.NewDocument()
	for _, src := range sources {
		sheet, err := parser.Import(doc, src.Sheet, parser.Rows(src.Path))
		if err != nil {
			return nil, stageError(StageImport, src.Sheet, err)
		}
		log.Debug("imported source",
			zap.String("sheet", src.Sheet),
			zap.String("path", src.Path),
			zap.Int("rows", sheet.MaxRow()))
	}

	blocks, skipped, err := segment.Register(doc, opts.ReferenceSheet)
	if err != nil {
		return nil, stageError(StageSegment, opts.ReferenceSheet, err)
	}
	for _, err := range skipped {
		log.Warn("skipped range", zap.String("sheet", opts.ReferenceSheet), zap.Error(err))
	}
	for _, b := range blocks {
		log.Debug("defined range", zap.String("range", b.Name), zap.String("ref", b.Ref.Ref()))
	}
	log.Info("segmented reference sheet",
		zap.String("sheet", opts.ReferenceSheet),
		zap.Int("ranges", len(doc.RangeNames())))

	for _, src := range sources {
		style.Apply(doc.Sheet(src.Sheet), opts.Theme)
	}
	errs := style.BindValidations(doc, opts.DataSheet, opts.Validations, opts.ValidationSpan, opts.Messages)
	for _, err := range errs {
		log.Warn("skipped validation", zap.String("sheet", opts.DataSheet), zap.Error(err))
	}
	style.Protect(doc.Sheet(opts.ReferenceSheet))
	log.Info("styled sheets",
		zap.Int("sheets", len(sources)),
		zap.Int("validations", len(opts.Validations)-len(errs)))

	rows, err := formula.Apply(doc, opts.DataSheet, opts.Score)
	if err != nil {
		return nil, stageError(StageFormula, opts.DataSheet, err)
	}
	log.Debug("wrote score formulas", zap.String("column", opts.Score.Score), zap.Int("rows", rows))

	rules, err := highlight.Apply(doc, opts.DataSheet, opts.Highlight, opts.ValidationSpan)
	if err != nil {
		return nil, stageError(StageHighlight, opts.DataSheet, err)
	}
	log.Debug("added highlight rules", zap.Int("rules", rules))

	warnings, err := dashboard.Build(doc, opts.Dashboard, opts.now())
	if err != nil {
		return nil, stageError(StageDashboard, opts.Dashboard.SheetName, err)
	}
	for _, w := range warnings {
		log.Warn("dashboard metric", zap.Error(w))
	}

	if err := dashboard.BuildInstructions(doc, opts.Instructions, opts.sheetGuide()); err != nil {
		return nil, stageError(StageInstructions, opts.Instructions.SheetName, err)
	}

	log.Info("assembled document", zap.Strings("sheets", doc.SheetNames()))
	return doc, nil
}

// Run assembles the document and writes it to dest, followed by the manifest
// when one is configured. Nothing is written unless the whole build succeeds.
func Run(opts Options, dest string) error {
	doc, err := Assemble(opts)
	if err != nil {
		return err
	}
	if err := output.SaveAs(doc, dest); err != nil {
		return stageError(StageWrite, "", fmt.Errorf("%s: %w", dest, err))
	}
	opts.logger().Info("saved workbook", zap.String("path", dest))

	if opts.Manifest == "" {
		return nil
	}
	data, err := output.ToJSON(doc, opts.PrettyManifest)
	if err != nil {
		return stageError(StageWrite, "", fmt.Errorf("%w: manifest: %w", ErrSerialization, err))
	}
	if err := os.WriteFile(opts.Manifest, data, 0644); err != nil {
		return stageError(StageWrite, "", fmt.Errorf("%w: %s: %w", ErrSerialization, opts.Manifest, err))
	}
	opts.logger().Info("saved manifest", zap.String("path", opts.Manifest))
	return nil
}

func (o Options) sheetGuide() []dashboard.SheetPurpose {
	guide := make([]dashboard.SheetPurpose, 0, len(o.Sources)+1)
	guide = append(guide, dashboard.SheetPurpose{Sheet: o.Dashboard.SheetName, Purpose: o.Dashboard.Purpose})
	for _, s := range o.Sources {
		guide = append(guide, dashboard.SheetPurpose{Sheet: s.Sheet, Purpose: s.Purpose})
	}
	return guide
}
