// Package main provides the CLI entry point for wbassemble.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/wbassemble-go/pkg/wbassemble"
	"github.com/ukaji3/wbassemble-go/pkg/wbassemble/watch"
)

var (
	configPath   string
	sourceDir    string
	outputPath   string
	manifestPath string
	pretty       bool
	verbose      bool
	debounce     time.Duration

	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wbassemble",
		Short: "Assemble the feedback tracker workbook from tabular sources",
		Long: `wbassemble imports CSV or xlsx sources as sheets and adds dropdown
validations, priority scores, highlighting and a dashboard.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: initLogger,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runBuild,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file (default: built-in layout)")
	flags.StringVarP(&sourceDir, "source-dir", "s", "", "Directory holding the source files")
	flags.StringVarP(&outputPath, "output", "o", "", "Output workbook path")
	flags.StringVar(&manifestPath, "manifest", "", "Also write a JSON manifest of the workbook")
	flags.BoolVar(&pretty, "pretty", false, "Pretty-print the JSON manifest")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the workbook whenever a source file changes",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	watchCmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before rebuilding")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE:  runConfig,
	}

	rootCmd.AddCommand(watchCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initLogger(cmd *cobra.Command, args []string) error {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// loadOptions reads the config file, if any, and applies flag overrides.
func loadOptions(cmd *cobra.Command) (wbassemble.Options, error) {
	opts := wbassemble.DefaultOptions()
	if configPath != "" {
		var err error
		if opts, err = wbassemble.LoadOptions(configPath); err != nil {
			return opts, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("source-dir") {
		opts.SourceDir = sourceDir
	}
	if flags.Changed("output") {
		opts.Output = outputPath
	}
	if flags.Changed("manifest") {
		opts.Manifest = manifestPath
	}
	if flags.Changed("pretty") {
		opts.PrettyManifest = pretty
	}
	opts.Logger = logger
	return opts, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if err := wbassemble.Run(opts, opts.Output); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Workbook saved to %s\n", opts.Output)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	files := opts.SourcePaths()
	build := func() error {
		return wbassemble.Run(opts, opts.Output)
	}
	if err := build(); err != nil {
		logger.Error("initial build failed", zap.Error(err))
	}

	w, err := watch.New(files, debounce, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching sources", zap.Int("files", len(files)), zap.String("output", opts.Output))
	return w.Run(ctx, build)
}

func runConfig(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	data, err := opts.YAML()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
