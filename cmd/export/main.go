// Command export writes the analysis workbook, charts and CSV tables for
// the configured dataset without starting the web server.
//
// Usage:
//
//	export --dataset data/Recent_Cleaned.csv --out exports
//	export summary
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/app"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/config"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/infrastructure"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts"
)

type options struct {
	baseDir  string
	dataset  string
	outDir   string
	sheet    string
	minTotal int
	topN     int
	logLevel string

	minTotalSet bool
	topNSet     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "export",
		Short:        "Export TNEA cutoff analysis files",
		Long:         "Computes every payload from the allotment dataset and writes the XLSX workbook, PNG charts and one CSV per table.",
		Version:      contracts.GetFullVersionString(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.minTotalSet = cmd.Flags().Changed("min-total")
			opts.topNSet = cmd.Flags().Changed("top")
			return runExport(cmd.Context(), opts, out)
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.baseDir, "base-dir", "", "base directory for relative paths (default: working directory)")
	flags.StringVar(&opts.dataset, "dataset", "", "dataset file, CSV or XLSX (default: from config)")
	flags.StringVar(&opts.sheet, "sheet", "", "worksheet to read from an XLSX dataset")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (default: warn)")
	root.Flags().StringVar(&opts.outDir, "out", "", "export directory (default: from config)")
	root.Flags().IntVar(&opts.minTotal, "min-total", config.DefaultMinBranchTotal, "minimum 2023-2025 allotments for a branch to be ranked")
	root.Flags().IntVar(&opts.topN, "top", config.DefaultTopBranches, "number of growing and declining branches")

	root.AddCommand(newSummaryCmd(opts, out))
	return root
}

func newSummaryCmd(opts *options, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the dataset summary as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, logger, err := setup(opts)
			if err != nil {
				return err
			}
			ctx := infrastructure.EnsureTraceID(cmd.Context())
			summary, err := svc.Datasets.Summary(ctx)
			if err != nil {
				return err
			}
			logger.DebugContext(ctx, "dataset summarized", slog.Int("retained", summary.Retained))

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
}

func runExport(ctx context.Context, opts *options, out io.Writer) error {
	svc, logger, err := setup(opts)
	if err != nil {
		return err
	}

	ctx = infrastructure.EnsureTraceID(ctx)
	paths, err := svc.Exports.ExportAll(ctx)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	for _, p := range paths {
		fmt.Fprintln(out, p)
	}
	logger.InfoContext(ctx, "Export finished", slog.Int("files", len(paths)))
	return nil
}

// setup loads the configuration, applies command-line overrides and wires
// the services without telemetry exporters.
func setup(opts *options) (*app.ServiceContainer, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return nil, nil, err
	}

	paths, err := cfg.Resolve()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, nil, err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging, paths.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = infrastructure.WithComponent(logger, "export_cmd")

	providers, err := infrastructure.InitializeOTel(
		infrastructure.OTelConfigFrom(cfg.Telemetry, contracts.Version), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	metrics, err := infrastructure.NewMetrics(providers.Meter)
	if err != nil {
		return nil, nil, err
	}

	return app.NewServices(cfg, paths, providers, metrics, logger), logger, nil
}

// applyOverrides lays flags over cfg. Paths given on the command line are
// relative to the working directory, not to the configured data directory.
func applyOverrides(cfg *config.Config, opts *options) error {
	// Nothing scrapes /metrics during an export.
	cfg.Telemetry.MetricsEnabled = false

	abs := func(p string) (string, error) {
		if p == "" {
			return "", nil
		}
		return filepath.Abs(p)
	}
	var err error
	if opts.baseDir, err = abs(opts.baseDir); err != nil {
		return err
	}
	if opts.dataset, err = abs(opts.dataset); err != nil {
		return err
	}
	if opts.outDir, err = abs(opts.outDir); err != nil {
		return err
	}

	if opts.baseDir != "" {
		cfg.Paths.BaseDir = opts.baseDir
	}
	if opts.dataset != "" {
		cfg.Paths.DatasetFile = opts.dataset
	}
	if opts.outDir != "" {
		cfg.Paths.ExportDir = opts.outDir
	}
	if opts.sheet != "" {
		cfg.Analytics.Sheet = opts.sheet
	}
	// Logs share stdout with the list of written files.
	cfg.Logging.Level = "warn"
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.minTotalSet {
		cfg.Analytics.MinBranchTotal = opts.minTotal
	}
	if opts.topNSet {
		cfg.Analytics.TopBranches = opts.topN
	}
	return nil
}
