package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/config"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/dataprocessing"
	apierrors "github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/errors"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/exporter"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/infrastructure"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/validation"
)

// ExportService renders payloads as workbooks, charts and CSV tables.
type ExportService struct {
	analytics *AnalyticsService
	exportDir string
	files     *validation.FileValidator
	metrics   *infrastructure.Metrics
	logger    *slog.Logger
}

// NewExportService creates an export service writing files under exportDir.
func NewExportService(analytics *AnalyticsService, exportDir string, metrics *infrastructure.Metrics, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = infrastructure.NoopMetrics()
	}
	logger = logger.With(slog.String("component", "export_service"))
	return &ExportService{
		analytics: analytics,
		exportDir: exportDir,
		files:     validation.NewFileValidator(logger),
		metrics:   metrics,
		logger:    logger,
	}
}

// Report computes every payload, branch popularity with the configured
// defaults.
func (s *ExportService) Report(ctx context.Context) (*exporter.Report, error) {
	var r exporter.Report
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { r.Dashboard, err = s.analytics.Dashboard(gctx); return })
	g.Go(func() (err error) { r.Insights, err = s.analytics.Insights(gctx); return })
	g.Go(func() (err error) { r.Regional, err = s.analytics.Regional(gctx); return })
	g.Go(func() (err error) {
		r.Popularity, err = s.analytics.BranchPopularity(gctx, s.analytics.PopularityDefaults())
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Workbook writes every table as an XLSX workbook to w.
func (s *ExportService) Workbook(ctx context.Context, w io.Writer) (err error) {
	defer s.record(ctx, "workbook", &err)

	r, err := s.Report(ctx)
	if err != nil {
		return err
	}
	if _, err := exporter.WriteWorkbook(w, r.Tables()); err != nil {
		return apierrors.NewExportError("workbook", err)
	}
	return nil
}

// Chart draws the named chart as PNG to w. Unknown names fail with
// exporter.ErrUnknownChart before any payload is computed.
func (s *ExportService) Chart(ctx context.Context, name string, w io.Writer) (err error) {
	payload, err := exporter.ChartPayload(name)
	if err != nil {
		return err
	}
	defer s.record(ctx, "chart", &err)

	var r exporter.Report
	switch payload {
	case dataprocessing.PayloadInsights:
		r.Insights, err = s.analytics.Insights(ctx)
	case dataprocessing.PayloadRegional:
		r.Regional, err = s.analytics.Regional(ctx)
	case dataprocessing.PayloadPopularity:
		r.Popularity, err = s.analytics.BranchPopularity(ctx, s.analytics.PopularityDefaults())
	}
	if err != nil {
		return err
	}

	if _, err := exporter.RenderChart(w, name, &r); err != nil {
		return apierrors.NewExportError("chart", err)
	}
	return nil
}

// ExportAll writes the workbook, every chart and one CSV per table into
// the export directory and returns the written paths.
func (s *ExportService) ExportAll(ctx context.Context) (paths []string, err error) {
	defer s.record(ctx, "all", &err)

	if err := s.files.ValidateOutputDirectory(s.exportDir); err != nil {
		return nil, err
	}

	r, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	tables := r.Tables()

	workbook := filepath.Join(s.exportDir, config.WorkbookFileName)
	if err := writeFile(workbook, func(w io.Writer) error {
		_, err := exporter.WriteWorkbook(w, tables)
		return err
	}); err != nil {
		return nil, err
	}
	paths = append(paths, workbook)

	for _, name := range exporter.ChartNames() {
		path := filepath.Join(s.exportDir, name+".png")
		if err := writeFile(path, func(w io.Writer) error {
			_, err := exporter.RenderChart(w, name, r)
			return err
		}); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	csvPaths, err := exporter.NewCSVWriter(s.exportDir, s.logger).WriteTables(tables)
	paths = append(paths, csvPaths...)
	if err != nil {
		return paths, apierrors.NewExportError("csv", err)
	}

	s.logger.InfoContext(ctx, "export completed",
		slog.String("dir", s.exportDir),
		slog.Int("files", len(paths)))
	return paths, nil
}

func (s *ExportService) record(ctx context.Context, kind string, err *error) {
	result := "success"
	if *err != nil {
		result = "error"
		s.logger.ErrorContext(ctx, "export failed",
			slog.String("kind", kind),
			slog.String("error", (*err).Error()))
	}
	s.metrics.ExportsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("result", result)))
}

// writeFile creates path and fills it through write. Failures are export
// errors named after the file.
func writeFile(path string, write func(io.Writer) error) error {
	name := filepath.Base(path)
	f, err := os.Create(path)
	if err != nil {
		return apierrors.NewExportError(name, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return apierrors.NewExportError(name, err)
	}
	if err := f.Close(); err != nil {
		return apierrors.NewExportError(name, err)
	}
	return nil
}
