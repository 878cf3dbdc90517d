package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/dataprocessing"
	apierrors "github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/errors"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/infrastructure"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

// DatasetLoader reads a dataset file into a cleaned Dataset.
type DatasetLoader interface {
	Load(ctx context.Context, path string) (*dataprocessing.Dataset, error)
}

// DatasetService owns the read-only dataset snapshot. The snapshot is
// loaded on first use; a failed load is not remembered, so the next call
// retries, and a successful load is never replaced.
type DatasetService struct {
	path    string
	loader  DatasetLoader
	tracer  trace.Tracer
	metrics *infrastructure.Metrics
	logger  *slog.Logger

	mu      sync.Mutex
	dataset *dataprocessing.Dataset
}

// NewDatasetService creates a dataset service reading path through loader.
func NewDatasetService(path string, loader DatasetLoader, tracer trace.Tracer, metrics *infrastructure.Metrics, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = infrastructure.NoopMetrics()
	}
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.MeterName)
	}
	return &DatasetService{
		path:    path,
		loader:  loader,
		tracer:  tracer,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "dataset_service")),
	}
}

// Dataset returns the snapshot, loading it if needed. Load failures are
// wrapped in ErrDatasetUnavailable.
func (s *DatasetService) Dataset(ctx context.Context) (*dataprocessing.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dataset != nil {
		return s.dataset, nil
	}

	ds, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatasetUnavailable, classifyLoadError(err))
	}
	s.dataset = ds
	return ds, nil
}

// classifyLoadError tags an unreadable source as a storage error and any
// other loader failure as a parsing error. Cancellation and missing
// columns pass through untouched.
func classifyLoadError(err error) error {
	var missing *dataprocessing.MissingColumnsError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.As(err, &missing):
		return err
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return apierrors.NewStorageError("dataset source unreadable", err)
	default:
		return apierrors.NewParsingError("dataset could not be decoded", err)
	}
}

func (s *DatasetService) load(ctx context.Context) (*dataprocessing.Dataset, error) {
	ctx, span := s.tracer.Start(ctx, "dataset.load", trace.WithAttributes(attribute.String("dataset.path", s.path)))
	defer span.End()

	start := time.Now()
	ds, err := s.loader.Load(ctx, s.path)
	infrastructure.RecordDuration(ctx, s.metrics.DatasetLoadDuration, start)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.metrics.DatasetLoads.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "error")))
		s.logger.ErrorContext(ctx, "dataset load failed",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.metrics.DatasetLoads.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "success")))
	s.metrics.DatasetRowsRetained.Add(ctx, int64(ds.Stats.Retained))
	s.metrics.DatasetRowsDropped.Add(ctx, int64(ds.Stats.DroppedScore),
		metric.WithAttributes(attribute.String("reason", "invalid_score")))
	s.metrics.DatasetRowsDropped.Add(ctx, int64(ds.Stats.DroppedYear),
		metric.WithAttributes(attribute.String("reason", "out_of_range_year")))

	span.SetAttributes(
		attribute.Int("dataset.rows_read", ds.Stats.RowsRead),
		attribute.Int("dataset.retained", ds.Stats.Retained),
	)
	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", s.path),
		slog.String("version", Version(ds)),
		slog.Int("rows_read", ds.Stats.RowsRead),
		slog.Int("retained", ds.Stats.Retained),
		slog.Duration("duration", time.Since(start)))
	return ds, nil
}

// Preload loads the snapshot eagerly. A failure is logged and returned but
// leaves the service usable; requests retry the load.
func (s *DatasetService) Preload(ctx context.Context) error {
	_, err := s.Dataset(ctx)
	return err
}

// Loaded reports whether a snapshot is held.
func (s *DatasetService) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset != nil
}

// Path returns the configured dataset file.
func (s *DatasetService) Path() string {
	return s.path
}

// Summary describes the snapshot and the data-quality filter.
func (s *DatasetService) Summary(ctx context.Context) (*domain.DatasetSummary, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.DatasetSummary{
		Version:      Version(ds),
		Source:       ds.Source,
		LoadedAt:     ds.LoadedAt,
		RowsRead:     ds.Stats.RowsRead,
		DroppedScore: ds.Stats.DroppedScore,
		DroppedYear:  ds.Stats.DroppedYear,
		Retained:     ds.Stats.Retained,
		Columns:      ds.Columns,
	}, nil
}

// Version identifies a snapshot by the first 12 hex digits of its content
// checksum. Datasets built in memory have version "memory".
func Version(ds *dataprocessing.Dataset) string {
	if len(ds.Checksum) < 12 {
		return "memory"
	}
	return ds.Checksum[:12]
}
