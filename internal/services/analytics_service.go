package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/dataprocessing"
	apierrors "github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/errors"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/infrastructure"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

// DatasetProvider hands out the current dataset snapshot.
type DatasetProvider interface {
	Dataset(ctx context.Context) (*dataprocessing.Dataset, error)
}

// AnalyticsOptions configures payload computation.
type AnalyticsOptions struct {
	// CachePayloads memoizes payloads per snapshot version for the life of
	// the process.
	CachePayloads bool
	Popularity    dataprocessing.PopularityOptions
}

// AnalyticsService builds the JSON payloads. The independent stages of a
// payload run concurrently, each in its own span.
type AnalyticsService struct {
	datasets   DatasetProvider
	popularity dataprocessing.PopularityOptions
	cache      *cache.Cache
	tracer     trace.Tracer
	metrics    *infrastructure.Metrics
	logger     *slog.Logger
}

// NewAnalyticsService creates the payload service.
func NewAnalyticsService(datasets DatasetProvider, opts AnalyticsOptions, tracer trace.Tracer, metrics *infrastructure.Metrics, logger *slog.Logger) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = infrastructure.NoopMetrics()
	}
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.MeterName)
	}

	s := &AnalyticsService{
		datasets:   datasets,
		popularity: opts.Popularity,
		tracer:     tracer,
		metrics:    metrics,
		logger:     logger.With(slog.String("component", "analytics_service")),
	}
	if opts.CachePayloads {
		s.cache = cache.New(cache.NoExpiration, 0)
	}
	return s
}

// PopularityDefaults returns the configured branch popularity options.
func (s *AnalyticsService) PopularityDefaults() dataprocessing.PopularityOptions {
	return s.popularity
}

// Dashboard returns the main dashboard payload.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*domain.DashboardData, error) {
	return buildPayload(ctx, s, dataprocessing.PayloadDashboard, "", dataprocessing.DashboardStages)
}

// Insights returns the cutoff insights payload.
func (s *AnalyticsService) Insights(ctx context.Context) (*domain.CutoffInsights, error) {
	return buildPayload(ctx, s, dataprocessing.PayloadInsights, "", dataprocessing.InsightsStages)
}

// Regional returns the regional payload.
func (s *AnalyticsService) Regional(ctx context.Context) (*domain.RegionalReport, error) {
	return buildPayload(ctx, s, dataprocessing.PayloadRegional, "", dataprocessing.RegionalStages)
}

// BranchPopularity returns the branch popularity payload for opts.
func (s *AnalyticsService) BranchPopularity(ctx context.Context, opts dataprocessing.PopularityOptions) (*domain.BranchPopularity, error) {
	variant := fmt.Sprintf("min=%d,top=%d", opts.MinTotal, opts.TopN)
	return buildPayload(ctx, s, dataprocessing.PayloadPopularity, variant,
		func(records []dataprocessing.Record, out *domain.BranchPopularity) []dataprocessing.Stage {
			return dataprocessing.PopularityStages(records, opts, out)
		})
}

// buildPayload checks the payload's required columns, serves a memoized
// copy when caching is on and otherwise runs the payload's stages.
// Returned payloads are shared and must not be modified.
func buildPayload[T any](ctx context.Context, s *AnalyticsService, payload, variant string,
	stages func([]dataprocessing.Record, *T) []dataprocessing.Stage) (*T, error) {
	ctx, span := s.tracer.Start(ctx, "analytics."+payload)
	defer span.End()

	result := "error"
	defer func() {
		s.metrics.PayloadRequests.Add(ctx, 1, metric.WithAttributes(
			attribute.String("payload", payload),
			attribute.String("result", result)))
	}()

	ds, err := s.datasets.Dataset(ctx)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	if err := ds.Require(dataprocessing.RequiredColumns(payload)...); err != nil {
		infrastructure.RecordError(ctx, err)
		result = "missing_columns"
		return nil, fmt.Errorf("%s: %w", payload, err)
	}

	payloadAttr := metric.WithAttributes(attribute.String("payload", payload))
	key := payload + "|" + variant + "|" + Version(ds)
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			s.metrics.PayloadCacheHits.Add(ctx, 1, payloadAttr)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			result = "cached"
			return v.(*T), nil
		}
		s.metrics.PayloadCacheMisses.Add(ctx, 1, payloadAttr)
	}

	out := new(T)
	if err := s.runStages(ctx, payload, stages(ds.Records, out)); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, out, cache.NoExpiration)
	}
	result = "computed"
	return out, nil
}

// runStages runs stages concurrently and waits for all of them, or for
// ctx to end. A panicking stage fails the payload instead of the process.
func (s *AnalyticsService) runStages(ctx context.Context, payload string, stages []dataprocessing.Stage) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, stage := range stages {
		g.Go(func() (err error) {
			if err := gctx.Err(); err != nil {
				return err
			}

			sctx, span := s.tracer.Start(gctx, "stage."+stage.Name,
				trace.WithAttributes(attribute.String("payload", payload)))
			defer span.End()

			start := time.Now()
			defer func() {
				if rec := recover(); rec != nil {
					err = apierrors.NewAggregationError(stage.Name, fmt.Errorf("panic: %v", rec))
					infrastructure.RecordError(sctx, err)
					s.logger.ErrorContext(sctx, "aggregation stage panicked",
						slog.String("payload", payload),
						slog.String("stage", stage.Name),
						slog.Any("panic", rec))
				}
				infrastructure.RecordDuration(sctx, s.metrics.StageDuration, start,
					attribute.String("payload", payload),
					attribute.String("stage", stage.Name))
			}()

			stage.Run()
			return nil
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
