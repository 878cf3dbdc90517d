package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/config"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/dataprocessing"
	apierrors "github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/errors"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/infrastructure"
	customMiddleware "github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/middleware"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/services"
	handlers "github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/transport/http"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/validation"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.Metrics
	Services      *ServiceContainer
	ErrorHandler  *apierrors.ErrorHandler
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Datasets  *services.DatasetService
	Analytics *services.AnalyticsService
	Exports   *services.ExportService
	Health    *services.HealthService
}

// NewServices wires the dataset, analytics, export and health services
// from cfg. It is shared by the web server and the export command.
func NewServices(cfg *config.Config, paths *config.Paths, providers *infrastructure.OTelProviders, metrics *infrastructure.Metrics, logger *slog.Logger) *ServiceContainer {
	var loaderOpts []dataprocessing.LoaderOption
	if cfg.Analytics.Sheet != "" {
		loaderOpts = append(loaderOpts, dataprocessing.WithSheet(cfg.Analytics.Sheet))
	}
	loader := dataprocessing.NewLoader(logger, loaderOpts...)

	datasets := services.NewDatasetService(paths.DatasetFile, loader, providers.Tracer, metrics, logger)
	analytics := services.NewAnalyticsService(datasets, services.AnalyticsOptions{
		CachePayloads: cfg.Analytics.CachePayloads,
		Popularity: dataprocessing.PopularityOptions{
			MinTotal: cfg.Analytics.MinBranchTotal,
			TopN:     cfg.Analytics.TopBranches,
		},
	}, providers.Tracer, metrics, logger)

	return &ServiceContainer{
		Datasets:  datasets,
		Analytics: analytics,
		Exports:   services.NewExportService(analytics, paths.ExportDir, metrics, logger),
		Health:    services.NewHealthService(contracts.GetVersionInfo(), paths, datasets, logger),
	}
}

// NewApplication loads the configuration, initializes logging and builds
// the application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	paths, err := cfg.Resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging, paths.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", contracts.ProductName),
		slog.String("version", contracts.Version),
		slog.String("commit", contracts.GitCommit))
	paths.LogPathResolution(logger)

	return New(cfg, paths, logger)
}

// New builds an application from an already loaded configuration.
func New(cfg *config.Config, paths *config.Paths, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	providers, err := infrastructure.InitializeOTel(
		infrastructure.OTelConfigFrom(cfg.Telemetry, contracts.Version), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.NewMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: providers,
		Metrics:       metrics,
		Services:      NewServices(cfg, paths, providers, metrics, logger),
		ErrorHandler:  apierrors.NewErrorHandler(logger, false),
	}

	a.setupRouter()
	a.createServer()
	return a, nil
}

// setupRouter orders middleware as RequestID, RealIP, OTel, logger,
// recoverer, then the security and throttling layers.
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	eh := a.ErrorHandler

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(eh))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			Logger:         a.Logger,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
			eh,
		).Handler)
	}

	r.NotFound(eh.NotFound)
	r.MethodNotAllowed(eh.MethodNotAllowed)

	validator := customMiddleware.NewValidator(a.Logger)
	analytics := handlers.NewAnalyticsHandler(
		a.Services.Analytics,
		a.Services.Datasets,
		a.Services.Exports,
		validator,
		a.Logger,
		eh,
	)
	health := handlers.NewHealthHandler(a.Services.Health, a.Logger)

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))
		r.Use(customMiddleware.Compress(5, "application/json"))

		analytics.MountLegacy(r)

		r.Route("/api", func(r chi.Router) {
			r.Mount("/health", health.Routes())
			r.With(render.SetContentType(render.ContentTypeJSON)).Get("/version", health.Version)
			r.Mount("/", analytics.Routes())
		})
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts serving in the background. A listener failure cancels ctx
// through cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", contracts.ProductName),
		slog.String("version", contracts.Version),
		slog.String("address", a.Server.Addr),
		slog.String("level", a.Config.Logging.Level))

	if err := a.performStartupCheck(); err != nil {
		a.Logger.WarnContext(ctx, "Startup check warnings", slog.String("warnings", err.Error()))
	}

	if a.Config.Analytics.Preload {
		if err := a.Services.Datasets.Preload(ctx); err != nil {
			a.Logger.WarnContext(ctx, "Dataset preload failed, loading on first request",
				slog.String("error", err.Error()))
		}
	}

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// performStartupCheck validates the dataset file and the export directory.
// Failures are not fatal: analytics endpoints answer 503 until the dataset
// becomes readable.
func (a *Application) performStartupCheck() error {
	files := validation.NewFileValidator(a.Logger)
	return errors.Join(
		files.ValidateDatasetFile(a.Paths.DatasetFile),
		files.ValidateOutputDirectory(a.Paths.ExportDir),
	)
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return infrastructure.CloseLogFile()
}

// Run runs the application until interrupted or the server fails
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case sig := <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
		a.Logger.WarnContext(ctx, "Server stopped unexpectedly")
	}

	// ctx may already be cancelled; shutdown gets its own deadline.
	return a.Stop(context.Background())
}
