package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/config"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/dataprocessing"
	apierrors "github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/errors"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/exporter"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/middleware"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/services"
)

// Content types of the downloads
const (
	ContentTypePNG  = "image/png"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// AnalyticsHandler serves the aggregate payloads and their downloads
type AnalyticsHandler struct {
	analytics    AnalyticsServiceInterface
	datasets     DatasetServiceInterface
	exports      ExportServiceInterface
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(
	analytics AnalyticsServiceInterface,
	datasets DatasetServiceInterface,
	exports ExportServiceInterface,
	validator *middleware.Validator,
	logger *slog.Logger,
	errorHandler *apierrors.ErrorHandler,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics:    analytics,
		datasets:     datasets,
		exports:      exports,
		validator:    validator,
		logger:       logger.With(slog.String("component", "analytics_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the /api routes
func (h *AnalyticsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/dashboard", h.envelope(h.dashboard))
		r.Get("/cutoff/insights", h.envelope(h.insights))
		r.Get("/cutoff/regional", h.envelope(h.regional))
		r.Get("/branches/popularity", h.envelope(h.popularity))
		r.Get("/dataset/summary", h.envelope(h.summary))
	})

	r.Get("/charts/{chart}.png", h.Chart)
	r.Get("/export/workbook.xlsx", h.Workbook)

	return r
}

// MountLegacy registers the original dashboard paths on r
func (h *AnalyticsHandler) MountLegacy(r chi.Router) {
	r.Get("/data", h.bare(h.dashboard))
	r.Get("/cutoff-dashboard-data", h.bare(h.insights))
	r.Get("/cutoff/regional-data", h.bare(h.regional))
	r.Get("/branch_data", h.bare(h.popularity))
}

// payloadFunc produces a response body. It returns handled=true when it
// has already written an error response itself.
type payloadFunc func(w http.ResponseWriter, r *http.Request) (body interface{}, handled bool, err error)

// bare renders the payload as is.
func (h *AnalyticsHandler) bare(fn payloadFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, handled, err := fn(w, r)
		if handled {
			return
		}
		if err != nil {
			h.fail(w, r, err)
			return
		}
		render.JSON(w, r, body)
	}
}

// envelope renders the payload inside the /api response envelope.
func (h *AnalyticsHandler) envelope(fn payloadFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, handled, err := fn(w, r)
		if handled {
			return
		}
		if err != nil {
			h.fail(w, r, err)
			return
		}
		render.JSON(w, r, map[string]interface{}{
			"status": "success",
			"data":   body,
		})
	}
}

func (h *AnalyticsHandler) dashboard(_ http.ResponseWriter, r *http.Request) (interface{}, bool, error) {
	data, err := h.analytics.Dashboard(r.Context())
	return data, false, err
}

func (h *AnalyticsHandler) insights(_ http.ResponseWriter, r *http.Request) (interface{}, bool, error) {
	data, err := h.analytics.Insights(r.Context())
	return data, false, err
}

func (h *AnalyticsHandler) regional(_ http.ResponseWriter, r *http.Request) (interface{}, bool, error) {
	data, err := h.analytics.Regional(r.Context())
	return data, false, err
}

func (h *AnalyticsHandler) summary(_ http.ResponseWriter, r *http.Request) (interface{}, bool, error) {
	data, err := h.datasets.Summary(r.Context())
	return data, false, err
}

// popularity reads the optional min_total and top query parameters.
func (h *AnalyticsHandler) popularity(w http.ResponseWriter, r *http.Request) (interface{}, bool, error) {
	opts := h.analytics.PopularityDefaults()

	var ok bool
	if opts.MinTotal, ok = h.validator.QueryInt(w, r, h.errorHandler, "min_total", opts.MinTotal); !ok {
		return nil, true, nil
	}
	if opts.TopN, ok = h.validator.QueryInt(w, r, h.errorHandler, "top", opts.TopN); !ok {
		return nil, true, nil
	}
	if err := h.validator.ValidateStruct(opts); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, true, nil
	}

	data, err := h.analytics.BranchPopularity(r.Context(), opts)
	return data, false, err
}

// Chart handles GET /api/charts/{chart}.png
func (h *AnalyticsHandler) Chart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "chart")

	var buf bytes.Buffer
	if err := h.exports.Chart(r.Context(), name, &buf); err != nil {
		h.failExport(w, r, "chart", err)
		return
	}

	h.logger.DebugContext(r.Context(), "chart rendered",
		slog.String("chart", name),
		slog.Int("bytes", buf.Len()))
	writeDownload(w, ContentTypePNG, "", buf.Bytes())
}

// Workbook handles GET /api/export/workbook.xlsx
func (h *AnalyticsHandler) Workbook(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.exports.Workbook(r.Context(), &buf); err != nil {
		h.failExport(w, r, "workbook", err)
		return
	}
	writeDownload(w, ContentTypeXLSX, config.WorkbookFileName, buf.Bytes())
}

func writeDownload(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// fail maps service errors onto API errors and writes the problem.
func (h *AnalyticsHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("request_id", reqID),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))

	switch {
	case errors.Is(err, services.ErrDatasetUnavailable):
		h.errorHandler.HandleError(w, r, apierrors.DatasetUnavailable(err))
	case errors.Is(err, exporter.ErrUnknownChart):
		h.errorHandler.HandleError(w, r, apierrors.NotFoundError("chart"))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}

// failExport is fail for downloads. Failures other than a missing dataset,
// missing columns, an unknown chart, a cancelled request or an already
// typed app error are export failures.
func (h *AnalyticsHandler) failExport(w http.ResponseWriter, r *http.Request, kind string, err error) {
	var missing *dataprocessing.MissingColumnsError
	var appErr *apierrors.AppError
	switch {
	case errors.Is(err, services.ErrDatasetUnavailable),
		errors.Is(err, exporter.ErrUnknownChart),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &missing),
		errors.As(err, &appErr) && (appErr.Type == apierrors.ErrTypeAggregation || appErr.Type == apierrors.ErrTypeExport):
		h.fail(w, r, err)
	default:
		h.fail(w, r, apierrors.ExportFailed(kind, err))
	}
}
