package http

import (
	"context"
	"io"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/dataprocessing"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

// AnalyticsServiceInterface defines the payload operations
type AnalyticsServiceInterface interface {
	Dashboard(ctx context.Context) (*domain.DashboardData, error)
	Insights(ctx context.Context) (*domain.CutoffInsights, error)
	Regional(ctx context.Context) (*domain.RegionalReport, error)
	BranchPopularity(ctx context.Context, opts dataprocessing.PopularityOptions) (*domain.BranchPopularity, error)
	PopularityDefaults() dataprocessing.PopularityOptions
}

// DatasetServiceInterface describes the loaded snapshot
type DatasetServiceInterface interface {
	Summary(ctx context.Context) (*domain.DatasetSummary, error)
}

// ExportServiceInterface renders downloads
type ExportServiceInterface interface {
	Workbook(ctx context.Context, w io.Writer) error
	Chart(ctx context.Context, name string, w io.Writer) error
}
