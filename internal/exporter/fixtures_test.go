package exporter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/dataprocessing"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/shared/testutil"
)

// sampleReport builds every payload over the shared sample allotments.
func sampleReport(t *testing.T) *Report {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	ds, err := dataprocessing.NewLoader(logger).LoadRows(context.Background(), testutil.AllotmentHeader, testutil.SampleAllotmentRows())
	require.NoError(t, err)

	dashboard, err := dataprocessing.BuildDashboard(ds)
	require.NoError(t, err)
	insights, err := dataprocessing.BuildInsights(ds)
	require.NoError(t, err)
	regional, err := dataprocessing.BuildRegional(ds)
	require.NoError(t, err)
	popularity, err := dataprocessing.BuildBranchPopularity(ds, dataprocessing.PopularityOptions{MinTotal: 0, TopN: 3})
	require.NoError(t, err)

	return &Report{Dashboard: dashboard, Insights: insights, Regional: regional, Popularity: popularity}
}
