package dataprocessing

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadsAreIdempotent(t *testing.T) {
	ds := fullDataset(sampleRecords())

	build := func() [][]byte {
		dashboard, err := BuildDashboard(ds)
		require.NoError(t, err)
		insights, err := BuildInsights(ds)
		require.NoError(t, err)
		regional, err := BuildRegional(ds)
		require.NoError(t, err)
		popularity, err := BuildBranchPopularity(ds, PopularityOptions{MinTotal: 10, TopN: 8})
		require.NoError(t, err)

		var out [][]byte
		for _, payload := range []interface{}{dashboard, insights, regional, popularity} {
			data, err := json.Marshal(payload)
			require.NoError(t, err, "payloads never carry NaN or Inf")
			out = append(out, data)
		}
		return out
	}

	first := build()
	second := build()
	for i := range first {
		assert.Equal(t, string(first[i]), string(second[i]))
	}
}

func TestBuildDashboard(t *testing.T) {
	ds := fullDataset(sampleRecords())

	got, err := BuildDashboard(ds)
	require.NoError(t, err)

	assert.Equal(t, []interface{}{1, 2, 3}, got.Rounds.Labels)
	assert.Equal(t, []float64{80, 80, 80}, got.Rounds.Data)
	assert.Equal(t, []interface{}{2023, 2024, 2025}, got.Years.Labels)
	assert.Equal(t, []interface{}{"BC", "MBC", "OC", "SC"}, got.Community.Labels)
	assert.Len(t, got.Top10Colleges.Labels, 10)
	assert.Len(t, got.Top10Colleges.Data, 10)
	for i := 1; i < len(got.Top10Colleges.Data); i++ {
		assert.GreaterOrEqual(t, got.Top10Colleges.Data[i-1], got.Top10Colleges.Data[i])
	}

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rounds":{"labels":[1,2,3],"data":[80,80,80]}`)
}

func TestBuildDashboardEmpty(t *testing.T) {
	got, err := BuildDashboard(fullDataset(nil))
	require.NoError(t, err)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, `{"rounds":{"labels":[],"data":[]},"years":{"labels":[],"data":[]},`+
		`"top10_colleges":{"labels":[],"data":[]},"community":{"labels":[],"data":[]},`+
		`"college_type":{"labels":[],"data":[]}}`, string(data))
}

func TestBuildInsightsSerializesMissingAsNull(t *testing.T) {
	records := series("Gap College", map[int]float64{2023: 150, 2025: 160})
	ds := fullDataset(records)

	got, err := BuildInsights(ds)
	require.NoError(t, err)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, `"2024":null`)
	assert.Contains(t, body, `"Trend":"flat"`)
	assert.Contains(t, body, `"increasing_branches":[]`)
	assert.NotContains(t, body, "NaN")
}

func TestBuildRegionalMissingColumns(t *testing.T) {
	ds := NewDataset(nil, []string{ColYear, ColBranchCode}, Stats{})

	_, err := BuildRegional(ds)
	require.Error(t, err)

	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{ColDistrict, ColAggrMark}, missing.Columns)
	assert.True(t, strings.Contains(err.Error(), "DISTRICT, AGGRMARK"))
}

func TestBuildRegional(t *testing.T) {
	records := series("CHENNAI", map[int]float64{2023: 100, 2024: 110, 2025: 121})
	records = append(records, series("OOTY", map[int]float64{2023: 0, 2025: 50})...)

	got, err := BuildRegional(fullDataset(records))
	require.NoError(t, err)

	require.Len(t, got.Districts, 2)
	require.Len(t, got.TopDistrictCounts, 2)
	assert.Equal(t, "CHENNAI", got.TopDistrictCounts[0].District)
	assert.Equal(t, 3, got.TopDistrictCounts[0].Count)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pct_change_23_25":1000`)
	assert.Contains(t, string(data), `"ZONE":"UNKNOWN"`)
	assert.Contains(t, string(data), `"AREA_TYPE":"RURAL"`)
}

func TestCleanedSetInvariant(t *testing.T) {
	rows := [][]string{
		{"1", "1", "2023", "OC", "1", "A", "X", "P", "CS", "OC", "100"},
		{"2", "1", "2021", "OC", "1", "A", "X", "P", "CS", "OC", "100"},
		{"3", "1", "2026", "OC", "1", "A", "X", "P", "CS", "OC", "100"},
		{"4", "1", "2024", "OC", "1", "A", "X", "P", "CS", "OC", ""},
		{"5", "1", "2024", "OC", "1", "A", "X", "P", "CS", "OC", "Inf"},
		{"6", "1", "2025", "OC", "1", "A", "X", "P", "CS", "OC", "99.5"},
		{"7", "1", "2024.5", "OC", "1", "A", "X", "P", "CS", "OC", "99.5"},
	}

	ds, err := NewLoader(nil).LoadRows(context.Background(), sourceHeader, rows)
	require.NoError(t, err)

	require.Len(t, ds.Records, 2)
	for _, r := range ds.Records {
		assert.GreaterOrEqual(t, r.Year, FirstYear)
		assert.LessOrEqual(t, r.Year, LastYear)
		assert.False(t, math.IsNaN(r.AggrMark) || math.IsInf(r.AggrMark, 0), "score is a finite number")
	}
	assert.Equal(t, ds.Stats.RowsRead, ds.Stats.Retained+ds.Stats.DroppedScore+ds.Stats.DroppedYear)
}
