package dataprocessing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

func TestYearlyAverages(t *testing.T) {
	records := []Record{
		rec(2023, "A", "", "", 100),
		rec(2023, "B", "", "", 120),
		rec(2024, "A", "", "", 115),
		rec(2025, "A", "", "", 112),
	}

	got := YearlyAverages(records)
	require.Len(t, got, 3)

	assert.Equal(t, 2023, got[0].Year)
	assert.InDelta(t, 110, got[0].Average, 1e-9)
	assert.True(t, got[0].YoYChange.IsNull())
	assert.InDelta(t, 5, got[1].YoYChange.Value, 1e-9)
	assert.InDelta(t, -3, got[2].YoYChange.Value, 1e-9)
}

func TestCommunityTrends(t *testing.T) {
	a := rec(2024, "A", "", "", 100)
	a.Community = "SC"
	b := rec(2023, "A", "", "", 150)
	b.Community = "OC"
	c := rec(2023, "A", "", "", 130)
	c.Community = "BC"
	d := rec(2023, "A", "", "", 140)
	d.Community = "BC"

	got := CommunityTrends([]Record{a, b, c, d})
	require.Len(t, got, 3)
	assert.Equal(t, domain.CommunityTrend{Year: 2023, Community: "BC", Cutoff: 135}, got[0])
	assert.Equal(t, domain.CommunityTrend{Year: 2023, Community: "OC", Cutoff: 150}, got[1])
	assert.Equal(t, domain.CommunityTrend{Year: 2024, Community: "SC", Cutoff: 100}, got[2])
}

func TestCollegeTrendsTopTen(t *testing.T) {
	var records []Record
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("College %02d", i)
		records = append(records, series(name, map[int]float64{2023: float64(100 + i), 2024: float64(101 + i), 2025: float64(102 + i)})...)
	}
	// ties with College 11 on overall average
	records = append(records, series("AAA Tie", map[int]float64{2024: 112})...)
	records = append(records, series("ZZZ Tie", map[int]float64{2024: 112})...)

	got := CollegeTrends(records, DefaultTopColleges)
	require.Len(t, got, 10)

	names := make([]string, len(got))
	for i, c := range got {
		names[i] = c.CollegeName
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].AvgOverall.Value, c.AvgOverall.Value)
		}
	}
	assert.Equal(t, []string{"AAA Tie", "College 11", "ZZZ Tie"}, names[:3], "ties ordered by name")
}

func TestCollegeTrendFields(t *testing.T) {
	records := series("Rising", map[int]float64{2023: 100, 2024: 110, 2025: 121})
	records = append(records, series("Gap", map[int]float64{2023: 90, 2025: 95})...)
	records = append(records, series("Zigzag", map[int]float64{2023: 80, 2024: 95, 2025: 85})...)
	records = append(records, series("Late", map[int]float64{2024: 70, 2025: 60})...)

	got := CollegeTrends(records, DefaultTopColleges)
	require.Len(t, got, 4)
	byName := make(map[string]domain.CollegeTrend)
	for _, c := range got {
		byName[c.CollegeName] = c
	}

	rising := byName["Rising"]
	assert.Equal(t, domain.TrendIncreasing, rising.Trend)
	assert.InDelta(t, 21.0, rising.PercentChange.Value, 1e-9)
	assert.InDelta(t, 21.0, rising.NetIncrease.Value, 1e-9)
	assert.Equal(t, 2023, rising.FirstYear)
	assert.Equal(t, 2025, rising.LastYear)

	gap := byName["Gap"]
	assert.Equal(t, domain.TrendFlat, gap.Trend, "missing year is never monotonic")
	assert.True(t, gap.Avg2024.IsNull())
	assert.InDelta(t, 5, gap.NetIncrease.Value, 1e-9)

	assert.Equal(t, domain.TrendUp, byName["Zigzag"].Trend)

	late := byName["Late"]
	assert.Equal(t, domain.TrendFlat, late.Trend)
	assert.Equal(t, 2024, late.FirstYear)
	assert.True(t, late.StartCutoff.IsNull())
	assert.True(t, late.PercentChange.IsNull())
}

func TestBranchTrends(t *testing.T) {
	records := series("CS", map[int]float64{2023: 150, 2024: 160, 2025: 190})
	records = append(records, series("IT", map[int]float64{2023: 140, 2024: 145, 2025: 150})...)
	records = append(records, series("ME", map[int]float64{2023: 130, 2024: 120, 2025: 100})...)
	records = append(records, series("CE", map[int]float64{2023: 120, 2024: 110, 2025: 115})...)
	records = append(records, series("AD", map[int]float64{2024: 150, 2025: 170})...)

	inc, dec := BranchTrends(records)

	require.Len(t, inc, 2)
	assert.Equal(t, "CS", inc[0].BranchCode, "largest net increase first")
	assert.Equal(t, "Computer Science and Engineering", inc[0].BranchName)
	assert.True(t, inc[0].Increasing)
	assert.False(t, inc[0].Decreasing)
	assert.Equal(t, "IT", inc[1].BranchCode)

	require.Len(t, dec, 1)
	assert.Equal(t, "ME", dec[0].BranchCode)
	assert.InDelta(t, -30, dec[0].NetIncrease.Value, 1e-9)
	assert.True(t, dec[0].Decreasing)
}

func TestDistrictTrends(t *testing.T) {
	records := series("CHENNAI", map[int]float64{2023: 100, 2024: 110, 2025: 121})
	records = append(records, series("OOTY", map[int]float64{2023: 0, 2025: 50})...)

	got := DistrictTrends(records)
	require.Len(t, got, 2)

	chennai := got[0]
	assert.Equal(t, "CHENNAI", chennai.District)
	assert.Equal(t, ZoneNorth, chennai.Zone)
	assert.Equal(t, domain.AreaUrban, chennai.AreaType)
	assert.Equal(t, domain.TrendIncreasing, chennai.Trend)
	assert.InDelta(t, 10, chennai.Pct2324.Value, 1e-9)
	assert.InDelta(t, 21, chennai.Pct2325.Value, 1e-9)
	assert.InDelta(t, 11, chennai.Change2425.Value, 1e-9)

	ooty := got[1]
	assert.Equal(t, "OOTY", ooty.District)
	assert.Equal(t, domain.ZoneUnknown, ooty.Zone)
	assert.Equal(t, domain.AreaRural, ooty.AreaType)
	assert.Equal(t, domain.Float(InfiniteGrowth), ooty.Pct2325)
	assert.True(t, ooty.Pct2324.IsNull())
	assert.Equal(t, domain.TrendStable, ooty.Trend)
}

func TestZoneAndAreaTypeTrends(t *testing.T) {
	records := []Record{
		rec(2023, "A", "CHENNAI", "CS", 100),
		rec(2024, "A", "VELLORE", "CS", 110),
		rec(2025, "A", "THIRUVALLUR", "CS", 120),
		rec(2023, "A", "OOTY", "CS", 90),
		rec(2024, "A", "", "CS", 80),
		rec(2025, "A", "SALEM", "CS", 70),
	}

	zones := ZoneTrends(records)
	require.Len(t, zones, 3)
	assert.Equal(t, ZoneEast, zones[0].Zone)
	assert.Equal(t, ZoneNorth, zones[1].Zone)
	assert.Equal(t, domain.TrendIncreasing, zones[1].Trend)
	assert.InDelta(t, 20, zones[1].Change2325.Value, 1e-9)
	assert.Equal(t, domain.ZoneUnknown, zones[2].Zone, "unmapped and empty districts are kept")
	assert.Equal(t, domain.Float(90), zones[2].Avg2023)
	assert.Equal(t, domain.Float(80), zones[2].Avg2024)
	assert.Equal(t, domain.TrendStable, zones[2].Trend)

	areas := AreaTypeTrends(records)
	require.Len(t, areas, 2)
	assert.Equal(t, domain.AreaRural, areas[0].AreaType)
	assert.Equal(t, domain.AreaUrban, areas[1].AreaType)
	assert.Equal(t, domain.TrendStable, areas[0].Trend)
	assert.Equal(t, domain.Float(95), areas[1].Avg2025)
	assert.Equal(t, domain.TrendStable, areas[1].Trend)
}

func TestTopDistrictsByVolume(t *testing.T) {
	var records []Record
	add := func(district string, n int) {
		for i := 0; i < n; i++ {
			records = append(records, rec(2024, "A", district, "CS", 100))
		}
	}
	for i := 0; i < 12; i++ {
		add(fmt.Sprintf("D%02d", i), i+1)
	}
	add("ALPHA", 12)
	add("", 50)

	got := TopDistrictsByVolume(records, DefaultTopDistricts)
	require.Len(t, got, 10)
	assert.Equal(t, Count[string]{Key: "ALPHA", N: 12}, got[0])
	assert.Equal(t, Count[string]{Key: "D11", N: 12}, got[1])
	assert.Equal(t, Count[string]{Key: "D10", N: 11}, got[2])
}

func TestLookups(t *testing.T) {
	assert.Equal(t, "Artificial Intelligence & Data Science", BranchName("AD"))
	assert.Equal(t, "QQ", BranchName("QQ"))
	assert.Equal(t, ZoneWest, ZoneOf("THE NILGIRIS"))
	assert.Equal(t, domain.ZoneUnknown, ZoneOf("NOWHERE"))
	assert.Equal(t, domain.AreaUrban, AreaTypeOf("KARUR"))
	assert.Equal(t, domain.AreaRural, AreaTypeOf("NOWHERE"))
}
