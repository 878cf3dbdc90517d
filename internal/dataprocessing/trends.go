package dataprocessing

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

// YearlyAverages returns the mean score per year with the change from the
// previous year present in the data.
func YearlyAverages(records []Record) []domain.YearlyAverage {
	var acc [len(ValidYears)]meanAcc
	for _, r := range records {
		if i := yearIndex(r.Year); i >= 0 {
			acc[i].add(r.AggrMark)
		}
	}

	out := make([]domain.YearlyAverage, 0, len(acc))
	prev := domain.Null()
	for i, a := range acc {
		if a.n == 0 {
			continue
		}
		cur := domain.Float(a.mean())
		out = append(out, domain.YearlyAverage{
			Year:      ValidYears[i],
			Average:   cur.Value,
			YoYChange: Delta(prev, cur),
		})
		prev = cur
	}
	return out
}

// CommunityTrends returns the mean score per (year, community), ordered by
// year then community.
func CommunityTrends(records []Record) []domain.CommunityTrend {
	type key struct {
		year      int
		community string
	}
	acc := make(map[key]*meanAcc)
	for _, r := range records {
		if r.Community == "" {
			continue
		}
		k := key{r.Year, r.Community}
		a, ok := acc[k]
		if !ok {
			a = &meanAcc{}
			acc[k] = a
		}
		a.add(r.AggrMark)
	}

	out := make([]domain.CommunityTrend, 0, len(acc))
	for k, a := range acc {
		out = append(out, domain.CommunityTrend{Year: k.year, Community: k.community, Cutoff: a.mean()})
	}
	slices.SortFunc(out, func(a, b domain.CommunityTrend) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return strings.Compare(a.Community, b.Community)
	})
	return out
}

// CollegeTrends pivots colleges by name and returns the n with the highest
// overall average. Equal averages are ordered by name.
func CollegeTrends(records []Record, n int) []domain.CollegeTrend {
	series := PivotMean(records, func(r Record) string { return r.CollegeName })

	type ranked struct {
		series  YearSeries
		overall domain.NullFloat
	}
	rows := make([]ranked, 0, len(series))
	for _, s := range series {
		rows = append(rows, ranked{series: s, overall: Mean(s)})
	}
	// series is already in name order, so a stable sort keeps ties by name
	slices.SortStableFunc(rows, func(a, b ranked) int { return cmp.Compare(b.overall.Value, a.overall.Value) })
	rows = limit(rows, n)

	out := make([]domain.CollegeTrend, 0, len(rows))
	for _, row := range rows {
		s := row.series
		first, last := yearSpan(s)
		start, end := s.At(FirstYear), s.At(LastYear)
		net := Delta(start, end)
		out = append(out, domain.CollegeTrend{
			CollegeName:   s.Key,
			Avg2023:       s.Values[0],
			Avg2024:       s.Values[1],
			Avg2025:       s.Values[2],
			AvgOverall:    row.overall,
			FirstYear:     first,
			LastYear:      last,
			StartCutoff:   start,
			EndCutoff:     end,
			NetIncrease:   net,
			PercentChange: PercentChange(start, end, ZeroBaseNull),
			Trend:         collegeLabel(s, net),
		})
	}
	return out
}

// collegeLabel refines a non-monotonic complete series by the sign of its
// net change. A series with a missing year is flat.
func collegeLabel(s YearSeries, net domain.NullFloat) string {
	if !s.Complete() {
		return domain.TrendFlat
	}
	switch Classify(s) {
	case Increasing:
		return domain.TrendIncreasing
	case Decreasing:
		return domain.TrendDecreasing
	}
	switch {
	case net.Value > 0:
		return domain.TrendUp
	case net.Value < 0:
		return domain.TrendDown
	default:
		return domain.TrendFlat
	}
}

func yearSpan(s YearSeries) (first, last int) {
	for i, v := range s.Values {
		if v.IsNull() {
			continue
		}
		if first == 0 {
			first = ValidYears[i]
		}
		last = ValidYears[i]
	}
	return first, last
}

// BranchTrends pivots branches by code and returns the strictly increasing
// branches ordered by net increase descending and the strictly decreasing
// branches ordered by net increase ascending. Ties keep branch code order.
func BranchTrends(records []Record) (increasing, decreasing []domain.BranchTrend) {
	increasing = make([]domain.BranchTrend, 0)
	decreasing = make([]domain.BranchTrend, 0)

	for _, s := range PivotMean(records, func(r Record) string { return r.BranchCode }) {
		start, end := s.At(FirstYear), s.At(LastYear)
		dir := Classify(s)
		row := domain.BranchTrend{
			BranchCode:    s.Key,
			BranchName:    BranchName(s.Key),
			Avg2023:       s.Values[0],
			Avg2024:       s.Values[1],
			Avg2025:       s.Values[2],
			NetIncrease:   Delta(start, end),
			PercentChange: PercentChange(start, end, ZeroBaseNull),
			Increasing:    dir == Increasing,
			Decreasing:    dir == Decreasing,
		}
		switch dir {
		case Increasing:
			increasing = append(increasing, row)
		case Decreasing:
			decreasing = append(decreasing, row)
		}
	}

	slices.SortStableFunc(increasing, func(a, b domain.BranchTrend) int {
		return cmp.Compare(b.NetIncrease.Value, a.NetIncrease.Value)
	})
	slices.SortStableFunc(decreasing, func(a, b domain.BranchTrend) int {
		return cmp.Compare(a.NetIncrease.Value, b.NetIncrease.Value)
	})
	return increasing, decreasing
}

// DistrictTrends pivots districts and tags each with its zone and area
// type. Percent changes use the InfiniteGrowth sentinel for a zero base.
func DistrictTrends(records []Record) []domain.DistrictTrend {
	series := PivotMean(records, func(r Record) string { return r.District })
	out := make([]domain.DistrictTrend, 0, len(series))
	for _, s := range series {
		y23, y24, y25 := s.Values[0], s.Values[1], s.Values[2]
		out = append(out, domain.DistrictTrend{
			District:   s.Key,
			Avg2023:    y23,
			Avg2024:    y24,
			Avg2025:    y25,
			Change2324: Delta(y23, y24),
			Change2425: Delta(y24, y25),
			Change2325: Delta(y23, y25),
			Pct2324:    PercentChange(y23, y24, ZeroBaseSentinel),
			Pct2425:    PercentChange(y24, y25, ZeroBaseSentinel),
			Pct2325:    PercentChange(y23, y25, ZeroBaseSentinel),
			Volatility: Volatility(s),
			Trend:      regionalLabel(Classify(s)),
			Zone:       ZoneOf(s.Key),
			AreaType:   AreaTypeOf(s.Key),
		})
	}
	return out
}

// ZoneTrends folds records into their district's zone before pivoting.
// Records without a district fall into the UNKNOWN zone.
func ZoneTrends(records []Record) []domain.ZoneTrend {
	series := PivotMean(records, func(r Record) string { return ZoneOf(r.District) })
	out := make([]domain.ZoneTrend, 0, len(series))
	for _, s := range series {
		out = append(out, domain.ZoneTrend{Zone: s.Key, GroupTrendMetrics: groupMetrics(s)})
	}
	return out
}

// AreaTypeTrends folds records into URBAN and RURAL before pivoting.
func AreaTypeTrends(records []Record) []domain.AreaTypeTrend {
	series := PivotMean(records, func(r Record) string { return AreaTypeOf(r.District) })
	out := make([]domain.AreaTypeTrend, 0, len(series))
	for _, s := range series {
		out = append(out, domain.AreaTypeTrend{AreaType: s.Key, GroupTrendMetrics: groupMetrics(s)})
	}
	return out
}

func groupMetrics(s YearSeries) domain.GroupTrendMetrics {
	return domain.GroupTrendMetrics{
		Avg2023:    s.Values[0],
		Avg2024:    s.Values[1],
		Avg2025:    s.Values[2],
		Change2325: Delta(s.At(FirstYear), s.At(LastYear)),
		Volatility: Volatility(s),
		Trend:      regionalLabel(Classify(s)),
	}
}
