package dataprocessing

import (
	"cmp"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

// Payload names
const (
	PayloadDashboard  = "dashboard"
	PayloadInsights   = "cutoff_insights"
	PayloadRegional   = "regional"
	PayloadPopularity = "branch_popularity"
)

var requiredColumns = map[string][]string{
	PayloadDashboard:  {ColRound, ColYear, ColCollegeCode, ColCollegeName, ColCommunity, ColCollegeType, ColAggrMark},
	PayloadInsights:   {ColYear, ColAggrMark, ColCollegeName, ColBranchCode, ColCommunity},
	PayloadRegional:   {ColDistrict, ColYear, ColAggrMark},
	PayloadPopularity: {ColBranchCode, ColYear, ColStudentID},
}

// RequiredColumns lists the source columns a payload depends on.
func RequiredColumns(payload string) []string {
	return requiredColumns[payload]
}

// Stage is one independent step of a payload. The stages of a payload
// write disjoint fields of the output and may run concurrently.
type Stage struct {
	Name string
	Run  func()
}

// RunStages runs stages one after another.
func RunStages(stages []Stage) {
	for _, s := range stages {
		s.Run()
	}
}

// DashboardStages fills the main dashboard charts.
func DashboardStages(records []Record, out *domain.DashboardData) []Stage {
	return []Stage{
		{Name: "rounds", Run: func() { out.Rounds = countChart(CountByRound(records)) }},
		{Name: "years", Run: func() { out.Years = countChart(CountByYear(records)) }},
		{Name: "top_colleges", Run: func() {
			top := TopCollegesByMean(records, DefaultTopColleges)
			chart := newChart(len(top))
			for _, c := range top {
				chart.Labels = append(chart.Labels, c.Name)
				chart.Data = append(chart.Data, c.Mean)
			}
			out.Top10Colleges = chart
		}},
		{Name: "community", Run: func() { out.Community = countChart(CountByCommunity(records)) }},
		{Name: "college_type", Run: func() { out.CollegeType = countChart(CountByCollegeType(records)) }},
	}
}

// InsightsStages fills the cutoff insights tables.
func InsightsStages(records []Record, out *domain.CutoffInsights) []Stage {
	return []Stage{
		{Name: "yearly_average", Run: func() { out.YearlyAverageTrend = YearlyAverages(records) }},
		{Name: "college_trends", Run: func() { out.TopColleges = CollegeTrends(records, DefaultTopColleges) }},
		{Name: "branch_trends", Run: func() {
			out.IncreasingBranches, out.DecreasingBranches = BranchTrends(records)
		}},
		{Name: "community_trends", Run: func() { out.CommunityAvgTrends = CommunityTrends(records) }},
	}
}

// RegionalStages fills the district, zone and area type tables.
func RegionalStages(records []Record, out *domain.RegionalReport) []Stage {
	return []Stage{
		{Name: "district_trends", Run: func() { out.Districts = DistrictTrends(records) }},
		{Name: "zone_trends", Run: func() { out.Zones = ZoneTrends(records) }},
		{Name: "area_type_trends", Run: func() { out.AreaTypes = AreaTypeTrends(records) }},
		{Name: "district_volume", Run: func() {
			top := TopDistrictsByVolume(records, DefaultTopDistricts)
			counts := make([]domain.DistrictCount, 0, len(top))
			for _, c := range top {
				counts = append(counts, domain.DistrictCount{District: c.Key, Count: c.N})
			}
			out.TopDistrictCounts = counts
		}},
	}
}

// PopularityStages fills the branch popularity payload.
func PopularityStages(records []Record, opts PopularityOptions, out *domain.BranchPopularity) []Stage {
	return []Stage{
		{Name: "branch_popularity", Run: func() { *out = AnalyzeBranchPopularity(records, opts) }},
	}
}

// BuildDashboard computes the main dashboard payload sequentially.
func BuildDashboard(ds *Dataset) (*domain.DashboardData, error) {
	if err := ds.Require(RequiredColumns(PayloadDashboard)...); err != nil {
		return nil, err
	}
	out := &domain.DashboardData{}
	RunStages(DashboardStages(ds.Records, out))
	return out, nil
}

// BuildInsights computes the cutoff insights payload.
func BuildInsights(ds *Dataset) (*domain.CutoffInsights, error) {
	if err := ds.Require(RequiredColumns(PayloadInsights)...); err != nil {
		return nil, err
	}
	out := &domain.CutoffInsights{}
	RunStages(InsightsStages(ds.Records, out))
	return out, nil
}

// BuildRegional computes the regional payload.
func BuildRegional(ds *Dataset) (*domain.RegionalReport, error) {
	if err := ds.Require(RequiredColumns(PayloadRegional)...); err != nil {
		return nil, err
	}
	out := &domain.RegionalReport{}
	RunStages(RegionalStages(ds.Records, out))
	return out, nil
}

// BuildBranchPopularity computes the branch popularity payload.
func BuildBranchPopularity(ds *Dataset, opts PopularityOptions) (*domain.BranchPopularity, error) {
	if err := ds.Require(RequiredColumns(PayloadPopularity)...); err != nil {
		return nil, err
	}
	out := &domain.BranchPopularity{}
	RunStages(PopularityStages(ds.Records, opts, out))
	return out, nil
}

func newChart(n int) domain.Chart {
	return domain.Chart{Labels: make([]interface{}, 0, n), Data: make([]float64, 0, n)}
}

func countChart[K cmp.Ordered](counts []Count[K]) domain.Chart {
	chart := newChart(len(counts))
	for _, c := range counts {
		chart.Labels = append(chart.Labels, c.Key)
		chart.Data = append(chart.Data, float64(c.N))
	}
	return chart
}
