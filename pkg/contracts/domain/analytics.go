package domain

import (
	"time"
)

// Trend labels shared by every year-pivot table.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
	TrendUp         = "up"
	TrendDown       = "down"
	TrendFlat       = "flat"
)

// Area type labels
const (
	AreaUrban = "URBAN"
	AreaRural = "RURAL"
)

// ZoneUnknown labels districts missing from the zone table
const ZoneUnknown = "UNKNOWN"

// Chart is a label/data pair consumed directly by the dashboard charts.
type Chart struct {
	Labels []interface{} `json:"labels"`
	Data   []float64     `json:"data"`
}

// DashboardData is the main aggregate payload
type DashboardData struct {
	Rounds        Chart `json:"rounds"`
	Years         Chart `json:"years"`
	Top10Colleges Chart `json:"top10_colleges"`
	Community     Chart `json:"community"`
	CollegeType   Chart `json:"college_type"`
}

// YearlyAverage is one row of the yearly average trend.
type YearlyAverage struct {
	Year      int       `json:"YEAR"`
	Average   float64   `json:"AVG"`
	YoYChange NullFloat `json:"YoY_Change"`
}

// CollegeTrend describes a college across the year axis.
type CollegeTrend struct {
	CollegeName   string    `json:"COLLENAME"`
	Avg2023       NullFloat `json:"2023"`
	Avg2024       NullFloat `json:"2024"`
	Avg2025       NullFloat `json:"2025"`
	AvgOverall    NullFloat `json:"AVG_OVERALL"`
	FirstYear     int       `json:"First_Year"`
	LastYear      int       `json:"Last_Year"`
	StartCutoff   NullFloat `json:"Start_Cutoff"`
	EndCutoff     NullFloat `json:"End_Cutoff"`
	NetIncrease   NullFloat `json:"Net_Increase_Cutoff"`
	PercentChange NullFloat `json:"Pct_Change"`
	Trend         string    `json:"Trend"`
}

// BranchTrend is the branch-level cutoff movement.
type BranchTrend struct {
	BranchCode    string    `json:"BRANCHCODE"`
	BranchName    string    `json:"BRANCHNAME"`
	Avg2023       NullFloat `json:"2023"`
	Avg2024       NullFloat `json:"2024"`
	Avg2025       NullFloat `json:"2025"`
	NetIncrease   NullFloat `json:"Net_Increase"`
	PercentChange NullFloat `json:"Pct_Change"`
	Increasing    bool      `json:"Increasing"`
	Decreasing    bool      `json:"Decreasing"`
}

// CommunityTrend is the mean cutoff of a community in a year.
type CommunityTrend struct {
	Year      int     `json:"YEAR"`
	Community string  `json:"COMMUNITY"`
	Cutoff    float64 `json:"CUTOFF"`
}

// CutoffInsights is the cutoff-insights payload
type CutoffInsights struct {
	YearlyAverageTrend []YearlyAverage  `json:"yearly_avg_trend"`
	TopColleges        []CollegeTrend   `json:"top_10_colleges_by_average_overall_cutoff"`
	IncreasingBranches []BranchTrend    `json:"increasing_branches"`
	DecreasingBranches []BranchTrend    `json:"decreasing_branches"`
	CommunityAvgTrends []CommunityTrend `json:"community_avg_mark_trends"`
}

// GroupTrendMetrics holds the year-pivot columns shared by the regional
// tables.
type GroupTrendMetrics struct {
	Avg2023    NullFloat `json:"avg_2023"`
	Avg2024    NullFloat `json:"avg_2024"`
	Avg2025    NullFloat `json:"avg_2025"`
	Change2325 NullFloat `json:"avg_change_23_25"`
	Volatility NullFloat `json:"volatility"`
	Trend      string    `json:"trend"`
}

// DistrictTrend is one row of the district table.
type DistrictTrend struct {
	District   string    `json:"DISTRICT"`
	Avg2023    NullFloat `json:"avg_2023"`
	Avg2024    NullFloat `json:"avg_2024"`
	Avg2025    NullFloat `json:"avg_2025"`
	Change2324 NullFloat `json:"avg_change_23_24"`
	Change2425 NullFloat `json:"avg_change_24_25"`
	Change2325 NullFloat `json:"avg_change_23_25"`
	Pct2324    NullFloat `json:"pct_change_23_24"`
	Pct2425    NullFloat `json:"pct_change_24_25"`
	Pct2325    NullFloat `json:"pct_change_23_25"`
	Volatility NullFloat `json:"volatility"`
	Trend      string    `json:"trend"`
	Zone       string    `json:"ZONE"`
	AreaType   string    `json:"AREA_TYPE"`
}

// ZoneTrend is one row of the zone table.
type ZoneTrend struct {
	Zone string `json:"ZONE"`
	GroupTrendMetrics
}

// AreaTypeTrend is one row of the urban/rural table.
type AreaTypeTrend struct {
	AreaType string `json:"AREA_TYPE"`
	GroupTrendMetrics
}

// DistrictCount is the number of allotments in a district.
type DistrictCount struct {
	District string `json:"DISTRICT"`
	Count    int    `json:"allotment_count"`
}

// RegionalReport is the regional payload
type RegionalReport struct {
	Districts         []DistrictTrend `json:"district_data"`
	Zones             []ZoneTrend     `json:"zone_data"`
	AreaTypes         []AreaTypeTrend `json:"area_type_data"`
	TopDistrictCounts []DistrictCount `json:"top_district_counts"`
}

// BranchVolume is one row of the branch popularity table.
type BranchVolume struct {
	BranchCode string    `json:"BRANCHCODE"`
	BranchName string    `json:"BRANCHNAME"`
	Count2023  int       `json:"2023"`
	Count2024  int       `json:"2024"`
	Count2025  int       `json:"2025"`
	NewBranch  bool      `json:"new_branch"`
	Growth2324 int       `json:"growth_23_24"`
	Growth2425 int       `json:"growth_24_25"`
	Growth2325 int       `json:"growth_23_25"`
	Pct2324    NullFloat `json:"growth_percent_23_24"`
	Pct2425    NullFloat `json:"growth_percent_24_25"`
	Pct2325    NullFloat `json:"growth_percent_23_25"`
}

// BranchPopularity is the branch popularity payload
type BranchPopularity struct {
	Branches           []BranchVolume `json:"branches"`
	NewBranches        []string       `json:"new_branches"`
	IncreasingBranches []string       `json:"increasing_branches"`
	DecreasingBranches []string       `json:"decreasing_branches"`
	TopGrowing         []string       `json:"top_growing"`
	TopDeclining       []string       `json:"top_declining"`
}

// DatasetSummary describes the loaded snapshot and its data-quality filter.
type DatasetSummary struct {
	Version      string    `json:"version"`
	Source       string    `json:"source"`
	LoadedAt     time.Time `json:"loaded_at"`
	RowsRead     int       `json:"rows_read"`
	DroppedScore int       `json:"dropped_invalid_score"`
	DroppedYear  int       `json:"dropped_out_of_range_year"`
	Retained     int       `json:"retained"`
	Columns      []string  `json:"columns"`
}
