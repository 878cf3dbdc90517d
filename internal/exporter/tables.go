package exporter

import (
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

// Report bundles the payloads an export draws on. Nil payloads are skipped.
type Report struct {
	Dashboard  *domain.DashboardData
	Insights   *domain.CutoffInsights
	Regional   *domain.RegionalReport
	Popularity *domain.BranchPopularity
}

// Table is a named, rectangular summary table. Cells hold string, int,
// float64, bool or nil for a missing value.
type Table struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

var (
	collegeHeader  = []string{"COLLENAME", "2023", "2024", "2025", "AVG_OVERALL", "First_Year", "Last_Year", "Start_Cutoff", "End_Cutoff", "Net_Increase_Cutoff", "Pct_Change", "Trend"}
	branchHeader   = []string{"BRANCHCODE", "BRANCHNAME", "2023", "2024", "2025", "Net_Increase", "Pct_Change"}
	groupHeader    = []string{"avg_2023", "avg_2024", "avg_2025", "avg_change_23_25", "volatility", "trend"}
	districtHeader = []string{"DISTRICT", "avg_2023", "avg_2024", "avg_2025", "avg_change_23_24", "avg_change_24_25", "avg_change_23_25", "pct_change_23_24", "pct_change_24_25", "pct_change_23_25", "volatility", "trend", "ZONE", "AREA_TYPE"}
	volumeHeader   = []string{"BRANCHCODE", "BRANCHNAME", "2023", "2024", "2025", "new_branch", "growth_23_24", "growth_24_25", "growth_23_25", "growth_percent_23_24", "growth_percent_24_25", "growth_percent_23_25"}
)

// Tables flattens the report into tables, in payload order.
func (r *Report) Tables() []Table {
	var tables []Table

	if d := r.Dashboard; d != nil {
		tables = append(tables,
			chartTable("Rounds", "ROUND", d.Rounds),
			chartTable("Years", "YEAR", d.Years),
			chartTable("Top Colleges", "COLLENAME", d.Top10Colleges),
			chartTable("Community", "COMMUNITY", d.Community),
			chartTable("College Type", "COLLEGETYPE", d.CollegeType),
		)
	}

	if in := r.Insights; in != nil {
		yearly := Table{Name: "Yearly Average", Header: []string{"YEAR", "AVG", "YoY_Change"}}
		for _, y := range in.YearlyAverageTrend {
			yearly.Rows = append(yearly.Rows, []interface{}{y.Year, y.Average, nullable(y.YoYChange)})
		}

		community := Table{Name: "Community Trends", Header: []string{"YEAR", "COMMUNITY", "CUTOFF"}}
		for _, c := range in.CommunityAvgTrends {
			community.Rows = append(community.Rows, []interface{}{c.Year, c.Community, c.Cutoff})
		}

		tables = append(tables,
			yearly,
			collegeTable("College Trends", in.TopColleges),
			branchTable("Increasing Branches", in.IncreasingBranches),
			branchTable("Decreasing Branches", in.DecreasingBranches),
			community,
		)
	}

	if reg := r.Regional; reg != nil {
		districts := Table{Name: "Districts", Header: districtHeader}
		for _, d := range reg.Districts {
			districts.Rows = append(districts.Rows, []interface{}{
				d.District, nullable(d.Avg2023), nullable(d.Avg2024), nullable(d.Avg2025),
				nullable(d.Change2324), nullable(d.Change2425), nullable(d.Change2325),
				nullable(d.Pct2324), nullable(d.Pct2425), nullable(d.Pct2325),
				nullable(d.Volatility), d.Trend, d.Zone, d.AreaType,
			})
		}

		zones := Table{Name: "Zones", Header: append([]string{"ZONE"}, groupHeader...)}
		for _, z := range reg.Zones {
			zones.Rows = append(zones.Rows, groupRow(z.Zone, z.GroupTrendMetrics))
		}

		areas := Table{Name: "Area Types", Header: append([]string{"AREA_TYPE"}, groupHeader...)}
		for _, a := range reg.AreaTypes {
			areas.Rows = append(areas.Rows, groupRow(a.AreaType, a.GroupTrendMetrics))
		}

		counts := Table{Name: "District Counts", Header: []string{"DISTRICT", "allotment_count"}}
		for _, c := range reg.TopDistrictCounts {
			counts.Rows = append(counts.Rows, []interface{}{c.District, c.Count})
		}

		tables = append(tables, districts, zones, areas, counts)
	}

	if p := r.Popularity; p != nil {
		volumes := Table{Name: "Branch Popularity", Header: volumeHeader}
		for _, b := range p.Branches {
			volumes.Rows = append(volumes.Rows, []interface{}{
				b.BranchCode, b.BranchName, b.Count2023, b.Count2024, b.Count2025, b.NewBranch,
				b.Growth2324, b.Growth2425, b.Growth2325,
				nullable(b.Pct2324), nullable(b.Pct2425), nullable(b.Pct2325),
			})
		}
		tables = append(tables, volumes)
	}

	return tables
}

func chartTable(name, label string, c domain.Chart) Table {
	t := Table{Name: name, Header: []string{label, "VALUE"}}
	for i, l := range c.Labels {
		var v interface{}
		if i < len(c.Data) {
			v = c.Data[i]
		}
		t.Rows = append(t.Rows, []interface{}{l, v})
	}
	return t
}

func collegeTable(name string, colleges []domain.CollegeTrend) Table {
	t := Table{Name: name, Header: collegeHeader}
	for _, c := range colleges {
		t.Rows = append(t.Rows, []interface{}{
			c.CollegeName, nullable(c.Avg2023), nullable(c.Avg2024), nullable(c.Avg2025),
			nullable(c.AvgOverall), c.FirstYear, c.LastYear,
			nullable(c.StartCutoff), nullable(c.EndCutoff),
			nullable(c.NetIncrease), nullable(c.PercentChange), c.Trend,
		})
	}
	return t
}

func branchTable(name string, branches []domain.BranchTrend) Table {
	t := Table{Name: name, Header: branchHeader}
	for _, b := range branches {
		t.Rows = append(t.Rows, []interface{}{
			b.BranchCode, b.BranchName,
			nullable(b.Avg2023), nullable(b.Avg2024), nullable(b.Avg2025),
			nullable(b.NetIncrease), nullable(b.PercentChange),
		})
	}
	return t
}

func groupRow(key string, m domain.GroupTrendMetrics) []interface{} {
	return []interface{}{
		key, nullable(m.Avg2023), nullable(m.Avg2024), nullable(m.Avg2025),
		nullable(m.Change2325), nullable(m.Volatility), m.Trend,
	}
}
