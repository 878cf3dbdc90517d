package dataprocessing

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

// PopularityOptions tunes the branch popularity analysis.
type PopularityOptions struct {
	// MinTotal drops branches with fewer allotments across all years.
	MinTotal int `json:"min_total" validate:"gte=0"`
	// TopN limits the top growing and declining lists.
	TopN int `json:"top" validate:"gte=1,lte=100"`
}

// DefaultPopularityOptions returns the dashboard defaults.
func DefaultPopularityOptions() PopularityOptions {
	return PopularityOptions{MinTotal: DefaultMinBranchTotal, TopN: DefaultTopBranches}
}

// AnalyzeBranchPopularity counts allotted students per branch and year and
// derives growth figures. New branches are detected before low-volume
// branches are filtered out, so a new branch is reported even when it is
// too small for the table.
func AnalyzeBranchPopularity(records []Record, opts PopularityOptions) domain.BranchPopularity {
	counts := make(map[string]*[len(ValidYears)]int)
	for _, r := range records {
		i := yearIndex(r.Year)
		if r.BranchCode == "" || r.StudentID == "" || i < 0 {
			continue
		}
		row, ok := counts[r.BranchCode]
		if !ok {
			row = &[len(ValidYears)]int{}
			counts[r.BranchCode] = row
		}
		row[i]++
	}

	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	result := domain.BranchPopularity{
		Branches:           make([]domain.BranchVolume, 0),
		NewBranches:        make([]string, 0),
		IncreasingBranches: make([]string, 0),
		DecreasingBranches: make([]string, 0),
		TopGrowing:         make([]string, 0),
		TopDeclining:       make([]string, 0),
	}

	for _, code := range codes {
		c := counts[code]
		isNew := c[0] == 0 && c[2] > 0
		if isNew {
			result.NewBranches = append(result.NewBranches, code)
		}
		if c[0]+c[1]+c[2] < opts.MinTotal {
			continue
		}

		row := domain.BranchVolume{
			BranchCode: code,
			BranchName: BranchName(code),
			Count2023:  c[0],
			Count2024:  c[1],
			Count2025:  c[2],
			NewBranch:  isNew,
			Growth2324: c[1] - c[0],
			Growth2425: c[2] - c[1],
			Growth2325: c[2] - c[0],
			Pct2324:    growthPercent(c[0], c[1]),
			Pct2425:    growthPercent(c[1], c[2]),
			Pct2325:    growthPercent(c[0], c[2]),
		}
		result.Branches = append(result.Branches, row)

		switch {
		case row.Growth2325 > 0:
			result.IncreasingBranches = append(result.IncreasingBranches, code)
		case row.Growth2325 < 0:
			result.DecreasingBranches = append(result.DecreasingBranches, code)
		}
	}

	ranked := make([]domain.BranchVolume, 0, len(result.Branches))
	for _, b := range result.Branches {
		if !b.Pct2325.IsNull() {
			ranked = append(ranked, b)
		}
	}

	byPct := func(a, b domain.BranchVolume) int {
		if c := cmp.Compare(a.Pct2325.Value, b.Pct2325.Value); c != 0 {
			return c
		}
		return strings.Compare(a.BranchCode, b.BranchCode)
	}

	slices.SortFunc(ranked, func(a, b domain.BranchVolume) int {
		if c := cmp.Compare(b.Pct2325.Value, a.Pct2325.Value); c != 0 {
			return c
		}
		return strings.Compare(a.BranchCode, b.BranchCode)
	})
	for _, b := range limit(ranked, opts.TopN) {
		result.TopGrowing = append(result.TopGrowing, b.BranchCode)
	}

	slices.SortFunc(ranked, byPct)
	for _, b := range limit(ranked, opts.TopN) {
		result.TopDeclining = append(result.TopDeclining, b.BranchCode)
	}

	return result
}

// growthPercent is the change from base to next in percent, rounded to one
// decimal. A zero base has no percentage.
func growthPercent(base, next int) domain.NullFloat {
	if base <= 0 {
		return domain.Null()
	}
	return domain.Float(roundTo(float64(next-base)/float64(base)*100, 1))
}
