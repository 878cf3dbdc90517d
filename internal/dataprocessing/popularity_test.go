package dataprocessing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

func volumes(branch string, c2023, c2024, c2025 int) []Record {
	var out []Record
	out = append(out, allotments(branch, 2023, c2023)...)
	out = append(out, allotments(branch, 2024, c2024)...)
	out = append(out, allotments(branch, 2025, c2025)...)
	return out
}

func TestAnalyzeBranchPopularity(t *testing.T) {
	var records []Record
	records = append(records, volumes("CS", 100, 120, 150)...)
	records = append(records, volumes("ME", 120, 90, 60)...)
	records = append(records, volumes("AD", 0, 100, 200)...)
	records = append(records, volumes("RP", 0, 0, 5)...)
	records = append(records, volumes("CE", 50, 50, 50)...)
	records = append(records, volumes("EC", 90, 60, 90)...)

	got := AnalyzeBranchPopularity(records, DefaultPopularityOptions())

	assert.Equal(t, []string{"AD", "RP"}, got.NewBranches, "new branches are detected before the volume filter")

	codes := make([]string, len(got.Branches))
	for i, b := range got.Branches {
		codes[i] = b.BranchCode
	}
	assert.Equal(t, []string{"AD", "CS", "EC", "ME"}, codes, "CE (150) and RP (5) fall under the threshold")

	cs := got.Branches[1]
	assert.Equal(t, domain.BranchVolume{
		BranchCode: "CS",
		BranchName: "Computer Science and Engineering",
		Count2023:  100,
		Count2024:  120,
		Count2025:  150,
		Growth2324: 20,
		Growth2425: 30,
		Growth2325: 50,
		Pct2324:    domain.Float(20),
		Pct2425:    domain.Float(25),
		Pct2325:    domain.Float(50),
	}, cs)

	ad := got.Branches[0]
	assert.True(t, ad.NewBranch)
	assert.True(t, ad.Pct2324.IsNull(), "zero base has no percentage")
	assert.True(t, ad.Pct2325.IsNull())
	assert.Equal(t, domain.Float(100), ad.Pct2425)

	ec := got.Branches[2]
	assert.Equal(t, domain.Float(-33.3), ec.Pct2324)
	assert.Equal(t, domain.Float(50), ec.Pct2425)

	assert.Equal(t, []string{"AD", "CS"}, got.IncreasingBranches)
	assert.Equal(t, []string{"ME"}, got.DecreasingBranches)
	assert.Equal(t, []string{"CS", "EC", "ME"}, got.TopGrowing, "branches without a 2023 base are not ranked")
	assert.Equal(t, []string{"ME", "EC", "CS"}, got.TopDeclining)
}

func TestAnalyzeBranchPopularityTopN(t *testing.T) {
	var records []Record
	for i := 0; i < 12; i++ {
		records = append(records, volumes(fmt.Sprintf("B%02d", i), 100, 100, 100+i*10)...)
	}

	got := AnalyzeBranchPopularity(records, DefaultPopularityOptions())
	require.Len(t, got.Branches, 12)
	assert.Len(t, got.TopGrowing, DefaultTopBranches)
	assert.Len(t, got.TopDeclining, DefaultTopBranches)
	assert.Equal(t, "B11", got.TopGrowing[0])
	assert.Equal(t, "B00", got.TopDeclining[0])
	assert.NotContains(t, got.IncreasingBranches, "B00", "no change is neither increasing nor decreasing")

	custom := AnalyzeBranchPopularity(records, PopularityOptions{MinTotal: 400, TopN: 3})
	assert.Len(t, custom.Branches, 2, "only B10 (400) and B11 (410) reach 400")
	assert.Len(t, custom.TopGrowing, 2)
}

func TestAnalyzeBranchPopularitySkipsRecordsWithoutStudent(t *testing.T) {
	records := volumes("CS", 70, 70, 70)
	for i := range records[:40] {
		records[i].StudentID = ""
	}

	got := AnalyzeBranchPopularity(records, DefaultPopularityOptions())
	assert.Empty(t, got.Branches, "170 counted allotments are under the threshold")

	all := AnalyzeBranchPopularity(volumes("CS", 70, 70, 70), DefaultPopularityOptions())
	require.Len(t, all.Branches, 1)
	assert.Equal(t, 70, all.Branches[0].Count2023)
}
