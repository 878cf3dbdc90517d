package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// AllotmentHeader is the header row of the cleaned allotment export, as
// the source spreadsheet spells it.
var AllotmentHeader = []string{
	"APPLN NO", "ROUND", "YEAR", "COMMUNITY", "COLLEGE CODE",
	"2023-2025 CLEANED.NAME OF THE COLLEGES", "2023-2025 CLEANED.DISTRICT",
	"2023-2025 CLEANED.TYPE OF COLLEGE", "BRANCH CODE", "ALLOTTED CATEGORY", "AGGRMARK",
}

// Sample dataset shape produced by SampleAllotmentRows.
const (
	SampleRowsPerYear   = 30
	SampleRowsRead      = 3*SampleRowsPerYear + 2
	SampleDroppedScore  = 1
	SampleDroppedYear   = 1
	SampleRowsRetained  = 3 * SampleRowsPerYear
	SampleCollegeCount  = 3
	SampleDistrictCount = 3
)

var (
	sampleColleges    = [SampleCollegeCount][3]string{{"1", "Anna University", "University"}, {"2", "PSG College", "Private"}, {"3", "Govt College Salem", "Government"}}
	sampleDistricts   = [SampleDistrictCount]string{"Chennai", "Coimbatore", "Salem"}
	sampleBranches    = []string{"CS", "EC", "ME"}
	sampleCommunities = []string{"OC", "BC", "MBC", "SC"}
)

// SampleAllotmentRows returns a deterministic allotment table covering
// every year, plus one row with an unparseable score and one from a year
// outside the analysed range.
func SampleAllotmentRows() [][]string {
	rows := make([][]string, 0, SampleRowsRead)
	id := 0
	for year := 2023; year <= 2025; year++ {
		for i := 0; i < SampleRowsPerYear; i++ {
			id++
			college := sampleColleges[i%SampleCollegeCount]
			mark := 150.0 + float64(i) + float64(year-2023)*2
			rows = append(rows, []string{
				strconv.Itoa(100000 + id),
				strconv.Itoa(1 + i%3),
				strconv.Itoa(year),
				sampleCommunities[i%len(sampleCommunities)],
				college[0],
				college[1],
				sampleDistricts[i%SampleDistrictCount],
				college[2],
				sampleBranches[i%len(sampleBranches)],
				sampleCommunities[i%len(sampleCommunities)],
				strconv.FormatFloat(mark, 'f', 2, 64),
			})
		}
	}
	rows = append(rows,
		[]string{"900001", "1", "2024", "OC", "1", "Anna University", "Chennai", "University", "CS", "OC", "N/A"},
		[]string{"900002", "1", "2022", "OC", "1", "Anna University", "Chennai", "University", "CS", "OC", "180"},
	)
	return rows
}

// WriteCSV writes header and rows to dir/name and returns the path.
func WriteCSV(t testing.TB, dir, name string, header []string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write rows: %v", err)
	}
	return path
}

// WriteSampleDataset writes the sample allotment table as CSV into dir.
func WriteSampleDataset(t testing.TB, dir string) string {
	t.Helper()
	return WriteCSV(t, dir, "allotments.csv", AllotmentHeader, SampleAllotmentRows())
}

// WithoutColumn returns a copy of header and rows with the named column
// removed.
func WithoutColumn(header []string, rows [][]string, column string) ([]string, [][]string) {
	idx := -1
	for i, h := range header {
		if h == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic(fmt.Sprintf("column %q not in header", column))
	}

	drop := func(in []string) []string {
		out := make([]string, 0, len(in)-1)
		out = append(out, in[:idx]...)
		return append(out, in[idx+1:]...)
	}

	outRows := make([][]string, len(rows))
	for i, r := range rows {
		outRows[i] = drop(r)
	}
	return drop(header), outRows
}
