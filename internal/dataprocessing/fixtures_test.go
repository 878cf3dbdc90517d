package dataprocessing

import (
	"fmt"
	"strconv"
)

var sourceHeader = []string{
	"APPLN NO", "ROUND", "YEAR", "COMMUNITY", "COLLEGE CODE",
	"2023-2025 CLEANED.NAME OF THE COLLEGES", "2023-2025 CLEANED.DISTRICT",
	"2023-2025 CLEANED.TYPE OF COLLEGE", "BRANCH CODE", "ALLOTTED CATEGORY", "AGGRMARK",
}

// canonicalColumns is sourceHeader after normalization.
var canonicalColumns = []string{
	ColStudentID, ColRound, ColYear, ColCommunity, ColCollegeCode, ColCollegeName,
	ColDistrict, ColCollegeType, ColBranchCode, ColAllotCategory, ColAggrMark,
}

var studentSeq int

// rec builds a record with the fields most stages group on.
func rec(year int, college, district, branch string, mark float64) Record {
	studentSeq++
	return Record{
		StudentID:   strconv.Itoa(studentSeq),
		Round:       1,
		Year:        year,
		Community:   "OC",
		CollegeCode: "C-" + college,
		CollegeName: college,
		CollegeType: "Private",
		District:    district,
		BranchCode:  branch,
		BranchName:  BranchName(branch),
		AggrMark:    mark,
	}
}

// series builds one record per present year for an entity keyed by name in
// every grouping column.
func series(name string, marks map[int]float64) []Record {
	var out []Record
	for _, y := range ValidYears {
		if m, ok := marks[y]; ok {
			out = append(out, rec(y, name, name, name, m))
		}
	}
	return out
}

// allotments builds n records of a branch in a year.
func allotments(branch string, year, n int) []Record {
	out := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, rec(year, "College", "CHENNAI", branch, 150))
	}
	return out
}

func fullDataset(records []Record) *Dataset {
	return NewDataset(records, canonicalColumns, Stats{RowsRead: len(records), Retained: len(records)})
}

func sampleRecords() []Record {
	var out []Record
	districts := []string{"CHENNAI", "MADURAI", "SALEM", "OOTY", ""}
	branches := []string{"CS", "EC", "ME", "ZZ"}
	communities := []string{"OC", "BC", "MBC", "SC"}
	for i := 0; i < 240; i++ {
		year := ValidYears[i%3]
		r := rec(year,
			fmt.Sprintf("College %02d", i%13),
			districts[i%len(districts)],
			branches[i%len(branches)],
			float64(120+(i*7)%80)+float64(year-FirstYear)*1.5)
		r.Community = communities[i%len(communities)]
		r.Round = 1 + i%3
		out = append(out, r)
	}
	return out
}
