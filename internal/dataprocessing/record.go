package dataprocessing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ValidYears is the fixed year axis of every pivot.
var ValidYears = [3]int{2023, 2024, 2025}

const (
	// FirstYear and LastYear bound the year axis.
	FirstYear = 2023
	LastYear  = 2025

	// DefaultTopColleges limits the top colleges tables.
	DefaultTopColleges = 10
	// DefaultTopDistricts limits the district volume table.
	DefaultTopDistricts = 10
	// DefaultMinBranchTotal is the minimum allotments a branch needs across
	// all years to appear in the popularity table.
	DefaultMinBranchTotal = 180
	// DefaultTopBranches limits the top growing and declining lists.
	DefaultTopBranches = 8
	// InfiniteGrowth marks a percent change from a zero base.
	InfiniteGrowth = 1000.0
)

// Canonical column names after header normalization.
const (
	ColStudentID     = "STUDENTID"
	ColRound         = "ROUND"
	ColYear          = "YEAR"
	ColCommunity     = "COMMUNITY"
	ColCollegeCode   = "COLLEGECODE"
	ColCollegeName   = "COLLENAME"
	ColCollegeType   = "COLLEGETYPE"
	ColDistrict      = "DISTRICT"
	ColBranchCode    = "BRANCHCODE"
	ColAllotCategory = "ALLOTCATEGORY"
	ColAggrMark      = "AGGRMARK"
)

var (
	// ErrEmptySource is returned when the source has no header row.
	ErrEmptySource = errors.New("dataset source is empty")
	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// Record is one admission allotment.
type Record struct {
	StudentID     string
	Round         int // 0 when the source value is not a number
	Year          int
	Community     string
	CollegeCode   string
	CollegeName   string
	CollegeType   string
	District      string
	BranchCode    string
	BranchName    string
	AllotCategory string
	AggrMark      float64
}

// Stats counts what the loader kept and what it filtered out.
type Stats struct {
	RowsRead     int `json:"rows_read"`
	DroppedScore int `json:"dropped_invalid_score"`
	DroppedYear  int `json:"dropped_out_of_range_year"`
	Retained     int `json:"retained"`
}

// Dataset is the cleaned, read-only record set.
type Dataset struct {
	Records  []Record
	Columns  []string
	Stats    Stats
	Source   string
	Checksum string
	LoadedAt time.Time

	columns map[string]struct{}
}

// NewDataset builds a dataset over records loaded from a source with the
// given normalized header.
func NewDataset(records []Record, columns []string, stats Stats) *Dataset {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	sorted := make([]string, 0, len(set))
	for c := range set {
		sorted = append(sorted, c)
	}
	sort.Strings(sorted)

	return &Dataset{
		Records:  records,
		Columns:  sorted,
		Stats:    stats,
		LoadedAt: time.Now().UTC(),
		columns:  set,
	}
}

// HasColumn reports whether the source header carried the column.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.columns[name]
	return ok
}

// Require fails with *MissingColumnsError naming every absent column.
func (d *Dataset) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !d.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// MissingColumnsError reports required columns absent from the source.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("essential columns (%s) missing", strings.Join(e.Columns, ", "))
}

// yearIndex maps a year onto its slot in ValidYears, or -1.
func yearIndex(year int) int {
	if year < FirstYear || year > LastYear {
		return -1
	}
	return year - FirstYear
}
