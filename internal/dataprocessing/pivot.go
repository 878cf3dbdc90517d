package dataprocessing

import (
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

// YearSeries is one pivot row: the mean score of an entity for every year
// in ValidYears. A year without records is null, not zero.
type YearSeries struct {
	Key    string
	Values [len(ValidYears)]domain.NullFloat
}

// At returns the value for a year; years off the axis are null.
func (s YearSeries) At(year int) domain.NullFloat {
	i := yearIndex(year)
	if i < 0 {
		return domain.Null()
	}
	return s.Values[i]
}

// Present returns the non-null values in year order.
func (s YearSeries) Present() []float64 {
	out := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if !v.IsNull() {
			out = append(out, v.Value)
		}
	}
	return out
}

// Complete reports whether every year has a value.
func (s YearSeries) Complete() bool {
	for _, v := range s.Values {
		if v.IsNull() {
			return false
		}
	}
	return true
}

// PivotMean groups records by (key, year), takes the mean score of every
// group and returns one series per key, ordered by key. Records with an
// empty key are skipped.
func PivotMean(records []Record, key func(Record) string) []YearSeries {
	acc := make(map[string]*[len(ValidYears)]meanAcc)
	for _, r := range records {
		k := key(r)
		i := yearIndex(r.Year)
		if k == "" || i < 0 {
			continue
		}
		row, ok := acc[k]
		if !ok {
			row = &[len(ValidYears)]meanAcc{}
			acc[k] = row
		}
		row[i].add(r.AggrMark)
	}

	out := make([]YearSeries, 0, len(acc))
	for k, row := range acc {
		s := YearSeries{Key: k}
		for i := range row {
			if row[i].n > 0 {
				s.Values[i] = domain.Float(row[i].mean())
			}
		}
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b YearSeries) int { return strings.Compare(a.Key, b.Key) })
	return out
}

// ZeroBasePolicy selects how PercentChange treats a zero base value.
type ZeroBasePolicy int

const (
	// ZeroBaseNull yields null for a zero base.
	ZeroBaseNull ZeroBasePolicy = iota
	// ZeroBaseSentinel yields InfiniteGrowth for a zero base with a
	// non-zero end, and 0 when both are zero.
	ZeroBaseSentinel
)

// Delta is end minus start, null unless both are present.
func Delta(start, end domain.NullFloat) domain.NullFloat {
	if start.IsNull() || end.IsNull() {
		return domain.Null()
	}
	return domain.Float(end.Value - start.Value)
}

// PercentChange is (end - start) / start * 100. A missing value on either
// side yields null; a zero base is resolved by policy.
func PercentChange(start, end domain.NullFloat, policy ZeroBasePolicy) domain.NullFloat {
	if start.IsNull() || end.IsNull() {
		return domain.Null()
	}
	if start.Value == 0 {
		if policy == ZeroBaseNull {
			return domain.Null()
		}
		if end.Value == 0 {
			return domain.Float(0)
		}
		return domain.Float(InfiniteGrowth)
	}
	return domain.Float((end.Value - start.Value) / start.Value * 100)
}

// Volatility is the sample standard deviation of the present values, null
// when fewer than two years are present.
func Volatility(s YearSeries) domain.NullFloat {
	values := s.Present()
	if len(values) < 2 {
		return domain.Null()
	}
	return domain.Float(stat.StdDev(values, nil))
}

// Mean is the mean of the present values, null when none are present.
func Mean(s YearSeries) domain.NullFloat {
	values := s.Present()
	if len(values) == 0 {
		return domain.Null()
	}
	return domain.Float(stat.Mean(values, nil))
}

// Direction is the three-way trend of a series.
type Direction int

const (
	// Neither covers non-monotonic series and series with a missing year.
	Neither Direction = iota
	Increasing
	Decreasing
)

// Classify reports Increasing or Decreasing only when every year is present
// and every consecutive pair moves strictly in that direction.
func Classify(s YearSeries) Direction {
	if !s.Complete() {
		return Neither
	}
	up, down := true, true
	for i := 1; i < len(s.Values); i++ {
		prev, cur := s.Values[i-1].Value, s.Values[i].Value
		if !(prev < cur) {
			up = false
		}
		if !(prev > cur) {
			down = false
		}
	}
	switch {
	case up:
		return Increasing
	case down:
		return Decreasing
	default:
		return Neither
	}
}

// regionalLabel is the trend vocabulary of the district, zone and area
// type tables.
func regionalLabel(d Direction) string {
	switch d {
	case Increasing:
		return domain.TrendIncreasing
	case Decreasing:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

// roundTo rounds half to even at the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*p) / p
}
