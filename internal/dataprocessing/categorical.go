package dataprocessing

import (
	"cmp"
	"slices"
	"strings"
)

// Count is the number of records sharing a key.
type Count[K cmp.Ordered] struct {
	Key K
	N   int
}

// countBy groups records by key and returns the counts in key order.
// Records for which key reports false are skipped.
func countBy[K cmp.Ordered](records []Record, key func(Record) (K, bool)) []Count[K] {
	counts := make(map[K]int)
	for _, r := range records {
		if k, ok := key(r); ok {
			counts[k]++
		}
	}

	out := make([]Count[K], 0, len(counts))
	for k, n := range counts {
		out = append(out, Count[K]{Key: k, N: n})
	}
	slices.SortFunc(out, func(a, b Count[K]) int { return cmp.Compare(a.Key, b.Key) })
	return out
}

func nonEmpty(s string) (string, bool) {
	return s, s != ""
}

// CountByRound counts allotments per round. Rounds that failed to parse
// are skipped.
func CountByRound(records []Record) []Count[int] {
	return countBy(records, func(r Record) (int, bool) { return r.Round, r.Round > 0 })
}

// CountByYear counts allotments per year.
func CountByYear(records []Record) []Count[int] {
	return countBy(records, func(r Record) (int, bool) { return r.Year, true })
}

// CountByCommunity counts allotments per community.
func CountByCommunity(records []Record) []Count[string] {
	return countBy(records, func(r Record) (string, bool) { return nonEmpty(r.Community) })
}

// CountByCollegeType counts allotments per college type.
func CountByCollegeType(records []Record) []Count[string] {
	return countBy(records, func(r Record) (string, bool) { return nonEmpty(r.CollegeType) })
}

// CountByDistrict counts allotments per district.
func CountByDistrict(records []Record) []Count[string] {
	return countBy(records, func(r Record) (string, bool) { return nonEmpty(r.District) })
}

// CollegeMean is the mean score of a college over all its allotments.
type CollegeMean struct {
	Code string
	Name string
	Mean float64
	N    int
}

// TopCollegesByMean returns the n colleges with the highest mean score.
// Equal means are ordered by college code, then name.
func TopCollegesByMean(records []Record, n int) []CollegeMean {
	type collegeKey struct{ code, name string }
	acc := make(map[collegeKey]*meanAcc)
	for _, r := range records {
		if r.CollegeCode == "" || r.CollegeName == "" {
			continue
		}
		k := collegeKey{r.CollegeCode, r.CollegeName}
		a, ok := acc[k]
		if !ok {
			a = &meanAcc{}
			acc[k] = a
		}
		a.add(r.AggrMark)
	}

	out := make([]CollegeMean, 0, len(acc))
	for k, a := range acc {
		out = append(out, CollegeMean{Code: k.code, Name: k.name, Mean: a.mean(), N: a.n})
	}
	slices.SortFunc(out, func(a, b CollegeMean) int {
		if c := cmp.Compare(b.Mean, a.Mean); c != 0 {
			return c
		}
		if c := strings.Compare(a.Code, b.Code); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return limit(out, n)
}

// TopDistrictsByVolume returns the n districts with the most allotments.
// Equal counts are ordered by district name.
func TopDistrictsByVolume(records []Record, n int) []Count[string] {
	counts := CountByDistrict(records)
	slices.SortStableFunc(counts, func(a, b Count[string]) int { return cmp.Compare(b.N, a.N) })
	return limit(counts, n)
}

type meanAcc struct {
	sum float64
	n   int
}

func (a *meanAcc) add(v float64) {
	a.sum += v
	a.n++
}

func (a *meanAcc) mean() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sum / float64(a.n)
}

func limit[T any](s []T, n int) []T {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}
