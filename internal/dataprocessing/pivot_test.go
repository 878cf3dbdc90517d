package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

func byCollege(r Record) string { return r.CollegeName }

func TestPivotMean(t *testing.T) {
	records := []Record{
		rec(2023, "B", "", "", 100),
		rec(2023, "B", "", "", 110),
		rec(2025, "B", "", "", 120),
		rec(2024, "A", "", "", 90),
		rec(2024, "", "", "", 500),
	}

	got := PivotMean(records, byCollege)
	require.Len(t, got, 2)

	assert.Equal(t, "A", got[0].Key)
	assert.True(t, got[0].At(2023).IsNull())
	assert.Equal(t, domain.Float(90), got[0].At(2024))

	assert.Equal(t, "B", got[1].Key)
	assert.Equal(t, domain.Float(105), got[1].At(2023))
	assert.True(t, got[1].At(2024).IsNull(), "missing year is null, not zero")
	assert.Equal(t, domain.Float(120), got[1].At(2025))
	assert.True(t, got[1].At(2030).IsNull())
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name   string
		start  domain.NullFloat
		end    domain.NullFloat
		policy ZeroBasePolicy
		want   domain.NullFloat
	}{
		{"regular growth", domain.Float(100), domain.Float(121), ZeroBaseNull, domain.Float(21)},
		{"decline", domain.Float(200), domain.Float(150), ZeroBaseSentinel, domain.Float(-25)},
		{"missing start", domain.Null(), domain.Float(50), ZeroBaseSentinel, domain.Null()},
		{"missing end", domain.Float(50), domain.Null(), ZeroBaseNull, domain.Null()},
		{"zero base null policy", domain.Float(0), domain.Float(50), ZeroBaseNull, domain.Null()},
		{"zero base sentinel policy", domain.Float(0), domain.Float(50), ZeroBaseSentinel, domain.Float(InfiniteGrowth)},
		{"zero to zero", domain.Float(0), domain.Float(0), ZeroBaseSentinel, domain.Float(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentChange(tt.start, tt.end, tt.policy)
			require.Equal(t, tt.want.IsNull(), got.IsNull())
			if !got.IsNull() {
				assert.InDelta(t, tt.want.Value, got.Value, 1e-9)
			}
		})
	}
}

func TestDelta(t *testing.T) {
	assert.Equal(t, domain.Float(21), Delta(domain.Float(100), domain.Float(121)))
	assert.True(t, Delta(domain.Null(), domain.Float(1)).IsNull())
	assert.True(t, Delta(domain.Float(1), domain.Null()).IsNull())
}

func TestVolatility(t *testing.T) {
	full := PivotMean(series("X", map[int]float64{2023: 100, 2024: 110, 2025: 121}), byCollege)[0]
	mean := (100.0 + 110 + 121) / 3
	want := math.Sqrt((math.Pow(100-mean, 2) + math.Pow(110-mean, 2) + math.Pow(121-mean, 2)) / 2)
	assert.InDelta(t, want, Volatility(full).Value, 1e-9)

	partial := PivotMean(series("X", map[int]float64{2023: 100, 2025: 110}), byCollege)[0]
	assert.InDelta(t, math.Sqrt(50), Volatility(partial).Value, 1e-9, "std over present years")

	single := PivotMean(series("X", map[int]float64{2024: 100}), byCollege)[0]
	assert.True(t, Volatility(single).IsNull())
}

func TestMean(t *testing.T) {
	s := PivotMean(series("X", map[int]float64{2023: 100, 2025: 110}), byCollege)[0]
	assert.Equal(t, domain.Float(105), Mean(s))
	assert.True(t, Mean(YearSeries{Key: "empty"}).IsNull())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		marks map[int]float64
		want  Direction
	}{
		{"strictly increasing", map[int]float64{2023: 100, 2024: 110, 2025: 121}, Increasing},
		{"strictly decreasing", map[int]float64{2023: 130, 2024: 120, 2025: 110}, Decreasing},
		{"plateau", map[int]float64{2023: 100, 2024: 100, 2025: 121}, Neither},
		{"zigzag", map[int]float64{2023: 100, 2024: 130, 2025: 121}, Neither},
		{"monotonic but missing middle year", map[int]float64{2023: 100, 2025: 121}, Neither},
		{"monotonic but missing first year", map[int]float64{2024: 150, 2025: 121}, Neither},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := PivotMean(series("X", tt.marks), byCollege)[0]
			assert.Equal(t, tt.want, Classify(s))
		})
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 33.3, roundTo(100.0/3, 1))
	assert.Equal(t, -66.7, roundTo(-200.0/3, 1))
	assert.Equal(t, 20.0, roundTo(20, 1))
}
