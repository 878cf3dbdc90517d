package exporter

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/dataprocessing"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

// Chart names
const (
	ChartYearlyAverage = "yearly-average"
	ChartTopColleges   = "top-colleges"
	ChartZoneTrend     = "zone-trend"
	ChartBranchGrowth  = "branch-growth"
)

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
	labelLength = 28
)

// ErrUnknownChart is returned for chart names RenderChart cannot draw.
var ErrUnknownChart = errors.New("unknown chart")

// errNoPayload is returned when the report lacks the payload a chart needs.
var errNoPayload = errors.New("report is missing the chart's payload")

var chartPayloads = map[string]string{
	ChartYearlyAverage: dataprocessing.PayloadInsights,
	ChartTopColleges:   dataprocessing.PayloadInsights,
	ChartZoneTrend:     dataprocessing.PayloadRegional,
	ChartBranchGrowth:  dataprocessing.PayloadPopularity,
}

// ChartNames lists the drawable charts.
func ChartNames() []string {
	return []string{ChartYearlyAverage, ChartTopColleges, ChartZoneTrend, ChartBranchGrowth}
}

// ChartPayload names the payload a chart is drawn from.
func ChartPayload(name string) (string, error) {
	p, ok := chartPayloads[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	return p, nil
}

// RenderChart draws the named chart from r as PNG into w.
func RenderChart(w io.Writer, name string, r *Report) (int64, error) {
	var (
		p   *plot.Plot
		err error
	)
	switch name {
	case ChartYearlyAverage:
		p, err = yearlyAverageChart(r.Insights)
	case ChartTopColleges:
		p, err = topCollegesChart(r.Insights)
	case ChartZoneTrend:
		p, err = zoneTrendChart(r.Regional)
	case ChartBranchGrowth:
		p, err = branchGrowthChart(r.Popularity)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	if err != nil {
		return 0, fmt.Errorf("chart %s: %w", name, err)
	}

	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return 0, fmt.Errorf("chart %s: %w", name, err)
	}
	return wt.WriteTo(w)
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

// yearTicks labels the x axis with the analysed years only.
func yearTicks(p *plot.Plot) {
	ticks := make([]plot.Tick, 0, len(dataprocessing.ValidYears))
	for _, y := range dataprocessing.ValidYears {
		ticks = append(ticks, plot.Tick{Value: float64(y), Label: strconv.Itoa(y)})
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = float64(dataprocessing.FirstYear) - 0.25
	p.X.Max = float64(dataprocessing.LastYear) + 0.25
}

// rotateLabels tilts long nominal labels so they don't overlap.
func rotateLabels(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

// emptyRange fixes the axes of a plot with no data.
func emptyRange(p *plot.Plot) {
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
}

func shorten(s string) string {
	r := []rune(s)
	if len(r) <= labelLength {
		return s
	}
	return string(r[:labelLength-1]) + "…"
}

func yearlyAverageChart(in *domain.CutoffInsights) (*plot.Plot, error) {
	if in == nil {
		return nil, errNoPayload
	}
	p := newPlot("Average cutoff by year", "Year", "Average AGGRMARK")
	yearTicks(p)

	if len(in.YearlyAverageTrend) == 0 {
		p.Y.Min, p.Y.Max = 0, 1
		return p, nil
	}

	pts := make(plotter.XYs, len(in.YearlyAverageTrend))
	labels := make([]string, len(in.YearlyAverageTrend))
	for i, y := range in.YearlyAverageTrend {
		pts[i] = plotter.XY{X: float64(y.Year), Y: y.Average}
		labels[i] = formatFloat(y.Average)
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	line.Width = vg.Points(2)
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	points.GlyphStyle.Color = line.Color

	values, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return nil, err
	}
	p.Add(line, points, values)
	return p, nil
}

func topCollegesChart(in *domain.CutoffInsights) (*plot.Plot, error) {
	if in == nil {
		return nil, errNoPayload
	}
	p := newPlot("Top colleges by overall average cutoff", "", "Average AGGRMARK")

	values := make(plotter.Values, 0, len(in.TopColleges))
	names := make([]string, 0, len(in.TopColleges))
	for _, c := range in.TopColleges {
		values = append(values, c.AvgOverall.Value)
		names = append(names, shorten(c.CollegeName))
	}
	if len(values) == 0 {
		emptyRange(p)
		return p, nil
	}

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return nil, err
	}
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(names...)
	rotateLabels(p)
	p.Y.Min = 0
	return p, nil
}

func zoneTrendChart(reg *domain.RegionalReport) (*plot.Plot, error) {
	if reg == nil {
		return nil, errNoPayload
	}
	p := newPlot("Average cutoff by zone", "Year", "Average AGGRMARK")
	p.Legend.Top = true
	yearTicks(p)

	drawn := 0
	for i, z := range reg.Zones {
		var pts plotter.XYs
		for j, avg := range []domain.NullFloat{z.Avg2023, z.Avg2024, z.Avg2025} {
			if avg.Valid {
				pts = append(pts, plotter.XY{X: float64(dataprocessing.ValidYears[j]), Y: avg.Value})
			}
		}
		if len(pts) == 0 {
			continue
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.GlyphStyle.Shape = plotutil.Shape(i)
		points.GlyphStyle.Color = line.Color

		p.Add(line, points)
		p.Legend.Add(z.Zone, line, points)
		drawn++
	}
	if drawn == 0 {
		p.Y.Min, p.Y.Max = 0, 1
	}
	return p, nil
}

func branchGrowthChart(pop *domain.BranchPopularity) (*plot.Plot, error) {
	if pop == nil {
		return nil, errNoPayload
	}
	p := newPlot("Branch allotment growth 2023-2025", "", "Growth (%)")

	pct := make(map[string]domain.NullFloat, len(pop.Branches))
	for _, b := range pop.Branches {
		pct[b.BranchCode] = b.Pct2325
	}

	seen := make(map[string]bool)
	var (
		values plotter.Values
		names  []string
	)
	for _, code := range append(append([]string{}, pop.TopGrowing...), pop.TopDeclining...) {
		if seen[code] {
			continue
		}
		seen[code] = true
		values = append(values, pct[code].Value)
		names = append(names, code)
	}
	if len(values) == 0 {
		emptyRange(p)
		return p, nil
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(names...)
	rotateLabels(p)
	return p, nil
}
