package surface

import (
	"errors"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Tonypepproni/Tidal-Estuary/internal/timeline"
)

const (
	chartWidth    = 640
	chartHeight   = 260
	maxTickLabels = 10
)

// ErrTooFewPoints is returned when a series has fewer than two values to draw.
var ErrTooFewPoints = errors.New("chart needs at least two values")

// RenderSVG draws a chart series as SVG. Readings without a value are skipped.
func RenderSVG(series timeline.ChartSeries, w io.Writer) error {
	xs := make([]float64, 0, len(series.Values))
	ys := make([]float64, 0, len(series.Values))
	for i, v := range series.Values {
		if v == nil {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, *v)
	}
	if len(xs) < 2 {
		return ErrTooFewPoints
	}

	color := drawing.ColorFromHex(strings.TrimPrefix(series.Color, "#"))
	graph := chart.Chart{
		Title:  series.Title + " (" + series.Unit + ")",
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 30, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{Ticks: ticks(series.Labels, int(xs[0]), int(xs[len(xs)-1]))},
		YAxis: chart.YAxis{Name: series.Unit, Range: yRange(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    series.Title,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: color,
					StrokeWidth: 3,
					FillColor:   color.WithAlpha(25),
					DotColor:    color,
					DotWidth:    2,
				},
			},
		},
	}
	return graph.Render(chart.SVG, w)
}

// ticks picks at most maxTickLabels evenly spaced labels within [first, last].
func ticks(labels []string, first, last int) []chart.Tick {
	if len(labels) == 0 || last < first {
		return nil
	}
	step := (last - first + maxTickLabels) / maxTickLabels
	out := make([]chart.Tick, 0, maxTickLabels+1)
	for i := first; i <= last && i < len(labels); i += step {
		out = append(out, chart.Tick{Value: float64(i), Label: labels[i]})
	}
	return out
}

// yRange pads a flat series so the axis range is never zero.
func yRange(ys []float64) chart.Range {
	lo, hi := ys[0], ys[0]
	for _, y := range ys[1:] {
		lo = min(lo, y)
		hi = max(hi, y)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}
