// Package render composes the time-series chart and rasterizes it to
// PNG. All styling is carried by an explicit Config; there is no
// process-wide chart state.
package render

import (
	"fmt"
	"io"
	"log"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Series is one resolved variable ready to plot.
type Series struct {
	Name string
	Unit string
	X    []time.Time
	Y    []float64
	// Bars renders the series as one bar per day instead of a line.
	Bars bool
}

// Config carries chart geometry and the per-axis color cycles.
type Config struct {
	Width      int
	Height     int
	DateFormat string
	// Palette colors first-axis series, Palette2 second-axis series.
	// Each axis cycles through its palette independently.
	Palette  []drawing.Color
	Palette2 []drawing.Color
	// BarWidth is the Rain4Day bar width as a fraction of a day.
	BarWidth float64
}

// DefaultConfig returns the standard chart styling.
func DefaultConfig() Config {
	return Config{
		Width:      1280,
		Height:     720,
		DateFormat: "01/02",
		Palette: []drawing.Color{
			{R: 0x1f, G: 0x77, B: 0xb4, A: 255},
			{R: 0xff, G: 0x7f, B: 0x0e, A: 255},
			{R: 0x2c, G: 0xa0, B: 0x2c, A: 255},
			{R: 0xd6, G: 0x27, B: 0x28, A: 255},
			{R: 0x94, G: 0x67, B: 0xbd, A: 255},
			{R: 0x8c, G: 0x56, B: 0x4b, A: 255},
		},
		Palette2: []drawing.Color{
			{R: 0x17, G: 0xbe, B: 0xcf, A: 255},
			{R: 0xbc, G: 0xbd, B: 0x22, A: 255},
			{R: 0xe3, G: 0x77, B: 0xc2, A: 255},
			{R: 0x7f, G: 0x7f, B: 0x7f, A: 255},
		},
		BarWidth: 0.8,
	}
}

// Bounds is the requested time window.
type Bounds struct {
	Start time.Time
	End   time.Time
}

// Render draws the primary-axis series against the left y-axis and the
// secondary ones against the right, writing the chart as PNG to w.
// When force is set the x-range is pinned to the window regardless of
// data extent; otherwise it follows the data. Series with no plottable
// points are skipped with a warning. With nothing plottable at all the
// chart still renders empty axes spanning the window.
func Render(cfg Config, primary, secondary []Series, window Bounds, force bool, w io.Writer) error {
	var out []chart.Series
	plotted, primaryCount := 0, 0
	for i, s := range primary {
		cs := buildSeries(cfg, s, chart.YAxisPrimary, cfg.Palette[i%len(cfg.Palette)])
		if cs == nil {
			continue
		}
		out = append(out, cs)
		plotted++
		primaryCount++
	}
	var secondaryExtent []time.Time
	for i, s := range secondary {
		cs := buildSeries(cfg, s, chart.YAxisSecondary, cfg.Palette2[i%len(cfg.Palette2)])
		if cs == nil {
			continue
		}
		out = append(out, cs)
		plotted++
		xs, _ := dropNulls(s.X, s.Y)
		secondaryExtent = append(secondaryExtent, xs...)
	}

	if primaryCount == 0 {
		// The primary axis cannot be empty, so anchor it with an
		// invisible span: the secondary data's extent when there is
		// any, otherwise the requested window.
		lo, hi := window.Start, window.End
		if len(secondaryExtent) > 0 {
			lo, hi = timeExtent(secondaryExtent)
		}
		if !hi.After(lo) {
			hi = lo.Add(time.Second)
		}
		out = append(out, chart.TimeSeries{
			XValues: []time.Time{lo, hi},
			YValues: []float64{0, 1},
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
		})
	}

	graph := chart.Chart{
		Width:  cfg.Width,
		Height: cfg.Height,
		XAxis: chart.XAxis{
			Name:           fmt.Sprintf("Time (starting %s)", window.Start.Format("2006-01-02 15:04:05")),
			ValueFormatter: chart.TimeValueFormatterWithFormat(cfg.DateFormat),
		},
		YAxis: chart.YAxis{
			Name: axisLabel(primary),
		},
		YAxisSecondary: chart.YAxis{
			Name: axisLabel(secondary),
		},
		Series: out,
	}
	if force || plotted == 0 {
		end := window.End
		if !end.After(window.Start) {
			end = window.Start.Add(time.Second)
		}
		graph.XAxis.Range = &chart.ContinuousRange{
			Min: timeValue(window.Start),
			Max: timeValue(end),
		}
	}
	if plotted > 0 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	return graph.Render(chart.PNG, w)
}

func buildSeries(cfg Config, s Series, axis chart.YAxisType, color drawing.Color) chart.Series {
	xs, ys := dropNulls(s.X, s.Y)
	if len(xs) == 0 {
		log.Printf("WARNING: variable %q not plotted: no data in the requested window", s.Name)
		return nil
	}
	if s.Bars {
		xf := make([]float64, len(xs))
		for i, t := range xs {
			xf[i] = timeValue(t)
		}
		return dayBars{
			name:    s.Name,
			yaxis:   axis,
			xvalues: xf,
			yvalues: ys,
			width:   cfg.BarWidth * float64(24*time.Hour),
			style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
				StrokeWidth: 1,
			},
		}
	}
	return chart.TimeSeries{
		Name:    s.Name,
		YAxis:   axis,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: color,
			StrokeWidth: 2,
		},
	}
}

// axisLabel names an axis after its first variable, matching the
// original station tooling.
func axisLabel(series []Series) string {
	if len(series) == 0 {
		return ""
	}
	return fmt.Sprintf("%s [%s]", series[0].Name, series[0].Unit)
}

// timeValue converts a time into chart x-space: the same nanosecond
// representation chart.TimeSeries plots its x-values in.
func timeValue(t time.Time) float64 {
	return float64(t.UnixNano())
}

func timeExtent(ts []time.Time) (lo, hi time.Time) {
	lo, hi = ts[0], ts[0]
	for _, t := range ts[1:] {
		if t.Before(lo) {
			lo = t
		}
		if t.After(hi) {
			hi = t
		}
	}
	return lo, hi
}

// dropNulls filters out NULL (NaN) points so they never reach the
// rasterizer.
func dropNulls(x []time.Time, y []float64) ([]time.Time, []float64) {
	xs := make([]time.Time, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range y {
		if math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}
