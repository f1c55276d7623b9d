package render

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// dayBars draws one vertical bar per calendar day on the shared time
// x-axis. go-chart's own BarChart is a standalone categorical chart
// and cannot sit on the same axes as the line series, so daily rain
// totals get a purpose-built series.
type dayBars struct {
	name    string
	style   chart.Style
	yaxis   chart.YAxisType
	xvalues []float64 // chart-space x, see chart.TimeToFloat64
	yvalues []float64
	width   float64 // bar width in chart-space x units
}

func (b dayBars) GetName() string           { return b.name }
func (b dayBars) GetStyle() chart.Style     { return b.style }
func (b dayBars) GetYAxis() chart.YAxisType { return b.yaxis }

// Len implements chart.ValuesProvider so the axis ranges cover the bars.
func (b dayBars) Len() int { return len(b.xvalues) }

// GetValues implements chart.ValuesProvider.
func (b dayBars) GetValues(index int) (float64, float64) {
	return b.xvalues[index], b.yvalues[index]
}

func (b dayBars) Validate() error {
	if len(b.xvalues) != len(b.yvalues) {
		return fmt.Errorf("day bars %s: %d x values against %d y values", b.name, len(b.xvalues), len(b.yvalues))
	}
	if len(b.xvalues) == 0 {
		return fmt.Errorf("day bars %s: no values", b.name)
	}
	return nil
}

// Render draws each bar from the zero line (clamped to the canvas) up
// to the day's value.
func (b dayBars) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := b.style.InheritFrom(defaults)

	zero := canvasBox.Bottom - yrange.Translate(0)
	zero = clamp(zero, canvasBox.Top, canvasBox.Bottom)

	half := 1
	if delta := xrange.GetDelta(); delta > 0 {
		half = int(math.Round(float64(canvasBox.Width()) * b.width / delta / 2))
		if half < 1 {
			half = 1
		}
	}

	r.SetFillColor(style.GetFillColor())
	r.SetStrokeColor(style.GetStrokeColor())
	r.SetStrokeWidth(style.GetStrokeWidth())
	for i := range b.xvalues {
		x := canvasBox.Left + xrange.Translate(b.xvalues[i])
		y := canvasBox.Bottom - yrange.Translate(b.yvalues[i])
		y = clamp(y, canvasBox.Top, canvasBox.Bottom)
		left := clamp(x-half, canvasBox.Left, canvasBox.Right)
		right := clamp(x+half, canvasBox.Left, canvasBox.Right)
		if left >= right {
			continue
		}
		r.MoveTo(left, y)
		r.LineTo(right, y)
		r.LineTo(right, zero)
		r.LineTo(left, zero)
		r.Close()
		r.FillStroke()
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
