// Package derive computes the full-frequency and once-daily series the
// plotter layers on top of the raw archive rows.
package derive

import (
	"math"
	"time"

	"github.com/askow/weewxplot/internal/models"
)

const secondsPerDay = 86400

// Full holds the per-row derived series, aligned index-for-index with
// the observations they were computed from.
type Full struct {
	// ADDays is fractional days elapsed since the first row in the window.
	ADDays []float64
	// CumulativeRain is the running total of Rainfall. NULL rainfall
	// contributes zero; negative values pass through arithmetically.
	CumulativeRain []float64
}

// FullSeries computes the full-frequency derived series.
func FullSeries(obs []models.Observation) Full {
	f := Full{
		ADDays:         make([]float64, len(obs)),
		CumulativeRain: make([]float64, len(obs)),
	}
	if len(obs) == 0 {
		return f
	}
	start := obs[0].Epoch
	var total float64
	for i, o := range obs {
		f.ADDays[i] = float64(o.Epoch-start) / secondsPerDay
		if r := o.Values[models.FieldRainfall]; !math.IsNaN(r) {
			total += r
		}
		f.CumulativeRain[i] = total
	}
	return f
}

// Day aggregates every observation falling in one offset-adjusted
// calendar day. Never mutated after DailyAggregates returns.
type Day struct {
	// Number is whole days since the epoch after the gmt offset shift.
	Number float64
	// Start is the offset-adjusted midnight opening the day.
	Start time.Time
	// Min and Max hold per-field extremes aligned with models.Fields.
	// A field whose samples were all NULL that day reports NaN.
	Min []float64
	Max []float64
	// RainTotal is the day's total Rainfall depth (Rain4Day).
	RainTotal float64
	// Count is the number of observations in the day.
	Count int
}

// DailyAggregates groups observations into calendar days using
// day = floor(epoch/86400 - gmtOffset), where gmtOffset is a
// fractional-day shift. A sample landing exactly on the
// offset-adjusted midnight opens the later day. Days with no
// observations do not appear; output order follows input order, so
// time-ordered input yields days ascending.
func DailyAggregates(obs []models.Observation, gmtOffset float64) []Day {
	var days []Day
	for _, o := range obs {
		n := math.Floor(float64(o.Epoch)/secondsPerDay - gmtOffset)
		if len(days) == 0 || days[len(days)-1].Number != n {
			days = append(days, newDay(n, gmtOffset))
		}
		d := &days[len(days)-1]
		d.Count++
		for i, v := range o.Values {
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(d.Min[i]) || v < d.Min[i] {
				d.Min[i] = v
			}
			if math.IsNaN(d.Max[i]) || v > d.Max[i] {
				d.Max[i] = v
			}
		}
		if r := o.Values[models.FieldRainfall]; !math.IsNaN(r) {
			d.RainTotal += r
		}
	}
	return days
}

func newDay(number, gmtOffset float64) Day {
	d := Day{
		Number: number,
		Start:  time.Unix(int64((number+gmtOffset)*secondsPerDay), 0),
		Min:    make([]float64, len(models.Fields)),
		Max:    make([]float64, len(models.Fields)),
	}
	for i := range d.Min {
		d.Min[i] = math.NaN()
		d.Max[i] = math.NaN()
	}
	return d
}
