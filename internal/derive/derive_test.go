package derive

import (
	"math"
	"testing"
	"time"

	"github.com/askow/weewxplot/internal/models"
)

// obs builds an observation with every field NULL except the epoch and
// any (index, value) overrides.
func obs(t *testing.T, epoch int64, overrides map[int]float64) models.Observation {
	t.Helper()
	o := models.Observation{Epoch: epoch, Values: make([]float64, len(models.Fields))}
	for i := range o.Values {
		o.Values[i] = math.NaN()
	}
	o.Values[models.FieldEpochtime] = float64(epoch)
	for i, v := range overrides {
		o.Values[i] = v
	}
	return o
}

func TestFullSeries_ADDays(t *testing.T) {
	base := int64(1499040000)
	rows := []models.Observation{
		obs(t, base, nil),
		obs(t, base+43200, nil),  // half a day
		obs(t, base+172800, nil), // two days
	}
	full := FullSeries(rows)
	want := []float64{0, 0.5, 2}
	for i := range want {
		if full.ADDays[i] != want[i] {
			t.Errorf("ADDays[%d] = %v, want %v", i, full.ADDays[i], want[i])
		}
	}
}

func TestFullSeries_CumulativeRainIsPrefixSum(t *testing.T) {
	base := int64(1499040000)
	rain := []float64{0, 0.1, 0.25, 0, 0.05}
	var rows []models.Observation
	for i, r := range rain {
		rows = append(rows, obs(t, base+int64(i)*300, map[int]float64{models.FieldRainfall: r}))
	}
	full := FullSeries(rows)

	if full.CumulativeRain[0] != rain[0] {
		t.Errorf("CumulativeRain[0] = %v, want %v", full.CumulativeRain[0], rain[0])
	}
	for i := 1; i < len(rain); i++ {
		want := full.CumulativeRain[i-1] + rain[i]
		if math.Abs(full.CumulativeRain[i]-want) > 1e-12 {
			t.Errorf("CumulativeRain[%d] = %v, want %v", i, full.CumulativeRain[i], want)
		}
	}
}

func TestFullSeries_NullRainfallCountsAsZero(t *testing.T) {
	base := int64(1499040000)
	rows := []models.Observation{
		obs(t, base, map[int]float64{models.FieldRainfall: 0.2}),
		obs(t, base+300, nil), // NULL rainfall
		obs(t, base+600, map[int]float64{models.FieldRainfall: 0.3}),
	}
	full := FullSeries(rows)
	if got := full.CumulativeRain[2]; math.Abs(got-0.5) > 1e-12 {
		t.Errorf("CumulativeRain[2] = %v, want 0.5", got)
	}
}

func TestFullSeries_Empty(t *testing.T) {
	full := FullSeries(nil)
	if len(full.ADDays) != 0 || len(full.CumulativeRain) != 0 {
		t.Errorf("FullSeries(nil) = %+v, want empty series", full)
	}
}

func TestDailyAggregates_MinMaxBounds(t *testing.T) {
	day := int64(1499040000 - 1499040000%86400)
	temps := []float64{54.1, 71.3, 63.2, 48.9, 60.0}
	outTemp := models.FieldIndex("OutTemp")
	var rows []models.Observation
	for i, v := range temps {
		rows = append(rows, obs(t, day+int64(i)*300, map[int]float64{outTemp: v}))
	}

	days := DailyAggregates(rows, 0)
	if len(days) != 1 {
		t.Fatalf("len(days) = %d, want 1", len(days))
	}
	d := days[0]
	if d.Min[outTemp] != 48.9 {
		t.Errorf("Min[OutTemp] = %v, want 48.9", d.Min[outTemp])
	}
	if d.Max[outTemp] != 71.3 {
		t.Errorf("Max[OutTemp] = %v, want 71.3", d.Max[outTemp])
	}
	for _, v := range temps {
		if v < d.Min[outTemp] || v > d.Max[outTemp] {
			t.Errorf("value %v outside [%v, %v]", v, d.Min[outTemp], d.Max[outTemp])
		}
	}
	if d.Count != len(temps) {
		t.Errorf("Count = %d, want %d", d.Count, len(temps))
	}
}

func TestDailyAggregates_Rain4DayIsSum(t *testing.T) {
	day := int64(1499040000 - 1499040000%86400)
	var rows []models.Observation
	// Day one: 0.1 + 0.2. Day two: dry. Day three: 2.5.
	rows = append(rows,
		obs(t, day+3600, map[int]float64{models.FieldRainfall: 0.1}),
		obs(t, day+7200, map[int]float64{models.FieldRainfall: 0.2}),
		obs(t, day+86400+3600, map[int]float64{models.FieldRainfall: 0}),
		obs(t, day+2*86400+3600, map[int]float64{models.FieldRainfall: 2.5}),
	)

	days := DailyAggregates(rows, 0)
	if len(days) != 3 {
		t.Fatalf("len(days) = %d, want 3", len(days))
	}
	wantTotals := []float64{0.3, 0, 2.5}
	for i, want := range wantTotals {
		if math.Abs(days[i].RainTotal-want) > 1e-12 {
			t.Errorf("days[%d].RainTotal = %v, want %v", i, days[i].RainTotal, want)
		}
	}
	// Rain4Day is a total, not the daily max of the Rainfall samples.
	if days[0].Max[models.FieldRainfall] != 0.2 {
		t.Errorf("Max[Rainfall] = %v, want 0.2", days[0].Max[models.FieldRainfall])
	}
}

func TestDailyAggregates_OmitsEmptyDays(t *testing.T) {
	day := int64(1499040000 - 1499040000%86400)
	rows := []models.Observation{
		obs(t, day+3600, nil),
		obs(t, day+5*86400+3600, nil), // four-day gap
	}
	days := DailyAggregates(rows, 0)
	if len(days) != 2 {
		t.Fatalf("len(days) = %d, want 2 (no zero-filled days)", len(days))
	}
	if days[1].Number-days[0].Number != 5 {
		t.Errorf("day numbers %v and %v, want a gap of 5", days[0].Number, days[1].Number)
	}
}

func TestDailyAggregates_GMTOffsetShiftsBoundary(t *testing.T) {
	day := int64(1499040000 - 1499040000%86400)
	const offset = 0.25 // day boundary at 06:00 UTC

	rows := []models.Observation{
		obs(t, day+3600, nil),   // 01:00, previous offset day
		obs(t, day+6*3600, nil), // exactly on the boundary
		obs(t, day+7*3600, nil), // 07:00, next offset day
	}

	days := DailyAggregates(rows, offset)
	if len(days) != 2 {
		t.Fatalf("len(days) = %d, want 2", len(days))
	}
	if days[0].Count != 1 {
		t.Errorf("first day Count = %d, want 1", days[0].Count)
	}
	// The 06:00 sample sits exactly on the offset-adjusted midnight and
	// opens the later day.
	if days[1].Count != 2 {
		t.Errorf("second day Count = %d, want 2", days[1].Count)
	}
	if got := days[1].Start.Unix(); got != day+6*3600 {
		t.Errorf("second day Start = %d, want %d", got, day+6*3600)
	}
}

func TestDailyAggregates_AllNullFieldStaysNaN(t *testing.T) {
	day := int64(1499040000 - 1499040000%86400)
	days := DailyAggregates([]models.Observation{obs(t, day+3600, nil)}, 0)
	if len(days) != 1 {
		t.Fatalf("len(days) = %d, want 1", len(days))
	}
	empty := models.FieldIndex("Empty1")
	if !math.IsNaN(days[0].Min[empty]) || !math.IsNaN(days[0].Max[empty]) {
		t.Errorf("Empty1 extremes = %v/%v, want NaN/NaN", days[0].Min[empty], days[0].Max[empty])
	}
}

func TestDailyAggregates_DayStart(t *testing.T) {
	day := int64(1499040000 - 1499040000%86400)
	days := DailyAggregates([]models.Observation{obs(t, day+43200, nil)}, 0)
	if len(days) != 1 {
		t.Fatalf("len(days) = %d, want 1", len(days))
	}
	if got := days[0].Start; !got.Equal(time.Unix(day, 0)) {
		t.Errorf("Start = %v, want %v", got, time.Unix(day, 0))
	}
}
