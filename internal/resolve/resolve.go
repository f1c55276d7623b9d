// Package resolve maps plot variable names onto their backing series.
//
// Resolution is a static table built once from the archive schema, not
// pattern inference: a raw column literally named "MaxSomething" would
// collide with a daily aggregate name and is rejected when the table
// is built rather than silently shadowed.
package resolve

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/askow/weewxplot/internal/derive"
	"github.com/askow/weewxplot/internal/models"
)

// ErrUnknownVariable marks a plot variable that no table resolves.
var ErrUnknownVariable = errors.New("unknown variable")

// Kind tags which backing table a variable binds to.
type Kind int

const (
	KindRaw       Kind = iota // archive column, full frequency
	KindDerived               // per-row derived series (ADdays, CumulativeRain)
	KindDailyMin              // once-daily minimum of a column
	KindDailyMax              // once-daily maximum of a column
	KindDailyRain             // Rain4Day, the once-daily rainfall total
	KindDailyDate             // ADDailyDate, the once-daily day number
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindDerived:
		return "derived"
	case KindDailyMin:
		return "daily-min"
	case KindDailyMax:
		return "daily-max"
	case KindDailyRain:
		return "daily-rain"
	case KindDailyDate:
		return "daily-date"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Selectors for KindDerived bindings.
const (
	DerivedADDays = iota
	DerivedCumulativeRain
)

// Binding ties a plottable name to its backing series and x-axis.
type Binding struct {
	Name  string
	Kind  Kind
	Field int // models.Fields index, or a Derived* selector for KindDerived
	Unit  string
}

// Daily reports whether the binding plots against the once-daily axis
// rather than the full-frequency one.
func (b Binding) Daily() bool {
	switch b.Kind {
	case KindDailyMin, KindDailyMax, KindDailyRain, KindDailyDate:
		return true
	}
	return false
}

var bindings = buildBindings()

func buildBindings() map[string]Binding {
	m := make(map[string]Binding, 3*len(models.Fields)+4)
	add := func(b Binding) {
		if _, dup := m[b.Name]; dup {
			panic("resolve: duplicate variable binding " + b.Name)
		}
		m[b.Name] = b
	}
	for i, f := range models.Fields {
		add(Binding{Name: f.Name, Kind: KindRaw, Field: i, Unit: f.Unit})
	}
	for i, f := range models.Fields {
		add(Binding{Name: "Max" + f.Name, Kind: KindDailyMax, Field: i, Unit: f.Unit})
		add(Binding{Name: "Min" + f.Name, Kind: KindDailyMin, Field: i, Unit: f.Unit})
	}
	add(Binding{Name: "ADdays", Kind: KindDerived, Field: DerivedADDays, Unit: "None"})
	add(Binding{Name: "CumulativeRain", Kind: KindDerived, Field: DerivedCumulativeRain, Unit: "inches"})
	add(Binding{Name: "ADDailyDate", Kind: KindDailyDate, Unit: "None"})
	add(Binding{Name: "Rain4Day", Kind: KindDailyRain, Unit: "inches"})
	return m
}

// Resolve returns the binding for name. keyword names the CLI keyword
// the variable came from (plot_var or plot_var2) so the error points
// the caller at the right list.
func Resolve(name, keyword string) (Binding, error) {
	b, ok := bindings[name]
	if !ok {
		return Binding{}, fmt.Errorf("%w: %q (from %s)", ErrUnknownVariable, name, keyword)
	}
	return b, nil
}

// Names returns every resolvable variable name, sorted.
func Names() []string {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Series extracts the (x, y) pair for a binding. Full-frequency
// bindings plot against observation times, daily bindings against
// offset-adjusted day starts.
func Series(b Binding, obs []models.Observation, full derive.Full, days []derive.Day) ([]time.Time, []float64) {
	if b.Daily() {
		x := make([]time.Time, len(days))
		y := make([]float64, len(days))
		for i, d := range days {
			x[i] = d.Start
			switch b.Kind {
			case KindDailyMin:
				y[i] = d.Min[b.Field]
			case KindDailyMax:
				y[i] = d.Max[b.Field]
			case KindDailyRain:
				y[i] = d.RainTotal
			case KindDailyDate:
				y[i] = d.Number
			}
		}
		return x, y
	}

	x := make([]time.Time, len(obs))
	y := make([]float64, len(obs))
	for i, o := range obs {
		x[i] = time.Unix(o.Epoch, 0)
		switch b.Kind {
		case KindRaw:
			y[i] = o.Values[b.Field]
		case KindDerived:
			if b.Field == DerivedADDays {
				y[i] = full.ADDays[i]
			} else {
				y[i] = full.CumulativeRain[i]
			}
		}
	}
	return x, y
}
