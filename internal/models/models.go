// Package models defines the archive table schema shared by the data
// loader, the derivation engine and the variable resolver.
package models

import "math"

// Field describes one column of the weewx archive table.
type Field struct {
	Name string // plot variable name
	Unit string // display unit; "None" when the column carries no unit
}

// Fields lists the archive columns in database order. The "Unknown"
// columns carry data the station firmware does not document; the
// "Empty" columns are NULL in every record seen so far but are kept
// addressable so their daily extremes stay plottable.
var Fields = []Field{
	{Name: "Epochtime", Unit: "seconds"},
	{Name: "USUnits", Unit: "None"},
	{Name: "SampleInterval", Unit: "Minutes"},
	{Name: "Barometer", Unit: "in. Hg."},
	{Name: "Pressure", Unit: "in. Hg."},
	{Name: "Altimeter", Unit: "in. Hg."},
	{Name: "InTemp", Unit: "°F"},
	{Name: "OutTemp", Unit: "°F"},
	{Name: "InHumidity", Unit: "%"},
	{Name: "OutHumidity", Unit: "%"},
	{Name: "WindSpeed", Unit: "mph"},
	{Name: "WindDir", Unit: "degrees"},
	{Name: "WindGust", Unit: "mph"},
	{Name: "WindGustDir", Unit: "degrees"},
	{Name: "RainRate", Unit: "in./hr."},
	{Name: "Rainfall", Unit: "inches"},
	{Name: "Dewpoint", Unit: "°F"},
	{Name: "WindChill", Unit: "°F"},
	{Name: "HeatIndex", Unit: "°F"},
	{Name: "Unknown1", Unit: "Unknown"},
	{Name: "Empty1", Unit: "None"},
	{Name: "Empty2", Unit: "None"},
	{Name: "Empty3", Unit: "None"},
	{Name: "Empty4", Unit: "None"},
	{Name: "Empty5", Unit: "None"},
	{Name: "Empty6", Unit: "None"},
	{Name: "Empty7", Unit: "None"},
	{Name: "Empty8", Unit: "None"},
	{Name: "Empty9", Unit: "None"},
	{Name: "Empty10", Unit: "None"},
	{Name: "Empty11", Unit: "None"},
	{Name: "Empty12", Unit: "None"},
	{Name: "Empty13", Unit: "None"},
	{Name: "Empty14", Unit: "None"},
	{Name: "Empty15", Unit: "None"},
	{Name: "Empty16", Unit: "None"},
	{Name: "Empty17", Unit: "None"},
	{Name: "Empty18", Unit: "None"},
	{Name: "Empty19", Unit: "None"},
	{Name: "SignalQuality", Unit: "%"},
	{Name: "Unknown2", Unit: "Unknown"},
	{Name: "Unknown3", Unit: "Unknown"},
	{Name: "Empty20", Unit: "None"},
	{Name: "Empty21", Unit: "None"},
	{Name: "Empty22", Unit: "None"},
	{Name: "Empty23", Unit: "None"},
	{Name: "Empty24", Unit: "None"},
	{Name: "Empty25", Unit: "None"},
	{Name: "Empty26", Unit: "None"},
	{Name: "Empty27", Unit: "None"},
	{Name: "Empty28", Unit: "None"},
	{Name: "Empty29", Unit: "None"},
}

// Positions of the columns the pipeline addresses directly.
const (
	FieldEpochtime = 0
	FieldRainfall  = 15
)

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(Fields))
	for i, f := range Fields {
		m[f.Name] = i
	}
	return m
}()

// FieldIndex returns the position of the named field in Fields, or -1
// when no such field exists.
func FieldIndex(name string) int {
	if i, ok := fieldIndex[name]; ok {
		return i
	}
	return -1
}

// Observation is one archive row. Values is aligned with Fields; a SQL
// NULL loads as NaN. Observations are immutable once loaded and
// ordered ascending by Epoch; duplicate epochs are possible and kept.
type Observation struct {
	Epoch  int64
	Values []float64
}

// IsNull reports whether a loaded value was NULL in the database.
func IsNull(v float64) bool { return math.IsNaN(v) }
