package params

import "fmt"

// Unit conversions for the parameter panel.
const (
	kilo2gram     = 1000.0
	metre2centi   = 100.0
	dragSI2CGS    = 10000000.0
	displayFormat = "%s (%s): %s (%s<%s<%s)"
)

type display struct {
	unit   string
	symbol string
	scale  float64
	prec   int
}

var displays = [Count]display{
	Gravity:    {unit: "m/s^2", symbol: "g", scale: 1, prec: 2},
	Drag:       {unit: "dyn cm s^2", symbol: "b", scale: dragSI2CGS, prec: 0},
	Mass:       {unit: "g", symbol: "m", scale: kilo2gram, prec: 1},
	Length:     {unit: "cm", symbol: "l", scale: metre2centi, prec: 1},
	Width:      {unit: "cm", symbol: "w", scale: metre2centi, prec: 2},
	PivotRatio: {unit: "cm", symbol: "p", scale: metre2centi, prec: 1},
	Amplitude:  {unit: "º", symbol: "A", scale: radian2degrees, prec: 0},
}

// Display converts v to the unit shown on the parameter panel. The pivot ratio
// is shown as the distance from the top end to the pivot, so it depends on
// the bar length.
func Display(id ID, v, length float64) float64 {
	if !id.Valid() {
		return v
	}
	d := displays[id]
	if id == PivotRatio {
		return v * length * d.scale
	}
	return v * d.scale
}

// Format renders one panel line, e.g.
// "Bar Mass (g): 24.0 (1.0<m<100.0)".
func Format(id ID, v Values) string {
	if !id.Valid() {
		return ""
	}
	d := displays[id]
	s := specs[id]
	length := v[Length]
	num := func(x float64) string { return fmt.Sprintf("%.*f", d.prec, x) }
	return fmt.Sprintf(displayFormat, s.Label, d.unit,
		num(Display(id, v[id], length)),
		num(Display(id, s.Min, length)), d.symbol,
		num(Display(id, s.Max, length)))
}
