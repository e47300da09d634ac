// Package params holds the seven tunable physical parameters of the bar
// pendulum together with their bounds and edit steps. Every mutation clamps.
package params

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// ID indexes a parameter. The order is fixed and shared with every
// configuration surface.
type ID int

const (
	Gravity ID = iota
	Drag
	Mass
	Length
	Width
	PivotRatio
	Amplitude

	Count = 7
)

// Spec describes one parameter.
type Spec struct {
	Name    string
	Label   string
	Unit    string
	Min     float64
	Max     float64
	Step    float64
	Default float64
}

const radian2degrees = 180.0 / math.Pi

var specs = [Count]Spec{
	Gravity:    {Name: "gravity", Label: "Gravity Acceleration", Unit: "m/s^2", Min: 0, Max: 15, Step: 0.05, Default: 9.7838163},
	Drag:       {Name: "drag", Label: "Drag Factor", Unit: "N m s^2", Min: 0, Max: 0.001, Step: 0.000001, Default: 0.000153},
	Mass:       {Name: "mass", Label: "Bar Mass", Unit: "kg", Min: 0.001, Max: 0.100, Step: 0.0005, Default: 0.024},
	Length:     {Name: "length", Label: "Bar Length", Unit: "m", Min: 0.01, Max: 0.50, Step: 0.005, Default: 0.31},
	Width:      {Name: "width", Label: "Bar Width", Unit: "m", Min: 0.001, Max: 0.50, Step: 0.0005, Default: 0.03},
	PivotRatio: {Name: "pivot_ratio", Label: "Distance to Pivot", Unit: "", Min: 0, Max: 0.5, Step: 0.005, Default: 3.5 / 31.0},
	Amplitude:  {Name: "amplitude", Label: "Initial Amplitude", Unit: "rad", Min: -math.Pi, Max: math.Pi, Step: 1.0 / radian2degrees, Default: 0.3526803798},
}

func (id ID) Valid() bool { return id >= 0 && id < Count }

func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("param(%d)", int(id))
	}
	return specs[id].Name
}

// Next returns the following id, wrapping after Amplitude.
func (id ID) Next() ID { return (id + 1) % Count }

// Prev returns the preceding id, wrapping before Gravity.
func (id ID) Prev() ID { return (id + Count - 1) % Count }

// SpecOf returns the bounds and step of id.
func SpecOf(id ID) Spec {
	if !id.Valid() {
		return Spec{}
	}
	return specs[id]
}

// IDs lists every parameter in index order.
func IDs() []ID {
	ids := make([]ID, Count)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// ParseID resolves a parameter by name. Dashes and underscores are
// interchangeable.
func ParseID(name string) (ID, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, s := range specs {
		if s.Name == key {
			return ID(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", dynamo.ErrUnknownParameter, name)
}

// Values is a plain copy of every parameter value, indexed by ID.
type Values [Count]float64

func (v Values) Get(id ID) float64 {
	if !id.Valid() {
		return 0
	}
	return v[id]
}

// Defaults returns the reference parameter set.
func Defaults() Values {
	var v Values
	for i, s := range specs {
		v[i] = s.Default
	}
	return v
}

// Clamp bounds x into [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}
