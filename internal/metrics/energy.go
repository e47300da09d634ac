// Package metrics observes controller frames and summarises a run.
package metrics

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/sim"
)

type Metric interface {
	Name() string
	Observe(f sim.Frame)
	Value() float64
	Reset()
}

// Set fans frames out to every metric. It satisfies sim.Renderer so it can
// sit in a render chain.
type Set []Metric

func (s Set) Render(f sim.Frame) {
	for _, m := range s {
		m.Observe(f)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

// EnergyDrift tracks the largest relative departure of the mechanical energy
// from its value at the first running frame. A frame with no samples marks a
// reset and restarts the measurement.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f sim.Frame) {
	if f.Samples == 0 {
		e.Reset()
		return
	}
	if f.Mode != dynamo.Running {
		return
	}

	if e.samples == 0 {
		e.initial = f.Energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(f.Energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// PeakAngle is the largest |theta| seen since the last reset.
type PeakAngle struct {
	name string
	peak float64
}

func NewPeakAngle() *PeakAngle {
	return &PeakAngle{name: "peak_angle"}
}

func (p *PeakAngle) Name() string { return p.name }

func (p *PeakAngle) Observe(f sim.Frame) {
	if f.Samples == 0 {
		p.Reset()
	}
	p.peak = math.Max(p.peak, math.Abs(f.Angle()))
}

func (p *PeakAngle) Value() float64 { return p.peak }

func (p *PeakAngle) Reset() { p.peak = 0 }
