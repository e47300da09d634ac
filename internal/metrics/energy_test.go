package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/params"
	"github.com/san-kum/pendsim/internal/sim"
)

func undamped() *params.Store {
	v := params.Defaults()
	v[params.Drag] = 0
	return params.New(v)
}

func TestEnergyDriftStaysBoundedWithoutDrag(t *testing.T) {
	c := sim.New(undamped())
	drift := NewEnergyDrift()

	c.Tick(dynamo.ToggleRun)
	for i := 0; i < 60*60; i++ {
		c.Tick()
		drift.Observe(c.Frame())
	}

	if drift.Value() > 0.02 {
		t.Errorf("energy drift %.4f too large", drift.Value())
	}
}

func TestEnergyDecaysWithDrag(t *testing.T) {
	v := params.Defaults()
	v[params.Drag] = 0.0005
	c := sim.New(params.New(v))

	c.Tick(dynamo.ToggleRun)
	c.Tick()
	e0 := c.Frame().Energy
	for i := 0; i < 60*20; i++ {
		c.Tick()
	}
	if e := c.Frame().Energy; e >= e0 {
		t.Errorf("drag should dissipate energy: %v -> %v", e0, e)
	}
}

func TestEnergyDriftResetsOnEmptyHistory(t *testing.T) {
	d := NewEnergyDrift()
	d.Observe(sim.Frame{Mode: dynamo.Running, Samples: 1, Energy: 1})
	d.Observe(sim.Frame{Mode: dynamo.Running, Samples: 2, Energy: 1.5})
	if math.Abs(d.Value()-0.5) > 1e-12 {
		t.Fatalf("expected drift 0.5, got %v", d.Value())
	}

	d.Observe(sim.Frame{Mode: dynamo.Paused})
	if d.Value() != 0 {
		t.Errorf("expected reset drift, got %v", d.Value())
	}
}

func TestPeakAngleAndSet(t *testing.T) {
	peak := NewPeakAngle()
	set := Set{peak, NewEnergyDrift()}

	set.Render(sim.Frame{Samples: 1, Window: dynamo.Window{Cur: -0.4}})
	set.Render(sim.Frame{Samples: 2, Window: dynamo.Window{Cur: 0.2}})

	vals := set.Values()
	if vals["peak_angle"] != 0.4 {
		t.Errorf("expected peak 0.4, got %v", vals["peak_angle"])
	}
	if _, ok := vals["energy_drift"]; !ok {
		t.Error("missing energy_drift")
	}
}
