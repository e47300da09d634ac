package physics

import (
	"math"
	"testing"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/params"
)

func scenarioA() params.Values {
	v := params.Defaults()
	v[params.Gravity] = 9.8
	v[params.Drag] = 0
	v[params.Mass] = 0.024
	v[params.Length] = 0.31
	v[params.Width] = 0.03
	v[params.PivotRatio] = 0.1129
	v[params.Amplitude] = 0.3527
	return v
}

func TestDerivedQuantities(t *testing.T) {
	v := scenarioA()

	d := PivotToCenter(v)
	wantD := 0.31 * (0.5 - 0.1129)
	if math.Abs(d-wantD) > 1e-15 {
		t.Errorf("PivotToCenter = %v, want %v", d, wantD)
	}

	i := MomentOfInertia(v)
	wantI := 0.024*(0.31*0.31+0.03*0.03)/12 + 0.024*wantD*wantD
	if math.Abs(i-wantI)/wantI > 1e-12 {
		t.Errorf("MomentOfInertia = %v, want %v", i, wantI)
	}
}

func TestDerivedQuantitiesFollowEdits(t *testing.T) {
	s := params.Default()
	before := MomentOfInertia(s.Values())
	s.Set(params.Mass, 2*s.Get(params.Mass))
	after := MomentOfInertia(s.Values())
	if math.Abs(after-2*before)/before > 1e-12 {
		t.Errorf("doubling mass should double inertia: %v -> %v", before, after)
	}
}

func TestPivotSymmetry(t *testing.T) {
	v := scenarioA()
	v[params.PivotRatio] = 0.5
	if d := PivotToCenter(v); d != 0 {
		t.Errorf("pivot at centre should give zero distance, got %v", d)
	}
	if p := SmallAnglePeriod(v); !math.IsInf(p, 1) {
		t.Errorf("expected infinite period without restoring torque, got %v", p)
	}
}

func TestAccelerationAtRest(t *testing.T) {
	v := scenarioA()
	dt := 1.0 / 60

	vel, acc := AngularAcceleration(dynamo.NewWindow(0), v, dt)
	if vel != 0 || acc != 0 {
		t.Errorf("expected equilibrium, got v=%v a=%v", vel, acc)
	}

	vel, acc = AngularAcceleration(dynamo.NewWindow(0.3527), v, dt)
	if vel != 0 {
		t.Errorf("expected zero velocity from a resting window, got %v", vel)
	}
	want := -v[params.Mass] * v[params.Gravity] * PivotToCenter(v) * math.Sin(0.3527) / MomentOfInertia(v)
	if math.Abs(acc-want)/math.Abs(want) > 1e-12 {
		t.Errorf("acceleration = %v, want %v", acc, want)
	}
	if acc >= 0 {
		t.Errorf("restoring torque should point toward zero, got %v", acc)
	}
}

func TestQuadraticDragOpposesMotion(t *testing.T) {
	v := scenarioA()
	v[params.Gravity] = 0
	v[params.Drag] = 0.0005
	dt := 0.01

	tests := []struct {
		name string
		w    dynamo.Window
	}{
		{"positive", dynamo.Window{Prev: 0, Cur: 0.01, Next: 0.02}},
		{"negative", dynamo.Window{Prev: 0.02, Cur: 0.01, Next: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vel, acc := AngularAcceleration(tt.w, v, dt)
			want := -v[params.Drag] * vel * math.Abs(vel) / MomentOfInertia(v)
			if math.Abs(acc-want) > 1e-12 {
				t.Errorf("acc = %v, want %v", acc, want)
			}
			if acc*vel >= 0 {
				t.Errorf("drag should oppose velocity %v, got acc %v", vel, acc)
			}
		})
	}
}

func TestEnergy(t *testing.T) {
	v := scenarioA()
	if e := Energy(0, 0, v); e != 0 {
		t.Errorf("expected zero energy at rest, got %v", e)
	}
	k := v[params.Mass] * v[params.Gravity] * PivotToCenter(v)
	if e := Energy(math.Pi/2, 0, v); math.Abs(e-k) > 1e-12 {
		t.Errorf("expected potential %v at horizontal, got %v", k, e)
	}
}

func TestBarGeometry(t *testing.T) {
	v := scenarioA()
	shape := Bar(0, v)

	up := v[params.Length] * v[params.PivotRatio]
	if math.Abs(shape.Top.Y+up) > 1e-12 || math.Abs(shape.Top.X) > 1e-12 {
		t.Errorf("unexpected top at rest: %+v", shape.Top)
	}
	if math.Abs(shape.Bottom.Y-(v[params.Length]-up)) > 1e-12 {
		t.Errorf("unexpected bottom at rest: %+v", shape.Bottom)
	}

	width := shape.Corners[1].X - shape.Corners[0].X
	if math.Abs(width-v[params.Width]) > 1e-12 {
		t.Errorf("expected bar width %v, got %v", v[params.Width], width)
	}

	swung := Bar(math.Pi/2, v)
	if swung.Bottom.X >= 0 {
		t.Errorf("positive angle should swing the bottom left, got %+v", swung.Bottom)
	}
}
