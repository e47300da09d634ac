package physics

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/params"
)

// PivotToCenter is the distance from the pivot to the bar's centre of mass.
func PivotToCenter(v params.Values) float64 {
	return v[params.Length] * math.Abs(v[params.PivotRatio]-0.5)
}

// MomentOfInertia of the bar about the pivot (Steiner theorem).
func MomentOfInertia(v params.Values) float64 {
	m := v[params.Mass]
	l := v[params.Length]
	w := v[params.Width]
	d := PivotToCenter(v)
	return m*(l*l+w*w)/12 + m*d*d
}

// AngularAcceleration returns the velocity estimate taken from w and the
// resulting angular acceleration under gravity and quadratic drag.
func AngularAcceleration(w dynamo.Window, v params.Values, dt float64) (velocity, acceleration float64) {
	velocity = w.Velocity(dt)
	drag := v[params.Drag] * velocity * math.Abs(velocity)
	gravity := v[params.Mass] * v[params.Gravity] * PivotToCenter(v) * math.Sin(w.Cur)
	acceleration = -(gravity + drag) / MomentOfInertia(v)
	return velocity, acceleration
}

// Energy is the mechanical energy of the bar, zero at rest hanging down.
func Energy(theta, omega float64, v params.Values) float64 {
	ke := 0.5 * MomentOfInertia(v) * omega * omega
	pe := v[params.Mass] * v[params.Gravity] * PivotToCenter(v) * (1 - math.Cos(theta))
	return ke + pe
}

// SmallAnglePeriod is the undamped period for small swings, or +Inf when
// there is no restoring torque.
func SmallAnglePeriod(v params.Values) float64 {
	k := v[params.Mass] * v[params.Gravity] * PivotToCenter(v)
	if k <= 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi * math.Sqrt(MomentOfInertia(v)/k)
}
