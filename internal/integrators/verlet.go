// Package integrators advances the pendulum's angle window in time.
package integrators

import (
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/params"
	"github.com/san-kum/pendsim/internal/physics"
)

// StormerVerlet is the explicit three-point Störmer–Verlet recursion
// theta[n+1] = 2*theta[n] - theta[n-1] + a*dt^2 with a fixed step.
type StormerVerlet struct {
	Dt float64
}

func NewStormerVerlet(dt float64) *StormerVerlet {
	return &StormerVerlet{Dt: dt}
}

// Step shifts w one slot to the left and writes the new Next angle. The
// velocity estimate is taken after the shift but before Next is overwritten,
// so it only sees samples from before this step. The returned sample holds
// the new current angle with the velocity and acceleration used to reach it.
func (s *StormerVerlet) Step(w *dynamo.Window, v params.Values) dynamo.Sample {
	w.Prev = w.Cur
	w.Cur = w.Next

	vel, acc := physics.AngularAcceleration(*w, v, s.Dt)
	w.Next = 2*w.Cur - w.Prev + acc*s.Dt*s.Dt

	return dynamo.Sample{Angle: w.Cur, Velocity: vel, Acceleration: acc}
}
