package analysis

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/history"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/params"
)

// Crossings returns the interpolated times at which angle passes upward
// through zero. Samples are dt apart starting at t=0.
func Crossings(angle []float64, dt float64) []float64 {
	var out []float64
	for i := 1; i < len(angle); i++ {
		a, b := angle[i-1], angle[i]
		if a < 0 && b >= 0 {
			frac := -a / (b - a)
			out = append(out, (float64(i-1)+frac)*dt)
		}
	}
	return out
}

// MeanPeriod is the average spacing between upward zero crossings, or 0 when
// fewer than two crossings were recorded.
func MeanPeriod(angle []float64, dt float64) float64 {
	c := Crossings(angle, dt)
	if len(c) < 2 {
		return 0
	}
	return (c[len(c)-1] - c[0]) / float64(len(c)-1)
}

type SweepPoint struct {
	Param  float64
	Period float64
}

// PeriodSweep runs a fresh pendulum for each of steps values of id spread
// evenly over [lo, hi] and measures its period. Other parameters come from
// base. Runs that leave the finite range report a zero period.
func PeriodSweep(base params.Values, id params.ID, lo, hi float64, steps int, dt, duration float64) []SweepPoint {
	if steps < 2 {
		steps = 2
	}
	step := (hi - lo) / float64(steps-1)
	n := int(math.Round(duration / dt))

	integ := integrators.NewStormerVerlet(dt)
	results := make([]SweepPoint, 0, steps)

	for i := 0; i < steps; i++ {
		store := params.New(base)
		store.Set(id, lo+float64(i)*step)
		v := store.Values()

		rec := history.NewRecorder()
		w := dynamo.NewWindow(v[params.Amplitude])
		for k := 0; k < n; k++ {
			s := integ.Step(&w, v)
			if !s.IsValid() || !w.IsValid() {
				break
			}
			rec.Append(s)
		}

		results = append(results, SweepPoint{
			Param:  v[id],
			Period: MeanPeriod(rec.Series().Angle, dt),
		})
	}

	return results
}
