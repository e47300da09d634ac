// Package history records the sampled trajectory of a run for export.
package history

import (
	"iter"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Series holds three parallel sequences; index i of each refers to the same
// simulated instant.
type Series struct {
	Angle        []float64
	Velocity     []float64
	Acceleration []float64
}

func (s Series) Len() int { return len(s.Angle) }

// Times yields the sample times 0, dt, 2dt, ... one per sample. The sequence
// can be ranged over any number of times.
func (s Series) Times(dt float64) iter.Seq[float64] {
	n := s.Len()
	return func(yield func(float64) bool) {
		for i := 0; i < n; i++ {
			if !yield(float64(i) * dt) {
				return
			}
		}
	}
}

// TimeSlice materialises Times.
func (s Series) TimeSlice(dt float64) []float64 {
	out := make([]float64, 0, s.Len())
	for t := range s.Times(dt) {
		out = append(out, t)
	}
	return out
}

// Recorder appends samples to an unbounded Series.
type Recorder struct {
	series Series
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Append records one sample in lock-step across the three sequences.
func (r *Recorder) Append(s dynamo.Sample) {
	r.series.Angle = append(r.series.Angle, s.Angle)
	r.series.Velocity = append(r.series.Velocity, s.Velocity)
	r.series.Acceleration = append(r.series.Acceleration, s.Acceleration)
}

// Clear empties every sequence.
func (r *Recorder) Clear() {
	r.series = Series{}
}

func (r *Recorder) Len() int { return r.series.Len() }

// Last returns the most recent sample.
func (r *Recorder) Last() (dynamo.Sample, bool) {
	n := r.series.Len()
	if n == 0 {
		return dynamo.Sample{}, false
	}
	return dynamo.Sample{
		Angle:        r.series.Angle[n-1],
		Velocity:     r.series.Velocity[n-1],
		Acceleration: r.series.Acceleration[n-1],
	}, true
}

// Series returns a copy that later appends do not affect.
func (r *Recorder) Series() Series {
	return Series{
		Angle:        clone(r.series.Angle),
		Velocity:     clone(r.series.Velocity),
		Acceleration: clone(r.series.Acceleration),
	}
}

func clone(s []float64) []float64 {
	c := make([]float64, len(s))
	copy(c, s)
	return c
}
