// Package analysis post-processes recorded pendulum runs.
//
//   - [DominantFrequency]: strongest oscillation frequency of the angle signal
//   - [Crossings] and [MeanPeriod]: period from upward zero crossings
//   - [PeriodSweep]: period as a function of one parameter
//   - [PhasePortraitToASCII]: angle against velocity as text
//
// The small-angle period from the physics package is the natural reference:
//
//	f := analysis.DominantFrequency(series.Angle, dt)
//	ratio := 1 / f / physics.SmallAnglePeriod(values)
package analysis
