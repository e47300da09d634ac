package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// PowerSpectrum returns the magnitude of the first half of the DFT of data
// after removing its mean and applying a Hann window.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	x := make([]float64, len(data))
	mean := 0.0
	for _, d := range data {
		mean += d
	}
	mean /= float64(len(data))
	for i, d := range data {
		x[i] = d - mean
	}
	window.Apply(x, window.Hann)

	bins := fft.FFTReal(x)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-zero bin
// of data sampled every dt seconds, refined by parabolic interpolation. It
// returns 0 when the signal is too short or flat.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 3 || dt <= 0 {
		return 0
	}

	peak := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if ps[peak] == 0 {
		return 0
	}

	bin := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if denom := a - 2*b + c; denom != 0 {
			shift := 0.5 * (a - c) / denom
			if math.Abs(shift) <= 0.5 {
				bin += shift
			}
		}
	}

	return bin / (float64(len(data)) * dt)
}
