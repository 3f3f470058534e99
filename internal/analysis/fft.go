package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first len(data)/2+1 FFT bins.
// Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	coeffs := fft.FFTReal(data)
	ps := make([]float64, len(data)/2+1)

	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}

	return ps
}

// DominantPeriod returns the period, in samples, of the strongest non-DC
// component of the series, or 0 if the series is constant.
func DominantPeriod(data []float64) float64 {
	n := len(data)
	if n < 2 {
		return 0
	}

	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	best, bestK := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			best, bestK = ps[k], k
		}
	}
	if bestK == 0 || best < 1e-12 {
		return 0
	}
	return float64(n) / float64(bestK)
}
