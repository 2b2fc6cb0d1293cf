package analysis

import (
	"math/bits"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// FFT transforms a real signal. Input whose length is not a power of two is
// zero-padded up to the next one so bin spacing stays 1/(N·dt).
func FFT(data []float64) []complex128 {
	n := len(data)
	if n > 1 && n&(n-1) != 0 {
		padded := make([]float64, 1<<bits.Len(uint(n)))
		copy(padded, data)
		data = padded
	}
	return fft.FFTReal(data)
}

// PowerSpectrum returns the magnitude of the first half of the transform.
// Bin k corresponds to k/(N·dt) Hz where N is the padded length.
func PowerSpectrum(data []float64) []float64 {
	spectrum := FFT(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantFrequency returns the strongest non-DC frequency (Hz) of a signal
// sampled every dt seconds. The mean is removed and a Hann window applied
// first.
func DominantFrequency(data []float64, dt float64) float64 {
	if len(data) < 4 || dt <= 0 {
		return 0
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}
	window.Apply(centered, window.Hann)

	ps := PowerSpectrum(centered)
	n := 2 * len(ps)
	best, bestK := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			best, bestK = ps[k], k
		}
	}
	return float64(bestK) / (float64(n) * dt)
}
