package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is the one-sided magnitude spectrum of a real signal.
type Spectrum struct {
	Frequencies []float64
	Magnitude   []float64
}

// PowerSpectrum returns |X(k)| for k in [0, n/2).
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	x := fft.FFTReal(removeMean(data))
	ps := make([]float64, len(x)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(x[i])
	}
	return ps
}

// NewSpectrum pairs PowerSpectrum with bin frequencies for a signal sampled
// at sampleRate hertz.
func NewSpectrum(data []float64, sampleRate float64) Spectrum {
	ps := PowerSpectrum(data)
	freqs := make([]float64, len(ps))
	for i := range freqs {
		freqs[i] = float64(i) * sampleRate / float64(len(data))
	}
	return Spectrum{Frequencies: freqs, Magnitude: ps}
}

// DominantFrequency is the frequency of the strongest non-DC bin, or 0 for
// signals too short to have one.
func DominantFrequency(data []float64, sampleRate float64) float64 {
	s := NewSpectrum(data, sampleRate)
	best := 0
	for i := 1; i < len(s.Magnitude); i++ {
		if best == 0 || s.Magnitude[i] > s.Magnitude[best] {
			best = i
		}
	}
	if best == 0 {
		return 0
	}
	return s.Frequencies[best]
}

func removeMean(data []float64) []float64 {
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}
	return out
}
