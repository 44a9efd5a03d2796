package analysis

import "math"

// Crossings returns the interpolated times at which samples rises through
// threshold. times and samples must have equal length.
func Crossings(times, samples []float64, threshold float64) []float64 {
	n := min(len(times), len(samples))
	var out []float64
	for i := 1; i < n; i++ {
		prev, curr := samples[i-1], samples[i]
		if prev < threshold && curr >= threshold {
			frac := (threshold - prev) / (curr - prev)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			out = append(out, times[i-1]+frac*(times[i]-times[i-1]))
		}
	}
	return out
}

// Period is the mean spacing of successive crossings, or 0 with fewer than
// two.
func Period(times, samples []float64, threshold float64) float64 {
	c := Crossings(times, samples, threshold)
	if len(c) < 2 {
		return 0
	}
	return (c[len(c)-1] - c[0]) / float64(len(c)-1)
}
