package viz

import (
	"github.com/guptarohit/asciigraph"
)

// Plot draws a line chart of the series, or nothing when there are fewer
// than two points.
func Plot(series []float64, caption string, width, height int) string {
	if len(series) < 2 {
		return ""
	}
	return asciigraph.Plot(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	)
}

// PlotXY resamples y over evenly spaced x so a sweep plots with its x axis
// intact. xs must be increasing.
func PlotXY(xs, ys []float64, caption string, width, height int) string {
	n := min(len(xs), len(ys))
	if n < 2 || width < 2 {
		return Plot(ys, caption, width, height)
	}
	out := make([]float64, width)
	lo, hi := xs[0], xs[n-1]
	j := 0
	for i := range out {
		x := lo + (hi-lo)*float64(i)/float64(width-1)
		for j < n-2 && xs[j+1] < x {
			j++
		}
		span := xs[j+1] - xs[j]
		if span == 0 {
			out[i] = ys[j]
			continue
		}
		f := (x - xs[j]) / span
		out[i] = ys[j] + (ys[j+1]-ys[j])*min(max(f, 0), 1)
	}
	return Plot(out, caption, width, height)
}
