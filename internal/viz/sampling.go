package viz

import (
	"strings"

	"github.com/san-kum/allvis/internal/experiment"
)

// SamplingView renders a sampled visualizer as a still frame: field lines
// on a canvas or the wave grid as shaded text, then the 1D sweep and the
// derived facts.
func SamplingView(st Styles, title string, s *experiment.Sampling) string {
	var b strings.Builder
	b.WriteString(st.Title.Render(strings.ToUpper(title)) + "\n\n")

	switch {
	case len(s.Lines) > 0:
		c := NewCanvas(canvasWidth, canvasHeight)
		DrawFieldLines(c, s.Bounds, s.Lines, s.Charges)
		b.WriteString(c.String())
	case len(s.Grid) > 0:
		b.WriteString(ShadeGrid(s.Grid))
	}

	if chart := PlotXY(s.X, s.Y, s.YLabel+" vs "+s.XLabel, plotWidth*2, plotHeight*2); chart != "" {
		b.WriteString("\n" + st.Accent.Render(chart) + "\n")
	}
	if len(s.Facts) > 0 {
		b.WriteString("\n")
		for _, f := range s.Facts {
			b.WriteString(st.Value.Render(f.String()) + "\n")
		}
	}
	return b.String()
}
