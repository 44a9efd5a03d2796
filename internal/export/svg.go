package export

import (
	"fmt"
	"io"
	"math"

	"github.com/san-kum/allvis/internal/dynamo"
	"github.com/san-kum/allvis/internal/viz"
)

const (
	background = "#0a0a0a"
	foreground = "#00ff00"
)

// Palette cycles stroke colors across paths.
var Palette = []string{"#00ff00", "#00bfff", "#ff8c00", "#ff3b7f", "#f5f5f5", "#ffd700"}

// braille dot bits, indexed [row][col].
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG draws each set braille dot of c as a circle. scale is the
// size in SVG units of one dot cell.
func CanvasToSVG(w io.Writer, c *viz.Canvas, scale float64) error {
	if c == nil {
		return nil
	}
	width := float64(c.Width) * scale * 2
	height := float64(c.Height) * scale * 4

	ew := &errWriter{w: w}
	ew.printf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, background, foreground)

	r := scale * 0.4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			ch := c.Grid[row][col]
			if ch <= 0x2800 {
				continue
			}
			pattern := int(ch - 0x2800)
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					ew.printf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
						baseX+float64(dx)*scale+scale/2, baseY+float64(dy)*scale+scale/2, r)
				}
			}
		}
	}
	ew.printf("</g>\n</svg>\n")
	return ew.err
}

// Marker is a filled circle in world coordinates, such as a charge or body.
type Marker struct {
	Pos    dynamo.Vec2
	Radius float64
	Color  string
}

// PathsToSVG draws polylines in world coordinates, y up, fitted with 10%
// padding into a width x height image. Field lines and trajectories both
// export through it.
func PathsToSVG(w io.Writer, paths [][]dynamo.Vec2, markers []Marker, width, height int) error {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(p dynamo.Vec2) {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	for _, path := range paths {
		for _, p := range path {
			grow(p)
		}
	}
	for _, m := range markers {
		grow(m.Pos.Add(dynamo.V(m.Radius, m.Radius)))
		grow(m.Pos.Sub(dynamo.V(m.Radius, m.Radius)))
	}
	if math.IsInf(minX, 0) {
		return fmt.Errorf("export: nothing to draw")
	}

	rangeX := max(maxX-minX, 1e-9)
	rangeY := max(maxY-minY, 1e-9)
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2
	sx := float64(width) / rangeX
	sy := float64(height) / rangeY
	project := func(p dynamo.Vec2) (float64, float64) {
		return (p.X - minX) * sx, float64(height) - (p.Y-minY)*sy
	}

	ew := &errWriter{w: w}
	ew.printf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	for i, path := range paths {
		if len(path) < 2 {
			continue
		}
		ew.printf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, Palette[i%len(Palette)])
		for j, p := range path {
			x, y := project(p)
			if j == 0 {
				ew.printf("M%.1f,%.1f", x, y)
			} else {
				ew.printf(" L%.1f,%.1f", x, y)
			}
		}
		ew.printf("\"/>\n")
	}

	for _, m := range markers {
		x, y := project(m.Pos)
		color := m.Color
		if color == "" {
			color = foreground
		}
		ew.printf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", x, y, max(m.Radius*sx, 2), color)
	}
	ew.printf("</svg>\n")
	return ew.err
}

// SeriesToSVG plots y against x as a single path.
func SeriesToSVG(w io.Writer, xs, ys []float64, width, height int) error {
	n := min(len(xs), len(ys))
	if n < 2 {
		return fmt.Errorf("export: need at least two points, got %d", n)
	}
	path := make([]dynamo.Vec2, n)
	for i := range path {
		path[i] = dynamo.V(xs[i], ys[i])
	}
	return PathsToSVG(w, [][]dynamo.Vec2{path}, nil, width, height)
}

// errWriter keeps the first write error so long templates need one check.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
