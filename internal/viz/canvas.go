package viz

import (
	"math"
	"strings"

	"github.com/san-kum/allvis/internal/dynamo"
	"github.com/san-kum/allvis/internal/physics"
)

const blank = 0x2800

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Dots returns the canvas size in sub-pixels.
func (c *Canvas) Dots() (w, h int) { return c.Width * 2, c.Height * 4 }

// Set lights the sub-pixel at (x, y). The canvas is (Width*2) x (Height*4)
// sub-pixels; points outside are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Unset clears a sub-pixel.
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	mask := ^rune(pixelMap[subY][subX])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a Bresenham line between two sub-pixels.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Circle outlines a circle of radius r sub-pixels, or fills it.
func (c *Canvas) Circle(cx, cy, r int, fill bool) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			d := dx*dx + dy*dy
			if d > r*r {
				continue
			}
			if fill || d >= (r-1)*(r-1) {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// Polyline joins consecutive points.
func (c *Canvas) Polyline(pts [][2]int) {
	for i := 1; i < len(pts); i++ {
		c.DrawLine(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps world coordinates onto a canvas. World y points up unless
// YDown is set, as in the collision box where gravity pulls toward larger y.
type Viewport struct {
	Bounds physics.Bounds
	W, H   int
	YDown  bool
}

// Fit stretches b over the whole of c.
func Fit(c *Canvas, b physics.Bounds, yDown bool) Viewport {
	w, h := c.Dots()
	return Viewport{Bounds: b, W: w, H: h, YDown: yDown}
}

func (v Viewport) scale() (sx, sy float64) {
	sx = float64(v.W-1) / math.Max(v.Bounds.Width(), 1e-12)
	sy = float64(v.H-1) / math.Max(v.Bounds.Height(), 1e-12)
	return
}

// Project returns the sub-pixel for a world point.
func (v Viewport) Project(p dynamo.Vec2) (x, y int) {
	sx, sy := v.scale()
	x = int(math.Round((p.X - v.Bounds.MinX) * sx))
	if v.YDown {
		y = int(math.Round((p.Y - v.Bounds.MinY) * sy))
	} else {
		y = int(math.Round((v.Bounds.MaxY - p.Y) * sy))
	}
	return x, y
}

// Length converts a world distance along x to sub-pixels.
func (v Viewport) Length(d float64) int {
	sx, _ := v.scale()
	return int(math.Round(d * sx))
}
