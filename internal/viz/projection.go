package viz

import (
	"math"
	"strings"

	"github.com/san-kum/allvis/internal/dynamo"
	"github.com/san-kum/allvis/internal/physics"
)

// Draw projects the current state of a model onto c. Unknown models leave
// the canvas blank.
func Draw(c *Canvas, m physics.Model) {
	c.Clear()
	switch v := m.(type) {
	case *physics.Collisions:
		DrawCollisions(c, v)
	case *physics.GasBox:
		DrawGas(c, v)
	case *physics.Projectile:
		DrawProjectile(c, v)
	case *physics.String:
		DrawString(c, v)
	case *physics.WaveAnimation:
		DrawWave(c, v.Frame(c.Width*2, c.Height*4))
	}
}

func drawBox(c *Canvas) {
	w, h := c.Dots()
	c.Polyline([][2]int{{0, 0}, {w - 1, 0}, {w - 1, h - 1}, {0, h - 1}, {0, 0}})
}

// DrawCollisions outlines the box and fills each body.
func DrawCollisions(c *Canvas, w *physics.Collisions) {
	drawBox(c)
	vp := Fit(c, physics.Box(w.Params.Width, w.Params.Height), true)
	for _, b := range w.Bodies {
		x, y := vp.Project(b.Pos)
		c.Circle(x, y, max(vp.Length(b.Radius), bodyMinRadius), true)
	}
}

// DrawGas plots each particle as one dot.
func DrawGas(c *Canvas, g *physics.GasBox) {
	drawBox(c)
	vp := Fit(c, physics.Box(g.Params.Width, g.Params.Height), false)
	for _, p := range g.Particles {
		c.Set(vp.Project(p.Pos))
	}
}

// projectileArena spans the launch point and the analytic landing point,
// so the drag-free arc fills the canvas.
func projectileArena(p *physics.Projectile) physics.Bounds {
	rng := p.AnalyticRange()
	top := p.AnalyticApex()
	if pos := p.Position(); pos.X > rng {
		rng = pos.X
	}
	rng = math.Max(rng, 1)
	top = math.Max(top, 1)
	return physics.Bounds{
		MinX: -rng * arenaMargin,
		MaxX: rng * (1 + arenaMargin),
		MinY: -top * arenaMargin,
		MaxY: top * (1 + arenaMargin),
	}
}

// DrawProjectile draws the ground, the path so far and the ball.
func DrawProjectile(c *Canvas, p *physics.Projectile) {
	vp := Fit(c, projectileArena(p), false)
	w, _ := c.Dots()
	_, gy := vp.Project(dynamo.V(0, 0))
	c.DrawLine(0, gy, w-1, gy)

	path := p.Path()
	pts := make([][2]int, 0, len(path)+1)
	x0, y0 := vp.Project(dynamo.V(0, p.Params.Height))
	pts = append(pts, [2]int{x0, y0})
	for _, q := range path {
		x, y := vp.Project(q)
		pts = append(pts, [2]int{x, y})
	}
	c.Polyline(pts)

	x, y := vp.Project(p.Position())
	c.Circle(x, y, 2, true)
}

// DrawString plots the displacement of each point, fixed ends at mid height.
func DrawString(c *Canvas, s *physics.String) {
	u := s.Displacement()
	amp := math.Max(s.Params.Amplitude, 1e-9) * 1.2
	vp := Fit(c, physics.Bounds{MinX: 0, MaxX: float64(len(u) - 1), MinY: -amp, MaxY: amp}, false)
	pts := make([][2]int, len(u))
	for i, v := range u {
		x, y := vp.Project(dynamo.V(float64(i), v))
		pts[i] = [2]int{x, y}
	}
	c.Polyline(pts)
}

// DrawWave lights every sub-pixel whose displacement is a crest. grid must
// be sampled at the canvas resolution, row-major from the bottom.
func DrawWave(c *Canvas, grid [][]float64) {
	_, h := c.Dots()
	for j, row := range grid {
		for i, v := range row {
			if v > 0 {
				c.Set(i, h-1-j)
			}
		}
	}
}

// DrawFieldLines draws traced lines and marks positive charges filled and
// negative ones hollow.
func DrawFieldLines(c *Canvas, b physics.Bounds, lines [][]dynamo.Vec2, charges []physics.Charge) {
	c.Clear()
	vp := Fit(c, b, false)
	for _, line := range lines {
		pts := make([][2]int, len(line))
		for i, p := range line {
			x, y := vp.Project(p)
			pts[i] = [2]int{x, y}
		}
		c.Polyline(pts)
	}
	for _, q := range charges {
		x, y := vp.Project(q.Pos)
		c.Circle(x, y, 3, q.Q > 0)
	}
}

// shades runs from trough to crest.
var shades = []rune(" .:-=+*#%@")

// ShadeGrid renders a scalar grid as text, one character per sample, with
// the first row at the bottom.
func ShadeGrid(grid [][]float64) string {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range grid {
		for _, v := range row {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	var b strings.Builder
	for j := len(grid) - 1; j >= 0; j-- {
		for _, v := range grid[j] {
			k := int((v - lo) / span * float64(len(shades)-1))
			b.WriteRune(shades[min(max(k, 0), len(shades)-1)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
