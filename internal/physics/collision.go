package physics

import (
	"math"

	"github.com/san-kum/allvis/internal/dynamo"
)

// minSeparation guards the collision normal against coincident centres.
const minSeparation = 1e-9

// CollisionParams configures the collision box. The y axis grows toward the
// floor, so a positive Gravity pulls bodies down onto MaxY.
type CollisionParams struct {
	Gravity float64 `yaml:"gravity" mapstructure:"gravity"`
	// FloorRestitution scales the reflected vertical speed on floor contact
	// only. Side walls and the ceiling reflect without loss.
	FloorRestitution float64 `yaml:"floor_restitution" mapstructure:"floor_restitution"`
	Width            float64 `yaml:"width" mapstructure:"width"`
	Height           float64 `yaml:"height" mapstructure:"height"`
}

func DefaultCollisionParams() CollisionParams {
	return CollisionParams{
		Gravity:          0,
		FloorRestitution: 0.95,
		Width:            10,
		Height:           6,
	}
}

// Collisions advances rigid discs under gravity, wall reflection and
// pairwise elastic collision.
type Collisions struct {
	Params CollisionParams
	Bodies []Body

	initial    []Body
	t          float64
	collisions int
}

func NewCollisions(params CollisionParams, bodies []Body) *Collisions {
	return &Collisions{
		Params:  params,
		Bodies:  cloneBodies(bodies),
		initial: cloneBodies(bodies),
	}
}

// DefaultBodies is a head-on pair: a heavy body at rest and a light one
// approaching it.
func DefaultBodies() []Body {
	return []Body{
		{Pos: dynamo.V(2, 3), Vel: dynamo.V(3, 0), Radius: 0.4, Mass: 1},
		{Pos: dynamo.V(7, 3), Vel: dynamo.V(0, 0), Radius: 0.6, Mass: 3},
	}
}

func (c *Collisions) Tick(dt float64) {
	for i := range c.Bodies {
		b := &c.Bodies[i]
		b.Vel.Y += c.Params.Gravity * dt
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		c.reflectWalls(b)
	}

	for i := 0; i < len(c.Bodies); i++ {
		for j := i + 1; j < len(c.Bodies); j++ {
			if Resolve(&c.Bodies[i], &c.Bodies[j]) {
				c.collisions++
			}
		}
	}

	c.t += dt
}

func (c *Collisions) reflectWalls(b *Body) {
	w, h := c.Params.Width, c.Params.Height

	if b.Pos.X-b.Radius < 0 {
		b.Pos.X = b.Radius
		b.Vel.X = math.Abs(b.Vel.X)
	} else if b.Pos.X+b.Radius > w {
		b.Pos.X = w - b.Radius
		b.Vel.X = -math.Abs(b.Vel.X)
	}

	if b.Pos.Y-b.Radius < 0 {
		b.Pos.Y = b.Radius
		b.Vel.Y = math.Abs(b.Vel.Y)
	} else if b.Pos.Y+b.Radius > h {
		b.Pos.Y = h - b.Radius
		b.Vel.Y = -math.Abs(b.Vel.Y) * c.Params.FloorRestitution
	}
}

// Resolve applies an elastic collision between two overlapping bodies and
// pushes them apart. It reports whether a resolution happened; bodies that
// do not overlap, are already separating, or share a centre are untouched.
func Resolve(a, b *Body) bool {
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Length()
	if dist >= a.Radius+b.Radius || dist < minSeparation {
		return false
	}
	total := a.Mass + b.Mass
	if total <= 0 {
		return false
	}

	n := delta.Scale(1 / dist)
	vn := b.Vel.Sub(a.Vel).Dot(n)
	if vn >= 0 {
		return false
	}

	j := 2 * vn / total
	a.Vel = a.Vel.Add(n.Scale(j * b.Mass))
	b.Vel = b.Vel.Sub(n.Scale(j * a.Mass))

	overlap := a.Radius + b.Radius - dist
	a.Pos = a.Pos.Sub(n.Scale(overlap * b.Mass / total))
	b.Pos = b.Pos.Add(n.Scale(overlap * a.Mass / total))
	return true
}

func (c *Collisions) Reset() {
	c.Bodies = cloneBodies(c.initial)
	c.t = 0
	c.collisions = 0
}

// SetBodies replaces the bodies wholesale and makes them the reset state.
func (c *Collisions) SetBodies(bodies []Body) {
	c.initial = cloneBodies(bodies)
	c.Reset()
}

func (c *Collisions) Time() float64 { return c.t }

// Count is the number of pairwise resolutions since the last reset.
func (c *Collisions) Count() int { return c.collisions }

func (c *Collisions) Momentum() dynamo.Vec2 { return totalMomentum(c.Bodies) }

func (c *Collisions) KineticEnergy() float64 { return totalKineticEnergy(c.Bodies) }

func (c *Collisions) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity":           c.Params.Gravity,
		"floor_restitution": c.Params.FloorRestitution,
		"width":             c.Params.Width,
		"height":            c.Params.Height,
	}
}

func (c *Collisions) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		c.Params.Gravity = value
	case "floor_restitution":
		if value < 0 || value > 1 {
			return paramError(name, value, dynamo.ErrParameterBounds)
		}
		c.Params.FloorRestitution = value
	case "width":
		if value <= 0 {
			return paramError(name, value, dynamo.ErrParameterBounds)
		}
		c.Params.Width = value
	case "height":
		if value <= 0 {
			return paramError(name, value, dynamo.ErrParameterBounds)
		}
		c.Params.Height = value
	default:
		return paramError(name, value, dynamo.ErrUnknownParameter)
	}
	return nil
}
