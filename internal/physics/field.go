package physics

import (
	"math"

	"github.com/san-kum/allvis/internal/dynamo"
)

// DefaultMinDistance is the radius around a charge inside which its
// contribution is dropped.
const DefaultMinDistance = 1e-3

type Charge struct {
	Pos dynamo.Vec2 `yaml:"pos"`
	Q   float64     `yaml:"q"`
}

// Field is the electrostatic field of point charges with inverse-square
// falloff. It is stateless; every sample is computed from the charges.
type Field struct {
	Charges     []Charge
	K           float64
	MinDistance float64
	Bounds      Bounds
}

func NewField(charges ...Charge) *Field {
	return &Field{
		Charges:     charges,
		K:           1,
		MinDistance: DefaultMinDistance,
		Bounds:      Bounds{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10},
	}
}

// Dipole is a +q/-q pair on the x axis separated by d.
func Dipole(q, d float64) *Field {
	return NewField(
		Charge{Pos: dynamo.V(-d/2, 0), Q: q},
		Charge{Pos: dynamo.V(d/2, 0), Q: -q},
	)
}

func (f *Field) minDistance() float64 {
	if f.MinDistance > 0 {
		return f.MinDistance
	}
	return DefaultMinDistance
}

// Sample returns E at p. Time is accepted for the VectorField contract and
// ignored.
func (f *Field) Sample(p dynamo.Vec2, _ float64) dynamo.Vec2 {
	var e dynamo.Vec2
	eps := f.minDistance()
	for _, c := range f.Charges {
		d := p.Sub(c.Pos)
		r := d.Length()
		if r < eps {
			continue
		}
		e = e.Add(d.Scale(f.K * c.Q / (r * r * r)))
	}
	return e
}

func (f *Field) Potential(p dynamo.Vec2) float64 {
	v := 0.0
	eps := f.minDistance()
	for _, c := range f.Charges {
		r := p.Dist(c.Pos)
		if r < eps {
			continue
		}
		v += f.K * c.Q / r
	}
	return v
}

// nearCharge reports whether p lies within one step of any charge.
func (f *Field) nearCharge(p dynamo.Vec2, radius float64) bool {
	for _, c := range f.Charges {
		if p.Dist(c.Pos) < radius {
			return true
		}
	}
	return false
}

// TraceLine follows the field from start with normalized Euler steps of
// length step. A negative step traces against the field. The line ends on
// reaching a charge, leaving the bounds, a null point, or after maxSteps.
func (f *Field) TraceLine(start dynamo.Vec2, step float64, maxSteps int) []dynamo.Vec2 {
	line := []dynamo.Vec2{start}
	if step == 0 {
		return line
	}
	radius := math.Max(math.Abs(step), f.minDistance())
	p := start
	for i := 0; i < maxSteps; i++ {
		dir := f.Sample(p, 0).Normalized()
		if dir == (dynamo.Vec2{}) {
			break
		}
		p = p.Add(dir.Scale(step))
		if !p.IsValid() || !f.Bounds.Contains(p) {
			break
		}
		line = append(line, p)
		if f.nearCharge(p, radius) {
			break
		}
	}
	return line
}

// FieldLines seeds perCharge lines evenly around each charge. Lines leave
// positive charges along the field and leave negative charges against it.
func (f *Field) FieldLines(perCharge int, step float64, maxSteps int) [][]dynamo.Vec2 {
	var lines [][]dynamo.Vec2
	seed := 2 * math.Abs(step)
	for _, c := range f.Charges {
		if c.Q == 0 {
			continue
		}
		s := step
		if c.Q < 0 {
			s = -step
		}
		for k := 0; k < perCharge; k++ {
			a := 2 * math.Pi * float64(k) / float64(perCharge)
			start := c.Pos.Add(dynamo.V(math.Cos(a), math.Sin(a)).Scale(seed))
			lines = append(lines, f.TraceLine(start, s, maxSteps))
		}
	}
	return lines
}
