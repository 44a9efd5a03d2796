package physics

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/san-kum/allvis/internal/dynamo"
)

func TestResolve_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	pair := func(m1, m2, angle, dist, v1x, v1y, v2x, v2y float64) (Body, Body) {
		a := Body{Pos: dynamo.V(0, 0), Vel: dynamo.V(v1x, v1y), Radius: 0.5, Mass: m1}
		b := Body{
			Pos:    dynamo.V(math.Cos(angle), math.Sin(angle)).Scale(dist),
			Vel:    dynamo.V(v2x, v2y),
			Radius: 0.5,
			Mass:   m2,
		}
		return a, b
	}

	args := []gopter.Gen{
		gen.Float64Range(0.1, 10),
		gen.Float64Range(0.1, 10),
		gen.Float64Range(0, 2*math.Pi),
		gen.Float64Range(0.05, 0.99),
		gen.Float64Range(-5, 5),
		gen.Float64Range(-5, 5),
		gen.Float64Range(-5, 5),
		gen.Float64Range(-5, 5),
	}

	properties.Property("momentum and kinetic energy are conserved", prop.ForAll(
		func(m1, m2, angle, dist, v1x, v1y, v2x, v2y float64) bool {
			a, b := pair(m1, m2, angle, dist, v1x, v1y, v2x, v2y)
			p0 := a.Momentum().Add(b.Momentum())
			ke0 := a.KineticEnergy() + b.KineticEnergy()

			Resolve(&a, &b)

			p1 := a.Momentum().Add(b.Momentum())
			ke1 := a.KineticEnergy() + b.KineticEnergy()
			return p1.Equal(p0, 1e-9) && math.Abs(ke1-ke0) <= 1e-9*math.Max(1, ke0)
		},
		args...,
	))

	properties.Property("a resolved pair is separating", prop.ForAll(
		func(m1, m2, angle, dist, v1x, v1y, v2x, v2y float64) bool {
			a, b := pair(m1, m2, angle, dist, v1x, v1y, v2x, v2y)
			if !Resolve(&a, &b) {
				return true
			}
			n := b.Pos.Sub(a.Pos).Normalized()
			return b.Vel.Sub(a.Vel).Dot(n) >= -1e-9
		},
		args...,
	))

	properties.TestingRun(t)
}
