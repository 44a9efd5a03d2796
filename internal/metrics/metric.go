// Package metrics summarizes a running physics model.
//
// A [Metric] is fed the model after every tick and reduces what it sees to
// one number. The [Recorder] exports playback and simulation activity as
// Prometheus metrics on a private registry.
package metrics

import (
	"github.com/san-kum/allvis/internal/dynamo"
	"github.com/san-kum/allvis/internal/physics"
)

type Metric interface {
	Name() string
	Observe(m physics.Model)
	Value() float64
	Reset()
}

type energetic interface {
	Energy() float64
}

type kinetic interface {
	KineticEnergy() float64
}

type momentous interface {
	Momentum() dynamo.Vec2
}

type pressurized interface {
	Pressure() float64
}

type counter interface {
	Count() int
}

// EnergyOf prefers a model's total mechanical energy and falls back to its
// kinetic energy.
func EnergyOf(m physics.Model) (float64, bool) {
	switch v := m.(type) {
	case energetic:
		return v.Energy(), true
	case kinetic:
		return v.KineticEnergy(), true
	}
	return 0, false
}

// ForModel returns the metrics that apply to m.
func ForModel(m physics.Model) []Metric {
	var out []Metric
	if _, ok := EnergyOf(m); ok {
		out = append(out, NewEnergy(), NewEnergyDrift(), NewStability(10))
	}
	if _, ok := m.(momentous); ok {
		out = append(out, NewMomentumDrift())
	}
	if _, ok := m.(pressurized); ok {
		out = append(out, NewPressure())
	}
	if _, ok := m.(counter); ok {
		out = append(out, NewCollisionCount())
	}
	return out
}
