package metrics

import (
	"math"

	"github.com/san-kum/allvis/internal/physics"
)

// Stability is the fraction of observations whose energy stayed finite and
// within threshold times the initial energy. Explicit integration past its
// stable timestep shows up here first.
type Stability struct {
	name       string
	threshold  float64
	initial    float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(m physics.Model) {
	energy, ok := EnergyOf(m)
	if !ok {
		return
	}
	if s.samples == 0 {
		s.initial = math.Abs(energy)
	}
	s.samples++

	bound := s.threshold * math.Max(s.initial, 1e-12)
	if math.IsNaN(energy) || math.IsInf(energy, 0) || math.Abs(energy) > bound {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.initial = 0
	s.violations = 0
	s.samples = 0
}
