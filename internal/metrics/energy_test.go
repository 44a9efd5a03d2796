package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/allvis/internal/dynamo"
	"github.com/san-kum/allvis/internal/physics"
)

func newPair() *physics.Collisions {
	return physics.NewCollisions(physics.DefaultCollisionParams(), physics.DefaultBodies())
}

func TestEnergyMean(t *testing.T) {
	c := newPair()
	m := NewEnergy()

	m.Observe(c)
	c.Tick(0.01)
	m.Observe(c)

	if math.Abs(m.Value()-4.5) > 1e-9 {
		t.Errorf("expected mean kinetic energy 4.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDriftUnderCollision(t *testing.T) {
	c := newPair()
	m := NewEnergyDrift()

	for i := 0; i < 120; i++ {
		c.Tick(1.0 / 60)
		m.Observe(c)
	}

	if c.Count() == 0 {
		t.Fatal("expected the pair to collide")
	}
	if m.Value() > 1e-9 {
		t.Errorf("expected no drift through an elastic collision, got %e", m.Value())
	}
}

func TestEnergyDriftDetectsLoss(t *testing.T) {
	params := physics.DefaultCollisionParams()
	params.Gravity = 10
	params.FloorRestitution = 0.5
	c := physics.NewCollisions(params, []physics.Body{{Pos: dynamo.V(5, 1), Radius: 0.4, Mass: 1}})
	m := NewEnergyDrift()

	m.Observe(c)
	for i := 0; i < 300; i++ {
		c.Tick(0.01)
		m.Observe(c)
	}

	if m.Value() == 0 {
		t.Error("expected falling and a lossy bounce to register drift")
	}
}

func TestStability(t *testing.T) {
	params := physics.DefaultStringParams()
	params.Integrator = "euler"
	s, err := physics.NewString(params)
	if err != nil {
		t.Fatal(err)
	}
	m := NewStability(10)

	dt := 4 * s.StableStep()
	for i := 0; i < 200; i++ {
		s.Tick(dt)
		m.Observe(s)
	}

	if m.Value() >= 1 {
		t.Errorf("expected an unstable timestep to be detected, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 1 {
		t.Errorf("expected full stability after reset, got %f", m.Value())
	}
}

func TestMomentumDriftAndCount(t *testing.T) {
	c := newPair()
	drift := NewMomentumDrift()
	count := NewCollisionCount()

	for i := 0; i < 120; i++ {
		c.Tick(1.0 / 60)
		drift.Observe(c)
		count.Observe(c)
	}

	if drift.Value() > 1e-9 {
		t.Errorf("expected momentum conserved before any wall contact, drift %e", drift.Value())
	}
	if count.Value() != 1 {
		t.Errorf("expected one collision, got %f", count.Value())
	}
}

func TestPressure(t *testing.T) {
	g := physics.NewGasBox(physics.DefaultGasParams())
	p := NewPressure()

	for i := 0; i < 200; i++ {
		g.Tick(0.01)
		p.Observe(g)
	}
	if p.Value() <= 0 {
		t.Errorf("expected positive mean pressure, got %f", p.Value())
	}
}

func TestForModel(t *testing.T) {
	tests := []struct {
		name  string
		model physics.Model
		want  []string
	}{
		{"collisions", newPair(), []string{"energy", "energy_drift", "stability", "momentum_drift", "collisions"}},
		{"gas", physics.NewGasBox(physics.DefaultGasParams()), []string{"energy", "energy_drift", "stability", "pressure"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, m := range ForModel(tt.model) {
				got = append(got, m.Name())
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}
