package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/allvis/internal/dynamo"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) StateDim() int { return 2 }

func (h *harmonicOscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestRK4Accuracy(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestVerletEnergyBounded(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewVerlet()

	x := dynamo.State{1.0, 0.0}
	e0 := dyn.Energy(x)
	dt := 0.01
	for i := 0; i < 10000; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	if drift := math.Abs(dyn.Energy(x)-e0) / e0; drift > 1e-3 {
		t.Errorf("verlet energy drift too large: %e", drift)
	}
}

func TestEulerStep(t *testing.T) {
	dyn := &harmonicOscillator{}
	x := NewEuler().Step(dyn, dynamo.State{1, 0}, 0, 0.1)
	if x[0] != 1 || math.Abs(x[1]+0.1) > 1e-12 {
		t.Errorf("euler step = %v, want [1 -0.1]", x)
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		integ, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		x := integ.Step(&harmonicOscillator{}, dynamo.State{1, 0}, 0, 0.01)
		if !x.IsValid() {
			t.Errorf("%s produced invalid state", name)
		}
	}

	if _, err := New("rk9"); !errors.Is(err, ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}
