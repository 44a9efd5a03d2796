package sim

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/allvis/internal/metrics"
	"github.com/san-kum/allvis/internal/physics"
)

// decay is x' = -x stepped with forward Euler.
type decay struct {
	x, t float64
}

func (d *decay) Tick(dt float64) { d.x -= d.x * dt; d.t += dt }
func (d *decay) Reset()          { d.x, d.t = 1, 0 }
func (d *decay) Time() float64   { return d.t }

func TestSimulatorRun(t *testing.T) {
	model := &decay{}
	s := New(model)
	s.AddProbe(Probe{Name: "x", Fn: func(m physics.Model) float64 { return m.(*decay).x }})

	result, err := s.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Times) != 11 {
		t.Errorf("expected 11 samples, got %d", len(result.Times))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}

	xs := result.Column("x")
	final := xs[len(xs)-1]
	expected := math.Exp(-1.0)
	if math.Abs(final-expected) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, final)
	}
	if xs[0] != 1 {
		t.Errorf("expected the run to start from reset, got %f", xs[0])
	}
}

func TestSimulatorSampleEvery(t *testing.T) {
	s := New(&decay{})
	s.AddProbe(Probe{Name: "t", Fn: func(m physics.Model) float64 { return m.Time() }})

	result, err := s.Run(context.Background(), Config{Dt: 0.01, Duration: 1, SampleEvery: 10})
	if err != nil {
		t.Fatal(err)
	}
	if got := len(result.Column("t")); got != 11 {
		t.Errorf("expected 11 samples, got %d", got)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(&decay{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
		{"negative sampling", Config{Dt: 0.1, Duration: 1, SampleEvery: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorStopsWhenModelFinishes(t *testing.T) {
	p, err := physics.NewProjectile(physics.DefaultProjectileParams())
	if err != nil {
		t.Fatal(err)
	}
	s := New(p)

	result, err := s.Run(context.Background(), Config{Dt: 0.01, Duration: 60})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Finished {
		t.Error("expected the landing to end the run")
	}
	if result.StepsTaken >= 6000 {
		t.Errorf("expected an early stop, took %d steps", result.StepsTaken)
	}
	if last := result.Times[len(result.Times)-1]; math.Abs(last-p.AnalyticFlightTime()) > 1e-3 {
		t.Errorf("expected the final sample at landing, got t=%f", last)
	}
}

func TestSimulatorCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	s := New(&decay{})
	s.AddObserver(ObserverFunc(func(_ physics.Model, step int) {
		steps++
		if step == 4 {
			cancel()
		}
	}))

	result, err := s.Run(ctx, Config{Dt: 0.1, Duration: 10})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.StepsTaken != 5 || steps != 5 {
		t.Errorf("expected a partial result of 5 steps, got %+v", result)
	}
}

func TestSimulatorMetricsAndRecorder(t *testing.T) {
	c := physics.NewCollisions(physics.DefaultCollisionParams(), physics.DefaultBodies())
	s := New(c)
	s.AddMetric(metrics.ForModel(c)...)
	rec := metrics.NewRecorder()
	s.SetRecorder(rec)

	result, err := s.Run(context.Background(), Config{Dt: 1.0 / 60, Duration: 2})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got := result.Metrics["collisions"]; got != 1 {
		t.Errorf("expected one collision, got %f", got)
	}
	if got := result.Metrics["energy_drift"]; got > 1e-9 {
		t.Errorf("expected no energy drift, got %e", got)
	}
	if len(s.Metrics()) != 5 {
		t.Errorf("expected five metrics for a collision model, got %d", len(s.Metrics()))
	}
}
