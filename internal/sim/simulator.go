package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/allvis/internal/metrics"
	"github.com/san-kum/allvis/internal/physics"
)

type finisher interface {
	Done() bool
}

// Simulator runs a model headlessly for a fixed duration, sampling probes
// and feeding metrics. It is the batch counterpart of playback.
type Simulator struct {
	model     physics.Model
	metrics   []metrics.Metric
	observers []Observer
	probes    []Probe
	recorder  *metrics.Recorder
}

func New(model physics.Model) *Simulator {
	return &Simulator{model: model}
}

func (s *Simulator) AddMetric(m ...metrics.Metric) { s.metrics = append(s.metrics, m...) }
func (s *Simulator) AddObserver(o Observer)        { s.observers = append(s.observers, o) }
func (s *Simulator) AddProbe(p ...Probe)           { s.probes = append(s.probes, p...) }

// SetRecorder exports tick counts and final metric values.
func (s *Simulator) SetRecorder(r *metrics.Recorder) { s.recorder = r }

func (s *Simulator) Metrics() []metrics.Metric { return s.metrics }

// Run resets the model and ticks it until Duration elapses, the model
// finishes, or ctx is cancelled. A cancelled run returns the partial result
// with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	every := max(cfg.SampleEvery, 1)
	result := &Result{
		Times:   make([]float64, 0, steps/every+1),
		Series:  make(map[string][]float64, len(s.probes)),
		Metrics: make(map[string]float64, len(s.metrics)),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	s.model.Reset()
	s.sample(result)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		s.model.Tick(cfg.Dt)
		result.StepsTaken++
		if s.recorder != nil {
			s.recorder.RecordTick()
		}

		for _, m := range s.metrics {
			m.Observe(s.model)
		}
		for _, obs := range s.observers {
			obs.OnTick(s.model, i)
		}

		done := false
		if f, ok := s.model.(finisher); ok && f.Done() {
			done = true
		}
		if (i+1)%every == 0 || done {
			s.sample(result)
		}
		if done {
			result.Finished = true
			break
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) sample(r *Result) {
	r.Times = append(r.Times, s.model.Time())
	for _, p := range s.probes {
		r.Series[p.Name] = append(r.Series[p.Name], p.Fn(s.model))
	}
}

func (s *Simulator) finish(r *Result) {
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
	if s.recorder != nil {
		s.recorder.SetAll(s.metrics)
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %f", cfg.Duration)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("sim: sample_every must not be negative, got %d", cfg.SampleEvery)
	}
	return nil
}
