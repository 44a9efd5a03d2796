package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/allvis/internal/config"
	"github.com/san-kum/allvis/internal/logging"
	"github.com/san-kum/allvis/internal/metrics"
	"github.com/san-kum/allvis/internal/physics"
	"github.com/san-kum/allvis/internal/sim"
)

// Experiment is one configured visualizer, ready to trace, sample or run
// headlessly.
type Experiment struct {
	vis      Visualizer
	cfg      *config.Config
	registry *Registry

	recorder  *metrics.Recorder
	logger    *slog.Logger
	model     physics.Model
	simulator *sim.Simulator
}

type Option func(*Experiment)

// WithRecorder exports trace lengths and simulation activity.
func WithRecorder(r *metrics.Recorder) Option {
	return func(e *Experiment) { e.recorder = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

func New(reg *Registry, name string, cfg *config.Config, opts ...Option) (*Experiment, error) {
	vis, err := reg.Get(name)
	if err != nil {
		return nil, err
	}
	e := &Experiment{
		vis:      vis,
		cfg:      cfg,
		registry: reg,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Experiment) Visualizer() Visualizer { return e.vis }

func (e *Experiment) Trace() (TraceView, error) {
	tv, err := e.registry.Trace(e.vis.Name, e.cfg)
	if err != nil {
		return nil, err
	}
	if e.recorder != nil {
		e.recorder.RecordTrace(e.vis.Name, tv.Len())
	}
	e.logger.Debug("trace generated", "visualizer", e.vis.Name, "steps", tv.Len(), "result", tv.Result())
	return tv, nil
}

func (e *Experiment) Sample() (*Sampling, error) {
	return e.registry.Sample(e.vis.Name, e.cfg)
}

// Setup builds the model and a simulator carrying every metric that applies
// to it plus the visualizer's probes.
func (e *Experiment) Setup() error {
	model, err := e.registry.Model(e.vis.Name, e.cfg)
	if err != nil {
		return err
	}
	e.model = model
	e.simulator = sim.New(model)
	e.simulator.AddMetric(metrics.ForModel(model)...)
	if e.vis.Probes != nil {
		e.simulator.AddProbe(e.vis.Probes(model)...)
	}
	if e.recorder != nil {
		e.simulator.SetRecorder(e.recorder)
	}
	return nil
}

// Run simulates for the configured duration. Setup runs first if needed.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		if err := e.Setup(); err != nil {
			return nil, err
		}
	}
	cfg := sim.Config{
		Dt:          e.cfg.Sim.Dt,
		Duration:    e.cfg.Sim.Duration,
		SampleEvery: e.cfg.Sim.SampleEvery,
	}
	e.logger.Info("simulation started", "visualizer", e.vis.Name, "dt", cfg.Dt, "duration", cfg.Duration)
	res, err := e.simulator.Run(ctx, cfg)
	if err != nil {
		return res, fmt.Errorf("experiment: %s: %w", e.vis.Name, err)
	}
	e.logger.Info("simulation finished", "visualizer", e.vis.Name, "steps", res.StepsTaken, "finished", res.Finished)
	return res, nil
}

// Model is the model built by Setup, or nil before it.
func (e *Experiment) Model() physics.Model { return e.model }

func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }
