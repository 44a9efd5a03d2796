package sim

import "github.com/san-kum/allvis/internal/physics"

// Config bounds a headless run.
type Config struct {
	Dt       float64 `yaml:"dt" mapstructure:"dt"`
	Duration float64 `yaml:"duration" mapstructure:"duration"`
	// SampleEvery records probes on every nth tick; zero means every tick.
	SampleEvery int `yaml:"sample_every" mapstructure:"sample_every"`
}

// Probe extracts one scalar from a model for the result series.
type Probe struct {
	Name string
	Fn   func(physics.Model) float64
}

type Observer interface {
	OnTick(m physics.Model, step int)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(m physics.Model, step int)

func (f ObserverFunc) OnTick(m physics.Model, step int) { f(m, step) }

type Result struct {
	Times      []float64
	Series     map[string][]float64
	Metrics    map[string]float64
	StepsTaken int
	// Finished is set when the model ended the run itself, before Duration.
	Finished bool
}

// Column returns a probe's series, or nil when no such probe ran.
func (r *Result) Column(name string) []float64 {
	return r.Series[name]
}
