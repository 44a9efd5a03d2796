package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/allvis/internal/config"
	"github.com/san-kum/allvis/internal/physics"
	"github.com/san-kum/allvis/internal/sim"
)

// Kind says how a visualizer produces its frames.
type Kind int

const (
	// Discrete visualizers replay a finite step trace.
	Discrete Kind = iota
	// Continuous visualizers tick a physics model at a fixed timestep.
	Continuous
	// Sampled visualizers evaluate stateless functions over a domain.
	Sampled
)

func (k Kind) String() string {
	switch k {
	case Discrete:
		return "discrete"
	case Continuous:
		return "continuous"
	case Sampled:
		return "sampled"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Visualizer describes one entry of the registry. Exactly the builders that
// match Kind are set, except that a sampled visualizer may also offer an
// animated Model.
type Visualizer struct {
	Name  string
	Title string
	Kind  Kind

	Trace  func(cfg *config.Config) (TraceView, error)
	Model  func(cfg *config.Config) (physics.Model, error)
	Sample func(cfg *config.Config) (*Sampling, error)
	Probes func(m physics.Model) []sim.Probe
}

type Registry struct {
	visualizers map[string]Visualizer
	traces      *traceCaches
}

// NewRegistry returns a registry holding every built-in visualizer.
func NewRegistry() *Registry {
	r := &Registry{
		visualizers: make(map[string]Visualizer),
		traces:      newTraceCaches(),
	}

	r.Register(Visualizer{Name: "twosum", Title: "Two Sum", Kind: Discrete, Trace: r.twoSum})
	r.Register(Visualizer{Name: "palindrome", Title: "Valid Palindrome", Kind: Discrete, Trace: r.palindrome})
	r.Register(Visualizer{Name: "perceptron", Title: "Perceptron", Kind: Discrete, Trace: r.perceptron})

	r.Register(Visualizer{Name: "collision", Title: "Elastic Collisions", Kind: Continuous, Model: collisionModel, Probes: collisionProbes})
	r.Register(Visualizer{Name: "gas", Title: "Ideal Gas", Kind: Continuous, Model: gasModel, Probes: gasProbes})
	r.Register(Visualizer{Name: "projectile", Title: "Projectile Motion", Kind: Continuous, Model: projectileModel, Probes: projectileProbes})
	r.Register(Visualizer{Name: "string", Title: "Vibrating String", Kind: Continuous, Model: stringModel, Probes: stringProbes})

	r.Register(Visualizer{Name: "field", Title: "Electric Field", Kind: Sampled, Sample: fieldSampling})
	r.Register(Visualizer{Name: "wave", Title: "Wave Interference", Kind: Sampled, Sample: waveSampling, Model: waveModel, Probes: waveProbes})
	r.Register(Visualizer{Name: "photoelectric", Title: "Photoelectric Effect", Kind: Sampled, Sample: photoelectricSampling})

	return r
}

// Register adds or replaces a visualizer.
func (r *Registry) Register(v Visualizer) {
	r.visualizers[v.Name] = v
}

func (r *Registry) Get(name string) (Visualizer, error) {
	v, ok := r.visualizers[name]
	if !ok {
		return Visualizer{}, fmt.Errorf("%w: %q", ErrUnknownVisualizer, name)
	}
	return v, nil
}

// List returns visualizer names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.visualizers))
	for name := range r.visualizers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListKind returns the sorted names of visualizers of one kind.
func (r *Registry) ListKind(k Kind) []string {
	var names []string
	for _, name := range r.List() {
		if r.visualizers[name].Kind == k {
			names = append(names, name)
		}
	}
	return names
}

// Trace builds the trace of a discrete visualizer from cfg.
func (r *Registry) Trace(name string, cfg *config.Config) (TraceView, error) {
	v, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if v.Trace == nil {
		return nil, fmt.Errorf("%w: %s is %s, not discrete", ErrWrongKind, name, v.Kind)
	}
	return v.Trace(cfg)
}

// Model builds the physics model of a continuous or animated visualizer.
func (r *Registry) Model(name string, cfg *config.Config) (physics.Model, error) {
	v, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if v.Model == nil {
		return nil, fmt.Errorf("%w: %s has no model", ErrWrongKind, name)
	}
	return v.Model(cfg)
}

// Sample evaluates a sampled visualizer over its configured domain.
func (r *Registry) Sample(name string, cfg *config.Config) (*Sampling, error) {
	v, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if v.Sample == nil {
		return nil, fmt.Errorf("%w: %s is %s, not sampled", ErrWrongKind, name, v.Kind)
	}
	return v.Sample(cfg)
}
