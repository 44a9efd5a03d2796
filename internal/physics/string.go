package physics

import (
	"math"

	"github.com/san-kum/allvis/internal/dynamo"
	"github.com/san-kum/allvis/internal/integrators"
)

type StringParams struct {
	Points     int     `yaml:"points" mapstructure:"points"`
	Length     float64 `yaml:"length" mapstructure:"length"`
	WaveSpeed  float64 `yaml:"wave_speed" mapstructure:"wave_speed"`
	Damping    float64 `yaml:"damping" mapstructure:"damping"`
	Amplitude  float64 `yaml:"amplitude" mapstructure:"amplitude"`
	Integrator string  `yaml:"integrator" mapstructure:"integrator"`
}

func DefaultStringParams() StringParams {
	return StringParams{
		Points:     64,
		Length:     1,
		WaveSpeed:  1,
		Damping:    0,
		Amplitude:  0.5,
		Integrator: "verlet",
	}
}

// stringSystem discretizes u_tt = c^2 u_xx - damping*u_t over n points with
// fixed ends. State is [u..., u_t...].
type stringSystem struct {
	n                int
	c2, damping, dx2 float64
}

func (s stringSystem) StateDim() int { return 2 * s.n }

func (s stringSystem) Derive(x dynamo.State, _ float64) dynamo.State {
	n := s.n
	dx := make(dynamo.State, 2*n)
	for i := 1; i < n-1; i++ {
		dx[i] = x[n+i]
		dx[n+i] = s.c2*(x[i-1]-2*x[i]+x[i+1])/s.dx2 - s.damping*x[n+i]
	}
	return dx
}

// String is a plucked string with fixed ends, the stepped counterpart of the
// stateless Standing helper.
type String struct {
	Params StringParams

	sys     stringSystem
	stepper dynamo.Integrator
	state   dynamo.State
	t       float64
}

func NewString(params StringParams) (*String, error) {
	if params.Points < 3 {
		params.Points = 3
	}
	if params.Integrator == "" {
		params.Integrator = "verlet"
	}
	stepper, err := integrators.New(params.Integrator)
	if err != nil {
		return nil, err
	}
	s := &String{Params: params, stepper: stepper}
	s.Reset()
	return s, nil
}

// Reset plucks the string at its midpoint into a triangle at rest.
func (s *String) Reset() {
	p := s.Params
	n := p.Points
	h := p.Length / float64(n-1)
	s.sys = stringSystem{n: n, c2: p.WaveSpeed * p.WaveSpeed, damping: p.Damping, dx2: h * h}

	s.state = make(dynamo.State, 2*n)
	mid := n / 2
	for i := 1; i < n-1; i++ {
		if i <= mid {
			s.state[i] = p.Amplitude * float64(i) / float64(mid)
		} else {
			s.state[i] = p.Amplitude * float64(n-1-i) / float64(n-1-mid)
		}
	}
	s.t = 0
}

// Tick splits dt into substeps no longer than half the CFL limit, so frame
// rate timesteps stay stable on fine strings.
func (s *String) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	n := 1
	if limit := 0.5 * s.StableStep(); limit > 0 && dt > limit {
		n = int(math.Ceil(dt / limit))
	}
	h := dt / float64(n)
	for range n {
		next := s.stepper.Step(s.sys, s.state, s.t, h)
		if !next.IsValid() {
			return
		}
		s.state = next
		s.t += h
	}
}

func (s *String) Time() float64 { return s.t }

// Displacement returns a copy of the point displacements.
func (s *String) Displacement() []float64 {
	out := make([]float64, s.sys.n)
	copy(out, s.state[:s.sys.n])
	return out
}

// Energy is the discrete kinetic plus elastic energy per unit density.
func (s *String) Energy() float64 {
	n := s.sys.n
	h2 := s.sys.dx2
	ke, pe := 0.0, 0.0
	for i := 0; i < n; i++ {
		v := s.state[n+i]
		ke += 0.5 * v * v
		if i < n-1 {
			du := s.state[i+1] - s.state[i]
			pe += 0.5 * s.sys.c2 * du * du / h2
		}
	}
	return ke + pe
}

// StableStep is the largest explicit timestep satisfying the CFL limit.
func (s *String) StableStep() float64 {
	if s.Params.WaveSpeed <= 0 {
		return 0
	}
	return s.Params.Length / float64(s.sys.n-1) / s.Params.WaveSpeed
}

func (s *String) GetParams() map[string]float64 {
	return map[string]float64{
		"wave_speed": s.Params.WaveSpeed,
		"damping":    s.Params.Damping,
		"length":     s.Params.Length,
		"amplitude":  s.Params.Amplitude,
	}
}

func (s *String) SetParam(name string, value float64) error {
	switch name {
	case "wave_speed":
		if value <= 0 {
			return paramError(name, value, dynamo.ErrParameterBounds)
		}
		s.Params.WaveSpeed = value
	case "damping":
		if value < 0 {
			return paramError(name, value, dynamo.ErrParameterBounds)
		}
		s.Params.Damping = value
	case "length":
		if value <= 0 {
			return paramError(name, value, dynamo.ErrParameterBounds)
		}
		s.Params.Length = value
	case "amplitude":
		s.Params.Amplitude = value
	default:
		return paramError(name, value, dynamo.ErrUnknownParameter)
	}
	s.Reset()
	return nil
}
