package physics

import (
	"math"

	"github.com/san-kum/allvis/internal/dynamo"
	"github.com/san-kum/allvis/internal/integrators"
)

// ProjectileParams describes a launch from the origin with y pointing up.
type ProjectileParams struct {
	Speed      float64 `yaml:"speed" mapstructure:"speed"`
	Angle      float64 `yaml:"angle" mapstructure:"angle"` // degrees above horizontal
	Height     float64 `yaml:"height" mapstructure:"height"`
	Gravity    float64 `yaml:"gravity" mapstructure:"gravity"`
	Drag       float64 `yaml:"drag" mapstructure:"drag"` // linear, per unit mass
	Integrator string  `yaml:"integrator" mapstructure:"integrator"`
}

func DefaultProjectileParams() ProjectileParams {
	return ProjectileParams{
		Speed:      20,
		Angle:      45,
		Gravity:    9.81,
		Integrator: "rk4",
	}
}

// projectileSystem is the state [x, y, vx, vy].
type projectileSystem struct {
	gravity, drag float64
}

func (s projectileSystem) StateDim() int { return 4 }

func (s projectileSystem) Derive(x dynamo.State, _ float64) dynamo.State {
	return dynamo.State{
		x[2],
		x[3],
		-s.drag * x[2],
		-s.gravity - s.drag*x[3],
	}
}

// Projectile integrates a point mass until it lands. Once landed, Tick is a
// no-op and the state stays pinned to the interpolated ground contact.
type Projectile struct {
	Params ProjectileParams

	sys     projectileSystem
	stepper dynamo.Integrator
	state   dynamo.State
	t       float64
	apex    float64
	landed  bool
	path    []dynamo.Vec2
}

// NewProjectile fails only for an unknown integrator name.
func NewProjectile(params ProjectileParams) (*Projectile, error) {
	if params.Integrator == "" {
		params.Integrator = "rk4"
	}
	stepper, err := integrators.New(params.Integrator)
	if err != nil {
		return nil, err
	}
	p := &Projectile{Params: params, stepper: stepper}
	p.Reset()
	return p, nil
}

func (p *Projectile) initialState() dynamo.State {
	rad := p.Params.Angle * math.Pi / 180
	return dynamo.State{
		0,
		p.Params.Height,
		p.Params.Speed * math.Cos(rad),
		p.Params.Speed * math.Sin(rad),
	}
}

func (p *Projectile) Reset() {
	p.sys = projectileSystem{gravity: p.Params.Gravity, drag: p.Params.Drag}
	p.state = p.initialState()
	p.t = 0
	p.apex = p.state[1]
	p.landed = false
	p.path = []dynamo.Vec2{p.Position()}
}

func (p *Projectile) Tick(dt float64) {
	if p.landed || dt <= 0 {
		return
	}
	next := p.stepper.Step(p.sys, p.state, p.t, dt)
	if !next.IsValid() {
		p.landed = true
		return
	}

	if next[1] <= 0 {
		// Interpolate the crossing so range does not depend on dt.
		frac := 1.0
		if d := p.state[1] - next[1]; d > 0 {
			frac = p.state[1] / d
		}
		for i := range next {
			next[i] = p.state[i] + frac*(next[i]-p.state[i])
		}
		next[1] = 0
		p.t += frac * dt
		p.landed = true
	} else {
		p.t += dt
	}

	p.state = next
	if next[1] > p.apex {
		p.apex = next[1]
	}
	p.path = append(p.path, p.Position())
}

func (p *Projectile) Time() float64 { return p.t }

func (p *Projectile) Landed() bool { return p.landed }

// Done reports landing, ending continuous playback.
func (p *Projectile) Done() bool { return p.landed }

func (p *Projectile) State() dynamo.State { return p.state.Clone() }

func (p *Projectile) Position() dynamo.Vec2 { return dynamo.V(p.state[0], p.state[1]) }

func (p *Projectile) Velocity() dynamo.Vec2 { return dynamo.V(p.state[2], p.state[3]) }

// Path is every position visited since the last reset.
func (p *Projectile) Path() []dynamo.Vec2 {
	out := make([]dynamo.Vec2, len(p.path))
	copy(out, p.path)
	return out
}

// Range is the horizontal distance covered so far.
func (p *Projectile) Range() float64 { return p.state[0] }

// Apex is the highest altitude reached so far.
func (p *Projectile) Apex() float64 { return p.apex }

// FlightTime is the landing time, or the elapsed time while still airborne.
func (p *Projectile) FlightTime() float64 { return p.t }

// Energy is the specific mechanical energy v^2/2 + g*y.
func (p *Projectile) Energy() float64 {
	return 0.5*p.Velocity().LengthSq() + p.Params.Gravity*p.state[1]
}

// AnalyticRange is the drag-free range for launch height h:
// x = v cos(a) * (v sin(a) + sqrt((v sin(a))^2 + 2gh)) / g.
func (p *Projectile) AnalyticRange() float64 {
	g := p.Params.Gravity
	if g <= 0 {
		return math.Inf(1)
	}
	return p.initialSpeedX() * p.AnalyticFlightTime()
}

func (p *Projectile) AnalyticFlightTime() float64 {
	g := p.Params.Gravity
	if g <= 0 {
		return math.Inf(1)
	}
	vy := p.initialSpeedY()
	return (vy + math.Sqrt(vy*vy+2*g*p.Params.Height)) / g
}

func (p *Projectile) AnalyticApex() float64 {
	g := p.Params.Gravity
	vy := p.initialSpeedY()
	if g <= 0 || vy <= 0 {
		return p.Params.Height
	}
	return p.Params.Height + vy*vy/(2*g)
}

func (p *Projectile) initialSpeedX() float64 {
	return p.Params.Speed * math.Cos(p.Params.Angle*math.Pi/180)
}

func (p *Projectile) initialSpeedY() float64 {
	return p.Params.Speed * math.Sin(p.Params.Angle*math.Pi/180)
}

func (p *Projectile) GetParams() map[string]float64 {
	return map[string]float64{
		"speed":   p.Params.Speed,
		"angle":   p.Params.Angle,
		"height":  p.Params.Height,
		"gravity": p.Params.Gravity,
		"drag":    p.Params.Drag,
	}
}

// SetParam changes a launch parameter and resets the flight.
func (p *Projectile) SetParam(name string, value float64) error {
	switch name {
	case "speed":
		if value < 0 {
			return paramError(name, value, dynamo.ErrParameterBounds)
		}
		p.Params.Speed = value
	case "angle":
		if value < -90 || value > 90 {
			return paramError(name, value, dynamo.ErrParameterBounds)
		}
		p.Params.Angle = value
	case "height":
		if value < 0 {
			return paramError(name, value, dynamo.ErrParameterBounds)
		}
		p.Params.Height = value
	case "gravity":
		if value <= 0 {
			return paramError(name, value, dynamo.ErrParameterBounds)
		}
		p.Params.Gravity = value
	case "drag":
		if value < 0 {
			return paramError(name, value, dynamo.ErrParameterBounds)
		}
		p.Params.Drag = value
	default:
		return paramError(name, value, dynamo.ErrUnknownParameter)
	}
	p.Reset()
	return nil
}
