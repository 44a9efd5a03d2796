package physics

import (
	"math"
	"math/rand"

	"github.com/san-kum/allvis/internal/dynamo"
)

type GasParams struct {
	Particles   int     `yaml:"particles" mapstructure:"particles"`
	Mass        float64 `yaml:"mass" mapstructure:"mass"`
	Radius      float64 `yaml:"radius" mapstructure:"radius"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	Boltzmann   float64 `yaml:"boltzmann" mapstructure:"boltzmann"`
	Width       float64 `yaml:"width" mapstructure:"width"`
	Height      float64 `yaml:"height" mapstructure:"height"`
	// Window is the averaging span, in simulated seconds, of the pressure
	// estimate.
	Window float64 `yaml:"window" mapstructure:"window"`
	Seed   int64   `yaml:"seed" mapstructure:"seed"`
}

func DefaultGasParams() GasParams {
	return GasParams{
		Particles:   200,
		Mass:        1,
		Radius:      0.05,
		Temperature: 1,
		Boltzmann:   1,
		Width:       10,
		Height:      10,
		Window:      2,
		Seed:        1,
	}
}

type impulse struct {
	t float64
	j float64
}

// GasBox is an ideal gas: point-like particles that only interact with the
// walls. Pressure is the wall impulse per unit time per unit perimeter.
type GasBox struct {
	Params    GasParams
	Particles []Body

	t        float64
	impulses []impulse
	total    float64
}

func NewGasBox(params GasParams) *GasBox {
	g := &GasBox{Params: params}
	g.Reset()
	return g
}

// Reset redraws the particles from the seeded RNG, so a reset box is
// identical to a freshly constructed one.
func (g *GasBox) Reset() {
	p := g.Params
	rng := rand.New(rand.NewSource(p.Seed))
	sigma := 0.0
	if p.Mass > 0 && p.Temperature > 0 {
		sigma = math.Sqrt(p.Boltzmann * p.Temperature / p.Mass)
	}

	g.Particles = make([]Body, max(p.Particles, 0))
	for i := range g.Particles {
		g.Particles[i] = Body{
			Pos: dynamo.V(
				p.Radius+rng.Float64()*(p.Width-2*p.Radius),
				p.Radius+rng.Float64()*(p.Height-2*p.Radius),
			),
			Vel:    dynamo.V(rng.NormFloat64()*sigma, rng.NormFloat64()*sigma),
			Radius: p.Radius,
			Mass:   p.Mass,
		}
	}
	g.t = 0
	g.impulses = g.impulses[:0]
	g.total = 0
}

func (g *GasBox) Tick(dt float64) {
	w, h := g.Params.Width, g.Params.Height
	j := 0.0
	for i := range g.Particles {
		b := &g.Particles[i]
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))

		if b.Pos.X-b.Radius < 0 {
			b.Pos.X = b.Radius
			j += 2 * b.Mass * math.Abs(b.Vel.X)
			b.Vel.X = math.Abs(b.Vel.X)
		} else if b.Pos.X+b.Radius > w {
			b.Pos.X = w - b.Radius
			j += 2 * b.Mass * math.Abs(b.Vel.X)
			b.Vel.X = -math.Abs(b.Vel.X)
		}

		if b.Pos.Y-b.Radius < 0 {
			b.Pos.Y = b.Radius
			j += 2 * b.Mass * math.Abs(b.Vel.Y)
			b.Vel.Y = math.Abs(b.Vel.Y)
		} else if b.Pos.Y+b.Radius > h {
			b.Pos.Y = h - b.Radius
			j += 2 * b.Mass * math.Abs(b.Vel.Y)
			b.Vel.Y = -math.Abs(b.Vel.Y)
		}
	}
	g.t += dt
	g.record(j)
}

func (g *GasBox) record(j float64) {
	if j > 0 {
		g.impulses = append(g.impulses, impulse{t: g.t, j: j})
		g.total += j
	}
	cutoff := g.t - g.Params.Window
	drop := 0
	for drop < len(g.impulses) && g.impulses[drop].t <= cutoff {
		g.total -= g.impulses[drop].j
		drop++
	}
	if drop > 0 {
		g.impulses = append(g.impulses[:0], g.impulses[drop:]...)
	}
}

func (g *GasBox) Time() float64 { return g.t }

// Pressure is the 2D pressure (force per unit length) averaged over the
// window, or over the elapsed time while the window is still filling.
func (g *GasBox) Pressure() float64 {
	span := math.Min(g.t, g.Params.Window)
	perimeter := 2 * (g.Params.Width + g.Params.Height)
	if span <= 0 || perimeter <= 0 {
		return 0
	}
	return g.total / (span * perimeter)
}

func (g *GasBox) MeanKineticEnergy() float64 {
	if len(g.Particles) == 0 {
		return 0
	}
	return totalKineticEnergy(g.Particles) / float64(len(g.Particles))
}

// Temperature follows equipartition in two dimensions: <KE> = kT.
func (g *GasBox) Temperature() float64 {
	if g.Params.Boltzmann <= 0 {
		return 0
	}
	return g.MeanKineticEnergy() / g.Params.Boltzmann
}

func (g *GasBox) Area() float64 { return g.Params.Width * g.Params.Height }

// IdealPressure is NkT/A for the measured temperature.
func (g *GasBox) IdealPressure() float64 {
	a := g.Area()
	if a <= 0 {
		return 0
	}
	return float64(len(g.Particles)) * g.Params.Boltzmann * g.Temperature() / a
}

// Compressibility is PV/NkT; it approaches 1 once the window has filled.
func (g *GasBox) Compressibility() float64 {
	ideal := g.IdealPressure()
	if ideal == 0 {
		return 0
	}
	return g.Pressure() / ideal
}

func (g *GasBox) KineticEnergy() float64 { return totalKineticEnergy(g.Particles) }

func (g *GasBox) GetParams() map[string]float64 {
	return map[string]float64{
		"particles":   float64(g.Params.Particles),
		"mass":        g.Params.Mass,
		"temperature": g.Params.Temperature,
		"width":       g.Params.Width,
		"height":      g.Params.Height,
		"window":      g.Params.Window,
	}
}

// SetParam changes a parameter and resets the box, since every parameter
// changes the initial distribution.
func (g *GasBox) SetParam(name string, value float64) error {
	if value <= 0 {
		if _, ok := g.GetParams()[name]; !ok {
			return paramError(name, value, dynamo.ErrUnknownParameter)
		}
		return paramError(name, value, dynamo.ErrParameterBounds)
	}
	switch name {
	case "particles":
		g.Params.Particles = int(value)
	case "mass":
		g.Params.Mass = value
	case "temperature":
		g.Params.Temperature = value
	case "width":
		g.Params.Width = value
	case "height":
		g.Params.Height = value
	case "window":
		g.Params.Window = value
	default:
		return paramError(name, value, dynamo.ErrUnknownParameter)
	}
	g.Reset()
	return nil
}
