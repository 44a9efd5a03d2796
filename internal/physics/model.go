package physics

import "github.com/san-kum/allvis/internal/dynamo"

// Model is a continuous simulation advanced by fixed timesteps.
type Model interface {
	// Tick advances the state by dt seconds.
	Tick(dt float64)
	// Reset restores the state the model was constructed with.
	Reset()
	// Time is the simulated time since the last reset.
	Time() float64
}

// VectorField is sampled at a point and time.
type VectorField interface {
	Sample(p dynamo.Vec2, t float64) dynamo.Vec2
}

// ScalarField is sampled at a point and time.
type ScalarField interface {
	Sample(p dynamo.Vec2, t float64) float64
}

// Bounds is an axis-aligned box.
type Bounds struct {
	MinX float64 `yaml:"min_x" mapstructure:"min_x"`
	MinY float64 `yaml:"min_y" mapstructure:"min_y"`
	MaxX float64 `yaml:"max_x" mapstructure:"max_x"`
	MaxY float64 `yaml:"max_y" mapstructure:"max_y"`
}

func Box(w, h float64) Bounds { return Bounds{MaxX: w, MaxY: h} }

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

func (b Bounds) Contains(p dynamo.Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Body is a rigid disc.
type Body struct {
	Pos    dynamo.Vec2 `yaml:"pos"`
	Vel    dynamo.Vec2 `yaml:"vel"`
	Radius float64     `yaml:"radius"`
	Mass   float64     `yaml:"mass"`
}

func (b Body) Momentum() dynamo.Vec2 { return b.Vel.Scale(b.Mass) }

func (b Body) KineticEnergy() float64 { return 0.5 * b.Mass * b.Vel.LengthSq() }

func cloneBodies(bodies []Body) []Body {
	out := make([]Body, len(bodies))
	copy(out, bodies)
	return out
}

func totalMomentum(bodies []Body) dynamo.Vec2 {
	var p dynamo.Vec2
	for _, b := range bodies {
		p = p.Add(b.Momentum())
	}
	return p
}

func totalKineticEnergy(bodies []Body) float64 {
	ke := 0.0
	for _, b := range bodies {
		ke += b.KineticEnergy()
	}
	return ke
}

func paramError(name string, value float64, err error) error {
	return &dynamo.ParamError{Name: name, Value: value, Wrapped: err}
}

var (
	_ Model       = (*Collisions)(nil)
	_ Model       = (*GasBox)(nil)
	_ Model       = (*Projectile)(nil)
	_ Model       = (*String)(nil)
	_ Model       = (*WaveAnimation)(nil)
	_ VectorField = (*Field)(nil)
	_ ScalarField = (*Superposition)(nil)

	_ dynamo.Configurable = (*Collisions)(nil)
	_ dynamo.Configurable = (*GasBox)(nil)
	_ dynamo.Configurable = (*Projectile)(nil)
	_ dynamo.Configurable = (*String)(nil)
)
