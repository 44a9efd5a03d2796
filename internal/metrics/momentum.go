package metrics

import (
	"math"

	"github.com/san-kum/allvis/internal/dynamo"
	"github.com/san-kum/allvis/internal/physics"
)

// MomentumDrift is the largest change in total momentum magnitude from the
// first observation. Walls and gravity move it; collisions alone must not.
type MomentumDrift struct {
	name     string
	initial  dynamo.Vec2
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (d *MomentumDrift) Name() string { return d.name }

func (d *MomentumDrift) Observe(m physics.Model) {
	mm, ok := m.(momentous)
	if !ok {
		return
	}
	p := mm.Momentum()
	if d.samples == 0 {
		d.initial = p
	}
	d.samples++
	d.maxDrift = math.Max(d.maxDrift, p.Dist(d.initial))
}

func (d *MomentumDrift) Value() float64 { return d.maxDrift }

func (d *MomentumDrift) Reset() {
	d.initial = dynamo.Vec2{}
	d.maxDrift = 0
	d.samples = 0
}

// CollisionCount is the model's collision counter at the last observation.
type CollisionCount struct {
	last int
}

func NewCollisionCount() *CollisionCount { return &CollisionCount{} }

func (c *CollisionCount) Name() string { return "collisions" }

func (c *CollisionCount) Observe(m physics.Model) {
	if cm, ok := m.(counter); ok {
		c.last = cm.Count()
	}
}

func (c *CollisionCount) Value() float64 { return float64(c.last) }

func (c *CollisionCount) Reset() { c.last = 0 }

// Pressure is the mean of the model's windowed pressure estimate.
type Pressure struct {
	sum     float64
	samples int
}

func NewPressure() *Pressure { return &Pressure{} }

func (p *Pressure) Name() string { return "pressure" }

func (p *Pressure) Observe(m physics.Model) {
	if pm, ok := m.(pressurized); ok {
		p.sum += pm.Pressure()
		p.samples++
	}
}

func (p *Pressure) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.sum / float64(p.samples)
}

func (p *Pressure) Reset() {
	p.sum = 0
	p.samples = 0
}
