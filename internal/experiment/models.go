package experiment

import (
	"fmt"

	"github.com/san-kum/allvis/internal/config"
	"github.com/san-kum/allvis/internal/dynamo"
	"github.com/san-kum/allvis/internal/physics"
	"github.com/san-kum/allvis/internal/sim"
)

func collisionModel(cfg *config.Config) (physics.Model, error) {
	if len(cfg.Collision.Bodies) == 0 {
		return nil, ErrNoBodies
	}
	return physics.NewCollisions(cfg.Collision.CollisionParams, cfg.Collision.Bodies), nil
}

func gasModel(cfg *config.Config) (physics.Model, error) {
	if cfg.Gas.Particles <= 0 {
		return nil, fmt.Errorf("%w: gas.particles must be positive", config.ErrInvalid)
	}
	return physics.NewGasBox(cfg.Gas), nil
}

func projectileModel(cfg *config.Config) (physics.Model, error) {
	p, err := physics.NewProjectile(cfg.Projectile)
	if err != nil {
		return nil, fmt.Errorf("experiment: projectile: %w", err)
	}
	return p, nil
}

func stringModel(cfg *config.Config) (physics.Model, error) {
	s, err := physics.NewString(cfg.String)
	if err != nil {
		return nil, fmt.Errorf("experiment: string: %w", err)
	}
	return s, nil
}

func waveModel(cfg *config.Config) (physics.Model, error) {
	w, err := superposition(cfg)
	if err != nil {
		return nil, err
	}
	return physics.NewWaveAnimation(w, square(cfg.Wave.Extent)), nil
}

// probe builds a sim.Probe for one concrete model type.
func probe[M physics.Model](name string, fn func(M) float64) sim.Probe {
	return sim.Probe{Name: name, Fn: func(m physics.Model) float64 {
		if v, ok := m.(M); ok {
			return fn(v)
		}
		return 0
	}}
}

func collisionProbes(physics.Model) []sim.Probe {
	return []sim.Probe{
		probe("kinetic_energy", (*physics.Collisions).KineticEnergy),
		probe("momentum_x", func(c *physics.Collisions) float64 { return c.Momentum().X }),
		probe("momentum_y", func(c *physics.Collisions) float64 { return c.Momentum().Y }),
		probe("collisions", func(c *physics.Collisions) float64 { return float64(c.Count()) }),
	}
}

func gasProbes(physics.Model) []sim.Probe {
	return []sim.Probe{
		probe("pressure", (*physics.GasBox).Pressure),
		probe("temperature", (*physics.GasBox).Temperature),
		probe("compressibility", (*physics.GasBox).Compressibility),
	}
}

func projectileProbes(physics.Model) []sim.Probe {
	return []sim.Probe{
		probe("x", func(p *physics.Projectile) float64 { return p.Position().X }),
		probe("y", func(p *physics.Projectile) float64 { return p.Position().Y }),
		probe("energy", (*physics.Projectile).Energy),
	}
}

func stringProbes(physics.Model) []sim.Probe {
	return []sim.Probe{
		probe("midpoint", func(s *physics.String) float64 {
			u := s.Displacement()
			return u[len(u)/2]
		}),
		probe("energy", (*physics.String).Energy),
	}
}

// waveProbes follows the displacement at a point on the far screen, the
// series the spectrum analysis reads.
func waveProbes(m physics.Model) []sim.Probe {
	var at dynamo.Vec2
	if a, ok := m.(*physics.WaveAnimation); ok {
		at = dynamo.V(a.Bounds.MaxX, 0)
	}
	return []sim.Probe{
		probe("displacement", func(a *physics.WaveAnimation) float64 { return a.Sample(at, a.Time()) }),
	}
}

func square(extent float64) physics.Bounds {
	if extent <= 0 {
		extent = 10
	}
	return physics.Bounds{MinX: -extent, MinY: -extent, MaxX: extent, MaxY: extent}
}
