package playback

import "github.com/san-kum/allvis/internal/physics"

// Finisher is implemented by continuous models that reach a natural end,
// such as a projectile that has landed.
type Finisher interface {
	Done() bool
}

// source is what the cursor walks over. Cursor values are step indices for
// a trace and tick counts for a model.
type source interface {
	// last is the final cursor value, or -1 when unbounded.
	last() int
	// advance moves from cursor to cursor+1 and reports whether the source
	// has reached its end.
	advance(cursor int) bool
	// seek restores the state at cursor.
	seek(cursor int)
	elapsed(cursor int) float64
}

type discrete struct {
	n        int
	interval float64
}

func (d *discrete) last() int { return d.n - 1 }

func (d *discrete) advance(cursor int) bool { return cursor+1 >= d.n-1 }

func (d *discrete) seek(int) {}

func (d *discrete) elapsed(cursor int) float64 { return float64(cursor) * d.interval }

type continuous struct {
	model physics.Model
	dt    float64
}

func (c *continuous) last() int { return -1 }

func (c *continuous) advance(int) bool {
	c.model.Tick(c.dt)
	return c.done()
}

func (c *continuous) done() bool {
	f, ok := c.model.(Finisher)
	return ok && f.Done()
}

// seek replays the model from its reset state. Models are deterministic
// from reset, so this is how a continuous source steps backwards.
func (c *continuous) seek(cursor int) {
	c.model.Reset()
	for i := 0; i < cursor && !c.done(); i++ {
		c.model.Tick(c.dt)
	}
}

func (c *continuous) elapsed(int) float64 { return c.model.Time() }
