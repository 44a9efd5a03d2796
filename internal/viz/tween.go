package viz

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// markerDuration is how long a pointer marker takes to slide one step.
const markerDuration = 250 * time.Millisecond

// Marker eases a fractional cursor position toward the controller's cursor
// so pointer carets slide between steps instead of jumping.
type Marker struct {
	pos    float32
	target int
	tween  *gween.Tween
}

func NewMarker(at int) *Marker {
	return &Marker{pos: float32(at), target: at}
}

// MoveTo starts a slide from the current position. A jump of more than one
// step, as on reset, lands immediately.
func (m *Marker) MoveTo(at int) {
	if at == m.target {
		return
	}
	d := at - m.target
	m.target = at
	if d > 1 || d < -1 {
		m.pos, m.tween = float32(at), nil
		return
	}
	m.tween = gween.New(m.pos, float32(at), float32(markerDuration.Seconds()), ease.OutCubic)
}

// Update advances the slide by dt and returns the position.
func (m *Marker) Update(dt time.Duration) float64 {
	if m.tween != nil {
		pos, done := m.tween.Update(float32(dt.Seconds()))
		m.pos = pos
		if done {
			m.pos, m.tween = float32(m.target), nil
		}
	}
	return float64(m.pos)
}

func (m *Marker) Pos() float64 { return float64(m.pos) }

func (m *Marker) Target() int { return m.target }
