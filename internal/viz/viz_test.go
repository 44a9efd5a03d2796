package viz

import (
	"bytes"
	"image/gif"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/allvis/internal/config"
	"github.com/san-kum/allvis/internal/dynamo"
	"github.com/san-kum/allvis/internal/experiment"
	"github.com/san-kum/allvis/internal/physics"
	"github.com/san-kum/allvis/internal/playback"
	"github.com/san-kum/allvis/internal/trace"
)

func lit(c *Canvas) int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := r - blank; bits > 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(1, 3)
	if c.Grid[0][0] != blank|0x80 {
		t.Fatalf("expected dot 8 set, got %U", c.Grid[0][0])
	}
	c.Set(-1, 0)
	c.Set(4, 0)
	if lit(c) != 1 {
		t.Errorf("expected out-of-range sets to be ignored, %d lit", lit(c))
	}
	c.Unset(1, 3)
	if c.Grid[0][0] != blank {
		t.Errorf("expected blank cell, got %U", c.Grid[0][0])
	}
}

func TestCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Circle(10, 10, 3, true)
	filled := lit(c)
	c.Clear()
	c.Circle(10, 10, 3, false)
	if outline := lit(c); outline == 0 || outline >= filled {
		t.Errorf("outline %d should be smaller than fill %d", outline, filled)
	}
}

func TestViewportProject(t *testing.T) {
	c := NewCanvas(10, 5) // 20 x 20 dots
	b := physics.Box(10, 10)

	up := Fit(c, b, false)
	if x, y := up.Project(dynamo.V(0, 0)); x != 0 || y != 19 {
		t.Errorf("y-up origin at (%d, %d), want (0, 19)", x, y)
	}
	down := Fit(c, b, true)
	if x, y := down.Project(dynamo.V(10, 0)); x != 19 || y != 0 {
		t.Errorf("y-down corner at (%d, %d), want (19, 0)", x, y)
	}
	if got := up.Length(10); got != 19 {
		t.Errorf("expected the box to span 19 dots, got %d", got)
	}
}

func TestShadeGrid(t *testing.T) {
	out := ShadeGrid([][]float64{{0, 1}, {2, 3}})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %q", out)
	}
	if lines[0] != "*@" || lines[1] != " -" {
		t.Errorf("unexpected shading %q", lines)
	}
}

func TestMarkerEasing(t *testing.T) {
	m := NewMarker(0)
	m.MoveTo(1)
	mid := m.Update(markerDuration / 2)
	if mid <= 0 || mid >= 1 {
		t.Errorf("expected a position between steps, got %f", mid)
	}
	if end := m.Update(time.Second); end != 1 {
		t.Errorf("expected to settle on 1, got %f", end)
	}

	m.MoveTo(5)
	if m.Pos() != 5 {
		t.Errorf("expected a jump to land immediately, got %f", m.Pos())
	}
}

func TestSparkline(t *testing.T) {
	if got := []rune(Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 4)); len(got) != 4 || got[3] != '█' {
		t.Errorf("unexpected sparkline %q", string(got))
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("unexpected empty sparkline %q", got)
	}
}

func TestPlotXY(t *testing.T) {
	if Plot([]float64{1}, "x", 10, 3) != "" {
		t.Error("expected no chart for a single point")
	}
	out := PlotXY([]float64{0, 1, 3}, []float64{0, 1, 3}, "line", 20, 4)
	if !strings.Contains(out, "line") {
		t.Errorf("expected caption in chart:\n%s", out)
	}
}

func TestDrawModels(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := experiment.NewRegistry()
	for _, name := range []string{"collision", "gas", "projectile", "string", "wave"} {
		m, err := reg.Model(name, cfg)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		m.Tick(cfg.Sim.Dt)
		c := NewCanvas(canvasWidth, canvasHeight)
		Draw(c, m)
		if lit(c) == 0 {
			t.Errorf("%s: nothing drawn", name)
		}
	}
}

func TestDrawDecision(t *testing.T) {
	c := NewCanvas(16, 6)
	DrawDecision(c, []float64{1, 1}, -1.5, trace.LogicGate("and"))
	if lit(c) == 0 {
		t.Error("expected samples and boundary drawn")
	}
}

func TestTracePlayer(t *testing.T) {
	cfg := config.DefaultConfig()
	tv, err := experiment.NewRegistry().Trace("twosum", cfg)
	if err != nil {
		t.Fatal(err)
	}

	p := NewTracePlayer(tv, PlayerConfig{Title: "Two Sum", Interval: time.Second})
	p.Init()
	if p.Controller().State() != playback.Playing {
		t.Fatalf("expected playing after init, got %s", p.Controller().State())
	}

	p.Advance(time.Second)
	snap := p.Controller().Snapshot()
	if snap.Cursor != 1 || snap.State != playback.Finished {
		t.Fatalf("expected finished on step 1, got %+v", snap)
	}
	if p.marker.Target() != 1 {
		t.Errorf("expected marker to follow the cursor, target %d", p.marker.Target())
	}
	view := p.View()
	for _, want := range []string{"SUCCESS", "FINISHED", "pair (0, 1)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	p.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if s := p.Controller().Snapshot(); s.Cursor != 0 || s.State != playback.Paused {
		t.Errorf("expected paused on step 0 after step back, got %+v", s)
	}
	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if s := p.Controller().State(); s != playback.Idle {
		t.Errorf("expected idle after reset, got %s", s)
	}
}

func TestModelPlayer(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := experiment.NewRegistry()
	p, still, err := Open(reg, "collision", cfg, PlayerConfig{})
	if err != nil || p == nil || still != "" {
		t.Fatalf("expected a model player, got %v %q", err, still)
	}

	p.Init()
	p.Advance(time.Second)
	snap := p.Controller().Snapshot()
	if snap.Cursor != 60 {
		t.Errorf("expected 60 ticks in one second, got %d", snap.Cursor)
	}
	if math.Abs(snap.Elapsed-1) > 1e-9 {
		t.Errorf("expected 1s simulated, got %f", snap.Elapsed)
	}
	if len(p.history) != 2 {
		t.Errorf("expected initial and one new sample, got %d", len(p.history))
	}
	if lit(p.canvas) == 0 {
		t.Error("expected bodies drawn")
	}

	before := p.model.(*physics.Collisions).Params.FloorRestitution
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	after := p.model.(*physics.Collisions).Params.FloorRestitution
	if p.params[p.paramIndex] != "floor_restitution" || math.Abs(after-0.95*before) > 1e-12 {
		t.Errorf("expected floor_restitution scaled by 0.95, got %s %f -> %f", p.params[p.paramIndex], before, after)
	}
	if !strings.Contains(p.View(), "kinetic_energy") {
		t.Error("expected probe readout in view")
	}
}

func TestOpenSampled(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := experiment.NewRegistry()

	p, still, err := Open(reg, "photoelectric", cfg, PlayerConfig{})
	if err != nil || p != nil {
		t.Fatalf("expected a still frame, got %v %v", p, err)
	}
	if !strings.Contains(still, "threshold frequency") {
		t.Errorf("expected facts in still frame:\n%s", still)
	}

	p, _, err = Open(reg, "wave", cfg, PlayerConfig{})
	if err != nil || p == nil {
		t.Fatalf("expected an animated wave, got %v", err)
	}

	if _, _, err := Open(reg, "nope", cfg, PlayerConfig{}); err == nil {
		t.Error("expected unknown visualizer error")
	}
}

func TestGIFRecorder(t *testing.T) {
	r := NewGIFRecorder(2)
	c := NewCanvas(4, 2)
	for i := 0; i < 3; i++ {
		c.Set(i, i)
		r.Capture(c)
	}
	if r.Len() != 2 {
		t.Fatalf("expected the oldest frame dropped, got %d", r.Len())
	}

	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != 2 {
		t.Errorf("expected 2 frames, got %d", len(anim.Image))
	}

	if err := NewGIFRecorder(1).Encode(&buf); err == nil {
		t.Error("expected an error with no frames")
	}
}

func TestModelPlayerRebuildRestarts(t *testing.T) {
	cfg := config.DefaultConfig()
	p, _, err := Open(experiment.NewRegistry(), "gas", cfg, PlayerConfig{})
	if err != nil {
		t.Fatal(err)
	}
	p.Init()
	for i := 0; i < 60; i++ {
		p.Advance(time.Second / 60)
	}
	if s := p.Controller().Snapshot(); s.Cursor != 60 || s.State != playback.Playing {
		t.Fatalf("expected playing at tick 60, got %+v", s)
	}

	if p.params[p.paramIndex] != "height" {
		t.Fatalf("expected height selected first, got %s", p.params[p.paramIndex])
	}
	p.Update(tea.KeyMsg{Type: tea.KeyUp})

	s := p.Controller().Snapshot()
	if s.State != playback.Idle || s.Cursor != 0 || s.Elapsed != 0 {
		t.Errorf("expected a rebuilt model to restart idle at 0, got %+v", s)
	}
	if p.model.Time() != 0 {
		t.Errorf("expected model time 0, got %f", p.model.Time())
	}
	if len(p.history) != 1 || p.history[0].cursor != 0 {
		t.Errorf("expected history restarted with one sample, got %d", len(p.history))
	}

	p.Advance(time.Second)
	if s := p.Controller().Snapshot(); s.Cursor != 0 {
		t.Errorf("expected no ticks while idle, got cursor %d", s.Cursor)
	}
}

func TestModelPlayerRejectedParam(t *testing.T) {
	cfg := config.DefaultConfig()
	p, _, err := Open(experiment.NewRegistry(), "collision", cfg, PlayerConfig{})
	if err != nil {
		t.Fatal(err)
	}
	p.Init()
	p.Advance(time.Second)

	up := tea.KeyMsg{Type: tea.KeyUp}
	p.Update(up)
	p.Update(up) // 0.95 * 1.05 * 1.05 > 1

	got := p.model.(*physics.Collisions).Params.FloorRestitution
	if math.Abs(got-0.9975) > 1e-12 {
		t.Errorf("expected the rejected value to leave 0.9975, got %f", got)
	}
	if !strings.Contains(p.View(), "out of valid bounds") {
		t.Error("expected the rejection shown in the view")
	}
	if s := p.Controller().Snapshot(); s.State != playback.Playing || s.Cursor != 60 {
		t.Errorf("expected an in-place tune to keep playing, got %+v", s)
	}

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if p.paramError != nil || strings.Contains(p.View(), "out of valid bounds") {
		t.Error("expected an accepted value to clear the error")
	}
}
