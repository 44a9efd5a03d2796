package viz

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/allvis/internal/dynamo"
	"github.com/san-kum/allvis/internal/experiment"
	"github.com/san-kum/allvis/internal/logging"
	"github.com/san-kum/allvis/internal/physics"
	"github.com/san-kum/allvis/internal/playback"
	"github.com/san-kum/allvis/internal/sim"
)

const (
	frameInterval = time.Second / 60
	// maxFrameGap caps how much wall time one frame may replay, so a
	// suspended terminal does not fast-forward on resume.
	maxFrameGap = 250 * time.Millisecond
	gifFrames   = 600
	gifPath     = "allvis.gif"
)

type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// PlayerConfig carries what a player needs beyond its source.
type PlayerConfig struct {
	Title    string
	Theme    Theme
	Interval time.Duration
	Timestep float64
	Probes   []sim.Probe
	Logger   *slog.Logger
	Recorder playback.Recorder
}

func (c PlayerConfig) options(sched playback.Scheduler) []playback.Option {
	logger := c.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	opts := []playback.Option{
		playback.WithScheduler(sched),
		playback.WithInterval(c.Interval),
		playback.WithTimestep(c.Timestep),
		playback.WithLogger(logger),
	}
	if c.Recorder != nil {
		opts = append(opts, playback.WithRecorder(c.Recorder))
	}
	return opts
}

type sample struct {
	cursor int
	values []float64
}

// Player is the interactive host of one playback controller. The
// controller runs on a manual scheduler advanced from the frame loop, so
// every state change happens inside Update.
type Player struct {
	title  string
	theme  Theme
	styles Styles
	ctrl   *playback.Controller
	sched  *playback.ManualScheduler

	view   experiment.TraceView
	model  physics.Model
	probes []sim.Probe

	canvas  *Canvas
	marker  *Marker
	history []sample

	params     []string
	paramIndex int
	paramError error

	gif      *GIFRecorder
	gifError error

	last     time.Time
	frame    int
	showHelp bool
	width    int
}

func newPlayer(cfg PlayerConfig) *Player {
	theme := cfg.Theme
	if theme.Name == "" {
		theme = ThemeDefault
	}
	return &Player{
		title:  cfg.Title,
		theme:  theme,
		styles: theme.Styles(),
		sched:  playback.NewManualScheduler(),
		canvas: NewCanvas(canvasWidth, canvasHeight),
		marker: NewMarker(0),
		probes: cfg.Probes,
	}
}

// NewTracePlayer steps through a discrete trace.
func NewTracePlayer(tv experiment.TraceView, cfg PlayerConfig) *Player {
	p := newPlayer(cfg)
	p.view = tv
	p.ctrl = playback.NewDiscrete(tv.Len(), cfg.options(p.sched)...)
	p.ctrl.Subscribe(func(s playback.Snapshot) { p.marker.MoveTo(s.Cursor) })
	return p
}

// NewModelPlayer ticks a physics model.
func NewModelPlayer(m physics.Model, cfg PlayerConfig) *Player {
	p := newPlayer(cfg)
	p.model = m
	p.ctrl = playback.NewContinuous(m, cfg.options(p.sched)...)
	if c, ok := m.(dynamo.Configurable); ok {
		for name := range c.GetParams() {
			p.params = append(p.params, name)
		}
		sort.Strings(p.params)
	}
	p.record()
	return p
}

// Controller exposes the underlying controller, mainly for tests.
func (p *Player) Controller() *playback.Controller { return p.ctrl }

func (p *Player) Init() tea.Cmd {
	p.ctrl.Play()
	return nextFrame()
}

func (p *Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
	case tea.KeyMsg:
		return p, p.handleKey(msg.String())
	case frameMsg:
		now := time.Time(msg)
		var dt time.Duration
		if !p.last.IsZero() {
			dt = min(now.Sub(p.last), maxFrameGap)
		}
		p.last = now
		p.Advance(dt)
		return p, nextFrame()
	}
	return p, nil
}

// Advance moves wall time forward by dt: due controller callbacks fire, the
// marker slides and the canvas is redrawn.
func (p *Player) Advance(dt time.Duration) {
	p.sched.Advance(dt)
	p.marker.Update(dt)
	p.record()
	p.frame++
	if p.model != nil {
		Draw(p.canvas, p.model)
		if p.gif != nil {
			p.gif.Capture(p.canvas)
		}
	}
}

func (p *Player) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c", "esc":
		p.ctrl.Close()
		return tea.Quit
	case " ", "p":
		if p.ctrl.State() == playback.Playing {
			p.ctrl.Pause()
		} else {
			p.ctrl.Play()
		}
	case "right", "l", "n":
		p.ctrl.StepForward()
	case "left", "h", "b":
		p.ctrl.StepBack()
	case "r":
		p.ctrl.Reset()
		p.history = p.history[:0]
	case "t":
		p.theme = p.theme.Next()
		p.styles = p.theme.Styles()
	case "?":
		p.showHelp = !p.showHelp
	case "g":
		p.toggleGIF()
	case "tab":
		if len(p.params) > 0 {
			p.paramIndex = (p.paramIndex + 1) % len(p.params)
		}
	case "up", "k":
		p.adjustParam(1.05)
	case "down", "j":
		p.adjustParam(0.95)
	}
	p.record()
	if p.model != nil {
		Draw(p.canvas, p.model)
	}
	return nil
}

func (p *Player) toggleGIF() {
	if p.model == nil {
		return
	}
	if p.gif == nil {
		p.gif, p.gifError = NewGIFRecorder(gifFrames), nil
		return
	}
	f, err := os.Create(gifPath)
	if err == nil {
		err = p.gif.Encode(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	p.gif, p.gifError = nil, err
}

// adjustParam scales the selected model parameter. Models reject values
// outside their bounds, which leaves the parameter unchanged and shows the
// error. A model that rebuilds itself on the change is a new instance, so
// the controller restarts on it and the probe history is dropped.
func (p *Player) adjustParam(factor float64) {
	c, ok := p.model.(dynamo.Configurable)
	if !ok || len(p.params) == 0 {
		return
	}
	name := p.params[p.paramIndex]
	v := c.GetParams()[name]
	if v == 0 {
		v = 0.01 / factor
	}
	before := p.model.Time()
	if err := c.SetParam(name, v*factor); err != nil {
		p.paramError = err
		return
	}
	p.paramError = nil

	if p.model.Time() != before {
		p.ctrl.SetModel(p.model)
		p.history = p.history[:0]
		return
	}
	if n := len(p.history); n > 0 && p.history[n-1].cursor == p.ctrl.Cursor() {
		p.history = p.history[:n-1]
	}
}

// record appends probe values whenever the cursor moves, dropping samples
// past the cursor after a step back.
func (p *Player) record() {
	if len(p.probes) == 0 || p.model == nil {
		return
	}
	cursor := p.ctrl.Cursor()
	for len(p.history) > 0 && p.history[len(p.history)-1].cursor > cursor {
		p.history = p.history[:len(p.history)-1]
	}
	if n := len(p.history); n > 0 && p.history[n-1].cursor == cursor {
		return
	}
	values := make([]float64, len(p.probes))
	for i, pr := range p.probes {
		values[i] = pr.Fn(p.model)
	}
	p.history = append(p.history, sample{cursor: cursor, values: values})
	if len(p.history) > historyLimit {
		p.history = p.history[1:]
	}
}

func (p *Player) series(i int) []float64 {
	out := make([]float64, len(p.history))
	for k, s := range p.history {
		out[k] = s.values[i]
	}
	return out
}

func (p *Player) statusLine(s playback.Snapshot) string {
	st := p.styles
	switch s.State {
	case playback.Playing:
		return st.Success.Render(spinner(p.frame) + " PLAYING")
	case playback.Paused:
		return st.Warning.Render("PAUSED")
	case playback.Finished:
		return st.Focus.Render("FINISHED")
	}
	return st.Muted.Render("IDLE")
}

func (p *Player) View() string {
	st := p.styles
	snap := p.ctrl.Snapshot()

	var main string
	if p.view != nil {
		main = TraceFrame(st, p.view, snap.Cursor, p.marker.Pos())
	} else {
		main = p.canvas.String()
	}

	var side strings.Builder
	side.WriteString(st.Title.Render(strings.ToUpper(p.title)) + "\n")
	side.WriteString(p.statusLine(snap) + "\n\n")
	if snap.Length > 0 {
		side.WriteString(st.Label.Render("Step") + st.Value.Render(fmt.Sprintf("%d / %d", snap.Cursor+1, snap.Length)) + "\n")
		side.WriteString(st.Label.Render("Progress") + bar(float64(snap.Cursor+1)/float64(snap.Length), 16) + "\n")
	} else {
		side.WriteString(st.Label.Render("Ticks") + st.Value.Render(fmt.Sprint(snap.Cursor)) + "\n")
	}
	side.WriteString(st.Label.Render("Time") + st.Value.Render(fmt.Sprintf("%.2fs", snap.Elapsed)) + "\n")

	if n := len(p.history); n > 0 {
		last := p.history[n-1]
		side.WriteString("\n")
		for i, pr := range p.probes {
			side.WriteString(st.Label.Render(pr.Name) + st.Value.Render(fmt.Sprintf("%.4g", last.values[i])) +
				" " + st.Muted.Render(Sparkline(p.series(i), 12)) + "\n")
		}
		if chart := Plot(p.series(0), p.probes[0].Name, plotWidth, plotHeight); chart != "" {
			side.WriteString("\n" + st.Accent.Render(chart) + "\n")
		}
	}

	if c, ok := p.model.(dynamo.Configurable); ok && len(p.params) > 0 {
		values := c.GetParams()
		side.WriteString("\nPARAMETERS\n")
		for i, name := range p.params {
			line := fmt.Sprintf("%-18s %.3g", name, values[name])
			if i == p.paramIndex {
				side.WriteString(st.Focus.Render("> "+line) + "\n")
			} else {
				side.WriteString("  " + st.Muted.Render(line) + "\n")
			}
		}
	}
	if p.paramError != nil {
		side.WriteString(st.Failure.Render(p.paramError.Error()) + "\n")
	}

	if p.gif != nil {
		side.WriteString("\n" + st.Failure.Render(fmt.Sprintf("● REC %d", p.gif.Len())) + "\n")
	} else if p.gifError != nil {
		side.WriteString("\n" + st.Failure.Render("gif: "+p.gifError.Error()) + "\n")
	}

	side.WriteString("\n" + st.Muted.Render("space play/pause  ←/→ step  r reset  ? help  q quit"))

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		st.Panel.Render(main),
		st.Panel.Render(side.String()),
	)
	if p.showHelp {
		return st.Panel.Render(helpText) + "\n" + view
	}
	return view
}

const helpText = `KEYBOARD SHORTCUTS

  space / p   play or pause
  → / l / n   step forward
  ← / h / b   step back
  r           reset to the first step
  tab         select parameter
  ↑ / ↓       tune parameter ±5%
  g           start / stop GIF recording
  t           cycle themes
  ?           toggle this help
  q           quit`

// Run takes over the terminal until the player quits.
func Run(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
