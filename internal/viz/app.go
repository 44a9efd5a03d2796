package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/allvis/internal/config"
	"github.com/san-kum/allvis/internal/experiment"
	"github.com/san-kum/allvis/internal/metrics"
)

const (
	stateMenu = iota
	statePlay
	stateSample
)

// App is the menu that launches a player for any registered visualizer.
type App struct {
	registry *experiment.Registry
	cfg      *config.Config
	pcfg     PlayerConfig
	names    []string

	state  int
	cursor int
	player *Player
	still  string
	err    error
}

func NewApp(reg *experiment.Registry, cfg *config.Config, pcfg PlayerConfig) *App {
	if pcfg.Theme.Name == "" {
		pcfg.Theme = GetTheme(cfg.Theme)
	}
	return &App{registry: reg, cfg: cfg, pcfg: pcfg, names: reg.List()}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.state {
	case statePlay:
		if k, ok := msg.(tea.KeyMsg); ok && (k.String() == "esc" || k.String() == "q") {
			a.player.Controller().Close()
			a.player, a.state = nil, stateMenu
			return a, nil
		}
		_, cmd := a.player.Update(msg)
		return a, cmd
	case stateSample:
		if _, ok := msg.(tea.KeyMsg); ok {
			a.state = stateMenu
		}
		return a, nil
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch k.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.names)-1 {
			a.cursor++
		}
	case "enter", " ":
		return a, a.open(a.names[a.cursor])
	}
	return a, nil
}

// open builds the selected visualizer. Sampled visualizers without an
// animation show a still frame.
func (a *App) open(name string) tea.Cmd {
	a.err = nil
	p, still, err := Open(a.registry, name, a.cfg, a.pcfg)
	if err != nil {
		a.err = err
		return nil
	}
	if p == nil {
		a.still, a.state = still, stateSample
		return nil
	}
	a.player, a.state = p, statePlay
	return p.Init()
}

// Open returns a player for name, or a rendered still frame when the
// visualizer can only be sampled.
func Open(reg *experiment.Registry, name string, cfg *config.Config, pcfg PlayerConfig) (*Player, string, error) {
	vis, err := reg.Get(name)
	if err != nil {
		return nil, "", err
	}
	pcfg.Title = vis.Title
	if pcfg.Theme.Name == "" {
		pcfg.Theme = GetTheme(cfg.Theme)
	}

	switch {
	case vis.Kind == experiment.Discrete:
		tv, err := reg.Trace(name, cfg)
		if err != nil {
			return nil, "", err
		}
		if r, ok := pcfg.Recorder.(*metrics.Recorder); ok {
			r.RecordTrace(name, tv.Len())
		}
		if pcfg.Interval == 0 {
			pcfg.Interval = cfg.Playback.StepInterval
		}
		return NewTracePlayer(tv, pcfg), "", nil
	case vis.Model != nil:
		m, err := reg.Model(name, cfg)
		if err != nil {
			return nil, "", err
		}
		if pcfg.Interval == 0 {
			pcfg.Interval = cfg.Playback.TickInterval
		}
		if pcfg.Timestep == 0 {
			pcfg.Timestep = cfg.Sim.Dt
		}
		if vis.Probes != nil {
			pcfg.Probes = vis.Probes(m)
		}
		return NewModelPlayer(m, pcfg), "", nil
	}

	s, err := reg.Sample(name, cfg)
	if err != nil {
		return nil, "", err
	}
	return nil, SamplingView(pcfg.Theme.Styles(), vis.Title, s), nil
}

func (a *App) View() string {
	switch a.state {
	case statePlay:
		return a.player.View()
	case stateSample:
		return a.still + "\n" + a.pcfg.Theme.Styles().Muted.Render("any key: back")
	}

	st := a.pcfg.Theme.Styles()
	var b strings.Builder
	b.WriteString("\n\n    " + st.Title.Render("ALLVIS") + "\n    " +
		st.Muted.Render("algorithm and physics visualizer") + "\n    " +
		st.Muted.Render("────────────────────────────────") + "\n\n")
	for i, name := range a.names {
		vis, _ := a.registry.Get(name)
		desc := fmt.Sprintf("%-22s %s", vis.Title, vis.Kind)
		if i == a.cursor {
			b.WriteString("    " + st.Key.Render("▸ ") + st.Focus.Render(fmt.Sprintf("%-14s", name)) + " " + st.Value.Render(desc) + "\n")
		} else {
			b.WriteString("      " + st.Muted.Render(fmt.Sprintf("%-14s %s", name, desc)) + "\n")
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + st.Failure.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + st.Key.Render("j/k") + st.Muted.Render(" navigate  ") +
		st.Key.Render("enter") + st.Muted.Render(" open  ") +
		st.Key.Render("q") + st.Muted.Render(" quit") + "\n")
	return b.String()
}
