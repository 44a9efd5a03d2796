package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/allvis/internal/analysis"
	"github.com/san-kum/allvis/internal/config"
	"github.com/san-kum/allvis/internal/docs"
	"github.com/san-kum/allvis/internal/experiment"
	"github.com/san-kum/allvis/internal/export"
	"github.com/san-kum/allvis/internal/logging"
	"github.com/san-kum/allvis/internal/metrics"
	"github.com/san-kum/allvis/internal/sim"
	"github.com/san-kum/allvis/internal/viz"
)

var (
	configFile string
	logLevel   string
	themeName  string
	sets       []string
	preset     string

	showMetrics bool
	format      string
	output      string
	width       int
)

// main registers commands and flags and opens the interactive menu when no
// subcommand is given. It exits with status 1 when a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "allvis",
		Short:         "step-by-step algorithm and physics visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMenu,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&themeName, "theme", viz.ThemeDefault.Name, "color theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.StringArrayVar(&sets, "set", nil, "override a parameter, key=value (repeatable)")
	pf.StringVar(&preset, "preset", "", "apply a named preset before --set")

	traceCmd := &cobra.Command{
		Use:   "trace [visualizer]",
		Short: "print every step of an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrace,
	}

	playCmd := &cobra.Command{
		Use:   "play [visualizer]",
		Short: "play a visualizer in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlay,
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate [visualizer]",
		Short: "run a physics model headlessly and summarize it",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulate,
	}
	simulateCmd.Flags().BoolVar(&showMetrics, "metrics", false, "print collected metrics in text exposition format")

	sampleCmd := &cobra.Command{
		Use:   "sample [visualizer]",
		Short: "render a sampled field or sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  runSample,
	}

	explainCmd := &cobra.Command{
		Use:   "explain [visualizer]",
		Short: "show how a visualizer works",
		Args:  cobra.ExactArgs(1),
		RunE:  runExplain,
	}
	explainCmd.Flags().IntVar(&width, "width", 80, "wrap width")

	presetsCmd := &cobra.Command{
		Use:   "presets [visualizer]",
		Short: "list visualizers or the presets of one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	exportCmd := &cobra.Command{
		Use:   "export [visualizer]",
		Short: "export a trace, simulation or sampling",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "output format: json, csv, svg")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(traceCmd, playCmd, simulateCmd, sampleCmd, explainCmd, presetsCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and layers flags over it. A preset
// applies first, then --set pairs: dotted keys address the whole config,
// bare keys the visualizer's own section.
func loadConfig(cmd *cobra.Command, visualizer string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme = themeName
	}

	if preset != "" {
		if visualizer == "" {
			return nil, fmt.Errorf("--preset needs a visualizer")
		}
		if err := cfg.ApplyPreset(visualizer, preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets(visualizer))
		}
	}

	params, err := config.ParseSet(sets)
	if err != nil {
		return nil, err
	}
	global, section := map[string]any{}, map[string]any{}
	for k, v := range params {
		if _, nested := v.(map[string]any); nested {
			global[k] = v
		} else {
			section[k] = v
		}
	}
	if err := cfg.Apply(global); err != nil {
		return nil, err
	}
	if len(section) > 0 {
		if visualizer == "" {
			return nil, fmt.Errorf("--set %v needs a visualizer", sets)
		}
		if err := cfg.ApplySection(visualizer, section); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, visualizer string) (*config.Config, *experiment.Registry, error) {
	cfg, err := loadConfig(cmd, visualizer)
	if err != nil {
		return nil, nil, err
	}
	reg := experiment.NewRegistry()
	if visualizer != "" {
		if _, err := reg.Get(visualizer); err != nil {
			return nil, nil, fmt.Errorf("%w (available: %s)", err, strings.Join(reg.List(), ", "))
		}
	}
	return cfg, reg, nil
}

func newExperiment(cmd *cobra.Command, name string, rec *metrics.Recorder) (*experiment.Experiment, *config.Config, error) {
	cfg, reg, err := setup(cmd, name)
	if err != nil {
		return nil, nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	opts := []experiment.Option{experiment.WithLogger(logging.New(level))}
	if rec != nil {
		opts = append(opts, experiment.WithRecorder(rec))
	}
	e, err := experiment.New(reg, name, cfg, opts...)
	return e, cfg, err
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, reg, err := setup(cmd, "")
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	return viz.Run(viz.NewApp(reg, cfg, viz.PlayerConfig{Logger: logging.New(level)}))
}

func runTrace(cmd *cobra.Command, args []string) error {
	e, _, err := newExperiment(cmd, args[0], nil)
	if err != nil {
		return err
	}
	tv, err := e.Trace()
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d steps\n\n", e.Visualizer().Title, tv.Len())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tOUTCOME\tNARRATION")
	for i := 0; i < tv.Len(); i++ {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, tv.Outcome(i), tv.Narrate(i))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nresult: %v\n", tv.Result())
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, reg, err := setup(cmd, args[0])
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	rec := metrics.NewRecorder()
	player, still, err := viz.Open(reg, args[0], cfg, viz.PlayerConfig{
		Logger:   logging.New(level),
		Recorder: rec,
	})
	if err != nil {
		return err
	}
	if player == nil {
		fmt.Print(still)
		return nil
	}
	return viz.Run(player)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	name := args[0]
	rec := metrics.NewRecorder()
	e, cfg, err := newExperiment(cmd, name, rec)
	if err != nil {
		return err
	}
	if e.Visualizer().Model == nil {
		return fmt.Errorf("%w: %s has no model to simulate", experiment.ErrWrongKind, name)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := e.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", e.Visualizer().Title)
	fmt.Printf("dt: %g  duration: %g  steps: %d", cfg.Sim.Dt, cfg.Sim.Duration, res.StepsTaken)
	if res.Finished {
		fmt.Print("  (finished early)")
	}
	fmt.Printf("\n\n")

	probes := probeNames(e)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROBE\tFINAL")
	for _, p := range probes {
		if col := res.Column(p); len(col) > 0 {
			fmt.Fprintf(w, "%s\t%.6g\n", p, col[len(col)-1])
		}
	}
	metricNames := make([]string, 0, len(res.Metrics))
	for m := range res.Metrics {
		metricNames = append(metricNames, m)
	}
	sort.Strings(metricNames)
	if len(metricNames) > 0 {
		fmt.Fprintln(w, "\nMETRIC\tVALUE")
		for _, m := range metricNames {
			fmt.Fprintf(w, "%s\t%.6g\n", m, res.Metrics[m])
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(probes) > 0 {
		if chart := viz.Plot(res.Column(probes[0]), probes[0], 70, 12); chart != "" {
			fmt.Printf("\n%s\n", chart)
		}
	}

	if name == "wave" {
		sampleEvery := max(cfg.Sim.SampleEvery, 1)
		rate := 1 / (cfg.Sim.Dt * float64(sampleEvery))
		disp := res.Column("displacement")
		f := analysis.DominantFrequency(disp, rate)
		fmt.Printf("\ndominant frequency: %.3f hz\n", f)
		if p := analysis.Period(res.Times, disp, 0); p > 0 {
			fmt.Printf("period (zero crossings): %.3f s\n", p)
		}
	}

	if showMetrics {
		fmt.Println()
		return rec.WriteText(os.Stdout)
	}
	return nil
}

func probeNames(e *experiment.Experiment) []string {
	v := e.Visualizer()
	if v.Probes == nil || e.Model() == nil {
		return nil
	}
	var names []string
	for _, p := range v.Probes(e.Model()) {
		names = append(names, p.Name)
	}
	return names
}

func runSample(cmd *cobra.Command, args []string) error {
	e, cfg, err := newExperiment(cmd, args[0], nil)
	if err != nil {
		return err
	}
	s, err := e.Sample()
	if err != nil {
		return err
	}
	fmt.Print(viz.SamplingView(viz.GetTheme(cfg.Theme).Styles(), e.Visualizer().Title, s))
	return nil
}

func runExplain(cmd *cobra.Command, args []string) error {
	out, err := docs.Render(args[0], width)
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(docs.Names(), ", "))
	}
	fmt.Print(out)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if len(args) == 0 {
		docs.Banner(os.Stdout)
		reg := experiment.NewRegistry()
		fmt.Fprintln(w, "VISUALIZER\tKIND\tPRESETS")
		for _, name := range reg.List() {
			v, _ := reg.Get(name)
			fmt.Fprintf(w, "%s\t%s\t%s\n", name, v.Kind, strings.Join(config.ListPresets(name), ", "))
		}
		return w.Flush()
	}

	name := args[0]
	presets := config.ListPresets(name)
	if len(presets) == 0 {
		return fmt.Errorf("no presets for %q", name)
	}
	fmt.Fprintln(w, "PRESET\tDESCRIPTION")
	for _, p := range presets {
		pr, _ := config.GetPreset(name, p)
		fmt.Fprintf(w, "%s\t%s\n", p, pr.Description)
	}
	return w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	e, cfg, err := newExperiment(cmd, name, nil)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch e.Visualizer().Kind {
	case experiment.Discrete:
		tv, err := e.Trace()
		if err != nil {
			return err
		}
		switch format {
		case "json":
			return export.TraceJSON(out, tv)
		case "csv":
			return export.TraceCSV(out, tv)
		}
	case experiment.Continuous:
		res, err := e.Run(context.Background())
		if err != nil {
			return err
		}
		switch format {
		case "json":
			simCfg := sim.Config{Dt: cfg.Sim.Dt, Duration: cfg.Sim.Duration, SampleEvery: cfg.Sim.SampleEvery}
			return export.ResultJSON(out, name, simCfg, res)
		case "csv":
			return export.ResultCSV(out, res)
		case "svg":
			probes := probeNames(e)
			if len(probes) == 0 {
				return fmt.Errorf("%s has nothing to plot", name)
			}
			return export.SeriesToSVG(out, res.Times, res.Column(probes[0]), 640, 360)
		}
	case experiment.Sampled:
		s, err := e.Sample()
		if err != nil {
			return err
		}
		switch format {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		case "csv":
			return export.SamplingCSV(out, s)
		case "svg":
			return export.SamplingSVG(out, s, 640, 640)
		}
	}
	return fmt.Errorf("format %q is not supported for %s", format, name)
}
