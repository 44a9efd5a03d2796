package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "allvis"

// Recorder counts controller and simulation activity. Each recorder owns
// its registry so tests and concurrent sessions never collide.
type Recorder struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	advances    *prometheus.CounterVec
	ticks       prometheus.Counter
	traceSteps  *prometheus.HistogramVec
	values      *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "playback_transitions_total",
				Help:      "Playback state transitions.",
			},
			[]string{"from", "to"},
		),
		advances: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "playback_advances_total",
				Help:      "Cursor advances by source kind.",
			},
			[]string{"kind"},
		),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_ticks_total",
			Help:      "Fixed timesteps taken by headless simulations.",
		}),
		traceSteps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "trace_steps",
				Help:      "Length of generated step traces.",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"visualizer"},
		),
		values: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "model_value",
				Help:      "Latest value of a model metric.",
			},
			[]string{"metric"},
		),
	}
	r.registry.MustRegister(r.transitions, r.advances, r.ticks, r.traceSteps, r.values)
	return r
}

func (r *Recorder) RecordTransition(from, to string) {
	r.transitions.WithLabelValues(from, to).Inc()
}

func (r *Recorder) RecordAdvance(kind string) {
	r.advances.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordTick() {
	r.ticks.Inc()
}

func (r *Recorder) RecordTrace(visualizer string, steps int) {
	r.traceSteps.WithLabelValues(visualizer).Observe(float64(steps))
}

// Set publishes the value of a named metric.
func (r *Recorder) Set(metric string, v float64) {
	r.values.WithLabelValues(metric).Set(v)
}

// SetAll publishes every metric's current value.
func (r *Recorder) SetAll(ms []Metric) {
	for _, m := range ms {
		r.Set(m.Name(), m.Value())
	}
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteText writes every gathered family in the Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
