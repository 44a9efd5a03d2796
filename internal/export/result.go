package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/san-kum/allvis/internal/experiment"
	"github.com/san-kum/allvis/internal/sim"
)

type ResultData struct {
	Visualizer string               `json:"visualizer"`
	Dt         float64              `json:"dt"`
	Duration   float64              `json:"duration"`
	Steps      int                  `json:"steps"`
	Finished   bool                 `json:"finished"`
	Times      []float64            `json:"times"`
	Series     map[string][]float64 `json:"series"`
	Metrics    map[string]float64   `json:"metrics"`
}

func ResultJSON(w io.Writer, visualizer string, cfg sim.Config, r *sim.Result) error {
	data := ResultData{
		Visualizer: visualizer,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Steps:      r.StepsTaken,
		Finished:   r.Finished,
		Times:      r.Times,
		Series:     r.Series,
		Metrics:    r.Metrics,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("export: result json: %w", err)
	}
	return nil
}

// ResultCSV writes a time column followed by each probe series in name
// order.
func ResultCSV(w io.Writer, r *sim.Result) error {
	names := make([]string, 0, len(r.Series))
	for name := range r.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"time"}, names...)); err != nil {
		return fmt.Errorf("export: result csv: %w", err)
	}
	for i, t := range r.Times {
		row := make([]string, 0, len(names)+1)
		row = append(row, formatFloat(t))
		for _, name := range names {
			col := r.Series[name]
			if i < len(col) {
				row = append(row, formatFloat(col[i]))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: result csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SamplingCSV writes the 1D sweep of a sampled visualizer.
func SamplingCSV(w io.Writer, s *experiment.Sampling) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{s.XLabel, s.YLabel}); err != nil {
		return fmt.Errorf("export: sampling csv: %w", err)
	}
	for i := range min(len(s.X), len(s.Y)) {
		if err := cw.Write([]string{formatFloat(s.X[i]), formatFloat(s.Y[i])}); err != nil {
			return fmt.Errorf("export: sampling csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SamplingSVG draws field lines with their charges, or the sweep otherwise.
func SamplingSVG(w io.Writer, s *experiment.Sampling, width, height int) error {
	if len(s.Lines) > 0 {
		markers := make([]Marker, len(s.Charges))
		for i, c := range s.Charges {
			color := "#ff3b3b"
			if c.Q < 0 {
				color = "#3b7fff"
			}
			markers[i] = Marker{Pos: c.Pos, Radius: 0.2, Color: color}
		}
		return PathsToSVG(w, s.Lines, markers, width, height)
	}
	return SeriesToSVG(w, s.X, s.Y, width, height)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
