package experiment

import (
	"fmt"
	"math"

	"github.com/san-kum/allvis/internal/config"
	"github.com/san-kum/allvis/internal/dynamo"
	"github.com/san-kum/allvis/internal/physics"
)

const (
	gridCols    = 80
	gridRows    = 40
	sweepPoints = 101
)

// Sampling is the evaluated output of a sampled visualizer. Only the parts
// that apply are filled: field lines, a scalar grid, or a 1D sweep.
type Sampling struct {
	Visualizer string
	Bounds     physics.Bounds

	Charges []physics.Charge
	Lines   [][]dynamo.Vec2

	Grid [][]float64

	XLabel string
	YLabel string
	X, Y   []float64

	// Facts are short derived results, such as a threshold frequency.
	Facts []Fact
}

type Fact struct {
	Name  string
	Value float64
	Unit  string
}

func (f Fact) String() string {
	if f.Unit == "" {
		return fmt.Sprintf("%s: %.4g", f.Name, f.Value)
	}
	return fmt.Sprintf("%s: %.4g %s", f.Name, f.Value, f.Unit)
}

func fieldSampling(cfg *config.Config) (*Sampling, error) {
	fc := cfg.Field
	if len(fc.Charges) == 0 {
		return nil, fmt.Errorf("%w: field has no charges", ErrNoSources)
	}
	f := physics.NewField(fc.Charges...)
	lines := f.FieldLines(max(fc.LinesPerCharge, 1), fc.Step, max(fc.MaxSteps, 1))

	s := &Sampling{
		Visualizer: "field",
		Bounds:     f.Bounds,
		Charges:    f.Charges,
		Lines:      lines,
		XLabel:     "x",
		YLabel:     "potential",
	}

	// Potential along the axis through the charges, skipping the guarded
	// singularities which sample as zero field but infinite potential.
	for i := range sweepPoints {
		x := f.Bounds.MinX + f.Bounds.Width()*float64(i)/float64(sweepPoints-1)
		v := f.Potential(dynamo.V(x, 0))
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		s.X = append(s.X, x)
		s.Y = append(s.Y, v)
	}

	var net float64
	for _, c := range f.Charges {
		net += c.Q
	}
	s.Facts = []Fact{
		{Name: "charges", Value: float64(len(f.Charges))},
		{Name: "net charge", Value: net},
		{Name: "field lines", Value: float64(len(lines))},
	}
	return s, nil
}

func superposition(cfg *config.Config) (*physics.Superposition, error) {
	if len(cfg.Wave.Sources) == 0 {
		return nil, fmt.Errorf("%w: wave has no sources", ErrNoSources)
	}
	w := physics.NewSuperposition(cfg.Wave.Sources...)
	w.Attenuate = cfg.Wave.Attenuate
	return w, nil
}

func waveSampling(cfg *config.Config) (*Sampling, error) {
	w, err := superposition(cfg)
	if err != nil {
		return nil, err
	}
	b := square(cfg.Wave.Extent)

	s := &Sampling{
		Visualizer: "wave",
		Bounds:     b,
		Grid:       w.Grid(b, gridCols, gridRows, 0),
		XLabel:     "y on screen",
		YLabel:     "intensity",
	}

	// Interference pattern on a screen along the right edge.
	peak := 0.0
	for i := range sweepPoints {
		y := b.MinY + b.Height()*float64(i)/float64(sweepPoints-1)
		in := w.Intensity(dynamo.V(b.MaxX, y))
		s.X = append(s.X, y)
		s.Y = append(s.Y, in)
		peak = max(peak, in)
	}

	s.Facts = []Fact{
		{Name: "sources", Value: float64(len(w.Sources))},
		{Name: "peak intensity", Value: peak},
	}
	return s, nil
}

func photoelectricSampling(cfg *config.Config) (*Sampling, error) {
	pc := cfg.Photoelectric
	p, err := physics.NewPhotoelectric(pc.Metal)
	if err != nil {
		return nil, fmt.Errorf("experiment: %w", err)
	}
	from, to := pc.From, pc.To
	if from <= 0 || to <= 0 {
		return nil, fmt.Errorf("%w: photoelectric wavelengths must be positive", config.ErrInvalid)
	}
	if from > to {
		from, to = to, from
	}

	s := &Sampling{
		Visualizer: "photoelectric",
		XLabel:     "wavelength (nm)",
		YLabel:     "kinetic energy (eV)",
	}
	for i := range sweepPoints {
		nm := from + (to-from)*float64(i)/float64(sweepPoints-1)
		_, ke := p.Sample(physics.FrequencyFromWavelength(nm))
		s.X = append(s.X, nm)
		s.Y = append(s.Y, ke)
	}

	f0 := p.ThresholdFrequency()
	s.Facts = []Fact{
		{Name: "work function", Value: p.WorkFunction, Unit: "eV"},
		{Name: "threshold frequency", Value: f0, Unit: "Hz"},
		{Name: "threshold wavelength", Value: physics.SpeedOfLight / f0 * 1e9, Unit: "nm"},
	}
	return s, nil
}
