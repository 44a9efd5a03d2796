package physics

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/allvis/internal/dynamo"
)

// WaveSource emits circular waves from Pos. Frequency is in hertz and Phase
// in radians.
type WaveSource struct {
	Pos        dynamo.Vec2 `yaml:"pos"`
	Amplitude  float64     `yaml:"amplitude"`
	Wavelength float64     `yaml:"wavelength"`
	Frequency  float64     `yaml:"frequency"`
	Phase      float64     `yaml:"phase"`
}

func (s WaveSource) waveNumber() float64 {
	if s.Wavelength <= 0 {
		return 0
	}
	return 2 * math.Pi / s.Wavelength
}

func (s WaveSource) angularFrequency() float64 { return 2 * math.Pi * s.Frequency }

// Superposition sums the displacement of independent circular sources.
// With Attenuate set each amplitude falls off as 1/sqrt(r), saturating
// inside MinDistance so the source point stays finite.
type Superposition struct {
	Sources     []WaveSource
	Attenuate   bool
	MinDistance float64
}

func NewSuperposition(sources ...WaveSource) *Superposition {
	return &Superposition{Sources: sources, MinDistance: DefaultMinDistance}
}

// TwoSlit places two coherent sources a distance apart on the y axis.
func TwoSlit(separation, wavelength, frequency float64) *Superposition {
	return NewSuperposition(
		WaveSource{Pos: dynamo.V(0, -separation/2), Amplitude: 1, Wavelength: wavelength, Frequency: frequency},
		WaveSource{Pos: dynamo.V(0, separation/2), Amplitude: 1, Wavelength: wavelength, Frequency: frequency},
	)
}

func (w *Superposition) amplitudeAt(s WaveSource, r float64) float64 {
	if !w.Attenuate {
		return s.Amplitude
	}
	eps := w.MinDistance
	if eps <= 0 {
		eps = DefaultMinDistance
	}
	return s.Amplitude / math.Sqrt(math.Max(r, eps))
}

// Sample is the summed displacement A sin(kr - wt + phi) at p and time t.
func (w *Superposition) Sample(p dynamo.Vec2, t float64) float64 {
	sum := 0.0
	for _, s := range w.Sources {
		r := p.Dist(s.Pos)
		sum += w.amplitudeAt(s, r) * math.Sin(s.waveNumber()*r-s.angularFrequency()*t+s.Phase)
	}
	return sum
}

// Intensity is the time average of the squared displacement at p. Sources
// sharing a frequency interfere; cross terms between different frequencies
// average to zero.
func (w *Superposition) Intensity(p dynamo.Vec2) float64 {
	phasors := make(map[float64]complex128)
	for _, s := range w.Sources {
		r := p.Dist(s.Pos)
		phasors[s.Frequency] += cmplx.Rect(w.amplitudeAt(s, r), s.waveNumber()*r+s.Phase)
	}
	total := 0.0
	for _, z := range phasors {
		a := cmplx.Abs(z)
		total += a * a / 2
	}
	return total
}

// Grid samples a cols x rows lattice spanning b at time t, row-major from
// MinY. It uses the lookup-table sine since it runs once per frame.
func (w *Superposition) Grid(b Bounds, cols, rows int, t float64) [][]float64 {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	grid := make([][]float64, rows)
	dx := b.Width() / float64(max(cols-1, 1))
	dy := b.Height() / float64(max(rows-1, 1))
	for j := range grid {
		grid[j] = make([]float64, cols)
		for i := range grid[j] {
			p := dynamo.V(b.MinX+float64(i)*dx, b.MinY+float64(j)*dy)
			sum := 0.0
			for _, s := range w.Sources {
				r := p.Dist(s.Pos)
				sum += w.amplitudeAt(s, r) * dynamo.FastSin(s.waveNumber()*r-s.angularFrequency()*t+s.Phase)
			}
			grid[j][i] = sum
		}
	}
	return grid
}

// Standing is the sum of two equal waves travelling in opposite directions
// along x: 2A sin(kx) cos(wt).
func Standing(amplitude, wavelength, frequency, x, t float64) float64 {
	if wavelength <= 0 {
		return 0
	}
	k := 2 * math.Pi / wavelength
	omega := 2 * math.Pi * frequency
	return 2 * amplitude * math.Sin(k*x) * math.Cos(omega*t)
}

// WaveAnimation drives a Superposition's clock so playback can animate it.
// The field itself stays stateless; only time advances.
type WaveAnimation struct {
	*Superposition
	Bounds Bounds
	t      float64
}

func NewWaveAnimation(w *Superposition, b Bounds) *WaveAnimation {
	return &WaveAnimation{Superposition: w, Bounds: b}
}

func (a *WaveAnimation) Tick(dt float64) { a.t += dt }
func (a *WaveAnimation) Reset()          { a.t = 0 }
func (a *WaveAnimation) Time() float64   { return a.t }

// Frame samples the animation's bounds at the current time.
func (a *WaveAnimation) Frame(cols, rows int) [][]float64 {
	return a.Grid(a.Bounds, cols, rows, a.t)
}
