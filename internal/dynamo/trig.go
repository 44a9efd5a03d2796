package dynamo

import "math"

// TrigTable is a sine lookup table with linear interpolation. Wave grids
// sample thousands of points per frame, where the table beats math.Sin.
type TrigTable struct {
	sin []float64
	n   int
}

// DefaultTrigTable has 4096 entries, about 0.0015 rad apart.
var DefaultTrigTable = NewTrigTable(4096)

func NewTrigTable(n int) *TrigTable {
	if n < 2 {
		n = 2
	}
	t := &TrigTable{sin: make([]float64, n), n: n}
	for i := range n {
		t.sin[i] = math.Sin(float64(i) * 2 * math.Pi / float64(n))
	}
	return t
}

// index maps x onto the two neighbouring entries and the blend between them.
// Non-finite x maps to the first entry.
func (t *TrigTable) index(x float64) (i0, i1 int, frac float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, 1, 0
	}
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	idx := x * float64(t.n) / (2 * math.Pi)
	i := int(idx)
	return i % t.n, (i + 1) % t.n, idx - float64(i)
}

func (t *TrigTable) Sin(x float64) float64 {
	i0, i1, f := t.index(x)
	return t.sin[i0]*(1-f) + t.sin[i1]*f
}

func FastSin(x float64) float64 { return DefaultTrigTable.Sin(x) }
