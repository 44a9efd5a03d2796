package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Arithmetic(t *testing.T) {
	a := State{1, 2, 3}
	b := State{4, 5, 6}

	sum := a.Add(b)
	if sum[0] != 5 || sum[1] != 7 || sum[2] != 9 {
		t.Errorf("Add failed: got %v", sum)
	}

	diff := b.Sub(a)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[0] != 2 || scaled[1] != 4 || scaled[2] != 6 {
		t.Errorf("Scale failed: got %v", scaled)
	}
}

func TestState_CloneIsIndependent(t *testing.T) {
	src := State{1, 2, 3}
	c := src.Clone()
	c[0] = 99
	if src[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestVec2(t *testing.T) {
	a := V(3, 4)
	if a.Length() != 5 {
		t.Errorf("Length() = %v, want 5", a.Length())
	}
	n := a.Normalized()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Normalized length = %v, want 1", n.Length())
	}
	if (Vec2{}).Normalized() != (Vec2{}) {
		t.Error("zero vector should normalize to zero")
	}
	if d := a.Dot(V(1, 0)); d != 3 {
		t.Errorf("Dot = %v, want 3", d)
	}
	if !a.Sub(V(1, 1)).Equal(V(2, 3), 1e-12) {
		t.Errorf("Sub = %v", a.Sub(V(1, 1)))
	}
	if V(math.NaN(), 0).IsValid() {
		t.Error("NaN vector reported valid")
	}
}

func TestParamError(t *testing.T) {
	err := &ParamError{Name: "gravity", Value: -1, Wrapped: ErrParameterBounds}
	if !errors.Is(err, ErrParameterBounds) {
		t.Error("ParamError should unwrap to ErrParameterBounds")
	}
	if err.Error() != "dynamo: parameter out of valid bounds: gravity" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestTrigTable(t *testing.T) {
	for _, x := range []float64{0, 0.3, 1.7, -2.2, 10} {
		if got := FastSin(x); math.Abs(got-math.Sin(x)) > 1e-5 {
			t.Errorf("FastSin(%v) = %v, want %v", x, got, math.Sin(x))
		}
	}
}

func TestTrigTableNonFinite(t *testing.T) {
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := FastSin(x); got != 0 {
			t.Errorf("FastSin(%v) = %v, want 0", x, got)
		}
	}
}
