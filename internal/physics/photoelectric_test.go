package physics

import (
	"math"
	"sort"
	"testing"
)

func TestPhotoelectricSample(t *testing.T) {
	copper, err := NewPhotoelectric("Copper")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		nm      float64
		ejected bool
		ke      float64
	}{
		{"ultraviolet", 200, true, PlanckEV*FrequencyFromWavelength(200) - 4.65},
		{"visible", 500, false, 0},
		{"infrared", 1500, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ejected, ke := copper.Sample(FrequencyFromWavelength(tt.nm))
			if ejected != tt.ejected || math.Abs(ke-tt.ke) > 1e-9 {
				t.Errorf("Sample(%vnm) = (%v, %f), want (%v, %f)", tt.nm, ejected, ke, tt.ejected, tt.ke)
			}
		})
	}

	if _, ke := copper.Sample(FrequencyFromWavelength(200)); math.Abs(ke-1.549) > 0.01 {
		t.Errorf("expected about 1.55 eV at 200nm, got %f", ke)
	}
}

func TestPhotoelectricThreshold(t *testing.T) {
	sodium := Photoelectric{WorkFunction: 2.36}
	f0 := sodium.ThresholdFrequency()

	if math.Abs(f0-5.7065e14)/5.7065e14 > 1e-3 {
		t.Errorf("unexpected threshold %e", f0)
	}
	if ejected, ke := sodium.Sample(f0); !ejected || ke > 1e-12 {
		t.Errorf("expected zero-energy emission at threshold, got (%v, %f)", ejected, ke)
	}
	if ejected, _ := sodium.Sample(0.99 * f0); ejected {
		t.Error("expected no emission below threshold")
	}
	if v := sodium.StoppingVoltage(2 * f0); math.Abs(v-2.36) > 1e-9 {
		t.Errorf("expected stopping voltage 2.36, got %f", v)
	}
}

func TestMetals(t *testing.T) {
	names := Metals()
	if len(names) != len(WorkFunctions) || !sort.StringsAreSorted(names) {
		t.Errorf("unexpected metal list %v", names)
	}
	if _, err := NewPhotoelectric("unobtainium"); err == nil {
		t.Error("expected error for unknown metal")
	}
}
