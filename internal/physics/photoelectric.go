package physics

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// PlanckEV is Planck's constant in eV*s.
	PlanckEV = 4.135667696e-15
	// SpeedOfLight in m/s.
	SpeedOfLight = 299792458.0
)

// thresholdTolerance absorbs rounding when sampling exactly at threshold.
const thresholdTolerance = 1e-12

// WorkFunctions lists common metals in eV.
var WorkFunctions = map[string]float64{
	"cesium":    2.14,
	"potassium": 2.29,
	"sodium":    2.36,
	"calcium":   2.87,
	"zinc":      4.33,
	"copper":    4.65,
	"silver":    4.73,
	"platinum":  5.65,
}

// Metals returns the keys of WorkFunctions, sorted.
func Metals() []string {
	names := make([]string, 0, len(WorkFunctions))
	for name := range WorkFunctions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Photoelectric samples electron emission from a metal surface. It has no
// state between samples.
type Photoelectric struct {
	WorkFunction float64 // eV
}

// NewPhotoelectric looks the metal up by name, case-insensitively.
func NewPhotoelectric(metal string) (Photoelectric, error) {
	w, ok := WorkFunctions[strings.ToLower(metal)]
	if !ok {
		return Photoelectric{}, fmt.Errorf("physics: unknown metal %q", metal)
	}
	return Photoelectric{WorkFunction: w}, nil
}

// ThresholdFrequency is the lowest photon frequency, in Hz, that ejects an
// electron.
func (p Photoelectric) ThresholdFrequency() float64 {
	return p.WorkFunction / PlanckEV
}

// PhotonEnergy is hf in eV.
func PhotonEnergy(frequency float64) float64 {
	return PlanckEV * frequency
}

// Sample reports whether light at frequency ejects an electron and, if so,
// the maximum kinetic energy in eV. At exactly the threshold an electron is
// ejected with zero energy.
func (p Photoelectric) Sample(frequency float64) (ejected bool, kinetic float64) {
	ke := PhotonEnergy(frequency) - p.WorkFunction
	if ke < -thresholdTolerance {
		return false, 0
	}
	return true, max(ke, 0)
}

// StoppingVoltage is the retarding potential, in volts, that halts the
// fastest electron.
func (p Photoelectric) StoppingVoltage(frequency float64) float64 {
	_, ke := p.Sample(frequency)
	return ke
}

// FrequencyFromWavelength converts a wavelength in nanometres to Hz.
func FrequencyFromWavelength(nm float64) float64 {
	if nm <= 0 {
		return 0
	}
	return SpeedOfLight / (nm * 1e-9)
}
