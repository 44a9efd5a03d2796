package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

// Preset is a named scenario: params decoded over one visualizer's section.
type Preset struct {
	Description string
	Params      map[string]any
}

func body(x, y, vx, vy, radius, mass float64) map[string]any {
	return map[string]any{
		"pos":    map[string]any{"x": x, "y": y},
		"vel":    map[string]any{"x": vx, "y": vy},
		"radius": radius,
		"mass":   mass,
	}
}

func charge(x, y, q float64) map[string]any {
	return map[string]any{"pos": map[string]any{"x": x, "y": y}, "q": q}
}

func source(x, y, wavelength, frequency float64) map[string]any {
	return map[string]any{
		"pos":        map[string]any{"x": x, "y": y},
		"amplitude":  1.0,
		"wavelength": wavelength,
		"frequency":  frequency,
	}
}

var Presets = map[string]map[string]Preset{
	"twosum": {
		"classic":   {"Pair at the start", map[string]any{"nums": []int{2, 7, 11, 15}, "target": 9}},
		"duplicate": {"Both halves share a value", map[string]any{"nums": []int{3, 3}, "target": 6}},
		"missing":   {"No pair exists", map[string]any{"nums": []int{1, 2, 3}, "target": 100}},
		"negative":  {"Negative complement", map[string]any{"nums": []int{-3, 4, 3, 90}, "target": 0}},
	},
	"palindrome": {
		"panama":   {"Punctuation and case are ignored", map[string]any{"text": "A man, a plan, a canal: Panama"}},
		"race":     {"Fails in the middle", map[string]any{"text": "race a car"}},
		"cat":      {"Question with spaces", map[string]any{"text": "Was it a car or a cat I saw?"}},
		"symbols":  {"Nothing to compare", map[string]any{"text": ".,!"}},
		"odd_char": {"Single character core", map[string]any{"text": "abcba"}},
	},
	"perceptron": {
		"and":  {"Linearly separable AND", map[string]any{"gate": "and", "learning_rate": 0.1, "max_epochs": 20}},
		"or":   {"Linearly separable OR", map[string]any{"gate": "or", "learning_rate": 0.5, "max_epochs": 20}},
		"xor":  {"XOR never converges", map[string]any{"gate": "xor", "learning_rate": 0.1, "max_epochs": 5}},
		"slow": {"Small learning rate", map[string]any{"gate": "and", "learning_rate": 0.01, "max_epochs": 50}},
	},
	"collision": {
		"head_on": {"Light body strikes a heavy one", map[string]any{
			"gravity": 0,
			"bodies":  []any{body(2, 3, 3, 0, 0.4, 1), body(7, 3, 0, 0, 0.6, 3)},
		}},
		"equal_mass": {"Equal masses swap velocities", map[string]any{
			"gravity": 0,
			"bodies":  []any{body(3, 3, 2, 0, 0.5, 1), body(7, 3, -2, 0, 0.5, 1)},
		}},
		"cradle": {"Momentum passes down a row", map[string]any{
			"gravity": 0,
			"bodies": []any{
				body(1, 3, 4, 0, 0.5, 1), body(5, 3, 0, 0, 0.5, 1),
				body(6.01, 3, 0, 0, 0.5, 1), body(7.02, 3, 0, 0, 0.5, 1),
			},
		}},
		"bouncing": {"Gravity with a lossy floor", map[string]any{
			"gravity":           9.81,
			"floor_restitution": 0.95,
			"bodies": []any{
				body(2, 1, 1.5, 0, 0.4, 1), body(5, 2, -1, 0, 0.6, 2), body(8, 0.8, -2, 0, 0.3, 0.5),
			},
		}},
	},
	"gas": {
		"cold":  {"Slow particles", map[string]any{"temperature": 0.5}},
		"hot":   {"Fast particles", map[string]any{"temperature": 4}},
		"dense": {"Many particles", map[string]any{"particles": 800}},
		"tall":  {"Narrow container", map[string]any{"width": 4, "height": 16}},
	},
	"projectile": {
		"max_range": {"45 degrees without drag", map[string]any{"angle": 45, "drag": 0}},
		"lob":       {"Steep launch", map[string]any{"angle": 75}},
		"drag":      {"Linear air resistance", map[string]any{"angle": 45, "drag": 0.3}},
		"cliff":     {"Horizontal launch from a height", map[string]any{"angle": 0, "height": 20}},
		"euler":     {"Coarse integrator for comparison", map[string]any{"integrator": "euler"}},
	},
	"string": {
		"plucked": {"Undamped triangle pluck", map[string]any{"damping": 0}},
		"damped":  {"Decaying vibration", map[string]any{"damping": 0.5}},
		"taut":    {"Faster waves", map[string]any{"wave_speed": 2}},
	},
	"field": {
		"dipole": {"Opposite charges", map[string]any{"charges": []any{charge(-2, 0, 1), charge(2, 0, -1)}}},
		"like":   {"Two positive charges", map[string]any{"charges": []any{charge(-2, 0, 1), charge(2, 0, 1)}}},
		"quadrupole": {"Alternating square", map[string]any{"charges": []any{
			charge(-2, -2, 1), charge(2, -2, -1), charge(2, 2, 1), charge(-2, 2, -1),
		}}},
	},
	"wave": {
		"two_slit": {"Coherent pair", map[string]any{"sources": []any{source(0, -1.5, 1.5, 0.5), source(0, 1.5, 1.5, 0.5)}}},
		"single":   {"One source", map[string]any{"sources": []any{source(0, 0, 2, 0.5)}}},
		"beats":    {"Slightly detuned pair", map[string]any{"sources": []any{source(0, -1, 1.5, 0.5), source(0, 1, 1.5, 0.55)}}},
		"fading":   {"Amplitude falls with distance", map[string]any{"attenuate": true}},
	},
	"photoelectric": {
		"sodium": {"Threshold in the visible", map[string]any{"metal": "sodium"}},
		"cesium": {"Lowest work function", map[string]any{"metal": "cesium"}},
		"copper": {"Needs ultraviolet", map[string]any{"metal": "copper", "from": 100, "to": 400}},
	},
}

func GetPreset(visualizer, name string) (Preset, bool) {
	p, ok := Presets[visualizer][name]
	return p, ok
}

// ListPresets returns preset names for a visualizer, sorted, or nil.
func ListPresets(visualizer string) []string {
	presets, ok := Presets[visualizer]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset decodes a preset over the visualizer's section.
func (c *Config) ApplyPreset(visualizer, name string) error {
	p, ok := GetPreset(visualizer, name)
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownPreset, visualizer, name)
	}
	return c.ApplySection(visualizer, p.Params)
}
