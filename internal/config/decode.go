package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var ErrUnknownSection = errors.New("config: unknown section")

// Decode writes params onto target with weak typing, so "0.5" fills a
// float64 and "1,2,3" fills a []int. Slices and maps in params replace the
// target's rather than merging element-wise. Unknown keys are an error.
func Decode(target any, params map[string]any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		ZeroFields:       true,
		ErrorUnused:      true,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("config: decoder: %w", err)
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// ParseSet turns key=value pairs into a nested map. Dotted keys nest, so
// "gas.temperature=2" becomes {"gas": {"temperature": "2"}}. Values stay
// strings for Decode to convert; comma lists are split only when the
// target field is a slice.
func ParseSet(pairs []string) (map[string]any, error) {
	out := make(map[string]any)
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", ErrInvalid, pair)
		}

		parts := strings.Split(key, ".")
		node := out
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = strings.TrimSpace(value)
	}
	return out, nil
}

// Section returns a pointer to the part of c that configures a visualizer.
func (c *Config) Section(visualizer string) (any, error) {
	switch visualizer {
	case "twosum":
		return &c.TwoSum, nil
	case "palindrome":
		return &c.Palindrome, nil
	case "perceptron":
		return &c.Perceptron, nil
	case "collision":
		return &c.Collision, nil
	case "gas":
		return &c.Gas, nil
	case "projectile":
		return &c.Projectile, nil
	case "string":
		return &c.String, nil
	case "field":
		return &c.Field, nil
	case "wave":
		return &c.Wave, nil
	case "photoelectric":
		return &c.Photoelectric, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSection, visualizer)
}

// Apply decodes dotted overrides over the whole config and revalidates.
func (c *Config) Apply(params map[string]any) error {
	if len(params) == 0 {
		return nil
	}
	if err := Decode(c, params); err != nil {
		return err
	}
	return c.Validate()
}

// ApplySection decodes params into one visualizer's section.
func (c *Config) ApplySection(visualizer string, params map[string]any) error {
	section, err := c.Section(visualizer)
	if err != nil {
		return err
	}
	if err := Decode(section, params); err != nil {
		return err
	}
	return c.Validate()
}
