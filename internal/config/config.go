// Package config loads the YAML settings shared by every visualizer and
// decodes ad hoc parameter overrides into them.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/allvis/internal/physics"
	"github.com/san-kum/allvis/internal/trace"
)

const (
	DefaultDt           = 1.0 / 60
	DefaultDuration     = 10.0
	DefaultStepInterval = time.Second
	DefaultTickInterval = time.Second / 60
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	Theme    string `yaml:"theme" mapstructure:"theme"`

	Playback PlaybackConfig `yaml:"playback" mapstructure:"playback"`
	Sim      SimConfig      `yaml:"sim" mapstructure:"sim"`

	TwoSum     TwoSumConfig     `yaml:"twosum" mapstructure:"twosum"`
	Palindrome PalindromeConfig `yaml:"palindrome" mapstructure:"palindrome"`
	Perceptron PerceptronConfig `yaml:"perceptron" mapstructure:"perceptron"`

	Collision     CollisionConfig          `yaml:"collision" mapstructure:"collision"`
	Gas           physics.GasParams        `yaml:"gas" mapstructure:"gas"`
	Projectile    physics.ProjectileParams `yaml:"projectile" mapstructure:"projectile"`
	String        physics.StringParams     `yaml:"string" mapstructure:"string"`
	Field         FieldConfig              `yaml:"field" mapstructure:"field"`
	Wave          WaveConfig               `yaml:"wave" mapstructure:"wave"`
	Photoelectric PhotoelectricConfig      `yaml:"photoelectric" mapstructure:"photoelectric"`
}

type PlaybackConfig struct {
	StepInterval time.Duration `yaml:"step_interval" mapstructure:"step_interval"`
	TickInterval time.Duration `yaml:"tick_interval" mapstructure:"tick_interval"`
}

type SimConfig struct {
	Dt          float64 `yaml:"dt" mapstructure:"dt"`
	Duration    float64 `yaml:"duration" mapstructure:"duration"`
	SampleEvery int     `yaml:"sample_every" mapstructure:"sample_every"`
}

type TwoSumConfig struct {
	Nums   []int `yaml:"nums" mapstructure:"nums"`
	Target int   `yaml:"target" mapstructure:"target"`
}

type PalindromeConfig struct {
	Text string `yaml:"text" mapstructure:"text"`
}

type PerceptronConfig struct {
	Gate                   string `yaml:"gate" mapstructure:"gate"`
	trace.PerceptronConfig `yaml:",inline" mapstructure:",squash"`
}

type CollisionConfig struct {
	physics.CollisionParams `yaml:",inline" mapstructure:",squash"`
	Bodies                  []physics.Body `yaml:"bodies" mapstructure:"bodies"`
}

type FieldConfig struct {
	Charges        []physics.Charge `yaml:"charges" mapstructure:"charges"`
	LinesPerCharge int              `yaml:"lines_per_charge" mapstructure:"lines_per_charge"`
	Step           float64          `yaml:"step" mapstructure:"step"`
	MaxSteps       int              `yaml:"max_steps" mapstructure:"max_steps"`
}

type WaveConfig struct {
	Sources   []physics.WaveSource `yaml:"sources" mapstructure:"sources"`
	Attenuate bool                 `yaml:"attenuate" mapstructure:"attenuate"`
	Extent    float64              `yaml:"extent" mapstructure:"extent"`
}

type PhotoelectricConfig struct {
	Metal string `yaml:"metal" mapstructure:"metal"`
	// Wavelengths, in nanometres, sampled by the sweep.
	From float64 `yaml:"from" mapstructure:"from"`
	To   float64 `yaml:"to" mapstructure:"to"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Theme:    "default",
		Playback: PlaybackConfig{
			StepInterval: DefaultStepInterval,
			TickInterval: DefaultTickInterval,
		},
		Sim: SimConfig{
			Dt:          DefaultDt,
			Duration:    DefaultDuration,
			SampleEvery: 6,
		},
		TwoSum:     TwoSumConfig{Nums: []int{2, 7, 11, 15}, Target: 9},
		Palindrome: PalindromeConfig{Text: "A man, a plan, a canal: Panama"},
		Perceptron: PerceptronConfig{Gate: "and", PerceptronConfig: trace.DefaultPerceptronConfig()},
		Collision: CollisionConfig{
			CollisionParams: physics.DefaultCollisionParams(),
			Bodies:          physics.DefaultBodies(),
		},
		Gas:        physics.DefaultGasParams(),
		Projectile: physics.DefaultProjectileParams(),
		String:     physics.DefaultStringParams(),
		Field: FieldConfig{
			Charges:        physics.Dipole(1, 4).Charges,
			LinesPerCharge: 12,
			Step:           0.05,
			MaxSteps:       2000,
		},
		Wave: WaveConfig{
			Sources: physics.TwoSlit(3, 1.5, 0.5).Sources,
			Extent:  10,
		},
		Photoelectric: PhotoelectricConfig{Metal: "sodium", From: 200, To: 700},
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.Sim.Dt <= 0:
		return fmt.Errorf("%w: sim.dt must be positive, got %v", ErrInvalid, c.Sim.Dt)
	case c.Sim.Duration <= 0:
		return fmt.Errorf("%w: sim.duration must be positive, got %v", ErrInvalid, c.Sim.Duration)
	case c.Playback.StepInterval <= 0 || c.Playback.TickInterval <= 0:
		return fmt.Errorf("%w: playback intervals must be positive", ErrInvalid)
	case c.Collision.FloorRestitution < 0 || c.Collision.FloorRestitution > 1:
		return fmt.Errorf("%w: collision.floor_restitution must be in [0, 1], got %v", ErrInvalid, c.Collision.FloorRestitution)
	case c.Gas.Particles < 0:
		return fmt.Errorf("%w: gas.particles must not be negative", ErrInvalid)
	case c.Perceptron.MaxEpochs < 0:
		return fmt.Errorf("%w: perceptron.max_epochs must not be negative", ErrInvalid)
	}
	return nil
}
