package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.Playback.StepInterval)
	assert.Equal(t, 0.95, cfg.Collision.FloorRestitution)
	assert.Len(t, cfg.Collision.Bodies, 2)
	assert.Len(t, cfg.Field.Charges, 2)
	assert.Equal(t, "and", cfg.Perceptron.Gate)
	assert.Equal(t, 0.1, cfg.Perceptron.LearningRate)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allvis.yaml")
	data := `
log_level: debug
playback:
  step_interval: 250ms
collision:
  floor_restitution: 0.8
  bodies:
    - pos: {x: 1, y: 2}
      vel: {x: 3, y: 0}
      radius: 0.5
      mass: 2
perceptron:
  gate: xor
  max_epochs: 7
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.Playback.StepInterval)
	assert.Equal(t, DefaultTickInterval, cfg.Playback.TickInterval)
	assert.Equal(t, 0.8, cfg.Collision.FloorRestitution)
	require.Len(t, cfg.Collision.Bodies, 1)
	assert.Equal(t, 2.0, cfg.Collision.Bodies[0].Pos.Y)
	assert.Equal(t, "xor", cfg.Perceptron.Gate)
	assert.Equal(t, 7, cfg.Perceptron.MaxEpochs)
	assert.Equal(t, 0.1, cfg.Perceptron.LearningRate)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sim:\n  dt: -1\n"), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Gas.Temperature = 3
	cfg.TwoSum.Nums = []int{4, 5}

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
