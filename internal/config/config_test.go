package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, [3]float32{0, -9.81, 0}, cfg.Gravity)
	assert.Equal(t, 4, cfg.Solver.VelocityIterations)
	assert.Equal(t, 2, cfg.Solver.PositionIterations)
	assert.Equal(t, float32(0.01), cfg.Solver.Slop)
	assert.Equal(t, float32(0.8), cfg.Solver.Friction)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physics.yaml")
	data := []byte(`
gravity: [0, -3.7, 0]
solver:
  velocity_iterations: 8
  slop: 0.02
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Named fields override, everything else keeps its default.
	assert.Equal(t, float32(-3.7), cfg.Gravity[1])
	assert.Equal(t, 8, cfg.Solver.VelocityIterations)
	assert.Equal(t, float32(0.02), cfg.Solver.Slop)
	assert.Equal(t, 2, cfg.Solver.PositionIterations)
	assert.Equal(t, float32(0.3), cfg.Solver.Bias)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestToParams(t *testing.T) {
	cfg := Default()
	cfg.Gravity = [3]float32{1, 2, 3}
	cfg.Solver.ContactRadius = 0.7

	p := cfg.ToParams()
	assert.Equal(t, float32(1), p.Gravity.X)
	assert.Equal(t, float32(2), p.Gravity.Y)
	assert.Equal(t, float32(3), p.Gravity.Z)
	assert.Equal(t, float32(0.7), p.DefaultContactRadius)
	assert.Equal(t, 4, p.VelocityIterations)
}
