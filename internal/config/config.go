package config

import (
	"fmt"
	"os"

	"kin3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// Config is the YAML-facing physics configuration. Every field has a
// compiled-in default, so a config file only needs to name what it
// changes.
type Config struct {
	Gravity [3]float32 `yaml:"gravity"`
	Solver  Solver     `yaml:"solver"`
}

type Solver struct {
	VelocityIterations int     `yaml:"velocity_iterations"`
	PositionIterations int     `yaml:"position_iterations"`
	Slop               float32 `yaml:"slop"`
	Bias               float32 `yaml:"bias"`
	Friction           float32 `yaml:"friction"`
	InertiaFactor      float32 `yaml:"inertia_factor"`
	ContactRadius      float32 `yaml:"contact_radius"`
	SnapEpsilon        float32 `yaml:"snap_epsilon"`
}

func Default() *Config {
	p := physics.DefaultParams()
	return &Config{
		Gravity: [3]float32{p.Gravity.X, p.Gravity.Y, p.Gravity.Z},
		Solver: Solver{
			VelocityIterations: p.VelocityIterations,
			PositionIterations: p.PositionIterations,
			Slop:               p.Slop,
			Bias:               p.Bias,
			Friction:           p.Friction,
			InertiaFactor:      p.InertiaFactor,
			ContactRadius:      p.DefaultContactRadius,
			SnapEpsilon:        p.SnapEpsilon,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults untouched.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ToParams maps the configuration onto solver parameters.
func (c *Config) ToParams() physics.Params {
	return physics.Params{
		Gravity:              rl.Vector3{X: c.Gravity[0], Y: c.Gravity[1], Z: c.Gravity[2]},
		VelocityIterations:   c.Solver.VelocityIterations,
		PositionIterations:   c.Solver.PositionIterations,
		Slop:                 c.Solver.Slop,
		Bias:                 c.Solver.Bias,
		Friction:             c.Solver.Friction,
		InertiaFactor:        c.Solver.InertiaFactor,
		DefaultContactRadius: c.Solver.ContactRadius,
		SnapEpsilon:          c.Solver.SnapEpsilon,
	}
}
