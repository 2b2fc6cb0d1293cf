package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rotsim/internal/dynamo"
)

const (
	DefaultStep     = dynamo.DefaultStep
	DefaultMaxTicks = dynamo.DefaultMaxTicks
	DefaultDuration = 10.0
	DefaultMass     = 1.0
	DefaultSequence = "ZYX"
	DefaultAxis     = "Z Down"
	DefaultK        = 1.0
	DefaultLever    = 1.0
	DefaultGravity  = 1.0
)

const (
	RateVelocity = "velocity"
	RateMomentum = "momentum"
)

type Config struct {
	Name        string            `yaml:"name,omitempty"`
	Integrator  string            `yaml:"integrator"`
	Step        float64           `yaml:"step"`
	MaxTicks    int               `yaml:"max_ticks"`
	Duration    float64           `yaml:"duration"`
	Correction  bool              `yaml:"correction"`
	Body        BodyConfig        `yaml:"body"`
	Orientation OrientationConfig `yaml:"orientation"`
	Rate        RateConfig        `yaml:"rate"`
	Torque      TorqueConfig      `yaml:"torque"`
}

// BodyConfig gives mass properties either as principal moments or, when Box
// is set, as the extents of a uniform box.
type BodyConfig struct {
	Mass    float64     `yaml:"mass"`
	Inertia [3]float64  `yaml:"inertia,flow"`
	Ixz     float64     `yaml:"ixz,omitempty"`
	Box     *[3]float64 `yaml:"box,omitempty,flow"`
}

// OrientationConfig sets the initial attitude from Euler angles in degrees,
// or from Quaternion (w, x, y, z) when present.
type OrientationConfig struct {
	Sequence   string      `yaml:"sequence"`
	Angles     [3]float64  `yaml:"angles,flow"`
	Quaternion *[4]float64 `yaml:"quaternion,omitempty,flow"`
}

// RateConfig is the initial spin. Kind "momentum" points H, rather than ω,
// along Direction; Magnitude is a rate in both cases.
type RateConfig struct {
	Kind      string     `yaml:"kind"`
	Magnitude float64    `yaml:"magnitude"`
	Direction [3]float64 `yaml:"direction,flow"`
}

type TorqueConfig struct {
	Mode      string     `yaml:"mode"`
	Magnitude float64    `yaml:"magnitude,omitempty"`
	Direction [3]float64 `yaml:"direction,flow"`
	Deadband  float64    `yaml:"deadband,omitempty"`
	K         float64    `yaml:"k,omitempty"`
	Axis      string     `yaml:"axis,omitempty"`
	Lever     float64    `yaml:"lever,omitempty"`
	Gravity   float64    `yaml:"gravity,omitempty"`
	Mass      float64    `yaml:"mass,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: "rk4",
		Step:       DefaultStep,
		MaxTicks:   DefaultMaxTicks,
		Duration:   DefaultDuration,
		Correction: true,
		Body: BodyConfig{
			Mass:    DefaultMass,
			Inertia: [3]float64{1, 2, 3},
		},
		Orientation: OrientationConfig{Sequence: DefaultSequence},
		Rate: RateConfig{
			Kind:      RateVelocity,
			Magnitude: 0.5,
			Direction: [3]float64{1, 0, 0},
		},
		Torque: TorqueConfig{
			Mode:    "none",
			Axis:    DefaultAxis,
			K:       DefaultK,
			Lever:   DefaultLever,
			Gravity: DefaultGravity,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Body.Box != nil {
		box := *c.Body.Box
		out.Body.Box = &box
	}
	if c.Orientation.Quaternion != nil {
		q := *c.Orientation.Quaternion
		out.Orientation.Quaternion = &q
	}
	return &out
}

// Validate checks ranges that do not need the domain packages. Names of
// modes, sequences, axes and integrators are checked where they are built.
func (c *Config) Validate() error {
	switch {
	case c.Step < 0:
		return fmt.Errorf("step must not be negative, got %v: %w", c.Step, dynamo.ErrParameterBounds)
	case c.MaxTicks < 0:
		return fmt.Errorf("max_ticks must not be negative, got %d: %w", c.MaxTicks, dynamo.ErrParameterBounds)
	case c.Duration <= 0:
		return fmt.Errorf("duration must be positive, got %v: %w", c.Duration, dynamo.ErrParameterBounds)
	case c.Body.Mass <= 0:
		return fmt.Errorf("mass must be positive, got %v: %w", c.Body.Mass, dynamo.ErrParameterBounds)
	case c.Rate.Magnitude < 0:
		return fmt.Errorf("rate magnitude must not be negative, got %v: %w", c.Rate.Magnitude, dynamo.ErrParameterBounds)
	case c.Torque.Deadband < 0:
		return fmt.Errorf("deadband must not be negative, got %v: %w", c.Torque.Deadband, dynamo.ErrParameterBounds)
	}
	if c.Rate.Kind != RateVelocity && c.Rate.Kind != RateMomentum {
		return fmt.Errorf("rate kind must be %q or %q, got %q: %w", RateVelocity, RateMomentum, c.Rate.Kind, dynamo.ErrParameterBounds)
	}
	if c.Body.Box == nil {
		for i, m := range c.Body.Inertia {
			if m <= 0 {
				return fmt.Errorf("inertia[%d] = %v: %w", i, m, dynamo.ErrNonPositiveInertia)
			}
		}
	}
	return nil
}
