package config

import (
	"fmt"
	"maps"
	"slices"
)

var params = map[string]func(c *Config) *float64{
	"step":             func(c *Config) *float64 { return &c.Step },
	"duration":         func(c *Config) *float64 { return &c.Duration },
	"mass":             func(c *Config) *float64 { return &c.Body.Mass },
	"inertia.x":        func(c *Config) *float64 { return &c.Body.Inertia[0] },
	"inertia.y":        func(c *Config) *float64 { return &c.Body.Inertia[1] },
	"inertia.z":        func(c *Config) *float64 { return &c.Body.Inertia[2] },
	"rate":             func(c *Config) *float64 { return &c.Rate.Magnitude },
	"torque.magnitude": func(c *Config) *float64 { return &c.Torque.Magnitude },
	"torque.deadband":  func(c *Config) *float64 { return &c.Torque.Deadband },
	"torque.k":         func(c *Config) *float64 { return &c.Torque.K },
	"torque.lever":     func(c *Config) *float64 { return &c.Torque.Lever },
	"torque.gravity":   func(c *Config) *float64 { return &c.Torque.Gravity },
}

// ParamNames lists the scalar fields accepted by SetParam and GetParam.
func ParamNames() []string {
	return slices.Sorted(maps.Keys(params))
}

func (c *Config) SetParam(name string, v float64) error {
	field, ok := params[name]
	if !ok {
		return fmt.Errorf("unknown parameter %q (available: %v)", name, ParamNames())
	}
	*field(c) = v
	return nil
}

func (c *Config) GetParam(name string) (float64, error) {
	field, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("unknown parameter %q (available: %v)", name, ParamNames())
	}
	return *field(c), nil
}

// Apply sets every parameter in values, stopping at the first unknown name.
func (c *Config) Apply(values map[string]float64) error {
	for _, name := range slices.Sorted(maps.Keys(values)) {
		if err := c.SetParam(name, values[name]); err != nil {
			return err
		}
	}
	return nil
}
