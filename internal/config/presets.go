package config

import (
	"maps"
	"slices"
)

func preset(name string, edit func(c *Config)) *Config {
	c := DefaultConfig()
	c.Name = name
	edit(c)
	return c
}

var Presets = map[string]*Config{
	"cessna-172": preset("cessna-172", func(c *Config) {
		c.Body = BodyConfig{Mass: 1043.3, Inertia: [3]float64{1285.3, 1824.9, 2666.9}}
		c.Rate = RateConfig{Kind: RateVelocity, Magnitude: 0.5, Direction: [3]float64{1, 0.2, 0.1}}
	}),
	"new-horizons": preset("new-horizons", func(c *Config) {
		c.Body = BodyConfig{Mass: 401, Inertia: [3]float64{161.38, 402.12, 316}}
		c.Rate = RateConfig{Kind: RateMomentum, Magnitude: 0.5, Direction: [3]float64{0, 1, 0.05}}
		c.Duration = 60
	}),
	"tumble": preset("tumble", func(c *Config) {
		c.Rate = RateConfig{Kind: RateVelocity, Magnitude: 1, Direction: [3]float64{0.01, 1, 0}}
		c.Duration = 30
	}),
	"spin-x": preset("spin-x", func(c *Config) {
		c.Duration = 1
	}),
	"acs-detumble": preset("acs-detumble", func(c *Config) {
		c.Rate = RateConfig{Kind: RateVelocity, Magnitude: 0.3742, Direction: [3]float64{0.3, -0.2, 0.1}}
		c.Torque.Mode = "acs"
		c.Torque.Deadband = 0.01
		c.Torque.Magnitude = 0.5
	}),
	"gravity-gradient": preset("gravity-gradient", func(c *Config) {
		c.Orientation = OrientationConfig{Sequence: "XYZ", Angles: [3]float64{20, 30, 40}}
		c.Rate = RateConfig{Kind: RateVelocity, Magnitude: 1.3748, Direction: [3]float64{0.5, 0.8, 1.0}}
		c.Torque.Mode = "gravity-gradient"
		c.Duration = 30
	}),
	"top": preset("top", func(c *Config) {
		c.Body = BodyConfig{Mass: 1, Inertia: [3]float64{0.5, 2, 2}}
		c.Orientation = OrientationConfig{Sequence: "ZYX", Angles: [3]float64{0, -60, 0}}
		c.Rate = RateConfig{Kind: RateVelocity, Magnitude: 20, Direction: [3]float64{1, 0, 0}}
		c.Torque.Mode = "top"
		c.Torque.Gravity = 9.81
	}),
	"body-torque": preset("body-torque", func(c *Config) {
		c.Rate = RateConfig{Kind: RateVelocity}
		c.Torque.Mode = "body"
		c.Torque.Magnitude = 1
		c.Torque.Direction = [3]float64{0, 0, 1}
		c.Duration = 1
	}),
}

// Descriptions is a one-line summary per preset.
var Descriptions = map[string]string{
	"cessna-172":       "light aircraft, tumbling about all three axes",
	"new-horizons":     "spacecraft spun up about its intermediate axis",
	"tumble":           "intermediate axis flip",
	"spin-x":           "steady spin about the minor axis",
	"acs-detumble":     "thrusters bleed off a tumble",
	"gravity-gradient": "libration in a gravity gradient",
	"top":              "spinning top precessing under gravity",
	"body-torque":      "constant body torque spin-up",
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	return slices.Sorted(maps.Keys(Presets))
}
