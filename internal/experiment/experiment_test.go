package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/config"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/rigid"
	"github.com/san-kum/rotsim/internal/torque"
)

func TestRegistryIntegrators(t *testing.T) {
	reg := NewRegistry()
	if got := reg.ListIntegrators(); len(got) != 2 || got[0] != "euler" || got[1] != "rk4" {
		t.Errorf("integrators = %v", got)
	}
	if _, err := reg.GetIntegrator("verlet"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestBuildMode(t *testing.T) {
	tests := []struct {
		name string
		tc   config.TorqueConfig
		want torque.Mode
	}{
		{"none", config.TorqueConfig{Mode: "none"}, torque.None{}},
		{"space", config.TorqueConfig{Mode: "space", Magnitude: 2, Direction: [3]float64{0, 0, 4}}, torque.SpaceFrameConstant{Vector: mgl64.Vec3{0, 0, 2}}},
		{"body", config.TorqueConfig{Mode: "body", Magnitude: 1, Direction: [3]float64{0, 2, 0}}, torque.BodyFrameConstant{Vector: mgl64.Vec3{0, 1, 0}}},
		{"acs", config.TorqueConfig{Mode: "acs", Deadband: 0.01, Magnitude: 0.5}, torque.ACSStabilization{Deadband: 0.01, Magnitude: 0.5}},
		{"gg", config.TorqueConfig{Mode: "gravity-gradient", K: 3, Axis: "Y Up"}, torque.GravityGradient{K: 3, Axis: rigid.YUp}},
		{"top", config.TorqueConfig{Mode: "top", Lever: 1, Gravity: 9.81, Axis: "Z Down"}, torque.SpinningTop{Lever: 1, Gravity: 9.81, Axis: rigid.ZDown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildMode(tt.tc)
			if err != nil {
				t.Fatalf("BuildMode: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}

	if _, err := BuildMode(config.TorqueConfig{Mode: "magnet"}); !errors.Is(err, dynamo.ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
	if _, err := BuildMode(config.TorqueConfig{Mode: "top", Axis: "sideways"}); !errors.Is(err, dynamo.ErrUnknownAxis) {
		t.Errorf("expected ErrUnknownAxis, got %v", err)
	}
}

func TestBuildAllPresets(t *testing.T) {
	reg := NewRegistry()
	for _, name := range config.ListPresets() {
		if _, err := reg.Build(config.GetPreset(name)); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestBuildAppliesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Step = 0.005
	cfg.MaxTicks = 4
	cfg.Correction = false
	cfg.Orientation = config.OrientationConfig{Sequence: "ZYX", Angles: [3]float64{90, 0, 0}}
	cfg.Rate = config.RateConfig{Kind: config.RateVelocity, Magnitude: 2, Direction: [3]float64{0, 0, 5}}

	e, err := NewRegistry().Build(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if e.Step() != 0.005 || e.Clock().MaxTicks != 4 || e.Corrector().Enabled {
		t.Errorf("clock or corrector settings lost")
	}
	if e.Body().AngularVelocity() != (mgl64.Vec3{0, 0, 2}) {
		t.Errorf("rate = %v", e.Body().AngularVelocity())
	}
	yaw, _, _ := e.Body().EulerAngles(rigid.ZYX)
	if math.Abs(yaw-90) > 1e-9 {
		t.Errorf("yaw = %v", yaw)
	}
	if e.Corrector().Baseline().Kinetic != e.Body().KineticEnergy() {
		t.Error("baseline not captured after setup")
	}
}

func TestBuildQuaternionAndBox(t *testing.T) {
	cfg := config.DefaultConfig()
	q := [4]float64{0, 0, 0, 2}
	cfg.Orientation.Quaternion = &q
	box := [3]float64{12, 0, 6}
	cfg.Body.Mass = 1
	cfg.Body.Box = &box

	e, err := NewRegistry().Build(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := e.Body().Quaternion(); got.W != 0 || got.V != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("quaternion = %v", got)
	}
	if got := e.Body().Moments(); got != (mgl64.Vec3{3, 15, 12}) {
		t.Errorf("moments = %v", got)
	}

	box = [3]float64{1, 0, 0}
	if _, err := NewRegistry().Build(cfg); !errors.Is(err, dynamo.ErrDegenerateGeometry) {
		t.Errorf("expected ErrDegenerateGeometry, got %v", err)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		edit func(c *config.Config)
		want error
	}{
		{"sequence", func(c *config.Config) { c.Orientation.Sequence = "XYX" }, dynamo.ErrUnknownSequence},
		{"mode", func(c *config.Config) { c.Torque.Mode = "warp" }, dynamo.ErrUnknownMode},
		{"duration", func(c *config.Config) { c.Duration = -1 }, dynamo.ErrParameterBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.edit(cfg)
			if _, err := NewRegistry().Build(cfg); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExperimentRun(t *testing.T) {
	exp := New(config.GetPreset("spin-x"))
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error before setup")
	}
	if err := exp.Setup(NewRegistry(), 40); err != nil {
		t.Fatalf("setup: %v", err)
	}

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Ticks != 400 {
		t.Errorf("ticks = %d, want 400", res.Ticks)
	}
	// tick 0 plus every 40th tick
	if got := len(exp.Samples()); got != 11 {
		t.Errorf("recorded %d samples, want 11", got)
	}
	if res.Metrics["energy_drift"] > 1e-6 {
		t.Errorf("energy drift %v", res.Metrics["energy_drift"])
	}

	out := exp.Export(res)
	if out.Name != "spin-x" || out.Ticks != 400 || len(out.Samples) != 11 {
		t.Errorf("export = %+v", out)
	}
}
