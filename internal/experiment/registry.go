package experiment

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/config"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/integrators"
	"github.com/san-kum/rotsim/internal/rigid"
	"github.com/san-kum/rotsim/internal/sim"
	"github.com/san-kum/rotsim/internal/torque"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	return slices.Sorted(maps.Keys(r.integrators))
}

// BuildMode turns the torque section of a config into a mode.
func BuildMode(tc config.TorqueConfig) (torque.Mode, error) {
	kind, err := torque.ParseKind(tc.Mode)
	if err != nil {
		return nil, err
	}
	dir := mgl64.Vec3(tc.Direction)

	switch kind {
	case torque.KindNone:
		return torque.None{}, nil
	case torque.KindSpaceFrame:
		return torque.NewSpaceFrame(tc.Magnitude, dir), nil
	case torque.KindBodyFrame:
		return torque.NewBodyFrame(tc.Magnitude, dir), nil
	case torque.KindACS:
		return torque.ACSStabilization{Deadband: tc.Deadband, Magnitude: tc.Magnitude}, nil
	}

	axis, err := rigid.ParseAxis(tc.Axis)
	if err != nil {
		return nil, err
	}
	if kind == torque.KindGravityGradient {
		return torque.GravityGradient{K: tc.K, Axis: axis}, nil
	}
	return torque.SpinningTop{Lever: tc.Lever, Gravity: tc.Gravity, Mass: tc.Mass, Axis: axis}, nil
}

// BuildBody creates the body described by cfg in its initial attitude and
// spin.
func BuildBody(cfg *config.Config) (*rigid.Body, error) {
	bc := cfg.Body
	in := rigid.Inertia{Ixx: bc.Inertia[0], Iyy: bc.Inertia[1], Izz: bc.Inertia[2], Ixz: bc.Ixz}
	if bc.Box != nil {
		var err error
		in, err = rigid.BoxInertia(bc.Mass, bc.Box[0], bc.Box[1], bc.Box[2])
		if err != nil {
			return nil, err
		}
	}
	return rigid.NewBody(bc.Mass, in)
}

// Build assembles an engine from cfg.
func (r *Registry) Build(cfg *config.Config) (*sim.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	integ, err := r.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	mode, err := BuildMode(cfg.Torque)
	if err != nil {
		return nil, err
	}
	body, err := BuildBody(cfg)
	if err != nil {
		return nil, err
	}

	o := cfg.Orientation
	if q := o.Quaternion; q != nil {
		body.SetOrientationQuat(q[0], q[1], q[2], q[3])
	} else {
		seq, err := rigid.ParseSequence(o.Sequence)
		if err != nil {
			return nil, err
		}
		body.SetOrientationEuler(o.Angles[0], o.Angles[1], o.Angles[2], seq)
	}

	dir := mgl64.Vec3(cfg.Rate.Direction)
	if cfg.Rate.Kind == config.RateMomentum {
		body.SetAngularMomentum(cfg.Rate.Magnitude, dir)
	} else {
		body.SetAngularVelocity(cfg.Rate.Magnitude, dir)
	}

	e := sim.New(body, mode)
	e.SetIntegrator(integ)
	e.SetCorrection(cfg.Correction)
	e.Clock().MaxTicks = cfg.MaxTicks
	if err := e.SetStep(cfg.Step); err != nil {
		return nil, err
	}
	return e, nil
}
