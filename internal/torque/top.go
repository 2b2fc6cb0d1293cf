package torque

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/rigid"
)

// SpinningTop is the torque r × f from the table pushing up on the tip of a
// top. The tip sits Lever metres along body +X and the reaction force is
// −Mass·Gravity along the inertial down direction. A non-positive Mass
// uses the body's own mass.
type SpinningTop struct {
	Lever   float64
	Gravity float64
	Mass    float64
	Axis    rigid.Axis
}

func (SpinningTop) Kind() Kind { return KindSpinningTop }
func (SpinningTop) mode()      {}

func (s SpinningTop) Torque(b *rigid.Body) mgl64.Vec3 {
	mass := s.Mass
	if mass <= 0 {
		mass = b.Mass()
	}
	r := mgl64.Vec3{s.Lever, 0, 0}
	f := b.ToBody(s.Axis.Down().Mul(-mass * s.Gravity))
	return r.Cross(f)
}
