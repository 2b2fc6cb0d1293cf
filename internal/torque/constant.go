package torque

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/rigid"
)

type None struct{}

func (None) Kind() Kind                    { return KindNone }
func (None) Torque(*rigid.Body) mgl64.Vec3 { return mgl64.Vec3{} }
func (None) mode()                         {}

// SpaceFrameConstant is a torque fixed in inertial space. It is re-expressed
// in body axes every tick as the body turns underneath it.
type SpaceFrameConstant struct {
	Vector mgl64.Vec3
}

// NewSpaceFrame points magnitude N·m along direction (inertial axes).
func NewSpaceFrame(magnitude float64, direction mgl64.Vec3) SpaceFrameConstant {
	return SpaceFrameConstant{Vector: scaled(magnitude, direction)}
}

func (SpaceFrameConstant) Kind() Kind { return KindSpaceFrame }
func (SpaceFrameConstant) mode()      {}

func (s SpaceFrameConstant) Torque(b *rigid.Body) mgl64.Vec3 {
	return b.Quaternion().Inverse().Rotate(s.Vector)
}

// BodyFrameConstant is a torque fixed to the body, like a thruster couple.
type BodyFrameConstant struct {
	Vector mgl64.Vec3
}

func NewBodyFrame(magnitude float64, direction mgl64.Vec3) BodyFrameConstant {
	return BodyFrameConstant{Vector: scaled(magnitude, direction)}
}

func (BodyFrameConstant) Kind() Kind                       { return KindBodyFrame }
func (BodyFrameConstant) mode()                            {}
func (c BodyFrameConstant) Torque(*rigid.Body) mgl64.Vec3 { return c.Vector }
