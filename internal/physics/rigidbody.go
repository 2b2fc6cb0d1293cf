package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/dynamo"
)

// RigidBody is Euler's rotational equations as an ODE in the body rates:
//
//	I·ω̇ + ω × (I·ω) = τ
//
// The full inertia matrix is used, so products of inertia are honoured even
// though callers normally keep them zero. State is ω (body axes), control
// is the torque τ (body axes).
type RigidBody struct {
	inertia mgl64.Mat3
	inverse mgl64.Mat3
}

func NewRigidBody(inertia mgl64.Mat3) *RigidBody {
	r := &RigidBody{}
	r.SetInertia(inertia)
	return r
}

// SetInertia replaces the inertia matrix and caches its inverse.
func (r *RigidBody) SetInertia(inertia mgl64.Mat3) {
	r.inertia = inertia
	r.inverse = inertia.Inv()
}

func (r *RigidBody) Inertia() mgl64.Mat3 { return r.inertia }

func (r *RigidBody) StateDim() int   { return 3 }
func (r *RigidBody) ControlDim() int { return 3 }

func (r *RigidBody) Derive(x dynamo.State, u dynamo.Control, _ float64) dynamo.State {
	if len(x) < 3 {
		return make(dynamo.State, 3)
	}
	w := x.Vec3()
	var tau mgl64.Vec3
	copy(tau[:], u)
	return dynamo.FromVec3(r.Accel(w, tau))
}

// Accel returns ω̇ for rate w under torque tau.
func (r *RigidBody) Accel(w, tau mgl64.Vec3) mgl64.Vec3 {
	gyro := w.Cross(r.inertia.Mul3x1(w))
	return r.inverse.Mul3x1(tau.Sub(gyro))
}

// Energy is the rotational kinetic energy ½ ω·Iω.
func (r *RigidBody) Energy(x dynamo.State) float64 {
	if len(x) < 3 {
		return 0
	}
	w := x.Vec3()
	return 0.5 * w.Dot(r.inertia.Mul3x1(w))
}
