package integrators

import "github.com/go-gl/mathgl/mgl64"

// QuatRate returns dq/dt = ½ q ⊗ (0, ω) for a body-frame rate ω.
func QuatRate(q mgl64.Quat, omega mgl64.Vec3) mgl64.Quat {
	return q.Mul(mgl64.Quat{W: 0, V: omega}).Scale(0.5)
}

// StepAttitude advances q over h by trapezoidal integration of the quaternion
// kinematics, averaging the rates at the pre-step (omega0) and post-step
// (omega1) angular velocities. The result is renormalized. With h == 0 the
// attitude is returned untouched.
func StepAttitude(q mgl64.Quat, omega0, omega1 mgl64.Vec3, h float64) mgl64.Quat {
	if h == 0 {
		return q
	}
	d0 := QuatRate(q, omega0)
	d1 := QuatRate(q, omega1)
	next := q.Add(d0.Add(d1).Scale(h / 2))
	return Unit(next)
}

// Unit normalizes q exactly, falling back to identity for a zero quaternion.
func Unit(q mgl64.Quat) mgl64.Quat {
	n := q.Len()
	if n == 0 {
		return mgl64.QuatIdent()
	}
	return mgl64.Quat{W: q.W / n, V: q.V.Mul(1 / n)}
}
