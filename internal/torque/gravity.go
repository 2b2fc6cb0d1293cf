package torque

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/rigid"
)

// GravityGradient is the tidal torque on a body orbiting a planet that lies
// in the Axis "down" direction. K stands for 3μ/R³ and is normally set many
// orders of magnitude above the physical value so the effect is visible.
// Centrifugal coupling from the orbital motion is not modeled.
type GravityGradient struct {
	K    float64
	Axis rigid.Axis
}

func (GravityGradient) Kind() Kind { return KindGravityGradient }
func (GravityGradient) mode()      {}

// Torque is K·(e_y e_z (Izz−Iyy), e_z e_x (Ixx−Izz), e_x e_y (Iyy−Ixx)) with
// e the down direction in body axes.
func (g GravityGradient) Torque(b *rigid.Body) mgl64.Vec3 {
	e := b.ToBody(g.Axis.Down())
	in := b.Inertia()
	return mgl64.Vec3{
		g.K * e[1] * e[2] * (in.Izz - in.Iyy),
		g.K * e[2] * e[0] * (in.Ixx - in.Izz),
		g.K * e[0] * e[1] * (in.Iyy - in.Ixx),
	}
}

// Potential is −K/6·(tr I − 3·I₁₁), I₁₁ being the moment of inertia about
// the down direction. The additive constant is dropped.
func (g GravityGradient) Potential(b *rigid.Body) float64 {
	e := b.ToBody(g.Axis.Down())
	i11 := e.Dot(b.InertiaMatrix().Mul3x1(e))
	return -(g.K / 6) * (b.Inertia().Trace() - 3*i11)
}
