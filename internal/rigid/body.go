package rigid

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Body is the mass data and live rotational state of one rigid body.
type Body struct {
	mass     float64
	inertia  Inertia
	matrix   mgl64.Mat3
	symmetry Symmetry

	attitude  mgl64.Quat // body to inertial
	dcm       mgl64.Mat3
	omega     mgl64.Vec3 // rad/s, body axes
	h         mgl64.Vec3 // body axes
	hInertial mgl64.Vec3
	torque    mgl64.Vec3 // body axes
	kinetic   float64
}

// NewBody returns a body at rest in the identity attitude.
func NewBody(mass float64, in Inertia) (*Body, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	b := &Body{mass: mass, attitude: mgl64.QuatIdent()}
	b.applyInertia(in)
	return b, nil
}

func (b *Body) applyInertia(in Inertia) {
	b.inertia = in
	b.matrix = in.Matrix()
	b.symmetry = in.Symmetry()
	b.refresh()
}

// refresh recomputes everything derived from attitude, rate and inertia.
func (b *Body) refresh() {
	b.dcm = DCM(b.attitude)
	b.h = b.matrix.Mul3x1(b.omega)
	b.hInertial = b.attitude.Rotate(b.h)
	b.kinetic = 0.5 * b.h.Dot(b.omega)
}

// SetInertia replaces the mass properties. Invalid input leaves the body
// untouched.
func (b *Body) SetInertia(in Inertia) error {
	if err := in.Validate(); err != nil {
		return err
	}
	b.applyInertia(in)
	return nil
}

// SetBox derives inertia from a uniform box of the given mass and extents.
func (b *Body) SetBox(mass, length, width, height float64) error {
	in, err := BoxInertia(mass, length, width, height)
	if err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}
	b.mass = mass
	b.applyInertia(in)
	return nil
}

// SetOrientationEuler sets the attitude from three angles in degrees.
func (b *Body) SetOrientationEuler(a1, a2, a3 float64, seq Sequence) {
	a1, a2, a3 = wrapInput(a1, a2, a3)
	b.attitude = QuatFromEuler(mgl64.DegToRad(a1), mgl64.DegToRad(a2), mgl64.DegToRad(a3), seq)
	b.refresh()
}

// SetOrientationQuat normalises and applies (w, x, y, z). A zero quaternion
// resolves to the identity attitude.
func (b *Body) SetOrientationQuat(w, x, y, z float64) {
	b.attitude = unit(mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}})
	b.refresh()
}

// SetAngularVelocity sets ω to magnitude (rad/s) along direction. A zero
// direction yields a body at rest.
func (b *Body) SetAngularVelocity(magnitude float64, direction mgl64.Vec3) {
	b.omega = safeNormalize(direction).Mul(magnitude)
	b.refresh()
}

// SetAngularMomentum points H along direction. The rate magnitude is still
// given in rad/s; the direction is mapped through the diagonal inverse
// inertia before scaling.
func (b *Body) SetAngularMomentum(magnitude float64, direction mgl64.Vec3) {
	d := safeNormalize(direction)
	d = mgl64.Vec3{d[0] / b.inertia.Ixx, d[1] / b.inertia.Iyy, d[2] / b.inertia.Izz}
	b.omega = safeNormalize(d).Mul(magnitude)
	b.refresh()
}

// Advance installs a new attitude and rate computed by the integrator.
func (b *Body) Advance(attitude mgl64.Quat, omega mgl64.Vec3) {
	b.attitude = attitude
	b.omega = omega
	b.refresh()
}

// SetRate replaces ω without touching the attitude.
func (b *Body) SetRate(omega mgl64.Vec3) {
	b.omega = omega
	b.refresh()
}

func (b *Body) SetTorque(t mgl64.Vec3) { b.torque = t }

func (b *Body) Mass() float64                       { return b.mass }
func (b *Body) Inertia() Inertia                    { return b.inertia }
func (b *Body) InertiaMatrix() mgl64.Mat3           { return b.matrix }
func (b *Body) Moments() mgl64.Vec3                 { return b.inertia.Moments() }
func (b *Body) Symmetry() Symmetry                  { return b.symmetry }
func (b *Body) Quaternion() mgl64.Quat              { return b.attitude }
func (b *Body) DCM() mgl64.Mat3                     { return b.dcm }
func (b *Body) AngularVelocity() mgl64.Vec3         { return b.omega }
func (b *Body) AngularMomentum() mgl64.Vec3         { return b.h }
func (b *Body) AngularMomentumInertial() mgl64.Vec3 { return b.hInertial }
func (b *Body) AngularMomentumMagnitude() float64   { return b.h.Len() }
func (b *Body) KineticEnergy() float64              { return b.kinetic }
func (b *Body) Torque() mgl64.Vec3                  { return b.torque }

// EulerAngles reports the attitude in degrees for the given sequence.
func (b *Body) EulerAngles(seq Sequence) (float64, float64, float64) {
	a1, a2, a3 := EulerFromQuat(b.attitude, seq)
	return mgl64.RadToDeg(a1), mgl64.RadToDeg(a2), mgl64.RadToDeg(a3)
}

// ToBody expresses an inertial vector in body axes.
func (b *Body) ToBody(v mgl64.Vec3) mgl64.Vec3 {
	return b.dcm.Transpose().Mul3x1(v)
}

func safeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}
