package analysis

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/rigid"
)

// NutationRate is the angular rate (rad/s) at which ω circles the symmetry
// axis in body axes for torque-free motion: (I_s − I_t)/I_t · ω_s. It is
// zero for a body with no symmetry axis.
func NutationRate(in rigid.Inertia, omega mgl64.Vec3) float64 {
	s := in.Symmetry().Index()
	if s < 0 {
		return 0
	}
	m := in.Moments()
	is := m[s]
	it := m[(s+1)%3]
	return (is - it) / it * omega[s]
}

// PrecessionRate is the inertial rate (rad/s) at which the symmetry axis
// cones around H for torque-free motion: |H|/I_t.
func PrecessionRate(in rigid.Inertia, omega mgl64.Vec3) float64 {
	s := in.Symmetry().Index()
	if s < 0 {
		return 0
	}
	m := in.Moments()
	it := m[(s+1)%3]
	h := mgl64.Vec3{m[0] * omega[0], m[1] * omega[1], m[2] * omega[2]}
	return h.Len() / it
}

// Hz converts an angular rate to cycles per second.
func Hz(rate float64) float64 { return math.Abs(rate) / (2 * math.Pi) }
