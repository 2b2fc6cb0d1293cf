package torque

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/rigid"
)

// ACSStabilization models thrusters producing a fixed couple about each body
// axis. Any rate component outside ±Deadband is pushed back toward zero with
// Magnitude; attitude is not controlled.
type ACSStabilization struct {
	Deadband  float64 // rad/s
	Magnitude float64 // N·m
}

func (ACSStabilization) Kind() Kind { return KindACS }
func (ACSStabilization) mode()      {}

func (a ACSStabilization) Torque(b *rigid.Body) mgl64.Vec3 {
	w := b.AngularVelocity()
	var tau mgl64.Vec3
	for i := 0; i < 3; i++ {
		switch {
		case w[i] > a.Deadband:
			tau[i] = -a.Magnitude
		case w[i] < -a.Deadband:
			tau[i] = a.Magnitude
		}
	}
	return tau
}
