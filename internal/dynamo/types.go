package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Vec3 views the first three components as a vector.
func (s State) Vec3() mgl64.Vec3 {
	var v mgl64.Vec3
	copy(v[:], s)
	return v
}

// FromVec3 builds a three component state.
func FromVec3(v mgl64.Vec3) State {
	return State{v[0], v[1], v[2]}
}

type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

// Sample is the externally visible state of a body after one tick.
type Sample struct {
	Tick       int        `json:"tick"`
	Time       float64    `json:"time"`
	Quat       mgl64.Quat `json:"-"`
	Omega      mgl64.Vec3 `json:"omega"`
	H          mgl64.Vec3 `json:"h"`
	HInertial  mgl64.Vec3 `json:"h_inertial"`
	Torque     mgl64.Vec3 `json:"torque"`
	Kinetic    float64    `json:"kinetic"`
	Potential  float64    `json:"potential"`
	Correction string     `json:"correction"`
}

// Total is the mechanical energy of the sample.
func (s Sample) Total() float64 { return s.Kinetic + s.Potential }

// QuatWXYZ returns the quaternion components in w, x, y, z order.
func (s Sample) QuatWXYZ() [4]float64 {
	return [4]float64{s.Quat.W, s.Quat.V[0], s.Quat.V[1], s.Quat.V[2]}
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(s Sample)
}

const (
	DefaultStep     = 0.0025
	DefaultMaxTicks = 10
)
