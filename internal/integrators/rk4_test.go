package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/rotsim/internal/dynamo"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int   { return 2 }
func (s *simpleDynamics) ControlDim() int { return 0 }

// constantAccel integrates x'' = u[0].
type constantAccel struct{}

func (c *constantAccel) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], u[0]}
}

func (c *constantAccel) StateDim() int   { return 2 }
func (c *constantAccel) ControlDim() int { return 1 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x0 := dynamo.State{1.0, 0.0}
	u := dynamo.Control{}
	dt := 0.01
	steps := 100

	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, u, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-8 {
		t.Errorf("position error too large: got %.10f, expected %.10f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-8 {
		t.Errorf("velocity error too large: got %.10f, expected %.10f", x[1], expectedV)
	}
}

func TestRK4HoldsControl(t *testing.T) {
	integ := NewRK4()
	x := dynamo.State{0, 0}
	for i := 0; i < 400; i++ {
		x = integ.Step(&constantAccel{}, x, dynamo.Control{2.0}, 0, 0.0025)
	}
	if math.Abs(x[1]-2.0) > 1e-12 {
		t.Errorf("velocity = %.15f, want 2", x[1])
	}
	if math.Abs(x[0]-1.0) > 1e-12 {
		t.Errorf("position = %.15f, want 1", x[0])
	}
}

func TestRK4StepIntoAliasing(t *testing.T) {
	dyn := &simpleDynamics{}
	a := NewRK4()
	b := NewRK4()

	x := dynamo.State{0.3, -0.7}
	want := a.Step(dyn, x, nil, 0, 0.05)
	b.StepInto(x, dyn, x, nil, 0, 0.05)

	for i := range want {
		if x[i] != want[i] {
			t.Errorf("component %d: in-place %v, copy %v", i, x[i], want[i])
		}
	}
}

func TestEulerIsLessAccurate(t *testing.T) {
	dyn := &simpleDynamics{}
	rk := NewRK4()
	eu := NewEuler()

	xr := dynamo.State{1, 0}
	xe := dynamo.State{1, 0}
	for i := 0; i < 100; i++ {
		xr = rk.Step(dyn, xr, nil, 0, 0.01)
		xe = eu.Step(dyn, xe, nil, 0, 0.01)
	}

	errRK := math.Abs(xr[0] - math.Cos(1))
	errEU := math.Abs(xe[0] - math.Cos(1))
	if errEU <= errRK {
		t.Errorf("expected euler error (%g) to exceed rk4 error (%g)", errEU, errRK)
	}
}
