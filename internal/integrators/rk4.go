package integrators

import "github.com/san-kum/rotsim/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta method. The control input is
// held constant across the four stages, which is how the engine treats the
// per-tick torque. Stage buffers are owned by the instance, so one RK4 must
// not be shared between bodies.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

// stage evaluates the derivative at x + scale*k into dst.
func (r *RK4) stage(dst dynamo.State, dyn dynamo.System, x, k dynamo.State, scale float64, u dynamo.Control, t float64) {
	for i := range x {
		r.scratch[i] = x[i] + scale*k[i]
	}
	copy(dst, dyn.Derive(r.scratch, u, t))
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	result := make(dynamo.State, len(x))
	r.StepInto(result, dyn, x, u, t, dt)
	return result
}

// StepInto writes the advanced state into dst, which may alias x.
func (r *RK4) StepInto(dst dynamo.State, dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, dyn.Derive(x, u, t))
	r.stage(r.k2, dyn, x, r.k1, dt*0.5, u, t+dt*0.5)
	r.stage(r.k3, dyn, x, r.k2, dt*0.5, u, t+dt*0.5)
	r.stage(r.k4, dyn, x, r.k3, dt, u, t+dt)

	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		dst[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
}
