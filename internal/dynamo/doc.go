// Package dynamo provides core simulation primitives for rotational dynamics.
//
// The package defines the shared interfaces and value types used by the
// engine packages:
//
//   - [State]: vector representing an integrable state (body rates)
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Sample]: snapshot of a rigid body taken after every tick
//   - [Metric] and [Observer]: per-tick consumers of samples
//
// # Example
//
//	body := physics.NewRigidBody(inertia)
//	integ := integrators.NewRK4()
//	omega := integ.Step(body, dynamo.State{p, q, r}, dynamo.Control{tx, ty, tz}, t, h)
//
// # Thread Safety
//
// Nothing in this package or its consumers is safe for concurrent use. Each
// simulated body owns its own engine, integrator scratch space and metrics.
package dynamo
