// Package physics provides the rotational equations of motion.
//
// [RigidBody] implements [dynamo.System] with the body rates as state and the
// applied torque as control, and [dynamo.Hamiltonian] for the rotational
// kinetic energy:
//
//	eq := physics.NewRigidBody(inertia)
//	wdot := eq.Derive(dynamo.State{p, q, r}, dynamo.Control{tx, ty, tz}, 0)
//	energy := eq.Energy(dynamo.State{p, q, r})
//
// Attitude, torque models and drift correction live in sibling packages; this
// package only knows about the rates.
package physics
