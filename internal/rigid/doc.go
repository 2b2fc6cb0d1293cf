// Package rigid holds the mass properties and live kinematic state of a
// single rigid body: inertia, attitude quaternion (body to inertial), body
// rates, angular momentum and the torque applied on the current tick.
//
// User-facing setters validate and normalise their inputs; the low-level
// mutators [Body.Advance], [Body.SetRate] and [Body.SetTorque] are meant for
// the stepping code and never touch energy baselines.
package rigid
