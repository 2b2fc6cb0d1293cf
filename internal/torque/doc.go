// Package torque provides the torque models applied to a rigid body.
//
// Each model implements [Mode], a closed set of variants:
//
//   - [None]: torque-free motion
//   - [SpaceFrameConstant]: a torque fixed in the inertial frame
//   - [BodyFrameConstant]: a torque fixed in the body frame
//   - [ACSStabilization]: per-axis bang-bang rate damping with a deadband
//   - [GravityGradient]: tidal torque toward a planet in the "down" direction
//   - [SpinningTop]: reaction torque at the tip of a top
//
// A mode is a pure function of the body state; it is evaluated once per tick
// and held constant while the rates are integrated.
//
//	mode := torque.ACSStabilization{Deadband: 0.01, Magnitude: 0.5}
//	tau := mode.Torque(body)
package torque
