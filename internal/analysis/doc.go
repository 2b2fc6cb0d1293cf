// Package analysis provides post-run analysis of rotational motion.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectral content of a
//     recorded rate component
//   - [NutationRate] and [PrecessionRate]: closed-form rates for a
//     torque-free axisymmetric body
//   - [LyapunovExponent]: divergence of nearby rate trajectories, positive
//     for spin about the intermediate axis
//   - [Polhode]: the body-frame path of ω projected onto two axes
//
// # Intermediate Axis
//
// Spin about the axis of intermediate inertia is unstable:
//
//	rb := physics.NewRigidBody(rigid.Principal(1, 2, 3).Matrix())
//	lambda := analysis.LyapunovExponent(rb, integrators.NewRK4(), dynamo.State{0, 1, 0}, 0.01, 20, 1e-7)
//	// lambda ≈ sqrt((Iyy-Ixx)(Izz-Iyy)/(Ixx·Izz))·ω
package analysis
