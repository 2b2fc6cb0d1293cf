// Package viz renders rigid-body runs in the terminal.
//
//   - [Model]: a Bubble Tea program that steps a [sim.Engine] once per frame
//     with the elapsed wall-clock time and draws the body as a wireframe
//   - [Picker]: a scenario menu that launches a [Model]
//   - [Plot] and [Summary]: static output for batch runs
//
// The body is drawn as the uniform box with the same principal moments,
// rotated into the inertial frame, with a nose line along body +X and a line
// along the inertial angular momentum.
package viz
