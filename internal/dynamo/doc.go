// Package dynamo provides the core value types shared by the pendulum
// simulation packages.
//
//   - [Window]: the three-sample angle history fed to the integrator
//   - [Sample]: one recorded instant (angle, velocity, acceleration)
//   - [Event]: discrete operator input consumed once per tick
//   - [Mode]: the controller's resting states
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent mutation. The simulation is
// single-threaded and tick-driven; every value is owned by one controller.
package dynamo
