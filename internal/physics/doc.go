// Package physics models a uniform bar swinging about a pivot placed along
// its length, with gravity and quadratic air drag.
//
// All functions are pure: they read a [params.Values] copy and never cache
// derived quantities, so a parameter edit takes effect on the next call.
//
//   - [PivotToCenter], [MomentOfInertia]: derived quantities
//   - [AngularAcceleration]: the equation of motion on a [dynamo.Window]
//   - [Energy], [SmallAnglePeriod]: diagnostics
//   - [Bar]: geometry for renderers
package physics
