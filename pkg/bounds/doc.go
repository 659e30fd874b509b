// Package bounds computes lower bounds on the number of stations of a
// preprocessed line balancing problem.
//
// Four bounds are provided:
//
//   - [LM1]: total task time over cycle time, ignoring setups
//   - [LMS1]: LM1 raised by the cheapest setups any solution must pay,
//     using backward setups only when the instance has directed setups
//   - [LM2]: tasks longer than half a cycle need their own station
//   - [LM3]: weighted count of tasks longer than a third of a cycle
//
// [Compute] evaluates all of them. Each bound is valid on its own, so the
// strongest one is their maximum, [LowerBounds.Best].
package bounds
