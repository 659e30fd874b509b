// Package heuristic builds feasible station assignments by randomized
// greedy construction.
//
// A trial draws a random topological order ([RandomOrder]) and cuts it into
// stations greedily ([AssignStations]): each station extends to the farthest
// position whose load, including the backward setup from the station's last
// task to its first, still fits the cycle time.
//
// [Sample] repeats trials on a single random stream and keeps the one with
// the fewest stations. [SampleParallel] gives every trial its own stream
// derived from the seed and the trial index, so its result does not depend on
// the number of workers.
//
// # Determinism
//
// For a fixed problem, seed and iteration count both samplers return
// identical results on every run. They do not return the same result as
// each other.
package heuristic
