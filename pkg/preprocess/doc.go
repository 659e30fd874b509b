// Package preprocess derives the data shared by the lower bounds and the
// heuristic from a raw [instance.Instance].
//
// # Overview
//
// [Build] runs every derivation once and bundles the results into a
// [Problem]:
//
//   - [Closure]: direct and transitive predecessor/successor sets and the
//     incomparability sets of the precedence relation
//   - [SetupSummary]: per-task minimal forward and backward setup costs,
//     capped at the cycle time and sorted ascending
//   - [StationEstimates]: cumulative predecessor/successor times and the
//     earliest/latest station markers derived from them
//
// A Problem is immutable after Build returns and may be shared between
// goroutines.
//
// # Errors
//
// Build rejects invalid instances with the codes of [instance.Instance.Validate]
// and a cyclic precedence relation with GRAPH_CYCLE. The cycle is available
// as an [errors.CycleError] in the error chain.
package preprocess
