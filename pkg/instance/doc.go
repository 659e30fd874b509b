// Package instance holds the raw data of a Simple Assembly Line Balancing
// instance with sequence-dependent setup times (SUALBSP).
//
// An [Instance] is owned by the caller and treated as read-only once it has
// been built, either programmatically with [New] or from a file with
// [ReadALB]. All matrices are dense, n×n and 0-indexed; they use the
// row-major [Matrix] type so that the O(n³) precedence closure in package
// preprocess walks contiguous memory.
//
// # File format
//
// [ParseALB] reads the sectioned text format used by the SALBP benchmark
// sets. Section headers are lines of the form "<name>"; ids inside the file
// are 1-based:
//
//	<number of tasks>
//	3
//
//	<cycle time>
//	10
//
//	<task times>
//	1 5
//	2 5
//	3 5
//
//	<precedence relations>
//	1,2
//
//	<setup times forward>
//	1,2:1
//
//	<setup times backward>
//	2,1:2
//
//	<end>
//
// An instance is "directed" when both a forward and a backward setup section
// were present; the lower-bound engine picks its setup-aware variant from
// that flag.
package instance
