// Package clock provides an immutable vector clock for tracking causality
// between replicas. A clock stores its node identifiers, their hashes and
// their counters as three co-sorted arrays; comparisons take a lane-parallel
// path when both clocks share a node table and a merge-join path otherwise.
// A node absent from a clock is treated as having counter 0.
package clock
