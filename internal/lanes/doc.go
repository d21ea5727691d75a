// Package lanes provides lane-parallel operations over equally sized
// []uint64 counter arrays.
//
// # Kernels
//
//   - Generic: plain scalar loops.
//   - Unrolled: 4-lane unrolled loops that keep independent comparisons in
//     flight on wide-issue cores.
//
// Runtime CPU feature detection selects the kernel at init. Set VCLOCK_LANES
// to "generic" or "unrolled" to force one. Both kernels return identical
// results for identical input.
//
// # Operations
//
//   - Max: element-wise maximum into a destination slice
//   - Equal: all lanes equal
//   - Dominance: all lanes >= and all lanes <= in one pass
//   - LessOrEqual: all lanes <= plus an all-equal flag, exiting at the first
//     lane that is greater
package lanes
