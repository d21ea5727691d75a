package clock

import (
	"math"
	"slices"
)

// Increment returns a clock with the counter of node raised by one. An
// absent node is inserted in sorted position with counter 1.
//
// A counter never wraps. At math.MaxUint64 it saturates and c is returned
// as is; builds with the vclockdebug tag panic instead.
func (c VectorClock) Increment(node string) VectorClock {
	i, found := slices.BinarySearch(c.nodes, node)
	if found {
		if c.values[i] == math.MaxUint64 {
			if debugAssertions {
				panic("clock: counter overflow for node " + node)
			}
			return c
		}
		values := slices.Clone(c.values)
		values[i]++
		return newClock(c.nodes, c.hashes, values)
	}
	return newClock(
		insertAt(c.nodes, i, node),
		insertAt(c.hashes, i, hashNode(node)),
		insertAt(c.values, i, 1),
	)
}

// Prune returns a clock without node. When node is absent c is returned
// as is.
func (c VectorClock) Prune(node string) VectorClock {
	i, found := slices.BinarySearch(c.nodes, node)
	if !found {
		return c
	}
	if len(c.nodes) == 1 {
		return Empty
	}
	return newClock(removeAt(c.nodes, i), removeAt(c.hashes, i), removeAt(c.values, i))
}

func insertAt[T any](s []T, i int, v T) []T {
	out := make([]T, len(s)+1)
	copy(out, s[:i])
	out[i] = v
	copy(out[i+1:], s[i:])
	return out
}

func removeAt[T any](s []T, i int) []T {
	out := make([]T, len(s)-1)
	copy(out, s[:i])
	copy(out[i:], s[i+1:])
	return out
}
