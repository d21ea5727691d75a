package clock

import (
	"strings"

	"vclock/internal/lanes"
)

// CompareResult represents the result of comparing two vector clocks.
type CompareResult int

const (
	// Before indicates this clock happened before the other.
	Before CompareResult = iota
	// After indicates this clock happened after the other.
	After
	// Concurrent indicates the clocks are concurrent (no causal relationship).
	Concurrent
	// Equal indicates the clocks hold the same nodes and counters.
	Equal
)

func (r CompareResult) String() string {
	switch r {
	case Before:
		return "before"
	case After:
		return "after"
	case Concurrent:
		return "concurrent"
	case Equal:
		return "equal"
	default:
		return "unknown"
	}
}

// haveSameNodes reports whether both clocks hold exactly the same node
// table. Hashes only rule tables out; matching hashes are confirmed with a
// string comparison.
func haveSameNodes(a, b VectorClock) bool {
	if len(a.nodes) != len(b.nodes) {
		return false
	}
	if len(a.nodes) == 0 || &a.nodes[0] == &b.nodes[0] {
		return true
	}
	if !lanes.Equal(a.hashes, b.hashes) {
		return false
	}
	for i := range a.nodes {
		if a.nodes[i] != b.nodes[i] {
			return false
		}
	}
	return true
}

// Compare returns the causal relationship of c to other.
//   - Equal: same nodes with the same counters
//   - Before: every counter <= the other's, at least one <
//   - After: every counter >= the other's, at least one >
//   - Concurrent: neither dominates
func (c VectorClock) Compare(other VectorClock) CompareResult {
	if c.sharesStorage(other) {
		return Equal
	}
	if haveSameNodes(c, other) {
		return fastCompare(c.values, other.values)
	}
	return generalCompare(c, other)
}

// PartialCompare returns -1, 0 or +1 when c is before, equal to or after
// other. ok is false when the clocks are concurrent.
func (c VectorClock) PartialCompare(other VectorClock) (cmp int, ok bool) {
	switch c.Compare(other) {
	case Before:
		return -1, true
	case After:
		return 1, true
	case Equal:
		return 0, true
	default:
		return 0, false
	}
}

// IsBefore reports whether c happened before other.
func (c VectorClock) IsBefore(other VectorClock) bool {
	if c.sharesStorage(other) {
		return false
	}
	if haveSameNodes(c, other) {
		le, equal := lanes.LessOrEqual(c.values, other.values)
		return le && !equal
	}
	return generalCompare(c, other) == Before
}

// IsAfter reports whether c happened after other.
func (c VectorClock) IsAfter(other VectorClock) bool {
	if c.sharesStorage(other) {
		return false
	}
	if haveSameNodes(c, other) {
		ge, equal := lanes.LessOrEqual(other.values, c.values)
		return ge && !equal
	}
	return generalCompare(c, other) == After
}

// IsConcurrentWith reports whether neither clock dominates the other.
func (c VectorClock) IsConcurrentWith(other VectorClock) bool {
	if c.sharesStorage(other) {
		return false
	}
	if haveSameNodes(c, other) {
		ge, le := lanes.Dominance(c.values, other.values)
		return !ge && !le
	}
	return generalCompare(c, other) == Concurrent
}

// Equal reports whether both clocks hold the same nodes with the same
// counters. A node present with counter 0 is not equal to an absent node.
func (c VectorClock) Equal(other VectorClock) bool {
	if len(c.nodes) != len(other.nodes) {
		return false
	}
	if c.sharesStorage(other) {
		return true
	}
	if !haveSameNodes(c, other) {
		return false
	}
	return lanes.Equal(c.values, other.values)
}

func fastCompare(a, b []uint64) CompareResult {
	ge, le := lanes.Dominance(a, b)
	switch {
	case ge && le:
		return Equal
	case le:
		return Before
	case ge:
		return After
	default:
		return Concurrent
	}
}

// generalCompare walks both node tables in one merge-join pass. A node
// missing on one side counts as 0 there. greater and less record whether
// some node of a is strictly above or below b.
func generalCompare(a, b VectorClock) CompareResult {
	var greater, less, unmatched bool
	i, j := 0, 0
	for i < len(a.nodes) && j < len(b.nodes) {
		switch cmp := strings.Compare(a.nodes[i], b.nodes[j]); {
		case cmp == 0:
			greater = greater || a.values[i] > b.values[j]
			less = less || a.values[i] < b.values[j]
			i++
			j++
		case cmp < 0:
			// b lacks a.nodes[i]
			unmatched = true
			greater = greater || a.values[i] > 0
			i++
		default:
			// a lacks b.nodes[j]
			unmatched = true
			less = less || b.values[j] > 0
			j++
		}
		if greater && less {
			return Concurrent
		}
	}

	// At most one side has a remainder.
	for ; i < len(a.nodes); i++ {
		unmatched = true
		if a.values[i] > 0 {
			greater = true
			break
		}
	}
	for ; j < len(b.nodes); j++ {
		unmatched = true
		if b.values[j] > 0 {
			less = true
			break
		}
	}

	switch {
	case greater && less:
		return Concurrent
	case less:
		return Before
	case greater:
		return After
	case unmatched:
		// Different node tables whose extra nodes all hold 0: not the same
		// clock, and neither side carries causal history the other lacks.
		return Concurrent
	default:
		return Equal
	}
}
