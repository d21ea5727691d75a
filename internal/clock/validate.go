package clock

import (
	"errors"
	"fmt"
)

// ErrInvalidClock is returned by Validate when a clock breaks its invariants.
var ErrInvalidClock = errors.New("invalid vector clock")

// Validate checks that the node, hash and counter arrays have equal length,
// that nodes are strictly ascending and that every hash matches its node.
// Clocks built by New from unsorted entries fail here.
func (c VectorClock) Validate() error {
	if len(c.hashes) != len(c.nodes) || len(c.values) != len(c.nodes) {
		return fmt.Errorf("%w: %d nodes, %d hashes, %d counters",
			ErrInvalidClock, len(c.nodes), len(c.hashes), len(c.values))
	}
	for i, node := range c.nodes {
		if i > 0 && c.nodes[i-1] >= node {
			return fmt.Errorf("%w: node %q at %d does not sort after %q",
				ErrInvalidClock, node, i, c.nodes[i-1])
		}
		if c.hashes[i] != hashNode(node) {
			return fmt.Errorf("%w: stale hash for node %q", ErrInvalidClock, node)
		}
	}
	return nil
}
