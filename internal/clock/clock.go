package clock

import (
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Entry is a single (node, counter) pair.
type Entry struct {
	Node    string
	Counter uint64
}

// VectorClock is an immutable mapping from node ID to counter. The zero value
// is the empty clock. Every operation returns a new clock and never modifies
// its receiver, so a VectorClock may be shared freely between goroutines.
type VectorClock struct {
	nodes  []string
	hashes []uint64
	values []uint64
}

// Empty is the clock without nodes, the identity element of Merge.
var Empty = VectorClock{}

// New creates a clock from entries that are already sorted by node in
// ascending byte order with no duplicates. The order is not checked; use
// FromMap for unsorted input.
func New(entries ...Entry) VectorClock {
	if len(entries) == 0 {
		return Empty
	}
	nodes := make([]string, len(entries))
	hashes := make([]uint64, len(entries))
	values := make([]uint64, len(entries))
	for i, e := range entries {
		nodes[i] = e.Node
		hashes[i] = hashNode(e.Node)
		values[i] = e.Counter
	}
	return newClock(nodes, hashes, values)
}

// FromMap creates a clock from an unordered node to counter mapping.
func FromMap(m map[string]uint64) VectorClock {
	entries := make([]Entry, 0, len(m))
	for _, node := range slices.Sorted(maps.Keys(m)) {
		entries = append(entries, Entry{Node: node, Counter: m[node]})
	}
	return New(entries...)
}

func newClock(nodes []string, hashes, values []uint64) VectorClock {
	c := VectorClock{nodes: nodes, hashes: hashes, values: values}
	if debugAssertions {
		if err := c.Validate(); err != nil {
			panic(err)
		}
	}
	return c
}

func hashNode(node string) uint64 {
	return xxhash.Sum64String(node)
}

// Len returns the number of nodes in the clock.
func (c VectorClock) Len() int {
	return len(c.nodes)
}

// Nodes yields the node IDs in ascending order.
func (c VectorClock) Nodes() iter.Seq[string] {
	return slices.Values(c.nodes)
}

// Values yields the counters in node order.
func (c VectorClock) Values() iter.Seq[uint64] {
	return slices.Values(c.values)
}

// All yields every (node, counter) pair in node order.
func (c VectorClock) All() iter.Seq2[string, uint64] {
	return func(yield func(string, uint64) bool) {
		for i, node := range c.nodes {
			if !yield(node, c.values[i]) {
				return
			}
		}
	}
}

// Entries returns a copy of the clock's pairs in node order.
func (c VectorClock) Entries() []Entry {
	entries := make([]Entry, len(c.nodes))
	for i, node := range c.nodes {
		entries[i] = Entry{Node: node, Counter: c.values[i]}
	}
	return entries
}

// Get returns the counter for node, or 0 if the node is absent.
func (c VectorClock) Get(node string) uint64 {
	v, _ := c.TryGet(node)
	return v
}

// TryGet returns the counter for node and whether the node is present.
// A present node may carry counter 0.
func (c VectorClock) TryGet(node string) (uint64, bool) {
	i, found := slices.BinarySearch(c.nodes, node)
	if !found {
		return 0, false
	}
	return c.values[i], true
}

// Contains reports whether node is present in the clock.
func (c VectorClock) Contains(node string) bool {
	_, found := slices.BinarySearch(c.nodes, node)
	return found
}

// Hash combines the length, node hashes and counters. Equal clocks hash equal.
func (c VectorClock) Hash() uint64 {
	h := uint64(len(c.nodes))
	for i := range c.nodes {
		h = (h * 397) ^ c.hashes[i] ^ c.values[i]
	}
	return h
}

// String returns the clock as {a:1, b:2} in node order.
func (c VectorClock) String() string {
	if len(c.nodes) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, node := range c.nodes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(node)
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatUint(c.values[i], 10))
	}
	sb.WriteByte('}')
	return sb.String()
}

// sharesStorage reports whether both clocks are backed by the very same
// arrays, which makes them identical without looking at their contents.
func (c VectorClock) sharesStorage(other VectorClock) bool {
	if len(c.nodes) != len(other.nodes) {
		return false
	}
	if len(c.nodes) == 0 {
		return true
	}
	return &c.nodes[0] == &other.nodes[0] &&
		&c.hashes[0] == &other.hashes[0] &&
		&c.values[0] == &other.values[0]
}
