package clock

import (
	"slices"
	"strings"

	"vclock/internal/lanes"
)

// Merge returns the element-wise maximum of both clocks over the union of
// their nodes.
func (c VectorClock) Merge(other VectorClock) VectorClock {
	switch {
	case c.sharesStorage(other), len(other.nodes) == 0:
		return c
	case len(c.nodes) == 0:
		return other
	case haveSameNodes(c, other):
		return fastMerge(c, other)
	default:
		return generalMerge(c, other)
	}
}

// fastMerge shares the node table of a, which equals the one of b.
func fastMerge(a, b VectorClock) VectorClock {
	values := make([]uint64, len(a.values))
	lanes.Max(values, a.values, b.values)
	return newClock(a.nodes, a.hashes, values)
}

func generalMerge(a, b VectorClock) VectorClock {
	n := len(a.nodes) + len(b.nodes)
	nodes := make([]string, 0, n)
	hashes := make([]uint64, 0, n)
	values := make([]uint64, 0, n)

	i, j := 0, 0
	for i < len(a.nodes) && j < len(b.nodes) {
		switch cmp := strings.Compare(a.nodes[i], b.nodes[j]); {
		case cmp == 0:
			nodes = append(nodes, a.nodes[i])
			hashes = append(hashes, a.hashes[i])
			values = append(values, max(a.values[i], b.values[j]))
			i++
			j++
		case cmp < 0:
			nodes = append(nodes, a.nodes[i])
			hashes = append(hashes, a.hashes[i])
			values = append(values, a.values[i])
			i++
		default:
			nodes = append(nodes, b.nodes[j])
			hashes = append(hashes, b.hashes[j])
			values = append(values, b.values[j])
			j++
		}
	}
	nodes = append(append(nodes, a.nodes[i:]...), b.nodes[j:]...)
	hashes = append(append(hashes, a.hashes[i:]...), b.hashes[j:]...)
	values = append(append(values, a.values[i:]...), b.values[j:]...)

	return newClock(slices.Clip(nodes), slices.Clip(hashes), slices.Clip(values))
}
