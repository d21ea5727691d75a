package clock

import (
	"errors"
	"testing"
)

func TestVectorClock_Compare_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		vc1      VectorClock
		vc2      VectorClock
		expected CompareResult
	}{
		{
			name:     "empty clocks are equal",
			vc1:      Empty,
			vc2:      New(),
			expected: Equal,
		},
		{
			name:     "empty before non-empty",
			vc1:      Empty,
			vc2:      New(Entry{"node1", 1}),
			expected: Before,
		},
		{
			name:     "non-empty after empty",
			vc1:      New(Entry{"node1", 1}),
			vc2:      Empty,
			expected: After,
		},
		{
			name:     "subset before superset",
			vc1:      New(Entry{"node1", 1}),
			vc2:      New(Entry{"node1", 1}, Entry{"node2", 1}),
			expected: Before,
		},
		{
			name:     "superset after subset",
			vc1:      New(Entry{"node1", 1}, Entry{"node2", 1}),
			vc2:      New(Entry{"node1", 1}),
			expected: After,
		},
		{
			name:     "concurrent: different nodes",
			vc1:      New(Entry{"node1", 2}),
			vc2:      New(Entry{"node2", 2}),
			expected: Concurrent,
		},
		{
			name:     "extra node with zero counter",
			vc1:      New(Entry{"node1", 1}),
			vc2:      New(Entry{"node1", 1}, Entry{"node2", 0}),
			expected: Concurrent,
		},
		{
			name:     "extra zero node does not hide a real difference",
			vc1:      New(Entry{"node1", 1}),
			vc2:      New(Entry{"node1", 2}, Entry{"node2", 0}),
			expected: Before,
		},
		{
			name:     "trailing remainder on the left",
			vc1:      New(Entry{"a", 1}, Entry{"b", 1}, Entry{"c", 0}, Entry{"d", 5}),
			vc2:      New(Entry{"a", 1}, Entry{"b", 1}),
			expected: After,
		},
		{
			name:     "trailing remainder on the right",
			vc1:      New(Entry{"a", 3}),
			vc2:      New(Entry{"a", 3}, Entry{"b", 0}, Entry{"c", 1}),
			expected: Before,
		},
		{
			name:     "trailing remainder turns greater into concurrent",
			vc1:      New(Entry{"a", 4}),
			vc2:      New(Entry{"a", 3}, Entry{"z", 1}),
			expected: Concurrent,
		},
		{
			name:     "interleaved nodes missing on both sides",
			vc1:      New(Entry{"a", 1}, Entry{"c", 1}),
			vc2:      New(Entry{"b", 1}, Entry{"c", 1}),
			expected: Concurrent,
		},
		{
			name:     "interleaved with zeros on the lesser side",
			vc1:      New(Entry{"a", 0}, Entry{"c", 1}),
			vc2:      New(Entry{"b", 1}, Entry{"c", 2}),
			expected: Before,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vc1.Compare(tt.vc2)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
			if got := tt.vc1.IsBefore(tt.vc2); got != (tt.expected == Before) {
				t.Errorf("IsBefore = %v, disagrees with %v", got, tt.expected)
			}
			if got := tt.vc1.IsAfter(tt.vc2); got != (tt.expected == After) {
				t.Errorf("IsAfter = %v, disagrees with %v", got, tt.expected)
			}
			if got := tt.vc1.IsConcurrentWith(tt.vc2); got != (tt.expected == Concurrent) {
				t.Errorf("IsConcurrentWith = %v, disagrees with %v", got, tt.expected)
			}
			if got := tt.vc1.Equal(tt.vc2); got != (tt.expected == Equal) {
				t.Errorf("Equal = %v, disagrees with %v", got, tt.expected)
			}
		})
	}
}

func TestVectorClock_PartialCompare(t *testing.T) {
	a := New(Entry{"n1", 1})
	b := a.Increment("n1")

	if cmp, ok := a.PartialCompare(b); !ok || cmp != -1 {
		t.Errorf("Expected (-1, true), got (%d, %v)", cmp, ok)
	}
	if cmp, ok := b.PartialCompare(a); !ok || cmp != 1 {
		t.Errorf("Expected (1, true), got (%d, %v)", cmp, ok)
	}
	if cmp, ok := a.PartialCompare(New(Entry{"n1", 1})); !ok || cmp != 0 {
		t.Errorf("Expected (0, true), got (%d, %v)", cmp, ok)
	}
}

func TestVectorClock_IdenticalStorage(t *testing.T) {
	vc := New(Entry{"a", 1}, Entry{"b", 2})

	if !vc.sharesStorage(vc) {
		t.Fatal("A clock should share storage with itself")
	}
	if vc.IsBefore(vc) || vc.IsAfter(vc) || vc.IsConcurrentWith(vc) {
		t.Error("A clock is neither before, after nor concurrent with itself")
	}
	if !vc.Merge(vc).sharesStorage(vc) {
		t.Error("Merging a clock with itself should return it unchanged")
	}
	if !vc.Prune("zzz").sharesStorage(vc) {
		t.Error("Pruning an absent node should return the same clock")
	}
	if !vc.Merge(Empty).sharesStorage(vc) || !Empty.Merge(vc).sharesStorage(vc) {
		t.Error("Merging with Empty should return the other clock")
	}
}

func TestVectorClock_FastPathSharesNodeTable(t *testing.T) {
	a := New(Entry{"a", 1}, Entry{"b", 5})
	b := New(Entry{"a", 3}, Entry{"b", 2})

	merged := a.Merge(b)
	if &merged.nodes[0] != &a.nodes[0] || &merged.hashes[0] != &a.hashes[0] {
		t.Error("Fast merge should reuse the node table")
	}
	if &merged.values[0] == &a.values[0] {
		t.Error("Fast merge must allocate new counters")
	}

	bumped := a.Increment("b")
	if &bumped.nodes[0] != &a.nodes[0] {
		t.Error("Incrementing a present node should reuse the node table")
	}
	if a.Get("b") != 5 {
		t.Error("Increment should not modify the receiver")
	}
}

func TestVectorClock_HaveSameNodes_HashMatchStillComparesStrings(t *testing.T) {
	a := New(Entry{"a", 1}, Entry{"b", 1})
	b := New(Entry{"a", 1}, Entry{"c", 1})
	// force a hash collision on the second lane
	b.hashes = []uint64{b.hashes[0], a.hashes[1]}

	if haveSameNodes(a, b) {
		t.Error("Matching hashes must not be trusted without comparing nodes")
	}
	if a.Equal(b) {
		t.Error("Clocks with different nodes must not be equal")
	}
}

func TestVectorClock_Prune(t *testing.T) {
	vc := New(Entry{"a", 1}, Entry{"b", 2}, Entry{"c", 3})

	tests := []struct {
		node string
		want string
	}{
		{"a", "{b:2, c:3}"},
		{"b", "{a:1, c:3}"},
		{"c", "{a:1, b:2}"},
		{"d", "{a:1, b:2, c:3}"},
	}
	for _, tt := range tests {
		t.Run(tt.node, func(t *testing.T) {
			got := vc.Prune(tt.node)
			if got.String() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("Invalid clock after prune: %v", err)
			}
		})
	}

	last := New(Entry{"only", 7}).Prune("only")
	if last.Len() != 0 || !last.Equal(Empty) {
		t.Errorf("Pruning the last node should give Empty, got %s", last)
	}
}

func TestVectorClock_Validate(t *testing.T) {
	if err := New(Entry{"a", 1}, Entry{"b", 1}).Validate(); err != nil {
		t.Errorf("Expected valid clock, got %v", err)
	}
	if err := Empty.Validate(); err != nil {
		t.Errorf("Expected Empty to be valid, got %v", err)
	}

	unsorted := VectorClock{
		nodes:  []string{"b", "a"},
		hashes: []uint64{hashNode("b"), hashNode("a")},
		values: []uint64{1, 1},
	}
	if err := unsorted.Validate(); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("Expected ErrInvalidClock for unsorted nodes, got %v", err)
	}

	duplicate := VectorClock{
		nodes:  []string{"a", "a"},
		hashes: []uint64{hashNode("a"), hashNode("a")},
		values: []uint64{1, 2},
	}
	if err := duplicate.Validate(); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("Expected ErrInvalidClock for duplicate nodes, got %v", err)
	}

	stale := VectorClock{
		nodes:  []string{"a"},
		hashes: []uint64{42},
		values: []uint64{1},
	}
	if err := stale.Validate(); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("Expected ErrInvalidClock for stale hash, got %v", err)
	}

	short := VectorClock{nodes: []string{"a"}, hashes: []uint64{hashNode("a")}}
	if err := short.Validate(); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("Expected ErrInvalidClock for missing counters, got %v", err)
	}
}

func TestVectorClock_Hash(t *testing.T) {
	a := FromMap(map[string]uint64{"n1": 1, "n2": 2})
	b := New(Entry{"n1", 1}, Entry{"n2", 2})
	if a.Hash() != b.Hash() {
		t.Error("Equal clocks must hash equal")
	}
	if Empty.Hash() != New().Hash() {
		t.Error("Empty clocks must hash equal")
	}
}
