package repair

import (
	"strconv"

	"vclock/internal/clock"
)

// VersionedValue represents a value with its vector clock version.
// This is used for reconciliation and is compatible with storage.VersionedValue.
type VersionedValue struct {
	Value   []byte
	Version clock.VectorClock
	Deleted bool
}

// ReconcileResult represents the result of reconciling multiple versions.
type ReconcileResult struct {
	// Winners is the maximal set of non-dominated versions (siblings).
	// If len(Winners) == 1, there's a single winner.
	// If len(Winners) > 1, there are concurrent versions (conflicts).
	Winners []VersionedValue

	// Stale maps replica identifier to the stale version it returned.
	// A version is stale if it happened before at least one other version.
	Stale map[string]VersionedValue
}

// Reconcile computes the maximal set of versions from the given list.
// It returns winners (non-dominated versions) and stale versions (dominated ones).
// replicaIDs should correspond 1:1 with values; when they don't, positional
// IDs "replica-<i>" are used.
func Reconcile(values []VersionedValue, replicaIDs []string) ReconcileResult {
	result := ReconcileResult{
		Winners: []VersionedValue{},
		Stale:   make(map[string]VersionedValue),
	}
	if len(values) == 0 {
		return result
	}

	if len(replicaIDs) != len(values) {
		replicaIDs = make([]string, len(values))
		for i := range replicaIDs {
			replicaIDs[i] = "replica-" + strconv.Itoa(i)
		}
	}

	for i, v := range values {
		if isDominated(v, i, values) {
			result.Stale[replicaIDs[i]] = v
			continue
		}
		if !containsVersion(result.Winners, v.Version) {
			result.Winners = append(result.Winners, v)
		}
	}

	return result
}

func isDominated(v VersionedValue, self int, values []VersionedValue) bool {
	for j, other := range values {
		if j != self && v.Version.IsBefore(other.Version) {
			return true
		}
	}
	return false
}

func containsVersion(winners []VersionedValue, version clock.VectorClock) bool {
	for _, w := range winners {
		if w.Version.Equal(version) {
			return true
		}
	}
	return false
}

// Merged returns the merge of every winner's version. A write carrying it
// supersedes all siblings.
func (r *ReconcileResult) Merged() clock.VectorClock {
	merged := clock.Empty
	for _, w := range r.Winners {
		merged = merged.Merge(w.Version)
	}
	return merged
}

// HasConflict returns true if there are multiple winners (conflicts).
func (r *ReconcileResult) HasConflict() bool {
	return len(r.Winners) > 1
}

// IsResolved returns true if there's exactly one winner (no conflict).
func (r *ReconcileResult) IsResolved() bool {
	return len(r.Winners) == 1
}

// IsNotFound returns true if there are no winners.
func (r *ReconcileResult) IsNotFound() bool {
	return len(r.Winners) == 0
}
