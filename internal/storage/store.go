package storage

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"vclock/internal/clock"
	"vclock/internal/logging"
	"vclock/internal/monitoring"
)

// ErrEmptyVersion is returned by PutRepair when no version is supplied.
var ErrEmptyVersion = errors.New("repair requires a non-empty version")

// VersionedValue represents a value with its vector clock version.
type VersionedValue struct {
	Value   []byte
	Version clock.VectorClock
	Deleted bool // True if this is a tombstone (deleted)
}

// IsTombstone checks if this is a deletion tombstone.
func (vv *VersionedValue) IsTombstone() bool {
	return vv.Deleted
}

// Store defines the interface for key-value storage.
type Store interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(key string) *VersionedValue
	// Put stores a value. The supplied version (Empty for a blind write) is
	// merged with the stored one and incremented for the local node.
	Put(key string, value []byte, version clock.VectorClock, deleted bool) clock.VectorClock
	// PutRepair stores a value with the exact version (no increment).
	// Only overwrites if the incoming version is after or equal to the stored one.
	PutRepair(key string, value []byte, version clock.VectorClock, deleted bool) error
	// Delete writes a tombstone. Returns the version after deletion.
	Delete(key string, version clock.VectorClock) clock.VectorClock
}

// Option configures an InMemoryStore.
type Option func(*InMemoryStore)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *InMemoryStore) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics. Defaults to metrics on a private registry.
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(s *InMemoryStore) {
		s.metrics = metrics
	}
}

// InMemoryStore is an in-memory implementation of Store.
// It's thread-safe.
type InMemoryStore struct {
	mu      sync.RWMutex
	data    map[string]*VersionedValue
	nodeID  string // Node ID stamped into every local write
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore(nodeID string, opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		data:   make(map[string]*VersionedValue),
		nodeID: nodeID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	if s.metrics == nil {
		s.metrics = monitoring.NewMetrics(prometheus.NewRegistry())
	}
	s.logger = s.logger.WithNodeID(nodeID)
	return s
}

// NodeID returns the node stamped into local writes.
func (s *InMemoryStore) NodeID() string {
	return s.nodeID
}

// Get retrieves a value by key.
func (s *InMemoryStore) Get(key string) *VersionedValue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vv, exists := s.data[key]
	if !exists {
		return nil
	}

	// Versions are immutable; only the value bytes need copying.
	return &VersionedValue{
		Value:   append([]byte(nil), vv.Value...),
		Version: vv.Version,
		Deleted: vv.Deleted,
	}
}

// Keys returns the stored keys, tombstones included.
func (s *InMemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}

// Put stores a value with the given version.
// The version is merged with the stored version, if any, and then
// incremented for this node. If deleted is true, stores a tombstone.
func (s *InMemoryStore) Put(key string, value []byte, version clock.VectorClock, deleted bool) clock.VectorClock {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(key, value, version, deleted)
}

// Delete writes a tombstone for key.
func (s *InMemoryStore) Delete(key string, version clock.VectorClock) clock.VectorClock {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(key, nil, version, true)
}

// write must be called with s.mu held.
func (s *InMemoryStore) write(key string, value []byte, version clock.VectorClock, deleted bool) clock.VectorClock {
	newVersion := version
	if existing, exists := s.data[key]; exists {
		if version.IsConcurrentWith(existing.Version) {
			s.metrics.ConcurrentWrites.Inc()
			s.logger.WithKey(key).Info("concurrent write, merging versions",
				zap.Stringer("incoming", version),
				zap.Stringer("stored", existing.Version))
		}
		newVersion = newVersion.Merge(existing.Version)
	}
	newVersion = newVersion.Increment(s.nodeID)

	// Store the value (or tombstone)
	var valueCopy []byte
	if !deleted {
		valueCopy = append([]byte(nil), value...)
	}
	s.data[key] = &VersionedValue{
		Value:   valueCopy,
		Version: newVersion,
		Deleted: deleted,
	}

	s.metrics.Writes.Inc()
	s.metrics.ClockWidth.Observe(float64(newVersion.Len()))
	return newVersion
}

// PutRepair stores a value with the exact version (no increment) for read repair.
// Only overwrites if incoming version is after or equal to the stored version.
func (s *InMemoryStore) PutRepair(key string, value []byte, version clock.VectorClock, deleted bool) error {
	if version.Len() == 0 {
		return ErrEmptyVersion
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.data[key]; exists {
		comp := version.Compare(existing.Version)
		if comp != clock.After && comp != clock.Equal {
			// Incoming version is before or concurrent - don't overwrite
			s.metrics.RepairsRejected.Inc()
			s.logger.WithKey(key).Debug("repair skipped",
				zap.Stringer("relation", comp),
				zap.Stringer("incoming", version),
				zap.Stringer("stored", existing.Version))
			return nil
		}
	}

	var valueCopy []byte
	if !deleted {
		valueCopy = append([]byte(nil), value...)
	}
	s.data[key] = &VersionedValue{
		Value:   valueCopy,
		Version: version,
		Deleted: deleted,
	}

	s.metrics.RepairsApplied.Inc()
	return nil
}
