package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters and histograms of the clock-consuming
// components. The store and the read repairer share one instance.
type Metrics struct {
	Writes             prometheus.Counter
	ConcurrentWrites   prometheus.Counter
	RepairsApplied     prometheus.Counter
	RepairsRejected    prometheus.Counter
	RepairsFailed      prometheus.Counter
	ReconcileConflicts prometheus.Counter
	ClockWidth         prometheus.Histogram
}

// NewMetrics registers the metrics on reg. Pass prometheus.NewRegistry()
// for an isolated set, e.g. in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Writes: factory.NewCounter(prometheus.CounterOpts{
			Name: "vclock_store_writes_total",
			Help: "Total number of versioned writes, tombstones included",
		}),
		ConcurrentWrites: factory.NewCounter(prometheus.CounterOpts{
			Name: "vclock_store_concurrent_writes_total",
			Help: "Writes whose version was concurrent with the stored version",
		}),
		RepairsApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "vclock_repairs_applied_total",
			Help: "Repair writes that replaced the stored version",
		}),
		RepairsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "vclock_repairs_rejected_total",
			Help: "Repair writes skipped because the stored version was not older",
		}),
		RepairsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "vclock_repairs_failed_total",
			Help: "Repair writes that returned an error",
		}),
		ReconcileConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "vclock_reconcile_conflicts_total",
			Help: "Reconciliations that ended with concurrent siblings",
		}),
		ClockWidth: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "vclock_clock_nodes",
			Help:    "Number of nodes in versions written to the store",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}
}
