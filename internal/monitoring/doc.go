// Package monitoring exposes prometheus counters for components that stamp
// and reconcile data with vector clocks.
package monitoring
