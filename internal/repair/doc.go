// Package repair provides conflict reconciliation logic for resolving
// concurrent versions using vector clocks. It computes the maximal set
// of winning versions and brings stale replicas up to date.
package repair
