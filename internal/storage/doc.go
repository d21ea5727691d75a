// Package storage provides the local key-value storage interface and
// in-memory implementation. Every stored value carries the vector clock
// of the write that produced it, which is what conflict detection and
// read repair compare.
package storage
