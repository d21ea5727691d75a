// Package codec converts vector clocks to and from their wire and text
// forms. The wire form is the protobuf message
//
//	message VectorClock { repeated VectorClockEntry entries = 1; }
//	message VectorClockEntry { string node_id = 1; uint64 counter = 2; }
//
// Decoding sorts entries and rejects duplicates so every decoded clock
// satisfies the ordering the clock package expects.
package codec
