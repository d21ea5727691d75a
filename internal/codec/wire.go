package codec

import (
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"

	"vclock/internal/clock"
)

const (
	entriesField protowire.Number = 1

	entryNodeField    protowire.Number = 1
	entryCounterField protowire.Number = 2
)

// Marshal encodes vc in protobuf wire format. Entries are written in node
// order; zero counters are omitted as proto3 defaults.
func Marshal(vc clock.VectorClock) []byte {
	var b, entry []byte
	for node, counter := range vc.All() {
		entry = entry[:0]
		entry = protowire.AppendTag(entry, entryNodeField, protowire.BytesType)
		entry = protowire.AppendString(entry, node)
		if counter != 0 {
			entry = protowire.AppendTag(entry, entryCounterField, protowire.VarintType)
			entry = protowire.AppendVarint(entry, counter)
		}
		b = protowire.AppendTag(b, entriesField, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}
	return b
}

// Unmarshal decodes a protobuf-encoded clock. Unknown fields are skipped.
func Unmarshal(b []byte) (clock.VectorClock, error) {
	var entries []clock.Entry
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return clock.Empty, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		if num == entriesField && typ == protowire.BytesType {
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return clock.Empty, fmt.Errorf("%w: entry: %v", ErrMalformed, protowire.ParseError(n))
			}
			b = b[n:]

			e, err := unmarshalEntry(raw)
			if err != nil {
				return clock.Empty, err
			}
			entries = append(entries, e)
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return clock.Empty, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return build(entries)
}

func unmarshalEntry(b []byte) (clock.Entry, error) {
	var e clock.Entry
	var hasNode bool
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return e, fmt.Errorf("%w: entry: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == entryNodeField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return e, fmt.Errorf("%w: node_id: %v", ErrMalformed, protowire.ParseError(n))
			}
			if !utf8.ValidString(v) {
				return e, fmt.Errorf("%w: node_id is not valid UTF-8", ErrMalformed)
			}
			e.Node, hasNode = v, true
			b = b[n:]
		case num == entryCounterField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return e, fmt.Errorf("%w: counter: %v", ErrMalformed, protowire.ParseError(n))
			}
			e.Counter = v
			b = b[n:]
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return e, fmt.Errorf("%w: entry field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	if !hasNode {
		return e, fmt.Errorf("%w: entry without node_id", ErrMalformed)
	}
	return e, nil
}
