package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"vclock/internal/clock"
)

func TestMarshal_KnownEncoding(t *testing.T) {
	vc := clock.New(clock.Entry{Node: "a", Counter: 1})

	// entries{node_id:"a" counter:1}
	want := []byte{0x0a, 0x05, 0x0a, 0x01, 'a', 0x10, 0x01}
	assert.Equal(t, want, Marshal(vc))
}

func TestMarshal_Empty(t *testing.T) {
	assert.Empty(t, Marshal(clock.Empty))

	vc, err := Unmarshal(nil)
	require.NoError(t, err)
	assert.True(t, vc.Equal(clock.Empty))
}

func TestWire_RoundTrip(t *testing.T) {
	vc := clock.FromMap(map[string]uint64{
		"node-1":  1,
		"node-2":  0,
		"node-10": 1 << 40,
		"ünïcode": 7,
	})

	got, err := Unmarshal(Marshal(vc))
	require.NoError(t, err)
	assert.True(t, vc.Equal(got), "got %s, want %s", got, vc)

	counter, ok := got.TryGet("node-2")
	assert.True(t, ok, "zero counters must survive the round trip")
	assert.Zero(t, counter)
}

func entry(node string, counter uint64) []byte {
	var e []byte
	e = protowire.AppendTag(e, entryNodeField, protowire.BytesType)
	e = protowire.AppendString(e, node)
	e = protowire.AppendTag(e, entryCounterField, protowire.VarintType)
	e = protowire.AppendVarint(e, counter)

	var b []byte
	b = protowire.AppendTag(b, entriesField, protowire.BytesType)
	return protowire.AppendBytes(b, e)
}

func TestUnmarshal_SortsEntries(t *testing.T) {
	var b []byte
	b = append(b, entry("c", 3)...)
	b = append(b, entry("a", 1)...)
	b = append(b, entry("b", 2)...)

	vc, err := Unmarshal(b)
	require.NoError(t, err)
	require.NoError(t, vc.Validate())
	assert.Equal(t, "{a:1, b:2, c:3}", vc.String())
}

func TestUnmarshal_DuplicateNode(t *testing.T) {
	b := append(entry("a", 1), entry("a", 2)...)

	_, err := Unmarshal(b)
	assert.ErrorIs(t, err, ErrDuplicateNode)
}

func TestUnmarshal_SkipsUnknownFields(t *testing.T) {
	b := entry("a", 1)
	b = protowire.AppendTag(b, 9, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)
	b = protowire.AppendTag(b, 10, protowire.BytesType)
	b = protowire.AppendString(b, "ignored")

	vc, err := Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, "{a:1}", vc.String())
}

func TestUnmarshal_Malformed(t *testing.T) {
	missingNode := protowire.AppendTag(nil, entriesField, protowire.BytesType)
	missingNode = protowire.AppendBytes(missingNode, protowire.AppendVarint(protowire.AppendTag(nil, entryCounterField, protowire.VarintType), 1))

	badUTF8 := protowire.AppendTag(nil, entriesField, protowire.BytesType)
	badUTF8 = protowire.AppendBytes(badUTF8, protowire.AppendBytes(protowire.AppendTag(nil, entryNodeField, protowire.BytesType), []byte{0xff, 0xfe}))

	full := entry("node", 300)

	tests := []struct {
		name  string
		input []byte
	}{
		{"truncated tag", []byte{0x80}},
		{"truncated entry", full[:len(full)-1]},
		{"entry without node", missingNode},
		{"invalid utf8 node", badUTF8},
		{"truncated unknown field", []byte{0x48}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal(tt.input)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}
