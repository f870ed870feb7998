package protocol

import (
	"testing"

	"github.com/encodeous/dvnode/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestEncodeDecodeVector(t *testing.T) {
	vec := state.Vector{"1": 0, "2": 3, "A": state.INF}
	out, err := DecodeVector(EncodeVector(vec))
	require.NoError(t, err)
	assert.Equal(t, vec, out)
}

func TestEncodeDeterministic(t *testing.T) {
	a := state.Vector{}
	b := state.Vector{}
	for _, d := range []state.Addr{"5", "3", "9", "1", "7"} {
		a[d] = 1
	}
	for _, d := range []state.Addr{"1", "9", "7", "3", "5"} {
		b[d] = 1
	}
	assert.Equal(t, EncodeVector(a), EncodeVector(b))
}

func TestDecodeEmpty(t *testing.T) {
	vec, err := DecodeVector(nil)
	require.NoError(t, err)
	assert.Empty(t, vec)
	assert.NotNil(t, vec)
}

func TestDecodeTruncated(t *testing.T) {
	b := EncodeVector(state.Vector{"1": 2, "2": 3})
	_, err := DecodeVector(b[:len(b)-2])
	assert.Error(t, err)
}

func entry(dest string, cost uint64) []byte {
	var e []byte
	if dest != "" {
		e = protowire.AppendTag(e, entryDestField, protowire.BytesType)
		e = protowire.AppendString(e, dest)
	}
	e = protowire.AppendTag(e, entryCostField, protowire.VarintType)
	e = protowire.AppendVarint(e, cost)
	var b []byte
	b = protowire.AppendTag(b, vectorEntriesField, protowire.BytesType)
	return protowire.AppendBytes(b, e)
}

func TestDecodeRejectsCostAboveInfinity(t *testing.T) {
	_, err := DecodeVector(entry("1", 17))
	assert.ErrorIs(t, err, ErrCostTooLarge)
}

func TestDecodeRejectsMissingDest(t *testing.T) {
	_, err := DecodeVector(entry("", 1))
	assert.ErrorIs(t, err, ErrBadEntry)
}

func TestDecodeRejectsDuplicate(t *testing.T) {
	b := append(entry("1", 1), entry("1", 2)...)
	_, err := DecodeVector(b)
	assert.ErrorIs(t, err, ErrDuplicateDest)
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 7, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)
	b = append(b, entry("3", 4)...)
	vec, err := DecodeVector(b)
	require.NoError(t, err)
	assert.Equal(t, state.Vector{"3": 4}, vec)
}
