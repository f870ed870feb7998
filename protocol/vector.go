package protocol

// Vectors are encoded in the protobuf wire format as
//
//	message Vector { repeated Entry entries = 1; }
//	message Entry  { string dest = 1; uint32 cost = 2; }
//
// with entries sorted by destination, so equal vectors always encode to equal bytes.

import (
	"errors"
	"fmt"

	"github.com/encodeous/dvnode/state"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	vectorEntriesField protowire.Number = 1
	entryDestField     protowire.Number = 1
	entryCostField     protowire.Number = 2
)

var (
	ErrTruncated     = errors.New("truncated vector")
	ErrBadEntry      = errors.New("malformed vector entry")
	ErrCostTooLarge  = errors.New("advertised cost exceeds infinity")
	ErrDuplicateDest = errors.New("duplicate destination in vector")
)

func EncodeVector(vec state.Vector) []byte {
	var b []byte
	for _, dest := range state.SortedAddrs(vec) {
		var entry []byte
		entry = protowire.AppendTag(entry, entryDestField, protowire.BytesType)
		entry = protowire.AppendString(entry, string(dest))
		entry = protowire.AppendTag(entry, entryCostField, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(vec[dest]))

		b = protowire.AppendTag(b, vectorEntriesField, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}
	return b
}

func DecodeVector(b []byte) (state.Vector, error) {
	vec := make(state.Vector)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrTruncated, protowire.ParseError(n))
		}
		b = b[n:]
		if num != vectorEntriesField || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %w", ErrTruncated, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}
		entry, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrTruncated, protowire.ParseError(n))
		}
		b = b[n:]
		dest, cost, err := decodeEntry(entry)
		if err != nil {
			return nil, err
		}
		if _, ok := vec[dest]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDest, dest)
		}
		vec[dest] = cost
	}
	return vec, nil
}

func decodeEntry(b []byte) (state.Addr, uint32, error) {
	var dest state.Addr
	var cost uint64
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return "", 0, fmt.Errorf("%w: %w", ErrBadEntry, protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == entryDestField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return "", 0, fmt.Errorf("%w: %w", ErrBadEntry, protowire.ParseError(n))
			}
			dest = state.Addr(v)
			b = b[n:]
		case num == entryCostField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return "", 0, fmt.Errorf("%w: %w", ErrBadEntry, protowire.ParseError(n))
			}
			cost = v
			b = b[n:]
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return "", 0, fmt.Errorf("%w: %w", ErrBadEntry, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	if dest == "" {
		return "", 0, fmt.Errorf("%w: missing destination", ErrBadEntry)
	}
	if cost > uint64(state.INF) {
		return "", 0, fmt.Errorf("%w: %s at %d", ErrCostTooLarge, dest, cost)
	}
	return dest, uint32(cost), nil
}
