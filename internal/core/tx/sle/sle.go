// Package sle defines the serialized ledger entries stored in state and the
// codec used to store them. Every stored blob is a two byte big-endian entry
// type followed by the msgpack body, so a blob can be typed without decoding.
package sle

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ugorji/go/codec"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/entry"
)

var (
	ErrShortEntry   = errors.New("ledger entry too short")
	ErrTypeMismatch = errors.New("ledger entry type mismatch")
)

var handle = newHandle()

func newHandle() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.WriteExt = true
	h.Canonical = true
	return h
}

// Encode serializes v as an entry of type t.
func Encode(t entry.Type, v any) ([]byte, error) {
	var body []byte
	if err := codec.NewEncoderBytes(&body, handle).Encode(v); err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	out := make([]byte, 2, 2+len(body))
	binary.BigEndian.PutUint16(out, uint16(t))
	return append(out, body...), nil
}

// Decode parses data into v, which must be an entry of type t.
func Decode(data []byte, t entry.Type, v any) error {
	got, err := EntryType(data)
	if err != nil {
		return err
	}
	if got != t {
		return fmt.Errorf("%w: want %s, got %s", ErrTypeMismatch, t, got)
	}
	if err := codec.NewDecoderBytes(data[2:], handle).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", t, err)
	}
	return nil
}

// EntryType returns the type prefix of a stored entry.
func EntryType(data []byte) (entry.Type, error) {
	if len(data) < 2 {
		return 0, ErrShortEntry
	}
	return entry.Type(binary.BigEndian.Uint16(data[:2])), nil
}

// MarshalJSON helpers use this to render stored entries without knowing
// their concrete type.
func DecodeAny(data []byte) (any, error) {
	t, err := EntryType(data)
	if err != nil {
		return nil, err
	}
	switch t {
	case entry.TypeAccountRoot:
		return ParseAccountRoot(data)
	case entry.TypeProtocolConfig:
		return ParseProtocolConfig(data)
	case entry.TypeCollectionEntry:
		return ParseCollectionEntry(data)
	case entry.TypeAuctionRecord:
		return ParseAuctionRecord(data)
	case entry.TypeAsset:
		return ParseAsset(data)
	case entry.TypeAssetCollection:
		return ParseAssetCollection(data)
	default:
		return nil, fmt.Errorf("%w: unknown type %s", ErrTypeMismatch, t)
	}
}
