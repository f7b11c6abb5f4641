package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/entry"
	"github.com/ugorji/go/codec"
)

var msgpack = func() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.Canonical = true
	h.WriteExt = true
	return h
}()

// EncodeEntry serializes v as a ledger entry of type t: a 2-byte big-endian
// type tag followed by the msgpack body.
func EncodeEntry(t entry.Type, v any) ([]byte, error) {
	var body []byte
	if err := codec.NewEncoderBytes(&body, msgpack).Encode(v); err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	out := make([]byte, 2+len(body))
	binary.BigEndian.PutUint16(out, uint16(t))
	copy(out[2:], body)
	return out, nil
}

// DecodeEntry parses data produced by EncodeEntry into v, checking the tag.
func DecodeEntry(data []byte, t entry.Type, v any) error {
	got, err := EntryType(data)
	if err != nil {
		return err
	}
	if got != t {
		return fmt.Errorf("%w: want %s, got %s", ErrEntryType, t, got)
	}
	if err := codec.NewDecoderBytes(data[2:], msgpack).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", t, err)
	}
	return nil
}

// EntryType returns the type tag of a stored entry.
func EntryType(data []byte) (entry.Type, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("%w: entry too short (%d bytes)", ErrEntryType, len(data))
	}
	return entry.Type(binary.BigEndian.Uint16(data)), nil
}
