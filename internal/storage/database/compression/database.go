package compression

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/storage/database"
)

// Value envelope: one flag byte, then for compressed values the raw length
// as a uvarint, then the payload.
const (
	flagRaw        byte = 0
	flagCompressed byte = 1
)

// ErrCorruptValue is returned for a stored value whose envelope is invalid.
var ErrCorruptValue = errors.New("corrupt compressed value")

// DB compresses values on the way into an inner database.DB.
type DB struct {
	inner database.DB
	comp  Compressor
}

var _ database.DB = (*DB)(nil)

// Wrap returns inner with values compressed by the named compressor.
func Wrap(inner database.DB, name string) (*DB, error) {
	c, err := Get(name)
	if err != nil {
		return nil, err
	}
	return &DB{inner: inner, comp: c}, nil
}

func (d *DB) encode(value []byte) ([]byte, error) {
	packed, ok, err := d.comp.Compress(value)
	if err != nil {
		return nil, err
	}
	if !ok {
		out := make([]byte, 1+len(value))
		out[0] = flagRaw
		copy(out[1:], value)
		return out, nil
	}

	out := make([]byte, 1, 1+binary.MaxVarintLen64+len(packed))
	out[0] = flagCompressed
	out = binary.AppendUvarint(out, uint64(len(value)))
	return append(out, packed...), nil
}

func (d *DB) decode(stored []byte) ([]byte, error) {
	if len(stored) == 0 {
		return nil, ErrCorruptValue
	}
	switch stored[0] {
	case flagRaw:
		return stored[1:], nil
	case flagCompressed:
		rawLen, n := binary.Uvarint(stored[1:])
		if n <= 0 {
			return nil, ErrCorruptValue
		}
		return d.comp.Decompress(stored[1+n:], int(rawLen))
	default:
		return nil, fmt.Errorf("%w: flag %d", ErrCorruptValue, stored[0])
	}
}

func (d *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	stored, err := d.inner.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	return d.decode(stored)
}

func (d *DB) Write(ctx context.Context, key, value []byte) error {
	enc, err := d.encode(value)
	if err != nil {
		return err
	}
	return d.inner.Write(ctx, key, enc)
}

func (d *DB) Delete(ctx context.Context, key []byte) error {
	return d.inner.Delete(ctx, key)
}

func (d *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	encoded := make([]database.BatchOperation, len(ops))
	for i, op := range ops {
		encoded[i] = op
		if op.Type != database.BatchPut {
			continue
		}
		enc, err := d.encode(op.Value)
		if err != nil {
			return err
		}
		encoded[i].Value = enc
	}
	return d.inner.Batch(ctx, encoded)
}

func (d *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	it, err := d.inner.Iterator(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &iterator{inner: it, db: d}, nil
}

type iterator struct {
	inner database.Iterator
	db    *DB
	value []byte
	err   error
}

func (it *iterator) Next() bool {
	if it.err != nil || !it.inner.Next() {
		return false
	}
	it.value, it.err = it.db.decode(it.inner.Value())
	return it.err == nil
}

func (it *iterator) Key() []byte   { return it.inner.Key() }
func (it *iterator) Value() []byte { return it.value }

func (it *iterator) Error() error {
	if it.err != nil {
		return it.err
	}
	return it.inner.Error()
}

func (it *iterator) Close() error { return it.inner.Close() }
