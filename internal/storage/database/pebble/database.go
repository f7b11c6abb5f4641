// Package pebble backs database.DB with cockroachdb/pebble. It is the
// default ledger store and, over an in-memory filesystem, the memory backend.
package pebble

import (
	"context"
	"errors"

	"github.com/LeJamon/goBondedMarkets/internal/storage/database"
	"github.com/cockroachdb/pebble"
)

// DB is one pebble store. Every mutation goes through a pebble batch.
type DB struct {
	db   *pebble.DB
	sync *pebble.WriteOptions
}

var _ database.DB = (*DB)(nil)

// NewDB wraps db with durable writes. A nil db behaves as closed.
func NewDB(db *pebble.DB) *DB {
	return &DB{db: db, sync: pebble.Sync}
}

func (p *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if p.db == nil {
		return nil, database.ErrDBClosed
	}
	val, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrKeyNotFound
	} else if err != nil {
		return nil, err
	}
	defer closer.Close()
	return database.Clone(val), nil
}

func (p *DB) Write(ctx context.Context, key, value []byte) error {
	return p.Batch(ctx, []database.BatchOperation{database.Put(key, value)})
}

func (p *DB) Delete(ctx context.Context, key []byte) error {
	return p.Batch(ctx, []database.BatchOperation{database.Del(key)})
}

// Batch commits ops in one pebble batch. A ledger unit of work is always a
// single call.
func (p *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if p.db == nil {
		return database.ErrDBClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b := p.db.NewBatch()
	defer b.Close()
	err := database.ApplyOps(ops,
		func(k, v []byte) error { return b.Set(k, v, nil) },
		func(k []byte) error { return b.Delete(k, nil) })
	if err != nil {
		return err
	}
	return b.Commit(p.sync)
}

func (p *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if p.db == nil {
		return nil, database.ErrDBClosed
	}
	it, err := p.db.NewIter(&pebble.IterOptions{LowerBound: start, UpperBound: end})
	if err != nil {
		return nil, err
	}
	return &iterator{it: it}, nil
}

type iterator struct {
	it         *pebble.Iterator
	started    bool
	key, value []byte
}

func (i *iterator) Next() bool {
	var ok bool
	if i.started {
		ok = i.it.Next()
	} else {
		i.started = true
		ok = i.it.First()
	}
	if !ok {
		i.key, i.value = nil, nil
		return false
	}
	i.key = database.Clone(i.it.Key())
	i.value = database.Clone(i.it.Value())
	return true
}

func (i *iterator) Key() []byte   { return i.key }
func (i *iterator) Value() []byte { return i.value }
func (i *iterator) Error() error  { return i.it.Error() }
func (i *iterator) Close() error  { return i.it.Close() }
