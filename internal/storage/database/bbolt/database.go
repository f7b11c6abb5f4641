// Package bbolt backs database.DB with a single bbolt bucket per store.
package bbolt

import (
	"bytes"
	"context"
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/storage/database"
	"go.etcd.io/bbolt"
)

// DB is one bucket of a bbolt file.
type DB struct {
	db     *bbolt.DB
	bucket []byte
}

var _ database.DB = (*DB)(nil)

// NewDB wraps bucket of db. A nil db behaves as closed.
func NewDB(db *bbolt.DB, bucket []byte) *DB {
	return &DB{db: db, bucket: bucket}
}

func (b *DB) lookup(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	bucket := tx.Bucket(b.bucket)
	if bucket == nil {
		return nil, fmt.Errorf("%w: %s", database.ErrNamespaceNotFound, b.bucket)
	}
	return bucket, nil
}

func (b *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if b.db == nil {
		return nil, database.ErrDBClosed
	}
	var value []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket, err := b.lookup(tx)
		if err != nil {
			return err
		}
		v := bucket.Get(key)
		if v == nil {
			return database.ErrKeyNotFound
		}
		// bbolt values are only valid for the life of the transaction
		value = database.Clone(v)
		return nil
	})
	return value, err
}

func (b *DB) Write(ctx context.Context, key, value []byte) error {
	return b.Batch(ctx, []database.BatchOperation{database.Put(key, value)})
}

func (b *DB) Delete(ctx context.Context, key []byte) error {
	return b.Batch(ctx, []database.BatchOperation{database.Del(key)})
}

// Batch applies ops in one read-write transaction.
func (b *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if b.db == nil {
		return database.ErrDBClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := b.lookup(tx)
		if err != nil {
			return err
		}
		return database.ApplyOps(ops, bucket.Put, bucket.Delete)
	})
}

// Iterator holds a read transaction open until Close.
func (b *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if b.db == nil {
		return nil, database.ErrDBClosed
	}
	tx, err := b.db.Begin(false)
	if err != nil {
		return nil, err
	}
	bucket, err := b.lookup(tx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	return &iterator{tx: tx, cursor: bucket.Cursor(), start: start, end: end}, nil
}

type iterator struct {
	tx         *bbolt.Tx
	cursor     *bbolt.Cursor
	start, end []byte
	started    bool
	key, value []byte
}

func (i *iterator) Next() bool {
	var k, v []byte
	switch {
	case i.started:
		k, v = i.cursor.Next()
	case i.start == nil:
		k, v = i.cursor.First()
	default:
		k, v = i.cursor.Seek(i.start)
	}
	i.started = true

	if k == nil || (i.end != nil && bytes.Compare(k, i.end) >= 0) {
		i.key, i.value = nil, nil
		return false
	}
	i.key, i.value = database.Clone(k), database.Clone(v)
	return true
}

func (i *iterator) Key() []byte   { return i.key }
func (i *iterator) Value() []byte { return i.value }
func (i *iterator) Error() error  { return nil }
func (i *iterator) Close() error  { return i.tx.Rollback() }
