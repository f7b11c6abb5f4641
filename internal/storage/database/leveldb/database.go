// Package leveldb backs database.DB with goleveldb.
package leveldb

import (
	"context"
	"errors"

	"github.com/LeJamon/goBondedMarkets/internal/storage/database"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type DB struct {
	db *leveldb.DB
}

func NewDB(db *leveldb.DB) *DB {
	return &DB{db: db}
}

var syncWrite = &opt.WriteOptions{Sync: true}

func (l *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if l.db == nil {
		return nil, database.ErrDBClosed
	}

	val, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, database.ErrKeyNotFound
		}
		return nil, err
	}
	return val, nil
}

func (l *DB) Write(ctx context.Context, key, value []byte) error {
	return l.Batch(ctx, []database.BatchOperation{database.Put(key, value)})
}

func (l *DB) Delete(ctx context.Context, key []byte) error {
	return l.Batch(ctx, []database.BatchOperation{database.Del(key)})
}

// Batch commits ops in one leveldb write batch.
func (l *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	err := database.ApplyOps(ops,
		func(k, v []byte) error { batch.Put(k, v); return nil },
		func(k []byte) error { batch.Delete(k); return nil })
	if err != nil {
		return err
	}
	return l.db.Write(batch, syncWrite)
}

type Iterator struct {
	iter iterator.Iterator
}

func (l *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if l.db == nil {
		return nil, database.ErrDBClosed
	}
	return &Iterator{iter: l.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)}, nil
}

func (it *Iterator) Next() bool { return it.iter.Next() }

func (it *Iterator) Key() []byte   { return database.Clone(it.iter.Key()) }
func (it *Iterator) Value() []byte { return database.Clone(it.iter.Value()) }

func (it *Iterator) Error() error { return it.iter.Error() }

func (it *Iterator) Close() error {
	it.iter.Release()
	return nil
}
