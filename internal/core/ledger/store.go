package ledger

import (
	"context"
	"errors"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/entry"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/keylet"
	"github.com/LeJamon/goBondedMarkets/internal/storage/database"
)

// Store is the committed ledger state held in a key-value database.
// Entries are stored under keylet.Bytes(), so all entries of one type share
// a 2-byte key prefix.
type Store struct {
	db database.DB
}

// NewStore wraps db.
func NewStore(db database.DB) *Store {
	return &Store{db: db}
}

// Read returns the stored bytes for k, or nil if the entry does not exist.
func (s *Store) Read(ctx context.Context, k keylet.Keylet) ([]byte, error) {
	data, err := s.db.Read(ctx, k.Bytes())
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil, nil
	}
	return data, err
}

// Exists reports whether k is present.
func (s *Store) Exists(ctx context.Context, k keylet.Keylet) (bool, error) {
	data, err := s.Read(ctx, k)
	return data != nil, err
}

// Commit writes ops in a single atomic batch.
func (s *Store) Commit(ctx context.Context, ops []database.BatchOperation) error {
	if len(ops) == 0 {
		return nil
	}
	return s.db.Batch(ctx, ops)
}

// ForEach calls fn for every stored entry of type t in key order until fn
// returns false.
func (s *Store) ForEach(ctx context.Context, t entry.Type, fn func(k keylet.Keylet, data []byte) bool) error {
	prefix := keylet.Keylet{Type: t}.Bytes()[:2]
	it, err := s.db.Iterator(ctx, prefix, database.PrefixEnd(prefix))
	if err != nil {
		return err
	}
	defer it.Close()

	for it.Next() {
		k, err := keylet.FromBytes(it.Key())
		if err != nil {
			return err
		}
		if !fn(k, it.Value()) {
			break
		}
	}
	return it.Error()
}
