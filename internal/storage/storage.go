// Package storage opens the key-value backend that holds ledger state.
package storage

import (
	"fmt"
	"os"

	"github.com/LeJamon/goBondedMarkets/internal/storage/database"
	"github.com/LeJamon/goBondedMarkets/internal/storage/database/bbolt"
	"github.com/LeJamon/goBondedMarkets/internal/storage/database/compression"
	"github.com/LeJamon/goBondedMarkets/internal/storage/database/leveldb"
	"github.com/LeJamon/goBondedMarkets/internal/storage/database/pebble"
)

// Backend names accepted by Open.
const (
	BackendPebble  = "pebble"
	BackendBBolt   = "bbolt"
	BackendLevelDB = "leveldb"
	BackendMemory  = "memory"
)

// LedgerDBName is the database every ledger entry lives in.
const LedgerDBName = "ledger"

// Options selects and configures a backend.
type Options struct {
	Backend     string
	Path        string
	Compression string
}

// Backends returns the accepted backend names.
func Backends() []string {
	return []string{BackendPebble, BackendBBolt, BackendLevelDB, BackendMemory}
}

// NewManager returns the database.Manager for a backend.
func NewManager(backend, path string) (database.Manager, error) {
	switch backend {
	case BackendMemory:
		return pebble.NewMemManager(), nil
	case BackendPebble, BackendBBolt, BackendLevelDB:
		if path == "" {
			return nil, fmt.Errorf("storage backend %s requires a path", backend)
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", database.ErrUnknownBackend, backend)
	}

	switch backend {
	case BackendBBolt:
		return bbolt.NewManager(path), nil
	case BackendLevelDB:
		return leveldb.NewManager(path), nil
	default:
		return pebble.NewManager(path), nil
	}
}

// Open opens the ledger database. The caller closes the returned manager.
func Open(opts Options) (database.DB, database.Manager, error) {
	m, err := NewManager(opts.Backend, opts.Path)
	if err != nil {
		return nil, nil, err
	}

	db, err := m.OpenDB(LedgerDBName)
	if err != nil {
		m.Close()
		return nil, nil, err
	}

	if opts.Compression == "" || opts.Compression == "none" {
		return db, m, nil
	}

	wrapped, err := compression.Wrap(db, opts.Compression)
	if err != nil {
		m.Close()
		return nil, nil, err
	}
	return wrapped, m, nil
}
