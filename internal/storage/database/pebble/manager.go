package pebble

import (
	"path/filepath"

	"github.com/LeJamon/goBondedMarkets/internal/storage/database"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// Manager opens pebble stores named <name>.db under a root directory.
type Manager struct {
	path    string
	fs      vfs.FS
	sync    *pebble.WriteOptions
	handles database.Handles[*pebble.DB]
}

var _ database.Manager = (*Manager)(nil)

// NewManager returns a manager rooted at path with durable writes.
func NewManager(path string) *Manager {
	return &Manager{path: path, sync: pebble.Sync}
}

// NewMemManager returns a manager whose stores live in memory and vanish
// on Close. Writes skip fsync.
func NewMemManager() *Manager {
	return &Manager{path: "/mem", fs: vfs.NewMem(), sync: pebble.NoSync}
}

func (m *Manager) OpenDB(name string) (database.DB, error) {
	db, err := m.handles.Get(name, func() (*pebble.DB, error) {
		opts := &pebble.Options{}
		if m.fs != nil {
			opts.FS = m.fs
		}
		return pebble.Open(filepath.Join(m.path, name+".db"), opts)
	})
	if err != nil {
		return nil, err
	}
	return &DB{db: db, sync: m.sync}, nil
}

func (m *Manager) CloseDB(name string) error {
	return m.handles.Close(name)
}

func (m *Manager) Close() error {
	return m.handles.CloseAll()
}
