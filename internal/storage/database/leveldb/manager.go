package leveldb

import (
	"path/filepath"

	"github.com/LeJamon/goBondedMarkets/internal/storage/database"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// Manager opens leveldb stores named <name>.ldb under a root directory, or
// in memory.
type Manager struct {
	path    string
	memory  bool
	handles database.Handles[*leveldb.DB]
}

var _ database.Manager = (*Manager)(nil)

// NewManager returns a manager rooted at path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// NewMemManager returns a manager backed by goleveldb's memory storage.
func NewMemManager() *Manager {
	return &Manager{memory: true}
}

func (m *Manager) OpenDB(name string) (database.DB, error) {
	db, err := m.handles.Get(name, func() (*leveldb.DB, error) {
		if m.memory {
			return leveldb.Open(storage.NewMemStorage(), nil)
		}
		return leveldb.OpenFile(filepath.Join(m.path, name+".ldb"), nil)
	})
	if err != nil {
		return nil, err
	}
	return NewDB(db), nil
}

func (m *Manager) CloseDB(name string) error {
	return m.handles.Close(name)
}

func (m *Manager) Close() error {
	return m.handles.CloseAll()
}
