package bbolt

import (
	"path/filepath"
	"time"

	"github.com/LeJamon/goBondedMarkets/internal/storage/database"
	"go.etcd.io/bbolt"
)

// openTimeout bounds the wait for another process's file lock.
const openTimeout = time.Second

// Manager opens one bbolt file per store, named <name>.db, holding a
// bucket of the same name.
type Manager struct {
	path    string
	handles database.Handles[*bbolt.DB]
}

var _ database.Manager = (*Manager)(nil)

// NewManager returns a manager rooted at path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

func (m *Manager) OpenDB(name string) (database.DB, error) {
	db, err := m.handles.Get(name, func() (*bbolt.DB, error) {
		db, err := bbolt.Open(filepath.Join(m.path, name+".db"), 0o600, &bbolt.Options{Timeout: openTimeout})
		if err != nil {
			return nil, err
		}
		err = db.Update(func(tx *bbolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists([]byte(name))
			return err
		})
		if err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return NewDB(db, []byte(name)), nil
}

func (m *Manager) CloseDB(name string) error {
	return m.handles.Close(name)
}

func (m *Manager) Close() error {
	return m.handles.CloseAll()
}
