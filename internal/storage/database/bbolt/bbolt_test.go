package bbolt

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/LeJamon/goBondedMarkets/internal/storage/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBBoltConformance(t *testing.T) {
	m := NewManager(t.TempDir())
	t.Cleanup(func() { m.Close() })

	db, err := m.OpenDB("ledger")
	require.NoError(t, err)
	dbtest.Run(t, db)
}

func TestBBoltLifecycle(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	m := NewManager(dir)

	db, err := m.OpenDB("lifecycle")
	require.NoError(t, err)
	require.NoError(t, db.Write(ctx, []byte("k"), []byte("v")))
	require.NoError(t, m.CloseDB("lifecycle"))

	_, err = os.Stat(filepath.Join(dir, "lifecycle.db"))
	require.NoError(t, err)

	db, err = m.OpenDB("lifecycle")
	require.NoError(t, err)
	got, err := db.Read(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
	require.NoError(t, m.Close())
}
