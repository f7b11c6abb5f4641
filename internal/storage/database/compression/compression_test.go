package compression

import (
	"bytes"
	"context"
	"testing"

	"github.com/LeJamon/goBondedMarkets/internal/storage/database"
	"github.com/LeJamon/goBondedMarkets/internal/storage/database/dbtest"
	"github.com/LeJamon/goBondedMarkets/internal/storage/database/pebble"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memDB(t *testing.T) database.DB {
	t.Helper()
	m := pebble.NewMemManager()
	t.Cleanup(func() { m.Close() })
	db, err := m.OpenDB("compressed")
	require.NoError(t, err)
	return db
}

func TestAvailable(t *testing.T) {
	assert.Equal(t, []string{"lz4", "none"}, Available())
	_, err := Get("zstd")
	require.Error(t, err)
}

func TestLZ4Conformance(t *testing.T) {
	db, err := Wrap(memDB(t), "lz4")
	require.NoError(t, err)
	dbtest.Run(t, db)
}

func TestNoneConformance(t *testing.T) {
	db, err := Wrap(memDB(t), "none")
	require.NoError(t, err)
	dbtest.Run(t, db)
}

func TestLZ4ShrinksRepetitiveValues(t *testing.T) {
	ctx := context.Background()
	inner := memDB(t)
	db, err := Wrap(inner, "lz4")
	require.NoError(t, err)

	value := bytes.Repeat([]byte("market-record "), 200)
	require.NoError(t, db.Write(ctx, []byte("k"), value))

	stored, err := inner.Read(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, flagCompressed, stored[0])
	assert.Less(t, len(stored), len(value))

	got, err := db.Read(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestSmallValuesStoredRaw(t *testing.T) {
	ctx := context.Background()
	inner := memDB(t)
	db, err := Wrap(inner, "lz4")
	require.NoError(t, err)

	require.NoError(t, db.Write(ctx, []byte("k"), []byte{0x01, 0x02}))
	stored, err := inner.Read(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte{flagRaw, 0x01, 0x02}, stored)
}

func TestCorruptEnvelope(t *testing.T) {
	ctx := context.Background()
	inner := memDB(t)
	db, err := Wrap(inner, "lz4")
	require.NoError(t, err)

	require.NoError(t, inner.Write(ctx, []byte("bad"), []byte{0x07, 0x00}))
	_, err = db.Read(ctx, []byte("bad"))
	require.ErrorIs(t, err, ErrCorruptValue)
}
