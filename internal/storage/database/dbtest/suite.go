// Package dbtest holds a conformance suite every database.DB backend runs.
package dbtest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/LeJamon/goBondedMarkets/internal/storage/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises db against the database.DB contract. db must start empty.
func Run(t *testing.T, db database.DB) {
	t.Helper()
	ctx := context.Background()

	t.Run("ReadWrite", func(t *testing.T) {
		require.NoError(t, db.Write(ctx, []byte("rw-key"), []byte("rw-value")))

		got, err := db.Read(ctx, []byte("rw-key"))
		require.NoError(t, err)
		assert.Equal(t, []byte("rw-value"), got)

		require.NoError(t, db.Delete(ctx, []byte("rw-key")))
		_, err = db.Read(ctx, []byte("rw-key"))
		require.ErrorIs(t, err, database.ErrKeyNotFound)
	})

	t.Run("MissingKey", func(t *testing.T) {
		_, err := db.Read(ctx, []byte("never-written"))
		require.ErrorIs(t, err, database.ErrKeyNotFound)
	})

	t.Run("Batch", func(t *testing.T) {
		ops := []database.BatchOperation{
			database.Put([]byte("batch1"), []byte("value1")),
			database.Put([]byte("batch2"), []byte("value2")),
			database.Del([]byte("batch1")),
		}
		require.NoError(t, db.Batch(ctx, ops))

		_, err := db.Read(ctx, []byte("batch1"))
		require.ErrorIs(t, err, database.ErrKeyNotFound)

		got, err := db.Read(ctx, []byte("batch2"))
		require.NoError(t, err)
		assert.Equal(t, []byte("value2"), got)
	})

	t.Run("BatchRejectsUnknownOp", func(t *testing.T) {
		ops := []database.BatchOperation{
			database.Put([]byte("bad-batch"), []byte("v")),
			{Type: database.BatchOpType(99), Key: []byte("x")},
		}
		require.Error(t, db.Batch(ctx, ops))

		_, err := db.Read(ctx, []byte("bad-batch"))
		require.ErrorIs(t, err, database.ErrKeyNotFound)
	})

	t.Run("Iterator", func(t *testing.T) {
		data := map[string]string{
			"iter1": "value1",
			"iter2": "value2",
			"iter3": "value3",
		}
		for k, v := range data {
			require.NoError(t, db.Write(ctx, []byte(k), []byte(v)))
		}

		it, err := db.Iterator(ctx, []byte("iter1"), []byte("iter3"))
		require.NoError(t, err)
		defer it.Close()

		var keys []string
		for it.Next() {
			keys = append(keys, string(it.Key()))
			assert.Equal(t, data[string(it.Key())], string(it.Value()))
		}
		require.NoError(t, it.Error())
		assert.Equal(t, []string{"iter1", "iter2"}, keys)
	})

	t.Run("IteratorPrefix", func(t *testing.T) {
		prefix := []byte("pfx/")
		for i := 0; i < 5; i++ {
			require.NoError(t, db.Write(ctx, append(append([]byte{}, prefix...), byte('a'+i)), []byte{byte(i)}))
		}
		require.NoError(t, db.Write(ctx, []byte("pfy"), []byte("outside")))

		it, err := db.Iterator(ctx, prefix, database.PrefixEnd(prefix))
		require.NoError(t, err)
		defer it.Close()

		n := 0
		for it.Next() {
			assert.Equal(t, []byte{byte(n)}, it.Value())
			n++
		}
		require.NoError(t, it.Error())
		assert.Equal(t, 5, n)
	})

	t.Run("Concurrent", func(t *testing.T) {
		const workers = 8
		const ops = 50

		var wg sync.WaitGroup
		errCh := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for j := 0; j < ops; j++ {
					key := []byte(fmt.Sprintf("concurrent-%d-%d", id, j))
					if err := db.Write(ctx, key, key); err != nil {
						errCh <- err
						return
					}
					if _, err := db.Read(ctx, key); err != nil {
						errCh <- err
						return
					}
				}
			}(i)
		}
		wg.Wait()
		close(errCh)
		for err := range errCh {
			t.Errorf("worker error: %v", err)
		}
	})
}
