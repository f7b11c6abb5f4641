package ledger

import (
	"context"
	"testing"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/keylet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStateTableTracking(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	store := s.Store()

	k := keylet.Market(id(0x42))

	t.Run("insert then erase is no change", func(t *testing.T) {
		table := NewApplyStateTable(ctx, store)
		require.NoError(t, table.Insert(k, []byte("v1")))
		require.NoError(t, table.Erase(k))
		assert.Empty(t, table.Changes())
	})

	t.Run("insert commits", func(t *testing.T) {
		table := NewApplyStateTable(ctx, store)
		require.NoError(t, table.Insert(k, []byte("v1")))
		nodes, err := table.Apply()
		require.NoError(t, err)
		require.Len(t, nodes, 1)
		assert.Equal(t, ActionInsert, nodes[0].Action)

		data, err := store.Read(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), data)
	})

	t.Run("duplicate insert fails", func(t *testing.T) {
		table := NewApplyStateTable(ctx, store)
		require.ErrorIs(t, table.Insert(k, []byte("v2")), ErrAlreadyExists)
	})

	t.Run("unchanged update is dropped", func(t *testing.T) {
		table := NewApplyStateTable(ctx, store)
		require.NoError(t, table.Update(k, []byte("v1")))
		assert.Empty(t, table.Changes())
	})

	t.Run("erase then insert is modify", func(t *testing.T) {
		table := NewApplyStateTable(ctx, store)
		require.NoError(t, table.Erase(k))
		exists, err := table.Exists(k)
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, table.Insert(k, []byte("v3")))
		changes := table.Changes()
		require.Len(t, changes, 1)
		assert.Equal(t, ActionModify, changes[0].Action)
		assert.Equal(t, []byte("v1"), changes[0].Original)
	})

	t.Run("erase commits", func(t *testing.T) {
		table := NewApplyStateTable(ctx, store)
		require.NoError(t, table.Erase(k))
		_, err := table.Apply()
		require.NoError(t, err)

		exists, err := store.Exists(ctx, k)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("missing entries", func(t *testing.T) {
		table := NewApplyStateTable(ctx, store)
		data, err := table.Read(k)
		require.NoError(t, err)
		assert.Nil(t, data)
		require.Error(t, table.Update(k, []byte("x")))
		require.Error(t, table.Erase(k))
	})
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "created", ActionInsert.String())
	assert.Equal(t, "deleted", ActionErase.String())
	assert.Equal(t, "action(9)", Action(9).String())
}
