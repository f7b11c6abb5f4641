package keylet

import (
	"testing"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/entry"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyletBytesRoundTrip(t *testing.T) {
	id := types.AccountID{0xAB, 0xCD}
	for _, k := range []Keylet{Mint(id), TokenAccount(id), Market(id), Attribution(id)} {
		parsed, err := FromBytes(k.Bytes())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := FromBytes([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestKeyletSpacesDoNotCollide(t *testing.T) {
	id := types.AccountID{7}
	keys := map[[32]byte]entry.Type{}
	for _, k := range []Keylet{Mint(id), TokenAccount(id), Market(id), Attribution(id)} {
		_, dup := keys[k.Key]
		require.False(t, dup, "key collision for %s", k.Type)
		keys[k.Key] = k.Type
	}
}

func TestAssociatedTokenAccountID(t *testing.T) {
	owner := types.AccountID{1}
	mintA := types.AccountID{2}
	mintB := types.AccountID{3}

	assert.Equal(t, AssociatedTokenAccountID(owner, mintA), AssociatedTokenAccountID(owner, mintA))
	assert.NotEqual(t, AssociatedTokenAccountID(owner, mintA), AssociatedTokenAccountID(owner, mintB))
	assert.NotEqual(t, AssociatedTokenAccountID(owner, mintA), AssociatedTokenAccountID(mintA, owner))
}
