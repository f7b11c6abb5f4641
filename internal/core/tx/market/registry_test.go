package market

import (
	"context"
	"testing"

	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	env := newEnv(t)
	alpha := env.newMarket("alpha")
	beta := env.newMarket("beta")

	reg, err := NewRegistry(env.svc, testProgram, 0)
	require.NoError(t, err)

	m, err := reg.Lookup(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, alpha, m.TargetMint)

	m, err = reg.Lookup(context.Background(), "beta")
	require.NoError(t, err)
	assert.Equal(t, beta, m.TargetMint)

	hits, misses := reg.Stats()
	assert.Zero(t, hits)
	assert.Equal(t, uint64(2), misses)

	// cached names still see the latest market state
	env.fund(bob, unit)
	env.mustApply(NewBuy(bob, alpha, 10))
	env.mustApply(NewSponsoredBurn(bob, alpha, 4))
	m, err = reg.Lookup(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), m.AmountBurned)

	hits, _ = reg.Stats()
	assert.Equal(t, uint64(1), hits)
}

func TestRegistryLookupNotFound(t *testing.T) {
	env := newEnv(t)
	reg, err := NewRegistry(env.svc, testProgram, 4)
	require.NoError(t, err)

	_, err = reg.Lookup(context.Background(), "missing")
	require.ErrorIs(t, err, tx.ErrNotFound)
	require.ErrorIs(t, err, ErrMarketNotFound)
	assert.Equal(t, tx.TecNO_ENTRY, tx.ResultFor(err))

	// a failed lookup is not cached
	env.newMarket("missing")
	m, err := reg.Lookup(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, "missing", m.Name)
}

func TestRegistryList(t *testing.T) {
	env := newEnv(t)
	for _, name := range []string{"gamma", "alpha", "beta"} {
		env.newMarket(name)
	}

	reg, err := NewRegistry(env.svc, testProgram, 0)
	require.NoError(t, err)

	markets, err := reg.List(context.Background())
	require.NoError(t, err)
	require.Len(t, markets, 3)
	assert.Equal(t, "alpha", markets[0].Name)
	assert.Equal(t, "beta", markets[1].Name)
	assert.Equal(t, "gamma", markets[2].Name)
}

func TestRegistryCancelledContext(t *testing.T) {
	env := newEnv(t)
	env.newMarket("alpha")
	reg, err := NewRegistry(env.svc, testProgram, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = reg.Lookup(ctx, "alpha")
	require.ErrorIs(t, err, context.Canceled)
}
