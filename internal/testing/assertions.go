package testing

import (
	"testing"

	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/stretchr/testify/require"
)

// RequireTxSuccess asserts that a transaction committed.
func RequireTxSuccess(t *testing.T, result TxResult) {
	t.Helper()
	require.True(t, result.Success,
		"Expected transaction success, got %s: %v", result.Code, result.Err)
}

// RequireTxFail asserts that a transaction failed with a specific result
// and left no receipts.
func RequireTxFail(t *testing.T, result TxResult, expected tx.Result) {
	t.Helper()
	require.False(t, result.Success,
		"Expected transaction failure with %s, but transaction succeeded", expected)
	require.Equal(t, expected, result.Code,
		"Expected failure %s, got %s: %v", expected, result.Code, result.Err)
	require.Empty(t, result.Receipts)
}

// RequireBaseBalance asserts acc's base balance in units.
func RequireBaseBalance(t *testing.T, env *TestEnv, acc *Account, expected uint64) {
	t.Helper()
	actual := env.BaseBalance(acc)
	require.Equal(t, expected, actual,
		"Account %s base balance mismatch: expected %s, got %s",
		acc.Name, Units(expected), Units(actual))
}

// RequireTokenBalance asserts acc's balance of mint in units.
func RequireTokenBalance(t *testing.T, env *TestEnv, acc *Account, mint types.AccountID, expected uint64) {
	t.Helper()
	actual := env.TokenBalance(acc, mint)
	require.Equal(t, expected, actual,
		"Account %s balance of %s mismatch: expected %s, got %s",
		acc.Name, mint, Units(expected), Units(actual))
}

// RequireCurveSupply asserts the curve position of the market for mint.
func RequireCurveSupply(t *testing.T, env *TestEnv, mint types.AccountID, expected uint64) {
	t.Helper()
	actual := env.CurveSupply(mint)
	require.Equal(t, expected, actual,
		"Market %s curve supply mismatch: expected %s, got %s",
		mint, Units(expected), Units(actual))
}

// RequireAmountBurned asserts the sponsored-burn total of the market for mint.
func RequireAmountBurned(t *testing.T, env *TestEnv, mint types.AccountID, expected uint64) {
	t.Helper()
	require.Equal(t, expected, env.Market(mint).AmountBurned,
		"Market %s amount burned mismatch", mint)
}

// RequireSolvent asserts that the market treasury can refund every
// circulating token along the curve.
func RequireSolvent(t *testing.T, env *TestEnv, mint types.AccountID) {
	t.Helper()
	q := env.Quote(mint, 0)
	c, err := curve.New(q.Curve, env.Config().Curve)
	require.NoError(t, err)
	owed, err := c.Refund(q.Burned, q.CurveSupply)
	require.NoError(t, err)
	require.GreaterOrEqual(t, q.Escrow, owed,
		"Market %s escrow %s cannot refund circulating supply worth %s",
		mint, Units(q.Escrow), Units(owed))
}

// RequireMarketExists asserts that a market for mint exists.
func RequireMarketExists(t *testing.T, env *TestEnv, mint types.AccountID) {
	t.Helper()
	require.True(t, env.MarketExists(mint), "Market %s should exist", mint)
}

// RequireMarketNotExists asserts that no market for mint exists.
func RequireMarketNotExists(t *testing.T, env *TestEnv, mint types.AccountID) {
	t.Helper()
	require.False(t, env.MarketExists(mint), "Market %s should not exist", mint)
}
