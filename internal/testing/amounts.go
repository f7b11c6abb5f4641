package testing

import (
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx/market"
)

// Tokens converts a decimal whole-token amount such as "24.24" to ledger
// units at the default precision. It panics on malformed input.
func Tokens(s string) uint64 {
	v, err := market.ParseUnits(s, tx.DefaultDecimals)
	if err != nil {
		panic("testing.Tokens: " + err.Error())
	}
	return v
}

// Units renders ledger units as a decimal whole-token amount.
func Units(v uint64) string {
	return market.FormatUnits(v, tx.DefaultDecimals)
}
