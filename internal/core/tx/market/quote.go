package market

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/shopspring/decimal"
)

// ErrBadAmount is returned when a decimal amount cannot be scaled to units.
var ErrBadAmount = errors.New("invalid amount")

const quotePrecision = 18

// Quote is a read-only view of a market's pricing state.
type Quote struct {
	Name        string          `json:"name"`
	Market      types.AccountID `json:"market"`
	TargetMint  types.AccountID `json:"target_mint"`
	Curve       curve.Kind      `json:"curve"`
	Circulating uint64          `json:"circulating"`
	Burned      uint64          `json:"amount_burned"`
	CurveSupply uint64          `json:"curve_supply"`
	Escrow      uint64          `json:"escrow"`

	// MarginalPrice is in base units per target unit at CurveSupply.
	MarginalPrice decimal.Decimal `json:"marginal_price"`

	// WholeTokenPrice is the exact base amount, in whole base tokens, the
	// last whole target token below CurveSupply was priced at.
	WholeTokenPrice decimal.Decimal `json:"whole_token_price"`

	// Amount, BuyCost, and SellRefund preview a trade of Amount units.
	// SellRefund is zero when Amount exceeds Circulating.
	Amount     uint64 `json:"amount"`
	BuyCost    uint64 `json:"buy_cost"`
	SellRefund uint64 `json:"sell_refund"`
}

// QuoteMarket prices the market for targetMint against l. A zero amount
// skips the trade preview.
func QuoteMarket(l ledger.Accounts, cfg tx.EngineConfig, targetMint types.AccountID, amount uint64) (*Quote, error) {
	m, addr, err := LoadMarket(l, cfg.Program, targetMint)
	if err != nil {
		return nil, err
	}
	c, err := curveOf(cfg, m)
	if err != nil {
		return nil, err
	}
	circulating, err := l.Supply(m.TargetMint)
	if err != nil {
		return nil, err
	}
	s, err := CurveSupply(l, m)
	if err != nil {
		return nil, err
	}
	escrow, err := Escrow(l, m)
	if err != nil {
		return nil, err
	}

	unit := pow10(cfg.TargetDecimals)
	var lo uint64
	if s > unit {
		lo = s - unit
	}
	whole := ratToDecimal(c.Area(lo, s)).Shift(-int32(cfg.BaseDecimals))

	q := &Quote{
		Name:            m.Name,
		Market:          addr,
		TargetMint:      m.TargetMint,
		Curve:           m.Curve,
		Circulating:     circulating,
		Burned:          m.AmountBurned,
		CurveSupply:     s,
		Escrow:          escrow,
		MarginalPrice:   c.MarginalPrice(s),
		WholeTokenPrice: whole,
		Amount:          amount,
	}
	if amount == 0 {
		return q, nil
	}
	if s+amount >= s {
		if q.BuyCost, err = c.Cost(s, s+amount); err != nil && !errors.Is(err, curve.ErrOverflow) {
			return nil, err
		}
	}
	if amount <= circulating {
		if q.SellRefund, err = c.Refund(s-amount, s); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// ParseUnits scales a decimal token amount such as "1.5" to integer units.
func ParseUnits(s string, decimals uint8) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadAmount, s)
	}
	scaled := d.Shift(int32(decimals))
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("%w: %q has more than %d decimals", ErrBadAmount, s, decimals)
	}
	if scaled.Sign() < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrBadAmount, s)
	}
	v := scaled.BigInt()
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: %q out of range", ErrBadAmount, s)
	}
	return v.Uint64(), nil
}

// FormatUnits renders integer units as a decimal token amount.
func FormatUnits(v uint64, decimals uint8) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), -int32(decimals)).String()
}

func ratToDecimal(r *big.Rat) decimal.Decimal {
	num := decimal.NewFromBigInt(r.Num(), 0)
	den := decimal.NewFromBigInt(r.Denom(), 0)
	return num.DivRound(den, quotePrecision)
}

func pow10(n uint8) uint64 {
	v := uint64(1)
	for i := uint8(0); i < n; i++ {
		v *= 10
	}
	return v
}
