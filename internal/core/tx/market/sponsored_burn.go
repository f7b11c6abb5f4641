package market

import (
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/keylet"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"go.uber.org/zap"
)

func init() {
	tx.Register(tx.TypeSponsoredBurn, func() tx.Transaction {
		return &SponsoredBurn{BaseTx: *tx.NewBaseTx(tx.TypeSponsoredBurn, types.AccountID{})}
	})
}

// SponsoredBurn destroys the sponsor's target units without a refund. The
// curve supply does not move, so every remaining holder redeems against the
// same escrow with fewer tokens in circulation.
type SponsoredBurn struct {
	tx.BaseTx

	// TargetMint identifies the market.
	TargetMint types.AccountID `json:"TargetMint"`

	// Amount is the number of target units to burn.
	Amount uint64 `json:"Amount,string"`

	// Source is the token account to burn from. Defaults to the sponsor's
	// associated target account.
	Source types.AccountID `json:"Source,omitempty"`
}

// NewSponsoredBurn creates a SponsoredBurn transaction
func NewSponsoredBurn(sponsor, targetMint types.AccountID, amount uint64) *SponsoredBurn {
	return &SponsoredBurn{
		BaseTx:     *tx.NewBaseTx(tx.TypeSponsoredBurn, sponsor),
		TargetMint: targetMint,
		Amount:     amount,
	}
}

// TxType returns the transaction type
func (b *SponsoredBurn) TxType() tx.Type {
	return tx.TypeSponsoredBurn
}

// Validate validates the SponsoredBurn transaction
func (b *SponsoredBurn) Validate() error {
	return validateTrade(&b.BaseTx, b.TargetMint, b.Amount)
}

// Apply applies the SponsoredBurn transaction to ledger state.
func (b *SponsoredBurn) Apply(ctx *tx.ApplyContext) tx.Result {
	m, marketAddr, res := loadForApply(ctx, b.TargetMint)
	if !res.IsSuccess() {
		return res
	}
	c, err := curveOf(ctx.Config, m)
	if err != nil {
		return ctx.Fail(err)
	}

	before, err := takeSnapshot(ctx.Ledger, m)
	if err != nil {
		return ctx.Fail(err)
	}

	source := b.Source
	if source.IsZero() {
		source = ledger.AssociatedTokenAccount(ctx.Account, m.TargetMint)
	}
	if err := ctx.Ledger.Burn(m.TargetMint, source, b.Amount, ctx.Signer); err != nil {
		return ctx.Fail(err)
	}

	burned := m.AmountBurned + b.Amount
	if burned < m.AmountBurned {
		return ctx.FailWith(tx.TecOVERSIZE, fmt.Errorf("%w: amount burned", ledger.ErrOverflow))
	}
	m.AmountBurned = burned
	if err := ctx.Ledger.UpdateRecord(keylet.Market(marketAddr), m); err != nil {
		return ctx.Fail(err)
	}

	after, res := verify(ctx, c, m, before, expectation{})
	if !res.IsSuccess() {
		return res
	}

	ctx.Log.Debug("sponsored burn",
		zap.String("market", m.Name),
		zap.Uint64("amount", b.Amount),
		zap.Uint64("amount_burned", after.burned))

	ctx.Emit(tx.Receipt{
		Type:         tx.TypeSponsoredBurn,
		Account:      ctx.Account,
		Market:       marketAddr,
		Name:         m.Name,
		Amount:       b.Amount,
		CurveSupply:  after.curveSupply,
		AmountBurned: after.burned,
	})
	return tx.TesSUCCESS
}
