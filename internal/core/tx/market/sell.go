package market

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"go.uber.org/zap"
)

func init() {
	tx.Register(tx.TypeSell, func() tx.Transaction {
		return &Sell{BaseTx: *tx.NewBaseTx(tx.TypeSell, types.AccountID{})}
	})
}

// Sell burns Amount target units from the seller and refunds the curve area
// from s-Amount to s out of the treasury.
type Sell struct {
	tx.BaseTx

	// TargetMint identifies the market.
	TargetMint types.AccountID `json:"TargetMint"`

	// Amount is the number of target units to sell.
	Amount uint64 `json:"Amount,string"`
}

// NewSell creates a Sell transaction
func NewSell(seller, targetMint types.AccountID, amount uint64) *Sell {
	return &Sell{
		BaseTx:     *tx.NewBaseTx(tx.TypeSell, seller),
		TargetMint: targetMint,
		Amount:     amount,
	}
}

// TxType returns the transaction type
func (s *Sell) TxType() tx.Type {
	return tx.TypeSell
}

// Validate validates the Sell transaction
func (s *Sell) Validate() error {
	return validateTrade(&s.BaseTx, s.TargetMint, s.Amount)
}

// Apply applies the Sell transaction to ledger state.
func (s *Sell) Apply(ctx *tx.ApplyContext) tx.Result {
	m, marketAddr, res := loadForApply(ctx, s.TargetMint)
	if !res.IsSuccess() {
		return res
	}
	c, err := curveOf(ctx.Config, m)
	if err != nil {
		return ctx.Fail(err)
	}
	auth, err := authority(ctx.Config.Program, m)
	if err != nil {
		return ctx.FailWith(tx.TefINTERNAL, err)
	}

	sellerTarget := ledger.AssociatedTokenAccount(ctx.Account, m.TargetMint)
	held, err := ctx.Ledger.Balance(sellerTarget)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return ctx.FailWith(tx.TecINSUFFICIENT_FUNDS, err)
	} else if err != nil {
		return ctx.Fail(err)
	}
	if held < s.Amount {
		return ctx.FailWith(tx.TecINSUFFICIENT_FUNDS,
			fmt.Errorf("%w: holds %d, selling %d", ledger.ErrInsufficientBalance, held, s.Amount))
	}

	before, err := takeSnapshot(ctx.Ledger, m)
	if err != nil {
		return ctx.Fail(err)
	}
	from := before.curveSupply - s.Amount
	refund, err := c.Refund(from, before.curveSupply)
	if err != nil {
		return ctx.Fail(err)
	}

	if err := ctx.Ledger.Burn(m.TargetMint, sellerTarget, s.Amount, ctx.Signer); err != nil {
		return ctx.Fail(err)
	}

	if before.escrow < refund {
		// Unreachable while the solvency invariant holds.
		ctx.Log.Error("treasury cannot cover refund",
			zap.String("market", m.Name),
			zap.Uint64("escrow", before.escrow),
			zap.Uint64("refund", refund),
			zap.Uint64("curve_supply", before.curveSupply))
		return ctx.FailWith(tx.TecUNFUNDED,
			fmt.Errorf("%w: escrow %d, refund %d", ErrTreasuryBalance, before.escrow, refund))
	}

	sellerBase, err := ctx.Ledger.EnsureAssociatedTokenAccount(ctx.Account, m.BaseMint)
	if err != nil {
		return ctx.Fail(err)
	}
	if err := ctx.Ledger.Transfer(m.BaseTreasury.Address, sellerBase, refund, auth); err != nil {
		return ctx.Fail(err)
	}

	after, res := verify(ctx, c, m, before, expectation{supplyDelta: -1, amount: s.Amount, escrowOut: refund})
	if !res.IsSuccess() {
		return res
	}

	ctx.Log.Debug("sell",
		zap.String("market", m.Name),
		zap.Uint64("amount", s.Amount),
		zap.Uint64("refund", refund),
		zap.Uint64("curve_supply", after.curveSupply))

	ctx.Emit(tx.Receipt{
		Type:         tx.TypeSell,
		Account:      ctx.Account,
		Market:       marketAddr,
		Name:         m.Name,
		Amount:       s.Amount,
		Settlement:   refund,
		CurveSupply:  after.curveSupply,
		AmountBurned: after.burned,
	})
	return tx.TesSUCCESS
}
