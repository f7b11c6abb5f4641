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
	tx.Register(tx.TypeBuy, func() tx.Transaction {
		return &Buy{BaseTx: *tx.NewBaseTx(tx.TypeBuy, types.AccountID{})}
	})
}

// Buy mints Amount target units to the buyer for the curve cost of moving
// the curve supply from s to s+Amount, paid in base into the treasury.
type Buy struct {
	tx.BaseTx

	// TargetMint identifies the market.
	TargetMint types.AccountID `json:"TargetMint"`

	// Amount is the number of target units to buy.
	Amount uint64 `json:"Amount,string"`
}

// NewBuy creates a Buy transaction
func NewBuy(buyer, targetMint types.AccountID, amount uint64) *Buy {
	return &Buy{
		BaseTx:     *tx.NewBaseTx(tx.TypeBuy, buyer),
		TargetMint: targetMint,
		Amount:     amount,
	}
}

// TxType returns the transaction type
func (b *Buy) TxType() tx.Type {
	return tx.TypeBuy
}

// Validate validates the Buy transaction
func (b *Buy) Validate() error {
	return validateTrade(&b.BaseTx, b.TargetMint, b.Amount)
}

func validateTrade(base *tx.BaseTx, targetMint types.AccountID, amount uint64) error {
	if err := base.Validate(); err != nil {
		return err
	}
	if targetMint.IsZero() {
		return tx.Errorf(tx.TemMALFORMED, "TargetMint is required")
	}
	if amount == 0 {
		return tx.Errorf(tx.TemBAD_AMOUNT, "Amount must be positive")
	}
	return nil
}

// Apply applies the Buy transaction to ledger state.
func (b *Buy) Apply(ctx *tx.ApplyContext) tx.Result {
	m, marketAddr, res := loadForApply(ctx, b.TargetMint)
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

	before, err := takeSnapshot(ctx.Ledger, m)
	if err != nil {
		return ctx.Fail(err)
	}
	to := before.curveSupply + b.Amount
	if to < before.curveSupply {
		return ctx.FailWith(tx.TecOVERSIZE, fmt.Errorf("%w: curve supply %d + %d", ledger.ErrOverflow, before.curveSupply, b.Amount))
	}
	cost, err := c.Cost(before.curveSupply, to)
	if err != nil {
		return ctx.Fail(err)
	}

	buyerBase := ledger.AssociatedTokenAccount(ctx.Account, m.BaseMint)
	if err := ctx.Ledger.Transfer(buyerBase, m.BaseTreasury.Address, cost, ctx.Signer); err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			// a buyer without a base account holds no base
			return ctx.FailWith(tx.TecUNFUNDED_PAYMENT, err)
		}
		return ctx.Fail(err)
	}

	buyerTarget, err := ctx.Ledger.EnsureAssociatedTokenAccount(ctx.Account, m.TargetMint)
	if err != nil {
		return ctx.Fail(err)
	}
	if err := ctx.Ledger.MintTo(m.TargetMint, buyerTarget, b.Amount, auth); err != nil {
		return ctx.Fail(err)
	}

	after, res := verify(ctx, c, m, before, expectation{supplyDelta: 1, amount: b.Amount, escrowIn: cost})
	if !res.IsSuccess() {
		return res
	}

	ctx.Log.Debug("buy",
		zap.String("market", m.Name),
		zap.Uint64("amount", b.Amount),
		zap.Uint64("cost", cost),
		zap.Uint64("curve_supply", after.curveSupply))

	ctx.Emit(tx.Receipt{
		Type:         tx.TypeBuy,
		Account:      ctx.Account,
		Market:       marketAddr,
		Name:         m.Name,
		Amount:       b.Amount,
		Settlement:   cost,
		CurveSupply:  after.curveSupply,
		AmountBurned: after.burned,
	})
	return tx.TesSUCCESS
}
