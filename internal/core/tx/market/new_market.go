package market

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/keylet"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"go.uber.org/zap"
)

func init() {
	tx.Register(tx.TypeNewMarket, func() tx.Transaction {
		return &NewMarket{BaseTx: *tx.NewBaseTx(tx.TypeNewMarket, types.AccountID{})}
	})
}

// NewMarket creates a market: a fresh target mint controlled by the market
// authority, an empty base treasury, the market record, and the name record.
type NewMarket struct {
	tx.BaseTx

	// Name is the unique market name.
	Name string `json:"Name"`

	// Curve selects the pricing curve.
	Curve curve.Kind `json:"Curve"`

	// TargetMint is the identity of the mint to create. It must be unused.
	TargetMint types.AccountID `json:"TargetMint"`

	// Payer funds the creation. Defaults to Account.
	Payer types.AccountID `json:"Payer,omitempty"`
}

// NewNewMarket creates a NewMarket transaction
func NewNewMarket(creator types.AccountID, name string, kind curve.Kind, targetMint types.AccountID) *NewMarket {
	return &NewMarket{
		BaseTx:     *tx.NewBaseTx(tx.TypeNewMarket, creator),
		Name:       name,
		Curve:      kind,
		TargetMint: targetMint,
	}
}

// TxType returns the transaction type
func (n *NewMarket) TxType() tx.Type {
	return tx.TypeNewMarket
}

// Validate validates the NewMarket transaction
func (n *NewMarket) Validate() error {
	if err := n.BaseTx.Validate(); err != nil {
		return err
	}
	if n.Name == "" {
		return tx.Errorf(tx.TemBAD_NAME, "Name is required")
	}
	if n.TargetMint.IsZero() {
		return tx.Errorf(tx.TemMALFORMED, "TargetMint is required")
	}
	if !curve.Supported(n.Curve) {
		return tx.NewResultError(tx.TemBAD_CURVE, fmt.Errorf("%w: %s", curve.ErrUnsupported, n.Curve))
	}
	return nil
}

// ValidateConfig bounds the name length.
func (n *NewMarket) ValidateConfig(cfg tx.EngineConfig) error {
	limit := cfg.MaxNameLength
	if limit <= 0 || limit > keylet.MaxSeedLength {
		limit = keylet.MaxSeedLength
	}
	if len(n.Name) > limit {
		return tx.Errorf(tx.TemBAD_NAME, "Name is %d bytes, limit is %d", len(n.Name), limit)
	}
	return nil
}

// Apply applies the NewMarket transaction to ledger state.
func (n *NewMarket) Apply(ctx *tx.ApplyContext) tx.Result {
	program := ctx.Config.Program

	marketAddr, err := keylet.MarketAddress(program, n.TargetMint)
	if err != nil {
		return ctx.FailWith(tx.TefINTERNAL, err)
	}
	attributionAddr, err := keylet.AttributionAddress(program, n.Name)
	if err != nil {
		return ctx.FailWith(tx.TefINTERNAL, err)
	}
	treasuryAddr, err := keylet.TreasuryAddress(program, n.TargetMint)
	if err != nil {
		return ctx.FailWith(tx.TefINTERNAL, err)
	}
	authorityAddr, err := keylet.MarketAuthority(program, n.TargetMint)
	if err != nil {
		return ctx.FailWith(tx.TefINTERNAL, err)
	}

	marketKey := keylet.Market(marketAddr.Address)
	if exists, err := ctx.Ledger.RecordExists(marketKey); err != nil {
		return ctx.FailWith(tx.TefINTERNAL, err)
	} else if exists {
		return ctx.FailWith(tx.TecDUPLICATE, fmt.Errorf("%w: target mint %s", ErrMarketExists, n.TargetMint))
	}
	attributionKey := keylet.Attribution(attributionAddr.Address)
	if exists, err := ctx.Ledger.RecordExists(attributionKey); err != nil {
		return ctx.FailWith(tx.TefINTERNAL, err)
	} else if exists {
		return ctx.FailWith(tx.TecDUPLICATE, fmt.Errorf("%w: %q", ErrNameTaken, n.Name))
	}

	baseMint := ctx.Config.BaseMint
	if _, err := ctx.Ledger.Mint(baseMint); err != nil {
		return ctx.Fail(err)
	}

	if err := ctx.Ledger.CreateMint(n.TargetMint, authorityAddr.Address, ctx.Config.TargetDecimals); err != nil {
		if errors.Is(err, ledger.ErrAlreadyExists) {
			return ctx.FailWith(tx.TecDUPLICATE, err)
		}
		return ctx.Fail(err)
	}
	if err := ctx.Ledger.CreateTokenAccount(treasuryAddr.Address, authorityAddr.Address, baseMint); err != nil {
		return ctx.Fail(err)
	}

	payer := n.Payer
	if payer.IsZero() {
		payer = ctx.Account
	}
	m := &Market{
		Name:         n.Name,
		Creator:      ctx.Account,
		Payer:        payer,
		BaseMint:     baseMint,
		TargetMint:   n.TargetMint,
		BaseTreasury: pdaOf(treasuryAddr),
		Authority:    pdaOf(authorityAddr),
		Curve:        n.Curve,
		Bump:         marketAddr.Bump,
	}
	if err := ctx.Ledger.InsertRecord(marketKey, m); err != nil {
		return ctx.Fail(err)
	}
	attribution := &Attribution{
		Name:       n.Name,
		Market:     marketAddr.Address,
		TargetMint: n.TargetMint,
		Bump:       attributionAddr.Bump,
	}
	if err := ctx.Ledger.InsertRecord(attributionKey, attribution); err != nil {
		return ctx.Fail(err)
	}

	ctx.Log.Debug("market created",
		zap.String("name", n.Name),
		zap.Stringer("market", marketAddr.Address),
		zap.Stringer("target_mint", n.TargetMint),
		zap.Stringer("curve", n.Curve))

	ctx.Emit(tx.Receipt{
		Type:    tx.TypeNewMarket,
		Account: ctx.Account,
		Market:  marketAddr.Address,
		Name:    n.Name,
	})
	return tx.TesSUCCESS
}
