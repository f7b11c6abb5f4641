package market

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/keylet"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/types"
)

// Market errors
var (
	ErrMarketExists    = errors.New("market already exists")
	ErrNameTaken       = errors.New("market name already taken")
	ErrMarketNotFound  = errors.New("market not found")
	ErrAuthorityDrift  = errors.New("stored authority does not re-derive")
	ErrTreasuryBalance = errors.New("treasury cannot cover refund")
)

// PDA is a stored program-derived address with the bump that produced it.
type PDA struct {
	Address types.AccountID `codec:"address" json:"address"`
	Bump    uint8           `codec:"bump" json:"bump"`
}

func pdaOf(p keylet.ProgramAddress) PDA {
	return PDA{Address: p.Address, Bump: p.Bump}
}

// Market is the persisted state of one bonded market.
type Market struct {
	Name         string          `codec:"name" json:"name"`
	Creator      types.AccountID `codec:"creator" json:"creator"`
	Payer        types.AccountID `codec:"payer" json:"payer"`
	BaseMint     types.AccountID `codec:"base_mint" json:"base_mint"`
	TargetMint   types.AccountID `codec:"target_mint" json:"target_mint"`
	AmountBurned uint64          `codec:"amount_burned" json:"amount_burned"`
	BaseTreasury PDA             `codec:"base_treasury" json:"base_treasury"`
	Authority    PDA             `codec:"authority" json:"authority"`
	Curve        curve.Kind      `codec:"curve" json:"curve"`
	Bump         uint8           `codec:"bump" json:"bump"`
}

// Attribution binds a unique market name to its market.
type Attribution struct {
	Name       string          `codec:"name" json:"name"`
	Market     types.AccountID `codec:"market" json:"market"`
	TargetMint types.AccountID `codec:"target_mint" json:"target_mint"`
	Bump       uint8           `codec:"bump" json:"bump"`
}

// LoadMarket reads the market for targetMint under program.
func LoadMarket(l ledger.Accounts, program, targetMint types.AccountID) (*Market, types.AccountID, error) {
	addr, err := keylet.MarketAddress(program, targetMint)
	if err != nil {
		return nil, types.AccountID{}, err
	}
	var m Market
	if err := l.Record(keylet.Market(addr.Address), &m); err != nil {
		if errors.Is(err, ledger.ErrRecordNotFound) {
			return nil, addr.Address, fmt.Errorf("%w: target mint %s", ErrMarketNotFound, targetMint)
		}
		return nil, addr.Address, err
	}
	return &m, addr.Address, nil
}

// LoadAttribution reads the name record for name under program.
func LoadAttribution(l ledger.Accounts, program types.AccountID, name string) (*Attribution, error) {
	addr, err := keylet.AttributionAddress(program, name)
	if err != nil {
		return nil, err
	}
	var a Attribution
	if err := l.Record(keylet.Attribution(addr.Address), &a); err != nil {
		if errors.Is(err, ledger.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: name %q", ErrMarketNotFound, name)
		}
		return nil, err
	}
	return &a, nil
}

// CurveSupply is the position on the curve: tokens in circulation plus
// tokens removed by sponsored burns. It is the only place the curve position
// is computed.
func CurveSupply(l ledger.Accounts, m *Market) (uint64, error) {
	circulating, err := l.Supply(m.TargetMint)
	if err != nil {
		return 0, err
	}
	s := circulating + m.AmountBurned
	if s < circulating {
		return 0, fmt.Errorf("%w: curve supply", ledger.ErrOverflow)
	}
	return s, nil
}

// Escrow returns the base balance held by the market treasury.
func Escrow(l ledger.Accounts, m *Market) (uint64, error) {
	return l.Balance(m.BaseTreasury.Address)
}

// authority re-derives the market authority from its stored bump. The
// result signs mint and treasury operations.
func authority(program types.AccountID, m *Market) (keylet.ProgramAddress, error) {
	seeds := [][]byte{[]byte(keylet.SeedMarketAuthority), m.TargetMint[:]}
	addr, err := keylet.CreateProgramAddress(program, seeds, m.Authority.Bump)
	if err != nil {
		return keylet.ProgramAddress{}, err
	}
	if addr != m.Authority.Address {
		return keylet.ProgramAddress{}, fmt.Errorf("%w: %s", ErrAuthorityDrift, m.TargetMint)
	}
	return keylet.ProgramAddress{Program: program, Seeds: seeds, Bump: m.Authority.Bump, Address: addr}, nil
}

func curveOf(cfg tx.EngineConfig, m *Market) (curve.Curve, error) {
	return curve.New(m.Curve, cfg.Curve)
}

// loadForApply resolves the market or converts the failure to a result.
func loadForApply(ctx *tx.ApplyContext, targetMint types.AccountID) (*Market, types.AccountID, tx.Result) {
	m, addr, err := LoadMarket(ctx.Ledger, ctx.Config.Program, targetMint)
	switch {
	case errors.Is(err, ErrMarketNotFound):
		return nil, addr, ctx.FailWith(tx.TecNO_ENTRY, err)
	case err != nil:
		return nil, addr, ctx.FailWith(tx.TefINTERNAL, err)
	}
	return m, addr, tx.TesSUCCESS
}
