package market

import (
	"context"
	"fmt"
	"testing"

	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/keylet"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/mock"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLedger runs every unit of work against one Accounts value.
type mockLedger struct {
	accounts ledger.Accounts
}

func (m mockLedger) Transact(_ context.Context, fn func(ledger.Accounts) error) ([]ledger.AffectedNode, error) {
	return nil, fn(m.accounts)
}

func (m mockLedger) View(_ context.Context, fn func(ledger.Accounts) error) error {
	return fn(m.accounts)
}

// expectMarket makes the mock serve a linear market for mint.
func expectMarket(t *testing.T, acc *mock.MockAccounts, mint types.AccountID) *Market {
	t.Helper()
	marketAddr, err := keylet.MarketAddress(testProgram, mint)
	require.NoError(t, err)
	authAddr, err := keylet.MarketAuthority(testProgram, mint)
	require.NoError(t, err)
	treasuryAddr, err := keylet.TreasuryAddress(testProgram, mint)
	require.NoError(t, err)

	m := &Market{
		Name:         "mocked",
		BaseMint:     baseMint,
		TargetMint:   mint,
		BaseTreasury: pdaOf(treasuryAddr),
		Authority:    pdaOf(authAddr),
		Curve:        curve.Linear,
	}
	acc.EXPECT().Record(keylet.Market(marketAddr.Address), gomock.Any()).
		DoAndReturn(func(_ keylet.Keylet, v any) error {
			*v.(*Market) = *m
			return nil
		}).AnyTimes()
	return m
}

func TestBuyPropagatesUnauthorizedMint(t *testing.T) {
	ctrl := gomock.NewController(t)
	acc := mock.NewMockAccounts(ctrl)
	mint := types.AccountID{0x7A, 0x01}
	m := expectMarket(t, acc, mint)

	buyerTarget := ledger.AssociatedTokenAccount(alice, mint)
	acc.EXPECT().Supply(mint).Return(uint64(0), nil).AnyTimes()
	acc.EXPECT().Balance(m.BaseTreasury.Address).Return(uint64(0), nil).AnyTimes()
	acc.EXPECT().Transfer(ledger.AssociatedTokenAccount(alice, baseMint), m.BaseTreasury.Address, uint64(1), gomock.Any()).Return(nil)
	acc.EXPECT().EnsureAssociatedTokenAccount(alice, mint).Return(buyerTarget, nil)
	acc.EXPECT().MintTo(mint, buyerTarget, uint64(10), gomock.Any()).
		DoAndReturn(func(_, _ types.AccountID, _ uint64, signer ledger.Signer) error {
			// the market authority signs, never the buyer
			assert.True(t, signer.Authorizes(m.Authority.Address))
			assert.False(t, signer.Authorizes(alice))
			return fmt.Errorf("%w: mint authority of %s", ledger.ErrUnauthorized, mint)
		})

	engine := tx.NewEngine(mockLedger{acc}, tx.DefaultEngineConfig(testProgram, baseMint))
	res := engine.Apply(context.Background(), NewBuy(alice, mint, 10))

	assert.Equal(t, tx.TefBAD_AUTH, res.Result)
	assert.False(t, res.Applied)
	require.ErrorIs(t, res.Err(), tx.ErrUnauthorized)
	require.ErrorIs(t, res.Err(), ledger.ErrUnauthorized)
}

func TestBuyDetectsLedgerDrift(t *testing.T) {
	ctrl := gomock.NewController(t)
	acc := mock.NewMockAccounts(ctrl)
	mint := types.AccountID{0x7A, 0x02}
	m := expectMarket(t, acc, mint)

	buyerTarget := ledger.AssociatedTokenAccount(alice, mint)
	// the ledger reports success but nothing moves
	acc.EXPECT().Supply(mint).Return(uint64(0), nil).AnyTimes()
	acc.EXPECT().Balance(m.BaseTreasury.Address).Return(uint64(0), nil).AnyTimes()
	acc.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	acc.EXPECT().EnsureAssociatedTokenAccount(alice, mint).Return(buyerTarget, nil)
	acc.EXPECT().MintTo(mint, buyerTarget, uint64(unit), gomock.Any()).Return(nil)

	engine := tx.NewEngine(mockLedger{acc}, tx.DefaultEngineConfig(testProgram, baseMint))
	res := engine.Apply(context.Background(), NewBuy(alice, mint, unit))

	assert.Equal(t, tx.TecINVARIANT_FAILED, res.Result)
	require.ErrorIs(t, res.Err(), tx.ErrInvariantViolation)
	assert.Empty(t, res.Receipts)
}

func TestSellRejectsShortTreasury(t *testing.T) {
	ctrl := gomock.NewController(t)
	acc := mock.NewMockAccounts(ctrl)
	mint := types.AccountID{0x7A, 0x03}
	m := expectMarket(t, acc, mint)

	sellerTarget := ledger.AssociatedTokenAccount(alice, mint)
	acc.EXPECT().Balance(sellerTarget).Return(uint64(unit), nil)
	acc.EXPECT().Supply(mint).Return(uint64(unit), nil).AnyTimes()
	// escrow drained below what one token refunds
	acc.EXPECT().Balance(m.BaseTreasury.Address).Return(uint64(1), nil).AnyTimes()
	acc.EXPECT().Burn(mint, sellerTarget, uint64(unit), gomock.Any()).Return(nil)

	engine := tx.NewEngine(mockLedger{acc}, tx.DefaultEngineConfig(testProgram, baseMint))
	res := engine.Apply(context.Background(), NewSell(alice, mint, unit))

	assert.Equal(t, tx.TecUNFUNDED, res.Result)
	require.ErrorIs(t, res.Err(), tx.ErrInsufficientEscrow)
	require.ErrorIs(t, res.Err(), ErrTreasuryBalance)
}

func TestTradeRejectsDriftedAuthority(t *testing.T) {
	ctrl := gomock.NewController(t)
	acc := mock.NewMockAccounts(ctrl)
	mint := types.AccountID{0x7A, 0x04}
	marketAddr, err := keylet.MarketAddress(testProgram, mint)
	require.NoError(t, err)

	acc.EXPECT().Record(keylet.Market(marketAddr.Address), gomock.Any()).
		DoAndReturn(func(_ keylet.Keylet, v any) error {
			*v.(*Market) = Market{
				Name:       "drifted",
				BaseMint:   baseMint,
				TargetMint: mint,
				Authority:  PDA{Address: types.AccountID{0xFF}, Bump: 255},
				Curve:      curve.Linear,
			}
			return nil
		})

	engine := tx.NewEngine(mockLedger{acc}, tx.DefaultEngineConfig(testProgram, baseMint))
	res := engine.Apply(context.Background(), NewBuy(alice, mint, 1))
	assert.Equal(t, tx.TefINTERNAL, res.Result)
	require.ErrorIs(t, res.Err(), tx.ErrInternal)
}
