package market

import (
	"context"
	"testing"

	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/storage/database/pebble"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const unit = 1_000_000 // one whole token at 6 decimals

var (
	testProgram = types.AccountID{0x50, 0x52, 0x47}
	baseMint    = types.AccountID{0xBA, 0x5E}
	baseIssuer  = types.AccountID{0xB0}
	alice       = types.AccountID{0x0A}
	bob         = types.AccountID{0x0B}
)

type testEnv struct {
	t      *testing.T
	svc    *ledger.Service
	engine *tx.Engine
	cfg    tx.EngineConfig
	mints  byte
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	m := pebble.NewMemManager()
	t.Cleanup(func() { m.Close() })
	db, err := m.OpenDB("ledger")
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	svc := ledger.NewService(db, log)
	_, err = svc.Transact(context.Background(), func(a ledger.Accounts) error {
		return a.CreateMint(baseMint, baseIssuer, tx.DefaultDecimals)
	})
	require.NoError(t, err)

	cfg := tx.DefaultEngineConfig(testProgram, baseMint)
	return &testEnv{
		t:      t,
		svc:    svc,
		engine: tx.NewEngine(svc, cfg, tx.WithLogger(log)),
		cfg:    cfg,
	}
}

// fund issues amount base units to owner's associated base account.
func (e *testEnv) fund(owner types.AccountID, amount uint64) {
	e.t.Helper()
	_, err := e.svc.Transact(context.Background(), func(a ledger.Accounts) error {
		acct, err := a.EnsureAssociatedTokenAccount(owner, baseMint)
		if err != nil {
			return err
		}
		return a.MintTo(baseMint, acct, amount, ledger.Wallet(baseIssuer))
	})
	require.NoError(e.t, err)
}

func (e *testEnv) apply(t tx.Transaction) tx.ApplyResult {
	return e.engine.Apply(context.Background(), t)
}

func (e *testEnv) mustApply(t tx.Transaction) tx.ApplyResult {
	e.t.Helper()
	res := e.apply(t)
	require.NoError(e.t, res.Err())
	return res
}

func (e *testEnv) nextMint() types.AccountID {
	e.mints++
	return types.AccountID{0x7A, e.mints}
}

// newMarket creates a linear market named name and returns its target mint.
func (e *testEnv) newMarket(name string) types.AccountID {
	e.t.Helper()
	mint := e.nextMint()
	e.mustApply(NewNewMarket(alice, name, curve.Linear, mint))
	return mint
}

// balance returns the balance of id, or zero if the account does not exist.
func (e *testEnv) balance(id types.AccountID) uint64 {
	e.t.Helper()
	var bal uint64
	err := e.svc.View(context.Background(), func(a ledger.Accounts) error {
		exists, err := a.AccountExists(id)
		if err != nil || !exists {
			return err
		}
		bal, err = a.Balance(id)
		return err
	})
	require.NoError(e.t, err)
	return bal
}

func (e *testEnv) baseBalance(owner types.AccountID) uint64 {
	return e.balance(ledger.AssociatedTokenAccount(owner, baseMint))
}

func (e *testEnv) targetBalance(owner, mint types.AccountID) uint64 {
	return e.balance(ledger.AssociatedTokenAccount(owner, mint))
}

func (e *testEnv) quote(mint types.AccountID, amount uint64) *Quote {
	e.t.Helper()
	var q *Quote
	err := e.svc.View(context.Background(), func(a ledger.Accounts) error {
		var err error
		q, err = QuoteMarket(a, e.cfg, mint, amount)
		return err
	})
	require.NoError(e.t, err)
	return q
}

func (e *testEnv) exists(id types.AccountID) bool {
	e.t.Helper()
	var ok bool
	err := e.svc.View(context.Background(), func(a ledger.Accounts) error {
		var err error
		ok, err = a.AccountExists(id)
		return err
	})
	require.NoError(e.t, err)
	return ok
}

func (e *testEnv) mintExists(id types.AccountID) bool {
	e.t.Helper()
	var ok bool
	err := e.svc.View(context.Background(), func(a ledger.Accounts) error {
		_, err := a.Mint(id)
		ok = err == nil
		return nil
	})
	require.NoError(e.t, err)
	return ok
}

func linear(t *testing.T) curve.Curve {
	t.Helper()
	c, err := curve.New(curve.Linear, curve.DefaultParams())
	require.NoError(t, err)
	return c
}
