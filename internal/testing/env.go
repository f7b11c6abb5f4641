package testing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	_ "github.com/LeJamon/goBondedMarkets/internal/core/tx/all"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx/market"
	"github.com/LeJamon/goBondedMarkets/internal/crypto"
	"github.com/LeJamon/goBondedMarkets/internal/storage"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// TestEnv manages an in-memory ledger, a shared base mint, and an engine.
type TestEnv struct {
	t      *testing.T
	ledger *ledger.Service
	engine *tx.Engine
	clock  *ManualClock
	issuer *Account

	mu       sync.Mutex
	receipts []tx.Receipt
	mints    int
}

// Option customizes the engine configuration of a TestEnv.
type Option func(*tx.EngineConfig)

// WithCurve sets the curve parameters.
func WithCurve(p curve.Params) Option {
	return func(c *tx.EngineConfig) { c.Curve = p }
}

// WithMaxBatchSize sets the batch limit.
func WithMaxBatchSize(n int) Option {
	return func(c *tx.EngineConfig) { c.MaxBatchSize = n }
}

// NewTestEnv creates an environment whose base mint is issued by the
// "issuer" account.
func NewTestEnv(t *testing.T, opts ...Option) *TestEnv {
	t.Helper()
	db, dbs, err := storage.Open(storage.Options{Backend: storage.BackendMemory})
	require.NoError(t, err, "failed to open ledger storage")
	t.Cleanup(func() { dbs.Close() })

	log := zaptest.NewLogger(t)
	env := &TestEnv{
		t:      t,
		ledger: ledger.NewService(db, log),
		clock:  NewManualClock(),
		issuer: NewAccount("issuer"),
	}

	base := NewAccount("base-mint").ID
	_, err = env.ledger.Transact(context.Background(), func(l ledger.Accounts) error {
		return l.CreateMint(base, env.issuer.ID, tx.DefaultDecimals)
	})
	require.NoError(t, err, "failed to create base mint")

	cfg := tx.DefaultEngineConfig(types.AccountID(crypto.CalcProgramID("bonded-markets-test")), base)
	for _, opt := range opts {
		opt(&cfg)
	}
	env.engine = tx.NewEngine(env.ledger, cfg,
		tx.WithLogger(log),
		tx.WithClock(env.clock.Now),
		tx.WithRecorder(tx.RecorderFunc(env.record)))
	return env
}

func (e *TestEnv) record(_ context.Context, receipts []tx.Receipt) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.receipts = append(e.receipts, receipts...)
	return nil
}

// Engine returns the transaction engine.
func (e *TestEnv) Engine() *tx.Engine {
	return e.engine
}

// Config returns the engine configuration.
func (e *TestEnv) Config() tx.EngineConfig {
	return e.engine.Config()
}

// BaseMint returns the shared base mint.
func (e *TestEnv) BaseMint() types.AccountID {
	return e.engine.Config().BaseMint
}

// Receipts returns every receipt recorded so far, in commit order.
func (e *TestEnv) Receipts() []tx.Receipt {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]tx.Receipt(nil), e.receipts...)
}

// Now returns the current test time.
func (e *TestEnv) Now() time.Time {
	return e.clock.Now()
}

// AdvanceTime moves the test clock forward by d.
func (e *TestEnv) AdvanceTime(d time.Duration) {
	e.clock.Advance(d)
}

// Fund issues amount base units to the associated base account of each
// account, creating it if needed.
func (e *TestEnv) Fund(amount uint64, accounts ...*Account) {
	e.t.Helper()
	_, err := e.ledger.Transact(context.Background(), func(l ledger.Accounts) error {
		for _, acc := range accounts {
			ata, err := l.EnsureAssociatedTokenAccount(acc.ID, e.BaseMint())
			if err != nil {
				return err
			}
			if err := l.MintTo(e.BaseMint(), ata, amount, e.issuer.Signer()); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(e.t, err, "failed to fund accounts")
}

// Submit applies t.
func (e *TestEnv) Submit(t tx.Transaction) TxResult {
	return newTxResult(e.engine.Apply(context.Background(), t))
}

// SubmitBatch applies txs atomically as one Batch.
func (e *TestEnv) SubmitBatch(txs ...tx.Transaction) TxResult {
	return newTxResult(e.engine.ApplyBatch(context.Background(), txs...))
}

// NextMint returns a fresh target mint identity.
func (e *TestEnv) NextMint() types.AccountID {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mints++
	return types.AccountID(crypto.CalcAccountID([]byte{byte(e.mints >> 8), byte(e.mints)}))
}

// CreateMarket creates a linear market and returns its target mint. It
// fails the test if creation does not succeed.
func (e *TestEnv) CreateMarket(creator *Account, name string) types.AccountID {
	e.t.Helper()
	mint := e.NextMint()
	res := e.Submit(market.NewNewMarket(creator.ID, name, curve.Linear, mint))
	require.NoError(e.t, res.Err, "failed to create market %q", name)
	return mint
}

// Buy submits a Buy of amount units by acc.
func (e *TestEnv) Buy(acc *Account, mint types.AccountID, amount uint64) TxResult {
	return e.Submit(market.NewBuy(acc.ID, mint, amount))
}

// Sell submits a Sell of amount units by acc.
func (e *TestEnv) Sell(acc *Account, mint types.AccountID, amount uint64) TxResult {
	return e.Submit(market.NewSell(acc.ID, mint, amount))
}

// Burn submits a SponsoredBurn of amount units from acc's own account.
func (e *TestEnv) Burn(acc *Account, mint types.AccountID, amount uint64) TxResult {
	return e.Submit(market.NewSponsoredBurn(acc.ID, mint, amount))
}

// view runs fn against committed state and fails the test on error.
func (e *TestEnv) view(fn func(l ledger.Accounts) error) {
	e.t.Helper()
	require.NoError(e.t, e.ledger.View(context.Background(), fn))
}

// balance returns the balance of token account id, or zero if it does not
// exist.
func (e *TestEnv) balance(id types.AccountID) uint64 {
	e.t.Helper()
	var bal uint64
	e.view(func(l ledger.Accounts) error {
		exists, err := l.AccountExists(id)
		if err != nil || !exists {
			return err
		}
		bal, err = l.Balance(id)
		return err
	})
	return bal
}

// BaseBalance returns acc's base balance in units.
func (e *TestEnv) BaseBalance(acc *Account) uint64 {
	return e.balance(ledger.AssociatedTokenAccount(acc.ID, e.BaseMint()))
}

// TokenBalance returns acc's balance of mint in units.
func (e *TestEnv) TokenBalance(acc *Account, mint types.AccountID) uint64 {
	return e.balance(ledger.AssociatedTokenAccount(acc.ID, mint))
}

// Market loads the market for mint.
func (e *TestEnv) Market(mint types.AccountID) *market.Market {
	e.t.Helper()
	var m *market.Market
	e.view(func(l ledger.Accounts) error {
		var err error
		m, _, err = market.LoadMarket(l, e.Config().Program, mint)
		return err
	})
	return m
}

// Quote prices the market for mint with a trade preview of amount units.
func (e *TestEnv) Quote(mint types.AccountID, amount uint64) *market.Quote {
	e.t.Helper()
	var q *market.Quote
	e.view(func(l ledger.Accounts) error {
		var err error
		q, err = market.QuoteMarket(l, e.Config(), mint, amount)
		return err
	})
	return q
}

// CurveSupply returns the curve position of the market for mint.
func (e *TestEnv) CurveSupply(mint types.AccountID) uint64 {
	return e.Quote(mint, 0).CurveSupply
}

// Escrow returns the base units held by the market treasury for mint.
func (e *TestEnv) Escrow(mint types.AccountID) uint64 {
	return e.Quote(mint, 0).Escrow
}

// MarketExists reports whether a market for mint exists.
func (e *TestEnv) MarketExists(mint types.AccountID) bool {
	e.t.Helper()
	var ok bool
	e.view(func(l ledger.Accounts) error {
		_, _, err := market.LoadMarket(l, e.Config().Program, mint)
		ok = err == nil
		return nil
	})
	return ok
}
