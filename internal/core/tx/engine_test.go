package tx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/storage/database/pebble"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const typeTestMint Type = 100

var (
	testAuthority = types.AccountID{0xA0}
	testMint      = types.AccountID{0xEE}
	testHolder    = types.AccountID{0x01}
)

// mintTx mints Amount of testMint to Account's associated account, then
// returns Fail if set.
type mintTx struct {
	BaseTx
	Amount uint64
	Fail   Result
	Cause  error
}

func newMintTx(amount uint64) *mintTx {
	return &mintTx{BaseTx: *NewBaseTx(typeTestMint, testHolder), Amount: amount}
}

func (m *mintTx) TxType() Type { return typeTestMint }

func (m *mintTx) Validate() error {
	if err := m.BaseTx.Validate(); err != nil {
		return err
	}
	if m.Amount == 0 {
		return Errorf(TemBAD_AMOUNT, "amount must be positive")
	}
	return nil
}

func (m *mintTx) Apply(ctx *ApplyContext) Result {
	acct, err := ctx.Ledger.EnsureAssociatedTokenAccount(ctx.Account, testMint)
	if err != nil {
		return ctx.Fail(err)
	}
	if err := ctx.Ledger.MintTo(testMint, acct, m.Amount, ledger.Wallet(testAuthority)); err != nil {
		return ctx.Fail(err)
	}
	if m.Fail != TesSUCCESS {
		return ctx.FailWith(m.Fail, m.Cause)
	}
	ctx.Emit(Receipt{Type: typeTestMint, Account: ctx.Account, Amount: m.Amount})
	return TesSUCCESS
}

type countingLedger struct {
	Ledger
	calls int
}

func (c *countingLedger) Transact(ctx context.Context, fn func(ledger.Accounts) error) ([]ledger.AffectedNode, error) {
	c.calls++
	return c.Ledger.Transact(ctx, fn)
}

func newTestLedger(t *testing.T) *countingLedger {
	t.Helper()
	m := pebble.NewMemManager()
	t.Cleanup(func() { m.Close() })
	db, err := m.OpenDB("ledger")
	require.NoError(t, err)

	svc := ledger.NewService(db, nil)
	_, err = svc.Transact(context.Background(), func(a ledger.Accounts) error {
		return a.CreateMint(testMint, testAuthority, 6)
	})
	require.NoError(t, err)
	return &countingLedger{Ledger: svc}
}

func holderBalance(t *testing.T, l Ledger) uint64 {
	t.Helper()
	var bal uint64
	err := l.View(context.Background(), func(a ledger.Accounts) error {
		exists, err := a.AccountExists(ledger.AssociatedTokenAccount(testHolder, testMint))
		if err != nil || !exists {
			return err
		}
		bal, err = a.Balance(ledger.AssociatedTokenAccount(testHolder, testMint))
		return err
	})
	require.NoError(t, err)
	return bal
}

func TestEngineApplyCommits(t *testing.T) {
	l := newTestLedger(t)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	var recorded []Receipt
	e := NewEngine(l, DefaultEngineConfig(types.AccountID{0x50}, testMint),
		WithClock(func() time.Time { return fixed }),
		WithRecorder(RecorderFunc(func(_ context.Context, r []Receipt) error {
			recorded = append(recorded, r...)
			return nil
		})))

	res := e.Apply(context.Background(), newMintTx(25))
	require.NoError(t, res.Err())
	assert.True(t, res.Applied)
	assert.Equal(t, TesSUCCESS, res.Result)
	require.NotNil(t, res.Metadata)
	assert.NotEmpty(t, res.Metadata.AffectedNodes)

	require.Len(t, res.Receipts, 1)
	assert.Equal(t, fixed, res.Receipts[0].Time)
	assert.NotEqual(t, [16]byte{}, [16]byte(res.Receipts[0].ID))
	assert.Equal(t, res.Receipts, recorded)

	assert.Equal(t, uint64(25), holderBalance(t, l))
}

func TestEngineFailureRollsBack(t *testing.T) {
	l := newTestLedger(t)
	e := NewEngine(l, DefaultEngineConfig(types.AccountID{0x50}, testMint))

	boom := errors.New("escrow short")
	tx := newMintTx(25)
	tx.Fail = TecUNFUNDED
	tx.Cause = boom

	res := e.Apply(context.Background(), tx)
	assert.False(t, res.Applied)
	assert.Equal(t, TecUNFUNDED, res.Result)
	assert.Nil(t, res.Metadata)
	assert.Empty(t, res.Receipts)

	err := res.Err()
	require.ErrorIs(t, err, ErrInsufficientEscrow)
	require.ErrorIs(t, err, boom)

	assert.Zero(t, holderBalance(t, l))
}

func TestEnginePreflightSkipsLedger(t *testing.T) {
	l := newTestLedger(t)
	e := NewEngine(l, DefaultEngineConfig(types.AccountID{0x50}, testMint))

	res := e.Apply(context.Background(), newMintTx(0))
	assert.Equal(t, TemBAD_AMOUNT, res.Result)
	require.ErrorIs(t, res.Err(), ErrValidation)
	assert.Zero(t, l.calls)

	noAccount := newMintTx(1)
	noAccount.Account = types.AccountID{}
	res = e.Apply(context.Background(), noAccount)
	assert.Equal(t, TemMALFORMED, res.Result)
	assert.Zero(t, l.calls)

	res = e.Apply(context.Background(), nil)
	assert.Equal(t, TemINVALID, res.Result)
}

func TestEngineNilTransactions(t *testing.T) {
	l := newTestLedger(t)
	core, logs := observer.New(zapcore.DebugLevel)
	e := NewEngine(l, DefaultEngineConfig(types.AccountID{0x50}, testMint),
		WithLogger(zap.New(core)))

	var res ApplyResult
	require.NotPanics(t, func() { res = e.Apply(context.Background(), nil) })
	assert.Equal(t, TemINVALID, res.Result)
	assert.False(t, res.Applied)
	assert.Error(t, res.Err())

	rejected := logs.FilterMessage("transaction rejected in preflight").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, "<nil>", rejected[0].ContextMap()["tx"])

	require.NotPanics(t, func() { res = e.ApplyBatch(context.Background(), nil, newMintTx(1)) })
	assert.Equal(t, TemMALFORMED, res.Result)
	assert.Zero(t, l.calls)
}

func TestEngineUnauthorizedPassesThrough(t *testing.T) {
	l := newTestLedger(t)
	e := NewEngine(l, DefaultEngineConfig(types.AccountID{0x50}, testMint))

	res := e.Apply(context.Background(), &forgedMintTx{mintTx: *newMintTx(5)})
	assert.Equal(t, TefBAD_AUTH, res.Result)
	require.ErrorIs(t, res.Err(), ErrUnauthorized)
	require.ErrorIs(t, res.Err(), ledger.ErrUnauthorized)
}

type forgedMintTx struct{ mintTx }

func (f *forgedMintTx) Apply(ctx *ApplyContext) Result {
	acct, err := ctx.Ledger.EnsureAssociatedTokenAccount(ctx.Account, testMint)
	if err != nil {
		return ctx.Fail(err)
	}
	return ctx.Fail(ctx.Ledger.MintTo(testMint, acct, f.Amount, ctx.Signer))
}

func TestEngineLogsInvariantViolation(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := newTestLedger(t)
	e := NewEngine(l, DefaultEngineConfig(types.AccountID{0x50}, testMint), WithLogger(zap.New(core)))

	tx := newMintTx(3)
	tx.Fail = TecINVARIANT_FAILED
	tx.Cause = errors.New("curve supply moved backwards")

	res := e.Apply(context.Background(), tx)
	require.ErrorIs(t, res.Err(), ErrInvariantViolation)

	errorsLogged := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errorsLogged, 1)
	assert.Contains(t, errorsLogged[0].Message, "invariant")
}

func TestEngineCancelledContext(t *testing.T) {
	l := newTestLedger(t)
	e := NewEngine(l, DefaultEngineConfig(types.AccountID{0x50}, testMint))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := e.Apply(ctx, newMintTx(1))
	assert.Equal(t, TefINTERNAL, res.Result)
	require.ErrorIs(t, res.Err(), context.Canceled)
}

func TestApplyBatchIsAtomic(t *testing.T) {
	l := newTestLedger(t)
	e := NewEngine(l, DefaultEngineConfig(types.AccountID{0x50}, testMint))

	res := e.ApplyBatch(context.Background(), newMintTx(10), newMintTx(5))
	require.NoError(t, res.Err())
	assert.Len(t, res.Receipts, 2)
	assert.Equal(t, uint64(15), holderBalance(t, l))

	failing := newMintTx(7)
	failing.Fail = TecNO_ENTRY
	res = e.ApplyBatch(context.Background(), newMintTx(100), failing)
	assert.Equal(t, TecNO_ENTRY, res.Result)
	assert.Equal(t, uint64(15), holderBalance(t, l))
}

func TestBatchValidation(t *testing.T) {
	cfg := DefaultEngineConfig(types.AccountID{0x50}, testMint)

	tests := []struct {
		name  string
		batch *Batch
		want  Result
	}{
		{"empty", NewBatch(testHolder), TemARRAY_EMPTY},
		{"nested", NewBatch(testHolder, NewBatch(testHolder, newMintTx(1))), TemMALFORMED},
		{"bad inner", NewBatch(testHolder, newMintTx(1), newMintTx(0)), TemBAD_AMOUNT},
		{"nil inner", NewBatch(testHolder, nil), TemMALFORMED},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.batch.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.want, ResultFor(err))
		})
	}

	txs := make([]Transaction, cfg.MaxBatchSize+1)
	for i := range txs {
		txs[i] = newMintTx(1)
	}
	big := NewBatch(testHolder, txs...)
	require.NoError(t, big.Validate())
	assert.Equal(t, TemARRAY_TOO_LARGE, ResultFor(big.ValidateConfig(cfg)))
}
