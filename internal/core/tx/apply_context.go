package tx

import (
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"go.uber.org/zap"
)

// ApplyContext provides all the state and helpers needed to apply a transaction.
// It is passed to Appliable.Apply() instead of individual parameters.
type ApplyContext struct {
	// Ledger is the sandboxed account service for this unit of work.
	Ledger ledger.Accounts

	// Account is the submitting account.
	Account types.AccountID

	// Signer authorizes Account's ledger operations.
	Signer ledger.Signer

	// Config holds engine configuration.
	Config EngineConfig

	// Log is scoped to the transaction being applied.
	Log *zap.Logger

	state *applyState
}

type applyState struct {
	receipts []Receipt
	cause    error
}

func newApplyContext(l ledger.Accounts, t Transaction, cfg EngineConfig, log *zap.Logger) *ApplyContext {
	common := t.GetCommon()
	return &ApplyContext{
		Ledger:  l,
		Account: common.Account,
		Signer:  common.EffectiveSigner(),
		Config:  cfg,
		Log:     log.With(zap.Stringer("tx", t.TxType()), zap.Stringer("account", common.Account)),
		state:   &applyState{},
	}
}

// For returns a context for an inner transaction sharing this context's
// ledger sandbox, receipts, and failure cause.
func (c *ApplyContext) For(t Transaction) *ApplyContext {
	common := t.GetCommon()
	return &ApplyContext{
		Ledger:  c.Ledger,
		Account: common.Account,
		Signer:  common.EffectiveSigner(),
		Config:  c.Config,
		Log:     c.Log.With(zap.Stringer("inner", t.TxType())),
		state:   c.state,
	}
}

// Fail records err as the failure cause and returns its result code.
func (c *ApplyContext) Fail(err error) Result {
	c.state.cause = err
	return ResultFor(err)
}

// FailWith records err as the failure cause and returns code.
func (c *ApplyContext) FailWith(code Result, err error) Result {
	c.state.cause = NewResultError(code, err)
	return code
}

// Emit queues a receipt. Receipts are published only if the unit of work
// commits.
func (c *ApplyContext) Emit(r Receipt) {
	c.state.receipts = append(c.state.receipts, r)
}
