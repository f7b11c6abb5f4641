package tx

import (
	"context"
	"errors"
	"time"

	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default engine limits
const (
	DefaultMaxNameLength = 32
	DefaultMaxBatchSize  = 8
	DefaultDecimals      = 6
)

// EngineConfig holds configuration for the transaction engine
type EngineConfig struct {
	// Program is the identity every market address is derived under.
	Program types.AccountID

	// BaseMint is the mint every market settles in.
	BaseMint types.AccountID

	// Curve parameterizes the curve strategies.
	Curve curve.Params

	// BaseDecimals and TargetDecimals scale whole tokens to ledger units.
	BaseDecimals   uint8
	TargetDecimals uint8

	// MaxNameLength bounds market names in bytes.
	MaxNameLength int

	// MaxBatchSize bounds the number of inner transactions in a Batch.
	MaxBatchSize int
}

// DefaultEngineConfig returns the configuration for program and baseMint
// with default curve parameters and limits.
func DefaultEngineConfig(program, baseMint types.AccountID) EngineConfig {
	return EngineConfig{
		Program:        program,
		BaseMint:       baseMint,
		Curve:          curve.DefaultParams(),
		BaseDecimals:   DefaultDecimals,
		TargetDecimals: DefaultDecimals,
		MaxNameLength:  DefaultMaxNameLength,
		MaxBatchSize:   DefaultMaxBatchSize,
	}
}

// Ledger is the account service the engine runs transactions against.
type Ledger interface {
	Transact(ctx context.Context, fn func(ledger.Accounts) error) ([]ledger.AffectedNode, error)
	View(ctx context.Context, fn func(ledger.Accounts) error) error
}

// Metadata tracks changes made by a transaction
type Metadata struct {
	// AffectedNodes lists all entries that were created, modified, or deleted
	AffectedNodes []ledger.AffectedNode

	// TransactionResult is the result code
	TransactionResult Result
}

// ApplyResult contains the result of applying a transaction
type ApplyResult struct {
	// Result is the transaction result code
	Result Result

	// Applied indicates the transaction's effects were committed
	Applied bool

	// Metadata contains the changes made by the transaction
	Metadata *Metadata

	// Receipts describes the market-level effects, one per applied transaction
	Receipts []Receipt

	// Message is a human-readable result message
	Message string

	cause error
}

// Err returns nil on success, otherwise a *ResultError for the result.
func (r ApplyResult) Err() error {
	if r.Result.IsSuccess() {
		return nil
	}
	return &ResultError{Result: r.Result, Cause: r.cause}
}

// Engine processes transactions against a ledger
type Engine struct {
	ledger   Ledger
	config   EngineConfig
	log      *zap.Logger
	recorder Recorder
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithRecorder sets a recorder that receives receipts after each commit.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithClock overrides the receipt timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a new transaction engine
func NewEngine(l Ledger, config EngineConfig, opts ...Option) *Engine {
	e := &Engine{
		ledger: l,
		config: config,
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("engine")
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() EngineConfig {
	return e.config
}

// View runs fn against committed ledger state.
func (e *Engine) View(ctx context.Context, fn func(ledger.Accounts) error) error {
	return e.ledger.View(ctx, fn)
}

var errRollback = errors.New("transaction rolled back")

// txField names t's type for logging; t may be nil.
func txField(t Transaction) zap.Field {
	if t == nil {
		return zap.String("tx", "<nil>")
	}
	return zap.Stringer("tx", t.TxType())
}

// Apply validates t and applies it atomically: either every effect commits
// or none does.
func (e *Engine) Apply(ctx context.Context, t Transaction) ApplyResult {
	// Step 1: Preflight (stateless validation)
	if res, err := e.preflight(t); !res.IsSuccess() {
		e.log.Debug("transaction rejected in preflight",
			txField(t), zap.Stringer("result", res), zap.Error(err))
		return ApplyResult{Result: res, Message: res.Message(), cause: err}
	}

	// Step 2: Apply inside a ledger sandbox
	var (
		result = TesSUCCESS
		actx   *ApplyContext
	)
	nodes, err := e.ledger.Transact(ctx, func(acc ledger.Accounts) error {
		actx = newApplyContext(acc, t, e.config, e.log)
		result = t.(Appliable).Apply(actx)
		if !result.IsSuccess() {
			return errRollback
		}
		return nil
	})

	switch {
	case errors.Is(err, errRollback):
		cause := actx.state.cause
		if result == TecINVARIANT_FAILED {
			e.log.Error("invariant violation, transaction aborted",
				zap.Stringer("tx", t.TxType()), zap.Error(cause))
		} else {
			e.log.Debug("transaction failed",
				zap.Stringer("tx", t.TxType()), zap.Stringer("result", result), zap.Error(cause))
		}
		return ApplyResult{Result: result, Message: result.Message(), cause: cause}
	case err != nil:
		e.log.Error("ledger unit of work failed", zap.Stringer("tx", t.TxType()), zap.Error(err))
		return ApplyResult{Result: TefINTERNAL, Message: TefINTERNAL.Message(), cause: err}
	}

	// Step 3: Publish
	receipts := actx.state.receipts
	now := e.now().UTC()
	for i := range receipts {
		receipts[i].ID = uuid.New()
		receipts[i].Time = now
	}

	if e.recorder != nil && len(receipts) > 0 {
		if err := e.recorder.Record(ctx, receipts); err != nil {
			// The ledger already committed; history is best-effort.
			e.log.Warn("failed to record receipts", zap.Error(err))
		}
	}

	e.log.Debug("transaction applied",
		zap.Stringer("tx", t.TxType()),
		zap.Stringer("account", t.GetCommon().Account),
		zap.Int("affected", len(nodes)))

	return ApplyResult{
		Result:  TesSUCCESS,
		Applied: true,
		Metadata: &Metadata{
			AffectedNodes:     nodes,
			TransactionResult: TesSUCCESS,
		},
		Receipts: receipts,
		Message:  TesSUCCESS.Message(),
	}
}

// ApplyBatch applies txs as a single atomic Batch.
func (e *Engine) ApplyBatch(ctx context.Context, txs ...Transaction) ApplyResult {
	var account types.AccountID
	if len(txs) > 0 && txs[0] != nil {
		account = txs[0].GetCommon().Account
	}
	return e.Apply(ctx, NewBatch(account, txs...))
}

func (e *Engine) preflight(t Transaction) (Result, error) {
	if t == nil {
		return TemINVALID, errors.New("nil transaction")
	}
	if _, ok := t.(Appliable); !ok {
		return TemUNKNOWN, errors.New("transaction type cannot be applied")
	}
	err := t.Validate()
	if err == nil {
		if p, ok := t.(ConfigValidator); ok {
			err = p.ValidateConfig(e.config)
		}
	}
	if err != nil {
		var re *ResultError
		if errors.As(err, &re) {
			return re.Result, err
		}
		return TemMALFORMED, err
	}
	return TesSUCCESS, nil
}
