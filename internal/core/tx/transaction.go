package tx

import (
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/types"
)

// Transaction is the interface that all transaction types must implement
type Transaction interface {
	// TxType returns the transaction type
	TxType() Type

	// GetCommon returns the common transaction fields
	GetCommon() *BaseTx

	// Validate performs stateless checks. It runs before any ledger access.
	Validate() error
}

// Appliable is implemented by transaction types that can apply themselves to ledger state.
type Appliable interface {
	Apply(ctx *ApplyContext) Result
}

// ConfigValidator is implemented by transactions whose stateless checks
// depend on engine limits. It runs after Validate, still before any ledger
// access.
type ConfigValidator interface {
	ValidateConfig(cfg EngineConfig) error
}

// BaseTx contains fields common to all transaction types
type BaseTx struct {
	TransactionType string          `json:"TransactionType"`
	Account         types.AccountID `json:"Account"`

	// Signer authorizes the account's ledger operations. When nil the
	// account is treated as its own key-holding signer.
	Signer ledger.Signer `json:"-"`
}

// NewBaseTx creates common fields for a transaction of type t
func NewBaseTx(t Type, account types.AccountID) *BaseTx {
	return &BaseTx{
		TransactionType: t.String(),
		Account:         account,
	}
}

// GetCommon returns the common fields
func (b *BaseTx) GetCommon() *BaseTx {
	return b
}

// Validate validates the common fields
func (b *BaseTx) Validate() error {
	if b.Account.IsZero() {
		return Errorf(TemMALFORMED, "Account is required")
	}
	return nil
}

// SignedBy sets the signer and returns b for chaining.
func (b *BaseTx) SignedBy(s ledger.Signer) *BaseTx {
	b.Signer = s
	return b
}

// EffectiveSigner returns Signer, defaulting to the account's own wallet.
func (b *BaseTx) EffectiveSigner() ledger.Signer {
	if b.Signer != nil {
		return b.Signer
	}
	return ledger.Wallet(b.Account)
}
