package tx

import (
	"encoding/json"

	"github.com/LeJamon/goBondedMarkets/internal/types"
)

func init() {
	Register(TypeBatch, func() Transaction {
		return &Batch{BaseTx: *NewBaseTx(TypeBatch, types.AccountID{})}
	})
}

// Batch applies a sequence of transactions as one unit: every inner
// transaction commits or none does. Inner transactions see the effects of
// the ones before them.
type Batch struct {
	BaseTx
	Transactions []Transaction `json:"-"`
}

// NewBatch creates a Batch submitted by account.
func NewBatch(account types.AccountID, txs ...Transaction) *Batch {
	return &Batch{
		BaseTx:       *NewBaseTx(TypeBatch, account),
		Transactions: txs,
	}
}

// TxType returns the transaction type
func (b *Batch) TxType() Type {
	return TypeBatch
}

// Validate validates the Batch and every inner transaction
func (b *Batch) Validate() error {
	if err := b.BaseTx.Validate(); err != nil {
		return err
	}
	if len(b.Transactions) == 0 {
		return Errorf(TemARRAY_EMPTY, "batch has no transactions")
	}
	for i, inner := range b.Transactions {
		if inner == nil {
			return Errorf(TemMALFORMED, "batch transaction %d is nil", i)
		}
		if inner.TxType() == TypeBatch {
			return Errorf(TemMALFORMED, "batch transaction %d is a nested batch", i)
		}
		if _, ok := inner.(Appliable); !ok {
			return Errorf(TemUNKNOWN, "batch transaction %d cannot be applied", i)
		}
		if err := inner.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateConfig enforces the batch size limit and inner limits
func (b *Batch) ValidateConfig(cfg EngineConfig) error {
	if cfg.MaxBatchSize > 0 && len(b.Transactions) > cfg.MaxBatchSize {
		return Errorf(TemARRAY_TOO_LARGE, "batch has %d transactions, limit %d", len(b.Transactions), cfg.MaxBatchSize)
	}
	for _, inner := range b.Transactions {
		if v, ok := inner.(ConfigValidator); ok {
			if err := v.ValidateConfig(cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

// Apply applies each inner transaction in order, stopping at the first failure
func (b *Batch) Apply(ctx *ApplyContext) Result {
	for _, inner := range b.Transactions {
		if res := inner.(Appliable).Apply(ctx.For(inner)); !res.IsSuccess() {
			return res
		}
	}
	return TesSUCCESS
}

type batchJSON struct {
	TransactionType string            `json:"TransactionType"`
	Account         types.AccountID   `json:"Account"`
	Transactions    []json.RawMessage `json:"Transactions"`
}

// MarshalJSON encodes inner transactions inline.
func (b *Batch) MarshalJSON() ([]byte, error) {
	out := batchJSON{
		TransactionType: TypeBatch.String(),
		Account:         b.Account,
		Transactions:    make([]json.RawMessage, 0, len(b.Transactions)),
	}
	for _, inner := range b.Transactions {
		raw, err := json.Marshal(inner)
		if err != nil {
			return nil, err
		}
		out.Transactions = append(out.Transactions, raw)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes inner transactions through the registry.
func (b *Batch) UnmarshalJSON(data []byte) error {
	var in batchJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	b.BaseTx = *NewBaseTx(TypeBatch, in.Account)
	b.Transactions = make([]Transaction, 0, len(in.Transactions))
	for _, raw := range in.Transactions {
		inner, err := FromJSON(raw)
		if err != nil {
			return err
		}
		b.Transactions = append(b.Transactions, inner)
	}
	return nil
}
