package testing

import (
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
)

// TxResult represents the result of submitting a transaction.
type TxResult struct {
	// Code is the engine result.
	Code tx.Result

	// Success indicates the transaction's effects were committed.
	Success bool

	// Message provides additional details about the result.
	Message string

	// Receipts lists the market-level effects of a committed transaction.
	Receipts []tx.Receipt

	// Err is nil on success, otherwise a *tx.ResultError.
	Err error
}

func newTxResult(r tx.ApplyResult) TxResult {
	return TxResult{
		Code:     r.Result,
		Success:  r.Result.IsSuccess() && r.Applied,
		Message:  r.Message,
		Receipts: r.Receipts,
		Err:      r.Err(),
	}
}

// Settlement returns the base units moved by the last receipt, or zero.
func (r TxResult) Settlement() uint64 {
	if len(r.Receipts) == 0 {
		return 0
	}
	return r.Receipts[len(r.Receipts)-1].Settlement
}
