package tx

import (
	"context"
	"time"

	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/google/uuid"
)

// Receipt summarizes the market-level effect of one committed transaction.
type Receipt struct {
	ID           uuid.UUID
	Type         Type
	Account      types.AccountID
	Market       types.AccountID
	Name         string
	Amount       uint64 // target units bought, sold, or burned
	Settlement   uint64 // base units paid in or refunded
	CurveSupply  uint64 // after the transaction
	AmountBurned uint64 // after the transaction
	Time         time.Time
}

// Recorder receives receipts after their transaction commits.
type Recorder interface {
	Record(ctx context.Context, receipts []Receipt) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, receipts []Receipt) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, receipts []Receipt) error {
	return f(ctx, receipts)
}
