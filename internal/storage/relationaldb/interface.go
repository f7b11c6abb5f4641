package relationaldb

import (
	"context"
	"time"

	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/shopspring/decimal"
)

// Trade kinds as recorded in history.
const (
	KindCreate = "NewMarket"
	KindBuy    = "Buy"
	KindSell   = "Sell"
	KindBurn   = "SponsoredBurn"
)

// Trade is one committed market event.
type Trade struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	Account      types.AccountID `json:"account"`
	Market       types.AccountID `json:"market"`
	Name         string          `json:"name"`
	Amount       uint64          `json:"amount"`
	Settlement   uint64          `json:"settlement"`
	CurveSupply  uint64          `json:"curve_supply"`
	AmountBurned uint64          `json:"amount_burned"`
	Time         time.Time       `json:"time"`
}

// TradeQuery selects trades. Zero-valued filters match everything.
type TradeQuery struct {
	Market  types.AccountID
	Account types.AccountID
	Offset  uint32
	Limit   uint32
}

// MaxTradeLimit bounds one page of history.
const MaxTradeLimit = 1000

// Volume aggregates a market's history. Sums are exact and may exceed the
// range of a single ledger amount.
type Volume struct {
	Events  map[string]int64 `json:"events"`
	BaseIn  decimal.Decimal  `json:"base_in"`
	BaseOut decimal.Decimal  `json:"base_out"`
	Burned  decimal.Decimal  `json:"burned"`
}

// Database is the trade history store.
type Database interface {
	Open(ctx context.Context) error
	Close(ctx context.Context) error
	Ping(ctx context.Context) error

	// InsertTrades stores trades atomically, in order.
	InsertTrades(ctx context.Context, trades []Trade) error

	// Trades returns matching trades in insertion order.
	Trades(ctx context.Context, q TradeQuery) ([]Trade, error)

	// Volume aggregates every trade of market.
	Volume(ctx context.Context, market types.AccountID) (*Volume, error)
}
