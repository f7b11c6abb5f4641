package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/LeJamon/goBondedMarkets/internal/storage/relationaldb"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	marketA = types.AccountID{0x6D, 0x01}
	marketB = types.AccountID{0x6D, 0x02}
	alice   = types.AccountID{0x0A}
	bob     = types.AccountID{0x0B}
)

func openTestDB(t *testing.T) *relationaldb.SQLDatabase {
	t.Helper()
	db, err := NewDatabase(relationaldb.SQLiteConfig(filepath.Join(t.TempDir(), "history.db")))
	require.NoError(t, err)
	require.NoError(t, db.Open(context.Background()))
	t.Cleanup(func() { db.Close(context.Background()) })
	return db
}

func trade(kind string, account, market types.AccountID, amount, settlement uint64) relationaldb.Trade {
	return relationaldb.Trade{
		ID:          uuid.NewString(),
		Kind:        kind,
		Account:     account,
		Market:      market,
		Name:        "alpha",
		Amount:      amount,
		Settlement:  settlement,
		CurveSupply: amount,
		Time:        time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestInsertAndQueryTrades(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	trades := []relationaldb.Trade{
		trade(relationaldb.KindBuy, alice, marketA, 24_240_000, 2_937_888),
		trade(relationaldb.KindBurn, alice, marketA, 1_333_000, 0),
		trade(relationaldb.KindBuy, bob, marketB, 5, 1),
		trade(relationaldb.KindSell, alice, marketA, 1_000_000, 237_400),
	}
	// full uint64 range survives storage
	trades[2].AmountBurned = ^uint64(0)
	require.NoError(t, db.InsertTrades(ctx, trades))

	all, err := db.Trades(ctx, relationaldb.TradeQuery{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, trades, all)

	byMarket, err := db.Trades(ctx, relationaldb.TradeQuery{Market: marketA})
	require.NoError(t, err)
	require.Len(t, byMarket, 3)
	assert.Equal(t, relationaldb.KindSell, byMarket[2].Kind)

	byAccount, err := db.Trades(ctx, relationaldb.TradeQuery{Market: marketA, Account: bob})
	require.NoError(t, err)
	assert.Empty(t, byAccount)

	page, err := db.Trades(ctx, relationaldb.TradeQuery{Market: marketA, Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, trades[1].ID, page[0].ID)
}

func TestInsertTradesIsAtomic(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := trade(relationaldb.KindBuy, alice, marketA, 1, 1)
	require.NoError(t, db.InsertTrades(ctx, []relationaldb.Trade{first}))

	err := db.InsertTrades(ctx, []relationaldb.Trade{
		trade(relationaldb.KindBuy, bob, marketA, 2, 1),
		first,
	})
	require.ErrorIs(t, err, relationaldb.ErrDuplicateEntry)
	assert.True(t, relationaldb.IsConstraintError(err))

	all, err := db.Trades(ctx, relationaldb.TradeQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestVolume(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.InsertTrades(ctx, []relationaldb.Trade{
		trade(relationaldb.KindCreate, alice, marketA, 0, 0),
		trade(relationaldb.KindBuy, alice, marketA, 10, ^uint64(0)),
		trade(relationaldb.KindBuy, bob, marketA, 10, 5),
		trade(relationaldb.KindSell, bob, marketA, 3, 2),
		trade(relationaldb.KindBurn, alice, marketA, 4, 0),
		trade(relationaldb.KindBuy, bob, marketB, 10, 99),
	}))

	v, err := db.Volume(ctx, marketA)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		relationaldb.KindCreate: 1,
		relationaldb.KindBuy:    2,
		relationaldb.KindSell:   1,
		relationaldb.KindBurn:   1,
	}, v.Events)
	assert.True(t, decimal.RequireFromString("18446744073709551620").Equal(v.BaseIn), v.BaseIn.String())
	assert.True(t, decimal.NewFromInt(2).Equal(v.BaseOut))
	assert.True(t, decimal.NewFromInt(4).Equal(v.Burned))
}

func TestQueryLimits(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Trades(context.Background(), relationaldb.TradeQuery{Limit: relationaldb.MaxTradeLimit + 1})
	require.ErrorIs(t, err, relationaldb.ErrInvalidLimit)
}

func TestClosedDatabase(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Close(context.Background()))

	_, err := db.Trades(context.Background(), relationaldb.TradeQuery{})
	require.ErrorIs(t, err, relationaldb.ErrDatabaseClosed)
	require.ErrorIs(t, db.Ping(context.Background()), relationaldb.ErrDatabaseClosed)
}

func TestManagerOpensRegisteredBackend(t *testing.T) {
	cfg := relationaldb.SQLiteConfig(filepath.Join(t.TempDir(), "history.db"))
	m, err := relationaldb.NewManager(cfg, relationaldb.WithHealthCheckInterval(10*time.Millisecond))
	require.NoError(t, err)
	assert.Contains(t, relationaldb.Drivers(), relationaldb.DriverSQLite)

	ctx := context.Background()
	require.NoError(t, m.Open(ctx))
	assert.True(t, m.IsConnected())
	require.NoError(t, m.HealthCheck(ctx))

	require.NoError(t, m.Database().InsertTrades(ctx, []relationaldb.Trade{
		trade(relationaldb.KindBuy, alice, marketA, 1, 1),
	}))

	require.NoError(t, m.Close(ctx))
	assert.False(t, m.IsConnected())
	require.ErrorIs(t, m.HealthCheck(ctx), relationaldb.ErrDatabaseClosed)
}
