package relationaldb

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/shopspring/decimal"
)

// Dialect captures what differs between SQL backends.
type Dialect interface {
	// Placeholder returns the bind marker for the n-th argument, from 1.
	Placeholder(n int) string

	// Schema returns the statements that create the history tables.
	Schema() []string
}

// SQLDatabase implements Database over database/sql. Backends supply the
// driver registration and a Dialect.
type SQLDatabase struct {
	config  *Config
	dialect Dialect

	mu sync.RWMutex
	db *sql.DB
}

var _ Database = (*SQLDatabase)(nil)

// NewSQLDatabase creates an unopened database for config.
func NewSQLDatabase(config *Config, dialect Dialect) (*SQLDatabase, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigurationError("new_database", "invalid configuration", err)
	}
	return &SQLDatabase{config: config, dialect: dialect}, nil
}

// Open opens the database connection and initializes schema
func (d *SQLDatabase) Open(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db != nil {
		return nil
	}

	connStr, err := d.config.BuildConnectionString()
	if err != nil {
		return NewConfigurationError("open", "failed to build connection string", err)
	}
	sqlDB, err := sql.Open(d.config.Driver, connStr)
	if err != nil {
		return NewConnectionError("open", "failed to open database connection", err)
	}

	sqlDB.SetMaxOpenConns(d.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(d.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(d.config.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, d.config.DefaultTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return NewConnectionError("open", "failed to ping database", err)
	}
	for _, stmt := range d.dialect.Schema() {
		if _, err := sqlDB.ExecContext(ctx, stmt); err != nil {
			sqlDB.Close()
			return NewSchemaError("open", "failed to initialize schema", err)
		}
	}

	d.db = sqlDB
	return nil
}

// Close closes the database connection
func (d *SQLDatabase) Close(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	if err != nil {
		return NewConnectionError("close", "failed to close database connection", err)
	}
	return nil
}

// Ping tests the database connection
func (d *SQLDatabase) Ping(ctx context.Context) error {
	db, err := d.handle()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, d.config.DefaultTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return NewConnectionError("ping", "database ping failed", err)
	}
	return nil
}

func (d *SQLDatabase) handle() (*sql.DB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.db == nil {
		return nil, ErrDatabaseClosed
	}
	return d.db, nil
}

const tradeColumns = "id, kind, account, market, name, amount, settlement, curve_supply, amount_burned, created_at"

// InsertTrades stores trades in one transaction.
func (d *SQLDatabase) InsertTrades(ctx context.Context, trades []Trade) error {
	if len(trades) == 0 {
		return nil
	}
	db, err := d.handle()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, d.config.DefaultTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return NewTransactionError("insert_trades", "failed to begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	marks := make([]string, 10)
	for i := range marks {
		marks[i] = d.dialect.Placeholder(i + 1)
	}
	query := fmt.Sprintf("INSERT INTO trades (%s) VALUES (%s)", tradeColumns, strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return NewQueryError("insert_trades", "failed to prepare insert", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		_, err := stmt.ExecContext(ctx,
			t.ID, t.Kind, t.Account.String(), t.Market.String(), t.Name,
			formatUint(t.Amount), formatUint(t.Settlement),
			formatUint(t.CurveSupply), formatUint(t.AmountBurned),
			t.Time.UTC().UnixNano())
		if err != nil {
			if isUniqueViolation(err) {
				return NewConstraintError("insert_trades", "trade already recorded",
					fmt.Errorf("%w: %s: %v", ErrDuplicateEntry, t.ID, err))
			}
			return NewQueryError("insert_trades", "failed to insert trade", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return NewTransactionError("insert_trades", "failed to commit", err)
	}
	return nil
}

// Trades returns matching trades in insertion order.
func (d *SQLDatabase) Trades(ctx context.Context, q TradeQuery) ([]Trade, error) {
	limit := q.Limit
	if limit == 0 {
		limit = MaxTradeLimit
	}
	if limit > MaxTradeLimit {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrInvalidLimit, q.Limit, MaxTradeLimit)
	}
	db, err := d.handle()
	if err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if !q.Market.IsZero() {
		args = append(args, q.Market.String())
		where = append(where, "market = "+d.dialect.Placeholder(len(args)))
	}
	if !q.Account.IsZero() {
		args = append(args, q.Account.String())
		where = append(where, "account = "+d.dialect.Placeholder(len(args)))
	}

	query := "SELECT " + tradeColumns + " FROM trades"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, int64(limit), int64(q.Offset))
	query += fmt.Sprintf(" ORDER BY seq ASC LIMIT %s OFFSET %s",
		d.dialect.Placeholder(len(args)-1), d.dialect.Placeholder(len(args)))

	ctx, cancel := context.WithTimeout(ctx, d.config.DefaultTimeout)
	defer cancel()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewQueryError("trades", "failed to query trades", err)
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, NewQueryError("trades", "failed to iterate trades", err)
	}
	return out, nil
}

// Volume aggregates every trade of market.
func (d *SQLDatabase) Volume(ctx context.Context, market types.AccountID) (*Volume, error) {
	db, err := d.handle()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, d.config.DefaultTimeout)
	defer cancel()

	rows, err := db.QueryContext(ctx,
		"SELECT kind, amount, settlement FROM trades WHERE market = "+d.dialect.Placeholder(1),
		market.String())
	if err != nil {
		return nil, NewQueryError("volume", "failed to query volume", err)
	}
	defer rows.Close()

	v := &Volume{Events: make(map[string]int64)}
	for rows.Next() {
		var kind, amount, settlement string
		if err := rows.Scan(&kind, &amount, &settlement); err != nil {
			return nil, NewQueryError("volume", "failed to scan volume row", err)
		}
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, NewDataError("volume", "bad amount", fmt.Errorf("%w: %v", ErrInvalidDataFormat, err))
		}
		s, err := decimal.NewFromString(settlement)
		if err != nil {
			return nil, NewDataError("volume", "bad settlement", fmt.Errorf("%w: %v", ErrInvalidDataFormat, err))
		}
		v.Events[kind]++
		switch kind {
		case KindBuy:
			v.BaseIn = v.BaseIn.Add(s)
		case KindSell:
			v.BaseOut = v.BaseOut.Add(s)
		case KindBurn:
			v.Burned = v.Burned.Add(a)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, NewQueryError("volume", "failed to iterate volume", err)
	}
	return v, nil
}

func scanTrade(rows *sql.Rows) (Trade, error) {
	var (
		t                                       Trade
		account, market                         string
		amount, settlement, curveSupply, burned string
		createdAt                               int64
	)
	if err := rows.Scan(&t.ID, &t.Kind, &account, &market, &t.Name,
		&amount, &settlement, &curveSupply, &burned, &createdAt); err != nil {
		return Trade{}, NewQueryError("trades", "failed to scan trade", err)
	}

	var err error
	if t.Account, err = types.ParseAccountID(account); err != nil {
		return Trade{}, NewDataError("trades", "bad account", fmt.Errorf("%w: %v", ErrInvalidDataFormat, err))
	}
	if t.Market, err = types.ParseAccountID(market); err != nil {
		return Trade{}, NewDataError("trades", "bad market", fmt.Errorf("%w: %v", ErrInvalidDataFormat, err))
	}
	for _, f := range []struct {
		dst *uint64
		src string
	}{
		{&t.Amount, amount},
		{&t.Settlement, settlement},
		{&t.CurveSupply, curveSupply},
		{&t.AmountBurned, burned},
	} {
		if *f.dst, err = strconv.ParseUint(f.src, 10, 64); err != nil {
			return Trade{}, NewDataError("trades", "bad amount", fmt.Errorf("%w: %v", ErrInvalidDataFormat, err))
		}
	}
	t.Time = time.Unix(0, createdAt).UTC()
	return t, nil
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
