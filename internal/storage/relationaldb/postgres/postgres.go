// Package postgres stores trade history in PostgreSQL.
package postgres

import (
	"strconv"

	"github.com/LeJamon/goBondedMarkets/internal/storage/relationaldb"
	_ "github.com/lib/pq" // PostgreSQL driver
)

func init() {
	relationaldb.Register(relationaldb.DriverPostgres, func(config *relationaldb.Config) (relationaldb.Database, error) {
		return NewDatabase(config)
	})
}

// Dialect is the PostgreSQL dialect.
type Dialect struct{}

// Placeholder implements relationaldb.Dialect.
func (Dialect) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// Schema implements relationaldb.Dialect. Amounts are TEXT because ledger
// amounts use the full uint64 range.
func (Dialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS trades (
			seq BIGSERIAL PRIMARY KEY,
			id TEXT UNIQUE NOT NULL,
			kind VARCHAR(32) NOT NULL,
			account VARCHAR(40) NOT NULL,
			market VARCHAR(40) NOT NULL,
			name TEXT NOT NULL,
			amount TEXT NOT NULL,
			settlement TEXT NOT NULL,
			curve_supply TEXT NOT NULL,
			amount_burned TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_market ON trades(market, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_account ON trades(account, seq)`,
	}
}

// NewDatabase creates a PostgreSQL history database.
func NewDatabase(config *relationaldb.Config) (*relationaldb.SQLDatabase, error) {
	return relationaldb.NewSQLDatabase(config, Dialect{})
}
