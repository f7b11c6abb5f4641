// Package sqlite stores trade history in an embedded SQLite file.
package sqlite

import (
	"github.com/LeJamon/goBondedMarkets/internal/storage/relationaldb"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

func init() {
	relationaldb.Register(relationaldb.DriverSQLite, func(config *relationaldb.Config) (relationaldb.Database, error) {
		return NewDatabase(config)
	})
}

// Dialect is the SQLite dialect.
type Dialect struct{}

// Placeholder implements relationaldb.Dialect.
func (Dialect) Placeholder(int) string {
	return "?"
}

// Schema implements relationaldb.Dialect.
func (Dialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS trades (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT UNIQUE NOT NULL,
			kind TEXT NOT NULL,
			account TEXT NOT NULL,
			market TEXT NOT NULL,
			name TEXT NOT NULL,
			amount TEXT NOT NULL,
			settlement TEXT NOT NULL,
			curve_supply TEXT NOT NULL,
			amount_burned TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_market ON trades(market, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_account ON trades(account, seq)`,
	}
}

// NewDatabase creates a SQLite history database.
func NewDatabase(config *relationaldb.Config) (*relationaldb.SQLDatabase, error) {
	return relationaldb.NewSQLDatabase(config, Dialect{})
}
