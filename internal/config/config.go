package config

import (
	"fmt"
	"path/filepath"

	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/crypto"
	"github.com/LeJamon/goBondedMarkets/internal/storage"
	"github.com/LeJamon/goBondedMarkets/internal/storage/relationaldb"
	"github.com/LeJamon/goBondedMarkets/internal/types"
)

// Config represents the complete bondedd configuration
type Config struct {
	// Program names the identity every market address is derived under
	Program ProgramConfig `toml:"program" mapstructure:"program"`

	// Curve parameters shared by every market
	Curve CurveConfig `toml:"curve" mapstructure:"curve"`

	// Assets describes the shared base mint and token precision
	Assets AssetsConfig `toml:"assets" mapstructure:"assets"`

	// Market limits
	Market MarketConfig `toml:"market" mapstructure:"market"`

	// Storage holds ledger state
	Storage StorageConfig `toml:"storage" mapstructure:"storage"`

	// History is the optional trade history database
	History HistoryConfig `toml:"history" mapstructure:"history"`

	Cache CacheConfig `toml:"cache" mapstructure:"cache"`
	Log   LogConfig   `toml:"log" mapstructure:"log"`

	configPath string `toml:"-" mapstructure:"-"`
}

// ProgramConfig represents the [program] section
type ProgramConfig struct {
	ID string `toml:"id" mapstructure:"id"`
}

// CurveConfig represents the [curve] section
type CurveConfig struct {
	LinearConstant uint64 `toml:"linear_constant" mapstructure:"linear_constant"`
}

// AssetsConfig represents the [assets] section
type AssetsConfig struct {
	// BaseMint is the classic address of the mint every market settles in.
	// Empty is allowed until a command needs to trade.
	BaseMint       string `toml:"base_mint" mapstructure:"base_mint"`
	BaseDecimals   uint8  `toml:"base_decimals" mapstructure:"base_decimals"`
	TargetDecimals uint8  `toml:"target_decimals" mapstructure:"target_decimals"`
}

// MarketConfig represents the [market] section
type MarketConfig struct {
	MaxNameLength int `toml:"max_name_length" mapstructure:"max_name_length"`
	MaxBatchSize  int `toml:"max_batch_size" mapstructure:"max_batch_size"`
}

// StorageConfig represents the [storage] section
type StorageConfig struct {
	Backend     string `toml:"backend" mapstructure:"backend"`
	Path        string `toml:"path" mapstructure:"path"`
	Compression string `toml:"compression" mapstructure:"compression"`
}

// HistoryConfig represents the [history] section. An empty driver disables
// trade history.
type HistoryConfig struct {
	Driver string `toml:"driver" mapstructure:"driver"`

	// DSN is the postgres connection string, or the sqlite file path
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

// CacheConfig represents the [cache] section
type CacheConfig struct {
	AttributionEntries int `toml:"attribution_entries" mapstructure:"attribution_entries"`
}

// LogConfig represents the [log] section
type LogConfig struct {
	Level       string `toml:"level" mapstructure:"level"`
	Development bool   `toml:"development" mapstructure:"development"`
}

// GetConfigPath returns the file the configuration was read from, if any
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// ProgramAccount returns the program identity derived from program.id
func (c *Config) ProgramAccount() types.AccountID {
	return types.AccountID(crypto.CalcProgramID(c.Program.ID))
}

// BaseMint parses assets.base_mint
func (c *Config) BaseMint() (types.AccountID, error) {
	if c.Assets.BaseMint == "" {
		return types.AccountID{}, ErrNoBaseMint
	}
	id, err := types.ParseAccountID(c.Assets.BaseMint)
	if err != nil {
		return types.AccountID{}, fmt.Errorf("assets.base_mint: %w", err)
	}
	return id, nil
}

// EngineConfig returns the transaction engine configuration. An unset base
// mint leaves EngineConfig.BaseMint zero; market transactions then fail with
// a missing-entry result.
func (c *Config) EngineConfig() tx.EngineConfig {
	base, _ := c.BaseMint()
	cfg := tx.DefaultEngineConfig(c.ProgramAccount(), base)
	cfg.Curve = curve.Params{Constant: c.Curve.LinearConstant}
	cfg.BaseDecimals = c.Assets.BaseDecimals
	cfg.TargetDecimals = c.Assets.TargetDecimals
	cfg.MaxNameLength = c.Market.MaxNameLength
	cfg.MaxBatchSize = c.Market.MaxBatchSize
	return cfg
}

// StorageOptions returns the options for storage.Open
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:     c.Storage.Backend,
		Path:        c.Storage.Path,
		Compression: c.Storage.Compression,
	}
}

// HistoryEnabled reports whether a trade history database is configured
func (c *Config) HistoryEnabled() bool {
	return c.History.Driver != ""
}

// RelationalConfig returns the history database configuration. A relative
// sqlite path is resolved against storage.path.
func (c *Config) RelationalConfig() *relationaldb.Config {
	switch c.History.Driver {
	case relationaldb.DriverSQLite, "sqlite3":
		path := c.History.DSN
		if path == "" {
			path = "history.db"
		}
		if !filepath.IsAbs(path) && c.Storage.Path != "" {
			path = filepath.Join(c.Storage.Path, path)
		}
		return relationaldb.SQLiteConfig(path)
	default:
		rc := relationaldb.PostgresConfig()
		rc.Driver = c.History.Driver
		rc.ConnectionString = c.History.DSN
		return rc
	}
}
