package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/keylet"
	"github.com/LeJamon/goBondedMarkets/internal/storage"
	"github.com/LeJamon/goBondedMarkets/internal/storage/database/compression"
	"github.com/LeJamon/goBondedMarkets/internal/storage/relationaldb"
	"go.uber.org/zap/zapcore"
)

// ErrNoBaseMint is returned when a command needs assets.base_mint and it is unset.
var ErrNoBaseMint = errors.New("assets.base_mint is not configured")

// maxDecimals keeps 10^decimals within uint64.
const maxDecimals = 19

// ValidateConfig performs comprehensive validation on the complete configuration
func ValidateConfig(config *Config) error {
	if config.Program.ID == "" {
		return fmt.Errorf("program.id is required")
	}

	if config.Curve.LinearConstant == 0 {
		return fmt.Errorf("curve.linear_constant must be positive")
	}

	if err := validateAssets(&config.Assets); err != nil {
		return fmt.Errorf("assets validation failed: %w", err)
	}
	if err := validateMarket(&config.Market); err != nil {
		return fmt.Errorf("market validation failed: %w", err)
	}
	if err := validateStorage(&config.Storage); err != nil {
		return fmt.Errorf("storage validation failed: %w", err)
	}
	if err := validateHistory(config); err != nil {
		return fmt.Errorf("history validation failed: %w", err)
	}

	if config.Cache.AttributionEntries < 0 {
		return fmt.Errorf("cache.attribution_entries must be non-negative, got %d", config.Cache.AttributionEntries)
	}
	if _, err := zapcore.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

func validateAssets(a *AssetsConfig) error {
	if a.BaseDecimals > maxDecimals {
		return fmt.Errorf("base_decimals must be at most %d, got %d", maxDecimals, a.BaseDecimals)
	}
	if a.TargetDecimals > maxDecimals {
		return fmt.Errorf("target_decimals must be at most %d, got %d", maxDecimals, a.TargetDecimals)
	}
	if a.BaseMint != "" {
		cfg := Config{Assets: *a}
		if _, err := cfg.BaseMint(); err != nil {
			return err
		}
	}
	return nil
}

func validateMarket(m *MarketConfig) error {
	// names are derivation seeds
	if m.MaxNameLength < 1 || m.MaxNameLength > keylet.MaxSeedLength {
		return fmt.Errorf("max_name_length must be between 1 and %d, got %d", keylet.MaxSeedLength, m.MaxNameLength)
	}
	if m.MaxBatchSize < 1 {
		return fmt.Errorf("max_batch_size must be positive, got %d", m.MaxBatchSize)
	}
	return nil
}

func validateStorage(s *StorageConfig) error {
	if !slices.Contains(storage.Backends(), s.Backend) {
		return fmt.Errorf("invalid backend %q (valid options: %v)", s.Backend, storage.Backends())
	}
	if s.Backend != storage.BackendMemory && s.Path == "" {
		return fmt.Errorf("path is required for backend %s", s.Backend)
	}
	if s.Compression != "" && !slices.Contains(compression.Available(), s.Compression) {
		return fmt.Errorf("invalid compression %q (valid options: %v)", s.Compression, compression.Available())
	}
	return nil
}

func validateHistory(config *Config) error {
	h := &config.History
	switch h.Driver {
	case "":
		return nil
	case relationaldb.DriverSQLite, "sqlite3":
	case relationaldb.DriverPostgres, "postgresql":
		if h.DSN == "" {
			return fmt.Errorf("dsn is required for driver %s", h.Driver)
		}
	default:
		return fmt.Errorf("invalid driver %q (valid options: sqlite, postgres)", h.Driver)
	}
	return config.RelationalConfig().Validate()
}
