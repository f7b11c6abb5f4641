package config

import (
	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
	"github.com/LeJamon/goBondedMarkets/internal/storage"
	"github.com/spf13/viper"
)

// DefaultProgramID is the program name deployed markets derive from.
const DefaultProgramID = "bonded-markets"

// setDefaults registers every key. Environment overrides only apply to keys
// viper knows about, so each one needs a default here.
func setDefaults(v *viper.Viper) {
	v.SetDefault("program.id", DefaultProgramID)

	v.SetDefault("curve.linear_constant", curve.DefaultParams().Constant)

	v.SetDefault("assets.base_mint", "")
	v.SetDefault("assets.base_decimals", tx.DefaultDecimals)
	v.SetDefault("assets.target_decimals", tx.DefaultDecimals)

	v.SetDefault("market.max_name_length", tx.DefaultMaxNameLength)
	v.SetDefault("market.max_batch_size", tx.DefaultMaxBatchSize)

	v.SetDefault("storage.backend", storage.BackendPebble)
	v.SetDefault("storage.path", "data")
	v.SetDefault("storage.compression", "none")

	// history disabled
	v.SetDefault("history.driver", "")
	v.SetDefault("history.dsn", "")

	v.SetDefault("cache.attribution_entries", 1024)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// generateExampleConfig generates example configuration values
func generateExampleConfig() map[string]interface{} {
	return map[string]interface{}{
		"program.id":             DefaultProgramID,
		"curve.linear_constant":  curve.DefaultParams().Constant,
		"assets.base_mint":       "",
		"assets.base_decimals":   tx.DefaultDecimals,
		"assets.target_decimals": tx.DefaultDecimals,
		"market.max_name_length": tx.DefaultMaxNameLength,
		"storage.backend":        storage.BackendPebble,
		"storage.path":           "/var/lib/bondedd",
		"storage.compression":    "lz4",
		"history.driver":         "sqlite",
		"history.dsn":            "history.db",
		"log.level":              "info",
	}
}
