package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/crypto"
	"github.com/LeJamon/goBondedMarkets/internal/storage"
	"github.com/LeJamon/goBondedMarkets/internal/storage/relationaldb"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bondedd.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// isolate keeps LoadConfig("") from finding a config file on the host.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultProgramID, config.Program.ID)
	assert.Equal(t, curve.DefaultParams().Constant, config.Curve.LinearConstant)
	assert.Equal(t, uint8(6), config.Assets.BaseDecimals)
	assert.Equal(t, uint8(6), config.Assets.TargetDecimals)
	assert.Equal(t, 32, config.Market.MaxNameLength)
	assert.Equal(t, storage.BackendPebble, config.Storage.Backend)
	assert.Equal(t, 1024, config.Cache.AttributionEntries)
	assert.False(t, config.HistoryEnabled())
	assert.Empty(t, config.GetConfigPath())

	_, err = config.BaseMint()
	require.ErrorIs(t, err, ErrNoBaseMint)
}

func TestLoadConfigFile(t *testing.T) {
	base := types.AccountID{0xBA, 0x5E}
	path := writeConfig(t, `
[program]
id = "moonbase-markets"

[curve]
linear_constant = 50000000

[assets]
base_mint = "`+base.String()+`"
base_decimals = 9

[storage]
backend = "bbolt"
path = "/tmp/bonded"
compression = "lz4"

[history]
driver = "sqlite"
dsn = "trades.db"

[log]
level = "debug"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, config.GetConfigPath())

	got, err := config.BaseMint()
	require.NoError(t, err)
	assert.Equal(t, base, got)

	ec := config.EngineConfig()
	assert.Equal(t, types.AccountID(crypto.CalcProgramID("moonbase-markets")), ec.Program)
	assert.Equal(t, base, ec.BaseMint)
	assert.Equal(t, uint64(50_000_000), ec.Curve.Constant)
	assert.Equal(t, uint8(9), ec.BaseDecimals)
	assert.Equal(t, uint8(6), ec.TargetDecimals)

	assert.Equal(t, storage.Options{Backend: "bbolt", Path: "/tmp/bonded", Compression: "lz4"}, config.StorageOptions())

	require.True(t, config.HistoryEnabled())
	rc := config.RelationalConfig()
	assert.Equal(t, relationaldb.DriverSQLite, rc.Driver)
	assert.Equal(t, filepath.Join("/tmp/bonded", "trades.db"), rc.Database)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("BONDED_STORAGE_BACKEND", "memory")
	t.Setenv("BONDED_ASSETS_TARGET_DECIMALS", "3")
	t.Setenv("BONDED_HISTORY_DRIVER", "postgres")
	t.Setenv("BONDED_HISTORY_DSN", "postgres://bonded@db/bonded")

	path := writeConfig(t, `
[storage]
backend = "leveldb"
`)
	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, storage.BackendMemory, config.Storage.Backend)
	assert.Equal(t, uint8(3), config.Assets.TargetDecimals)

	rc := config.RelationalConfig()
	assert.Equal(t, relationaldb.DriverPostgres, rc.Driver)
	assert.Equal(t, "postgres://bonded@db/bonded", rc.ConnectionString)
}

func TestSearchConfig(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(ConfigName+".toml", []byte(`
[storage]
backend = "memory"

[log]
level = "warn"
`), 0o644))

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, storage.BackendMemory, config.Storage.Backend)
	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, ConfigName+".toml", filepath.Base(config.GetConfigPath()))
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, ".", paths[0])
	assert.Equal(t, "/etc/"+ConfigName, paths[len(paths)-1])
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestConfigValidation(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Program: ProgramConfig{ID: DefaultProgramID},
			Curve:   CurveConfig{LinearConstant: 100_000_000},
			Assets:  AssetsConfig{BaseDecimals: 6, TargetDecimals: 6},
			Market:  MarketConfig{MaxNameLength: 32, MaxBatchSize: 8},
			Storage: StorageConfig{Backend: storage.BackendPebble, Path: "data", Compression: "none"},
			Log:     LogConfig{Level: "info"},
		}
	}
	require.NoError(t, ValidateConfig(valid()))

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty program", func(c *Config) { c.Program.ID = "" }, "program.id"},
		{"zero curve constant", func(c *Config) { c.Curve.LinearConstant = 0 }, "linear_constant"},
		{"too many decimals", func(c *Config) { c.Assets.TargetDecimals = 20 }, "target_decimals"},
		{"bad base mint", func(c *Config) { c.Assets.BaseMint = "not-an-address" }, "base_mint"},
		{"name limit above seed length", func(c *Config) { c.Market.MaxNameLength = 33 }, "max_name_length"},
		{"zero name limit", func(c *Config) { c.Market.MaxNameLength = 0 }, "max_name_length"},
		{"zero batch", func(c *Config) { c.Market.MaxBatchSize = 0 }, "max_batch_size"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "rocksdb" }, "invalid backend"},
		{"missing path", func(c *Config) { c.Storage.Path = "" }, "path is required"},
		{"unknown compression", func(c *Config) { c.Storage.Compression = "zstd" }, "invalid compression"},
		{"unknown history driver", func(c *Config) { c.History.Driver = "mysql" }, "invalid driver"},
		{"postgres without dsn", func(c *Config) { c.History.Driver = "postgres" }, "dsn is required"},
		{"negative cache", func(c *Config) { c.Cache.AttributionEntries = -1 }, "attribution_entries"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := ValidateConfig(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("memory needs no path", func(t *testing.T) {
		c := valid()
		c.Storage = StorageConfig{Backend: storage.BackendMemory}
		require.NoError(t, ValidateConfig(c))
	})
}

func TestSaveExampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.toml")
	require.NoError(t, SaveExampleConfig(path))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "lz4", config.Storage.Compression)
	assert.Equal(t, "/var/lib/bondedd", config.Storage.Path)
	assert.True(t, config.HistoryEnabled())
}
