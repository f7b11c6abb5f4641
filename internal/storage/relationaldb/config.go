package relationaldb

import (
	"fmt"
	"net/url"
	"time"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config contains database configuration settings
type Config struct {
	// Database connection settings
	Driver           string `json:"driver" yaml:"driver" mapstructure:"driver"`
	ConnectionString string `json:"connection_string" yaml:"connection_string" mapstructure:"connection_string"`
	Host             string `json:"host" yaml:"host" mapstructure:"host"`
	Port             int    `json:"port" yaml:"port" mapstructure:"port"`
	Database         string `json:"database" yaml:"database" mapstructure:"database"`
	Username         string `json:"username" yaml:"username" mapstructure:"username"`
	Password         string `json:"password" yaml:"password" mapstructure:"password"`
	SSLMode          string `json:"ssl_mode" yaml:"ssl_mode" mapstructure:"ssl_mode"`

	// Connection pool settings
	MaxOpenConns    int           `json:"max_open_conns" yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns" yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`

	// DefaultTimeout bounds every statement.
	DefaultTimeout time.Duration `json:"default_timeout" yaml:"default_timeout" mapstructure:"default_timeout"`

	EnableWALMode bool `json:"enable_wal_mode" yaml:"enable_wal_mode" mapstructure:"enable_wal_mode"`
}

// NewConfig creates a new Config with sensible defaults
func NewConfig() *Config {
	return &Config{
		Driver:          DriverPostgres,
		Host:            "localhost",
		Port:            5432,
		Database:        "bonded",
		Username:        "bonded",
		SSLMode:         "prefer",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		DefaultTimeout:  time.Second * 30,
		EnableWALMode:   true,
	}
}

// PostgresConfig creates a PostgreSQL-specific configuration
func PostgresConfig() *Config {
	return NewConfig()
}

// SQLiteConfig creates a SQLite-specific configuration
func SQLiteConfig(dbPath string) *Config {
	config := NewConfig()
	config.Driver = DriverSQLite
	config.Database = dbPath
	config.MaxOpenConns = 1 // SQLite limitation
	config.MaxIdleConns = 1
	return config
}

// Validate checks the configuration for common errors
func (c *Config) Validate() error {
	switch c.Driver {
	case "postgres", "postgresql":
		c.Driver = DriverPostgres
	case "sqlite3", "sqlite":
		c.Driver = DriverSQLite
	default:
		return fmt.Errorf("%w: %s", ErrInvalidDriver, c.Driver)
	}

	if c.Driver == DriverPostgres && c.ConnectionString == "" {
		if c.Host == "" {
			return ErrMissingHost
		}
		if c.Port <= 0 || c.Port > 65535 {
			return ErrInvalidPort
		}
		if c.Username == "" {
			return ErrMissingUsername
		}
		switch c.SSLMode {
		case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
		default:
			return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
		}
	}
	if c.Database == "" && c.ConnectionString == "" {
		return ErrMissingDatabase
	}

	if c.MaxOpenConns < 0 {
		return ErrInvalidMaxOpenConns
	}
	if c.MaxIdleConns < 0 {
		return ErrInvalidMaxIdleConns
	}
	if c.MaxIdleConns > c.MaxOpenConns && c.MaxOpenConns > 0 {
		return ErrMaxIdleExceedsMaxOpen
	}
	if c.DefaultTimeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// BuildConnectionString builds a connection string from the config
func (c *Config) BuildConnectionString() (string, error) {
	if c.ConnectionString != "" {
		return c.ConnectionString, nil
	}

	switch c.Driver {
	case DriverPostgres:
		return c.buildPostgresConnectionString(), nil
	case DriverSQLite:
		return c.buildSQLiteConnectionString(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidDriver, c.Driver)
	}
}

func (c *Config) buildPostgresConnectionString() string {
	return c.postgresURL().String()
}

func (c *Config) postgresURL() *url.URL {
	params := url.Values{}
	params.Set("sslmode", c.SSLMode)
	params.Set("connect_timeout", "30")
	params.Set("application_name", "bondedd")

	u := &url.URL{
		Scheme:   "postgres",
		Host:     c.Host,
		Path:     "/" + c.Database,
		RawQuery: params.Encode(),
	}
	if c.Port != 0 && c.Port != 5432 {
		u.Host = fmt.Sprintf("%s:%d", c.Host, c.Port)
	}
	if c.Username != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.Username, c.Password)
		} else {
			u.User = url.User(c.Username)
		}
	}
	return u
}

// buildSQLiteConnectionString uses the pragma syntax of modernc.org/sqlite.
func (c *Config) buildSQLiteConnectionString() string {
	params := url.Values{}
	if c.EnableWALMode {
		params.Add("_pragma", "journal_mode(WAL)")
	}
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", "synchronous(NORMAL)")
	return "file:" + c.Database + "?" + params.Encode()
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a string representation of the config (with password redacted)
func (c *Config) String() string {
	return fmt.Sprintf("Config{Driver: %s, Host: %s, Port: %d, Database: %s, Connection: %s}",
		c.Driver, c.Host, c.Port, c.Database, c.redactedConnectionString())
}

// redactedConnectionString is the DSN with any password replaced by
// url.Redacted's placeholder. An explicit connection string that does not
// parse as a URL is hidden entirely.
func (c *Config) redactedConnectionString() string {
	if c.ConnectionString != "" {
		u, err := url.Parse(c.ConnectionString)
		if err != nil || u.Scheme == "" {
			return "***"
		}
		return u.Redacted()
	}
	switch c.Driver {
	case DriverPostgres:
		return c.postgresURL().Redacted()
	case DriverSQLite:
		return c.buildSQLiteConnectionString()
	default:
		return ""
	}
}
