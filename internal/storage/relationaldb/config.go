package relationaldb

import (
	"time"
)

// Config contains database configuration settings
type Config struct {
	// Driver is "sqlite" or "postgres"
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`

	// Connection pool settings
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`

	DefaultTimeout time.Duration `mapstructure:"default_timeout"`

	// Retry settings for opening the connection
	MaxRetries    int           `mapstructure:"max_retries"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
	RetryMaxDelay time.Duration `mapstructure:"retry_max_delay"`
}

// NewConfig creates a new Config with sensible defaults
func NewConfig() *Config {
	return &Config{
		Driver:          "sqlite",
		MaxOpenConns:    4,
		ConnMaxLifetime: time.Hour,
		DefaultTimeout:  time.Second * 30,
		MaxRetries:      3,
		RetryDelay:      time.Millisecond * 100,
		RetryMaxDelay:   time.Second * 5,
	}
}

// SQLiteConfig creates a SQLite configuration for a database file
func SQLiteConfig(path string) *Config {
	config := NewConfig()
	config.Driver = "sqlite"
	config.DSN = path
	config.MaxOpenConns = 1
	return config
}

// PostgresConfig creates a PostgreSQL configuration from a connection string
func PostgresConfig(dsn string) *Config {
	config := NewConfig()
	config.Driver = "postgres"
	config.DSN = dsn
	config.MaxOpenConns = 25
	return config
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Driver != "sqlite" && c.Driver != "postgres" {
		return ErrInvalidDriver
	}
	if c.DSN == "" {
		return ErrMissingDSN
	}
	if c.MaxOpenConns < 0 {
		return ErrInvalidMaxOpenConns
	}
	if c.DefaultTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxRetries < 0 {
		return ErrInvalidMaxRetries
	}
	if c.RetryDelay < 0 {
		return ErrInvalidRetryDelay
	}
	if c.RetryMaxDelay < c.RetryDelay {
		return ErrInvalidRetryMaxDelay
	}
	return nil
}
