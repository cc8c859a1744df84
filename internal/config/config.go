// Package config loads the node configuration from TOML, environment
// variables and defaults.
package config

import (
	"time"
)

// Config represents the complete auctiond configuration
type Config struct {
	Protocol ProtocolConfig `toml:"protocol" mapstructure:"protocol"`
	Engine   EngineConfig   `toml:"engine" mapstructure:"engine"`
	Database DatabaseConfig `toml:"database" mapstructure:"database"`
	History  HistoryConfig  `toml:"history" mapstructure:"history"`
	Server   ServerConfig   `toml:"server" mapstructure:"server"`
	Genesis  GenesisConfig  `toml:"genesis" mapstructure:"genesis"`
	Log      LogConfig      `toml:"log" mapstructure:"log"`

	configPath string
}

// ProtocolConfig holds the parameters written to the protocol config entry
// at genesis
type ProtocolConfig struct {
	Seed uint64 `toml:"seed" mapstructure:"seed"`
	// Admin is a base58 address. Empty means the genesis account.
	Admin       string `toml:"admin" mapstructure:"admin"`
	FeeBps      uint16 `toml:"fee_bps" mapstructure:"fee_bps"`
	MinDuration uint32 `toml:"min_duration" mapstructure:"min_duration"`
	MaxDuration uint32 `toml:"max_duration" mapstructure:"max_duration"`
	// RecordRent in drops, charged per open auction record
	RecordRent uint64 `toml:"record_rent" mapstructure:"record_rent"`
}

// EngineConfig controls transaction processing
type EngineConfig struct {
	SkipSignatureVerification bool `toml:"skip_signature_verification" mapstructure:"skip_signature_verification"`
	Standalone                bool `toml:"standalone" mapstructure:"standalone"`
}

// DatabaseConfig selects the state store
type DatabaseConfig struct {
	// Backend is pebble, leveldb or memory
	Backend     string `toml:"backend" mapstructure:"backend"`
	Path        string `toml:"path" mapstructure:"path"`
	Compression string `toml:"compression" mapstructure:"compression"`
	CacheSize   int    `toml:"cache_size" mapstructure:"cache_size"`
}

// HistoryConfig selects the transaction history store
type HistoryConfig struct {
	// Backend is sqlite, postgres or none
	Backend       string        `toml:"backend" mapstructure:"backend"`
	DSN           string        `toml:"dsn" mapstructure:"dsn"`
	MaxOpenConns  int           `toml:"max_open_conns" mapstructure:"max_open_conns"`
	Timeout       time.Duration `toml:"timeout" mapstructure:"timeout"`
	MaxRetries    int           `toml:"max_retries" mapstructure:"max_retries"`
	RetryDelay    time.Duration `toml:"retry_delay" mapstructure:"retry_delay"`
	RetryMaxDelay time.Duration `toml:"retry_max_delay" mapstructure:"retry_max_delay"`
}

// ServerConfig controls the RPC listener
type ServerConfig struct {
	RPCAddress      string        `toml:"rpc_address" mapstructure:"rpc_address"`
	EnableWebsocket bool          `toml:"enable_websocket" mapstructure:"enable_websocket"`
	EnableMetrics   bool          `toml:"enable_metrics" mapstructure:"enable_metrics"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	// AdminSigning allows submit and sign requests that carry a secret
	AdminSigning bool `toml:"admin_signing" mapstructure:"admin_signing"`
}

// GenesisConfig lists the accounts funded at genesis. When empty the
// genesis account receives the whole supply.
type GenesisConfig struct {
	Accounts []GenesisAccount `toml:"accounts" mapstructure:"accounts"`
}

// GenesisAccount is one funded account
type GenesisAccount struct {
	Address string `toml:"address" mapstructure:"address"`
	Balance uint64 `toml:"balance" mapstructure:"balance"`
}

// LogConfig controls logging
type LogConfig struct {
	Verbose bool `toml:"verbose" mapstructure:"verbose"`
	Debug   bool `toml:"debug" mapstructure:"debug"`
}

// ConfigPath returns the file the configuration was read from, empty when
// only defaults and environment were used.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// HistoryEnabled reports whether a history backend is configured.
func (c *Config) HistoryEnabled() bool {
	return c.History.Backend != "" && c.History.Backend != "none"
}
