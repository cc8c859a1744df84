package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/genesis"
	"github.com/LeJamon/goAuctiond/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "auctiond.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func address(b byte) string {
	var id types.AccountID
	id[0] = b
	id[19] = b
	return id.String()
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, uint16(500), config.Protocol.FeeBps)
	assert.Equal(t, uint32(1), config.Protocol.MinDuration)
	assert.Equal(t, uint32(10080), config.Protocol.MaxDuration)
	assert.Equal(t, "pebble", config.Database.Backend)
	assert.Equal(t, "lz4", config.Database.Compression)
	assert.Equal(t, "127.0.0.1:5005", config.Server.RPCAddress)
	assert.Equal(t, 30*time.Second, config.History.Timeout)
	assert.True(t, config.HistoryEnabled())
	assert.Empty(t, config.ConfigPath())
}

func TestLoadConfig_File(t *testing.T) {
	admin := address(7)
	path := writeConfig(t, `
[protocol]
seed = 3
admin = "`+admin+`"
fee_bps = 250
min_duration = 5
max_duration = 60

[database]
backend = "leveldb"
path = "/tmp/auctiond/state"
compression = "none"

[history]
backend = "none"

[server]
rpc_address = "0.0.0.0:6006"
enable_metrics = false
shutdown_timeout = "3s"

[[genesis.accounts]]
address = "`+address(1)+`"
balance = 1000000

[[genesis.accounts]]
address = "`+address(2)+`"
balance = 500
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, path, config.ConfigPath())
	assert.Equal(t, uint64(3), config.Protocol.Seed)
	assert.Equal(t, admin, config.Protocol.Admin)
	assert.Equal(t, "leveldb", config.Database.Backend)
	assert.False(t, config.HistoryEnabled())
	assert.Nil(t, config.HistoryDBConfig())
	assert.False(t, config.Server.EnableMetrics)
	assert.Equal(t, 3*time.Second, config.Server.ShutdownTimeout)
	require.Len(t, config.Genesis.Accounts, 2)
	assert.Equal(t, uint64(500), config.Genesis.Accounts[1].Balance)

	g, err := config.GenesisConfig()
	require.NoError(t, err)
	assert.Equal(t, uint16(250), g.Protocol.FeeBps)
	assert.Equal(t, admin, g.Protocol.Admin.String())
	require.Len(t, g.Accounts, 2)
	assert.Equal(t, address(1), g.Accounts[0].ID.String())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("AUCTIOND_SERVER_RPC_ADDRESS", "127.0.0.1:9999")
	t.Setenv("AUCTIOND_PROTOCOL_FEE_BPS", "100")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", config.Server.RPCAddress)
	assert.Equal(t, uint16(100), config.Protocol.FeeBps)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"fee too high", func(c *Config) { c.Protocol.FeeBps = 10001 }, "fee_bps"},
		{"zero min duration", func(c *Config) { c.Protocol.MinDuration = 0 }, "min_duration"},
		{"max not above min", func(c *Config) { c.Protocol.MaxDuration = c.Protocol.MinDuration }, "max_duration"},
		{"bad admin", func(c *Config) { c.Protocol.Admin = "not-an-address" }, "admin"},
		{"unknown backend", func(c *Config) { c.Database.Backend = "bolt" }, "unknown backend"},
		{"missing path", func(c *Config) { c.Database.Path = "" }, "path is required"},
		{"unknown compression", func(c *Config) { c.Database.Compression = "zstd" }, "compression"},
		{"unknown history", func(c *Config) { c.History.Backend = "mysql" }, "unknown backend"},
		{"missing dsn", func(c *Config) { c.History.DSN = "" }, "dsn"},
		{"missing rpc address", func(c *Config) { c.Server.RPCAddress = "" }, "rpc_address"},
		{"bad genesis address", func(c *Config) {
			c.Genesis.Accounts = []GenesisAccount{{Address: "x", Balance: 1}}
		}, "invalid address"},
		{"duplicate genesis account", func(c *Config) {
			c.Genesis.Accounts = []GenesisAccount{{Address: address(1), Balance: 1}, {Address: address(1), Balance: 1}}
		}, "duplicate"},
		{"zero genesis balance", func(c *Config) {
			c.Genesis.Accounts = []GenesisAccount{{Address: address(1)}}
		}, "balance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig("")
			require.NoError(t, err)
			tt.mutate(config)
			err = ValidateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGenesisConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	g, err := config.GenesisConfig()
	require.NoError(t, err)
	master, _, err := genesis.GenesisAccountID()
	require.NoError(t, err)
	assert.Equal(t, master, g.Protocol.Admin)
	require.Len(t, g.Accounts, 1)
	assert.Equal(t, genesis.InitialSupply, g.Accounts[0].Balance)
}

func TestHistoryDBConfig(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	config.History.MaxRetries = 7

	db := config.HistoryDBConfig()
	require.NotNil(t, db)
	assert.Equal(t, "sqlite", db.Driver)
	assert.Equal(t, 7, db.MaxRetries)
	require.NoError(t, db.Validate())

	config.History.Backend = "postgres"
	config.History.DSN = "postgres://localhost/auctiond"
	assert.Equal(t, "postgres", config.HistoryDBConfig().Driver)
}
