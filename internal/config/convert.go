package config

import (
	"github.com/LeJamon/goAuctiond/internal/core/ledger/genesis"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/state"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// GenesisConfig builds the genesis description. An empty admin and an
// empty account list both fall back to the genesis account.
func (c *Config) GenesisConfig() (genesis.Config, error) {
	out := genesis.DefaultConfig()
	master := out.Protocol.Admin

	out.Protocol.Seed = c.Protocol.Seed
	out.Protocol.FeeBps = c.Protocol.FeeBps
	out.Protocol.MinDuration = c.Protocol.MinDuration
	out.Protocol.MaxDuration = c.Protocol.MaxDuration
	out.Protocol.RecordRent = c.Protocol.RecordRent
	out.Protocol.Admin = master
	if c.Protocol.Admin != "" {
		admin, err := types.ParseAccountID(c.Protocol.Admin)
		if err != nil {
			return genesis.Config{}, err
		}
		out.Protocol.Admin = admin
	}

	if len(c.Genesis.Accounts) > 0 {
		out.Accounts = out.Accounts[:0]
		for _, a := range c.Genesis.Accounts {
			id, err := types.ParseAccountID(a.Address)
			if err != nil {
				return genesis.Config{}, err
			}
			out.Accounts = append(out.Accounts, genesis.Account{ID: id, Balance: a.Balance})
		}
	}
	return out, out.Validate()
}

// StateOptions returns the state store options.
func (c *Config) StateOptions() state.Options {
	return state.Options{
		CacheSize:   c.Database.CacheSize,
		Compression: c.Database.Compression,
	}
}

// HistoryDBConfig returns the relational database configuration, nil when
// history is disabled.
func (c *Config) HistoryDBConfig() *relationaldb.Config {
	if !c.HistoryEnabled() {
		return nil
	}
	var out *relationaldb.Config
	if c.History.Backend == "postgres" {
		out = relationaldb.PostgresConfig(c.History.DSN)
	} else {
		out = relationaldb.SQLiteConfig(c.History.DSN)
	}
	if c.History.MaxOpenConns > 0 {
		out.MaxOpenConns = c.History.MaxOpenConns
	}
	if c.History.Timeout > 0 {
		out.DefaultTimeout = c.History.Timeout
	}
	out.MaxRetries = c.History.MaxRetries
	out.RetryDelay = c.History.RetryDelay
	out.RetryMaxDelay = c.History.RetryMaxDelay
	return out
}
