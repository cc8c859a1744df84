package config

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goAuctiond/internal/core/amount"
	"github.com/LeJamon/goAuctiond/internal/storage/compression"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// ValidateConfig performs validation on the complete configuration
func ValidateConfig(config *Config) error {
	if err := config.Protocol.Validate(); err != nil {
		return fmt.Errorf("protocol validation failed: %w", err)
	}
	if err := config.Database.Validate(); err != nil {
		return fmt.Errorf("database validation failed: %w", err)
	}
	if err := config.History.Validate(); err != nil {
		return fmt.Errorf("history validation failed: %w", err)
	}
	if err := config.Server.Validate(); err != nil {
		return fmt.Errorf("server validation failed: %w", err)
	}
	if err := config.Genesis.Validate(); err != nil {
		return fmt.Errorf("genesis validation failed: %w", err)
	}
	return nil
}

// Validate checks the protocol section
func (p *ProtocolConfig) Validate() error {
	if p.FeeBps > amount.BasisPoints {
		return fmt.Errorf("fee_bps must be at most %d, got %d", amount.BasisPoints, p.FeeBps)
	}
	if p.MinDuration == 0 {
		return errors.New("min_duration must be at least 1 minute")
	}
	if p.MaxDuration <= p.MinDuration {
		return fmt.Errorf("max_duration (%d) must be greater than min_duration (%d)", p.MaxDuration, p.MinDuration)
	}
	if p.Admin != "" {
		if _, err := types.ParseAccountID(p.Admin); err != nil {
			return fmt.Errorf("invalid admin address %q: %w", p.Admin, err)
		}
	}
	return nil
}

// Validate checks the database section
func (d *DatabaseConfig) Validate() error {
	switch d.Backend {
	case "pebble", "leveldb":
		if d.Path == "" {
			return fmt.Errorf("path is required for backend %s", d.Backend)
		}
	case "memory":
	default:
		return fmt.Errorf("unknown backend %q (supported: pebble, leveldb, memory)", d.Backend)
	}
	if d.Compression != "" && !compression.IsAvailable(d.Compression) {
		return fmt.Errorf("unknown compression %q (supported: %v)", d.Compression, compression.Available())
	}
	if d.CacheSize < 0 {
		return errors.New("cache_size must be >= 0")
	}
	return nil
}

// Validate checks the history section
func (h *HistoryConfig) Validate() error {
	switch h.Backend {
	case "", "none":
		return nil
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown backend %q (supported: sqlite, postgres, none)", h.Backend)
	}
	if h.DSN == "" {
		return fmt.Errorf("dsn is required for backend %s", h.Backend)
	}
	if h.MaxRetries < 0 {
		return errors.New("max_retries must be >= 0")
	}
	if h.RetryMaxDelay < h.RetryDelay {
		return errors.New("retry_max_delay must be >= retry_delay")
	}
	return nil
}

// Validate checks the server section
func (s *ServerConfig) Validate() error {
	if s.RPCAddress == "" {
		return errors.New("rpc_address is required")
	}
	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown_timeout must be >= 0")
	}
	return nil
}

// Validate checks the genesis accounts
func (g *GenesisConfig) Validate() error {
	seen := make(map[string]bool, len(g.Accounts))
	for i, a := range g.Accounts {
		if _, err := types.ParseAccountID(a.Address); err != nil {
			return fmt.Errorf("account %d: invalid address %q: %w", i, a.Address, err)
		}
		if seen[a.Address] {
			return fmt.Errorf("account %d: duplicate address %s", i, a.Address)
		}
		seen[a.Address] = true
		if a.Balance == 0 {
			return fmt.Errorf("account %d: balance must be positive", i)
		}
	}
	return nil
}
