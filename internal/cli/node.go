package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LeJamon/goAuctiond/internal/config"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/service"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/state"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb/postgres"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb/sqlite"
)

// node is an opened ledger with its stores.
type node struct {
	ledger  *service.Ledger
	state   *state.State
	history relationaldb.HistoryStore
}

// openHistory opens the configured history store, nil when disabled.
func openHistory(ctx context.Context, cfg *config.Config) (relationaldb.HistoryStore, error) {
	dbCfg := cfg.HistoryDBConfig()
	if dbCfg == nil {
		return nil, nil
	}
	switch cfg.History.Backend {
	case "postgres":
		return postgres.Open(ctx, dbCfg)
	case "sqlite":
		return sqlite.Open(ctx, dbCfg)
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}

// openNode opens state and history and starts the ledger. withHistory
// false skips the history store for offline commands.
func openNode(ctx context.Context, cfg *config.Config, log *slog.Logger, withHistory bool) (*node, error) {
	genesisCfg, err := cfg.GenesisConfig()
	if err != nil {
		return nil, fmt.Errorf("genesis config: %w", err)
	}

	st, err := state.Open(cfg.Database.Backend, cfg.Database.Path, cfg.StateOptions())
	if err != nil {
		return nil, fmt.Errorf("open state %s at %s: %w", cfg.Database.Backend, cfg.Database.Path, err)
	}

	var history relationaldb.HistoryStore
	if withHistory {
		if history, err = openHistory(ctx, cfg); err != nil {
			st.Close()
			return nil, fmt.Errorf("open history: %w", err)
		}
	}

	ledger := service.New(st, service.Config{
		SkipSignatureVerification: cfg.Engine.SkipSignatureVerification,
		Standalone:                cfg.Engine.Standalone,
		Genesis:                   genesisCfg,
		History:                   history,
		Logger:                    log,
	})
	created, err := ledger.Start()
	if err != nil {
		ledger.Close()
		st.Close()
		return nil, fmt.Errorf("start ledger: %w", err)
	}
	if created {
		log.Info("genesis written", "seed", genesisCfg.Protocol.Seed, "admin", genesisCfg.Protocol.Admin,
			"accounts", len(genesisCfg.Accounts))
	}
	return &node{ledger: ledger, state: st, history: history}, nil
}

// Close closes the ledger and its history, then the state.
func (n *node) Close() error {
	return errors.Join(n.ledger.Close(), n.state.Close())
}
