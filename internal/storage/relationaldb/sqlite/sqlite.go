// Package sqlite opens a history store on an embedded SQLite file.
package sqlite

import (
	"context"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
)

var dialect = relationaldb.Dialect{
	Name: "sqlite",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			hash       TEXT    NOT NULL,
			seq        INTEGER NOT NULL,
			account    TEXT    NOT NULL,
			tx_type    TEXT    NOT NULL,
			result     TEXT    NOT NULL,
			applied    INTEGER NOT NULL,
			subject    TEXT    NOT NULL DEFAULT '',
			close_time INTEGER NOT NULL,
			tx_json    BLOB    NOT NULL,
			meta_json  BLOB,
			UNIQUE (hash, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_hash ON transactions(hash)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_subject ON transactions(subject, seq)`,
	},
}

// Open opens or creates the database at cfg.DSN.
func Open(ctx context.Context, cfg *relationaldb.Config) (*relationaldb.SQLStore, error) {
	return relationaldb.OpenSQL(ctx, "sqlite", dialect, cfg, clockwork.NewRealClock())
}
