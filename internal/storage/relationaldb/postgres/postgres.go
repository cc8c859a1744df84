// Package postgres opens a history store on a PostgreSQL server.
package postgres

import (
	"context"
	"strconv"

	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"

	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
)

var dialect = relationaldb.Dialect{
	Name: "postgres",
	Placeholder: func(n int) string {
		return "$" + strconv.Itoa(n)
	},
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id         BIGSERIAL PRIMARY KEY,
			hash       CHARACTER(64) NOT NULL,
			seq        BIGINT        NOT NULL,
			account    TEXT          NOT NULL,
			tx_type    TEXT          NOT NULL,
			result     TEXT          NOT NULL,
			applied    INTEGER       NOT NULL,
			subject    TEXT          NOT NULL DEFAULT '',
			close_time BIGINT        NOT NULL,
			tx_json    BYTEA         NOT NULL,
			meta_json  BYTEA,
			UNIQUE (hash, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_hash ON transactions(hash)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_subject ON transactions(subject, seq)`,
	},
}

// Open connects to the server named by cfg.DSN and creates the schema.
func Open(ctx context.Context, cfg *relationaldb.Config) (*relationaldb.SQLStore, error) {
	return relationaldb.OpenSQL(ctx, "postgres", dialect, cfg, clockwork.NewRealClock())
}
