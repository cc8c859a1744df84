package relationaldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
)

// Dialect captures the differences between SQL backends.
type Dialect struct {
	Name string
	// Placeholder returns the bind marker for the n-th argument (1 based).
	Placeholder func(n int) string
	Schema      []string
}

// SQLStore is a HistoryStore backed by database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	config  *Config

	mu     sync.RWMutex
	closed bool
}

// OpenSQL opens driverName with cfg, pings it with retries and creates the
// schema.
func OpenSQL(ctx context.Context, driverName string, dialect Dialect, cfg *Config, clock clockwork.Clock) (*SQLStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, NewConfigurationError("open", "invalid configuration", err)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, NewConnectionError("open", "failed to open database", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	err = Retry(ctx, clock, cfg, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, cfg.DefaultTimeout)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			return NewConnectionError("ping", ErrConnectionFailed.Error(), err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLStore{db: db, dialect: dialect, config: cfg}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) initSchema(ctx context.Context) error {
	for _, stmt := range s.dialect.Schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return NewSchemaError("init_schema", "failed to create schema", err)
		}
	}
	return nil
}

// Dialect returns the backend name.
func (s *SQLStore) Dialect() string {
	return s.dialect.Name
}

// bind rewrites '?' markers to the dialect placeholders.
func (s *SQLStore) bind(query string) string {
	if s.dialect.Placeholder == nil {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(s.dialect.Placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) check() error {
	if s.closed {
		return ErrDatabaseClosed
	}
	return nil
}

// Record inserts rec. A transaction keeps one row per attempt: a hash that
// failed and was later applied has a row for each index. Recording the
// same hash at the same index twice keeps the first row.
func (s *SQLStore) Record(ctx context.Context, rec *TxRecord) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.DefaultTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewConnectionError("record", "failed to begin transaction", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, s.bind(`SELECT COUNT(*) FROM transactions WHERE hash = ? AND seq = ?`), rec.Hash, int64(rec.Index)).Scan(&exists)
	if err != nil {
		return NewQueryError("record", "failed to check transaction", err)
	}
	if exists > 0 {
		return tx.Commit()
	}

	applied := 0
	if rec.Applied {
		applied = 1
	}
	_, err = tx.ExecContext(ctx, s.bind(`INSERT INTO transactions
		(hash, seq, account, tx_type, result, applied, subject, close_time, tx_json, meta_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		rec.Hash, int64(rec.Index), rec.Account, rec.Type, rec.Result, applied,
		rec.Subject, rec.CloseTime, rec.TxJSON, rec.MetaJSON)
	if err != nil {
		return NewQueryError("record", "failed to insert transaction", err)
	}
	if err := tx.Commit(); err != nil {
		return NewQueryError("record", "failed to commit", err)
	}
	return nil
}

const selectColumns = `SELECT hash, seq, account, tx_type, result, applied, subject, close_time, tx_json, meta_json FROM transactions`

// ByHash returns the applied record for hash, or its latest attempt when it
// was never applied. It returns ErrTransactionNotFound for an unknown hash.
func (s *SQLStore) ByHash(ctx context.Context, hash string) (*TxRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.DefaultTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, s.bind(selectColumns+` WHERE hash = ? ORDER BY applied DESC, seq DESC, id DESC LIMIT 1`), hash)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, NewQueryError("by_hash", "failed to read transaction", err)
	}
	return rec, nil
}

// ByAccount returns the transactions signed by account.
func (s *SQLStore) ByAccount(ctx context.Context, account string, limit int) ([]TxRecord, error) {
	return s.list(ctx, "by_account", "account", account, limit)
}

// BySubject returns the transactions that touched the object subject.
func (s *SQLStore) BySubject(ctx context.Context, subject string, limit int) ([]TxRecord, error) {
	return s.list(ctx, "by_subject", "subject", subject, limit)
}

func (s *SQLStore) list(ctx context.Context, op, column, value string, limit int) ([]TxRecord, error) {
	if limit <= 0 || limit > MaxLimit {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.DefaultTimeout)
	defer cancel()

	query := fmt.Sprintf(`%s WHERE %s = ? ORDER BY seq DESC, id DESC LIMIT ?`, selectColumns, column)
	rows, err := s.db.QueryContext(ctx, s.bind(query), value, limit)
	if err != nil {
		return nil, NewQueryError(op, "failed to query transactions", err)
	}
	defer rows.Close()

	var out []TxRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, NewQueryError(op, "failed to scan transaction", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, NewQueryError(op, "failed to iterate transactions", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*TxRecord, error) {
	var (
		rec     TxRecord
		seq     int64
		applied int
	)
	err := row.Scan(&rec.Hash, &seq, &rec.Account, &rec.Type, &rec.Result, &applied,
		&rec.Subject, &rec.CloseTime, &rec.TxJSON, &rec.MetaJSON)
	if err != nil {
		return nil, err
	}
	rec.Index = uint64(seq)
	rec.Applied = applied != 0
	return &rec, nil
}

// Close closes the database.
func (s *SQLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

var _ HistoryStore = (*SQLStore)(nil)

// DB exposes the underlying handle for maintenance statements.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}
