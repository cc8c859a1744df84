package relationaldb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"valid", func(c *Config) {}, nil},
		{"bad driver", func(c *Config) { c.Driver = "mysql" }, ErrInvalidDriver},
		{"missing dsn", func(c *Config) { c.DSN = "" }, ErrMissingDSN},
		{"negative conns", func(c *Config) { c.MaxOpenConns = -1 }, ErrInvalidMaxOpenConns},
		{"zero timeout", func(c *Config) { c.DefaultTimeout = 0 }, ErrInvalidTimeout},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }, ErrInvalidMaxRetries},
		{"negative delay", func(c *Config) { c.RetryDelay = -1 }, ErrInvalidRetryDelay},
		{"max below delay", func(c *Config) { c.RetryMaxDelay = c.RetryDelay - 1 }, ErrInvalidRetryMaxDelay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := SQLiteConfig("history.db")
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestPostgresConfig(t *testing.T) {
	cfg := PostgresConfig("postgres://localhost/history")
	assert.Equal(t, "postgres", cfg.Driver)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	require.NoError(t, cfg.Validate())
}

func TestDatabaseError(t *testing.T) {
	cause := errors.New("socket closed")
	err := NewConnectionError("ping", "failed to connect", cause)

	assert.Equal(t, "ping: failed to connect (caused by: socket closed)", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsRetryable(err))
	assert.False(t, IsRetryable(NewQueryError("by_hash", "bad query", nil)))
	assert.False(t, IsRetryable(cause))
	assert.Equal(t, "schema", NewSchemaError("init", "x", nil).Type.String())
}

func TestRetry_StopsOnSuccess(t *testing.T) {
	cfg := NewConfig()
	clock := clockwork.NewFakeClock()

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- Retry(context.Background(), clock, cfg, func() error {
			calls++
			if calls < 3 {
				return NewConnectionError("ping", "down", nil)
			}
			return nil
		})
	}()

	// First wait is RetryDelay, second is twice that.
	require.NoError(t, clock.BlockUntilContext(context.Background(), 1))
	clock.Advance(cfg.RetryDelay)
	require.NoError(t, clock.BlockUntilContext(context.Background(), 1))
	clock.Advance(2 * cfg.RetryDelay)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("retry did not finish")
	}
	assert.Equal(t, 3, calls)
}

func TestRetry_NonRetryableReturnsImmediately(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), clockwork.NewFakeClock(), NewConfig(), func() error {
		calls++
		return NewQueryError("record", "constraint", nil)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_GivesUp(t *testing.T) {
	cfg := NewConfig()
	cfg.MaxRetries = 0
	err := Retry(context.Background(), clockwork.NewFakeClock(), cfg, func() error {
		return NewConnectionError("ping", "down", nil)
	})
	assert.True(t, IsRetryable(err))
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, clockwork.NewFakeClock(), NewConfig(), func() error {
		return NewConnectionError("ping", "down", nil)
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBind(t *testing.T) {
	s := &SQLStore{dialect: Dialect{Placeholder: func(n int) string { return "$" + string(rune('0'+n)) }}}
	assert.Equal(t, "a = $1 AND b = $2", s.bind("a = ? AND b = ?"))

	plain := &SQLStore{}
	assert.Equal(t, "a = ?", plain.bind("a = ?"))
}
