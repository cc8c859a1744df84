package relationaldb

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Retry runs op until it succeeds, returns a non-retryable error or the
// attempts configured in cfg are used up. The delay doubles after each
// attempt up to RetryMaxDelay.
func Retry(ctx context.Context, clock clockwork.Clock, cfg *Config, op func() error) error {
	delay := cfg.RetryDelay
	var err error
	for attempt := 0; ; attempt++ {
		if err = op(); err == nil || !IsRetryable(err) || attempt >= cfg.MaxRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(delay):
		}
		delay *= 2
		if delay > cfg.RetryMaxDelay {
			delay = cfg.RetryMaxDelay
		}
		if delay <= 0 {
			delay = time.Millisecond
		}
	}
}
