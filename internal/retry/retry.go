// Package retry wraps an operation in a bounded number of attempts with a
// delay between them.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExhausted wraps the last error once every attempt has failed.
var ErrExhausted = errors.New("retries exhausted")

// DelayFunc returns how long to wait after the given failed attempt (1-based).
type DelayFunc func(attempt int) time.Duration

// Linear waits unit × attempt after each failure.
func Linear(unit time.Duration) DelayFunc {
	return func(attempt int) time.Duration {
		return unit * time.Duration(attempt)
	}
}

// Policy bounds an operation to Attempts tries.
type Policy struct {
	Attempts int
	Delay    DelayFunc

	// OnRetry is called after a failed attempt that will be retried.
	OnRetry func(attempt int, err error)
}

// Do runs fn until it succeeds, the attempts run out or ctx is done.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, lastErr)
		}
		if p.Delay == nil {
			continue
		}
		if err := sleep(ctx, p.Delay(attempt)); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
