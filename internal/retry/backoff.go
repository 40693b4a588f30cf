package retry

import (
	"context"
	"time"
)

// ExponentialBackoff returns delay based on attempt number.
// The delay doubles with each attempt: base * 2^attempt
func ExponentialBackoff(attempt int, base time.Duration) time.Duration {
	return base * (1 << attempt)
}

// CappedBackoff is ExponentialBackoff clamped to max.
func CappedBackoff(attempt int, base, max time.Duration) time.Duration {
	d := ExponentialBackoff(attempt, base)
	if max > 0 && d > max {
		return max
	}
	return d
}

// Do runs fn up to attempts times, sleeping a capped exponential backoff
// between failures. The last error is returned once attempts are exhausted.
// Context cancellation aborts the wait and returns ctx.Err().
func Do(ctx context.Context, attempts int, base, max time.Duration, fn func() error) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(CappedBackoff(attempt, base, max)):
		}
	}
	return err
}
