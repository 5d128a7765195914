package backoff

import (
	"context"
	"time"

	qhal "github.com/hiq-lab/qhal"
)

// Retry runs fn up to maxAttempts times, sleeping per the strategy
// between attempts. It retries only transient failures (backend
// unavailable, timeout); permanent and terminal kinds surface
// immediately — resubmitting an invalid circuit or re-waiting a
// cancelled job will never succeed.
//
// A nil strategy uses DefaultStrategy. The last error is returned when
// attempts are exhausted. Context cancellation is honored between
// attempts and should also be honored inside fn.
func Retry(ctx context.Context, strategy Strategy, maxAttempts int, fn func(ctx context.Context) error) error {
	if strategy == nil {
		strategy = DefaultStrategy()
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !qhal.IsTransient(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		t := time.NewTimer(strategy.Delay(attempt))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return err
}
