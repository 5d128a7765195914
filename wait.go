package qhal

import (
	"context"
	"time"

	"github.com/hiq-lab/qhal/job"
	"github.com/hiq-lab/qhal/result"
)

// Default wait policy: poll every 500ms, give up after 600 polls
// (about five minutes of non-terminal status).
const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultMaxPolls     = 600
)

// WaitOption configures Wait.
type WaitOption func(*waitConfig)

type waitConfig struct {
	pollInterval time.Duration
	maxPolls     int
}

// WithPollInterval overrides the interval between status polls.
// A zero interval polls without sleeping, which tests use to step
// through the loop on a simulated clock.
func WithPollInterval(d time.Duration) WaitOption {
	return func(c *waitConfig) { c.pollInterval = d }
}

// WithMaxPolls overrides the number of polls before giving up.
func WithMaxPolls(n int) WaitOption {
	return func(c *waitConfig) { c.maxPolls = n }
}

// Wait polls the backend until the job reaches a terminal state and
// returns its result. It is built purely from Status and Result, so it
// works against any backend; backends with push-based completion can
// offer their own waiting instead.
//
// Per poll: completed returns Result; failed and cancelled return the
// terminal KindJobFailed / KindJobCancelled errors — retrying Wait on
// the same job ID will never yield a different outcome. A job still
// queued or running after the poll bound fails with KindTimeout, which
// is transient: the job itself may still be progressing.
//
// Cancelling ctx aborts the wait at the next suspension point without
// cancelling the underlying job; call Cancel separately for that.
func Wait[C any](ctx context.Context, b Backend[C], id job.ID, opts ...WaitOption) (*result.ExecutionResult, error) {
	cfg := waitConfig{
		pollInterval: DefaultPollInterval,
		maxPolls:     DefaultMaxPolls,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	for i := 0; i < cfg.maxPolls; i++ {
		status, err := b.Status(ctx, id)
		if err != nil {
			return nil, err
		}

		switch status {
		case job.StatusCompleted:
			return b.Result(ctx, id)
		case job.StatusFailed:
			return nil, JobFailed(id, "job entered failed status")
		case job.StatusCancelled:
			return nil, JobCancelled(id)
		}

		if err := sleep(ctx, cfg.pollInterval); err != nil {
			return nil, err
		}
	}

	return nil, Timeout(id)
}

// sleep blocks for d or until ctx is cancelled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		// Still honor cancellation between polls.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
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
