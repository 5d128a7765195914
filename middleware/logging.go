package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/hiq-lab/qhal"
	"github.com/hiq-lab/qhal/capability"
	"github.com/hiq-lab/qhal/job"
	"github.com/hiq-lab/qhal/result"
)

// Logging returns a backend decorator that logs every call with its
// duration and outcome. Status and Result are logged at Debug because
// polling loops call them hundreds of times; everything else logs at
// Info, and all failures log at Error with the error kind.
func Logging[C any](inner qhal.Backend[C], logger *slog.Logger) qhal.Backend[C] {
	if logger == nil {
		logger = slog.Default()
	}
	return &loggingBackend[C]{inner: inner, logger: logger}
}

type loggingBackend[C any] struct {
	inner  qhal.Backend[C]
	logger *slog.Logger
}

func (b *loggingBackend[C]) Name() string { return b.inner.Name() }

func (b *loggingBackend[C]) Capabilities() capability.Capabilities {
	return b.inner.Capabilities()
}

func (b *loggingBackend[C]) Availability(ctx context.Context) (qhal.BackendAvailability, error) {
	start := time.Now()
	avail, err := b.inner.Availability(ctx)
	b.log(slog.LevelInfo, "availability", start, err)
	return avail, err
}

func (b *loggingBackend[C]) Validate(ctx context.Context, circuit C) (qhal.ValidationResult, error) {
	start := time.Now()
	vr, err := b.inner.Validate(ctx, circuit)
	b.log(slog.LevelInfo, "validate", start, err,
		slog.Bool("valid", vr.IsValid),
	)
	return vr, err
}

func (b *loggingBackend[C]) Submit(ctx context.Context, circuit C, shots int) (job.ID, error) {
	start := time.Now()
	id, err := b.inner.Submit(ctx, circuit, shots)
	b.log(slog.LevelInfo, "submit", start, err,
		slog.String("job_id", id.String()),
		slog.Int("shots", shots),
	)
	return id, err
}

func (b *loggingBackend[C]) Status(ctx context.Context, id job.ID) (job.Status, error) {
	start := time.Now()
	status, err := b.inner.Status(ctx, id)
	b.log(slog.LevelDebug, "status", start, err,
		slog.String("job_id", id.String()),
		slog.String("job_status", string(status)),
	)
	return status, err
}

func (b *loggingBackend[C]) Result(ctx context.Context, id job.ID) (*result.ExecutionResult, error) {
	start := time.Now()
	res, err := b.inner.Result(ctx, id)
	b.log(slog.LevelDebug, "result", start, err,
		slog.String("job_id", id.String()),
	)
	return res, err
}

func (b *loggingBackend[C]) Cancel(ctx context.Context, id job.ID) error {
	start := time.Now()
	err := b.inner.Cancel(ctx, id)
	b.log(slog.LevelInfo, "cancel", start, err,
		slog.String("job_id", id.String()),
	)
	return err
}

func (b *loggingBackend[C]) log(level slog.Level, op string, start time.Time, err error, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+5)
	args = append(args,
		slog.String("backend", b.inner.Name()),
		slog.String("op", op),
		slog.Duration("elapsed", time.Since(start)),
	)
	for _, a := range attrs {
		args = append(args, a)
	}

	if err != nil {
		args = append(args,
			slog.String("kind", string(qhal.KindOf(err))),
			slog.String("error", err.Error()),
		)
		b.logger.Error("backend call failed", args...)
		return
	}
	b.logger.Log(context.Background(), level, "backend call", args...)
}
