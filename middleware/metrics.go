package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hiq-lab/qhal"
	"github.com/hiq-lab/qhal/capability"
	"github.com/hiq-lab/qhal/job"
	"github.com/hiq-lab/qhal/result"
)

// meterName is the instrumentation scope name for backend metrics.
const meterName = "github.com/hiq-lab/qhal"

// Metrics returns a backend decorator that records per-call metrics
// using the global OTel MeterProvider. If no MeterProvider is
// configured, noop instruments are used and this decorator becomes a
// pass-through.
//
// Instruments:
//   - qhal.backend.duration (Float64Histogram): call time in seconds,
//     with attributes: backend, op, status ("ok" or "error")
//   - qhal.backend.calls (Int64Counter): total calls, with attributes:
//     backend, op, status, and kind (taxonomy kind, errors only)
func Metrics[C any](inner qhal.Backend[C]) qhal.Backend[C] {
	return MetricsWithMeter(inner, otel.Meter(meterName))
}

// MetricsWithMeter returns a metrics decorator using the provided
// meter. This variant allows injecting a specific MeterProvider for
// testing.
func MetricsWithMeter[C any](inner qhal.Backend[C], meter metric.Meter) qhal.Backend[C] {
	// Create instruments once at construction time. OTel instruments
	// are safe for concurrent use. On error, the API returns noop
	// instruments so the decorator degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"qhal.backend.duration",
		metric.WithDescription("Duration of backend calls in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	calls, cErr := meter.Int64Counter(
		"qhal.backend.calls",
		metric.WithDescription("Total number of backend calls"),
		metric.WithUnit("{call}"),
	)
	_ = cErr // noop fallback guaranteed by OTel API contract

	return &metricsBackend[C]{
		inner:    inner,
		duration: duration,
		calls:    calls,
	}
}

type metricsBackend[C any] struct {
	inner    qhal.Backend[C]
	duration metric.Float64Histogram
	calls    metric.Int64Counter
}

func (b *metricsBackend[C]) Name() string { return b.inner.Name() }

func (b *metricsBackend[C]) Capabilities() capability.Capabilities {
	return b.inner.Capabilities()
}

func (b *metricsBackend[C]) Availability(ctx context.Context) (qhal.BackendAvailability, error) {
	start := time.Now()
	avail, err := b.inner.Availability(ctx)
	b.record(ctx, "availability", start, err)
	return avail, err
}

func (b *metricsBackend[C]) Validate(ctx context.Context, circuit C) (qhal.ValidationResult, error) {
	start := time.Now()
	vr, err := b.inner.Validate(ctx, circuit)
	b.record(ctx, "validate", start, err)
	return vr, err
}

func (b *metricsBackend[C]) Submit(ctx context.Context, circuit C, shots int) (job.ID, error) {
	start := time.Now()
	id, err := b.inner.Submit(ctx, circuit, shots)
	b.record(ctx, "submit", start, err)
	return id, err
}

func (b *metricsBackend[C]) Status(ctx context.Context, id job.ID) (job.Status, error) {
	start := time.Now()
	status, err := b.inner.Status(ctx, id)
	b.record(ctx, "status", start, err)
	return status, err
}

func (b *metricsBackend[C]) Result(ctx context.Context, id job.ID) (*result.ExecutionResult, error) {
	start := time.Now()
	res, err := b.inner.Result(ctx, id)
	b.record(ctx, "result", start, err)
	return res, err
}

func (b *metricsBackend[C]) Cancel(ctx context.Context, id job.ID) error {
	start := time.Now()
	err := b.inner.Cancel(ctx, id)
	b.record(ctx, "cancel", start, err)
	return err
}

func (b *metricsBackend[C]) record(ctx context.Context, op string, start time.Time, err error) {
	elapsed := time.Since(start).Seconds()

	attrs := []attribute.KeyValue{
		attribute.String("backend", b.inner.Name()),
		attribute.String("op", op),
	}
	if err != nil {
		attrs = append(attrs,
			attribute.String("status", "error"),
			attribute.String("kind", string(qhal.KindOf(err))),
		)
	} else {
		attrs = append(attrs, attribute.String("status", "ok"))
	}

	set := metric.WithAttributes(attrs...)
	b.duration.Record(ctx, elapsed, set)
	b.calls.Add(ctx, 1, set)
}
