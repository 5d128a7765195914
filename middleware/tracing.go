package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hiq-lab/qhal"
	"github.com/hiq-lab/qhal/capability"
	"github.com/hiq-lab/qhal/job"
	"github.com/hiq-lab/qhal/result"
)

// tracerName is the instrumentation scope name for backend tracing.
const tracerName = "github.com/hiq-lab/qhal"

// Tracing returns a backend decorator that wraps each call in an
// OpenTelemetry span. If no TracerProvider is configured globally, the
// default noop tracer is used and this decorator becomes a pass-through
// with zero overhead.
//
// Span attributes include: qhal.backend, qhal.job.id, qhal.shots. On
// error, the span status is set to codes.Error and qhal.error.kind
// carries the taxonomy kind.
func Tracing[C any](inner qhal.Backend[C]) qhal.Backend[C] {
	return TracingWithTracer(inner, otel.Tracer(tracerName))
}

// TracingWithTracer returns a tracing decorator using the provided
// tracer. This variant allows injecting a specific TracerProvider for
// testing or when multiple providers are in use.
func TracingWithTracer[C any](inner qhal.Backend[C], tracer trace.Tracer) qhal.Backend[C] {
	return &tracingBackend[C]{inner: inner, tracer: tracer}
}

type tracingBackend[C any] struct {
	inner  qhal.Backend[C]
	tracer trace.Tracer
}

func (b *tracingBackend[C]) Name() string { return b.inner.Name() }

func (b *tracingBackend[C]) Capabilities() capability.Capabilities {
	return b.inner.Capabilities()
}

func (b *tracingBackend[C]) Availability(ctx context.Context) (qhal.BackendAvailability, error) {
	ctx, span := b.start(ctx, "qhal.backend.availability")
	defer span.End()

	avail, err := b.inner.Availability(ctx)
	finish(span, err)
	return avail, err
}

func (b *tracingBackend[C]) Validate(ctx context.Context, circuit C) (qhal.ValidationResult, error) {
	ctx, span := b.start(ctx, "qhal.backend.validate")
	defer span.End()

	vr, err := b.inner.Validate(ctx, circuit)
	span.SetAttributes(attribute.Bool("qhal.valid", vr.IsValid))
	finish(span, err)
	return vr, err
}

func (b *tracingBackend[C]) Submit(ctx context.Context, circuit C, shots int) (job.ID, error) {
	ctx, span := b.start(ctx, "qhal.backend.submit",
		attribute.Int("qhal.shots", shots),
	)
	defer span.End()

	id, err := b.inner.Submit(ctx, circuit, shots)
	span.SetAttributes(attribute.String("qhal.job.id", id.String()))
	finish(span, err)
	return id, err
}

func (b *tracingBackend[C]) Status(ctx context.Context, id job.ID) (job.Status, error) {
	ctx, span := b.start(ctx, "qhal.backend.status",
		attribute.String("qhal.job.id", id.String()),
	)
	defer span.End()

	status, err := b.inner.Status(ctx, id)
	span.SetAttributes(attribute.String("qhal.job.status", string(status)))
	finish(span, err)
	return status, err
}

func (b *tracingBackend[C]) Result(ctx context.Context, id job.ID) (*result.ExecutionResult, error) {
	ctx, span := b.start(ctx, "qhal.backend.result",
		attribute.String("qhal.job.id", id.String()),
	)
	defer span.End()

	res, err := b.inner.Result(ctx, id)
	finish(span, err)
	return res, err
}

func (b *tracingBackend[C]) Cancel(ctx context.Context, id job.ID) error {
	ctx, span := b.start(ctx, "qhal.backend.cancel",
		attribute.String("qhal.job.id", id.String()),
	)
	defer span.End()

	err := b.inner.Cancel(ctx, id)
	finish(span, err)
	return err
}

func (b *tracingBackend[C]) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("qhal.backend", b.inner.Name()))
	return b.tracer.Start(ctx, name,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("qhal.error.kind", string(qhal.KindOf(err))))
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
