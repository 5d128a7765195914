package middleware_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/hiq-lab/qhal"
	"github.com/hiq-lab/qhal/job"
	"github.com/hiq-lab/qhal/middleware"
)

func setupTestTracer() (*tracetest.SpanRecorder, trace.Tracer) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	tracer := tp.Tracer("test")
	return sr, tracer
}

func attrValue(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing_CreatesSpan(t *testing.T) {
	sr, tracer := setupTestTracer()
	b := middleware.TracingWithTracer[string](newFakeBackend(), tracer)

	if _, err := b.Submit(context.Background(), "circuit", 100); err != nil {
		t.Fatalf("submit: %v", err)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != "qhal.backend.submit" {
		t.Fatalf("expected span name qhal.backend.submit, got %s", span.Name())
	}
	if span.Status().Code != codes.Ok {
		t.Fatalf("expected Ok status, got %v", span.Status())
	}

	if v, ok := attrValue(span, "qhal.backend"); !ok || v.AsString() != "fake" {
		t.Fatalf("expected qhal.backend=fake, got %v", v)
	}
	if v, ok := attrValue(span, "qhal.shots"); !ok || v.AsInt64() != 100 {
		t.Fatalf("expected qhal.shots=100, got %v", v)
	}
	if v, ok := attrValue(span, "qhal.job.id"); !ok || v.AsString() != "qjob_fake_1" {
		t.Fatalf("expected qhal.job.id=qjob_fake_1, got %v", v)
	}
}

func TestTracing_ErrorSetsStatusAndKind(t *testing.T) {
	sr, tracer := setupTestTracer()
	fake := newFakeBackend()
	fake.err = qhal.JobNotFound(job.ID("qjob_missing"))
	b := middleware.TracingWithTracer[string](fake, tracer)

	if _, err := b.Result(context.Background(), job.ID("qjob_missing")); err == nil {
		t.Fatal("expected error")
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Status().Code != codes.Error {
		t.Fatalf("expected Error status, got %v", span.Status())
	}
	if v, ok := attrValue(span, "qhal.error.kind"); !ok || v.AsString() != string(qhal.KindJobNotFound) {
		t.Fatalf("expected qhal.error.kind=job_not_found, got %v", v)
	}
	if len(span.Events()) == 0 {
		t.Fatal("expected a recorded error event")
	}
}

func TestTracing_StatusSpanCarriesJobStatus(t *testing.T) {
	sr, tracer := setupTestTracer()
	fake := newFakeBackend()
	fake.status = job.StatusRunning
	b := middleware.TracingWithTracer[string](fake, tracer)

	if _, err := b.Status(context.Background(), job.ID("qjob_x")); err != nil {
		t.Fatalf("status: %v", err)
	}

	span := sr.Ended()[0]
	if v, ok := attrValue(span, "qhal.job.status"); !ok || v.AsString() != string(job.StatusRunning) {
		t.Fatalf("expected qhal.job.status=running, got %v", v)
	}
}
