// Package tracing wires OpenTelemetry with a stdout exporter. When disabled
// every span is a no-op and the incoming context is returned as is.
package tracing

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "creditreport"

type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Output         io.Writer
}

var (
	mu       sync.RWMutex
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
)

// Init installs the global tracer provider. Calling it with Enabled=false
// resets tracing to no-op.
func Init(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if !cfg.Enabled {
		tracer, provider = nil, nil
		return nil
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(out))
	if err != nil {
		return err
	}

	name := cfg.ServiceName
	if name == "" {
		name = instrumentationName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(name),
		semconv.ServiceVersion(cfg.ServiceVersion),
	)

	provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	tracer = provider.Tracer(instrumentationName)
	return nil
}

// Shutdown flushes pending spans.
func Shutdown(ctx context.Context) error {
	mu.RLock()
	p := provider
	mu.RUnlock()
	if p != nil {
		return p.Shutdown(ctx)
	}
	return nil
}

func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return tracer != nil
}

// StartSpan starts a child span. The returned span is always owned by the
// caller, who must End it; with tracing disabled it is a detached no-op.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	mu.RLock()
	t := tracer
	mu.RUnlock()
	if t == nil {
		return ctx, noop.Span{}
	}
	return t.Start(ctx, name, trace.WithAttributes(attrs...))
}

// TraceFields returns the ids of the active span, if any.
func TraceFields(ctx context.Context) (traceID, spanID string, ok bool) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
