package telemetry

import (
	"context"
	"encoding/hex"
	"log/slog"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// NewTracerProvider creates a TracerProvider that exports completed spans
// through the structured logger.
//
// The provider uses a SimpleSpanProcessor for immediate export without
// batching, so spans appear in the log as soon as they complete. This keeps
// local development and single-process deployments observable without a
// collector; production deployments can substitute their own exporter via
// NewTracerProviderWithExporter.
//
// Parameters:
//   - serviceName: Value for the service.name resource attribute
//   - logger: Structured logger receiving exported spans
//
// Returns a configured TracerProvider ready for creating tracers.
func NewTracerProvider(serviceName string, logger *slog.Logger) *sdktrace.TracerProvider {
	return NewTracerProviderWithExporter(serviceName, NewLogSpanExporter(logger), logger)
}

// NewTracerProviderWithExporter creates a TracerProvider using the supplied
// span exporter.
func NewTracerProviderWithExporter(serviceName string, exporter sdktrace.SpanExporter, logger *slog.Logger) *sdktrace.TracerProvider {
	if logger == nil {
		logger = slog.Default()
	}

	// SimpleSpanProcessor exports each span as it completes (no batching)
	processor := sdktrace.NewSimpleSpanProcessor(exporter)

	// Create resource with service information
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		logger.Warn("failed to create resource, using default", "error", err)
		res = resource.Default()
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(processor),
		sdktrace.WithResource(res),
	)
}

// ParentContext creates a context with a parent SpanContext from hex-encoded
// traceID and spanID strings.
//
// This links spans started by a worker to the trace of the submitter that
// queued the job. SolveJobs carry the submitter's trace and span IDs; call
// this before starting the worker's root span.
//
// Parameters:
//   - ctx: The base context to extend
//   - traceID: The hex-encoded trace ID from the submitter
//   - spanID: The hex-encoded span ID of the submitting span
//
// Returns a context with the parent span context injected, or the original
// context if the IDs cannot be decoded.
func ParentContext(ctx context.Context, traceID, spanID string) context.Context {
	if traceID == "" || spanID == "" {
		return ctx
	}

	// Decode trace ID from hex string
	traceIDBytes, err := hex.DecodeString(traceID)
	if err != nil || len(traceIDBytes) != 16 {
		return ctx
	}

	// Decode span ID from hex string
	spanIDBytes, err := hex.DecodeString(spanID)
	if err != nil || len(spanIDBytes) != 8 {
		return ctx
	}

	var tid trace.TraceID
	copy(tid[:], traceIDBytes)

	var sid trace.SpanID
	copy(sid[:], spanIDBytes)

	parentSpanContext := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    tid,
		SpanID:     sid,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})

	return trace.ContextWithSpanContext(ctx, parentSpanContext)
}

// TraceIDs extracts the hex-encoded trace and span IDs from the current span
// in the context. Returns empty strings when the context carries no valid
// span. Use this to stamp SolveJobs before queuing them.
func TraceIDs(ctx context.Context) (traceID, spanID string) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", ""
	}
	return sc.TraceID().String(), sc.SpanID().String()
}
