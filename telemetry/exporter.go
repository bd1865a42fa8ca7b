package telemetry

import (
	"context"
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogSpanExporter implements the OpenTelemetry SpanExporter interface and
// writes completed spans to a structured logger.
//
// The exporter never fails the trace pipeline: it always returns nil from
// ExportSpans, and drops spans silently after Shutdown.
type LogSpanExporter struct {
	logger  *slog.Logger
	stopped atomic.Bool
}

// NewLogSpanExporter creates an exporter that logs spans via the given logger.
func NewLogSpanExporter(logger *slog.Logger) *LogSpanExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSpanExporter{logger: logger}
}

// ExportSpans logs a batch of completed spans.
//
// Called automatically by the OpenTelemetry SDK when spans complete. Each
// span is logged at debug level with its identifiers, timing, and
// attributes; spans that ended with an error status are logged at warn
// level instead.
func (e *LogSpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	if e.stopped.Load() {
		return nil
	}

	for _, span := range spans {
		sc := span.SpanContext()

		attrs := []any{
			"trace_id", sc.TraceID().String(),
			"span_id", sc.SpanID().String(),
			"duration", span.EndTime().Sub(span.StartTime()),
		}
		if span.Parent().IsValid() {
			attrs = append(attrs, "parent_span_id", span.Parent().SpanID().String())
		}
		for _, attr := range span.Attributes() {
			attrs = append(attrs, string(attr.Key), attr.Value.AsInterface())
		}

		status := span.Status()
		if status.Code == codes.Error {
			attrs = append(attrs, "status", "error", "status_message", status.Description)
			e.logger.Warn("span "+span.Name(), attrs...)
			continue
		}

		e.logger.Debug("span "+span.Name(), attrs...)
	}

	return nil
}

// Shutdown stops the exporter. Subsequent exports are dropped.
func (e *LogSpanExporter) Shutdown(ctx context.Context) error {
	e.stopped.Store(true)
	return nil
}
