package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

const (
	testTraceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	testSpanID  = "00f067aa0ba902b7"
)

func TestParentContext(t *testing.T) {
	ctx := ParentContext(context.Background(), testTraceID, testSpanID)

	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		t.Fatal("expected a valid span context")
	}
	if sc.TraceID().String() != testTraceID {
		t.Errorf("TraceID = %s, want %s", sc.TraceID(), testTraceID)
	}
	if sc.SpanID().String() != testSpanID {
		t.Errorf("SpanID = %s, want %s", sc.SpanID(), testSpanID)
	}
	if !sc.IsRemote() {
		t.Error("expected the parent context to be marked remote")
	}
	if !sc.IsSampled() {
		t.Error("expected the parent context to be sampled")
	}
}

func TestParentContext_InvalidIDs(t *testing.T) {
	tests := []struct {
		name    string
		traceID string
		spanID  string
	}{
		{"empty trace id", "", testSpanID},
		{"empty span id", testTraceID, ""},
		{"non-hex trace id", "not-hex", testSpanID},
		{"short trace id", "abcd", testSpanID},
		{"short span id", testTraceID, "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := context.Background()
			ctx := ParentContext(base, tt.traceID, tt.spanID)
			if ctx != base {
				t.Error("expected the original context to be returned unchanged")
			}
		})
	}
}

func TestTraceIDs(t *testing.T) {
	traceID, spanID := TraceIDs(context.Background())
	if traceID != "" || spanID != "" {
		t.Errorf("expected empty IDs for a bare context, got %q/%q", traceID, spanID)
	}

	ctx := ParentContext(context.Background(), testTraceID, testSpanID)
	traceID, spanID = TraceIDs(ctx)
	if traceID != testTraceID {
		t.Errorf("TraceIDs trace = %s, want %s", traceID, testTraceID)
	}
	if spanID != testSpanID {
		t.Errorf("TraceIDs span = %s, want %s", spanID, testSpanID)
	}
}

func TestNewTracerProviderWithExporter(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := NewTracerProviderWithExporter("planforge-test", exporter, slog.Default())
	defer tp.Shutdown(context.Background())

	tracer := tp.Tracer("planforge-test")
	_, span := tracer.Start(context.Background(), "session.Solve")
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 exported span, got %d", len(spans))
	}
	if spans[0].Name != "session.Solve" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "session.Solve")
	}

	// Resource must carry the service name
	found := false
	for _, attr := range spans[0].Resource.Attributes() {
		if string(attr.Key) == "service.name" && attr.Value.AsString() == "planforge-test" {
			found = true
		}
	}
	if !found {
		t.Error("expected service.name resource attribute")
	}
}

func TestNewTracerProvider_LinksParent(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := NewTracerProviderWithExporter("planforge-test", exporter, slog.Default())
	defer tp.Shutdown(context.Background())

	ctx := ParentContext(context.Background(), testTraceID, testSpanID)
	_, span := tp.Tracer("planforge-test").Start(ctx, "worker.Solve")
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 exported span, got %d", len(spans))
	}
	if got := spans[0].SpanContext.TraceID().String(); got != testTraceID {
		t.Errorf("child trace ID = %s, want submitter trace %s", got, testTraceID)
	}
	if got := spans[0].Parent.SpanID().String(); got != testSpanID {
		t.Errorf("parent span ID = %s, want %s", got, testSpanID)
	}
}

func TestLogSpanExporter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	exporter := NewLogSpanExporter(logger)

	stubs := tracetest.SpanStubs{
		{Name: "session.Solve"},
		{Name: "worker.Solve", Status: sdktrace.Status{Code: codes.Error, Description: "boom"}},
	}
	if err := exporter.ExportSpans(context.Background(), stubs.Snapshots()); err != nil {
		t.Fatalf("ExportSpans: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "session.Solve") {
		t.Error("expected the completed span to be logged")
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "boom") {
		t.Error("expected the failed span to be logged at warn level with its message")
	}

	// Exports after shutdown are dropped
	buf.Reset()
	if err := exporter.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := exporter.ExportSpans(context.Background(), stubs.Snapshots()); err != nil {
		t.Fatalf("ExportSpans after shutdown: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output after shutdown, got %q", buf.String())
	}
}
