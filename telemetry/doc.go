// Package telemetry provides OpenTelemetry wiring for PlanForge components.
//
// It constructs TracerProviders backed by a slog span exporter, so solve
// spans are visible in structured logs without an external collector, and
// offers helpers for propagating trace context across the queue boundary:
// submitters stamp SolveJobs with their trace and span IDs, and workers use
// ParentContext to link solve spans back to the submitting trace.
//
// Typical worker setup:
//
//	tp := telemetry.NewTracerProvider("planforge-worker", logger)
//	defer tp.Shutdown(ctx)
//
//	tracer := tp.Tracer("planforge-worker")
//	ctx = telemetry.ParentContext(ctx, job.TraceID, job.SpanID)
//	ctx, span := tracer.Start(ctx, "worker.Solve")
//	defer span.End()
package telemetry
