package engine

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/planforge-ai/sdk/problem"
	"github.com/planforge-ai/sdk/types"
)

// instrumentationName identifies this package to OpenTelemetry providers.
const instrumentationName = "github.com/planforge-ai/sdk/engine"

// Instrumented wraps an Engine with OpenTelemetry spans and counters around
// its execution operations. Capability queries and Destroy are forwarded
// without instrumentation.
//
// Instrumented uses the globally registered tracer and meter providers, so it
// is a no-op (beyond negligible overhead) when none are configured.
type Instrumented struct {
	inner       Engine
	tracer      trace.Tracer
	solves      metric.Int64Counter
	validations metric.Int64Counter
}

// Instrument wraps the engine with tracing and metrics.
func Instrument(e Engine) (*Instrumented, error) {
	meter := otel.Meter(instrumentationName)

	solves, err := meter.Int64Counter("planforge.engine.solves",
		metric.WithDescription("Number of solve calls, by engine and status"))
	if err != nil {
		return nil, err
	}

	validations, err := meter.Int64Counter("planforge.engine.validations",
		metric.WithDescription("Number of validate calls, by engine and outcome"))
	if err != nil {
		return nil, err
	}

	return &Instrumented{
		inner:       e,
		tracer:      otel.Tracer(instrumentationName),
		solves:      solves,
		validations: validations,
	}, nil
}

// Name forwards to the wrapped engine.
func (i *Instrumented) Name() string { return i.inner.Name() }

// SupportedKind forwards to the wrapped engine.
func (i *Instrumented) SupportedKind() types.ProblemKind { return i.inner.SupportedKind() }

// Supports forwards to the wrapped engine.
func (i *Instrumented) Supports(kind types.ProblemKind) bool { return i.inner.Supports(kind) }

// SupportsPlan forwards to the wrapped engine.
func (i *Instrumented) SupportsPlan(kind types.PlanKind) bool { return i.inner.SupportsPlan(kind) }

// Credits forwards to the wrapped engine.
func (i *Instrumented) Credits() *Credits { return i.inner.Credits() }

// Destroy forwards to the wrapped engine.
func (i *Instrumented) Destroy(ctx context.Context) error { return i.inner.Destroy(ctx) }

// Solve records a span and counter around the wrapped engine's Solve call.
// The request is forwarded unchanged.
func (i *Instrumented) Solve(ctx context.Context, req SolveRequest) (*PlanGenerationResult, error) {
	ctx, span := i.tracer.Start(ctx, "engine.Solve",
		trace.WithAttributes(
			attribute.String("engine.name", i.inner.Name()),
			attribute.String("problem.name", problemName(req.Problem)),
		))
	defer span.End()

	res, err := i.inner.Solve(ctx, req)

	status := string(StatusInternalError)
	if res != nil {
		status = string(res.Status)
	}
	i.solves.Add(ctx, 1, metric.WithAttributes(
		attribute.String("engine.name", i.inner.Name()),
		attribute.String("status", status),
	))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}

	span.SetAttributes(attribute.String("result.status", status))
	return res, nil
}

// Validate records a span and counter around the wrapped engine's Validate
// call. Arguments are forwarded unchanged.
func (i *Instrumented) Validate(ctx context.Context, prob *problem.Problem, plan *problem.Plan) (*ValidationResult, error) {
	ctx, span := i.tracer.Start(ctx, "engine.Validate",
		trace.WithAttributes(
			attribute.String("engine.name", i.inner.Name()),
			attribute.String("problem.name", problemName(prob)),
		))
	defer span.End()

	res, err := i.inner.Validate(ctx, prob, plan)

	outcome := string(ValidationUnknown)
	if res != nil {
		outcome = string(res.Outcome)
	}
	i.validations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("engine.name", i.inner.Name()),
		attribute.String("outcome", outcome),
	))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}

	span.SetAttributes(attribute.String("result.outcome", outcome))
	return res, nil
}

func problemName(p *problem.Problem) string {
	if p == nil {
		return ""
	}
	return p.Name
}
