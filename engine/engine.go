package engine

import (
	"context"
	"io"
	"time"

	"github.com/planforge-ai/sdk/problem"
	"github.com/planforge-ai/sdk/types"
)

// ResultCallback receives intermediate results during solving. Ordering and
// cancellation semantics are defined entirely by the engine producing the
// results; the SDK passes the callback through unmodified.
type ResultCallback func(*PlanGenerationResult)

// SolveRequest carries a solve invocation's arguments. Every field is
// forwarded to the engine implementation unchanged; the SDK performs no
// transformation and makes no independent timing guarantee.
type SolveRequest struct {
	// Problem is the planning problem to solve. Owned by the caller; engines
	// must not mutate or retain it beyond the call.
	Problem *problem.Problem

	// Callback, if non-nil, is invoked for intermediate and final results.
	Callback ResultCallback

	// Timeout is the wall-clock budget for the solve. Zero means no limit.
	// Enforcement belongs to the engine; an engine may ignore it.
	Timeout time.Duration

	// Output, if non-nil, receives the engine's native log output.
	Output io.Writer
}

// OneshotPlanner is the capability contract for producing a single
// best-effort plan for a given problem.
type OneshotPlanner interface {
	// Solve blocks until the engine returns a result or ctx is cancelled.
	Solve(ctx context.Context, req SolveRequest) (*PlanGenerationResult, error)
}

// PlanValidator is the capability contract for checking that a proposed plan
// satisfies a problem's constraints.
type PlanValidator interface {
	// Validate blocks until the engine has checked the plan against the problem.
	Validate(ctx context.Context, prob *problem.Problem, plan *problem.Plan) (*ValidationResult, error)
}

// Engine is the interface planner engines expose to the framework.
//
// Capability queries (SupportedKind, Supports, SupportsPlan, Credits) must be
// callable on any constructed engine. Execution operations (Solve, Validate)
// require a ready engine. Destroy releases engine resources and must be safe
// to call more than once.
type Engine interface {
	// Name returns the engine's fixed identifier token (e.g., "nextflap").
	Name() string

	// SupportedKind returns the modeling features this engine can handle.
	SupportedKind() types.ProblemKind

	// Supports reports whether a problem of the given kind can be handled:
	// true iff kind is a subset of SupportedKind().
	Supports(kind types.ProblemKind) bool

	// SupportsPlan reports whether the engine can validate plans of the given kind.
	SupportsPlan(kind types.PlanKind) bool

	// Credits returns attribution metadata for the engine implementation,
	// or nil if none is declared.
	Credits() *Credits

	OneshotPlanner
	PlanValidator

	// Destroy releases the resources owned by the engine (native processes,
	// temporary files). It is idempotent; execution operations fail after it
	// returns.
	Destroy(ctx context.Context) error
}

// Supports is the shared capability check used by engine implementations:
// a problem kind is supported iff it is a subset of the supported kind.
// The empty kind is supported by every engine.
func Supports(supported, kind types.ProblemKind) bool {
	return kind.IsSubsetOf(supported)
}
