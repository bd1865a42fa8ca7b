package nextflap

import (
	"context"

	"github.com/planforge-ai/sdk/engine"
	"github.com/planforge-ai/sdk/problem"
	"github.com/planforge-ai/sdk/types"
)

// Impl is the surface of the external NextFLAP implementation the adapter
// forwards to. The SDK ships NativeImpl, which wraps the natively built
// planner binary; tests substitute doubles.
type Impl interface {
	// Solve runs the planner on the request's problem.
	Solve(ctx context.Context, req engine.SolveRequest) (*engine.PlanGenerationResult, error)

	// Validate checks a plan against a problem.
	Validate(ctx context.Context, prob *problem.Problem, plan *problem.Plan) (*engine.ValidationResult, error)

	// SupportedKind returns the modeling features the implementation handles.
	SupportedKind() types.ProblemKind

	// SupportsPlan reports whether plans of the given kind can be validated.
	SupportsPlan(kind types.PlanKind) bool

	// Credits returns the implementation's attribution metadata.
	Credits() *engine.Credits

	// Destroy releases the implementation's resources.
	Destroy(ctx context.Context) error
}

// Factory resolves and constructs an external implementation. The options map
// is the adapter's free-form configuration, forwarded verbatim; a factory must
// return a *DependencyError when the implementation is not installed.
type Factory func(options map[string]any) (Impl, error)

// DefaultFactory is the resolver used when a planner or package-level
// capability query is not given an explicit factory. It locates the native
// NextFLAP binary on the host.
//
// Replacing DefaultFactory affects every subsequent resolution; this is
// intended for tests.
var DefaultFactory Factory = func(options map[string]any) (Impl, error) {
	return NewNativeImpl(options)
}
