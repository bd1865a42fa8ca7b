package engine

import "github.com/planforge-ai/sdk/problem"

// Status classifies the outcome of a solve call.
type Status string

const (
	// StatusSolvedSatisficing indicates a valid plan was found without an
	// optimality guarantee.
	StatusSolvedSatisficing Status = "solved_satisficing"

	// StatusSolvedOptimally indicates a provably optimal plan was found.
	StatusSolvedOptimally Status = "solved_optimally"

	// StatusUnsolvableProven indicates the engine proved no plan exists.
	StatusUnsolvableProven Status = "unsolvable_proven"

	// StatusUnsolvableIncompletely indicates the engine found no plan but
	// cannot prove unsolvability.
	StatusUnsolvableIncompletely Status = "unsolvable_incompletely"

	// StatusTimeout indicates the solve hit its wall-clock budget.
	StatusTimeout Status = "timeout"

	// StatusMemout indicates the engine exhausted its memory budget.
	StatusMemout Status = "memout"

	// StatusInternalError indicates the engine failed internally.
	StatusInternalError Status = "internal_error"

	// StatusUnsupportedProblem indicates the problem uses features outside
	// the engine's supported kind.
	StatusUnsupportedProblem Status = "unsupported_problem"

	// StatusIntermediate marks a result delivered through the solve callback
	// before the final result is available.
	StatusIntermediate Status = "intermediate"
)

// IsValid reports whether the status is one of the recognized values.
func (s Status) IsValid() bool {
	switch s {
	case StatusSolvedSatisficing, StatusSolvedOptimally,
		StatusUnsolvableProven, StatusUnsolvableIncompletely,
		StatusTimeout, StatusMemout, StatusInternalError,
		StatusUnsupportedProblem, StatusIntermediate:
		return true
	}
	return false
}

// PlanGenerationResult is the outcome of a solve call.
type PlanGenerationResult struct {
	// Status classifies the outcome.
	Status Status `json:"status"`

	// Plan is the solution, if one was found. Nil otherwise.
	Plan *problem.Plan `json:"plan,omitempty"`

	// EngineName identifies the engine that produced the result.
	EngineName string `json:"engine_name"`

	// Metrics holds engine-reported numeric metrics (e.g., "makespan",
	// "expanded_states", "solve_seconds").
	Metrics map[string]float64 `json:"metrics,omitempty"`

	// LogMessages holds engine-native log lines captured during the solve.
	LogMessages []string `json:"log_messages,omitempty"`
}

// Solved reports whether the result carries a plan.
func (r *PlanGenerationResult) Solved() bool {
	return r != nil &&
		(r.Status == StatusSolvedSatisficing || r.Status == StatusSolvedOptimally) &&
		r.Plan != nil
}

// ValidationOutcome classifies the outcome of a validate call.
type ValidationOutcome string

const (
	// ValidationValid indicates the plan satisfies the problem's constraints.
	ValidationValid ValidationOutcome = "valid"

	// ValidationInvalid indicates the plan violates the problem's constraints.
	ValidationInvalid ValidationOutcome = "invalid"

	// ValidationUnknown indicates the engine could not decide.
	ValidationUnknown ValidationOutcome = "unknown"
)

// ValidationResult is the outcome of a validate call.
type ValidationResult struct {
	// Outcome classifies the validation result.
	Outcome ValidationOutcome `json:"outcome"`

	// Reason explains an invalid or unknown outcome.
	Reason string `json:"reason,omitempty"`

	// EngineName identifies the engine that produced the result.
	EngineName string `json:"engine_name"`
}

// IsValid reports whether the plan was judged valid.
func (r *ValidationResult) IsValid() bool {
	return r != nil && r.Outcome == ValidationValid
}
