package result

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/planforge-ai/sdk/engine"
)

// Criterion is a compiled CEL acceptance test over a solve result.
//
// Criteria let callers express domain-specific requirements beyond the
// generic quality rules, for example:
//
//	solved && makespan < 120.0
//	status == "solved_optimally"
//	actions <= 40 && metrics["expanded_states"] < 100000.0
//
// Expressions are compiled once at construction and evaluated against the
// following variables:
//
//	status   string              engine status value
//	solved   bool                whether the result carries a plan
//	engine   string              name of the engine that produced the result
//	actions  int                 number of actions in the plan (0 if none)
//	makespan double              plan makespan (0.0 if no plan)
//	metrics  map(string, double) engine-reported metrics
type Criterion struct {
	name string
	expr string
	prg  cel.Program
}

// criterionEnv builds the shared CEL environment declaring the result
// variables. Compilation failures here are programming errors.
var criterionEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("status", cel.StringType),
		cel.Variable("solved", cel.BoolType),
		cel.Variable("engine", cel.StringType),
		cel.Variable("actions", cel.IntType),
		cel.Variable("makespan", cel.DoubleType),
		cel.Variable("metrics", cel.MapType(cel.StringType, cel.DoubleType)),
	)
})

// NewCriterion compiles a CEL expression into a reusable criterion.
//
// The expression must evaluate to a boolean. Compilation errors (unknown
// variables, type mismatches, syntax errors) are reported immediately so
// misconfigured criteria fail at setup rather than mid-run.
func NewCriterion(name, expr string) (*Criterion, error) {
	env, err := criterionEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to build CEL environment: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("failed to compile criterion %q: %w", name, iss.Err())
	}

	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("criterion %q must evaluate to bool, got %s", name, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to build program for criterion %q: %w", name, err)
	}

	return &Criterion{name: name, expr: expr, prg: prg}, nil
}

// Name returns the criterion's identifier.
func (c *Criterion) Name() string { return c.name }

// Expression returns the criterion's source expression.
func (c *Criterion) Expression() string { return c.expr }

// Eval evaluates the criterion against a solve result.
func (c *Criterion) Eval(res *engine.PlanGenerationResult) (bool, error) {
	vars := map[string]any{
		"status":   "",
		"solved":   false,
		"engine":   "",
		"actions":  0,
		"makespan": 0.0,
		"metrics":  map[string]float64{},
	}

	if res != nil {
		vars["status"] = string(res.Status)
		vars["solved"] = res.Solved()
		vars["engine"] = res.EngineName
		if res.Plan != nil {
			vars["actions"] = len(res.Plan.Actions)
			vars["makespan"] = res.Plan.Makespan()
		}
		if res.Metrics != nil {
			vars["metrics"] = res.Metrics
		}
	}

	out, _, err := c.prg.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate criterion %q: %w", c.name, err)
	}

	met, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("criterion %q produced non-boolean value %v", c.name, out.Value())
	}

	return met, nil
}

// CriterionOutcome records the evaluation of one criterion.
type CriterionOutcome struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
	Met        bool   `json:"met"`
	Err        string `json:"error,omitempty"`
}

// EvalAll evaluates every criterion against the result.
//
// Evaluation errors do not stop the run; they are recorded per criterion and
// count as unmet. The second return value reports whether all criteria were
// met without errors.
func EvalAll(criteria []*Criterion, res *engine.PlanGenerationResult) ([]CriterionOutcome, bool) {
	outcomes := make([]CriterionOutcome, 0, len(criteria))
	allMet := true

	for _, c := range criteria {
		outcome := CriterionOutcome{Name: c.name, Expression: c.expr}
		met, err := c.Eval(res)
		if err != nil {
			outcome.Err = err.Error()
			allMet = false
		} else {
			outcome.Met = met
			if !met {
				allMet = false
			}
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, allMet
}
