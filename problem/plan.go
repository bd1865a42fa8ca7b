package problem

import (
	"fmt"
	"strings"

	"github.com/planforge-ai/sdk/types"
)

// ActionInstance is a single grounded action occurrence in a plan.
type ActionInstance struct {
	// Name is the action name (e.g., "move").
	Name string `json:"name"`

	// Parameters are the grounded action arguments (e.g., ["rover1", "wp3"]).
	Parameters []string `json:"parameters,omitempty"`

	// Start is the scheduled start time in seconds, for time-triggered plans.
	// Nil for sequential plans.
	Start *float64 `json:"start,omitempty"`

	// Duration is the action duration in seconds, for durative actions.
	// Nil for instantaneous actions.
	Duration *float64 `json:"duration,omitempty"`
}

// String renders the action in the conventional planner output form:
// "start: (name params...) [duration]".
func (a ActionInstance) String() string {
	var b strings.Builder
	if a.Start != nil {
		fmt.Fprintf(&b, "%.3f: ", *a.Start)
	}
	b.WriteString("(" + a.Name)
	for _, p := range a.Parameters {
		b.WriteString(" " + p)
	}
	b.WriteString(")")
	if a.Duration != nil {
		fmt.Fprintf(&b, " [%.3f]", *a.Duration)
	}
	return b.String()
}

// Plan is a solution to a planning problem: an ordered collection of action
// instances, possibly scheduled in time.
type Plan struct {
	// Kind identifies the plan structure.
	Kind types.PlanKind `json:"kind"`

	// Actions are the plan's action instances, in order.
	Actions []ActionInstance `json:"actions"`
}

// NewSequentialPlan creates a sequential plan from the given actions.
func NewSequentialPlan(actions ...ActionInstance) *Plan {
	return &Plan{Kind: types.PlanSequential, Actions: actions}
}

// NewTimeTriggeredPlan creates a time-triggered plan from the given actions.
func NewTimeTriggeredPlan(actions ...ActionInstance) *Plan {
	return &Plan{Kind: types.PlanTimeTriggered, Actions: actions}
}

// IsEmpty reports whether the plan contains no actions.
func (p *Plan) IsEmpty() bool {
	return p == nil || len(p.Actions) == 0
}

// Makespan returns the completion time of the latest-finishing action for
// time-triggered plans, or the action count for sequential plans.
func (p *Plan) Makespan() float64 {
	if p == nil {
		return 0
	}
	if p.Kind != types.PlanTimeTriggered {
		return float64(len(p.Actions))
	}
	var end float64
	for _, a := range p.Actions {
		t := 0.0
		if a.Start != nil {
			t = *a.Start
		}
		if a.Duration != nil {
			t += *a.Duration
		}
		if t > end {
			end = t
		}
	}
	return end
}

// String renders the plan one action per line.
func (p *Plan) String() string {
	if p.IsEmpty() {
		return ""
	}
	lines := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		lines[i] = a.String()
	}
	return strings.Join(lines, "\n")
}
