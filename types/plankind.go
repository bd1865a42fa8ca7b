package types

// PlanKind identifies the structure of a plan an engine produces or validates.
type PlanKind string

const (
	// PlanSequential is a totally ordered sequence of action instances.
	PlanSequential PlanKind = "sequential"

	// PlanTimeTriggered is a schedule of action instances with start times
	// and optional durations.
	PlanTimeTriggered PlanKind = "time_triggered"

	// PlanPartialOrder is a partially ordered set of action instances.
	PlanPartialOrder PlanKind = "partial_order"

	// PlanContingent is a tree of action instances branching on observations.
	PlanContingent PlanKind = "contingent"
)

// IsValid reports whether the plan kind is one of the recognized values.
func (k PlanKind) IsValid() bool {
	switch k {
	case PlanSequential, PlanTimeTriggered, PlanPartialOrder, PlanContingent:
		return true
	}
	return false
}

// String returns the plan kind as a string.
func (k PlanKind) String() string {
	return string(k)
}
