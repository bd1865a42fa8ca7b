package problem

import "github.com/planforge-ai/sdk/types"

// Problem describes a planning problem: actions, state variables, and goals.
//
// The Domain and Instance payloads are engine-native text (typically PDDL for
// temporal/numeric planners). The SDK treats them as opaque; only the Kind is
// inspected, to decide whether an engine can handle the problem.
type Problem struct {
	// Name is a human-readable identifier for the problem.
	Name string `json:"name"`

	// Kind declares the modeling features this problem uses.
	Kind types.ProblemKind `json:"kind"`

	// Domain is the engine-native domain description.
	Domain string `json:"domain"`

	// Instance is the engine-native problem instance description.
	Instance string `json:"instance"`

	// Metadata stores additional caller-defined information.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// New creates a Problem with the given name and kind.
func New(name string, kind types.ProblemKind) *Problem {
	return &Problem{
		Name: name,
		Kind: kind,
	}
}

// WithDomain sets the engine-native domain description and returns the problem.
func (p *Problem) WithDomain(domain string) *Problem {
	p.Domain = domain
	return p
}

// WithInstance sets the engine-native instance description and returns the problem.
func (p *Problem) WithInstance(instance string) *Problem {
	p.Instance = instance
	return p
}
