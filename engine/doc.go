// Package engine defines the plugin contract planner engines implement and
// the result types they produce.
//
// An Engine combines the two capability contracts of the framework: oneshot
// planning (produce a single best-effort plan for a problem) and plan
// validation (check that a proposed plan satisfies a problem's constraints).
// Capability negotiation uses types.ProblemKind subset comparison: an engine
// can handle a problem iff the problem's kind is a subset of the engine's
// supported kind.
//
// Engines are substitutable: anything satisfying the Engine interface can be
// registered with the framework, whether it runs in-process, wraps a native
// binary, or forwards to a remote worker.
package engine
