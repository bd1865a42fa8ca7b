// Package nextflap exposes the NextFLAP planner to the PlanForge framework
// as an engine plugin.
//
// NextFLAP is an expressive temporal and numeric planner supporting planning
// problems involving Boolean and numeric state variables, instantaneous and
// durative actions. The planner itself is a natively built binary installed
// separately; this package contains no planning or search logic. It binds to
// the external implementation at construction time, forwards every capability
// query and execution request to it, and translates "implementation absent"
// into a single actionable error.
//
// # Construction and readiness
//
// NewPlanner resolves the external implementation exactly once, at
// construction. If NextFLAP is not installed, NewPlanner fails with a
// *DependencyError carrying the underlying resolution failure and the install
// command; it never continues in a degraded mode. A planner that was never
// successfully constructed rejects Solve and Validate with
// sdk.ErrEngineNotInitialized.
//
//	planner, err := nextflap.NewPlanner()
//	if err != nil {
//	    // errors.Is(err, sdk.ErrDependencyMissing) when NextFLAP is absent
//	    return err
//	}
//	defer planner.Destroy(ctx)
//
// # Capability queries without an instance
//
// SupportedKind, Supports, SupportsPlan, and Credits are also available as
// package-level functions. Each independently resolves the external
// implementation and fails with the same *DependencyError when it is absent.
//
// # Concurrency
//
// A Planner provides no internal locking: use one planner per concurrent
// session or synchronize externally. Timeout and cancellation enforcement
// belong to the external engine; the adapter blocks until the external call
// returns.
package nextflap
