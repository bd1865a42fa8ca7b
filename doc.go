// Package sdk provides the official Software Development Kit for the PlanForge Framework.
//
// The PlanForge SDK enables developers to expose automated-planning engines to the
// PlanForge framework as plugins, and to drive those engines through a uniform
// capability contract. It provides APIs for registering engines, creating and
// running planning sessions, distributing solve jobs, and assessing plan results.
//
// # Core Concepts
//
// The SDK is organized around several key concepts:
//
//   - Engines: Planner implementations exposed through the shared plugin contract
//   - Problems: Caller-owned descriptions of a planning task (state variables, actions, goals)
//   - ProblemKind: A descriptor of the modeling features a problem uses, compared
//     by subset to decide whether an engine can handle it
//   - Sessions: Framework-managed solve runs with lifecycle tracking
//   - Oneshot planning and plan validation: The two capability contracts an
//     engine may implement
//
// # Engine Adapters
//
// Engines are typically wrappers around externally installed planner binaries.
// The nextflap package is the reference adapter: it binds to the native NextFLAP
// planner at construction time, forwards every capability query and execution
// request to it, and translates "implementation absent" into a single actionable
// error.
//
//	planner, err := nextflap.NewPlanner()
//	if err != nil {
//	    // NextFLAP is not installed; err carries the remediation command
//	    log.Fatal(err)
//	}
//	defer planner.Destroy(context.Background())
//
//	res, err := planner.Solve(ctx, engine.SolveRequest{Problem: prob})
//
// # Framework Usage
//
// The Framework coordinates engines and planning sessions:
//
//	fw, err := sdk.NewFramework(sdk.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer fw.Shutdown(context.Background())
//
//	fw.Engines().Register(planner)
//	session, _ := fw.CreateSession(ctx,
//	    sdk.WithSessionProblem(prob),
//	    sdk.WithSessionEngine("nextflap"),
//	)
//	fw.StartSession(ctx, session.ID)
//
// # Error Handling
//
// The SDK uses sentinel errors and structured error types for robust error handling:
//
//	if err != nil {
//	    if errors.Is(err, sdk.ErrDependencyMissing) {
//	        // The external planner implementation is not installed
//	    }
//	    if errors.Is(err, sdk.ErrEngineNotInitialized) {
//	        // An execution method was called on an adapter that never became ready
//	    }
//	}
//
// # Thread Safety
//
// Framework and registry methods are safe for concurrent use. Engine adapter
// instances provide no internal locking; use one adapter per concurrent session
// or synchronize externally.
package sdk
