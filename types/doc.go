// Package types defines shared value types used across the PlanForge SDK.
//
// The central type is ProblemKind, a capability descriptor that records which
// modeling features a planning problem uses (or an engine supports). Kinds are
// compared with a partial order: kind A is satisfied by engine kind B when A's
// feature set is a subset of B's. PlanKind plays the same role for plan
// structures.
//
// The package also provides HealthStatus for reporting engine worker health
// and TimeoutConfig for bounding solve timeouts.
package types
