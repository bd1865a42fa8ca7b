// Package problem defines the caller-owned model types passed to planner
// engines: Problem, Plan, and ActionInstance.
//
// These types are opaque to engine adapters. An adapter never mutates or
// retains a Problem or Plan beyond the call that received it; interpretation
// of the Domain and Instance payloads belongs entirely to the engine.
package problem
