// Package health provides reusable health check functions for PlanForge
// engines and workers.
//
// This package offers standardized ways to verify planner dependencies,
// connectivity, and system state. It is designed to help engine adapters
// implement consistent health checking patterns before accepting solve work.
//
// # Health Check Functions
//
// The package provides six main health check functions:
//
//   - BinaryCheck: Verify a binary exists in PATH
//   - BinaryVersionCheck: Verify a binary meets minimum version requirements
//   - DependenciesCheck: Verify every binary declared in an engine.yaml
//   - NetworkCheck: Verify TCP connectivity to a host:port
//   - FileCheck: Verify a file or directory exists
//   - Combine: Aggregate multiple health checks into a single status
//
// # Usage Example
//
//	import (
//	    "context"
//	    "time"
//	    "github.com/planforge-ai/sdk/health"
//	)
//
//	// Check the planner binary
//	status := health.BinaryCheck("nextflap")
//	if status.IsUnhealthy() {
//	    log.Fatal("nextflap is required but not installed")
//	}
//
//	// Check queue connectivity
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//	redisStatus := health.NetworkCheck(ctx, "localhost", 6379)
//
//	// Combine multiple checks
//	overall := health.Combine(
//	    health.BinaryCheck("nextflap"),
//	    redisStatus,
//	)
//	if overall.IsUnhealthy() {
//	    log.Fatal("engine dependencies not met")
//	}
//
// Workers typically run DependenciesCheck against their engine.yaml on
// startup and refuse to register with the queue when it reports unhealthy.
package health
