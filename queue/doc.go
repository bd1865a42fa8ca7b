// Package queue provides Redis-based work queue primitives for distributed
// solve execution.
//
// The queue package enables horizontal scaling of planner execution by
// decoupling solve submission from execution. Submitters push solve jobs to
// Redis queues, engine workers consume and execute them, and results flow
// back through Redis pub/sub.
//
// # Core Components
//
// Client: Interface for interacting with Redis queues. Provides methods for:
//   - Push/Pop operations for solve queues
//   - Publish/Subscribe for result delivery
//   - Engine registration and discovery
//   - Health monitoring and worker tracking
//
// SolveJob: A unit of work containing the engine name, serialized problem,
// engine options, and trace context.
//
// SolveResult: The outcome of executing a SolveJob, carrying the engine's
// plan generation result or an error.
//
// EngineMeta: Metadata about a registered engine for discovery and routing.
//
// # Redis Key Schema
//
// The queue system uses a structured key naming convention:
//   - engine:<name>:queue - List for solve jobs (LPUSH/BRPOP)
//   - engine:<name>:meta - Hash for engine metadata
//   - engine:<name>:health - String with 30s TTL for heartbeat
//   - engine:<name>:workers - Integer counter for active workers
//   - engines:available - Set of all registered engine names
//   - results:<jobID> - Pub/Sub channel for job results
//
// # Usage
//
// Creating a queue client:
//
//	client, err := queue.NewRedisClient(queue.RedisOptions{
//		URL: "redis://localhost:6379",
//		ConnectTimeout: 5 * time.Second,
//	})
//
// Pushing a solve job:
//
//	job, err := queue.NewSolveJob("job-123", 0, 1, "nextflap", prob,
//		map[string]any{"work_dir": "/tmp/nf"}, 5*time.Minute)
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = client.Push(ctx, "engine:nextflap:queue", *job)
//
// Popping a job from a queue (blocking):
//
//	job, err := client.Pop(ctx, "engine:nextflap:queue")
//	if err != nil {
//		log.Fatal(err)
//	}
//	prob, err := job.Problem()
//	// Solve...
//
// Publishing results:
//
//	res, err := queue.NewSolveResult(job.JobID, job.Index, workerID, result, started, time.Now())
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = client.Publish(ctx, "results:"+job.JobID, *res)
//
// Subscribing to results:
//
//	results, err := client.Subscribe(ctx, "results:job-123")
//	for res := range results {
//		generated, _ := res.Result()
//		fmt.Printf("job %s: %s\n", res.JobID, generated.Status)
//	}
//
// Registering an engine:
//
//	err := client.RegisterEngine(ctx, queue.EngineMeta{
//		Name: "nextflap",
//		Version: "1.0.0",
//		Description: "Temporal and numeric planner",
//		Capabilities: []string{"ACTION_BASED", "DURATIVE_ACTIONS"},
//		PlanKinds: []string{"time_triggered"},
//	})
//
// Sending heartbeats:
//
//	ticker := time.NewTicker(10 * time.Second)
//	for range ticker.C {
//		if err := client.Heartbeat(ctx, "nextflap"); err != nil {
//			log.Printf("Heartbeat failed: %v", err)
//		}
//	}
//
// # Error Handling
//
// All methods return errors for Redis connection failures, serialization
// errors, or context cancellation. Clients should implement retry logic
// with exponential backoff for transient failures.
//
// # Thread Safety
//
// RedisClient is safe for concurrent use by multiple goroutines.
package queue
