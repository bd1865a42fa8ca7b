package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/planforge-ai/sdk/engine"
	"github.com/planforge-ai/sdk/problem"
	"github.com/planforge-ai/sdk/types"
)

// SolveJob represents a single solve request submitted to an engine's queue.
// It contains everything a worker needs to run the engine and publish results.
type SolveJob struct {
	// JobID is a UUID that correlates all jobs in a batch
	JobID string `json:"job_id"`

	// Index is the position of this job in the batch (0-based)
	Index int `json:"index"`

	// Total is the total number of jobs in the batch
	Total int `json:"total"`

	// Engine is the name of the engine to run
	Engine string `json:"engine"`

	// ProblemJSON is the planning problem serialized as JSON
	ProblemJSON string `json:"problem_json"`

	// ParamsJSON holds free-form engine options encoded with EncodeParams.
	// Empty means no options.
	ParamsJSON string `json:"params_json,omitempty"`

	// TimeoutMillis is the solve's wall-clock budget in milliseconds.
	// Zero means no budget.
	TimeoutMillis int64 `json:"timeout_millis,omitempty"`

	// TraceID is the distributed tracing trace ID for observability
	TraceID string `json:"trace_id"`

	// SpanID is the distributed tracing span ID for observability
	SpanID string `json:"span_id"`

	// SubmittedAt is the Unix timestamp in milliseconds when the job was submitted
	SubmittedAt int64 `json:"submitted_at"`
}

// SolveResult represents the outcome of executing a SolveJob.
// It is published to a job-specific pub/sub channel for the submitter to collect.
type SolveResult struct {
	// JobID correlates this result with the original job
	JobID string `json:"job_id"`

	// Index is the position of this result in the batch
	Index int `json:"index"`

	// ResultJSON is the engine's plan generation result serialized as JSON.
	// Empty if Error is set.
	ResultJSON string `json:"result_json,omitempty"`

	// Error is the error message if execution failed.
	// Empty if execution succeeded.
	Error string `json:"error,omitempty"`

	// WorkerID is the unique identifier of the worker that processed this job
	WorkerID string `json:"worker_id"`

	// StartedAt is the Unix timestamp in milliseconds when execution started
	StartedAt int64 `json:"started_at"`

	// CompletedAt is the Unix timestamp in milliseconds when execution completed
	CompletedAt int64 `json:"completed_at"`
}

// EngineMeta contains metadata about a registered engine.
// It is stored as a Redis hash and used for engine discovery.
type EngineMeta struct {
	// Name is the unique engine identifier
	Name string `json:"name"`

	// Version is the semantic version of the engine implementation
	Version string `json:"version"`

	// Description is a human-readable description of the engine
	Description string `json:"description"`

	// Capabilities lists the modeling features the engine supports
	Capabilities []string `json:"capabilities"`

	// PlanKinds lists the plan kinds the engine can validate
	PlanKinds []string `json:"plan_kinds"`

	// WorkerCount is the number of active workers for this engine.
	// Updated by IncrementWorkerCount/DecrementWorkerCount.
	WorkerCount int `json:"worker_count"`
}

// NewSolveJob builds a job for a single problem, serializing the problem and
// the engine options.
func NewSolveJob(jobID string, index, total int, engineName string, prob *problem.Problem, params map[string]any, timeout time.Duration) (*SolveJob, error) {
	probData, err := json.Marshal(prob)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal problem: %w", err)
	}

	var paramsJSON string
	if len(params) > 0 {
		paramsJSON, err = EncodeParams(params)
		if err != nil {
			return nil, err
		}
	}

	return &SolveJob{
		JobID:         jobID,
		Index:         index,
		Total:         total,
		Engine:        engineName,
		ProblemJSON:   string(probData),
		ParamsJSON:    paramsJSON,
		TimeoutMillis: timeout.Milliseconds(),
		SubmittedAt:   time.Now().UnixMilli(),
	}, nil
}

// Problem deserializes the job's planning problem.
func (j *SolveJob) Problem() (*problem.Problem, error) {
	var prob problem.Problem
	if err := json.Unmarshal([]byte(j.ProblemJSON), &prob); err != nil {
		return nil, fmt.Errorf("failed to unmarshal problem: %w", err)
	}
	return &prob, nil
}

// Params deserializes the job's engine options. Returns nil when none were set.
func (j *SolveJob) Params() (map[string]any, error) {
	if j.ParamsJSON == "" {
		return nil, nil
	}
	return DecodeParams(j.ParamsJSON)
}

// Timeout returns the job's wall-clock budget as a duration.
func (j *SolveJob) Timeout() time.Duration {
	return time.Duration(j.TimeoutMillis) * time.Millisecond
}

// IsValid checks if the SolveJob has all required fields populated correctly.
// Returns an error describing any validation failures.
func (j *SolveJob) IsValid() error {
	if j.JobID == "" {
		return fmt.Errorf("job_id is required")
	}
	if j.Index < 0 {
		return fmt.Errorf("index must be non-negative, got %d", j.Index)
	}
	if j.Total <= 0 {
		return fmt.Errorf("total must be positive, got %d", j.Total)
	}
	if j.Index >= j.Total {
		return fmt.Errorf("index %d is out of bounds for total %d", j.Index, j.Total)
	}
	if j.Engine == "" {
		return fmt.Errorf("engine name is required")
	}
	if j.ProblemJSON == "" {
		return fmt.Errorf("problem_json is required")
	}
	if j.TimeoutMillis < 0 {
		return fmt.Errorf("timeout_millis must be non-negative, got %d", j.TimeoutMillis)
	}
	if j.SubmittedAt <= 0 {
		return fmt.Errorf("submitted_at must be positive, got %d", j.SubmittedAt)
	}
	return nil
}

// Age returns the duration since this job was submitted.
// Useful for detecting stale jobs and computing queue wait time.
func (j *SolveJob) Age() time.Duration {
	if j.SubmittedAt <= 0 {
		return 0
	}
	now := time.Now().UnixMilli()
	return time.Duration(now-j.SubmittedAt) * time.Millisecond
}

// NewSolveResult builds a successful result carrying the engine's output.
func NewSolveResult(jobID string, index int, workerID string, result *engine.PlanGenerationResult, started, completed time.Time) (*SolveResult, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &SolveResult{
		JobID:       jobID,
		Index:       index,
		ResultJSON:  string(data),
		WorkerID:    workerID,
		StartedAt:   started.UnixMilli(),
		CompletedAt: completed.UnixMilli(),
	}, nil
}

// Result deserializes the engine's plan generation result.
// Returns nil when the job failed.
func (r *SolveResult) Result() (*engine.PlanGenerationResult, error) {
	if r.ResultJSON == "" {
		return nil, nil
	}
	var result engine.PlanGenerationResult
	if err := json.Unmarshal([]byte(r.ResultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &result, nil
}

// HasError returns true if the result represents a failed execution.
func (r *SolveResult) HasError() bool {
	return r.Error != ""
}

// Duration returns the wall-clock time the worker spent processing this job.
func (r *SolveResult) Duration() time.Duration {
	if r.StartedAt <= 0 || r.CompletedAt <= 0 {
		return 0
	}
	return time.Duration(r.CompletedAt-r.StartedAt) * time.Millisecond
}

// IsValid checks if the SolveResult has all required fields populated correctly.
func (r *SolveResult) IsValid() error {
	if r.JobID == "" {
		return fmt.Errorf("job_id is required")
	}
	if r.Index < 0 {
		return fmt.Errorf("index must be non-negative, got %d", r.Index)
	}
	if r.WorkerID == "" {
		return fmt.Errorf("worker_id is required")
	}
	if r.StartedAt <= 0 {
		return fmt.Errorf("started_at must be positive, got %d", r.StartedAt)
	}
	if r.CompletedAt <= 0 {
		return fmt.Errorf("completed_at must be positive, got %d", r.CompletedAt)
	}
	if r.CompletedAt < r.StartedAt {
		return fmt.Errorf("completed_at (%d) cannot be before started_at (%d)", r.CompletedAt, r.StartedAt)
	}
	if !r.HasError() && r.ResultJSON == "" {
		return fmt.Errorf("result_json is required when error is empty")
	}
	return nil
}

// IsValid checks if the EngineMeta has all required fields populated correctly.
func (m *EngineMeta) IsValid() error {
	if m.Name == "" {
		return fmt.Errorf("engine name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("version is required")
	}
	if m.WorkerCount < 0 {
		return fmt.Errorf("worker_count must be non-negative, got %d", m.WorkerCount)
	}
	return nil
}

// SupportedKind converts the declared capabilities into a problem kind.
func (m *EngineMeta) SupportedKind() types.ProblemKind {
	features := make([]types.Feature, 0, len(m.Capabilities))
	for _, cap := range m.Capabilities {
		features = append(features, types.Feature(cap))
	}
	return types.NewProblemKind(features...)
}

// Supports reports whether the engine can handle problems of the given kind.
func (m *EngineMeta) Supports(kind types.ProblemKind) bool {
	return kind.IsSubsetOf(m.SupportedKind())
}

// SupportsPlanKind checks if the engine can validate plans of the given kind.
func (m *EngineMeta) SupportsPlanKind(kind types.PlanKind) bool {
	for _, k := range m.PlanKinds {
		if types.PlanKind(k) == kind {
			return true
		}
	}
	return false
}
