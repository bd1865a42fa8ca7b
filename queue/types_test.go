package queue

import (
	"testing"
	"time"

	"github.com/planforge-ai/sdk/engine"
	"github.com/planforge-ai/sdk/problem"
	"github.com/planforge-ai/sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJob() SolveJob {
	return SolveJob{
		JobID:       "job-123",
		Index:       0,
		Total:       1,
		Engine:      "nextflap",
		ProblemJSON: `{"name":"p","kind":[]}`,
		SubmittedAt: time.Now().UnixMilli(),
	}
}

func TestSolveJob_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SolveJob)
		wantErr string
	}{
		{"valid", func(j *SolveJob) {}, ""},
		{"missing job id", func(j *SolveJob) { j.JobID = "" }, "job_id is required"},
		{"negative index", func(j *SolveJob) { j.Index = -1 }, "index must be non-negative"},
		{"zero total", func(j *SolveJob) { j.Total = 0 }, "total must be positive"},
		{"index out of bounds", func(j *SolveJob) { j.Index = 1 }, "out of bounds"},
		{"missing engine", func(j *SolveJob) { j.Engine = "" }, "engine name is required"},
		{"missing problem", func(j *SolveJob) { j.ProblemJSON = "" }, "problem_json is required"},
		{"negative timeout", func(j *SolveJob) { j.TimeoutMillis = -1 }, "timeout_millis must be non-negative"},
		{"missing submitted at", func(j *SolveJob) { j.SubmittedAt = 0 }, "submitted_at must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := validJob()
			tt.mutate(&job)

			err := job.IsValid()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSolveJob_RoundTrip(t *testing.T) {
	prob := problem.New("rovers", types.NewProblemKind(types.FeatureActionBased)).
		WithDomain("(define (domain rovers))")

	job, err := NewSolveJob("job-1", 0, 1, "nextflap", prob,
		map[string]any{"bin_path": "/usr/local/bin/nextflap", "retries": float64(2)},
		time.Minute)
	require.NoError(t, err)
	require.NoError(t, job.IsValid())

	decoded, err := job.Problem()
	require.NoError(t, err)
	assert.Equal(t, prob.Name, decoded.Name)
	assert.True(t, decoded.Kind.Equal(prob.Kind))
	assert.Equal(t, prob.Domain, decoded.Domain)

	params, err := job.Params()
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/nextflap", params["bin_path"])
	assert.Equal(t, float64(2), params["retries"])

	assert.Equal(t, time.Minute, job.Timeout())
}

func TestSolveJob_NoParams(t *testing.T) {
	prob := problem.New("p", types.NewProblemKind())
	job, err := NewSolveJob("job-1", 0, 1, "nextflap", prob, nil, 0)
	require.NoError(t, err)

	assert.Empty(t, job.ParamsJSON)
	params, err := job.Params()
	require.NoError(t, err)
	assert.Nil(t, params)
}

func TestSolveJob_Age(t *testing.T) {
	job := validJob()
	job.SubmittedAt = time.Now().Add(-time.Second).UnixMilli()
	assert.GreaterOrEqual(t, job.Age(), time.Second)

	job.SubmittedAt = 0
	assert.Equal(t, time.Duration(0), job.Age())
}

func TestEncodeDecodeParams(t *testing.T) {
	params := map[string]any{
		"work_dir": "/tmp/nf",
		"anytime":  true,
		"weight":   1.5,
		"nested":   map[string]any{"key": "value"},
	}

	encoded, err := EncodeParams(params)
	require.NoError(t, err)

	decoded, err := DecodeParams(encoded)
	require.NoError(t, err)
	assert.Equal(t, params, decoded)

	// Non-JSON-compatible values are rejected
	_, err = EncodeParams(map[string]any{"ch": make(chan int)})
	require.Error(t, err)

	_, err = DecodeParams("not json")
	require.Error(t, err)
}

func TestSolveResult(t *testing.T) {
	started := time.Now().Add(-2 * time.Second)
	completed := time.Now()

	genResult := &engine.PlanGenerationResult{
		Status:     engine.StatusSolvedSatisficing,
		EngineName: "nextflap",
		Plan:       problem.NewSequentialPlan(problem.ActionInstance{Name: "move"}),
	}

	res, err := NewSolveResult("job-1", 0, "worker-1", genResult, started, completed)
	require.NoError(t, err)
	require.NoError(t, res.IsValid())

	assert.False(t, res.HasError())
	assert.InDelta(t, 2*time.Second, res.Duration(), float64(50*time.Millisecond))

	decoded, err := res.Result()
	require.NoError(t, err)
	assert.Equal(t, engine.StatusSolvedSatisficing, decoded.Status)
	require.NotNil(t, decoded.Plan)
	assert.Equal(t, "move", decoded.Plan.Actions[0].Name)
}

func TestSolveResult_IsValid(t *testing.T) {
	now := time.Now().UnixMilli()

	tests := []struct {
		name    string
		result  SolveResult
		wantErr string
	}{
		{
			name: "valid success",
			result: SolveResult{
				JobID: "j", ResultJSON: "{}", WorkerID: "w",
				StartedAt: now, CompletedAt: now + 1,
			},
		},
		{
			name: "valid failure",
			result: SolveResult{
				JobID: "j", Error: "boom", WorkerID: "w",
				StartedAt: now, CompletedAt: now + 1,
			},
		},
		{
			name: "missing output and error",
			result: SolveResult{
				JobID: "j", WorkerID: "w",
				StartedAt: now, CompletedAt: now + 1,
			},
			wantErr: "result_json is required",
		},
		{
			name: "completed before started",
			result: SolveResult{
				JobID: "j", ResultJSON: "{}", WorkerID: "w",
				StartedAt: now, CompletedAt: now - 1,
			},
			wantErr: "cannot be before",
		},
		{
			name:    "missing worker",
			result:  SolveResult{JobID: "j", ResultJSON: "{}", StartedAt: now, CompletedAt: now},
			wantErr: "worker_id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.IsValid()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEngineMeta(t *testing.T) {
	meta := EngineMeta{
		Name:         "nextflap",
		Version:      "1.0.0",
		Capabilities: []string{"ACTION_BASED", "DURATIVE_ACTIONS"},
		PlanKinds:    []string{"sequential", "time_triggered"},
	}
	require.NoError(t, meta.IsValid())

	kind := meta.SupportedKind()
	assert.True(t, kind.Has(types.FeatureActionBased))
	assert.Equal(t, 2, kind.Len())

	assert.True(t, meta.Supports(types.NewProblemKind(types.FeatureActionBased)))
	assert.True(t, meta.Supports(types.NewProblemKind()))
	assert.False(t, meta.Supports(types.NewProblemKind(types.FeatureTimedGoals)))

	assert.True(t, meta.SupportsPlanKind(types.PlanTimeTriggered))
	assert.False(t, meta.SupportsPlanKind(types.PlanContingent))

	assert.Error(t, (&EngineMeta{Version: "1.0.0"}).IsValid())
	assert.Error(t, (&EngineMeta{Name: "x"}).IsValid())
	assert.Error(t, (&EngineMeta{Name: "x", Version: "1", WorkerCount: -1}).IsValid())
}
