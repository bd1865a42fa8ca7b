package nextflap

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	sdk "github.com/planforge-ai/sdk"
	"github.com/planforge-ai/sdk/engine"
	"github.com/planforge-ai/sdk/problem"
	"github.com/planforge-ai/sdk/types"
)

// recordingImpl captures every forwarded call so tests can assert the adapter
// passes arguments and results through unchanged.
type recordingImpl struct {
	supportedKind types.ProblemKind
	planKinds     map[types.PlanKind]bool
	credits       *engine.Credits

	solveResult    *engine.PlanGenerationResult
	solveErr       error
	validateResult *engine.ValidationResult
	validateErr    error

	lastSolveReq     *engine.SolveRequest
	lastValidateProb *problem.Problem
	lastValidatePlan *problem.Plan
	solveCalls       int
	destroyCalls     int
}

func (r *recordingImpl) Solve(ctx context.Context, req engine.SolveRequest) (*engine.PlanGenerationResult, error) {
	r.solveCalls++
	r.lastSolveReq = &req
	return r.solveResult, r.solveErr
}

func (r *recordingImpl) Validate(ctx context.Context, prob *problem.Problem, plan *problem.Plan) (*engine.ValidationResult, error) {
	r.lastValidateProb = prob
	r.lastValidatePlan = plan
	return r.validateResult, r.validateErr
}

func (r *recordingImpl) SupportedKind() types.ProblemKind { return r.supportedKind }

func (r *recordingImpl) SupportsPlan(kind types.PlanKind) bool { return r.planKinds[kind] }

func (r *recordingImpl) Credits() *engine.Credits { return r.credits }

func (r *recordingImpl) Destroy(ctx context.Context) error {
	r.destroyCalls++
	return nil
}

func TestPlanner_ImplementsEngine(t *testing.T) {
	var _ engine.Engine = &Planner{}
}

func TestNewPlanner_ForwardsOptionsToFactory(t *testing.T) {
	var received map[string]any
	factory := func(options map[string]any) (Impl, error) {
		received = options
		return &recordingImpl{}, nil
	}

	_, err := NewPlanner(
		WithFactory(factory),
		WithOptions(map[string]any{"work_dir": "/tmp/nf"}),
		WithOption("args", []string{"-anytime"}),
	)
	if err != nil {
		t.Fatalf("NewPlanner() failed: %v", err)
	}

	if received["work_dir"] != "/tmp/nf" {
		t.Errorf("work_dir not forwarded: %v", received["work_dir"])
	}
	args, ok := received["args"].([]string)
	if !ok || len(args) != 1 || args[0] != "-anytime" {
		t.Errorf("args not forwarded verbatim: %v", received["args"])
	}
}

func TestNewPlanner_DependencyMissing(t *testing.T) {
	resolutions := 0
	factory := func(options map[string]any) (Impl, error) {
		resolutions++
		return nil, newDependencyError(errors.New("binary \"nextflap\" not found in PATH"))
	}

	planner, err := NewPlanner(WithFactory(factory))
	if err == nil {
		t.Fatal("expected dependency error, got nil")
	}
	if planner != nil {
		t.Error("planner must not be usable when the implementation is absent")
	}
	if resolutions != 1 {
		t.Errorf("resolution attempted %d times, want exactly 1", resolutions)
	}

	// Callers detect the case without importing this package's error type
	if !errors.Is(err, sdk.ErrDependencyMissing) {
		t.Errorf("error should match sdk.ErrDependencyMissing, got: %v", err)
	}
	var depErr *DependencyError
	if !errors.As(err, &depErr) {
		t.Fatalf("error should be a *DependencyError, got %T", err)
	}
	if !strings.Contains(err.Error(), InstallScript) {
		t.Errorf("error should name the install command, got: %v", err)
	}
	if !strings.Contains(err.Error(), "libz3-dev") {
		t.Errorf("error should name the system dependencies, got: %v", err)
	}
}

func TestPlanner_CapabilityQueriesForward(t *testing.T) {
	kind := types.NewProblemKind(
		types.FeatureActionBased,
		types.FeatureContinuousTime,
		types.FeatureDurativeActions,
	)
	impl := &recordingImpl{
		supportedKind: kind,
		planKinds:     map[types.PlanKind]bool{types.PlanTimeTriggered: true},
		credits:       &engine.Credits{Name: "NextFLAP"},
	}

	planner, err := NewPlanner(WithImpl(impl))
	if err != nil {
		t.Fatalf("NewPlanner() failed: %v", err)
	}

	if planner.Name() != "nextflap" {
		t.Errorf("Name() = %q, want %q", planner.Name(), "nextflap")
	}
	if !planner.SupportedKind().Equal(kind) {
		t.Error("SupportedKind() not forwarded from implementation")
	}
	if planner.Credits() != impl.credits {
		t.Error("Credits() not forwarded from implementation")
	}
	if !planner.SupportsPlan(types.PlanTimeTriggered) {
		t.Error("SupportsPlan(time_triggered) = false, want true")
	}
	if planner.SupportsPlan(types.PlanContingent) {
		t.Error("SupportsPlan(contingent) = true, want false")
	}
}

func TestPlanner_SupportsSubsetSemantics(t *testing.T) {
	supported := types.NewProblemKind(
		types.FeatureActionBased,
		types.FeatureDurativeActions,
		types.FeatureNumericFluents,
	)
	planner, err := NewPlanner(WithImpl(&recordingImpl{supportedKind: supported}))
	if err != nil {
		t.Fatalf("NewPlanner() failed: %v", err)
	}

	tests := []struct {
		name string
		kind types.ProblemKind
		want bool
	}{
		{
			name: "empty kind is always supported",
			kind: types.NewProblemKind(),
			want: true,
		},
		{
			name: "strict subset",
			kind: types.NewProblemKind(types.FeatureActionBased),
			want: true,
		},
		{
			name: "exact match",
			kind: supported,
			want: true,
		},
		{
			name: "one feature outside",
			kind: types.NewProblemKind(types.FeatureActionBased, types.FeatureTimedGoals),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := planner.Supports(tt.kind); got != tt.want {
				t.Errorf("Supports(%v) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestPlanner_SolveForwardsRequestUnchanged(t *testing.T) {
	want := &engine.PlanGenerationResult{
		Status: engine.StatusSolvedSatisficing,
		Plan:   problem.NewTimeTriggeredPlan(problem.ActionInstance{Name: "move"}),
	}
	impl := &recordingImpl{solveResult: want}

	planner, err := NewPlanner(WithImpl(impl))
	if err != nil {
		t.Fatalf("NewPlanner() failed: %v", err)
	}

	prob := problem.New("rovers", types.NewProblemKind(types.FeatureActionBased))
	var out io.Writer = &strings.Builder{}
	callbackCalled := false
	req := engine.SolveRequest{
		Problem:  prob,
		Callback: func(*engine.PlanGenerationResult) { callbackCalled = true },
		Timeout:  90 * time.Second,
		Output:   out,
	}

	got, err := planner.Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("Solve() failed: %v", err)
	}

	if got != want {
		t.Error("result should be returned unchanged")
	}
	recorded := impl.lastSolveReq
	if recorded == nil {
		t.Fatal("implementation did not receive the request")
	}
	if recorded.Problem != prob {
		t.Error("problem reference was not forwarded unchanged")
	}
	if recorded.Output != out {
		t.Error("output writer was not forwarded unchanged")
	}
	if recorded.Timeout != 90*time.Second {
		t.Errorf("timeout was transformed: %v", recorded.Timeout)
	}
	recorded.Callback(nil)
	if !callbackCalled {
		t.Error("callback was not forwarded unchanged")
	}
}

func TestPlanner_SolveForwardsErrorUnchanged(t *testing.T) {
	implErr := errors.New("planner crashed")
	planner, err := NewPlanner(WithImpl(&recordingImpl{solveErr: implErr}))
	if err != nil {
		t.Fatalf("NewPlanner() failed: %v", err)
	}

	_, err = planner.Solve(context.Background(), engine.SolveRequest{})
	if !errors.Is(err, implErr) {
		t.Errorf("implementation error was transformed: %v", err)
	}
}

func TestPlanner_ValidateForwardsArguments(t *testing.T) {
	want := &engine.ValidationResult{Outcome: engine.ValidationInvalid, Reason: "precondition violated"}
	impl := &recordingImpl{validateResult: want}

	planner, err := NewPlanner(WithImpl(impl))
	if err != nil {
		t.Fatalf("NewPlanner() failed: %v", err)
	}

	prob := problem.New("rovers", types.NewProblemKind())
	plan := problem.NewSequentialPlan(problem.ActionInstance{Name: "move"})

	got, err := planner.Validate(context.Background(), prob, plan)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if got != want {
		t.Error("validation result should be returned unchanged")
	}
	if impl.lastValidateProb != prob || impl.lastValidatePlan != plan {
		t.Error("validate arguments were not forwarded unchanged")
	}
}

func TestPlanner_ZeroValueRejectsExecution(t *testing.T) {
	var planner Planner

	_, err := planner.Solve(context.Background(), engine.SolveRequest{})
	if !errors.Is(err, sdk.ErrEngineNotInitialized) {
		t.Errorf("Solve() on zero-value planner: got %v, want ErrEngineNotInitialized", err)
	}
	if errors.Is(err, sdk.ErrDependencyMissing) {
		t.Error("not-initialized must never be reported as a missing dependency")
	}

	_, err = planner.Validate(context.Background(), nil, nil)
	if !errors.Is(err, sdk.ErrEngineNotInitialized) {
		t.Errorf("Validate() on zero-value planner: got %v, want ErrEngineNotInitialized", err)
	}

	if !planner.SupportedKind().IsEmpty() {
		t.Error("SupportedKind() on zero-value planner should be empty")
	}
	if planner.SupportsPlan(types.PlanSequential) {
		t.Error("SupportsPlan() on zero-value planner should be false")
	}
	if planner.Credits() != nil {
		t.Error("Credits() on zero-value planner should be nil")
	}
}

func TestPlanner_DestroyIsIdempotent(t *testing.T) {
	impl := &recordingImpl{}
	planner, err := NewPlanner(WithImpl(impl))
	if err != nil {
		t.Fatalf("NewPlanner() failed: %v", err)
	}

	ctx := context.Background()
	if err := planner.Destroy(ctx); err != nil {
		t.Fatalf("Destroy() failed: %v", err)
	}
	if err := planner.Destroy(ctx); err != nil {
		t.Fatalf("second Destroy() failed: %v", err)
	}
	if impl.destroyCalls != 1 {
		t.Errorf("implementation destroyed %d times, want exactly 1", impl.destroyCalls)
	}

	// A destroyed planner rejects execution like an uninitialized one
	_, err = planner.Solve(ctx, engine.SolveRequest{})
	if !errors.Is(err, sdk.ErrEngineNotInitialized) {
		t.Errorf("Solve() after Destroy(): got %v, want ErrEngineNotInitialized", err)
	}

	// Destroy on a zero-value planner is a no-op
	var zero Planner
	if err := zero.Destroy(ctx); err != nil {
		t.Errorf("Destroy() on zero-value planner: %v", err)
	}
}

func TestPackageLevelQueries_UseDefaultFactory(t *testing.T) {
	orig := DefaultFactory
	defer func() { DefaultFactory = orig }()

	kind := types.NewProblemKind(types.FeatureActionBased, types.FeatureTimedGoals)
	impl := &recordingImpl{
		supportedKind: kind,
		planKinds:     map[types.PlanKind]bool{types.PlanSequential: true},
		credits:       &engine.Credits{Name: "NextFLAP"},
	}
	resolutions := 0
	DefaultFactory = func(options map[string]any) (Impl, error) {
		resolutions++
		return impl, nil
	}

	got, err := SupportedKind()
	if err != nil {
		t.Fatalf("SupportedKind() failed: %v", err)
	}
	if !got.Equal(kind) {
		t.Errorf("SupportedKind() = %v, want %v", got, kind)
	}

	ok, err := Supports(types.NewProblemKind(types.FeatureActionBased))
	if err != nil {
		t.Fatalf("Supports() failed: %v", err)
	}
	if !ok {
		t.Error("Supports(subset) = false, want true")
	}

	ok, err = SupportsPlan(types.PlanSequential)
	if err != nil {
		t.Fatalf("SupportsPlan() failed: %v", err)
	}
	if !ok {
		t.Error("SupportsPlan(sequential) = false, want true")
	}

	credits, err := Credits()
	if err != nil {
		t.Fatalf("Credits() failed: %v", err)
	}
	if credits.Name != "NextFLAP" {
		t.Errorf("Credits().Name = %q", credits.Name)
	}

	// Each query resolves independently
	if resolutions != 4 {
		t.Errorf("DefaultFactory resolved %d times, want 4", resolutions)
	}
}

func TestPackageLevelQueries_DependencyMissing(t *testing.T) {
	orig := DefaultFactory
	defer func() { DefaultFactory = orig }()
	DefaultFactory = func(options map[string]any) (Impl, error) {
		return nil, newDependencyError(errors.New("not installed"))
	}

	if _, err := SupportedKind(); !errors.Is(err, sdk.ErrDependencyMissing) {
		t.Errorf("SupportedKind(): got %v, want ErrDependencyMissing", err)
	}
	if _, err := Supports(types.NewProblemKind()); !errors.Is(err, sdk.ErrDependencyMissing) {
		t.Errorf("Supports(): got %v, want ErrDependencyMissing", err)
	}
	if _, err := SupportsPlan(types.PlanSequential); !errors.Is(err, sdk.ErrDependencyMissing) {
		t.Errorf("SupportsPlan(): got %v, want ErrDependencyMissing", err)
	}
	if _, err := Credits(); !errors.Is(err, sdk.ErrDependencyMissing) {
		t.Errorf("Credits(): got %v, want ErrDependencyMissing", err)
	}
}
