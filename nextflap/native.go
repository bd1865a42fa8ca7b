package nextflap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	sdk "github.com/planforge-ai/sdk"
	"github.com/planforge-ai/sdk/engine"
	"github.com/planforge-ai/sdk/exec"
	"github.com/planforge-ai/sdk/problem"
	"github.com/planforge-ai/sdk/types"
)

// binaryName is the NextFLAP executable looked up on PATH when no explicit
// path is configured.
const binaryName = "nextflap"

// Option keys understood by NewNativeImpl.
const (
	// OptionBinPath overrides PATH lookup with an explicit binary path.
	OptionBinPath = "bin_path"

	// OptionWorkDir sets the directory where problem files are written and
	// the planner runs. Defaults to a temporary directory owned by the
	// implementation and removed on Destroy.
	OptionWorkDir = "work_dir"

	// OptionArgs appends extra command-line arguments to every invocation.
	OptionArgs = "args"
)

// supportedKind declares the temporal and numeric modeling features the
// native NextFLAP planner handles.
var supportedKind = types.NewProblemKind(
	types.FeatureActionBased,
	types.FeatureContinuousTime,
	types.FeatureDurativeActions,
	types.FeatureDurationInequalities,
	types.FeatureIntermediateConditionsAndEffects,
	types.FeatureTimedEffects,
	types.FeatureTimedGoals,
	types.FeatureNumericFluents,
	types.FeatureContinuousNumbers,
	types.FeatureDiscreteNumbers,
	types.FeatureIncreaseEffects,
	types.FeatureDecreaseEffects,
	types.FeatureNegativeConditions,
	types.FeatureDisjunctiveConditions,
	types.FeatureEqualities,
	types.FeatureStaticFluentsInDurations,
)

var nextflapCredits = &engine.Credits{
	Name:             "NextFLAP",
	Authors:          []string{"Oscar Sapena", "Eva Onaindia"},
	Contact:          "ossaver@upv.es",
	Website:          "https://github.com/aiplan4eu/up-nextflap",
	License:          "Apache-2.0",
	ShortDescription: "An expressive temporal and numeric planner based on forward partial-order search.",
}

// NativeImpl runs the natively built NextFLAP binary as a subprocess. It
// writes the problem's PDDL text to disk, invokes the binary, and parses the
// emitted plan.
type NativeImpl struct {
	binPath   string
	workDir   string
	extraArgs []string
	ownsDir   bool
}

// NativeImpl satisfies the implementation surface the adapter binds to.
var _ Impl = (*NativeImpl)(nil)

// NewNativeImpl resolves the NextFLAP binary and prepares a working
// directory. It fails with a *DependencyError when the binary cannot be
// found, and with a configuration error for malformed or unknown options.
func NewNativeImpl(options map[string]any) (*NativeImpl, error) {
	impl := &NativeImpl{}

	for key, value := range options {
		switch key {
		case OptionBinPath:
			s, ok := value.(string)
			if !ok {
				return nil, sdk.NewConfigurationError("nextflap.NewNativeImpl",
					fmt.Errorf("option %q must be a string, got %T", key, value))
			}
			impl.binPath = s
		case OptionWorkDir:
			s, ok := value.(string)
			if !ok {
				return nil, sdk.NewConfigurationError("nextflap.NewNativeImpl",
					fmt.Errorf("option %q must be a string, got %T", key, value))
			}
			impl.workDir = s
		case OptionArgs:
			args, ok := value.([]string)
			if !ok {
				return nil, sdk.NewConfigurationError("nextflap.NewNativeImpl",
					fmt.Errorf("option %q must be a []string, got %T", key, value))
			}
			impl.extraArgs = args
		default:
			return nil, sdk.NewConfigurationError("nextflap.NewNativeImpl",
				fmt.Errorf("unknown option %q", key))
		}
	}

	if impl.binPath == "" {
		path, err := exec.BinaryPath(binaryName)
		if err != nil {
			return nil, newDependencyError(err)
		}
		impl.binPath = path
	} else if !exec.BinaryExists(impl.binPath) {
		if _, err := os.Stat(impl.binPath); err != nil {
			return nil, newDependencyError(err)
		}
	}

	if impl.workDir == "" {
		dir, err := os.MkdirTemp("", "nextflap-*")
		if err != nil {
			return nil, sdk.NewInternalError("nextflap.NewNativeImpl", err)
		}
		impl.workDir = dir
		impl.ownsDir = true
	}

	return impl, nil
}

// SupportedKind returns the modeling features the native planner handles.
func (n *NativeImpl) SupportedKind() types.ProblemKind {
	return supportedKind
}

// SupportsPlan reports whether plans of the given kind can be validated.
// The native planner validates sequential and time-triggered plans.
func (n *NativeImpl) SupportsPlan(kind types.PlanKind) bool {
	return kind == types.PlanSequential || kind == types.PlanTimeTriggered
}

// Credits returns attribution metadata for NextFLAP.
func (n *NativeImpl) Credits() *engine.Credits {
	return nextflapCredits
}

// Solve writes the problem's domain and instance to disk, runs the planner,
// and parses its output into a plan generation result.
//
// A timeout is reported as a StatusTimeout result, not an error. The
// callback, when set, receives the final result before Solve returns.
func (n *NativeImpl) Solve(ctx context.Context, req engine.SolveRequest) (*engine.PlanGenerationResult, error) {
	const op = "NativeImpl.Solve"

	if req.Problem == nil {
		return nil, sdk.NewValidationError(op, errors.New("problem is required"))
	}

	domainPath, instancePath, err := n.writeProblem(req.Problem)
	if err != nil {
		return nil, sdk.NewInternalError(op, err)
	}

	args := append([]string{domainPath, instancePath}, n.extraArgs...)
	res, err := exec.Run(ctx, exec.Config{
		Command: n.binPath,
		Args:    args,
		WorkDir: n.workDir,
		Timeout: req.Timeout,
		Stream:  req.Output,
	})

	result := &engine.PlanGenerationResult{
		Status:     engine.StatusInternalError,
		EngineName: Name,
		Metrics:    map[string]float64{},
	}
	if res != nil {
		result.Metrics["engine_internal_time"] = res.Duration.Seconds()
	}

	switch {
	case err != nil && errors.Is(err, context.DeadlineExceeded):
		result.Status = engine.StatusTimeout
	case err != nil:
		return nil, sdk.NewExecutionError(op, err)
	case res.ExitCode != 0:
		result.Status = engine.StatusInternalError
		result.LogMessages = splitLines(res.Stderr)
	default:
		plan, unsolvable := parsePlanOutput(res.Stdout)
		switch {
		case plan != nil && !plan.IsEmpty():
			result.Status = engine.StatusSolvedSatisficing
			result.Plan = plan
		case unsolvable:
			result.Status = engine.StatusUnsolvableProven
		default:
			result.Status = engine.StatusUnsolvableIncompletely
			result.LogMessages = splitLines(res.Stdout)
		}
	}

	if req.Callback != nil {
		req.Callback(result)
	}
	return result, nil
}

// Validate writes the problem and a rendered plan to disk and asks the
// planner to check the plan. Exit code 0 means valid, 1 means invalid; any
// other outcome is reported as unknown with the planner's stderr as reason.
func (n *NativeImpl) Validate(ctx context.Context, prob *problem.Problem, plan *problem.Plan) (*engine.ValidationResult, error) {
	const op = "NativeImpl.Validate"

	if prob == nil {
		return nil, sdk.NewValidationError(op, errors.New("problem is required"))
	}
	if plan == nil {
		return nil, sdk.NewValidationError(op, errors.New("plan is required"))
	}
	if !n.SupportsPlan(plan.Kind) {
		return nil, sdk.NewValidationError(op,
			fmt.Errorf("plan kind %q not supported", plan.Kind))
	}

	domainPath, instancePath, err := n.writeProblem(prob)
	if err != nil {
		return nil, sdk.NewInternalError(op, err)
	}

	planPath := filepath.Join(n.workDir, "plan.txt")
	if err := os.WriteFile(planPath, []byte(plan.String()), 0o644); err != nil {
		return nil, sdk.NewInternalError(op, err)
	}

	args := append([]string{domainPath, instancePath, "-validate", planPath}, n.extraArgs...)
	res, err := exec.Run(ctx, exec.Config{
		Command: n.binPath,
		Args:    args,
		WorkDir: n.workDir,
	})
	if err != nil {
		return nil, sdk.NewExecutionError(op, err)
	}

	result := &engine.ValidationResult{EngineName: Name}
	switch res.ExitCode {
	case 0:
		result.Outcome = engine.ValidationValid
	case 1:
		result.Outcome = engine.ValidationInvalid
		result.Reason = strings.TrimSpace(string(res.Stdout))
	default:
		result.Outcome = engine.ValidationUnknown
		result.Reason = strings.TrimSpace(string(res.Stderr))
	}
	return result, nil
}

// Destroy removes the working directory if this implementation created it.
func (n *NativeImpl) Destroy(ctx context.Context) error {
	if n.ownsDir && n.workDir != "" {
		if err := os.RemoveAll(n.workDir); err != nil {
			return sdk.NewInternalError("NativeImpl.Destroy", err)
		}
		n.workDir = ""
	}
	return nil
}

func (n *NativeImpl) writeProblem(prob *problem.Problem) (domainPath, instancePath string, err error) {
	domainPath = filepath.Join(n.workDir, "domain.pddl")
	instancePath = filepath.Join(n.workDir, "problem.pddl")
	if err = os.WriteFile(domainPath, []byte(prob.Domain), 0o644); err != nil {
		return "", "", err
	}
	if err = os.WriteFile(instancePath, []byte(prob.Instance), 0o644); err != nil {
		return "", "", err
	}
	return domainPath, instancePath, nil
}

// parsePlanOutput extracts plan actions from the planner's stdout.
//
// Plan lines have the form "0.000: (move rover1 wp3) [1.500]", with the
// leading timestamp and the trailing duration optional for instantaneous
// actions. Lines that do not match are ignored. The second return value
// reports whether the output explicitly states the problem is unsolvable.
func parsePlanOutput(output []byte) (*problem.Plan, bool) {
	var actions []problem.ActionInstance
	timed := false
	unsolvable := false

	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") {
			if strings.Contains(strings.ToLower(line), "unsolvable") {
				unsolvable = true
			}
			continue
		}
		if strings.Contains(strings.ToLower(line), "no plan found") {
			continue
		}

		rest := line
		var start *float64
		if idx := strings.Index(rest, ":"); idx > 0 {
			if v, err := strconv.ParseFloat(strings.TrimSpace(rest[:idx]), 64); err == nil {
				start = &v
				rest = rest[idx+1:]
			}
		}

		rest = strings.TrimSpace(rest)
		open := strings.Index(rest, "(")
		closing := strings.Index(rest, ")")
		if open < 0 || closing < open {
			continue
		}

		fields := strings.Fields(rest[open+1 : closing])
		if len(fields) == 0 {
			continue
		}
		action := problem.ActionInstance{
			Name:       fields[0],
			Parameters: fields[1:],
			Start:      start,
		}

		tail := strings.TrimSpace(rest[closing+1:])
		if strings.HasPrefix(tail, "[") {
			if end := strings.Index(tail, "]"); end > 0 {
				if v, err := strconv.ParseFloat(strings.TrimSpace(tail[1:end]), 64); err == nil {
					action.Duration = &v
				}
			}
		}

		if start != nil {
			timed = true
		}
		actions = append(actions, action)
	}

	if len(actions) == 0 {
		return nil, unsolvable
	}
	if timed {
		return problem.NewTimeTriggeredPlan(actions...), unsolvable
	}
	return problem.NewSequentialPlan(actions...), unsolvable
}

func splitLines(b []byte) []string {
	var out []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
