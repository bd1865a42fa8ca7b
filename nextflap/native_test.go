package nextflap

import (
	"errors"
	"testing"

	sdk "github.com/planforge-ai/sdk"
	"github.com/planforge-ai/sdk/types"
)

func TestNewNativeImpl_RejectsUnknownOption(t *testing.T) {
	_, err := NewNativeImpl(map[string]any{"search_depth": 5})
	if err == nil {
		t.Fatal("expected error for unknown option")
	}
	if !errors.Is(err, &sdk.SDKError{Kind: sdk.KindConfiguration}) {
		t.Errorf("expected configuration error, got: %v", err)
	}
}

func TestNewNativeImpl_RejectsWrongOptionType(t *testing.T) {
	tests := []struct {
		name    string
		options map[string]any
	}{
		{"bin_path not a string", map[string]any{OptionBinPath: 42}},
		{"work_dir not a string", map[string]any{OptionWorkDir: true}},
		{"args not a string slice", map[string]any{OptionArgs: "-anytime"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNativeImpl(tt.options)
			if err == nil {
				t.Fatal("expected error for malformed option")
			}
			if !errors.Is(err, &sdk.SDKError{Kind: sdk.KindConfiguration}) {
				t.Errorf("expected configuration error, got: %v", err)
			}
		})
	}
}

func TestNewNativeImpl_MissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := NewNativeImpl(nil)
	if err == nil {
		t.Fatal("expected dependency error when the binary is absent")
	}
	if !errors.Is(err, sdk.ErrDependencyMissing) {
		t.Errorf("expected ErrDependencyMissing, got: %v", err)
	}
	var depErr *DependencyError
	if !errors.As(err, &depErr) {
		t.Fatalf("expected *DependencyError, got %T", err)
	}
}

func TestNativeImpl_SupportedKind(t *testing.T) {
	impl := &NativeImpl{}

	kind := impl.SupportedKind()
	for _, f := range []types.Feature{
		types.FeatureActionBased,
		types.FeatureContinuousTime,
		types.FeatureDurativeActions,
		types.FeatureNumericFluents,
		types.FeatureTimedGoals,
		types.FeatureStaticFluentsInDurations,
	} {
		if !kind.Has(f) {
			t.Errorf("supported kind missing %s", f)
		}
	}

	if !impl.SupportsPlan(types.PlanTimeTriggered) {
		t.Error("time-triggered plans should be supported")
	}
	if !impl.SupportsPlan(types.PlanSequential) {
		t.Error("sequential plans should be supported")
	}
	if impl.SupportsPlan(types.PlanContingent) {
		t.Error("contingent plans should not be supported")
	}
}

func TestNativeImpl_Credits(t *testing.T) {
	impl := &NativeImpl{}

	credits := impl.Credits()
	if credits.Name != "NextFLAP" {
		t.Errorf("Name = %q", credits.Name)
	}
	if credits.License != "Apache-2.0" {
		t.Errorf("License = %q", credits.License)
	}
	if len(credits.Authors) == 0 {
		t.Error("Authors should not be empty")
	}
}

func TestParsePlanOutput_TimeTriggered(t *testing.T) {
	output := []byte(`; NextFLAP 1.0
; Parsing domain.pddl
0.000: (move rover1 wp0 wp1) [1.500]
1.500: (sample rover1 wp1) [2.000]
3.500: (transmit rover1 lander) [0.750]
; Makespan: 4.250
`)

	plan, unsolvable := parsePlanOutput(output)
	if unsolvable {
		t.Fatal("output should not be marked unsolvable")
	}
	if plan == nil {
		t.Fatal("expected a plan")
	}
	if plan.Kind != types.PlanTimeTriggered {
		t.Errorf("Kind = %q, want time_triggered", plan.Kind)
	}
	if len(plan.Actions) != 3 {
		t.Fatalf("parsed %d actions, want 3", len(plan.Actions))
	}

	first := plan.Actions[0]
	if first.Name != "move" {
		t.Errorf("first action name = %q", first.Name)
	}
	if len(first.Parameters) != 3 || first.Parameters[0] != "rover1" {
		t.Errorf("first action parameters = %v", first.Parameters)
	}
	if first.Start == nil || *first.Start != 0 {
		t.Errorf("first action start = %v", first.Start)
	}
	if first.Duration == nil || *first.Duration != 1.5 {
		t.Errorf("first action duration = %v", first.Duration)
	}

	last := plan.Actions[2]
	if last.Start == nil || *last.Start != 3.5 {
		t.Errorf("last action start = %v", last.Start)
	}
}

func TestParsePlanOutput_Sequential(t *testing.T) {
	output := []byte(`(pick block-a)
(stack block-a block-b)
`)

	plan, _ := parsePlanOutput(output)
	if plan == nil {
		t.Fatal("expected a plan")
	}
	if plan.Kind != types.PlanSequential {
		t.Errorf("Kind = %q, want sequential", plan.Kind)
	}
	if len(plan.Actions) != 2 {
		t.Fatalf("parsed %d actions, want 2", len(plan.Actions))
	}
	if plan.Actions[0].Start != nil || plan.Actions[0].Duration != nil {
		t.Error("sequential actions should have no timing")
	}
}

func TestParsePlanOutput_Unsolvable(t *testing.T) {
	output := []byte("; Problem is unsolvable\n")

	plan, unsolvable := parsePlanOutput(output)
	if plan != nil {
		t.Error("expected no plan")
	}
	if !unsolvable {
		t.Error("output should be marked unsolvable")
	}
}

func TestParsePlanOutput_NoPlan(t *testing.T) {
	output := []byte("; Search exhausted\nNo plan found\n")

	plan, unsolvable := parsePlanOutput(output)
	if plan != nil {
		t.Error("expected no plan")
	}
	if unsolvable {
		t.Error("search exhaustion is not a proof of unsolvability")
	}
}

func TestParsePlanOutput_IgnoresGarbage(t *testing.T) {
	output := []byte("warming up\nnot a plan line\n0.000: (move a b) [1.000]\n")

	plan, _ := parsePlanOutput(output)
	if plan == nil {
		t.Fatal("expected a plan")
	}
	if len(plan.Actions) != 1 {
		t.Errorf("parsed %d actions, want 1", len(plan.Actions))
	}
}
