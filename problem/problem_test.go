package problem

import (
	"testing"

	"github.com/planforge-ai/sdk/types"
)

func f(v float64) *float64 { return &v }

func TestActionInstance_String(t *testing.T) {
	tests := []struct {
		name   string
		action ActionInstance
		want   string
	}{
		{
			name:   "instantaneous action",
			action: ActionInstance{Name: "pick", Parameters: []string{"block-a"}},
			want:   "(pick block-a)",
		},
		{
			name:   "durative scheduled action",
			action: ActionInstance{Name: "move", Parameters: []string{"rover1", "wp3"}, Start: f(1.5), Duration: f(2)},
			want:   "1.500: (move rover1 wp3) [2.000]",
		},
		{
			name:   "no parameters",
			action: ActionInstance{Name: "calibrate", Start: f(0)},
			want:   "0.000: (calibrate)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.action.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlan_Makespan(t *testing.T) {
	p := NewTimeTriggeredPlan(
		ActionInstance{Name: "a", Start: f(0), Duration: f(3)},
		ActionInstance{Name: "b", Start: f(1), Duration: f(5)},
		ActionInstance{Name: "c", Start: f(2)},
	)

	if got := p.Makespan(); got != 6 {
		t.Errorf("Makespan() = %v, want 6", got)
	}

	seq := NewSequentialPlan(ActionInstance{Name: "a"}, ActionInstance{Name: "b"})
	if got := seq.Makespan(); got != 2 {
		t.Errorf("sequential Makespan() = %v, want 2", got)
	}
}

func TestPlan_IsEmpty(t *testing.T) {
	var p *Plan
	if !p.IsEmpty() {
		t.Error("nil plan should be empty")
	}
	if !NewSequentialPlan().IsEmpty() {
		t.Error("plan without actions should be empty")
	}
	if NewSequentialPlan(ActionInstance{Name: "a"}).IsEmpty() {
		t.Error("plan with actions should not be empty")
	}
}

func TestProblem_Builders(t *testing.T) {
	kind := types.NewProblemKind(types.FeatureActionBased, types.FeatureDurativeActions)
	p := New("rovers-07", kind).
		WithDomain("(define (domain rovers) ...)").
		WithInstance("(define (problem rovers-07) ...)")

	if p.Name != "rovers-07" {
		t.Errorf("unexpected name %q", p.Name)
	}
	if !p.Kind.Equal(kind) {
		t.Errorf("unexpected kind %s", p.Kind)
	}
	if p.Domain == "" || p.Instance == "" {
		t.Error("expected domain and instance to be set")
	}
}
