package registry

import (
	"testing"
	"time"

	"github.com/planforge-ai/sdk/types"
)

func TestServiceInfo_SupportedKind(t *testing.T) {
	info := ServiceInfo{
		Kind:       KindEngine,
		Name:       "nextflap",
		InstanceID: "inst-1",
		Metadata: map[string]string{
			MetaCapabilities: "ACTION_BASED, DURATIVE_ACTIONS,NUMERIC_FLUENTS",
		},
		StartedAt: time.Now(),
	}

	kind := info.SupportedKind()
	if kind.Len() != 3 {
		t.Fatalf("expected 3 features, got %d", kind.Len())
	}
	if !kind.Has(types.FeatureDurativeActions) {
		t.Error("expected DURATIVE_ACTIONS to be parsed despite surrounding whitespace")
	}

	if !info.Supports(types.NewProblemKind(types.FeatureActionBased)) {
		t.Error("expected instance to support a subset of its capabilities")
	}
	if info.Supports(types.NewProblemKind(types.FeatureTimedGoals)) {
		t.Error("expected instance to reject a feature it does not declare")
	}
}

func TestServiceInfo_SupportedKind_Empty(t *testing.T) {
	info := ServiceInfo{Kind: KindWorker, Name: "w"}

	if !info.SupportedKind().IsEmpty() {
		t.Error("expected empty kind when no capabilities metadata is present")
	}
	// The empty kind is a subset of everything, including nothing
	if !info.Supports(types.NewProblemKind()) {
		t.Error("expected the empty kind to be supported")
	}
	if info.Supports(types.NewProblemKind(types.FeatureActionBased)) {
		t.Error("expected non-empty kinds to be rejected")
	}
}

func TestBuildKey(t *testing.T) {
	c := &Client{namespace: "planforge"}

	got := c.buildKey(KindEngine, "nextflap", "inst-42")
	want := "/planforge/engine/nextflap/inst-42"
	if got != want {
		t.Errorf("buildKey = %q, want %q", got, want)
	}
}

func TestNewTLSInfo(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TLSConfig
		wantNil bool
		wantErr bool
	}{
		{"nil config", nil, true, false},
		{"disabled", &TLSConfig{Enabled: false}, true, false},
		{"missing cert", &TLSConfig{Enabled: true, KeyFile: "k", CAFile: "ca"}, false, true},
		{"missing key", &TLSConfig{Enabled: true, CertFile: "c", CAFile: "ca"}, false, true},
		{"missing ca", &TLSConfig{Enabled: true, CertFile: "c", KeyFile: "k"}, false, true},
		{"complete", &TLSConfig{Enabled: true, CertFile: "c", KeyFile: "k", CAFile: "ca"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := newTLSInfo(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil && info != nil {
				t.Error("expected nil tlsInfo")
			}
			if !tt.wantNil && info == nil {
				t.Error("expected non-nil tlsInfo")
			}
		})
	}
}
