package types

import (
	"encoding/json"
	"sort"
)

// Feature identifies a single modeling feature a planning problem may use.
// Feature names follow the temporal and numeric planning taxonomy: an engine
// declares the features it can handle, and a problem declares the features it
// actually uses.
type Feature string

// Modeling features recognized by the SDK.
const (
	// FeatureActionBased indicates classical action-based planning.
	FeatureActionBased Feature = "ACTION_BASED"

	// FeatureContinuousTime indicates durative actions over a continuous timeline.
	FeatureContinuousTime Feature = "CONTINUOUS_TIME"

	// FeatureDiscreteTime indicates durative actions over discrete time steps.
	FeatureDiscreteTime Feature = "DISCRETE_TIME"

	// FeatureDurativeActions indicates actions with an explicit duration.
	FeatureDurativeActions Feature = "DURATIVE_ACTIONS"

	// FeatureDurationInequalities indicates duration constraints expressed as inequalities.
	FeatureDurationInequalities Feature = "DURATION_INEQUALITIES"

	// FeatureIntermediateConditionsAndEffects indicates conditions or effects
	// attached to time points strictly inside a durative action.
	FeatureIntermediateConditionsAndEffects Feature = "INTERMEDIATE_CONDITIONS_AND_EFFECTS"

	// FeatureTimedEffects indicates effects scheduled at absolute time points.
	FeatureTimedEffects Feature = "TIMED_EFFECTS"

	// FeatureTimedGoals indicates goals that must hold at or within specific times.
	FeatureTimedGoals Feature = "TIMED_GOALS"

	// FeatureNumericFluents indicates numeric state variables.
	FeatureNumericFluents Feature = "NUMERIC_FLUENTS"

	// FeatureContinuousNumbers indicates real-valued numeric expressions.
	FeatureContinuousNumbers Feature = "CONTINUOUS_NUMBERS"

	// FeatureDiscreteNumbers indicates integer-valued numeric expressions.
	FeatureDiscreteNumbers Feature = "DISCRETE_NUMBERS"

	// FeatureIncreaseEffects indicates effects that increase a numeric fluent.
	FeatureIncreaseEffects Feature = "INCREASE_EFFECTS"

	// FeatureDecreaseEffects indicates effects that decrease a numeric fluent.
	FeatureDecreaseEffects Feature = "DECREASE_EFFECTS"

	// FeatureNegativeConditions indicates negated conditions.
	FeatureNegativeConditions Feature = "NEGATIVE_CONDITIONS"

	// FeatureDisjunctiveConditions indicates disjunctions in conditions.
	FeatureDisjunctiveConditions Feature = "DISJUNCTIVE_CONDITIONS"

	// FeatureEqualities indicates equality comparisons in conditions.
	FeatureEqualities Feature = "EQUALITIES"

	// FeatureStaticFluentsInDurations indicates durations referring to static fluents.
	FeatureStaticFluentsInDurations Feature = "STATIC_FLUENTS_IN_DURATIONS"
)

// ProblemKind is a capability descriptor: the set of modeling features a
// problem uses or an engine supports.
//
// ProblemKind values are immutable; Union and constructors return new values.
// The zero value is the empty kind, which every engine satisfies.
type ProblemKind struct {
	features map[Feature]struct{}
}

// NewProblemKind creates a ProblemKind from the given features.
func NewProblemKind(features ...Feature) ProblemKind {
	set := make(map[Feature]struct{}, len(features))
	for _, f := range features {
		set[f] = struct{}{}
	}
	return ProblemKind{features: set}
}

// Has reports whether the kind includes the given feature.
func (k ProblemKind) Has(f Feature) bool {
	_, ok := k.features[f]
	return ok
}

// IsEmpty reports whether the kind declares no features.
func (k ProblemKind) IsEmpty() bool {
	return len(k.features) == 0
}

// Len returns the number of declared features.
func (k ProblemKind) Len() int {
	return len(k.features)
}

// Features returns the declared features in sorted order.
func (k ProblemKind) Features() []Feature {
	out := make([]Feature, 0, len(k.features))
	for f := range k.features {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsSubsetOf reports whether every feature of k is also declared by other.
// This is the partial order used for capability checks: a problem of kind k
// can be handled by an engine supporting other iff k.IsSubsetOf(other).
// The empty kind is a subset of every kind, including itself.
func (k ProblemKind) IsSubsetOf(other ProblemKind) bool {
	for f := range k.features {
		if !other.Has(f) {
			return false
		}
	}
	return true
}

// Equal reports whether both kinds declare exactly the same features.
func (k ProblemKind) Equal(other ProblemKind) bool {
	return k.IsSubsetOf(other) && other.IsSubsetOf(k)
}

// Union returns a new kind declaring the features of both kinds.
func (k ProblemKind) Union(other ProblemKind) ProblemKind {
	set := make(map[Feature]struct{}, len(k.features)+len(other.features))
	for f := range k.features {
		set[f] = struct{}{}
	}
	for f := range other.features {
		set[f] = struct{}{}
	}
	return ProblemKind{features: set}
}

// String returns a compact representation of the kind's features.
func (k ProblemKind) String() string {
	feats := k.Features()
	s := "["
	for i, f := range feats {
		if i > 0 {
			s += " "
		}
		s += string(f)
	}
	return s + "]"
}

// MarshalJSON encodes the kind as a sorted array of feature names.
func (k ProblemKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.Features())
}

// UnmarshalJSON decodes a kind from an array of feature names.
func (k *ProblemKind) UnmarshalJSON(data []byte) error {
	var feats []Feature
	if err := json.Unmarshal(data, &feats); err != nil {
		return err
	}
	*k = NewProblemKind(feats...)
	return nil
}
