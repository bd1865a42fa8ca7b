// Package result provides quality assessment for plan generation results.
//
// Engines report a coarse status, but a status alone does not tell a caller
// whether the output is trustworthy: a solver can report success with an
// empty plan, finish suspiciously fast, or produce a schedule whose metrics
// contradict the plan itself. The Validator applies configurable rules that
// downgrade quality and confidence when results look incomplete or anomalous.
//
// Callers can additionally attach CEL acceptance criteria (see Criterion)
// that express domain-specific requirements such as "makespan < 120.0".
package result

import (
	"fmt"

	"github.com/planforge-ai/sdk/engine"
)

// ResultQuality indicates the quality/completeness of a solve result
type ResultQuality string

const (
	// QualityFull represents a complete, trustworthy result
	QualityFull ResultQuality = "full"
	// QualityPartial represents a usable but incomplete result
	QualityPartial ResultQuality = "partial"
	// QualityEmpty represents a clean run that produced no plan
	QualityEmpty ResultQuality = "empty"
	// QualitySuspect represents a result that is present but anomalous
	QualitySuspect ResultQuality = "suspect"
)

// ValidatedResult wraps a plan generation result with quality assessment
type ValidatedResult struct {
	Result      *engine.PlanGenerationResult `json:"result"`
	Quality     ResultQuality                `json:"quality"`
	Confidence  float64                      `json:"confidence"` // 0.0-1.0
	Warnings    []string                     `json:"warnings,omitempty"`
	Suggestions []string                     `json:"suggestions,omitempty"`
}

// ValidationRule defines a function that assesses a solve result
// Returns: quality level, confidence score (0.0-1.0), and warnings
type ValidationRule func(res *engine.PlanGenerationResult) (ResultQuality, float64, []string)

// Validator assesses solve results using configurable rules
type Validator struct {
	rules []ValidationRule
}

// NewValidator creates a validator with default rules
func NewValidator() *Validator {
	return &Validator{
		rules: []ValidationRule{
			checkStatus,
			checkPlanShape,
			checkMetrics,
		},
	}
}

// WithRules appends custom rules to the validator
func (v *Validator) WithRules(rules ...ValidationRule) *Validator {
	v.rules = append(v.rules, rules...)
	return v
}

// Validate assesses the quality of a solve result
func (v *Validator) Validate(res *engine.PlanGenerationResult) *ValidatedResult {
	out := &ValidatedResult{
		Result:     res,
		Quality:    QualityFull,
		Confidence: 1.0,
	}

	for _, rule := range v.rules {
		quality, confidence, warnings := rule(res)

		// Downgrade quality if rule indicates issues
		// Quality ordering: Full > Partial > Empty > Suspect
		if shouldDowngradeQuality(out.Quality, quality) {
			out.Quality = quality
		}

		// Use lowest confidence score
		if confidence < out.Confidence {
			out.Confidence = confidence
		}

		// Accumulate warnings
		out.Warnings = append(out.Warnings, warnings...)
	}

	// Add suggestions based on quality
	out.Suggestions = suggestionsForQuality(out.Quality)

	return out
}

// shouldDowngradeQuality determines if quality should be downgraded
func shouldDowngradeQuality(current, candidate ResultQuality) bool {
	qualityScore := map[ResultQuality]int{
		QualityFull:    4,
		QualityPartial: 3,
		QualityEmpty:   2,
		QualitySuspect: 1,
	}
	return qualityScore[candidate] < qualityScore[current]
}

// checkStatus maps the engine status to a baseline quality
func checkStatus(res *engine.PlanGenerationResult) (ResultQuality, float64, []string) {
	if res == nil {
		return QualitySuspect, 0.0, []string{"No result returned by the engine"}
	}

	switch res.Status {
	case engine.StatusSolvedSatisficing, engine.StatusSolvedOptimally:
		return QualityFull, 1.0, nil

	case engine.StatusUnsolvableProven:
		// A proof of unsolvability is a definitive answer, not a failure
		return QualityFull, 1.0, nil

	case engine.StatusUnsolvableIncompletely:
		return QualityEmpty, 0.7, []string{
			"Engine found no plan but could not prove unsolvability",
		}

	case engine.StatusTimeout:
		return QualityPartial, 0.6, []string{
			"Solve hit its time budget before the search completed",
		}

	case engine.StatusMemout:
		return QualityPartial, 0.6, []string{
			"Solve exhausted its memory budget before the search completed",
		}

	case engine.StatusInternalError:
		warnings := []string{"Engine reported an internal error"}
		if n := len(res.LogMessages); n > 0 {
			warnings = append(warnings, fmt.Sprintf("Engine emitted %d log lines - inspect them for the cause", n))
		}
		return QualitySuspect, 0.3, warnings

	case engine.StatusUnsupportedProblem:
		return QualityEmpty, 0.8, []string{
			"Problem uses features outside the engine's supported kind",
		}

	case engine.StatusIntermediate:
		return QualityPartial, 0.8, []string{
			"Result is intermediate - a better plan may follow",
		}

	default:
		return QualitySuspect, 0.3, []string{
			fmt.Sprintf("Unrecognized result status %q", res.Status),
		}
	}
}

// checkPlanShape validates that the plan is consistent with the status
func checkPlanShape(res *engine.PlanGenerationResult) (ResultQuality, float64, []string) {
	if res == nil {
		return QualityFull, 1.0, nil
	}

	solvedStatus := res.Status == engine.StatusSolvedSatisficing ||
		res.Status == engine.StatusSolvedOptimally

	if solvedStatus && res.Plan.IsEmpty() {
		return QualitySuspect, 0.3, []string{
			"Status claims a solution but the plan is empty - possible output parsing failure",
		}
	}

	if !solvedStatus && res.Status != engine.StatusIntermediate && !res.Plan.IsEmpty() {
		return QualitySuspect, 0.4, []string{
			fmt.Sprintf("Plan present despite %q status", res.Status),
		}
	}

	if res.Plan.IsEmpty() {
		return QualityFull, 1.0, nil
	}

	var warnings []string
	for _, a := range res.Plan.Actions {
		if a.Name == "" {
			warnings = append(warnings, "Plan contains an action with no name")
		}
		if a.Start != nil && *a.Start < 0 {
			warnings = append(warnings, fmt.Sprintf("Action %q starts at negative time %.3f", a.Name, *a.Start))
		}
		if a.Duration != nil && *a.Duration < 0 {
			warnings = append(warnings, fmt.Sprintf("Action %q has negative duration %.3f", a.Name, *a.Duration))
		}
	}
	if len(warnings) > 0 {
		return QualitySuspect, 0.4, warnings
	}

	return QualityFull, 1.0, nil
}

// checkMetrics validates that engine-reported metrics are not anomalous
func checkMetrics(res *engine.PlanGenerationResult) (ResultQuality, float64, []string) {
	if res == nil || len(res.Metrics) == 0 {
		return QualityFull, 1.0, nil
	}

	var warnings []string

	// Negative timings indicate a parsing or clock problem
	if t, ok := res.Metrics["engine_internal_time"]; ok && t < 0 {
		warnings = append(warnings, fmt.Sprintf(
			"Engine reported negative internal time (%.3fs) - possible parsing error", t,
		))
		return QualitySuspect, 0.3, warnings
	}

	// A sizable plan produced in effectively zero time is suspicious
	if t, ok := res.Metrics["engine_internal_time"]; ok && !res.Plan.IsEmpty() {
		if t < 0.001 && len(res.Plan.Actions) > 50 {
			warnings = append(warnings, fmt.Sprintf(
				"Engine produced %d actions in under a millisecond - results may be stale or cached",
				len(res.Plan.Actions),
			))
			return QualitySuspect, 0.5, warnings
		}
	}

	// A reported makespan that contradicts the plan indicates drift between
	// the engine's schedule and its plan output
	if reported, ok := res.Metrics["makespan"]; ok && !res.Plan.IsEmpty() {
		computed := res.Plan.Makespan()
		if diff := reported - computed; diff > 0.5 || diff < -0.5 {
			warnings = append(warnings, fmt.Sprintf(
				"Reported makespan (%.3f) disagrees with the plan's schedule (%.3f)",
				reported, computed,
			))
			return QualityPartial, 0.6, warnings
		}
	}

	return QualityFull, 1.0, warnings
}

// suggestionsForQuality returns actionable suggestions based on quality
func suggestionsForQuality(quality ResultQuality) []string {
	switch quality {
	case QualityEmpty:
		return []string{
			"Verify the domain and problem models describe the intended task",
			"Check whether the goal is reachable from the initial state",
			"Try an engine whose supported features cover the problem kind",
		}
	case QualityPartial:
		return []string{
			"Consider increasing the solve timeout for a complete search",
			"Re-run the solve with a larger memory budget",
			"Treat any returned plan as a candidate, not a guarantee",
		}
	case QualitySuspect:
		return []string{
			"Review the engine log messages for errors or warnings",
			"Re-run the solve to verify the result is reproducible",
			"Validate the plan independently before executing it",
		}
	default:
		return []string{}
	}
}
