// Package pattern validates breathing patterns before they reach geometry or
// timing math, and builds safe substitutes when they fail.
//
// Every check reports problems as values on a domain.ValidationResult. The one
// exception is CreatePhaseSequence, whose callers are expected to validate first.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, std lib
//   - MUST NOT import: internal/geometry, internal/phase, internal/cli
package pattern

import (
	"fmt"
	"math"

	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/domain"
	breatheerrors "github.com/mrz1836/breathe/internal/errors"
)

// ValidateDuration checks a single phase duration in seconds.
//
// Rules:
//   - the value must be finite
//   - inhale and exhale must be at least MinPhaseDuration
//   - holdTop and holdBottom may be anything from zero upward
//   - no phase may exceed MaxPhaseDuration
//   - anything above PerformanceWarningDuration adds a warning but stays valid
func ValidateDuration(duration float64, phase constants.PhaseName) domain.ValidationResult {
	result := domain.NewValidationResult()
	field := phase.String()

	if math.IsNaN(duration) || math.IsInf(duration, 0) {
		result.AddError(breatheerrors.NewIssue(breatheerrors.KindDurationOutOfRange, field,
			"must be a finite number").WithValue(duration))
		return result
	}

	minDuration := constants.MinPhaseDuration
	if phase.IsHold() {
		minDuration = 0
	}

	if duration < minDuration {
		if phase.IsHold() {
			result.AddError(breatheerrors.NewIssue(breatheerrors.KindDurationOutOfRange, field,
				"must not be negative, got %gs", duration).WithValue(duration))
		} else {
			result.AddError(breatheerrors.NewIssue(breatheerrors.KindDurationOutOfRange, field,
				"must be at least %gs, got %gs", minDuration, duration).WithValue(duration))
		}
		return result
	}

	if duration > constants.MaxPhaseDuration {
		result.AddError(breatheerrors.NewIssue(breatheerrors.KindDurationOutOfRange, field,
			"must be at most %gs, got %gs", constants.MaxPhaseDuration, duration).WithValue(duration))
		return result
	}

	if duration > constants.PerformanceWarningDuration {
		result.AddWarning(breatheerrors.NewIssue(breatheerrors.KindPerformanceWarning, field,
			"durations over %gs may affect animation performance", constants.PerformanceWarningDuration).WithValue(duration))
	}

	return result
}

// ValidatePhaseSequence reports whether the pattern's phases match its type.
// It is a predicate: any violation yields false, nothing is returned or thrown.
func ValidatePhaseSequence(p *domain.Pattern) bool {
	if p == nil {
		return false
	}

	if !(p.Inhale > 0) || !ValidateDuration(p.Inhale, constants.PhaseInhale).Valid {
		return false
	}
	if !(p.HoldTop >= 0) || !ValidateDuration(p.HoldTop, constants.PhaseHoldTop).Valid {
		return false
	}
	if !(p.Exhale > 0) || !ValidateDuration(p.Exhale, constants.PhaseExhale).Valid {
		return false
	}

	switch p.Type {
	case constants.PatternThreePhase:
		return p.HoldBottom == nil
	case constants.PatternFourPhase:
		if p.HoldBottom == nil {
			return false
		}
		hb := *p.HoldBottom
		return hb > 0 && ValidateDuration(hb, constants.PhaseHoldBottom).Valid
	default:
		return false
	}
}

// ValidatePatternDetailed runs every structural check and collects all
// violations rather than stopping at the first. When the pattern is invalid
// the result carries a fallback built by CreateFallbackPattern.
func ValidatePatternDetailed(p *domain.Pattern) domain.ValidationResult {
	result := domain.NewValidationResult()

	if p == nil {
		result.AddError(breatheerrors.NewIssue(breatheerrors.KindInvalidPattern, "",
			"pattern must be a non-null object"))
		fallback := CreateFallbackPattern(nil)
		result.Fallback = &fallback
		return result
	}

	checkRequiredText(p, &result)

	typeOK := p.Type.IsValid()
	if p.Type != "" && !typeOK {
		result.AddError(breatheerrors.NewIssue(breatheerrors.KindInvalidPattern, "type",
			"must be %q or %q, got %q", constants.PatternThreePhase, constants.PatternFourPhase, p.Type).WithValue(string(p.Type)))
	}

	result.Merge(ValidateDuration(p.Inhale, constants.PhaseInhale))
	result.Merge(ValidateDuration(p.HoldTop, constants.PhaseHoldTop))
	result.Merge(ValidateDuration(p.Exhale, constants.PhaseExhale))
	if p.HoldBottom != nil {
		result.Merge(ValidateDuration(*p.HoldBottom, constants.PhaseHoldBottom))
	}

	if typeOK {
		checkTypeCoupling(p, &result)
		if result.Valid && !ValidatePhaseSequence(p) {
			result.AddError(breatheerrors.NewIssue(breatheerrors.KindInvalidPhaseSequence, "",
				"phases are not consistent with type %q", p.Type))
		}
	}

	if !result.Valid {
		fallback := CreateFallbackPattern(p)
		result.Fallback = &fallback
	}

	return result
}

// checkRequiredText reports empty required text fields.
func checkRequiredText(p *domain.Pattern, result *domain.ValidationResult) {
	required := []struct {
		field string
		value string
	}{
		{"name", p.Name},
		{"type", string(p.Type)},
		{"level", p.Level},
		{"category", p.Category},
		{"description", p.Description},
	}
	for _, r := range required {
		if r.value == "" {
			result.AddError(breatheerrors.NewIssue(breatheerrors.KindMissingRequiredPhase, r.field,
				"is required"))
		}
	}
}

// checkTypeCoupling reports a holdBottom whose presence does not match the type.
func checkTypeCoupling(p *domain.Pattern, result *domain.ValidationResult) {
	switch p.Type {
	case constants.PatternThreePhase:
		if p.HoldBottom != nil {
			result.AddError(breatheerrors.NewIssue(breatheerrors.KindInvalidPhaseSequence, "holdBottom",
				"must be absent for a %s pattern", constants.PatternThreePhase).WithValue(*p.HoldBottom))
		}
	case constants.PatternFourPhase:
		if p.HoldBottom == nil {
			result.AddError(breatheerrors.NewIssue(breatheerrors.KindInvalidPhaseSequence, "holdBottom",
				"is required for a %s pattern", constants.PatternFourPhase))
			return
		}
		if *p.HoldBottom == 0 {
			result.AddError(breatheerrors.NewIssue(breatheerrors.KindInvalidPhaseSequence, "holdBottom",
				"must be positive for a %s pattern", constants.PatternFourPhase).WithValue(*p.HoldBottom))
		}
	}
}

// CreatePhaseSequence returns the ordered phase names of a pattern.
// It fails with ErrInvalidPhaseSequence when ValidatePhaseSequence rejects the
// pattern; callers are expected to have validated already.
func CreatePhaseSequence(p *domain.Pattern) ([]constants.PhaseName, error) {
	if !ValidatePhaseSequence(p) {
		name := "<nil>"
		if p != nil {
			name = p.Name
		}
		return nil, fmt.Errorf("%w: cannot build phases for pattern %q", breatheerrors.ErrInvalidPhaseSequence, name)
	}

	seq := []constants.PhaseName{constants.PhaseInhale, constants.PhaseHoldTop, constants.PhaseExhale}
	if p.Type == constants.PatternFourPhase {
		seq = append(seq, constants.PhaseHoldBottom)
	}
	return seq, nil
}

// MustCreatePhaseSequence is like CreatePhaseSequence but panics on an
// invalid pattern. Use it only on patterns that already passed validation.
func MustCreatePhaseSequence(p *domain.Pattern) []constants.PhaseName {
	seq, err := CreatePhaseSequence(p)
	if err != nil {
		panic(err)
	}
	return seq
}
