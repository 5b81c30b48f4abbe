// Package domain provides the shared types of the breathing engine.
//
// Import rules:
//   - CAN import: internal/constants, internal/errors, std lib
//   - MUST NOT import: any other internal package
package domain

import (
	"errors"

	"github.com/mrz1836/breathe/internal/constants"
	breatheerrors "github.com/mrz1836/breathe/internal/errors"
)

// PhaseName is re-exported for convenience.
type PhaseName = constants.PhaseName

// PatternType is re-exported for convenience.
type PatternType = constants.PatternType

// Pattern describes a breathing technique as a set of timed phases.
// Durations are in seconds. A pattern is immutable for the length of a cycle.
type Pattern struct {
	// Name is a display label.
	Name string `json:"name" yaml:"name"`
	// Type is "3-phase" or "4-phase".
	Type PatternType `json:"type" yaml:"type"`
	// Inhale is the rising diagonal duration.
	Inhale float64 `json:"inhale" yaml:"inhale"`
	// HoldTop is the top hold duration; zero means no hold.
	HoldTop float64 `json:"holdTop" yaml:"holdTop"`
	// Exhale is the falling diagonal duration.
	Exhale float64 `json:"exhale" yaml:"exhale"`
	// HoldBottom is set only for 4-phase patterns.
	HoldBottom *float64 `json:"holdBottom,omitempty" yaml:"holdBottom,omitempty"`
	// Level is the difficulty label (e.g. "beginner").
	Level string `json:"level" yaml:"level"`
	// Category groups patterns (e.g. "relaxation", "focus").
	Category string `json:"category" yaml:"category"`
	// Description is free-form Markdown.
	Description string `json:"description" yaml:"description"`
}

// HasHoldBottom reports whether the pattern carries a bottom hold value.
func (p Pattern) HasHoldBottom() bool {
	return p.HoldBottom != nil
}

// Duration returns the duration of the named phase and whether the pattern has it.
func (p Pattern) Duration(name PhaseName) (float64, bool) {
	switch name {
	case constants.PhaseInhale:
		return p.Inhale, true
	case constants.PhaseHoldTop:
		return p.HoldTop, true
	case constants.PhaseExhale:
		return p.Exhale, true
	case constants.PhaseHoldBottom:
		if p.HoldBottom == nil {
			return 0, false
		}
		return *p.HoldBottom, true
	default:
		return 0, false
	}
}

// TotalDuration returns the sum of all present phase durations in seconds.
func (p Pattern) TotalDuration() float64 {
	total := p.Inhale + p.HoldTop + p.Exhale
	if p.HoldBottom != nil {
		total += *p.HoldBottom
	}
	return total
}

// Clone returns a deep copy of the pattern.
func (p Pattern) Clone() Pattern {
	c := p
	if p.HoldBottom != nil {
		v := *p.HoldBottom
		c.HoldBottom = &v
	}
	return c
}

// ValidationResult is the outcome of a pattern or duration check.
// Problems are reported as values, never as returned errors.
type ValidationResult struct {
	// Valid is true when Errors is empty.
	Valid bool `json:"isValid"`
	// Errors lists every fatal problem found.
	Errors []breatheerrors.Issue `json:"errors"`
	// Warnings lists advisory problems; they do not affect Valid.
	Warnings []breatheerrors.Issue `json:"warnings"`
	// Fallback is a safe substitute, set only when Valid is false
	// for a full pattern check.
	Fallback *Pattern `json:"fallbackPattern,omitempty"`
}

// NewValidationResult returns an empty, valid result.
func NewValidationResult() ValidationResult {
	return ValidationResult{
		Valid:    true,
		Errors:   []breatheerrors.Issue{},
		Warnings: []breatheerrors.Issue{},
	}
}

// AddError records a fatal problem and marks the result invalid.
func (r *ValidationResult) AddError(issue breatheerrors.Issue) {
	r.Errors = append(r.Errors, issue)
	r.Valid = false
}

// AddWarning records an advisory problem.
func (r *ValidationResult) AddWarning(issue breatheerrors.Issue) {
	r.Warnings = append(r.Warnings, issue)
}

// Merge appends the problems of other into r.
func (r *ValidationResult) Merge(other ValidationResult) {
	for _, e := range other.Errors {
		r.AddError(e)
	}
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Err joins all errors into a single error, or returns nil when valid.
func (r ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}
