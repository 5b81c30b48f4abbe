// Package testutil provides shared fixtures for breathe tests.
//
// It should only be imported by test files (*_test.go).
package testutil

import (
	"time"

	"github.com/mrz1836/breathe/internal/clock"
	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/domain"
)

// Epoch is the fixed start time used by manual clocks in tests.
//
//nolint:gochecknoglobals // Fixed test time
var Epoch = time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)

// Ptr returns a pointer to a duration value, for optional holdBottom fields.
func Ptr(v float64) *float64 {
	return &v
}

// ThreePhase returns a valid 4-4-6 three-phase pattern.
func ThreePhase() domain.Pattern {
	return domain.Pattern{
		Name:        "Test Calm",
		Type:        constants.PatternThreePhase,
		Inhale:      4,
		HoldTop:     4,
		Exhale:      6,
		Level:       "beginner",
		Category:    "relaxation",
		Description: "Three phase test pattern",
	}
}

// BoxBreathing returns a valid 4-4-4-4 four-phase pattern.
func BoxBreathing() domain.Pattern {
	return domain.Pattern{
		Name:        "Test Box",
		Type:        constants.PatternFourPhase,
		Inhale:      4,
		HoldTop:     4,
		Exhale:      4,
		HoldBottom:  Ptr(4),
		Level:       "intermediate",
		Category:    "focus",
		Description: "Four phase test pattern",
	}
}

// ZeroHold returns a valid 5-0-5 pattern whose top hold is instantaneous.
func ZeroHold() domain.Pattern {
	return domain.Pattern{
		Name:        "Test Coherent",
		Type:        constants.PatternThreePhase,
		Inhale:      5,
		HoldTop:     0,
		Exhale:      5,
		Level:       "beginner",
		Category:    "balance",
		Description: "Pattern without a top hold",
	}
}

// NewManualClock returns a manual clock set to Epoch.
func NewManualClock() *clock.Manual {
	return clock.NewManual(Epoch)
}

// Ms converts milliseconds to a time.Duration.
func Ms(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
