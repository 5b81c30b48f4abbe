// Package library provides the breathing patterns available to a session:
// a built-in catalog plus user pattern files in YAML.
//
// Every pattern passes through the pattern validator on the way in. Files
// that fail validation are still listed together with their report and the
// fallback that would be used in their place.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, internal/pattern, std lib
//   - MUST NOT import: internal/phase, internal/cli, internal/tui
package library

import (
	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/domain"
)

// SourceBuiltin is the Entry.Source of built-in patterns.
const SourceBuiltin = "builtin"

func hold(v float64) *float64 {
	return &v
}

// Builtin returns fresh copies of the built-in patterns.
func Builtin() []domain.Pattern {
	return []domain.Pattern{
		{
			Name:       "Box Breathing",
			Type:       constants.PatternFourPhase,
			Inhale:     4,
			HoldTop:    4,
			Exhale:     4,
			HoldBottom: hold(4),
			Level:      "beginner",
			Category:   "focus",
			Description: "Four equal sides: breathe in, hold, breathe out, hold.\n\n" +
				"Used to steady attention under pressure. Keep every phase the same length " +
				"and let the shoulders stay low.",
		},
		{
			Name:     "Relaxing 4-7-8",
			Type:     constants.PatternThreePhase,
			Inhale:   4,
			HoldTop:  7,
			Exhale:   8,
			Level:    "intermediate",
			Category: "sleep",
			Description: "A long hold followed by an even longer exhale.\n\n" +
				"Exhale through the mouth. If the hold feels strained, shorten every phase " +
				"but keep the **4:7:8** ratio.",
		},
		{
			Name:     "Coherent Breathing",
			Type:     constants.PatternThreePhase,
			Inhale:   5,
			HoldTop:  0,
			Exhale:   5,
			Level:    "beginner",
			Category: "balance",
			Description: "Six breaths a minute with no pauses.\n\n" +
				"The top of the path is a sharp peak: the breath turns without holding.",
		},
		{
			Name:     "Energizing",
			Type:     constants.PatternThreePhase,
			Inhale:   2,
			HoldTop:  0,
			Exhale:   2,
			Level:    "intermediate",
			Category: "energy",
			Description: "Short, brisk breaths through the nose.\n\n" +
				"Stop and return to normal breathing if you feel light-headed.",
		},
		{
			Name:     "Triangle",
			Type:     constants.PatternThreePhase,
			Inhale:   4,
			HoldTop:  4,
			Exhale:   4,
			Level:    "beginner",
			Category: "focus",
			Description: "Box breathing without the bottom hold.\n\n" +
				"A gentle introduction to breath holds.",
		},
		{
			Name:     "Extended Exhale",
			Type:     constants.PatternThreePhase,
			Inhale:   4,
			HoldTop:  2,
			Exhale:   6,
			Level:    "beginner",
			Category: "relaxation",
			Description: "An exhale longer than the inhale.\n\n" +
				"Slowing the out-breath is the simplest way to wind down.",
		},
	}
}
