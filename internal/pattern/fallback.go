package pattern

import (
	"strings"

	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/domain"
)

// presence records which duration fields an input actually carried.
type presence map[constants.PhaseName]bool

// allPresent treats every duration field of a typed pattern as supplied.
func allPresent() presence {
	return presence{
		constants.PhaseInhale:     true,
		constants.PhaseHoldTop:    true,
		constants.PhaseExhale:     true,
		constants.PhaseHoldBottom: true,
	}
}

// CreateFallbackPattern builds a known-safe pattern from an invalid one.
//
// The result starts from the 3-phase 4/2/6 default and keeps every duration
// of the original that is safe on its own. A 4-phase original keeps its type
// when its holdBottom value is itself safe. The result always satisfies
// ValidatePhaseSequence.
func CreateFallbackPattern(invalid *domain.Pattern) domain.Pattern {
	return fallbackFrom(invalid, allPresent())
}

func fallbackFrom(src *domain.Pattern, has presence) domain.Pattern {
	fb := domain.Pattern{
		Name:        constants.FallbackPatternName,
		Type:        constants.PatternThreePhase,
		Inhale:      constants.FallbackInhale,
		HoldTop:     constants.FallbackHoldTop,
		Exhale:      constants.FallbackExhale,
		Level:       constants.FallbackLevel,
		Category:    constants.FallbackCategory,
		Description: constants.FallbackDescription,
	}

	if src == nil {
		return fb
	}

	if src.Name != "" {
		fb.Name = safeModeName(src.Name)
	}
	if src.Level != "" {
		fb.Level = src.Level
	}
	if src.Category != "" {
		fb.Category = src.Category
	}
	if src.Description != "" {
		fb.Description = src.Description
	}

	if has[constants.PhaseInhale] && isSafe(src.Inhale, constants.PhaseInhale) {
		fb.Inhale = src.Inhale
	}
	if has[constants.PhaseHoldTop] && isSafe(src.HoldTop, constants.PhaseHoldTop) {
		fb.HoldTop = src.HoldTop
	}
	if has[constants.PhaseExhale] && isSafe(src.Exhale, constants.PhaseExhale) {
		fb.Exhale = src.Exhale
	}

	if src.Type == constants.PatternFourPhase && has[constants.PhaseHoldBottom] && src.HoldBottom != nil {
		hb := *src.HoldBottom
		if hb > 0 && isSafe(hb, constants.PhaseHoldBottom) {
			fb.Type = constants.PatternFourPhase
			fb.HoldBottom = &hb
		}
	}

	return fb
}

// isSafe reports whether a duration passes its own limits.
func isSafe(d float64, phase constants.PhaseName) bool {
	return ValidateDuration(d, phase).Valid
}

// safeModeName appends the safe-mode suffix once.
func safeModeName(name string) string {
	if strings.HasSuffix(name, constants.FallbackNameSuffix) {
		return name
	}
	return name + constants.FallbackNameSuffix
}
