package pattern

import (
	"encoding/json"
	"math"

	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/domain"
	breatheerrors "github.com/mrz1836/breathe/internal/errors"
)

// textFields are the required string keys of a pattern document.
//
//nolint:gochecknoglobals // Read-only lookup table
var textFields = []string{"name", "type", "level", "category", "description"}

// durationFields are the required numeric keys of a pattern document, in cycle order.
//
//nolint:gochecknoglobals // Read-only lookup table
var durationFields = []constants.PhaseName{
	constants.PhaseInhale,
	constants.PhaseHoldTop,
	constants.PhaseExhale,
}

// ValidateDocument validates a raw decoded pattern (from YAML or JSON) where a
// missing key is distinguishable from a zero value. It returns the pattern as
// far as it could be decoded together with the full validation result.
//
// Missing keys are MISSING_REQUIRED_PHASE, values of the wrong type are
// INVALID_PATTERN; everything else is checked by ValidatePatternDetailed.
func ValidateDocument(doc map[string]any) (domain.Pattern, domain.ValidationResult) {
	result := domain.NewValidationResult()
	var p domain.Pattern

	if doc == nil {
		result.AddError(breatheerrors.NewIssue(breatheerrors.KindInvalidPattern, "",
			"pattern must be a non-null object"))
		fallback := CreateFallbackPattern(nil)
		result.Fallback = &fallback
		return p, result
	}

	reported := make(map[string]bool)
	has := presence{}

	text := make(map[string]string, len(textFields))
	for _, field := range textFields {
		raw, ok := doc[field]
		if !ok || raw == nil {
			result.AddError(breatheerrors.NewIssue(breatheerrors.KindMissingRequiredPhase, field, "is required"))
			reported[field] = true
			continue
		}
		s, ok := raw.(string)
		if !ok {
			result.AddError(breatheerrors.NewIssue(breatheerrors.KindInvalidPattern, field,
				"must be a string, got %T", raw).WithValue(raw))
			reported[field] = true
			continue
		}
		text[field] = s
	}
	p.Name = text["name"]
	p.Type = constants.PatternType(text["type"])
	p.Level = text["level"]
	p.Category = text["category"]
	p.Description = text["description"]

	durations := make(map[constants.PhaseName]float64, len(durationFields))
	for _, phase := range durationFields {
		field := phase.String()
		raw, ok := doc[field]
		if !ok || raw == nil {
			result.AddError(breatheerrors.NewIssue(breatheerrors.KindMissingRequiredPhase, field, "is required"))
			reported[field] = true
			continue
		}
		v, ok := toFloat(raw)
		if !ok {
			result.AddError(breatheerrors.NewIssue(breatheerrors.KindInvalidPattern, field,
				"must be a number, got %T", raw).WithValue(raw))
			reported[field] = true
			continue
		}
		durations[phase] = v
		has[phase] = true
	}
	p.Inhale = durations[constants.PhaseInhale]
	p.HoldTop = durations[constants.PhaseHoldTop]
	p.Exhale = durations[constants.PhaseExhale]

	if raw, ok := doc[constants.PhaseHoldBottom.String()]; ok && raw != nil {
		if v, ok := toFloat(raw); ok {
			p.HoldBottom = &v
			has[constants.PhaseHoldBottom] = true
		} else {
			result.AddError(breatheerrors.NewIssue(breatheerrors.KindInvalidPattern, constants.PhaseHoldBottom.String(),
				"must be a number, got %T", raw).WithValue(raw))
			reported[constants.PhaseHoldBottom.String()] = true
		}
	}

	detailed := ValidatePatternDetailed(&p)
	for _, issue := range detailed.Errors {
		if issue.Field != "" && reported[issue.Field] {
			continue
		}
		result.AddError(issue)
	}
	result.Warnings = append(result.Warnings, detailed.Warnings...)

	if !result.Valid {
		fallback := fallbackFrom(&p, has)
		result.Fallback = &fallback
	}

	return p, result
}

// toFloat converts the numeric types produced by YAML and JSON decoders.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return math.NaN(), false
		}
		return f, true
	default:
		return 0, false
	}
}
