package errors

import "fmt"

// Kind tags a reported problem with its category.
// Values match the identifiers shown to users and written to logs.
type Kind string

// Problem kinds reported by the validator, the path calculator and the phase manager.
const (
	KindInvalidPattern       Kind = "INVALID_PATTERN"
	KindDurationOutOfRange   Kind = "DURATION_OUT_OF_RANGE"
	KindMissingRequiredPhase Kind = "MISSING_REQUIRED_PHASE"
	KindInvalidPhaseSequence Kind = "INVALID_PHASE_SEQUENCE"
	KindPerformanceWarning   Kind = "PERFORMANCE_WARNING"
	KindCalculationError     Kind = "CALCULATION_ERROR"
	KindStateCorruption      Kind = "STATE_CORRUPTION"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// Sentinel returns the sentinel error for the kind.
// Unknown kinds map to ErrInvalidPattern.
func (k Kind) Sentinel() error {
	switch k {
	case KindInvalidPattern:
		return ErrInvalidPattern
	case KindDurationOutOfRange:
		return ErrDurationOutOfRange
	case KindMissingRequiredPhase:
		return ErrMissingRequiredPhase
	case KindInvalidPhaseSequence:
		return ErrInvalidPhaseSequence
	case KindPerformanceWarning:
		return ErrPerformanceWarning
	case KindCalculationError:
		return ErrCalculation
	case KindStateCorruption:
		return ErrStateCorruption
	default:
		return ErrInvalidPattern
	}
}

// IsFatal reports whether a problem of this kind makes the input unusable.
// Only performance warnings are advisory.
func (k Kind) IsFatal() bool {
	return k != KindPerformanceWarning
}

// Issue is a single field-level problem.
// It implements error and unwraps to the sentinel of its Kind, so
// errors.Is(issue, ErrDurationOutOfRange) works as expected.
type Issue struct {
	// Kind is the problem category.
	Kind Kind `json:"kind" yaml:"kind"`
	// Field names the pattern field or quantity involved (e.g. "inhale", "ballSpeeds.exhale").
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	// Message is a human-readable description.
	Message string `json:"message" yaml:"message"`
	// Value is the offending value when one exists.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`
}

// NewIssue creates an Issue with a formatted message.
func NewIssue(kind Kind, field, format string, args ...any) Issue {
	return Issue{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithValue returns a copy of the issue carrying the offending value.
func (i Issue) WithValue(v any) Issue {
	i.Value = v
	return i
}

// Error implements the error interface.
func (i Issue) Error() string {
	if i.Field == "" {
		return fmt.Sprintf("%s: %s", i.Kind, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Kind, i.Field, i.Message)
}

// Unwrap returns the sentinel error of the issue's kind.
func (i Issue) Unwrap() error {
	return i.Kind.Sentinel()
}
