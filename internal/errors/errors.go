// Package errors provides centralized error handling for breathe.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrInvalidPattern indicates a structurally malformed or unsafe pattern.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrDurationOutOfRange indicates a phase duration outside the allowed limits.
	ErrDurationOutOfRange = errors.New("duration out of range")

	// ErrMissingRequiredPhase indicates a required pattern field is absent.
	ErrMissingRequiredPhase = errors.New("missing required phase")

	// ErrInvalidPhaseSequence indicates the pattern type does not match its phases.
	ErrInvalidPhaseSequence = errors.New("invalid phase sequence")

	// ErrPerformanceWarning indicates a long but still valid phase duration.
	ErrPerformanceWarning = errors.New("performance warning")

	// ErrCalculation indicates a NaN, Inf or negative value surfaced in path math.
	ErrCalculation = errors.New("calculation error")

	// ErrStateCorruption indicates a phase manager invariant was violated.
	ErrStateCorruption = errors.New("state corruption")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidGeometry indicates an invalid geometry configuration value.
	ErrConfigInvalidGeometry = errors.New("invalid geometry configuration")

	// ErrConfigInvalidEngine indicates an invalid engine configuration value.
	ErrConfigInvalidEngine = errors.New("invalid engine configuration")

	// ErrConfigInvalidDisplay indicates an invalid display configuration value.
	ErrConfigInvalidDisplay = errors.New("invalid display configuration")

	// ErrPatternNotFound indicates the requested pattern is not in the catalog.
	ErrPatternNotFound = errors.New("pattern not found")

	// ErrPatternLoadFailed indicates a pattern file could not be read.
	ErrPatternLoadFailed = errors.New("pattern load failed")

	// ErrPatternParse indicates a pattern file has invalid YAML syntax.
	ErrPatternParse = errors.New("pattern parse error")

	// ErrNoPatterns indicates that no patterns are available to choose from.
	ErrNoPatterns = errors.New("no patterns available")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMenuCanceled indicates the user left an interactive menu without choosing.
	ErrMenuCanceled = errors.New("menu canceled")

	// ErrInteractiveRequired indicates that interactive prompts are required but not available.
	ErrInteractiveRequired = errors.New("interactive prompt required")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
