package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal,
// and Issue values carrying an arbitrary Value are not safe map keys.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	// ===================
	// Pattern validation
	// ===================
	{
		err: ErrDurationOutOfRange,
		info: ErrorInfo{
			Message: "A phase duration is outside the allowed range.",
			Action:  "Use 0.5 to 60 seconds for inhale and exhale, 0 to 60 seconds for holds.",
		},
	},
	{
		err: ErrMissingRequiredPhase,
		info: ErrorInfo{
			Message: "The pattern is missing a required field.",
			Action:  "Add name, type, inhale, holdTop, exhale, level, category and description.",
		},
	},
	{
		err: ErrInvalidPhaseSequence,
		info: ErrorInfo{
			Message: "The pattern type does not match its phases.",
			Action:  "Use type 3-phase without holdBottom, or 4-phase with a positive holdBottom.",
		},
	},
	{
		err: ErrInvalidPattern,
		info: ErrorInfo{
			Message: "The pattern is malformed.",
			Action:  "Run 'breathe validate <file>' to see every problem with the pattern.",
		},
	},
	{
		err: ErrPerformanceWarning,
		info: ErrorInfo{
			Message: "A phase is longer than 30 seconds.",
			Action:  "",
		},
	},

	// ===================
	// Engine
	// ===================
	{
		err: ErrCalculation,
		info: ErrorInfo{
			Message: "Path geometry could not be computed exactly; safe defaults were used.",
			Action:  "Check the geometry section of your configuration.",
		},
	},
	{
		err: ErrStateCorruption,
		info: ErrorInfo{
			Message: "The breathing session recovered from an inconsistent state.",
			Action:  "",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is missing.",
			Action:  "",
		},
	},
	{
		err: ErrConfigInvalidGeometry,
		info: ErrorInfo{
			Message: "Geometry configuration is invalid.",
			Action:  "Set positive values for geometry.diagonal_length, max_horizontal_length and viewport_width.",
		},
	},
	{
		err: ErrConfigInvalidEngine,
		info: ErrorInfo{
			Message: "Engine configuration is invalid.",
			Action:  "engine.cache_size and engine.max_transitions_per_update must be at least 1.",
		},
	},
	{
		err: ErrConfigInvalidDisplay,
		info: ErrorInfo{
			Message: "Display configuration is invalid.",
			Action:  "Use a display.frame_interval between 10ms and 1s and a canvas_height of at least 5.",
		},
	},

	// ===================
	// Pattern catalog
	// ===================
	{
		err: ErrPatternNotFound,
		info: ErrorInfo{
			Message: "No pattern with that name exists.",
			Action:  "Run 'breathe patterns list' to see the available patterns.",
		},
	},
	{
		err: ErrPatternLoadFailed,
		info: ErrorInfo{
			Message: "A pattern file could not be read.",
			Action:  "Check that the file exists and is readable.",
		},
	},
	{
		err: ErrPatternParse,
		info: ErrorInfo{
			Message: "A pattern file is not valid YAML.",
			Action:  "Fix the YAML syntax and try again.",
		},
	},
	{
		err: ErrNoPatterns,
		info: ErrorInfo{
			Message: "There are no patterns to choose from.",
			Action:  "",
		},
	},

	// ===================
	// CLI
	// ===================
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Unknown output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrMenuCanceled,
		info: ErrorInfo{
			Message: "No pattern was chosen.",
			Action:  "",
		},
	},
	{
		err: ErrInteractiveRequired,
		info: ErrorInfo{
			Message: "An interactive terminal is required.",
			Action:  "Pass --pattern to choose a pattern without a prompt.",
		},
	},
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that have no clear action, the action string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
