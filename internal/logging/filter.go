// Package logging provides zerolog utilities for breathe.
// It strips terminal control sequences that arrive through user pattern files
// so they never reach the log file or the terminal, and counts log events by
// level so the display can report them.
package logging

import (
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// MaxFieldLength is the number of runes a sanitized field value is cut to.
const MaxFieldLength = 256

// truncationMarker is appended to values cut by SafeValue.
const truncationMarker = "…"

// controlPatterns matches escape sequences and control characters that would
// move the cursor, recolor or retitle a terminal when printed.
var controlPatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// OSC sequences (window title, hyperlinks), terminated by BEL or ST
	regexp.MustCompile(`\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`),

	// CSI sequences (colors, cursor movement, erase)
	regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`),

	// Remaining two-byte escapes
	regexp.MustCompile(`\x1b[@-Z\\-_]`),

	// C0 controls except tab and newline, plus DEL and C1 controls
	regexp.MustCompile(`[\x00-\x08\x0b-\x1f\x7f\x{80}-\x{9f}]`),
}

// SanitizeHook is a zerolog hook that flags log entries whose message carries
// terminal control sequences.
type SanitizeHook struct{}

// NewSanitizeHook creates a new SanitizeHook.
func NewSanitizeHook() *SanitizeHook {
	return &SanitizeHook{}
}

// Run implements the zerolog.Hook interface.
// Zerolog does not allow a hook to rewrite the message, so the message must be
// sanitized at the call site. The hook marks entries that were not.
func (h *SanitizeHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsControlSequences(msg) {
		e.Bool("contains_control_chars", true)
	}
}

// ContainsControlSequences reports whether s holds any terminal escape
// sequence or control character other than tab and newline.
func ContainsControlSequences(s string) bool {
	for _, pattern := range controlPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// Sanitize removes terminal escape sequences and control characters from s.
// Invalid UTF-8 is replaced with the Unicode replacement character.
func Sanitize(s string) string {
	result := strings.ToValidUTF8(s, "�")
	for _, pattern := range controlPatterns {
		result = pattern.ReplaceAllString(result, "")
	}
	return result
}

// SafeValue sanitizes a user-supplied value for logging and cuts it to
// MaxFieldLength runes.
//
// Usage:
//
//	logger.Info().Str("pattern", logging.SafeValue(p.Name)).Msg("session started")
func SafeValue(value string) string {
	clean := Sanitize(value)
	if utf8.RuneCountInString(clean) <= MaxFieldLength {
		return clean
	}
	runes := []rune(clean)
	return string(runes[:MaxFieldLength]) + truncationMarker
}

// FilteringWriter wraps an io.Writer and strips control sequences from output.
// It guards the log file against values that bypassed SafeValue.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter creates a new FilteringWriter that wraps the given writer.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer, sanitizing data before writing.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	filtered := Sanitize(string(p))
	_, err = fw.w.Write([]byte(filtered))
	if err != nil {
		return 0, err
	}
	// Return original length so callers don't think there was a short write
	return len(p), nil
}
