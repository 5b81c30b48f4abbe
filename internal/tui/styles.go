// Package tui provides the terminal user interface for breathe.
//
// This package provides a centralized style system using Lip Gloss. All colors
// use AdaptiveColor for light/dark terminal support.
//
// # Semantic Colors
//
// Five semantic colors are exported for use across components:
//   - ColorPrimary (Blue): inhale, active states
//   - ColorSuccess (Green): exhale, valid patterns
//   - ColorWarning (Yellow): holds at the top, warnings
//   - ColorError (Red): invalid patterns, errors
//   - ColorMuted (Gray): holds at the bottom, secondary text
//
// # NO_COLOR Support
//
// Call CheckNoColor() at the start of commands to respect the NO_COLOR environment
// variable. Colors are also disabled when TERM=dumb.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, internal/clock,
//     internal/logging, internal/phase, std lib
//   - MUST NOT import: internal/cli, internal/config
package tui

import (
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrz1836/breathe/internal/constants"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for inhale and active states.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for exhale and valid results.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for the top hold and warnings.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for errors and invalid patterns.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for the bottom hold and secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies dim/faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// PhaseColors returns the color of each phase.
func PhaseColors() map[constants.PhaseName]lipgloss.AdaptiveColor {
	return map[constants.PhaseName]lipgloss.AdaptiveColor{
		constants.PhaseInhale:     ColorPrimary,
		constants.PhaseHoldTop:    ColorWarning,
		constants.PhaseExhale:     ColorSuccess,
		constants.PhaseHoldBottom: ColorMuted,
	}
}

// PhaseStyle returns the style used to draw text for a phase.
// It is unstyled when colors are disabled.
func PhaseStyle(name constants.PhaseName) lipgloss.Style {
	color, ok := PhaseColors()[name]
	if !ok || !HasColorSupport() {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}

// PhaseIcon returns the arrow shown next to a phase label.
func PhaseIcon(name constants.PhaseName) string {
	icons := map[constants.PhaseName]string{
		constants.PhaseInhale:     "↗",
		constants.PhaseHoldTop:    "→",
		constants.PhaseExhale:     "↘",
		constants.PhaseHoldBottom: "→",
	}
	if icon, ok := icons[name]; ok {
		return icon
	}
	return "?"
}

// PhaseHint returns the instruction shown during a phase.
func PhaseHint(name constants.PhaseName) string {
	hints := map[constants.PhaseName]string{
		constants.PhaseInhale:     "breathe in",
		constants.PhaseHoldTop:    "hold",
		constants.PhaseExhale:     "breathe out",
		constants.PhaseHoldBottom: "hold",
	}
	return hints[name]
}

// PhaseLabel turns a phase name such as "holdTop" into "Hold Top".
func PhaseLabel(name constants.PhaseName) string {
	var b strings.Builder
	for i, r := range name.String() {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return cases.Title(language.English).String(b.String())
}

// Truncate cuts s to at most width terminal cells, marking the cut with an
// ellipsis. Wide runes count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return strings.TrimRight(runewidth.Truncate(s, width-1, ""), " ") + "…"
}

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
}

// NewOutputStyles creates common output styles using AdaptiveColor for light/dark terminal support.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Info: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Dim: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// CheckNoColor respects the NO_COLOR environment variable.
// Call this at the start of commands that output styled text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns true if the terminal supports colors.
// Returns false if NO_COLOR is set (any value including empty string) or TERM=dumb.
// This follows the NO_COLOR standard: https://no-color.org/
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return true
}
