package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/domain"
)

// DefaultTerminalWidth is used when terminal width cannot be determined.
const DefaultTerminalWidth = 80

// Header renders the session title line: pattern name, timing and tags.
type Header struct {
	width   int
	pattern domain.Pattern
}

// NewHeader creates a new Header for the pattern at the given width.
func NewHeader(p domain.Pattern, width int) *Header {
	return &Header{width: width, pattern: p}
}

// Timing formats a pattern's durations as "4-7-8" or "4-4-4-4".
func Timing(p domain.Pattern) string {
	parts := []string{formatSeconds(p.Inhale), formatSeconds(p.HoldTop), formatSeconds(p.Exhale)}
	if p.Type == constants.PatternFourPhase && p.HoldBottom != nil {
		parts = append(parts, formatSeconds(*p.HoldBottom))
	}
	return strings.Join(parts, "-")
}

func formatSeconds(s float64) string {
	return fmt.Sprintf("%g", s)
}

// Render returns the header line, centered for the current width.
// The pattern name is truncated so the whole line fits.
func (h *Header) Render() string {
	timing := Timing(h.pattern)
	suffix := "  " + timing
	var tags []string
	for _, tag := range []string{h.pattern.Level, h.pattern.Category} {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) > 0 {
		suffix += "  " + strings.Join(tags, " · ")
	}

	nameWidth := constants.MaxPatternNameWidth
	if h.width > 0 {
		nameWidth = min(nameWidth, h.width-runewidth.StringWidth(suffix))
	}
	name := Truncate(h.pattern.Name, nameWidth)

	plain := name + suffix
	styled := StyleBold.Render(name) + lipgloss.NewStyle().Foreground(ColorMuted).Render(suffix)
	return centerText(styled, plain, h.width)
}

// centerText centers styled text based on the original (unstyled) text visual width.
func centerText(styled, original string, totalWidth int) string {
	textWidth := runewidth.StringWidth(original)
	if totalWidth <= 0 || textWidth >= totalWidth {
		return styled
	}
	padding := (totalWidth - textWidth) / 2
	if padding <= 0 {
		return styled
	}
	return strings.Repeat(" ", padding) + styled
}

// TerminalWidth returns the current terminal width.
// Returns 0 if width cannot be determined.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}
