package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrz1836/breathe/internal/constants"
)

// KeyHint is a single key binding shown in the footer.
type KeyHint struct {
	Key    string
	Action string
}

// WarningCounter reports how many warnings and errors were logged.
// logging.Counter satisfies it.
type WarningCounter interface {
	Warnings() int64
	Errors() int64
}

// Footer renders key hints and the number of self-healing warnings.
type Footer struct {
	state   constants.ManagerState
	counter WarningCounter
}

// NewFooter creates a Footer for the given manager state.
// counter may be nil.
func NewFooter(state constants.ManagerState, counter WarningCounter) *Footer {
	return &Footer{state: state, counter: counter}
}

// Keys returns the key hints that apply to the current state.
func (f *Footer) Keys() []KeyHint {
	pause := KeyHint{Key: "space", Action: "pause"}
	if f.state == constants.ManagerPaused {
		pause.Action = "resume"
	}
	return []KeyHint{
		pause,
		{Key: "r", Action: "restart"},
		{Key: "q", Action: "quit"},
	}
}

// Status returns the warning summary, or an empty string when nothing was logged.
func (f *Footer) Status() string {
	if f.counter == nil {
		return ""
	}
	warnings, errs := f.counter.Warnings(), f.counter.Errors()
	switch {
	case warnings == 0 && errs == 0:
		return ""
	case errs == 0:
		return fmt.Sprintf("⚠ %d %s", warnings, plural(warnings, "warning"))
	default:
		return fmt.Sprintf("⚠ %d %s, %d %s", warnings, plural(warnings, "warning"), errs, plural(errs, "error"))
	}
}

// Render returns the footer line.
func (f *Footer) Render() string {
	keys := f.Keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if HasColorSupport() {
			parts = append(parts, StyleBold.Render(k.Key)+" "+k.Action)
		} else {
			parts = append(parts, k.Key+" "+k.Action)
		}
	}
	line := strings.Join(parts, "  ·  ")

	if status := f.Status(); status != "" {
		if HasColorSupport() {
			status = lipgloss.NewStyle().Foreground(ColorWarning).Render(status)
		}
		line += "    " + status
	}
	return line
}

func plural(n int64, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
