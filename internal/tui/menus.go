package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	breatheerrors "github.com/mrz1836/breathe/internal/errors"
)

// Terminal layout constants.
const (
	// TerminalEdgeMargin is the number of characters to leave between
	// menu content and the terminal edge.
	TerminalEdgeMargin = 4

	// MinMenuWidth is the minimum usable width for menu content.
	MinMenuWidth = 40

	// DefaultMenuWidth is used when the terminal width is unknown.
	DefaultMenuWidth = 72
)

// ErrMenuCanceled is returned when the user leaves a menu with q or Esc,
// or when no terminal is attached.
var ErrMenuCanceled = breatheerrors.ErrMenuCanceled

// Option is a selectable menu entry.
type Option struct {
	// Label is the display text shown to the user.
	Label string
	// Description is optional help text appended to the label.
	Description string
	// Value is returned when this option is selected.
	Value string
}

// MenuConfig holds configuration for menus.
type MenuConfig struct {
	// Width is the maximum width for the menu. If 0, adapts to terminal width.
	Width int
	// Accessible enables accessible mode for screen readers.
	Accessible bool
	// ShowKeyHints controls whether key hints are displayed.
	ShowKeyHints bool
}

// MenuConfigOption configures a MenuConfig.
type MenuConfigOption func(*MenuConfig)

// WithMenuWidth sets the menu width.
func WithMenuWidth(width int) MenuConfigOption {
	return func(c *MenuConfig) {
		c.Width = width
	}
}

// WithMenuAccessible enables or disables accessible mode.
func WithMenuAccessible(enabled bool) MenuConfigOption {
	return func(c *MenuConfig) {
		c.Accessible = enabled
	}
}

// NewMenuConfig creates a MenuConfig. Accessible mode is taken from the
// ACCESSIBLE environment variable.
func NewMenuConfig(opts ...MenuConfigOption) *MenuConfig {
	_, accessible := os.LookupEnv("ACCESSIBLE")

	c := &MenuConfig{
		Width:        DefaultMenuWidth,
		Accessible:   accessible,
		ShowKeyHints: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// adaptWidth fits maxWidth into the terminal, never going below MinMenuWidth.
func adaptWidth(maxWidth, terminalWidth int) int {
	if terminalWidth <= 0 {
		if maxWidth <= 0 {
			return DefaultMenuWidth
		}
		return maxWidth
	}

	available := terminalWidth - TerminalEdgeMargin
	if maxWidth > 0 && maxWidth < available {
		return maxWidth
	}
	if available < MinMenuWidth {
		return MinMenuWidth
	}
	return available
}

// huhOptions converts options, folding descriptions into labels since huh
// has no per-option description.
func huhOptions(options []Option) []huh.Option[string] {
	out := make([]huh.Option[string], len(options))
	for i, opt := range options {
		label := opt.Label
		if opt.Description != "" {
			label = opt.Label + " - " + opt.Description
		}
		out[i] = huh.NewOption(label, opt.Value)
	}
	return out
}

// BreatheTheme returns a huh theme using the phase palette.
func BreatheTheme() *huh.Theme {
	CheckNoColor()

	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(ColorSuccess)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)

	t.Blurred.Base = t.Blurred.Base.BorderForeground(ColorMuted)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	t.Help.Ellipsis = t.Help.Ellipsis.Foreground(ColorMuted)

	return t
}

// Select presents a single-selection menu and returns the chosen value.
func Select(title string, options []Option) (string, error) {
	return SelectWithConfig(title, options, NewMenuConfig())
}

// SelectWithConfig presents a single-selection menu with custom configuration.
// It returns ErrMenuCanceled without prompting when stdin is not a terminal.
func SelectWithConfig(title string, options []Option, cfg *MenuConfig) (string, error) {
	if len(options) == 0 {
		return "", breatheerrors.ErrNoPatterns
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", ErrMenuCanceled
	}

	selected := options[0].Value
	field := huh.NewSelect[string]().
		Title(title).
		Options(huhOptions(options)...).
		Value(&selected)

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(BreatheTheme()).
		WithWidth(adaptWidth(cfg.Width, TerminalWidth())).
		WithAccessible(cfg.Accessible).
		WithShowHelp(cfg.ShowKeyHints)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrMenuCanceled
		}
		return "", fmt.Errorf("select menu failed: %w", err)
	}
	return selected, nil
}
