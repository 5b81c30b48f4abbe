package tui

import (
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrz1836/breathe/internal/constants"
)

// plainFill is the bar colour when colors are disabled.
const plainFill = "#808080"

// ProgressBar shows how far the session is through the current cycle.
// The filled part takes the colour of the phase being breathed.
type ProgressBar struct {
	bar   progress.Model
	width int
	color bool
	dark  bool
}

// NewProgressBar creates a cycle progress bar of the given width.
func NewProgressBar(width int) *ProgressBar {
	pb := &ProgressBar{
		bar: progress.New(
			progress.WithWidth(width),
			progress.WithSolidFill(plainFill),
			progress.WithoutPercentage(),
		),
		width: width,
		color: HasColorSupport(),
		dark:  lipgloss.HasDarkBackground(),
	}
	return pb
}

// Render draws the bar at fraction (clamped to 0..1) in the colour of phase.
func (pb *ProgressBar) Render(fraction float64, phase constants.PhaseName) string {
	if fraction < 0 || math.IsNaN(fraction) {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	pb.bar.FullColor = pb.fill(phase)
	return pb.bar.ViewAs(fraction)
}

// fill picks the phase colour for the terminal background.
func (pb *ProgressBar) fill(phase constants.PhaseName) string {
	c, ok := PhaseColors()[phase]
	if !pb.color || !ok {
		return plainFill
	}
	if pb.dark {
		return c.Dark
	}
	return c.Light
}

// Width returns the current width of the bar.
func (pb *ProgressBar) Width() int {
	return pb.width
}

// SetWidth resizes the bar, typically after a window size change.
func (pb *ProgressBar) SetWidth(w int) {
	pb.width = w
	pb.bar.Width = w
}
