package tui

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/breathe/internal/constants"
)

func TestPhaseLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		phase constants.PhaseName
		want  string
	}{
		{constants.PhaseInhale, "Inhale"},
		{constants.PhaseHoldTop, "Hold Top"},
		{constants.PhaseExhale, "Exhale"},
		{constants.PhaseHoldBottom, "Hold Bottom"},
	}

	for _, tc := range tests {
		t.Run(tc.phase.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, PhaseLabel(tc.phase))
		})
	}
}

func TestPhaseIconAndHint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "↗", PhaseIcon(constants.PhaseInhale))
	assert.Equal(t, "↘", PhaseIcon(constants.PhaseExhale))
	assert.Equal(t, "?", PhaseIcon("unknown"))
	assert.Equal(t, "breathe in", PhaseHint(constants.PhaseInhale))
	assert.Equal(t, "hold", PhaseHint(constants.PhaseHoldBottom))
	assert.Empty(t, PhaseHint("unknown"))
}

func TestPhaseColors_CoverEveryPhase(t *testing.T) {
	t.Parallel()

	colors := PhaseColors()
	for _, p := range []constants.PhaseName{
		constants.PhaseInhale, constants.PhaseHoldTop, constants.PhaseExhale, constants.PhaseHoldBottom,
	} {
		assert.Contains(t, colors, p)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"fits", "Box Breathing", 20, "Box Breathing"},
		{"cut with ellipsis", "Extended Exhale", 10, "Extended…"},
		{"zero width", "Box", 0, ""},
		{"wide runes count double", "呼吸法の練習", 7, "呼吸法…"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Truncate(tc.input, tc.width)
			assert.Equal(t, tc.want, got)
			assert.LessOrEqual(t, runewidth.StringWidth(got), max(tc.width, 0))
		})
	}
}

func TestHasColorSupport_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.False(t, HasColorSupport())
}

func TestHasColorSupport_DumbTerminal(t *testing.T) {
	t.Setenv("TERM", "dumb")
	assert.False(t, HasColorSupport())
}
