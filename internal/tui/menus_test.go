package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	breatheerrors "github.com/mrz1836/breathe/internal/errors"
)

func TestNewMenuConfig(t *testing.T) {
	t.Setenv("ACCESSIBLE", "1")

	cfg := NewMenuConfig()
	assert.Equal(t, DefaultMenuWidth, cfg.Width)
	assert.True(t, cfg.Accessible)
	assert.True(t, cfg.ShowKeyHints)

	cfg = NewMenuConfig(WithMenuWidth(50), WithMenuAccessible(false))
	assert.Equal(t, 50, cfg.Width)
	assert.False(t, cfg.Accessible)
}

func TestAdaptWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		maxWidth int
		terminal int
		want     int
	}{
		{"unknown terminal keeps max", 60, 0, 60},
		{"unknown terminal and no max", 0, 0, DefaultMenuWidth},
		{"max fits", 60, 120, 60},
		{"narrow terminal shrinks", 100, 80, 76},
		{"very narrow terminal floors", 100, 30, MinMenuWidth},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, adaptWidth(tc.maxWidth, tc.terminal))
		})
	}
}

func TestHuhOptions_FoldsDescription(t *testing.T) {
	t.Parallel()

	opts := huhOptions([]Option{
		{Label: "Box Breathing", Description: "4-4-4-4", Value: "box"},
		{Label: "Plain", Value: "plain"},
	})

	require.Len(t, opts, 2)
	assert.Equal(t, "Box Breathing - 4-4-4-4", opts[0].Key)
	assert.Equal(t, "box", opts[0].Value)
	assert.Equal(t, "Plain", opts[1].Key)
}

func TestSelectWithConfig_NoOptions(t *testing.T) {
	t.Parallel()

	_, err := SelectWithConfig("Pick", nil, NewMenuConfig())
	require.ErrorIs(t, err, breatheerrors.ErrNoPatterns)
}

func TestBreatheTheme(t *testing.T) {
	assert.NotNil(t, BreatheTheme())
}
