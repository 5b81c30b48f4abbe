package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/breathe/internal/clock"
	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/domain"
	"github.com/mrz1836/breathe/internal/logging"
	"github.com/mrz1836/breathe/internal/phase"
	"github.com/mrz1836/breathe/internal/testutil"
)

func newTestModel(t *testing.T, cfg ModelConfig, opts ...ModelOption) (*BreatheModel, *clock.Manual) {
	t.Helper()

	clk := testutil.NewManualClock()
	manager := phase.NewManager(testutil.BoxBreathing(), domain.DefaultGeometry(), phase.WithClock(clk))
	opts = append([]ModelOption{WithClock(clk)}, opts...)
	return NewBreatheModel(manager, cfg, opts...), clk
}

func frame(d time.Duration) FrameMsg {
	return FrameMsg(testutil.Epoch.Add(d))
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestBreatheModel_InitStartsSession(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, DefaultModelConfig())
	assert.False(t, m.Snapshot().IsRunning)

	cmd := m.Init()
	require.NotNil(t, cmd, "Init schedules the first frame")
	assert.True(t, m.Snapshot().IsRunning)
	assert.Equal(t, constants.PhaseInhale, m.Snapshot().CurrentPhase)
}

func TestBreatheModel_FrameAdvancesManager(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, DefaultModelConfig())
	m.Init()

	_, cmd := m.Update(frame(5 * time.Second))
	require.NotNil(t, cmd, "frames keep ticking")

	s := m.Snapshot()
	assert.Equal(t, constants.PhaseHoldTop, s.CurrentPhase)
	assert.InDelta(t, 0.25, s.PhaseProgress, eps)

	_, _ = m.Update(frame(17 * time.Second))
	assert.Equal(t, constants.PhaseInhale, m.Snapshot().CurrentPhase)
	assert.Equal(t, 1, m.Snapshot().CycleNumber)
}

func TestBreatheModel_PauseAndResume(t *testing.T) {
	t.Parallel()

	m, clk := newTestModel(t, DefaultModelConfig())
	m.Init()

	clk.Set(testutil.Epoch.Add(5 * time.Second))
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, m.Snapshot().IsPaused)
	assert.Contains(t, m.View(), "paused")
	assert.Contains(t, m.View(), "resume")

	// Frames while paused do not move the indicator.
	_, _ = m.Update(frame(12 * time.Second))
	assert.Equal(t, constants.PhaseHoldTop, m.Snapshot().CurrentPhase)
	assert.InDelta(t, 0.25, m.Snapshot().PhaseProgress, eps)

	clk.Set(testutil.Epoch.Add(15 * time.Second))
	_, _ = m.Update(runeKey('p'))
	assert.False(t, m.Snapshot().IsPaused)

	_, _ = m.Update(frame(16 * time.Second))
	assert.Equal(t, constants.PhaseHoldTop, m.Snapshot().CurrentPhase)
	assert.InDelta(t, 0.5, m.Snapshot().PhaseProgress, eps)
}

func TestBreatheModel_Restart(t *testing.T) {
	t.Parallel()

	m, clk := newTestModel(t, DefaultModelConfig())
	m.Init()
	_, _ = m.Update(frame(21 * time.Second))
	require.Equal(t, 1, m.Snapshot().CycleNumber)

	clk.Set(testutil.Epoch.Add(21 * time.Second))
	_, _ = m.Update(runeKey('r'))

	s := m.Snapshot()
	assert.True(t, s.IsRunning)
	assert.Zero(t, s.CycleNumber)
	assert.Equal(t, constants.PhaseInhale, s.CurrentPhase)
	assert.Zero(t, s.PhaseProgress)
}

func TestBreatheModel_Quit(t *testing.T) {
	t.Parallel()

	keys := []tea.KeyMsg{
		runeKey('q'),
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	}

	for _, key := range keys {
		t.Run(key.String(), func(t *testing.T) {
			t.Parallel()

			m, _ := newTestModel(t, DefaultModelConfig())
			m.Init()

			_, cmd := m.Update(key)
			require.NotNil(t, cmd)
			assert.True(t, m.IsQuitting())
			assert.False(t, m.Finished())
			assert.Empty(t, m.View())

			// Late frames are ignored.
			_, cmd = m.Update(frame(time.Second))
			assert.Nil(t, cmd)
		})
	}
}

func TestBreatheModel_StopsAfterMaxCycles(t *testing.T) {
	t.Parallel()

	cfg := DefaultModelConfig()
	cfg.MaxCycles = 1
	m, _ := newTestModel(t, cfg)
	m.Init()

	_, cmd := m.Update(frame(8 * time.Second))
	require.NotNil(t, cmd)
	assert.False(t, m.Finished())
	assert.Contains(t, m.View(), "cycle 1/1")

	_, _ = m.Update(frame(16 * time.Second))
	assert.True(t, m.Finished())
	assert.True(t, m.IsQuitting())
	assert.Equal(t, "Completed 1 cycle of Test Box.\n", m.View())
}

func TestBreatheModel_View(t *testing.T) {
	t.Parallel()

	cfg := DefaultModelConfig()
	m, _ := newTestModel(t, cfg)
	m.Init()

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Nil(t, cmd)

	_, _ = m.Update(frame(time.Second))
	view := m.View()

	assert.Contains(t, view, "Test Box")
	assert.Contains(t, view, "4-4-4-4")
	assert.Contains(t, view, "Inhale")
	assert.Contains(t, view, "breathe in")
	assert.Contains(t, view, "3.0s")
	assert.Contains(t, view, "cycle 1")
	assert.Contains(t, view, "q quit")
	assert.Contains(t, view, string(ballRune))
}

func TestBreatheModel_ViewWithoutProgress(t *testing.T) {
	t.Parallel()

	cfg := DefaultModelConfig()
	cfg.ShowProgress = false
	m, _ := newTestModel(t, cfg)
	m.Init()

	withBar, _ := newTestModel(t, DefaultModelConfig())
	withBar.Init()

	assert.Less(t, len(m.View()), len(withBar.View()))
}

func TestBreatheModel_FooterShowsWarnings(t *testing.T) {
	t.Parallel()

	counter := logging.NewCounter()
	logger := zerolog.New(io.Discard).Hook(counter)
	m, _ := newTestModel(t, DefaultModelConfig(), WithCounter(counter), WithLogger(logger))
	m.Init()

	assert.NotContains(t, m.View(), "warning")

	logger.Warn().Msg("substituted value")
	assert.Contains(t, m.View(), "⚠ 1 warning")
}

func TestNewBreatheModel_FixesInvalidConfig(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, ModelConfig{FrameInterval: -1, CanvasHeight: 1})
	assert.Equal(t, constants.DefaultFrameInterval, m.config.FrameInterval)
	assert.Equal(t, constants.DefaultCanvasHeight, m.config.CanvasHeight)
}
