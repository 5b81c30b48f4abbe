package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mrz1836/breathe/internal/clock"
	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/domain"
	breatheerrors "github.com/mrz1836/breathe/internal/errors"
	"github.com/mrz1836/breathe/internal/logging"
	"github.com/mrz1836/breathe/internal/phase"
)

// ModelConfig holds display settings for a breathing session.
type ModelConfig struct {
	// FrameInterval is the delay between animation frames.
	FrameInterval time.Duration
	// ShowProgress displays the cycle progress bar.
	ShowProgress bool
	// CanvasHeight is the number of rows the path is drawn in.
	CanvasHeight int
	// MaxCycles quits after this many completed cycles. Zero runs until quit.
	MaxCycles int
	// ViewportWidth is the pixel width mapped onto the terminal width.
	ViewportWidth float64
}

// DefaultModelConfig returns the default session display configuration.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		FrameInterval: constants.DefaultFrameInterval,
		ShowProgress:  true,
		CanvasHeight:  constants.DefaultCanvasHeight,
		ViewportWidth: constants.DefaultViewportWidth,
	}
}

// FrameMsg signals time for a new animation frame.
type FrameMsg time.Time

// BreatheModel is the Bubble Tea model of a breathing session.
// It implements tea.Model interface (Init, Update, View).
// Every frame advances the phase manager to the frame's time.
type BreatheModel struct {
	manager *phase.Manager
	clock   clock.Clock
	config  ModelConfig
	counter WarningCounter
	logger  zerolog.Logger
	bar     *ProgressBar

	// Terminal dimensions
	width, height int

	snapshot      domain.Snapshot
	travelled     float64
	cycleProgress float64
	recovered     *breatheerrors.Issue

	quitting bool
	finished bool
}

// ModelOption configures a BreatheModel.
type ModelOption func(*BreatheModel)

// WithClock sets the clock used for start, pause and resume.
func WithClock(c clock.Clock) ModelOption {
	return func(m *BreatheModel) {
		m.clock = c
	}
}

// WithCounter sets the source of the warning count shown in the footer.
func WithCounter(c WarningCounter) ModelOption {
	return func(m *BreatheModel) {
		m.counter = c
	}
}

// WithLogger sets the session logger.
func WithLogger(logger zerolog.Logger) ModelOption {
	return func(m *BreatheModel) {
		m.logger = logger
	}
}

// NewBreatheModel creates a model that drives manager.
func NewBreatheModel(manager *phase.Manager, cfg ModelConfig, opts ...ModelOption) *BreatheModel {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = constants.DefaultFrameInterval
	}
	if cfg.CanvasHeight < constants.MinCanvasHeight {
		cfg.CanvasHeight = constants.DefaultCanvasHeight
	}
	m := &BreatheModel{
		manager: manager,
		clock:   clock.RealClock{},
		config:  cfg,
		logger:  zerolog.Nop(),
		width:   DefaultTerminalWidth,
		height:  24,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With().Str("component", "tui").Logger()
	m.bar = NewProgressBar(m.barWidth())
	m.snapshot = manager.CurrentState()
	return m
}

// Init starts the session and schedules the first frame.
func (m *BreatheModel) Init() tea.Cmd {
	m.observe(m.manager.Start(m.clock.Now()))
	m.logger.Info().
		Str("pattern", logging.SafeValue(m.manager.Pattern().Name)).
		Str("session_id", m.snapshot.SessionID).
		Int("phases", m.snapshot.TotalPhases).
		Msg("session started")
	return m.tick()
}

// Update handles messages and returns the updated model and any commands.
func (m *BreatheModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.SetWidth(m.barWidth())
		return m, nil

	case FrameMsg:
		if m.quitting {
			return m, nil
		}
		m.observe(m.manager.Update(time.Time(msg)))
		if m.config.MaxCycles > 0 && m.snapshot.CycleNumber >= m.config.MaxCycles {
			m.finished = true
			m.quitting = true
			m.manager.Stop()
			m.logger.Info().Int("cycles", m.snapshot.CycleNumber).Msg("session finished")
			return m, tea.Quit
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *BreatheModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		m.manager.Stop()
		return m, tea.Quit

	case " ", "space", "p":
		now := m.clock.Now()
		if m.manager.State() == constants.ManagerPaused {
			m.observe(m.manager.Resume(now))
		} else {
			m.observe(m.manager.Pause(now))
		}
		return m, nil

	case "r":
		m.manager.Reset()
		m.observe(m.manager.Start(m.clock.Now()))
		return m, nil
	}
	return m, nil
}

// observe records the result of an advancing manager call.
func (m *BreatheModel) observe(res domain.UpdateResult) {
	m.snapshot = res.Snapshot
	m.travelled = m.manager.Position()
	m.cycleProgress = m.manager.CycleProgress()
	if res.Recovered != nil {
		m.recovered = res.Recovered
	}
}

// View renders the current state to a string.
func (m *BreatheModel) View() string {
	if m.quitting {
		if m.finished {
			return fmt.Sprintf("Completed %d %s of %s.\n",
				m.snapshot.CycleNumber, cyclesWord(m.snapshot.CycleNumber), m.manager.Pattern().Name)
		}
		return ""
	}

	var b strings.Builder

	b.WriteString(NewHeader(m.manager.Pattern(), m.width).Render())
	b.WriteString("\n\n")

	metrics := m.manager.Metrics()
	shape := ShapeFrom(metrics)
	canvas := NewCanvas(shape, m.width, m.config.CanvasHeight, m.config.ViewportWidth, metrics.BallPosition)
	b.WriteString(canvas.Render(shape.BallX(m.travelled, m.snapshot.Phases), m.snapshot.CurrentPhase))
	b.WriteString("\n\n")

	b.WriteString(m.phaseLine())
	b.WriteString("\n")

	if m.config.ShowProgress {
		b.WriteString(m.bar.Render(m.cycleProgress, m.snapshot.CurrentPhase))
		b.WriteString("\n")
	}

	if m.recovered != nil {
		b.WriteString(NewOutputStyles().Warning.Render("⚠ " + breatheerrors.UserMessage(*m.recovered)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(NewFooter(m.manager.State(), m.counter).Render())

	return b.String()
}

// phaseLine renders "↗ Inhale  breathe in  2.5s   cycle 3".
func (m *BreatheModel) phaseLine() string {
	name := m.snapshot.CurrentPhase
	label := PhaseStyle(name).Render(PhaseIcon(name) + " " + PhaseLabel(name))

	remaining := m.snapshot.PhaseDuration * (1 - m.snapshot.PhaseProgress)
	line := fmt.Sprintf("%s  %s  %.1fs", label, PhaseHint(name), remaining)

	cycle := fmt.Sprintf("cycle %d", m.snapshot.CycleNumber+1)
	if m.config.MaxCycles > 0 {
		cycle = fmt.Sprintf("cycle %d/%d", min(m.snapshot.CycleNumber+1, m.config.MaxCycles), m.config.MaxCycles)
	}
	line += "   " + StyleDim.Render(cycle)

	if m.snapshot.IsPaused {
		line += "   " + StyleBold.Render("paused")
	}
	return line
}

// Snapshot returns the last observed manager snapshot (useful for testing).
func (m *BreatheModel) Snapshot() domain.Snapshot {
	return m.snapshot
}

// Recovered returns the last self-healing issue reported by the manager.
func (m *BreatheModel) Recovered() *breatheerrors.Issue {
	return m.recovered
}

// IsQuitting returns true if the model is in quitting state.
func (m *BreatheModel) IsQuitting() bool {
	return m.quitting
}

// Finished returns true if the session ended after MaxCycles cycles.
func (m *BreatheModel) Finished() bool {
	return m.finished
}

// tick returns a command that sends a FrameMsg after the frame interval.
func (m *BreatheModel) tick() tea.Cmd {
	return tea.Tick(m.config.FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func (m *BreatheModel) barWidth() int {
	return max(10, min(m.width-4, 60))
}

func cyclesWord(n int) string {
	if n == 1 {
		return "cycle"
	}
	return "cycles"
}

// Run runs the session full-screen until the user quits, the cycle limit is
// reached or ctx is canceled.
func Run(ctx context.Context, model *BreatheModel, in io.Reader, out io.Writer) error {
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			// Canceled by a signal; the session simply ends.
			return nil
		}
		return fmt.Errorf("run session: %w", err)
	}
	return nil
}
