// Package phase provides the time-driven state machine that walks a breathing
// pattern's phases.
//
// A Manager is driven by repeated Update calls from an animation loop. It never
// schedules anything itself and never blocks. It is not safe for concurrent
// use; a host with several goroutines must serialize access.
//
// Every method that takes a time.Time treats the zero value as "now" on the
// injected clock.
//
// Import rules:
//   - CAN import: internal/clock, internal/constants, internal/domain,
//     internal/errors, internal/geometry, internal/pattern, std lib
//   - MUST NOT import: internal/cli, internal/tui
package phase

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/breathe/internal/clock"
	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/domain"
	breatheerrors "github.com/mrz1836/breathe/internal/errors"
	"github.com/mrz1836/breathe/internal/geometry"
	"github.com/mrz1836/breathe/internal/pattern"
)

// Manager tracks the current phase, the progress within it and the number of
// completed cycles for one practice session.
type Manager struct {
	logger         zerolog.Logger
	clock          clock.Clock
	calc           *geometry.Calculator
	geometry       domain.GeometryConfig
	maxTransitions int
	sessionID      string

	pattern    domain.Pattern
	validation domain.ValidationResult
	phases     []domain.Phase
	durations  []time.Duration
	cycleLen   time.Duration
	metrics    domain.Metrics

	index    int
	progress float64
	cycle    int
	running  bool
	paused   bool

	// phaseStart is when the current phase began, shifted on resume so that
	// paused time never counts.
	phaseStart time.Time
	// pausedElapsed is the time spent in the current phase when paused.
	pausedElapsed time.Duration

	transitions int
	capped      bool
	history     *history
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock sets the clock used when a method receives the zero time.
func WithClock(c clock.Clock) ManagerOption {
	return func(m *Manager) {
		m.clock = c
	}
}

// WithLogger sets the logger for transitions and self-healing.
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithCalculator shares a path calculator, and with it its cache.
func WithCalculator(calc *geometry.Calculator) ManagerOption {
	return func(m *Manager) {
		m.calc = calc
	}
}

// WithMaxTransitions bounds the phase boundaries one Update may cross.
// Values below one keep the default.
func WithMaxTransitions(n int) ManagerOption {
	return func(m *Manager) {
		if n >= 1 {
			m.maxTransitions = n
		}
	}
}

// NewManager creates an idle manager for a pattern.
//
// The pattern is validated first; an invalid one is replaced by its fallback
// and the outcome is available from Validation. NewManager never fails.
func NewManager(p domain.Pattern, cfg domain.GeometryConfig, opts ...ManagerOption) *Manager {
	m := &Manager{
		logger:         zerolog.Nop(),
		clock:          clock.RealClock{},
		geometry:       cfg,
		maxTransitions: constants.DefaultMaxTransitionsPerUpdate,
		sessionID:      uuid.New().String(),
		history:        newHistory(constants.HistorySize),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.clock = clock.RealClock{}
	}
	if m.calc == nil {
		m.calc = geometry.NewCalculator(geometry.WithLogger(m.logger))
	}
	m.logger = m.logger.With().
		Str("component", "phase").
		Str("session_id", m.sessionID).
		Logger()

	m.load(p)
	return m
}

// SessionID returns the identifier used in this manager's logs and snapshots.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Pattern returns the pattern in use, which is the fallback when the requested
// one was invalid.
func (m *Manager) Pattern() domain.Pattern {
	return m.pattern.Clone()
}

// Validation returns the result of validating the last requested pattern.
func (m *Manager) Validation() domain.ValidationResult {
	return m.validation
}

// Metrics returns the path metrics of the pattern in use.
func (m *Manager) Metrics() domain.Metrics {
	return m.metrics
}

// Start begins a fresh session at the first phase of cycle zero.
func (m *Manager) Start(now time.Time) domain.UpdateResult {
	recovered := m.ensureConsistent()
	now = m.resolve(now)

	m.index = 0
	m.progress = 0
	m.cycle = 0
	m.running = true
	m.paused = false
	m.phaseStart = now
	m.pausedElapsed = 0
	m.transitions = 0
	m.capped = false
	m.history.clear()
	m.history.push(m.phases[0].Name)

	m.logger.Debug().
		Str("phase", m.phases[0].Name.String()).
		Int("cycle", 0).
		Msg("session started")

	return m.result(recovered)
}

// Update advances the state to now. It is a no-op unless the manager is
// running. Whole cycles are skipped in one step, so any jump lands on the
// right phase and cycle. The phase boundaries walked after that are bounded by
// the transition cap; time beyond the cap is dropped and the snapshot reports
// Capped.
func (m *Manager) Update(now time.Time) domain.UpdateResult {
	recovered := m.ensureConsistent()
	m.transitions = 0
	m.capped = false

	if m.running && !m.paused {
		m.advanceTo(m.resolve(now))
	}

	return m.result(recovered)
}

// Pause freezes the elapsed time within the current phase.
func (m *Manager) Pause(now time.Time) domain.UpdateResult {
	recovered := m.ensureConsistent()
	m.transitions = 0
	m.capped = false

	if !IsValidTransition(m.State(), constants.ManagerPaused) {
		return m.result(recovered)
	}

	now = m.resolve(now)
	m.advanceTo(now)

	m.pausedElapsed = max(now.Sub(m.phaseStart), 0)
	m.running = false
	m.paused = true

	m.logger.Debug().
		Str("phase", m.phases[m.index].Name.String()).
		Float64("progress", m.progress).
		Msg("session paused")

	return m.result(recovered)
}

// Resume continues from exactly where Pause left off.
func (m *Manager) Resume(now time.Time) domain.UpdateResult {
	recovered := m.ensureConsistent()
	m.transitions = 0
	m.capped = false

	if !m.paused {
		return m.result(recovered)
	}

	now = m.resolve(now)
	m.phaseStart = now.Add(-m.pausedElapsed)
	m.pausedElapsed = 0
	m.paused = false
	m.running = true

	m.logger.Debug().
		Str("phase", m.phases[m.index].Name.String()).
		Msg("session resumed")

	return m.result(recovered)
}

// Stop halts the session and clears its timing. The current phase and cycle
// count are kept; call Start to begin again from the first phase.
func (m *Manager) Stop() {
	m.ensureConsistent()
	m.clearTiming()
	m.logger.Debug().Msg("session stopped")
}

// Reset halts the session and returns it to the initial idle snapshot.
func (m *Manager) Reset() {
	m.ensureConsistent()
	m.clearTiming()
	m.index = 0
	m.progress = 0
	m.cycle = 0
	m.history.clear()
	m.logger.Debug().Msg("session reset")
}

// UpdatePattern validates a new pattern, rebuilds the phase list and moves to
// the start of its first phase at now. The completed cycle count and the
// running or paused state are kept; progress is not carried over.
func (m *Manager) UpdatePattern(p domain.Pattern, now time.Time) domain.ValidationResult {
	m.ensureConsistent()
	m.load(p)

	m.index = 0
	m.progress = 0
	m.transitions = 0
	m.capped = false
	switch {
	case m.running:
		m.phaseStart = m.resolve(now)
	case m.paused:
		m.pausedElapsed = 0
	}
	if m.running || m.paused {
		m.history.push(m.phases[0].Name)
	}

	m.logger.Debug().
		Str("pattern", m.pattern.Name).
		Int("phases", len(m.phases)).
		Msg("pattern updated")

	return m.validation
}

// CurrentState returns a snapshot of the manager without advancing it.
func (m *Manager) CurrentState() domain.Snapshot {
	m.ensureConsistent()
	return m.snapshot()
}

// State returns the lifecycle state.
func (m *Manager) State() constants.ManagerState {
	return stateOf(m.running, m.paused)
}

// TotalCycleDuration returns the sum of all phase durations in seconds.
func (m *Manager) TotalCycleDuration() float64 {
	m.ensureConsistent()
	total := 0.0
	for _, ph := range m.phases {
		total += ph.Duration
	}
	return total
}

// CycleProgress returns the fraction of the current cycle's duration that has
// elapsed, counting completed phases and the partial current phase.
func (m *Manager) CycleProgress() float64 {
	m.ensureConsistent()
	total := m.TotalCycleDuration()
	if total <= 0 {
		return 0
	}
	done := 0.0
	for i := 0; i < m.index; i++ {
		done += m.phases[i].Duration
	}
	done += m.progress * m.phases[m.index].Duration
	return math.Min(1, done/total)
}

// IsCycleComplete reports whether the manager sits exactly at the start of a
// cycle after completing at least one.
func (m *Manager) IsCycleComplete() bool {
	m.ensureConsistent()
	return m.index == 0 && m.progress == 0 && m.cycle >= 1
}

// Position returns the distance in pixels the indicator has travelled along
// the current cycle's path.
func (m *Manager) Position() float64 {
	m.ensureConsistent()
	pos := 0.0
	for i := 0; i < m.index; i++ {
		pos += m.phases[i].SegmentLength
	}
	return pos + m.progress*m.phases[m.index].SegmentLength
}

// History returns the most recently entered phases, oldest first.
func (m *Manager) History() []constants.PhaseName {
	return m.history.list()
}

// load validates p, substitutes its fallback when needed and derives phases.
func (m *Manager) load(p domain.Pattern) {
	m.validation = pattern.ValidatePatternDetailed(&p)
	use := p
	if !m.validation.Valid {
		use = *m.validation.Fallback
		m.logger.Warn().
			Str("pattern", p.Name).
			Str("fallback", use.Name).
			Int("errors", len(m.validation.Errors)).
			Msg("pattern failed validation, using fallback")
	}

	phases, metrics, err := m.calc.Phases(&use, m.geometry)
	if err != nil {
		// A fallback always has a valid sequence; this only guards the default.
		use = pattern.CreateFallbackPattern(nil)
		phases, metrics, _ = m.calc.Phases(&use, m.geometry)
	}

	m.pattern = use.Clone()
	m.phases = phases
	m.metrics = metrics
	m.durations = make([]time.Duration, len(phases))
	m.cycleLen = 0
	for i, ph := range phases {
		m.durations[i] = clock.Seconds(ph.Duration)
		m.cycleLen += m.durations[i]
	}
}

// advanceTo skips whole cycles arithmetically, consumes the rest phase by
// phase up to the transition cap and sets the progress of the phase it stops
// in.
func (m *Manager) advanceTo(now time.Time) {
	elapsed := now.Sub(m.phaseStart)
	elapsed = m.skipCycles(elapsed)

	walked := 0
	for elapsed >= m.durations[m.index] {
		if walked >= m.maxTransitions {
			m.capped = true
			m.phaseStart = now
			elapsed = 0
			m.logger.Warn().
				Int("transitions", m.transitions).
				Int("cycle", m.cycle).
				Msg("transition cap reached, dropping remaining time")
			break
		}
		m.phaseStart = m.phaseStart.Add(m.durations[m.index])
		elapsed -= m.durations[m.index]
		m.next()
		walked++
	}

	switch {
	case elapsed <= 0:
		m.progress = 0
	case m.durations[m.index] <= 0:
		m.progress = 1
	default:
		m.progress = math.Min(1, float64(elapsed)/float64(m.durations[m.index]))
	}
}

// skipCycles moves phaseStart forward by every whole cycle contained in
// elapsed and returns what is left. The phase index is unchanged by a whole
// cycle, so only the counters and the history move.
func (m *Manager) skipCycles(elapsed time.Duration) time.Duration {
	if m.cycleLen <= 0 || elapsed < m.cycleLen {
		return elapsed
	}

	k := elapsed / m.cycleLen
	m.phaseStart = m.phaseStart.Add(k * m.cycleLen)
	m.cycle += int(k)
	m.transitions += int(k) * len(m.phases)
	for i := 1; i <= len(m.phases); i++ {
		m.history.push(m.phases[(m.index+i)%len(m.phases)].Name)
	}

	m.logger.Debug().
		Int64("cycles", int64(k)).
		Int("cycle", m.cycle).
		Msg("skipped whole cycles")

	return elapsed - k*m.cycleLen
}

// next moves to the following phase, completing a cycle after the last one.
func (m *Manager) next() {
	m.index++
	if m.index >= len(m.phases) {
		m.index = 0
		m.cycle++
	}
	m.transitions++
	name := m.phases[m.index].Name
	m.history.push(name)

	m.logger.Debug().
		Str("phase", name.String()).
		Int("cycle", m.cycle).
		Msg("phase transition")
}

func (m *Manager) clearTiming() {
	m.running = false
	m.paused = false
	m.phaseStart = time.Time{}
	m.pausedElapsed = 0
	m.transitions = 0
	m.capped = false
}

func (m *Manager) resolve(now time.Time) time.Time {
	if now.IsZero() {
		return m.clock.Now()
	}
	return now
}

// ensureConsistent checks the internal invariants and, when one is broken,
// resets to an idle state at the first phase. The returned issue is nil when
// everything was consistent.
func (m *Manager) ensureConsistent() *breatheerrors.Issue {
	reason := m.inconsistency()
	if reason == "" {
		return nil
	}

	issue := breatheerrors.NewIssue(breatheerrors.KindStateCorruption, "", "%s; state reset", reason)
	m.logger.Warn().
		Str("kind", string(issue.Kind)).
		Int("phase_index", m.index).
		Float64("progress", m.progress).
		Int("cycle", m.cycle).
		Msg(issue.Message)

	if len(m.phases) == 0 || len(m.durations) != len(m.phases) {
		m.load(m.pattern)
	}
	m.clearTiming()
	m.index = 0
	m.progress = 0
	if m.cycle < 0 {
		m.cycle = 0
	}
	m.history.clear()

	return &issue
}

func (m *Manager) inconsistency() string {
	switch {
	case len(m.phases) == 0 || len(m.durations) != len(m.phases):
		return "phase list is empty or out of sync"
	case m.index < 0 || m.index >= len(m.phases):
		return "phase index out of range"
	case math.IsNaN(m.progress) || m.progress < 0 || m.progress > 1:
		return "phase progress outside [0, 1]"
	case m.cycle < 0:
		return "negative cycle number"
	case m.running && m.paused:
		return "both running and paused"
	case m.running && m.phaseStart.IsZero():
		return "running without a phase start time"
	default:
		return ""
	}
}

func (m *Manager) result(recovered *breatheerrors.Issue) domain.UpdateResult {
	return domain.UpdateResult{Snapshot: m.snapshot(), Recovered: recovered}
}

func (m *Manager) snapshot() domain.Snapshot {
	current := m.phases[m.index]
	return domain.Snapshot{
		CurrentPhase:  current.Name,
		PhaseIndex:    m.index,
		PhaseProgress: m.progress,
		PhaseDuration: current.Duration,
		SegmentLength: current.SegmentLength,
		BallSpeed:     current.BallSpeed,
		CycleNumber:   m.cycle,
		TotalPhases:   len(m.phases),
		IsRunning:     m.running,
		IsPaused:      m.paused,
		Phases:        append([]domain.Phase(nil), m.phases...),
		State:         m.State(),
		SessionID:     m.sessionID,
		Transitions:   m.transitions,
		Capped:        m.capped,
	}
}
