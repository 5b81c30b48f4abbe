package constants

// PhaseName identifies one timed segment of a breathing cycle.
// Values match the field names used in pattern files.
type PhaseName string

// Phase names in cycle order.
const (
	// PhaseInhale is the rising diagonal segment.
	PhaseInhale PhaseName = "inhale"

	// PhaseHoldTop is the horizontal segment at the top of the path.
	PhaseHoldTop PhaseName = "holdTop"

	// PhaseExhale is the falling diagonal segment.
	PhaseExhale PhaseName = "exhale"

	// PhaseHoldBottom is the horizontal segment at the bottom of the path.
	// It only exists in 4-phase patterns.
	PhaseHoldBottom PhaseName = "holdBottom"
)

// String returns the string representation of the PhaseName.
func (p PhaseName) String() string {
	return string(p)
}

// IsHold reports whether the phase is one of the horizontal hold phases.
func (p PhaseName) IsHold() bool {
	return p == PhaseHoldTop || p == PhaseHoldBottom
}

// PatternType discriminates whether a pattern has a bottom hold.
type PatternType string

// Pattern type tags.
const (
	// PatternThreePhase has inhale, holdTop and exhale.
	PatternThreePhase PatternType = "3-phase"

	// PatternFourPhase adds holdBottom after exhale.
	PatternFourPhase PatternType = "4-phase"
)

// String returns the string representation of the PatternType.
func (t PatternType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known pattern types.
func (t PatternType) IsValid() bool {
	return t == PatternThreePhase || t == PatternFourPhase
}

// ManagerState is the lifecycle state of a phase manager.
//
//	Idle → Running
//	Running → Paused, Idle
//	Paused → Running, Idle
type ManagerState string

// Manager states.
const (
	// ManagerIdle means the manager is stopped or was never started.
	ManagerIdle ManagerState = "idle"

	// ManagerRunning means updates advance the phase clock.
	ManagerRunning ManagerState = "running"

	// ManagerPaused means elapsed time is frozen until resume.
	ManagerPaused ManagerState = "paused"
)

// String returns the string representation of the ManagerState.
func (s ManagerState) String() string {
	return string(s)
}
