package domain

import (
	"github.com/mrz1836/breathe/internal/constants"
	breatheerrors "github.com/mrz1836/breathe/internal/errors"
)

// Snapshot is a read-only view of a phase manager, safe to take every frame.
type Snapshot struct {
	CurrentPhase  PhaseName `json:"currentPhase"`
	PhaseIndex    int       `json:"phaseIndex"`
	PhaseProgress float64   `json:"phaseProgress"`
	PhaseDuration float64   `json:"phaseDuration"`
	SegmentLength float64   `json:"segmentLength"`
	BallSpeed     float64   `json:"ballSpeed"`
	CycleNumber   int       `json:"cycleNumber"`
	TotalPhases   int       `json:"totalPhases"`
	IsRunning     bool      `json:"isRunning"`
	IsPaused      bool      `json:"isPaused"`
	Phases        []Phase   `json:"phases"`

	// State is the lifecycle state derived from IsRunning and IsPaused.
	State constants.ManagerState `json:"state"`
	// SessionID identifies the manager in logs.
	SessionID string `json:"sessionId"`
	// Transitions is the number of phase boundaries crossed by the last update.
	Transitions int `json:"transitions"`
	// Capped is true when the last update stopped at the transition cap.
	Capped bool `json:"capped"`
}

// UpdateResult is returned by every advancing call of a phase manager.
// Recovered is set when the manager found its own state inconsistent and
// reset itself; the snapshot is always safe to render either way.
type UpdateResult struct {
	Snapshot  Snapshot
	Recovered *breatheerrors.Issue
}

// Err returns the recovery issue as an error, or nil.
func (r UpdateResult) Err() error {
	if r.Recovered == nil {
		return nil
	}
	return *r.Recovered
}
