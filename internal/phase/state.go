package phase

import "github.com/mrz1836/breathe/internal/constants"

// ValidTransitions defines the lifecycle moves a Manager accepts.
// Format: from_state -> []to_states
//
//	Idle → Running
//	Running → Running (restart), Paused, Idle
//	Paused → Running (resume or restart), Idle
//
// Stop and Reset are always accepted; Idle → Idle is their no-op case.
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidTransitions = map[constants.ManagerState][]constants.ManagerState{
	constants.ManagerIdle:    {constants.ManagerRunning, constants.ManagerIdle},
	constants.ManagerRunning: {constants.ManagerRunning, constants.ManagerPaused, constants.ManagerIdle},
	constants.ManagerPaused:  {constants.ManagerRunning, constants.ManagerIdle},
}

// IsValidTransition reports whether a manager may move from one state to another.
func IsValidTransition(from, to constants.ManagerState) bool {
	for _, target := range ValidTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// stateOf derives the lifecycle state from the running and paused flags.
func stateOf(running, paused bool) constants.ManagerState {
	switch {
	case paused:
		return constants.ManagerPaused
	case running:
		return constants.ManagerRunning
	default:
		return constants.ManagerIdle
	}
}
