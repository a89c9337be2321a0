// Package lifecycle provides the finite-state machine that governs the
// operating state of every long-lived component in the system.
package lifecycle

import "fmt"

// ComponentState is the operating state of a component.
type ComponentState uint8

const (
	// StatePreInitialized is the state of a component that is instantiated but
	// not yet ready to operate.
	StatePreInitialized ComponentState = iota

	// StateReady is the state of a component that is able to be started.
	StateReady

	// StateStarting is the state of a component executing its actions on
	// start.
	StateStarting

	// StateRunning is the state of a component operating normally.
	StateRunning

	// StateStopping is the state of a component executing its actions on
	// stop.
	StateStopping

	// StateStopped is the state of a component that has successfully stopped.
	StateStopped

	// StateResuming is the state of a component being started again after a
	// stop or a degrade.
	StateResuming

	// StateResetting is the state of a component executing its actions on
	// reset.
	StateResetting

	// StateDisposing is the state of a component executing its actions on
	// dispose.
	StateDisposing

	// StateDisposed is the terminal state of a component that has released
	// all of its resources.
	StateDisposed

	// StateDegrading is the state of a component executing its actions on
	// degrade.
	StateDegrading

	// StateDegraded is the state of a component that is operating at reduced
	// capability.
	StateDegraded

	// StateFaulting is the state of a component executing its actions on
	// fault.
	StateFaulting

	// StateFaulted is the terminal state of a component that has shut down
	// due to a detected fault.
	StateFaulted
)

var stateNames = [...]string{
	StatePreInitialized: "PRE_INITIALIZED",
	StateReady:          "READY",
	StateStarting:       "STARTING",
	StateRunning:        "RUNNING",
	StateStopping:       "STOPPING",
	StateStopped:        "STOPPED",
	StateResuming:       "RESUMING",
	StateResetting:      "RESETTING",
	StateDisposing:      "DISPOSING",
	StateDisposed:       "DISPOSED",
	StateDegrading:      "DEGRADING",
	StateDegraded:       "DEGRADED",
	StateFaulting:       "FAULTING",
	StateFaulted:        "FAULTED",
}

func (s ComponentState) String() string {
	if int(s) >= len(stateNames) {
		return fmt.Sprintf("ComponentState(%d)", uint8(s))
	}
	return stateNames[s]
}

// IsTerminal reports whether the state has no outgoing transitions.
func (s ComponentState) IsTerminal() bool {
	return s == StateDisposed || s == StateFaulted
}

// StateFromString converts a state name back into a ComponentState.
func StateFromString(name string) (ComponentState, error) {
	for i, n := range stateNames {
		if n == name {
			return ComponentState(i), nil
		}
	}
	return 0, fmt.Errorf("unknown component state %q", name)
}
