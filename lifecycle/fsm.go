package lifecycle

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// transitions maps every state to the triggers legal from it. TriggerFault is
// accepted from every non-terminal state, including transient ones, so a
// component can always be faulted mid-action.
var transitions = map[ComponentState]map[ComponentTrigger]ComponentState{
	StatePreInitialized: {
		TriggerInitialize: StateReady,
	},
	StateReady: {
		TriggerStart:   StateStarting,
		TriggerDispose: StateDisposing,
	},
	StateStarting: {
		TriggerStartCompleted: StateRunning,
	},
	StateRunning: {
		TriggerStop:    StateStopping,
		TriggerDegrade: StateDegrading,
	},
	StateStopping: {
		TriggerStopCompleted: StateStopped,
	},
	StateStopped: {
		TriggerResume:  StateResuming,
		TriggerReset:   StateResetting,
		TriggerDispose: StateDisposing,
	},
	StateResuming: {
		TriggerResumeCompleted: StateRunning,
	},
	StateResetting: {
		TriggerResetCompleted: StateReady,
	},
	StateDisposing: {
		TriggerDisposeCompleted: StateDisposed,
	},
	StateDegrading: {
		TriggerDegradeCompleted: StateDegraded,
	},
	StateDegraded: {
		TriggerResume: StateResuming,
	},
	StateFaulting: {
		TriggerFaultCompleted: StateFaulted,
	},
	StateDisposed: {},
	StateFaulted:  {},
}

// An InvalidTransitionError reports a trigger that is not legal from the
// machine's current state. The state is left unchanged when it is returned.
type InvalidTransitionError struct {
	State   ComponentState
	Trigger ComponentTrigger
	Legal   []ComponentTrigger
}

func (e *InvalidTransitionError) Error() string {
	legal := make([]string, len(e.Legal))
	for i, t := range e.Legal {
		legal[i] = t.String()
	}

	return fmt.Sprintf(
		"invalid transition: trigger %s is not legal from state %s (legal: %s)",
		e.Trigger, e.State, strings.Join(legal, ", "))
}

// A StateMachine validates and applies lifecycle transitions for one managed
// component. The zero value is not usable; create instances with
// NewStateMachine. Safe for concurrent use.
type StateMachine struct {
	mu    sync.RWMutex
	state ComponentState
}

// NewStateMachine creates a StateMachine in StatePreInitialized.
func NewStateMachine() *StateMachine {
	return &StateMachine{state: StatePreInitialized}
}

// State returns the current state.
func (m *StateMachine) State() ComponentState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Apply attempts to transition with the given trigger and returns the
// resulting state. An illegal trigger returns an *InvalidTransitionError and
// leaves the state untouched.
func (m *StateMachine) Apply(trigger ComponentTrigger) (ComponentState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, ok := m.destination(trigger)
	if !ok {
		return m.state, &InvalidTransitionError{
			State:   m.state,
			Trigger: trigger,
			Legal:   m.legalTriggersLocked(),
		}
	}

	m.state = next

	return next, nil
}

// LegalTriggers returns the triggers legal from the current state, sorted.
func (m *StateMachine) LegalTriggers() []ComponentTrigger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.legalTriggersLocked()
}

func (m *StateMachine) destination(trigger ComponentTrigger) (ComponentState, bool) {
	if trigger == TriggerFault && !m.state.IsTerminal() && m.state != StateFaulting {
		return StateFaulting, true
	}

	next, ok := transitions[m.state][trigger]

	return next, ok
}

func (m *StateMachine) legalTriggersLocked() []ComponentTrigger {
	var legal []ComponentTrigger
	for trigger := range transitions[m.state] {
		legal = append(legal, trigger)
	}
	if !m.state.IsTerminal() && m.state != StateFaulting {
		legal = append(legal, TriggerFault)
	}

	sort.Slice(legal, func(i, j int) bool { return legal[i] < legal[j] })

	return legal
}
