package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentStateStrings(t *testing.T) {
	cases := map[ComponentState]string{
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

	for state, name := range cases {
		assert.Equal(t, name, state.String())

		parsed, err := StateFromString(name)
		require.NoError(t, err)
		assert.Equal(t, state, parsed)
	}
}

func TestStateFromStringUnknown(t *testing.T) {
	_, err := StateFromString("HALTED")

	assert.Error(t, err)
}

func TestComponentTriggerStrings(t *testing.T) {
	cases := map[ComponentTrigger]string{
		TriggerInitialize:       "INITIALIZE",
		TriggerStart:            "START",
		TriggerStartCompleted:   "START_COMPLETED",
		TriggerStop:             "STOP",
		TriggerStopCompleted:    "STOP_COMPLETED",
		TriggerResume:           "RESUME",
		TriggerResumeCompleted:  "RESUME_COMPLETED",
		TriggerReset:            "RESET",
		TriggerResetCompleted:   "RESET_COMPLETED",
		TriggerDispose:          "DISPOSE",
		TriggerDisposeCompleted: "DISPOSE_COMPLETED",
		TriggerDegrade:          "DEGRADE",
		TriggerDegradeCompleted: "DEGRADE_COMPLETED",
		TriggerFault:            "FAULT",
		TriggerFaultCompleted:   "FAULT_COMPLETED",
	}

	for trigger, name := range cases {
		assert.Equal(t, name, trigger.String())

		parsed, err := TriggerFromString(name)
		require.NoError(t, err)
		assert.Equal(t, trigger, parsed)
	}
}

func TestTriggerFromStringUnknown(t *testing.T) {
	_, err := TriggerFromString("HALT")

	assert.Error(t, err)
}

func TestOnlyDisposedAndFaultedAreTerminal(t *testing.T) {
	for state := StatePreInitialized; state <= StateFaulted; state++ {
		want := state == StateDisposed || state == StateFaulted
		assert.Equal(t, want, state.IsTerminal(), "state %s", state)
	}
}
