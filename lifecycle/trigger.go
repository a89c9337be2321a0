package lifecycle

import "fmt"

// ComponentTrigger is a named request to change a component's operating state.
// Request triggers move the machine into a transient "-ING" state; the paired
// "_COMPLETED" trigger settles it, so an action that takes time stays visible
// as in-progress while it runs.
type ComponentTrigger uint8

const (
	// TriggerInitialize requests the component to initialize.
	TriggerInitialize ComponentTrigger = iota + 1

	// TriggerStart requests the component to start.
	TriggerStart

	// TriggerStartCompleted reports that the component has started.
	TriggerStartCompleted

	// TriggerStop requests the component to stop.
	TriggerStop

	// TriggerStopCompleted reports that the component has stopped.
	TriggerStopCompleted

	// TriggerResume requests the component to resume after a stop or a
	// degrade.
	TriggerResume

	// TriggerResumeCompleted reports that the component has resumed.
	TriggerResumeCompleted

	// TriggerReset requests the component to reset.
	TriggerReset

	// TriggerResetCompleted reports that the component has reset.
	TriggerResetCompleted

	// TriggerDispose requests the component to dispose and release resources.
	TriggerDispose

	// TriggerDisposeCompleted reports that the component has disposed.
	TriggerDisposeCompleted

	// TriggerDegrade requests the component to degrade.
	TriggerDegrade

	// TriggerDegradeCompleted reports that the component has degraded.
	TriggerDegradeCompleted

	// TriggerFault requests the component to fault.
	TriggerFault

	// TriggerFaultCompleted reports that the component has faulted.
	TriggerFaultCompleted
)

var triggerNames = [...]string{
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

func (t ComponentTrigger) String() string {
	if t == 0 || int(t) >= len(triggerNames) {
		return fmt.Sprintf("ComponentTrigger(%d)", uint8(t))
	}
	return triggerNames[t]
}

// TriggerFromString converts a trigger name back into a ComponentTrigger.
func TriggerFromString(name string) (ComponentTrigger, error) {
	for i := 1; i < len(triggerNames); i++ {
		if triggerNames[i] == name {
			return ComponentTrigger(i), nil
		}
	}
	return 0, fmt.Errorf("unknown component trigger %q", name)
}
