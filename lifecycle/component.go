package lifecycle

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Component is a long-lived object whose operating state is governed by a
// lifecycle state machine.
type Component interface {
	Named

	// State returns the component's current lifecycle state.
	State() ComponentState
}

// ComponentBase provides the naming and lifecycle plumbing that components
// embed. Each action is a two-phase protocol: the request method moves the
// machine into the transient state, and the matching Completed method settles
// it once the caller's action has actually finished.
type ComponentBase struct {
	name string
	fsm  *StateMachine
}

// NewComponentBase creates a ComponentBase in StatePreInitialized.
func NewComponentBase(name string) *ComponentBase {
	return &ComponentBase{
		name: name,
		fsm:  NewStateMachine(),
	}
}

// Name returns the name of the component.
func (c *ComponentBase) Name() string {
	return c.name
}

// State returns the component's current lifecycle state.
func (c *ComponentBase) State() ComponentState {
	return c.fsm.State()
}

// Transition applies an arbitrary trigger.
func (c *ComponentBase) Transition(trigger ComponentTrigger) error {
	_, err := c.fsm.Apply(trigger)
	return err
}

// Initialize moves the component from StatePreInitialized to StateReady.
func (c *ComponentBase) Initialize() error { return c.Transition(TriggerInitialize) }

// Start requests the component to start.
func (c *ComponentBase) Start() error { return c.Transition(TriggerStart) }

// StartCompleted reports that the start action has finished.
func (c *ComponentBase) StartCompleted() error { return c.Transition(TriggerStartCompleted) }

// Stop requests the component to stop.
func (c *ComponentBase) Stop() error { return c.Transition(TriggerStop) }

// StopCompleted reports that the stop action has finished.
func (c *ComponentBase) StopCompleted() error { return c.Transition(TriggerStopCompleted) }

// Resume requests the component to resume.
func (c *ComponentBase) Resume() error { return c.Transition(TriggerResume) }

// ResumeCompleted reports that the resume action has finished.
func (c *ComponentBase) ResumeCompleted() error { return c.Transition(TriggerResumeCompleted) }

// Reset requests the component to reset.
func (c *ComponentBase) Reset() error { return c.Transition(TriggerReset) }

// ResetCompleted reports that the reset action has finished.
func (c *ComponentBase) ResetCompleted() error { return c.Transition(TriggerResetCompleted) }

// Dispose requests the component to dispose.
func (c *ComponentBase) Dispose() error { return c.Transition(TriggerDispose) }

// DisposeCompleted reports that the dispose action has finished.
func (c *ComponentBase) DisposeCompleted() error { return c.Transition(TriggerDisposeCompleted) }

// Degrade requests the component to degrade.
func (c *ComponentBase) Degrade() error { return c.Transition(TriggerDegrade) }

// DegradeCompleted reports that the degrade action has finished.
func (c *ComponentBase) DegradeCompleted() error { return c.Transition(TriggerDegradeCompleted) }

// Fault requests the component to fault.
func (c *ComponentBase) Fault() error { return c.Transition(TriggerFault) }

// FaultCompleted reports that the fault action has finished.
func (c *ComponentBase) FaultCompleted() error { return c.Transition(TriggerFaultCompleted) }
