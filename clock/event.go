package clock

import "github.com/rs/xid"

// A TimeEvent is produced when a timer fires. It is immutable once created.
type TimeEvent struct {
	// TimerName is the name of the timer that produced the event.
	TimerName string

	// ID uniquely identifies the event.
	ID string

	// TsEvent is the scheduled fire time of the occurrence.
	TsEvent UnixNanos

	// TsInit is the time at which the event record was constructed. TsEvent
	// may lag TsInit when a simulated clock manufactures events while catching
	// up to a target time.
	TsInit UnixNanos
}

func newTimeEvent(timerName string, tsEvent, tsInit UnixNanos) TimeEvent {
	return TimeEvent{
		TimerName: timerName,
		ID:        xid.New().String(),
		TsEvent:   tsEvent,
		TsInit:    tsInit,
	}
}

// TimeEventCallback is the capability token associated with a timer. The
// scheduler stores and forwards it verbatim; it never inspects the value.
type TimeEventCallback func(TimeEvent)

// TimeEventHandler pairs a TimeEvent with the callback of the timer that
// produced it. It is the unit of dispatch handed back to the caller.
type TimeEventHandler struct {
	Event    TimeEvent
	Callback TimeEventCallback
}

// Handle invokes the callback with the event.
func (h TimeEventHandler) Handle() {
	h.Callback(h.Event)
}
