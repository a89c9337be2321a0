package logging

import (
	"fmt"

	"github.com/meridianhft/tradecore/clock"
	"github.com/meridianhft/tradecore/hooking"
)

// An EventLogger is a hook that logs every time event a clock fires. Attach it
// to a clock with AcceptHook.
type EventLogger struct {
	adapter *Adapter
}

// NewEventLogger creates an EventLogger writing through the given adapter.
func NewEventLogger(adapter *Adapter) *EventLogger {
	return &EventLogger{adapter: adapter}
}

// Func logs the fired event.
func (h *EventLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != hooking.HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(clock.TimeEvent)
	if !ok {
		return
	}

	h.adapter.Debug(fmt.Sprintf("timer %s fired at %d", evt.TimerName, evt.TsEvent))
}
