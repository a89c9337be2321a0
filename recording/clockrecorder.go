package recording

import (
	"github.com/meridianhft/tradecore/clock"
	"github.com/meridianhft/tradecore/hooking"
	"github.com/meridianhft/tradecore/logging"
)

// TimeEventTable is the table fired time events are recorded into.
const TimeEventTable = "time_events"

// LogRecordTable is the table log records are recorded into.
const LogRecordTable = "log_records"

// TimeEventEntry is the recorded shape of a fired time event.
type TimeEventEntry struct {
	ID        string
	TimerName string
	TsEvent   int64
	TsInit    int64
}

// LogEntry is the recorded shape of a log record.
type LogEntry struct {
	Timestamp int64
	Level     string
	Component string
	Message   string
}

// A ClockRecorder is a hook that persists every time event a clock fires.
// Attach it to a clock with AcceptHook.
type ClockRecorder struct {
	recorder Recorder
}

// NewClockRecorder creates a ClockRecorder and its backing table.
func NewClockRecorder(recorder Recorder) *ClockRecorder {
	recorder.CreateTable(TimeEventTable, TimeEventEntry{})

	return &ClockRecorder{recorder: recorder}
}

// Func records the fired event.
func (r *ClockRecorder) Func(ctx hooking.HookCtx) {
	if ctx.Pos != hooking.HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(clock.TimeEvent)
	if !ok {
		return
	}

	r.recorder.InsertData(TimeEventTable, TimeEventEntry{
		ID:        evt.ID,
		TimerName: evt.TimerName,
		TsEvent:   int64(evt.TsEvent),
		TsInit:    int64(evt.TsInit),
	})
}

// A LogRecorder persists log records for later inspection. Record is intended
// to be called from a single goroutine, matching the logging pipeline's
// single-consumer design.
type LogRecorder struct {
	recorder Recorder
}

// NewLogRecorder creates a LogRecorder and its backing table.
func NewLogRecorder(recorder Recorder) *LogRecorder {
	recorder.CreateTable(LogRecordTable, LogEntry{})

	return &LogRecorder{recorder: recorder}
}

// Record persists one log record.
func (r *LogRecorder) Record(rec logging.Record) {
	r.recorder.InsertData(LogRecordTable, LogEntry{
		Timestamp: int64(rec.Timestamp),
		Level:     rec.Level.String(),
		Component: rec.Component,
		Message:   rec.Message,
	})
}
