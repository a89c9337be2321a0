package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/meridianhft/tradecore/hooking"
)

// A TestClock is a simulated clock whose time only moves when the caller
// advances it. Identical timer registrations followed by identical sequences
// of AdvanceTime calls always yield identical event batches, which is what
// makes backtests reproducible bit for bit.
//
// Advancement is intended to be driven from a single goroutine; concurrent
// AdvanceTime calls on one instance are serialized but their interleaving is
// unspecified.
type TestClock struct {
	clockBase

	timeMu sync.RWMutex
	timeNs UnixNanos
}

var _ Clock = (*TestClock)(nil)

// NewTestClock creates a TestClock with its current time at the Unix epoch.
func NewTestClock() *TestClock {
	return &TestClock{clockBase: newClockBase()}
}

// TimestampNs returns the current time in nanoseconds.
func (c *TestClock) TimestampNs() UnixNanos {
	c.timeMu.RLock()
	defer c.timeMu.RUnlock()
	return c.timeNs
}

// Timestamp returns the current time as floating-point seconds.
func (c *TestClock) Timestamp() float64 {
	return c.TimestampNs().Seconds()
}

// TimestampMs returns the current time in milliseconds.
func (c *TestClock) TimestampMs() int64 {
	return c.TimestampNs().Millis()
}

// TimestampUs returns the current time in microseconds.
func (c *TestClock) TimestampUs() int64 {
	return c.TimestampNs().Micros()
}

// SetTime repositions the clock without firing timers. It is typically used
// during initialization to place the clock at the start of a data window.
func (c *TestClock) SetTime(to UnixNanos) {
	c.timeMu.Lock()
	c.timeNs = to
	c.timeMu.Unlock()
}

// SetTimeAlert registers a one-shot timer firing at alertTime.
func (c *TestClock) SetTimeAlert(
	name string,
	alertTime UnixNanos,
	callback TimeEventCallback,
) error {
	return c.setTimeAlert(name, alertTime, callback, c.TimestampNs())
}

// SetTimer registers a repeating timer.
func (c *TestClock) SetTimer(
	name string,
	interval time.Duration,
	startTime, stopTime UnixNanos,
	callback TimeEventCallback,
) error {
	return c.setTimer(name, interval, startTime, stopTime, callback, c.TimestampNs())
}

// AdvanceTime computes every timer occurrence due at or before toTime and
// returns the resulting batch, ordered by fire time with ties broken by timer
// name. Ownership of the batch transfers to the caller, who dispatches it.
//
// When setTime is true, toTime becomes the new current time and timer state is
// re-armed past it. When setTime is false the call is a pure preview: neither
// the clock nor any timer is mutated, and repeating the call produces the same
// batch.
//
// Hooks are invoked at the before position only, once per event of a
// committed advance. Dispatch belongs to the caller, so there is no
// after-dispatch position here.
func (c *TestClock) AdvanceTime(
	toTime UnixNanos,
	setTime bool,
) ([]TimeEventHandler, error) {
	c.timeMu.Lock()
	now := c.timeNs
	if setTime && toTime < now {
		c.timeMu.Unlock()
		return nil, fmt.Errorf("%w: to %d, now %d",
			ErrAdvanceTimeBackwards, toTime, now)
	}
	if setTime {
		c.timeNs = toTime
	}
	c.timeMu.Unlock()

	batch := c.registry.advance(toTime, toTime, setTime, c.fallbackHandler())

	// Hooks observe committed advances only; a preview has no side effects.
	if setTime {
		for _, h := range batch {
			c.InvokeHook(hooking.HookCtx{
				Domain: c,
				Pos:    hooking.HookPosBeforeEvent,
				Item:   h.Event,
			})
		}
	}

	return batch, nil
}
