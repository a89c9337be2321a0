// Package clock provides the time and timer scheduling engine shared by every
// subsystem of the platform. Two variants are available: TestClock, whose time
// is advanced explicitly by the caller, and LiveClock, whose time tracks the
// wall clock and whose timers are dispatched by a background loop.
package clock

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/meridianhft/tradecore/hooking"
)

var (
	// ErrEmptyTimerName is returned when a timer is registered without a name.
	ErrEmptyTimerName = errors.New("timer name must not be empty")

	// ErrNoHandler is returned when a timer is registered without a callback
	// and no default handler has been registered on the clock.
	ErrNoHandler = errors.New("no callback and no default handler registered")

	// ErrAlertTimeInPast is returned when a one-shot alert is registered at or
	// before the clock's current time. An alert in the past can never validly
	// fire.
	ErrAlertTimeInPast = errors.New("alert time is at or before current time")

	// ErrInvalidInterval is returned when a repeating timer is registered with
	// a non-positive interval.
	ErrInvalidInterval = errors.New("timer interval must be positive")

	// ErrStartTimeInPast is returned when a repeating timer is registered with
	// an explicit start time before the clock's current time. Allowing it
	// would let the next advance manufacture events timestamped before the
	// timer was registered.
	ErrStartTimeInPast = errors.New("start time is before current time")

	// ErrInvalidStopTime is returned when a timer's stop time precedes its
	// first scheduled occurrence.
	ErrInvalidStopTime = errors.New("stop time must be after start time")

	// ErrTimerNotFound is returned by lookups addressing an unknown timer
	// name.
	ErrTimerNotFound = errors.New("timer not found")

	// ErrAdvanceTimeBackwards is returned when a simulated clock is asked to
	// commit a time before its current time.
	ErrAdvanceTimeBackwards = errors.New("cannot advance time backwards")
)

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	TimestampNs() UnixNanos
}

// A Clock maintains the current time and a set of named timers. All
// registration, query and cancellation semantics are identical between the
// simulated and live variants; only the way time advances differs.
type Clock interface {
	TimeTeller
	hooking.Hookable

	// Timestamp returns the current time as floating-point seconds since the
	// Unix epoch.
	Timestamp() float64

	// TimestampMs returns the current time as milliseconds since the Unix
	// epoch.
	TimestampMs() int64

	// TimestampUs returns the current time as microseconds since the Unix
	// epoch.
	TimestampUs() int64

	// RegisterDefaultHandler sets the fallback callback used by any timer
	// registered without its own callback.
	RegisterDefaultHandler(callback TimeEventCallback)

	// SetTimeAlert registers a one-shot timer firing at alertTime. The alert
	// time must be after the clock's current time.
	SetTimeAlert(name string, alertTime UnixNanos, callback TimeEventCallback) error

	// SetTimer registers a repeating timer. The first fire time is
	// startTime+interval, with startTime defaulting to the current time when
	// zero; an explicit startTime must not be before the current time. A
	// non-zero stopTime self-cancels the timer once its next fire time would
	// exceed it.
	SetTimer(
		name string,
		interval time.Duration,
		startTime, stopTime UnixNanos,
		callback TimeEventCallback,
	) error

	// NextTime returns the next scheduled fire time of the named timer.
	NextTime(name string) (UnixNanos, error)

	// CancelTimer removes the named timer. Canceling an unknown name is a
	// no-op.
	CancelTimer(name string)

	// CancelTimers removes every registered timer.
	CancelTimers()

	// TimerNames returns the names of all registered timers, sorted.
	TimerNames() []string

	// TimerCount returns the number of registered timers.
	TimerCount() int
}

// clockBase carries the timer bookkeeping common to both clock variants.
type clockBase struct {
	hooking.HookableBase

	registry *timerRegistry

	handlerMu      sync.RWMutex
	defaultHandler TimeEventCallback
}

func newClockBase() clockBase {
	return clockBase{registry: newTimerRegistry()}
}

func (c *clockBase) RegisterDefaultHandler(callback TimeEventCallback) {
	c.handlerMu.Lock()
	c.defaultHandler = callback
	c.handlerMu.Unlock()
}

func (c *clockBase) fallbackHandler() TimeEventCallback {
	c.handlerMu.RLock()
	defer c.handlerMu.RUnlock()
	return c.defaultHandler
}

func (c *clockBase) setTimeAlert(
	name string,
	alertTime UnixNanos,
	callback TimeEventCallback,
	now UnixNanos,
) error {
	if name == "" {
		return ErrEmptyTimerName
	}
	if callback == nil && c.fallbackHandler() == nil {
		return fmt.Errorf("%w: alert %q", ErrNoHandler, name)
	}
	if alertTime <= now {
		return fmt.Errorf("%w: alert %q at %d, now %d",
			ErrAlertTimeInPast, name, alertTime, now)
	}

	c.registry.set(&timer{
		name:     name,
		callback: callback,
		nextTime: alertTime,
	})

	return nil
}

func (c *clockBase) setTimer(
	name string,
	interval time.Duration,
	startTime, stopTime UnixNanos,
	callback TimeEventCallback,
	now UnixNanos,
) error {
	if name == "" {
		return ErrEmptyTimerName
	}
	if callback == nil && c.fallbackHandler() == nil {
		return fmt.Errorf("%w: timer %q", ErrNoHandler, name)
	}
	if interval <= 0 {
		return fmt.Errorf("%w: timer %q interval %d", ErrInvalidInterval, name, interval)
	}
	if startTime == 0 {
		startTime = now
	}
	if startTime < now {
		return fmt.Errorf("%w: timer %q start %d, now %d",
			ErrStartTimeInPast, name, startTime, now)
	}
	if stopTime != 0 && stopTime < startTime+UnixNanos(interval) {
		// The first occurrence would already exceed the stop time, so the
		// timer could never fire.
		return fmt.Errorf("%w: timer %q start %d, stop %d",
			ErrInvalidStopTime, name, startTime, stopTime)
	}

	c.registry.set(&timer{
		name:     name,
		callback: callback,
		nextTime: startTime + UnixNanos(interval),
		interval: UnixNanos(interval),
		stopTime: stopTime,
	})

	return nil
}

func (c *clockBase) NextTime(name string) (UnixNanos, error) {
	next, ok := c.registry.nextTime(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrTimerNotFound, name)
	}
	return next, nil
}

func (c *clockBase) CancelTimer(name string) {
	c.registry.remove(name)
}

func (c *clockBase) CancelTimers() {
	c.registry.removeAll()
}

func (c *clockBase) TimerNames() []string {
	return c.registry.names()
}

func (c *clockBase) TimerCount() int {
	return c.registry.count()
}
