package clock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/meridianhft/tradecore/hooking"
)

// A LiveClock tracks the wall clock. A background loop computes due timers the
// same way the simulated clock does and invokes their callbacks directly,
// outside the registry lock. Registration, cancellation and queries are safe
// to call from any goroutine while the loop runs.
type LiveClock struct {
	clockBase

	tickFreq Freq

	// lastNs enforces that timestamps never decrease within this instance,
	// even if the OS clock steps backwards.
	lastNs atomic.Int64

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

var _ Clock = (*LiveClock)(nil)

// NewLiveClock creates a LiveClock. The background loop is not started until
// Start is called.
func NewLiveClock() *LiveClock {
	return &LiveClock{
		clockBase: newClockBase(),
		tickFreq:  1 * KHz,
	}
}

// WithTickFreq sets the maximum wakeup frequency of the background loop. The
// loop always wakes earlier when a timer is due sooner.
func (c *LiveClock) WithTickFreq(f Freq) *LiveClock {
	c.tickFreq = f
	return c
}

// TimestampNs returns the current wall-clock time in nanoseconds, monotonic
// non-decreasing within this instance.
func (c *LiveClock) TimestampNs() UnixNanos {
	now := time.Now().UnixNano()
	for {
		last := c.lastNs.Load()
		if now <= last {
			return UnixNanos(last)
		}
		if c.lastNs.CompareAndSwap(last, now) {
			return UnixNanos(now)
		}
	}
}

// Timestamp returns the current time as floating-point seconds.
func (c *LiveClock) Timestamp() float64 {
	return c.TimestampNs().Seconds()
}

// TimestampMs returns the current time in milliseconds.
func (c *LiveClock) TimestampMs() int64 {
	return c.TimestampNs().Millis()
}

// TimestampUs returns the current time in microseconds.
func (c *LiveClock) TimestampUs() int64 {
	return c.TimestampNs().Micros()
}

// SetTimeAlert registers a one-shot timer firing at alertTime.
func (c *LiveClock) SetTimeAlert(
	name string,
	alertTime UnixNanos,
	callback TimeEventCallback,
) error {
	return c.setTimeAlert(name, alertTime, callback, c.TimestampNs())
}

// SetTimer registers a repeating timer.
func (c *LiveClock) SetTimer(
	name string,
	interval time.Duration,
	startTime, stopTime UnixNanos,
	callback TimeEventCallback,
) error {
	return c.setTimer(name, interval, startTime, stopTime, callback, c.TimestampNs())
}

// Start launches the background dispatch loop. Starting an already started
// clock is a no-op.
func (c *LiveClock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.started = true

	// The loop closes the channel it was spawned with, never the field, so a
	// restart racing a stop cannot close the wrong instance's channel.
	go c.loop(ctx, done)
}

// Stop terminates the background loop and waits for it to drain. Pending
// timers stay registered; call CancelTimers to release them.
func (c *LiveClock) Stop() {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return
	}
	c.cancel()
	done := c.done
	c.started = false
	c.mu.Unlock()

	<-done
}

func (c *LiveClock) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	maxWait := c.tickFreq.Period()
	timer := time.NewTimer(maxWait)
	defer timer.Stop()

	for {
		wait := maxWait
		if due, ok := c.registry.earliest(); ok {
			untilDue := time.Duration(due - c.TimestampNs())
			if untilDue < wait {
				wait = untilDue
			}
		}
		if wait < 0 {
			wait = 0
		}

		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		now := c.TimestampNs()
		batch := c.registry.advance(now, now, true, c.fallbackHandler())

		// Callbacks run here, on the loop goroutine, after the registry lock
		// has been released.
		for _, h := range batch {
			hookCtx := hooking.HookCtx{
				Domain: c,
				Pos:    hooking.HookPosBeforeEvent,
				Item:   h.Event,
			}
			c.InvokeHook(hookCtx)

			h.Handle()

			hookCtx.Pos = hooking.HookPosAfterEvent
			c.InvokeHook(hookCtx)
		}
	}
}
