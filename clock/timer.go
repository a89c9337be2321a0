package clock

import (
	"sort"
	"sync"
)

// A timer is a named, schedulable unit owned by one clock instance. A timer
// with a zero interval is a one-shot alert; a non-zero stop time bounds a
// repeating timer's lifetime.
type timer struct {
	name     string
	callback TimeEventCallback
	nextTime UnixNanos
	interval UnixNanos
	stopTime UnixNanos
}

// timerRegistry is the mutable set of pending timers shared by both clock
// variants. It has no knowledge of wall-clock vs. simulated time.
type timerRegistry struct {
	mu     sync.Mutex
	timers map[string]*timer
}

func newTimerRegistry() *timerRegistry {
	return &timerRegistry{timers: make(map[string]*timer)}
}

// set installs a timer. A timer already registered under the same name is
// replaced.
func (r *timerRegistry) set(t *timer) {
	r.mu.Lock()
	r.timers[t.name] = t
	r.mu.Unlock()
}

func (r *timerRegistry) nextTime(name string) (UnixNanos, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.timers[name]
	if !ok {
		return 0, false
	}
	return t.nextTime, true
}

// remove cancels a timer by name. Removing an unknown name is a no-op.
func (r *timerRegistry) remove(name string) {
	r.mu.Lock()
	delete(r.timers, name)
	r.mu.Unlock()
}

func (r *timerRegistry) removeAll() {
	r.mu.Lock()
	r.timers = make(map[string]*timer)
	r.mu.Unlock()
}

func (r *timerRegistry) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.timers))
	for name := range r.timers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (r *timerRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// earliest returns the smallest pending fire time, or false when no timers are
// registered.
func (r *timerRegistry) earliest() (UnixNanos, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var min UnixNanos
	found := false
	for _, t := range r.timers {
		if !found || t.nextTime < min {
			min = t.nextTime
			found = true
		}
	}

	return min, found
}

// advance produces one event per elapsed occurrence for every timer due at or
// before toTime, ordered by fire time with ties broken by timer name. When
// commit is true, each timer's next fire time is re-armed past toTime and
// exhausted timers are removed; otherwise the registry is left untouched so
// the same call can be repeated with identical results.
//
// The fallback callback is attached to events of timers registered without
// their own callback.
func (r *timerRegistry) advance(
	toTime, tsInit UnixNanos,
	commit bool,
	fallback TimeEventCallback,
) []TimeEventHandler {
	r.mu.Lock()
	defer r.mu.Unlock()

	var batch []TimeEventHandler

	for name, t := range r.timers {
		next := t.nextTime
		expired := false

		for next <= toTime {
			callback := t.callback
			if callback == nil {
				callback = fallback
			}

			batch = append(batch, TimeEventHandler{
				Event:    newTimeEvent(name, next, tsInit),
				Callback: callback,
			})

			if t.interval == 0 {
				expired = true
				break
			}

			next += t.interval
			if t.stopTime != 0 && next > t.stopTime {
				expired = true
				break
			}
		}

		if !commit {
			continue
		}

		if expired {
			delete(r.timers, name)
		} else {
			t.nextTime = next
		}
	}

	sort.Slice(batch, func(i, j int) bool {
		a, b := batch[i].Event, batch[j].Event
		if a.TsEvent != b.TsEvent {
			return a.TsEvent < b.TsEvent
		}
		return a.TimerName < b.TimerName
	})

	return batch
}
