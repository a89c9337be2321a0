package clock

import (
	"log"
	"time"
)

// Freq defines the type of frequency.
type Freq float64

// Defines the unit of frequency.
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
)

// Period returns the time between two consecutive ticks.
func (f Freq) Period() time.Duration {
	if f <= 0 {
		log.Panic("frequency must be positive")
	}
	return time.Duration(float64(time.Second) / float64(f))
}

// ThisTick returns the tick time that is at or right after the given time.
func (f Freq) ThisTick(now UnixNanos) UnixNanos {
	period := UnixNanos(f.Period())
	count := (int64(now) + int64(period) - 1) / int64(period)
	return UnixNanos(count * int64(period))
}

// NextTick returns the first tick time strictly after the given time.
func (f Freq) NextTick(now UnixNanos) UnixNanos {
	period := UnixNanos(f.Period())
	count := int64(now)/int64(period) + 1
	return UnixNanos(count * int64(period))
}
