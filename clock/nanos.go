package clock

import "time"

// UnixNanos defines a point in time as nanoseconds since the Unix epoch.
type UnixNanos int64

// NanosFromTime converts a time.Time into UnixNanos.
func NanosFromTime(t time.Time) UnixNanos {
	return UnixNanos(t.UnixNano())
}

// NanosFromSecs converts a floating-point seconds-since-epoch value into
// UnixNanos.
func NanosFromSecs(s float64) UnixNanos {
	return UnixNanos(s * 1e9)
}

// Seconds returns the time as floating-point seconds since the Unix epoch.
func (t UnixNanos) Seconds() float64 {
	return float64(t) / 1e9
}

// Millis returns the time as whole milliseconds since the Unix epoch.
func (t UnixNanos) Millis() int64 {
	return int64(t) / int64(time.Millisecond)
}

// Micros returns the time as whole microseconds since the Unix epoch.
func (t UnixNanos) Micros() int64 {
	return int64(t) / int64(time.Microsecond)
}

// Time returns the time as a time.Time in UTC.
func (t UnixNanos) Time() time.Time {
	return time.Unix(0, int64(t)).UTC()
}

// Add returns the time shifted by the given duration.
func (t UnixNanos) Add(d time.Duration) UnixNanos {
	return t + UnixNanos(d)
}
