package logging

import "github.com/meridianhft/tradecore/clock"

// An Adapter is the front-end through which one component emits log records.
// It stamps each record with the current time from the injected clock and tags
// it with the component's name.
type Adapter struct {
	component string
	time      clock.TimeTeller
	logger    *Logger
}

// NewAdapter creates an Adapter for the named component.
func NewAdapter(component string, time clock.TimeTeller, logger *Logger) *Adapter {
	return &Adapter{
		component: component,
		time:      time,
		logger:    logger,
	}
}

// Component returns the component name records are tagged with.
func (a *Adapter) Component() string {
	return a.component
}

// Log emits a record at the given level with an explicit color hint.
func (a *Adapter) Log(level LogLevel, color LogColor, message string) {
	a.logger.Log(a.time.TimestampNs(), level, color, a.component, message)
}

// Debug emits a debug record.
func (a *Adapter) Debug(message string) {
	a.Log(LevelDebug, ColorDefault, message)
}

// Info emits an info record.
func (a *Adapter) Info(message string) {
	a.Log(LevelInfo, ColorDefault, message)
}

// Warn emits a warning record.
func (a *Adapter) Warn(message string) {
	a.Log(LevelWarning, ColorYellow, message)
}

// Error emits an error record.
func (a *Adapter) Error(message string) {
	a.Log(LevelError, ColorRed, message)
}

// Critical emits a critical record.
func (a *Adapter) Critical(message string) {
	a.Log(LevelCritical, ColorRed, message)
}
