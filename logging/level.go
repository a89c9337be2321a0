// Package logging provides the asynchronous logging pipeline of the platform.
// Call sites enqueue structured records; a single background consumer owns all
// formatting and sink I/O.
package logging

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// LogLevel is the severity of a log record.
type LogLevel uint8

const (
	// LevelDebug is the DBG debug log level.
	LevelDebug LogLevel = iota

	// LevelInfo is the INF info log level.
	LevelInfo

	// LevelWarning is the WRN warning log level.
	LevelWarning

	// LevelError is the ERR error log level.
	LevelError

	// LevelCritical is the CRT critical log level.
	LevelCritical
)

var levelNames = [...]string{
	LevelDebug:    "DBG",
	LevelInfo:     "INF",
	LevelWarning:  "WRN",
	LevelError:    "ERR",
	LevelCritical: "CRT",
}

var levelLongNames = [...]string{
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

func (l LogLevel) String() string {
	if int(l) >= len(levelNames) {
		return fmt.Sprintf("LogLevel(%d)", uint8(l))
	}
	return levelNames[l]
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarning:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.FatalLevel
	}
}

// LevelFromString converts a level name, short or long form, into a LogLevel.
func LevelFromString(name string) (LogLevel, error) {
	for i := range levelNames {
		if levelNames[i] == name || levelLongNames[i] == name {
			return LogLevel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

// UnmarshalYAML parses a level from its string form, so configuration files
// can spell levels as "INFO" or "INF".
func (l *LogLevel) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}

	level, err := LevelFromString(name)
	if err != nil {
		return err
	}

	*l = level

	return nil
}

// LogColor is the color hint carried by a log record.
type LogColor uint8

const (
	// ColorDefault is the default/normal log color.
	ColorDefault LogColor = iota

	// ColorGreen is typically associated with success events.
	ColorGreen

	// ColorBlue is typically associated with user actions.
	ColorBlue

	// ColorMagenta is an accent color for info records.
	ColorMagenta

	// ColorCyan is an accent color for info records.
	ColorCyan

	// ColorYellow is typically used with warning records.
	ColorYellow

	// ColorRed is typically used with error and critical records.
	ColorRed
)

var colorNames = [...]string{
	ColorDefault: "DEFAULT",
	ColorGreen:   "GREEN",
	ColorBlue:    "BLUE",
	ColorMagenta: "MAGENTA",
	ColorCyan:    "CYAN",
	ColorYellow:  "YELLOW",
	ColorRed:     "RED",
}

func (c LogColor) String() string {
	if int(c) >= len(colorNames) {
		return fmt.Sprintf("LogColor(%d)", uint8(c))
	}
	return colorNames[c]
}

// ColorFromString converts a color name back into a LogColor.
func ColorFromString(name string) (LogColor, error) {
	for i, n := range colorNames {
		if n == name {
			return LogColor(i), nil
		}
	}
	return 0, fmt.Errorf("unknown log color %q", name)
}

func (c LogColor) ansi() termenv.Color {
	switch c {
	case ColorGreen:
		return termenv.ANSIGreen
	case ColorBlue:
		return termenv.ANSIBlue
	case ColorMagenta:
		return termenv.ANSIMagenta
	case ColorCyan:
		return termenv.ANSICyan
	case ColorYellow:
		return termenv.ANSIYellow
	case ColorRed:
		return termenv.ANSIRed
	default:
		return nil
	}
}
