package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/meridianhft/tradecore/clock"
)

// A Record is the unit flowing through the logging pipeline. Immutable once
// enqueued.
type Record struct {
	Timestamp clock.UnixNanos
	Level     LogLevel
	Color     LogColor
	Component string
	Message   string
}

// A Logger accepts records from arbitrarily many producers and processes them
// on a single background consumer goroutine, which is the only writer to the
// sinks. Producers never block: when the queue is full the record is dropped
// and counted.
//
// Records from a single producer reach the sinks in enqueue order. Interleaving
// across producers follows queue order, not timestamp order.
type Logger struct {
	cfg Config

	queue chan Record
	done  chan struct{}

	stdout io.Writer
	output *termenv.Output

	file     *os.File
	fileJSON zerolog.Logger

	dropped atomic.Uint64

	closeMu sync.RWMutex
	closed  bool
}

// NewLogger creates a Logger and starts its consumer goroutine. The file sink
// is opened eagerly when file logging is enabled so configuration errors
// surface at construction rather than on the consumer.
func NewLogger(cfg Config) (*Logger, error) {
	if err := cfg.applyDefaults(); err != nil {
		return nil, fmt.Errorf("logging config: %w", err)
	}

	l := &Logger{
		cfg:    cfg,
		queue:  make(chan Record, cfg.QueueSize),
		done:   make(chan struct{}),
		stdout: os.Stdout,
		output: termenv.NewOutput(os.Stdout),
	}

	if cfg.FileLogging && !cfg.Bypassed {
		path := filepath.Join(cfg.Directory, cfg.FileName)
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		l.file = file

		if cfg.FileFormat == FormatJSON {
			l.fileJSON = zerolog.New(file).With().
				Str("trader_id", cfg.TraderID).
				Str("machine_id", cfg.MachineID).
				Str("instance_id", cfg.InstanceID).
				Logger()
		}
	}

	go l.consume()

	return l, nil
}

// TraderID returns the configured trader identifier.
func (l *Logger) TraderID() string { return l.cfg.TraderID }

// MachineID returns the configured machine identifier.
func (l *Logger) MachineID() string { return l.cfg.MachineID }

// InstanceID returns this process instance's identifier.
func (l *Logger) InstanceID() string { return l.cfg.InstanceID }

// IsBypassed reports whether the logger drops all records immediately.
func (l *Logger) IsBypassed() bool { return l.cfg.Bypassed }

// QueueDepth returns the number of records currently waiting for the consumer.
func (l *Logger) QueueDepth() int { return len(l.queue) }

// Dropped returns the number of records lost to queue overflow.
func (l *Logger) Dropped() uint64 { return l.dropped.Load() }

// Log enqueues a record. It never blocks the caller: a full queue drops the
// record and increments the drop counter. Logging on a closed or bypassed
// logger is a no-op.
func (l *Logger) Log(
	timestamp clock.UnixNanos,
	level LogLevel,
	color LogColor,
	component string,
	message string,
) {
	if l.cfg.Bypassed {
		return
	}

	l.closeMu.RLock()
	defer l.closeMu.RUnlock()

	if l.closed {
		return
	}

	select {
	case l.queue <- Record{
		Timestamp: timestamp,
		Level:     level,
		Color:     color,
		Component: component,
		Message:   message,
	}:
	default:
		l.dropped.Add(1)
	}
}

// Close drains the queue, stops the consumer and closes the file sink.
// Closing an already closed logger is a no-op.
func (l *Logger) Close() {
	l.closeMu.Lock()
	if l.closed {
		l.closeMu.Unlock()
		return
	}
	l.closed = true
	close(l.queue)
	l.closeMu.Unlock()

	<-l.done

	if l.file != nil {
		_ = l.file.Close()
	}
}

func (l *Logger) consume() {
	defer close(l.done)

	for record := range l.queue {
		l.process(record)
	}
}

// process applies per-sink filtering and writes the record. Runs on the
// consumer goroutine only. Sink write failures are dropped here and never
// reach producers.
func (l *Logger) process(r Record) {
	stdoutMin := l.cfg.StdoutLevel
	fileMin := l.cfg.FileLevel
	if override, ok := l.cfg.ComponentLevels[r.Component]; ok {
		stdoutMin = override
		fileMin = override
	}

	if r.Level >= stdoutMin {
		l.writeStdout(r)
	}

	if l.file != nil && r.Level >= fileMin {
		l.writeFile(r)
	}
}

func (l *Logger) writeStdout(r Record) {
	line := l.formatText(r)

	color := r.Color
	if color == ColorDefault {
		switch r.Level {
		case LevelWarning:
			color = ColorYellow
		case LevelError, LevelCritical:
			color = ColorRed
		}
	}

	if ansi := color.ansi(); ansi != nil {
		line = l.output.String(line).Foreground(ansi).String()
	}

	_, _ = fmt.Fprintln(l.stdout, line)
}

func (l *Logger) writeFile(r Record) {
	if l.cfg.FileFormat == FormatJSON {
		l.fileJSON.WithLevel(r.Level.zerolog()).
			Int64("timestamp", int64(r.Timestamp)).
			Str("component", r.Component).
			Msg(r.Message)
		return
	}

	_, _ = fmt.Fprintln(l.file, l.formatText(r))
}

func (l *Logger) formatText(r Record) string {
	return fmt.Sprintf("%s [%s] %s.%s: %s",
		r.Timestamp.Time().Format("2006-01-02T15:04:05.000000000Z"),
		r.Level, l.cfg.TraderID, r.Component, r.Message)
}
