// Package zerolog implements the domain Logger on top of rs/zerolog.
package zerolog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ochairo/footprint/internal/domain/interfaces"
)

// Logger adapts a zerolog.Logger to interfaces.Logger
type Logger struct {
	zl zerolog.Logger
}

// Options controls the output of a Logger
type Options struct {
	// Level is one of debug, info, warn, error; empty means info
	Level string
	// Format is "console" for pretty output or "json"
	Format string
	// Out defaults to os.Stderr
	Out io.Writer
}

// New creates a Logger from options
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var w io.Writer
	switch strings.ToLower(opts.Format) {
	case "", "console":
		// Pretty console output
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
		w = out
	default:
		return nil, fmt.Errorf("unknown log format %q: expected console or json", opts.Format)
	}

	return &Logger{zl: zerolog.New(w).Level(level).With().Timestamp().Logger()}, nil
}

// ParseLevel maps a level name to a zerolog level
func ParseLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Debug logs at debug level
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	write(l.zl.Debug(), msg, fields)
}

// Info logs at info level
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	write(l.zl.Info(), msg, fields)
}

// Warn logs at warn level
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	write(l.zl.Warn(), msg, fields)
}

// Error logs at error level
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	write(l.zl.Error(), msg, fields)
}

func write(e *zerolog.Event, msg string, fields []interfaces.Field) {
	if e == nil {
		return
	}
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			e = e.AnErr(f.Key, v)
		case fmt.Stringer:
			e = e.Stringer(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	e.Msg(msg)
}
