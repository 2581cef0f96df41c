package monitoring

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger provides enhanced structured logging with context
type Logger struct {
	*slog.Logger
	out io.Writer
}

func newHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Add timestamp in RFC3339 format
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})
}

// NewLogger creates a new enhanced logger writing JSON to stdout at info level
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout, slog.LevelInfo)
}

// NewLoggerWithWriter creates a logger writing JSON to w at the given level
func NewLoggerWithWriter(w io.Writer, level slog.Level) *Logger {
	return &Logger{
		Logger: slog.New(newHandler(w, level)),
		out:    w,
	}
}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() *Logger {
	return NewLoggerWithWriter(io.Discard, slog.LevelError)
}

// CombineLogger logs a completed combination
func (l *Logger) CombineLogger(op string, seriesCount, length int, duration time.Duration) {
	l.Debug("Combination Completed",
		"operator", op,
		"series_count", seriesCount,
		"length", length,
		"duration_us", duration.Microseconds(),
	)
}

// SetLevel sets the logging level, keeping the current output
func (l *Logger) SetLevel(level slog.Level) {
	out := l.out
	if out == nil {
		out = os.Stdout
	}
	l.Logger = slog.New(newHandler(out, level))
}
