package log

import (
	"io"
	"log/slog"
)

type Key struct{}

var LoggerKey = Key{}

// LevelTrace is a custom trace level for slog
// Using LevelDebug - 4 which equals -8
const LevelTrace = slog.LevelDebug - 4

func ConfigLevelStringToSlogLevel(level string) slog.Level {
	switch level {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError
	}
}

// NewLogger builds the operational logger for a command invocation. The
// primary handler receives every record at or above level; the secondary
// handler only sees error records so failures still surface on the user's
// terminal when the primary writes to a file.
func NewLogger(primary io.Writer, secondary io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}

	primaryHandler := slog.NewTextHandler(primary, opts)

	var secondaryHandler slog.Handler
	if secondary != nil {
		secondaryHandler = slog.NewTextHandler(secondary, &slog.HandlerOptions{
			Level: slog.LevelError,
		})
	}

	return slog.New(NewDualHandler(primaryHandler, secondaryHandler))
}
