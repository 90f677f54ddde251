package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pidbase/pidctl/internal/log"
)

// Sink accepts tagged messages and alone owns the active verbosity: a
// message is emitted iff the active verbosity is at or above the message
// level. A Quiet sink emits nothing, including Normal-tagged writes.
type Sink interface {
	Emit(level Verbosity, messages ...string)
	Verbosity() Verbosity
}

// StreamSink writes emitted messages to a writer, one per line. When a
// logger is attached, every message is mirrored to it at the mapped slog
// level regardless of the console verbosity, so the operational log stays
// complete even when the console is quiet.
type StreamSink struct {
	w      io.Writer
	level  Verbosity
	logger *slog.Logger
}

func NewStreamSink(w io.Writer, level Verbosity) *StreamSink {
	return &StreamSink{
		w:     w,
		level: level,
	}
}

// WithLogger returns a copy of the sink that mirrors messages to logger.
func (s *StreamSink) WithLogger(logger *slog.Logger) *StreamSink {
	clone := *s
	clone.logger = logger
	return &clone
}

func (s *StreamSink) Verbosity() Verbosity {
	return s.level
}

func (s *StreamSink) Emit(level Verbosity, messages ...string) {
	if s.logger != nil {
		for _, message := range messages {
			s.logger.Log(context.Background(), slogLevel(level), message)
		}
	}

	if s.level == Quiet || level > s.level {
		return
	}

	for _, message := range messages {
		fmt.Fprintln(s.w, message)
	}
}

func slogLevel(level Verbosity) slog.Level {
	switch level {
	case Normal:
		return slog.LevelInfo
	case Verbose:
		return slog.LevelDebug
	default:
		return log.LevelTrace
	}
}
