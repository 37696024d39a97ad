package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NewNopSlogLogger creates a slog logger that discards all output
func NewNopSlogLogger() *slog.Logger { return slog.New(nopHandler{}) }

// SlogLogger implements Logger on top of a structured slog.Logger
type SlogLogger struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogLogger adapts l to the Logger interface. Messages are logged at Info.
// A nil logger discards everything.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = NewNopSlogLogger()
	}
	return &SlogLogger{logger: l, level: slog.LevelInfo}
}

// NopLogger returns a Logger that discards all output
func NopLogger() Logger {
	return NewSlogLogger(nil)
}

// Printf formats the message and emits it as a single log record
func (s *SlogLogger) Printf(format string, args ...interface{}) {
	if !s.logger.Enabled(context.Background(), s.level) {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	s.logger.Log(context.Background(), s.level, msg)
}

// Slog returns the underlying structured logger
func (s *SlogLogger) Slog() *slog.Logger {
	return s.logger
}
