package server

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
// and to the server log
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	logger      *slog.Logger
}

// NewWebLogger creates a new web logger for a specific render. A nil slog
// logger discards server-side output.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, logger *slog.Logger) core.Logger {
	if logger == nil {
		logger = core.NewNopSlogLogger()
	}
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		logger:      logger.With("render", renderID),
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	wl.logger.Info(strings.TrimRight(message, "\n"))

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}
