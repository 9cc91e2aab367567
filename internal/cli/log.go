// Package cli implements the move-tree command-line interface.
//
// This package discovers Move packages under a path and renders either
// their public API (modules view) or their dependency tree (deps view).
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library. Trees go to stdout, logs to stderr.
//
// # Commands
//
// The main commands are:
//   - modules: List modules and public functions (also the default)
//   - deps: List transitive dependencies
//   - cache: Manage the compiled snapshot cache
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// shows environment attempts, cache hits and resolver steps.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered sources/coin (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
