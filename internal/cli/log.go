// Package cli implements the bluefish command-line interface.
//
// The commands lay out diagram documents, inspect the resulting scenegraph,
// serve the HTTP API and manage the artifact cache. The CLI is built using
// cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Lay out a document and write SVG, PNG, PDF, JSON or DOT output
//   - inspect: Print the laid-out scenegraph as a table, JSON or a browser
//   - serve: Run the HTTP API
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so that long-running stages can report
// progress.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger that reports "HH:MM:SS.ms" timestamps
// (e.g., "14:32:01.45") and filters messages below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, rounded to the millisecond, and any
// extra key-value pairs.
// Example output: "Laid out diagram (12ms) nodes=8 passes=3"
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(fmt.Sprintf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond)), keyvals...)
}

// withLogger returns a new context carrying l. The HTTP middleware uses the
// same context key, so loggers flow unchanged between the CLI and server.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return log.WithContext(ctx, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	return log.FromContext(ctx)
}
