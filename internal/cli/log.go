package cli

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eventlayout/pkg/layout"
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

// progress times one command over a layout file. Its log lines carry the
// layout file name.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts timing a command on the layout at path.
func newProgress(ctx context.Context, path string) *progress {
	return &progress{
		logger: loggerFromContext(ctx).With("layout", filepath.Base(path)),
		start:  time.Now(),
	}
}

// done logs msg with the elapsed time rounded to the millisecond and any
// extra key/value pairs, e.g. "merged layout layout=a.xlsx elapsed=12ms added=2".
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append([]any{"elapsed", time.Since(p.start).Round(time.Millisecond)}, keyvals...)
	p.logger.Info(msg, keyvals...)
}

// validated logs the outcome of a validation.
func (p *progress) validated(rep *layout.Report) {
	p.done("validated layout",
		"fields", rep.TotalFields, "size", rep.TotalSize,
		"errors", len(rep.Errors), "warnings", len(rep.Warnings))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
