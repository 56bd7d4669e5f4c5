package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bstviz/pkg/observability"
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
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 3 formats (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Logging hooks
// =============================================================================

// logHooks reports tree, render and HTTP events at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("hooks")}
}

func (h *logHooks) OnInsert(_ context.Context, value int, err error) {
	if err != nil {
		h.logger.Debug("insert rejected", "value", value, "error", err)
		return
	}
	h.logger.Debug("insert", "value", value)
}

func (h *logHooks) OnDelete(_ context.Context, value int, removed bool) {
	h.logger.Debug("delete", "value", value, "removed", removed)
}

func (h *logHooks) OnSearch(_ context.Context, value int, found bool) {
	h.logger.Debug("search", "value", value, "found", found)
}

func (h *logHooks) OnTraverse(_ context.Context, kind string, visited int) {
	h.logger.Debug("traverse", "kind", kind, "visited", visited)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string, nodeCount int) {
	h.logger.Debug("render start", "formats", formats, "nodes", nodeCount)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "duration", d, "error", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h *logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("http request", "method", method, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ observability.TreeHooks   = (*logHooks)(nil)
	_ observability.RenderHooks = (*logHooks)(nil)
	_ observability.HTTPHooks   = (*logHooks)(nil)
)
