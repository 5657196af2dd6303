package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. Lines carry a "15:04:05.00" timestamp;
// the level is raised to debug by -v.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one step of a command, such as solving a word list or
// rendering the overlap graph.
type progress struct {
	logger *log.Logger
	level  log.Level
	start  time.Time
}

func newProgress(l *log.Logger, level log.Level) *progress {
	return &progress{logger: l, level: level, start: time.Now()}
}

// done logs msg with keyvals and an elapsed field, e.g.
//
//	rendered overlap graph format=svg bytes=5120 elapsed=3.4ms
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(100*time.Microsecond))
	p.logger.Log(p.level, msg, keyvals...)
}

type ctxKey struct{}

// withLogger attaches l to ctx. The root command does this before any
// subcommand runs.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() for commands run without the root pre-run.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
