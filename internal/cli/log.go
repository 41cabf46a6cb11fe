package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the command logger. Debug output also reports the
// calling file and line.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		ReportCaller:    level <= log.DebugLevel,
		Level:           level,
	})
}

// stage times one step of a command, such as loading a graph file.
type stage struct {
	logger *log.Logger
	name   string
	start  time.Time
}

func startStage(l *log.Logger, name string) *stage {
	return &stage{logger: l, name: name, start: time.Now()}
}

// done logs the stage name with keyvals and the elapsed time under "took".
func (s *stage) done(keyvals ...any) time.Duration {
	elapsed := time.Since(s.start).Round(time.Millisecond)
	s.logger.Info(s.name, append(keyvals, "took", elapsed)...)
	return elapsed
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() outside a command run.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
