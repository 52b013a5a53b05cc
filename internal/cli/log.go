// Package cli implements the matrixrain command-line interface.
//
// The CLI runs a script or reads standard input and hands every line to the
// rain engine, which draws it as a falling trail on the terminal. Flags can
// also be set in an optional TOML config file.
//
// # Commands
//
// The main commands are:
//   - run: Run a script and rain its stdout and stderr
//   - pipe: Rain lines read from standard input
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. While the rain is on screen, log output
// goes to --log-file or is dropped so it cannot tear the animation.
//
// # Example
//
//	import "github.com/matzehuels/matrixrain/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/matrixrain/pkg/errors"
)

// newLogger writes to w at level with "15:04:05.00" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// =============================================================================
// Redirection
// =============================================================================

// redirectLogs points l at the file at path, or discards its output when
// path is empty, until the returned restore function sends it back to
// stderr. restore closes the file and is safe to call more than once.
//
// The rain owns the terminal while it runs; a log line written there
// would tear the grid.
func redirectLogs(l *log.Logger, path string, stderr io.Writer) (restore func(), err error) {
	var (
		out  io.Writer = io.Discard
		file *os.File
	)
	if path != "" {
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "open log file %s", path)
		}
		out = file
	}
	l.SetOutput(out)

	var once sync.Once
	return func() {
		once.Do(func() {
			l.SetOutput(stderr)
			if file != nil {
				file.Close()
			}
		})
	}, nil
}

// =============================================================================
// Run timing
// =============================================================================

// runTimer measures one rain run for the closing summary line.
type runTimer struct {
	logger *log.Logger
	start  time.Time
}

func startRunTimer(l *log.Logger) *runTimer {
	return &runTimer{logger: l, start: time.Now()}
}

// rained logs how many lines fell and how long the run took, rounded to
// the millisecond, e.g. "12 lines rained (4.312s)".
func (t *runTimer) rained(lines int) {
	t.logger.Infof("%s rained (%s)", pluralLines(lines), time.Since(t.start).Round(time.Millisecond))
}

func pluralLines(n int) string {
	if n == 1 {
		return "1 line"
	}
	return strconv.Itoa(n) + " lines"
}

// =============================================================================
// Context
// =============================================================================

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger stored by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
