package cli

import (
	"context"
	"errors"
	"strconv"

	errs "github.com/matzehuels/matrixrain/pkg/errors"
	"github.com/matzehuels/matrixrain/pkg/pipeline"
	"github.com/matzehuels/matrixrain/pkg/terminal"
)

// reportedError marks an error a command has already shown to the user.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// IsReported reports whether err was already printed by a command.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// pipelineOptions builds run options from the loaded configuration. Unset
// dimensions follow the size of the output terminal. The screen buffer
// always covers the whole terminal, even when the viewport is smaller.
func (c *CLI) pipelineOptions() pipeline.Options {
	termWidth, termHeight := terminal.Size(c.Stdout)
	width, height := termWidth, termHeight
	if c.config.Width != 0 {
		width = c.config.Width
	}
	if c.config.Height != 0 {
		height = c.config.Height
	}
	return pipeline.Options{
		Width:        width,
		Height:       height,
		BufferWidth:  max(termWidth, width),
		BufferHeight: max(termHeight, height),
		Interval:     c.config.Interval,
		Seed:         c.config.Seed,
	}
}

// rainSource takes over the terminal, rains src and restores the terminal.
// Output the source produced before failing is still shown; the failure
// is returned afterwards.
func (c *CLI) rainSource(ctx context.Context, src pipeline.Source) error {
	logger := loggerFromContext(ctx)
	timer := startRunTimer(logger)

	opts := c.pipelineOptions()
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	logger.Debug("starting rain", "source", src.Kind, "width", opts.Width, "height", opts.Height, "seed", opts.Seed)

	restoreLogs, err := redirectLogs(c.Logger, c.config.LogFile, c.Stderr)
	if err != nil {
		return err
	}
	defer restoreLogs()

	session, err := terminal.Open(c.Stdout, opts.Height)
	if err != nil {
		return err
	}
	defer session.Close()

	runner := pipeline.NewRunner(logger)
	runner.Hooks = newLogHooks(logger)
	res, err := runner.Execute(ctx, c.Stdout, src, opts)

	if cerr := session.Close(); cerr != nil && err == nil {
		err = cerr
	}
	restoreLogs()
	if err != nil {
		return err
	}

	timer.rained(res.Lines)
	if res.Stats.Dropped > 0 {
		printWarning(c.Stderr, "%d frames dropped", res.Stats.Dropped)
		printKeyValue(c.Stderr, "ticks", strconv.FormatUint(res.Stats.Ticks, 10))
		if c.config.LogFile != "" {
			printKeyValue(c.Stderr, "log", c.config.LogFile)
		}
	}
	return res.SourceErr
}

// finish shows err to the user and, when pause is set and stdin is a
// terminal, waits for a key before returning it. Cancellation is passed
// through silently.
func (c *CLI) finish(ctx context.Context, err error, pause bool) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	printError(c.Stderr, "%s", errs.UserMessage(err))
	if code := errs.ExitCode(err); code > 0 {
		printKeyValue(c.Stderr, "exit code", strconv.Itoa(code))
	}
	if pause && terminal.IsTerminal(c.Stdin) {
		if werr := waitForKey(ctx, c.Stdin, c.Stderr, "press any key to exit"); werr != nil {
			loggerFromContext(ctx).Debug("key wait failed", "err", werr)
		}
	}
	return reportedError{err}
}
