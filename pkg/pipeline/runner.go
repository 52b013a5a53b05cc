package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/matrixrain/pkg/observability"
	"github.com/matzehuels/matrixrain/pkg/rain"
	"github.com/matzehuels/matrixrain/pkg/terminal"
)

// Runner executes pipelines. It holds no per-run state, so one Runner may
// serve several runs.
type Runner struct {
	Logger *log.Logger

	// Hooks overrides the globally registered engine hooks when set.
	Hooks observability.EngineHooks
}

// NewRunner creates a runner. A nil logger means log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute rains the lines of src onto out and returns once the screen has
// drained. The returned error is non-nil only for invalid options or a
// canceled context; a source failure is reported in Result.SourceErr.
func (r *Runner) Execute(ctx context.Context, out io.Writer, src Source, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	engineOpts := opts.engineOptions()
	engineOpts.Renderer = terminal.NewRenderer(out)
	engineOpts.Hooks = r.Hooks
	engine, err := rain.New(engineOpts)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	result := &Result{}
	start := time.Now()

	engine.Start()
	defer engine.Stop()

	// Stage 1: Feed
	hooks.OnSourceStart(ctx, src.Kind)
	lines, srcErr := src.Feed(ctx, engine)
	hooks.OnSourceComplete(ctx, src.Kind, lines, time.Since(start), srcErr)
	result.Lines = lines
	if err := ctx.Err(); err != nil {
		return result, err
	}
	result.SourceErr = srcErr

	logger.Info("source finished",
		"kind", src.Kind,
		"lines", lines,
		"duration", time.Since(start))
	if srcErr != nil {
		logger.Warn("source failed", "kind", src.Kind, "err", srcErr)
	}

	// Stage 2: Drain
	drainStart := time.Now()
	err = engine.AwaitIdle(ctx)
	hooks.OnDrainComplete(ctx, time.Since(drainStart), err)
	if err != nil {
		return result, err
	}

	engine.Stop()
	result.Stats = engine.Stats()
	result.Duration = time.Since(start)

	logger.Info("rain drained",
		"ticks", result.Stats.Ticks,
		"pruned", result.Stats.Pruned,
		"dropped", result.Stats.Dropped,
		"duration", result.Duration)

	return result, nil
}
