package rain

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	errs "github.com/matzehuels/matrixrain/pkg/errors"
	"github.com/matzehuels/matrixrain/pkg/observability"
)

const (
	// DefaultInterval is the time between two animation steps.
	DefaultInterval = 70 * time.Millisecond

	// drainRatio stretches the drain poll slightly past one tick so each
	// poll observes at least one completed tick.
	drainRatio = 1.1
)

// Renderer receives the cells changed by one tick.
type Renderer interface {
	Render(changes []Change) error
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(changes []Change) error

// Render calls f(changes).
func (f RenderFunc) Render(changes []Change) error { return f(changes) }

// Options configures an Engine.
type Options struct {
	// Width and Height are the viewport: new trails are placed in
	// [0, Width) and rows wrap at Height.
	Width  int
	Height int

	// BufferWidth and BufferHeight size the screen grid. They default to
	// the viewport and must not be smaller than it.
	BufferWidth  int
	BufferHeight int

	// Interval is the tick period. Zero means DefaultInterval.
	Interval time.Duration

	// Rand breaks placement ties. Nil means a time-seeded source.
	Rand Rand

	// Renderer receives every non-empty change list. Nil discards output.
	Renderer Renderer

	// Hooks receives diagnostics. Nil means observability.Engine().
	Hooks observability.EngineHooks
}

// Stats are cumulative counters of an engine.
type Stats struct {
	Ticks     uint64
	Submitted uint64
	Pruned    uint64
	Dropped   uint64
	Active    int
}

// Engine animates submitted lines as falling trails.
//
// Submit and AwaitIdle may be called from any goroutine. A single ticker
// goroutine, started by Start, owns all screen writes and all rendering.
// The registry of active trails has no upper bound: if lines arrive faster
// than they drain, it keeps growing.
type Engine struct {
	mu     sync.Mutex
	screen *Screen
	trails registry
	rnd    Rand

	width    int
	height   int
	interval time.Duration
	renderer Renderer
	hooks    observability.EngineHooks

	ticks     atomic.Uint64
	submitted atomic.Uint64
	pruned    atomic.Uint64
	dropped   atomic.Uint64

	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
	stop      chan struct{}
	done      chan struct{}
}

// New validates opts and allocates the screen. The ticker is not running
// until Start is called.
func New(opts Options) (*Engine, error) {
	if err := errs.ValidateDimension("width", opts.Width, 1); err != nil {
		return nil, err
	}
	if err := errs.ValidateDimension("height", opts.Height, 1); err != nil {
		return nil, err
	}
	if opts.BufferWidth == 0 {
		opts.BufferWidth = opts.Width
	}
	if opts.BufferHeight == 0 {
		opts.BufferHeight = opts.Height
	}
	if err := errs.ValidateDimension("buffer width", opts.BufferWidth, opts.Width); err != nil {
		return nil, err
	}
	if err := errs.ValidateDimension("buffer height", opts.BufferHeight, opts.Height); err != nil {
		return nil, err
	}
	if opts.Interval == 0 {
		opts.Interval = DefaultInterval
	}
	if err := errs.ValidateInterval("interval", opts.Interval); err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Renderer == nil {
		opts.Renderer = RenderFunc(func([]Change) error { return nil })
	}
	if opts.Hooks == nil {
		opts.Hooks = observability.Engine()
	}

	return &Engine{
		screen:   NewScreen(opts.BufferWidth, opts.BufferHeight),
		rnd:      opts.Rand,
		width:    opts.Width,
		height:   opts.Height,
		interval: opts.Interval,
		renderer: opts.Renderer,
		hooks:    opts.Hooks,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start launches the ticker goroutine. Calling it again has no effect.
func (e *Engine) Start() {
	e.startOnce.Do(func() {
		e.started.Store(true)
		go e.loop()
	})
}

// Stop halts the ticker and waits for an in-flight tick to finish.
// Active trails stay in the registry. Stop is idempotent.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stop) })
	if e.started.Load() {
		<-e.done
	}
}

func (e *Engine) loop() {
	defer close(e.done)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			e.step()
		}
	}
}

// Submit places line in a column and starts it falling. Empty lines are
// ignored.
func (e *Engine) Submit(line string) {
	if line == "" {
		return
	}

	e.mu.Lock()
	column := Allocate(e.trails.snapshot(), e.width, e.height, e.rnd)
	t := newTrail(line, column)
	e.trails.add(t)
	e.mu.Unlock()

	e.submitted.Add(1)
	e.hooks.OnSubmit(column, len(t.text))
}

// AwaitIdle blocks until no trail is active, polling at 1.1 ticks.
// It only gives up when ctx is done.
func (e *Engine) AwaitIdle(ctx context.Context) error {
	poll := time.Duration(float64(e.interval) * drainRatio)
	for {
		if e.Active() == 0 {
			return nil
		}
		timer := time.NewTimer(poll)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Active returns the number of trails in the registry.
func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trails.len()
}

// CellAt returns what the screen currently holds at (column, row).
func (e *Engine) CellAt(column, row int) Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.screen.At(column, row)
}

// Viewport returns the width and height trails are laid out in.
func (e *Engine) Viewport() (width, height int) {
	return e.width, e.height
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Ticks:     e.ticks.Load(),
		Submitted: e.submitted.Load(),
		Pruned:    e.pruned.Load(),
		Dropped:   e.dropped.Load(),
		Active:    e.Active(),
	}
}

// step runs one tick. Whatever goes wrong inside it is reported to the
// hooks and the frame is dropped; the next tick starts from the screen
// state as it was left.
func (e *Engine) step() {
	n := e.ticks.Add(1)

	changes, pruned, err := e.advance()
	if pruned > 0 {
		e.hooks.OnPrune(pruned)
	}
	if err == nil && len(changes) > 0 {
		err = e.render(changes)
	}
	if err != nil {
		e.dropped.Add(1)
		e.hooks.OnTickError(n, err)
	}
}

// advance prunes finished trails, moves the rest one frame and returns
// the cells that changed.
func (e *Engine) advance() (changes []Change, pruned int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer recoverTick(&err)

	pruned = e.trails.prune()
	e.pruned.Add(uint64(pruned))
	for _, t := range e.trails.trails {
		changes = t.advance(e.screen, e.height, changes)
	}
	return changes, pruned, nil
}

func (e *Engine) render(changes []Change) (err error) {
	defer recoverTick(&err)
	if err := e.renderer.Render(changes); err != nil {
		return errs.Wrap(errs.ErrCodeTickFailed, err, "render %d cells", len(changes))
	}
	return nil
}

func recoverTick(err *error) {
	if r := recover(); r != nil {
		*err = errs.New(errs.ErrCodeTickFailed, "tick panicked: %v", r)
	}
}
