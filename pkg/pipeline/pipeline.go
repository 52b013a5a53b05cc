// Package pipeline wires a line source, a rain engine and a terminal
// renderer into one run.
//
// The pipeline has three stages:
//
//  1. Feed: read lines from a [Source] and submit them to the engine
//  2. Rain: the engine ticks in the background and renders each frame
//  3. Drain: once the source is exhausted, wait for every trail to leave
//     the screen before stopping the engine
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{Width: 80, Height: 24}
//	result, err := runner.Execute(ctx, os.Stdout, pipeline.FromReader(os.Stdin), opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Lines, "lines")
//
// A failing source does not cut the animation short: what it produced
// before failing still drains and the failure is returned in
// [Result.SourceErr]. Only context cancellation aborts a run.
package pipeline

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/matrixrain/pkg/errors"
	"github.com/matzehuels/matrixrain/pkg/rain"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the viewport width used when the terminal size is unknown.
	DefaultWidth = 80

	// DefaultHeight is the viewport height used when the terminal size is unknown.
	DefaultHeight = 24

	// DefaultInterval is the tick period.
	DefaultInterval = rain.DefaultInterval
)

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Viewport
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Screen buffer; defaults to the viewport
	BufferWidth  int `json:"buffer_width,omitempty"`
	BufferHeight int `json:"buffer_height,omitempty"`

	// Timing and placement
	Interval time.Duration `json:"interval,omitempty"`
	Seed     int64         `json:"seed,omitempty"` // 0 picks a time-based seed

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result describes a finished run.
type Result struct {
	// Lines is the number of lines the source produced.
	Lines int

	// Stats are the engine counters at shutdown.
	Stats rain.Stats

	// Duration is the wall time from first line to drained screen.
	Duration time.Duration

	// SourceErr is the error the source ended with, if any. Its output
	// was still rained.
	SourceErr error
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks dimensions and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if err := errs.ValidateDimension("width", o.Width, 1); err != nil {
		return err
	}
	if err := errs.ValidateDimension("height", o.Height, 1); err != nil {
		return err
	}
	if o.BufferWidth == 0 {
		o.BufferWidth = o.Width
	}
	if o.BufferHeight == 0 {
		o.BufferHeight = o.Height
	}
	if err := errs.ValidateDimension("buffer width", o.BufferWidth, o.Width); err != nil {
		return err
	}
	if err := errs.ValidateDimension("buffer height", o.BufferHeight, o.Height); err != nil {
		return err
	}
	if o.Interval == 0 {
		o.Interval = DefaultInterval
	}
	if err := errs.ValidateInterval("interval", o.Interval); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// engineOptions converts o into engine options. o must be validated.
func (o Options) engineOptions() rain.Options {
	return rain.Options{
		Width:        o.Width,
		Height:       o.Height,
		BufferWidth:  o.BufferWidth,
		BufferHeight: o.BufferHeight,
		Interval:     o.Interval,
		Rand:         rand.New(rand.NewSource(o.Seed)),
	}
}
