// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. The rain engine and the pipeline runner
// report what they do through the hooks registered here; by default every hook
// is a no-op.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The engine never logs on its own. A tick that fails is dropped and reported
// through [EngineHooks.OnTickError]; whoever registered the hook decides
// whether to log it, count it, or ignore it.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnSourceStart(ctx, "script")
//	// ... feed lines ...
//	observability.Pipeline().OnSourceComplete(ctx, "script", lines, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the rain engine.
//
// Hooks are called from the ticker goroutine or from Submit callers, never
// while the engine lock is held, so implementations may block briefly but
// must be safe for concurrent use.
type EngineHooks interface {
	// OnSubmit records a new trail placed in column.
	OnSubmit(column, length int)

	// OnPrune records trails removed at the start of a tick.
	OnPrune(count int)

	// OnTickError records a tick whose update or render failed and was dropped.
	OnTickError(tick uint64, err error)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the source → rain → drain pipeline.
type PipelineHooks interface {
	OnSourceStart(ctx context.Context, kind string)
	OnSourceComplete(ctx context.Context, kind string, lines int, duration time.Duration, err error)
	OnDrainComplete(ctx context.Context, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnSubmit(int, int)         {}
func (NoopEngineHooks) OnPrune(int)               {}
func (NoopEngineHooks) OnTickError(uint64, error) {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnSourceStart(context.Context, string) {}
func (NoopPipelineHooks) OnSourceComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnDrainComplete(context.Context, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks   EngineHooks   = NoopEngineHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// Engines capture the registered hooks when they are created.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	pipelineHooks = NoopPipelineHooks{}
}
