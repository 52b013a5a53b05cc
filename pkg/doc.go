// Package pkg holds the libraries behind matrixrain.
//
// # Overview
//
// matrixrain turns lines of text into columns of falling characters. The
// pkg directory is organized as:
//
//  1. [rain] - The animation engine (screen, trails, placement, ticker)
//  2. [terminal] - ANSI rendering and terminal session setup
//  3. [source] - Line producers (readers, scripts on pipes or a pty)
//  4. [pipeline] - Orchestration (feed, rain, drain)
//  5. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Data flow
//
//	script / stdin
//	     ↓
//	[source] Clean + Scan
//	     ↓
//	[rain] Engine.Submit → Allocate column → trail
//	     ↓  every tick: prune, advance, diff
//	[terminal] Renderer (one batched write per frame)
//
// # Quick Start
//
//	engine, err := rain.New(rain.Options{
//	    Width:    80,
//	    Height:   24,
//	    Renderer: terminal.NewRenderer(os.Stdout),
//	})
//	if err != nil {
//	    return err
//	}
//	engine.Start()
//	defer engine.Stop()
//
//	engine.Submit("Wake up, Neo...")
//	return engine.AwaitIdle(ctx)
package pkg
