// Package source feeds lines of text into a rain engine.
//
// A source reads from somewhere (a reader, a running script) and calls
// [Sink.Submit] once per line. Every line passes through [Clean] first so
// that escape sequences, control characters and wide glyphs from the
// producer cannot corrupt the single-cell-per-character grid.
//
// # Scripts
//
// [Script] runs a program and rains its output. By default stdout and
// stderr are read through separate pipes, concurrently, so neither stream
// can stall the other. With PTY set the script runs on a pseudo-terminal
// instead, which makes most programs flush line by line and keep their
// colours (which Clean then strips).
//
//	s := source.Script{Path: "./build.sh"}
//	lines, err := s.Run(ctx, engine)
package source
