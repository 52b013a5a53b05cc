// Package terminal writes rain frames to an ANSI terminal.
//
// Output bypasses terminfo and emits xterm-compatible sequences directly:
// absolute cursor positioning, 256-colour foreground selection, and the
// glyph. Each frame is assembled in memory and written with a single Write
// so the terminal never shows a half-drawn frame.
//
// A [Session] prepares the terminal for animation (clear, hidden cursor,
// auto-wrap off) and puts it back on Close. [Size] reads the geometry once
// at startup.
package terminal
