package terminal

import (
	"bytes"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	errs "github.com/matzehuels/matrixrain/pkg/errors"
)

// Fallback geometry when the output is not a terminal.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// Size returns the terminal dimensions of f, or 80x24 if f is not a
// terminal.
func Size(f *os.File) (width, height int) {
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Session holds the terminal in animation mode between Open and Close.
type Session struct {
	w      io.Writer
	height int
	once   sync.Once
}

// Open clears the screen, hides the cursor and disables auto-wrap.
// height is the number of rows the animation uses; Close parks the cursor
// below them.
func Open(w io.Writer, height int) (*Session, error) {
	var b bytes.Buffer
	b.Write(csiSGR0)
	b.Write(csiClear)
	b.Write(csiCursorHide)
	b.Write(csiAutoWrapOff)
	if _, err := w.Write(b.Bytes()); err != nil {
		return nil, errs.Wrap(errs.ErrCodeTerminal, err, "prepare terminal")
	}
	return &Session{w: w, height: height}, nil
}

// Close restores colours, wrapping and the cursor. Only the first call
// writes anything.
func (s *Session) Close() error {
	var err error
	s.once.Do(func() {
		var b bytes.Buffer
		b.Write(csiSGR0)
		b.Write(csiAutoWrapOn)
		writeCursorPos(&b, 0, max(s.height-1, 0))
		b.WriteString("\r\n")
		b.Write(csiCursorShow)
		if _, werr := s.w.Write(b.Bytes()); werr != nil {
			err = errs.Wrap(errs.ErrCodeTerminal, werr, "restore terminal")
		}
	})
	return err
}

// EmergencyReset puts the terminal back into a usable state after a crash.
// Errors are ignored.
func EmergencyReset(w io.Writer) {
	var b bytes.Buffer
	b.Write(csiSGR0)
	b.Write(csiAutoWrapOn)
	b.Write(csiCursorShow)
	_, _ = w.Write(b.Bytes())
}
