package terminal

import (
	"bytes"
	"io"

	"github.com/matzehuels/matrixrain/pkg/rain"
)

// Renderer turns a tick's change list into one terminal write.
// It is used by a single ticker goroutine and is not safe for concurrent use.
type Renderer struct {
	w      io.Writer
	buf    bytes.Buffer
	hidden bool
}

// NewRenderer returns a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render writes every change as cursor position, colour, glyph. Nothing is
// written for an empty list. The cursor is hidden on the first frame.
func (r *Renderer) Render(changes []rain.Change) error {
	if len(changes) == 0 {
		return nil
	}

	b := &r.buf
	b.Reset()
	b.Grow(len(changes) * 16)

	if !r.hidden {
		b.Write(csiCursorHide)
		r.hidden = true
	}
	for _, c := range changes {
		writeCursorPos(b, c.Column, c.Row)
		writeFg256(b, c.Color)
		b.WriteRune(c.Symbol)
	}

	_, err := r.w.Write(b.Bytes())
	return err
}
