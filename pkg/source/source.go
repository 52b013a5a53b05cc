package source

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	errs "github.com/matzehuels/matrixrain/pkg/errors"
)

// MaxLineSize is the longest line Scan accepts.
const MaxLineSize = 1 << 20

// tabWidth is the number of spaces a tab expands to.
const tabWidth = 4

// Sink receives cleaned lines. *rain.Engine satisfies it.
type Sink interface {
	Submit(line string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(line string)

// Submit calls f(line).
func (f SinkFunc) Submit(line string) { f(line) }

// Clean makes line safe to place one rune per cell: escape sequences and
// control characters are removed, tabs become spaces, zero-width runes are
// dropped and wide runes are replaced with '?'.
func Clean(line string) string {
	line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
	line = ansi.Strip(line)

	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		switch {
		case r == utf8.RuneError:
			b.WriteByte('?')
		case unicode.IsControl(r):
		default:
			switch runewidth.RuneWidth(r) {
			case 0:
			case 1:
				b.WriteRune(r)
			default:
				b.WriteByte('?')
			}
		}
	}
	return b.String()
}

// Scan submits every line of r to sink and returns how many lines it read.
// It stops early when ctx is done.
func Scan(ctx context.Context, r io.Reader, sink Sink) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	n := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		n++
		sink.Submit(Clean(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return n, errs.Wrap(errs.ErrCodeInvalidInput, err, "line %d longer than %d bytes", n+1, MaxLineSize)
		}
		return n, err
	}
	return n, nil
}
