package terminal

import "bytes"

// Pre-allocated ANSI sequence fragments
var (
	csiCursorPos = []byte("\x1b[") // followed by row;colH
	csiFg256     = []byte("\x1b[38;5;")
	csiSGR0      = []byte("\x1b[0m")
	csiClear     = []byte("\x1b[2J\x1b[H")

	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// DECAWM off keeps a glyph written to the bottom-right cell from
	// scrolling the whole screen.
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")
)

// writeInt writes a non-negative decimal without allocating.
func writeInt(b *bytes.Buffer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		b.WriteByte(byte(n) + '0')
		return
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte(n%10) + '0'
		n /= 10
	}
	b.Write(digits[i:])
}

// writeCursorPos moves the cursor to (x, y), both 0-indexed.
func writeCursorPos(b *bytes.Buffer, x, y int) {
	b.Write(csiCursorPos)
	writeInt(b, y+1)
	b.WriteByte(';')
	writeInt(b, x+1)
	b.WriteByte('H')
}

// writeFg256 selects palette colour n for the foreground.
func writeFg256(b *bytes.Buffer, n uint8) {
	b.Write(csiFg256)
	writeInt(b, int(n))
	b.WriteByte('m')
}
