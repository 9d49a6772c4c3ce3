// Package echo renders transferred byte ranges in human-readable form.
// Its writers are plain io.Writer sinks, so they plug directly into the
// netcat side channel and compose with files or io.MultiWriter.
package echo

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// hexWidth is the number of bytes rendered per dump line.
const hexWidth = 16

type lineWriter struct {
	w      io.Writer
	prefix string
}

// NewLine returns a sink that echoes data line by line, each line
// prefixed (conventionally ">> " for sent and "<< " for received data).
func NewLine(w io.Writer, prefix string) io.Writer {
	return &lineWriter{w: w, prefix: prefix}
}

func (l *lineWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(p, []byte{'\n'}) {
		if _, err := fmt.Fprintf(l.w, "%s%s\n", l.prefix, line); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

type hexWriter struct {
	w      io.Writer
	prefix string
}

// NewHex returns a sink that echoes data as a fixed-width hex dump with
// a printable-character gutter, unprintable bytes shown as '.'.
func NewHex(w io.Writer, prefix string) io.Writer {
	return &hexWriter{w: w, prefix: prefix}
}

func (h *hexWriter) Write(p []byte) (int, error) {
	var b strings.Builder
	for i := 0; i < len(p); i += hexWidth {
		row := p[i:min(i+hexWidth, len(p))]
		b.Reset()
		b.WriteString(h.prefix)
		for j, c := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%02X", c)
		}
		for k := 0; k < hexWidth-len(row); k++ {
			b.WriteString("   ")
		}
		b.WriteString("  |")
		for _, c := range row {
			if printable(c) {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString(strings.Repeat(" ", hexWidth-len(row)))
		b.WriteString("|\n")
		if _, err := io.WriteString(h.w, b.String()); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// printable reports whether c renders as itself in the gutter. Space is
// kept; all other whitespace and control bytes collapse to '.'.
func printable(c byte) bool {
	return c == ' ' || (c > ' ' && c < 0x7f)
}
