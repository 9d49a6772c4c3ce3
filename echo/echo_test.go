package echo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineEcho(t *testing.T) {
	var buf bytes.Buffer
	w := NewLine(&buf, "<< ")

	_, err := w.Write([]byte("ping\npong"))
	require.NoError(t, err)
	require.Equal(t, "<< ping\n<< pong\n", buf.String())
}

func TestHexDumpFullRow(t *testing.T) {
	var buf bytes.Buffer
	w := NewHex(&buf, "<< ")

	_, err := w.Write([]byte("ABCDEFGHIJKLMNOP"))
	require.NoError(t, err)
	require.Equal(t,
		"<< 41 42 43 44 45 46 47 48 49 4A 4B 4C 4D 4E 4F 50  |ABCDEFGHIJKLMNOP|\n",
		buf.String())
}

func TestHexDumpShortRowPadding(t *testing.T) {
	var buf bytes.Buffer
	w := NewHex(&buf, "<< ")

	_, err := w.Write([]byte{0x00, 'Q', ' ', 'z'})
	require.NoError(t, err)
	want := "<< 00 51 20 7A" + strings.Repeat("   ", 12) +
		"  |.Q z" + strings.Repeat(" ", 12) + "|\n"
	require.Equal(t, want, buf.String())
}

func TestHexDumpHidesUnprintable(t *testing.T) {
	var buf bytes.Buffer
	w := NewHex(&buf, "")

	_, err := w.Write([]byte{'a', '\t', '\n', 0x7f, 'b'})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "|a...b")
}
