// Package ui owns the local terminal's state around interactive
// sessions.
package ui

import (
	"os"

	"golang.org/x/term"
)

// Terminal remembers the state needed to undo raw mode.
type Terminal struct {
	fd    int
	state *term.State
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool { return term.IsTerminal(int(f.Fd())) }

// MakeRaw switches f's terminal into raw mode so keystrokes reach the
// peer unbuffered and unechoed. The caller must Restore on every exit
// path.
func MakeRaw(f *os.File) (*Terminal, error) {
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &Terminal{fd: fd, state: state}, nil
}

// Restore puts the terminal back into its pre-raw state.
func (t *Terminal) Restore() error { return term.Restore(t.fd, t.state) }
