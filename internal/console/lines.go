package console

import (
	"bufio"
	"io"
)

// Lines is one scanner over an input stream. The port chooser and the prompt
// share it, so lines buffered by one are still seen by the other.
type Lines struct {
	scanner *bufio.Scanner
}

// NewLines wraps r.
func NewLines(r io.Reader) *Lines {
	return &Lines{scanner: bufio.NewScanner(r)}
}

// Next returns the next line without its terminator. It reports false at
// EOF or on a read error; see Err.
func (l *Lines) Next() (string, bool) {
	if !l.scanner.Scan() {
		return "", false
	}
	return l.scanner.Text(), true
}

// Err is the first non-EOF read error.
func (l *Lines) Err() error {
	return l.scanner.Err()
}
