package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// isInteractive reports whether r is a terminal a user can answer prompts on.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isTerminal(f)
}

// shouldColorize reports whether w is a terminal that renders ANSI colors.
func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
