package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"prompter/internal/manifest"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err for the terminal. Missing manifest documents are
// listed one per line.
func reportError(w io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	var merr *manifest.Error
	if errors.As(err, &merr) && len(merr.Missing) > 0 {
		fmt.Fprint(w, merr.Report())
		return
	}
	fmt.Fprintln(w, err)
}
