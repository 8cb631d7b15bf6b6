package zathura

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cleaner removes zathura's stored sessions and page history.
type Cleaner struct {
	// DataDir is the XDG data home; empty resolves $XDG_DATA_HOME or ~/.local/share.
	DataDir string
}

// Clean deletes <data>/zathura/sessions/* and <data>/zathura/history.
// Missing paths are not errors.
func (c Cleaner) Clean() error {
	root, err := c.root()
	if err != nil {
		return err
	}

	var errs []error
	sessions, err := filepath.Glob(filepath.Join(root, "sessions", "*"))
	if err != nil {
		return fmt.Errorf("glob zathura sessions: %w", err)
	}
	for _, path := range sessions {
		if err := os.RemoveAll(path); err != nil {
			errs = append(errs, err)
		}
	}
	// history is a file in older releases and a directory in newer ones.
	if err := os.RemoveAll(filepath.Join(root, "history")); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Cleaner) root() (string, error) {
	data := strings.TrimSpace(c.DataDir)
	if data == "" {
		data = strings.TrimSpace(os.Getenv("XDG_DATA_HOME"))
	}
	if data == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		data = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(data, "zathura"), nil
}
