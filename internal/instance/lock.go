// Package instance guarantees a single running prompter per state directory.
// Two instances would fight over the same viewer session and MIDI port.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFile is the lock file name inside the state directory.
const LockFile = "prompter.lock"

// ErrAlreadyRunning reports that another process holds the lock.
var ErrAlreadyRunning = errors.New("another prompter instance is already running")

// Lock is a held single-instance lock.
type Lock struct {
	flock *flock.Flock
}

// Acquire takes the lock in dir without blocking.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	fl := flock.New(filepath.Join(dir, LockFile))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, fl.Path())
	}
	return &Lock{flock: fl}, nil
}

// Path is the lock file location.
func (l *Lock) Path() string { return l.flock.Path() }

// Release drops the lock.
func (l *Lock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
