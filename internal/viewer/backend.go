package viewer

import (
	"context"
	"errors"
)

var (
	// ErrInvalidIndex reports a document index absent from the manifest.
	ErrInvalidIndex = errors.New("invalid document index")
	// ErrSession reports a control request that failed after a restart attempt.
	ErrSession = errors.New("viewer session error")
	// ErrConnectionLost reports an unreachable control endpoint.
	ErrConnectionLost = errors.New("viewer connection lost")
)

// Process is a launched viewer.
type Process interface {
	PID() int
	// Terminate requests a graceful shutdown.
	Terminate() error
	// Wait blocks until the process has exited.
	Wait() error
}

// Launcher starts the viewer showing documentPath in distraction-free mode.
type Launcher interface {
	Launch(ctx context.Context, documentPath string) (Process, error)
}

// Control is the viewer's remote-control endpoint. Pages are zero-based.
type Control interface {
	Ping(ctx context.Context) error
	OpenDocument(ctx context.Context, path, password string, page int) error
	GotoPage(ctx context.Context, page int) error
	CurrentPage(ctx context.Context) (int, error)
	Close() error
}

// Connector discovers and binds the control endpoint advertised by the
// process with the given pid.
type Connector interface {
	Connect(ctx context.Context, pid int) (Control, error)
}

// Cleaner removes stale viewer session and history artifacts.
type Cleaner interface {
	Clean() error
}

// Backend bundles the collaborators a Session drives.
type Backend struct {
	Launcher  Launcher
	Connector Connector
	// Cleaner is optional.
	Cleaner Cleaner
}
