package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"prompter/internal/logging"
	"prompter/internal/manifest"
)

// Options tunes settle intervals.
type Options struct {
	// LaunchSettle is waited after launching, before binding the control endpoint.
	LaunchSettle time.Duration
	// OpenSettle is waited after each document open to absorb the viewer's load time.
	OpenSettle time.Duration
}

// Session is the stateful viewer controller.
type Session struct {
	manifest *manifest.Manifest
	backend  Backend
	opts     Options
	logger   *slog.Logger

	process  Process
	control  Control
	document int
	page     int
	starts   int
}

// NewSession prepares a session; call Start to launch the viewer.
func NewSession(m *manifest.Manifest, backend Backend, opts Options, logger *slog.Logger) (*Session, error) {
	if m == nil {
		return nil, errors.New("viewer session requires a manifest")
	}
	if backend.Launcher == nil || backend.Connector == nil {
		return nil, errors.New("viewer session requires a launcher and a connector")
	}
	return &Session{
		manifest: m,
		backend:  backend,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "viewer"),
	}, nil
}

// Start (re)launches the viewer on the manifest's first document and binds
// its control endpoint. Any previous process is shut down first.
func (s *Session) Start(ctx context.Context) error {
	s.teardown()
	s.starts++

	if s.backend.Cleaner != nil {
		if err := s.backend.Cleaner.Clean(); err != nil {
			logging.WarnWithContext(s.logger, "viewer history cleanup failed", "viewer_cleanup_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check permissions on the viewer data directory"),
				logging.String(logging.FieldImpact, "the viewer may restore a previous page"),
			)
		}
	}

	first := s.manifest.First()
	path, _ := s.manifest.Lookup(first)
	proc, err := s.backend.Launcher.Launch(ctx, path)
	if err != nil {
		return fmt.Errorf("launch viewer: %w", err)
	}
	s.process = proc
	s.document = first
	s.page = 0
	s.logger.Info("viewer launched",
		logging.Int("pid", proc.PID()),
		logging.Int(logging.FieldDocumentIndex, first),
		logging.String("path", path),
		logging.String(logging.FieldEventType, "viewer_launched"),
	)

	// Any failure past this point leaves no half-bound viewer behind, so the
	// next OpenDocument sees an unhealthy session and relaunches.
	if err := sleep(ctx, s.opts.LaunchSettle); err != nil {
		s.teardown()
		return err
	}

	control, err := s.backend.Connector.Connect(ctx, proc.PID())
	if err != nil {
		s.teardown()
		return fmt.Errorf("connect viewer control endpoint: %w", err)
	}
	s.control = control

	// The launch page argument is not always honoured; re-assert page 0.
	if err := control.GotoPage(ctx, 0); err != nil {
		s.teardown()
		return fmt.Errorf("reset viewer page: %w", err)
	}
	return nil
}

// IsHealthy pings the control endpoint. Any failure counts as a lost connection.
func (s *Session) IsHealthy(ctx context.Context) bool {
	if s.control == nil {
		return false
	}
	if err := s.control.Ping(ctx); err != nil {
		s.logger.Debug("viewer ping failed", logging.Error(fmt.Errorf("%w: %w", ErrConnectionLost, err)))
		return false
	}
	return true
}

// OpenDocument shows the manifest entry index from page 0, relaunching the
// viewer once when the control endpoint is unreachable.
func (s *Session) OpenDocument(ctx context.Context, index int) error {
	path, ok := s.manifest.Lookup(index)
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}

	if !s.IsHealthy(ctx) {
		s.logger.Info("viewer unreachable; restarting",
			logging.String(logging.FieldEventType, "viewer_restart"),
		)
		if err := s.Start(ctx); err != nil {
			return fmt.Errorf("%w: restart viewer: %w", ErrSession, err)
		}
	}

	if err := s.control.OpenDocument(ctx, path, "", 0); err != nil {
		return fmt.Errorf("%w: open document %d: %w", ErrSession, index, err)
	}
	s.document = index
	s.page = 0
	s.logger.Info("document opened",
		logging.Int(logging.FieldDocumentIndex, index),
		logging.String("path", path),
	)
	return sleep(ctx, s.opts.OpenSettle)
}

// TurnPage advances one page from the page the viewer reports, so manual
// navigation in the viewer window is respected.
func (s *Session) TurnPage(ctx context.Context) error {
	if s.control == nil {
		s.logger.Warn("page turn ignored; viewer not connected",
			logging.String(logging.FieldEventType, "turn_page_skipped"),
		)
		return nil
	}
	current, err := s.control.CurrentPage(ctx)
	if err != nil {
		return fmt.Errorf("%w: read current page: %w", ErrSession, err)
	}
	next := current + 1
	if err := s.control.GotoPage(ctx, next); err != nil {
		return fmt.Errorf("%w: go to page %d: %w", ErrSession, next, err)
	}
	s.page = next
	s.logger.Debug("page turned", logging.Int(logging.FieldPage, next))
	return nil
}

// Close terminates the viewer and waits for it to exit. Failures are logged.
func (s *Session) Close(context.Context) error {
	s.teardown()
	return nil
}

func (s *Session) teardown() {
	if s.control != nil {
		if err := s.control.Close(); err != nil {
			s.logger.Debug("close viewer control endpoint", logging.Error(err))
		}
		s.control = nil
	}
	s.document = 0
	s.page = 0
	if s.process == nil {
		return
	}
	proc := s.process
	s.process = nil
	if err := proc.Terminate(); err != nil {
		logging.WarnWithContext(s.logger, "viewer terminate failed", "viewer_close_failed",
			logging.Int("pid", proc.PID()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "viewer window may stay open"),
		)
		return
	}
	if err := proc.Wait(); err != nil {
		s.logger.Debug("viewer exited", logging.Int("pid", proc.PID()), logging.Error(err))
	}
}

// CurrentDocument is the manifest index of the open document, or 0 when no
// viewer is running.
func (s *Session) CurrentDocument() int { return s.document }

// CurrentPage is the last page this session navigated to.
func (s *Session) CurrentPage() int { return s.page }

// Connected reports whether a control endpoint is bound.
func (s *Session) Connected() bool { return s.control != nil }

// Restarts counts relaunches after the initial Start.
func (s *Session) Restarts() int {
	if s.starts == 0 {
		return 0
	}
	return s.starts - 1
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
