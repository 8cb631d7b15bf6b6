package viewer_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"prompter/internal/logging"
	"prompter/internal/manifest"
	"prompter/internal/testsupport"
	"prompter/internal/viewer"
)

func newSession(t *testing.T, fake *testsupport.FakeViewer) *viewer.Session {
	t.Helper()
	m, err := manifest.New("/docs", map[int]string{1: "a.pdf", 2: "b.pdf"})
	if err != nil {
		t.Fatalf("manifest.New: %v", err)
	}
	session, err := viewer.NewSession(m, fake.Backend(), viewer.Options{}, logging.NewNop())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return session
}

func TestStartLaunchesFirstDocumentAtPageZero(t *testing.T) {
	fake := testsupport.NewFakeViewer()
	session := newSession(t, fake)

	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if fake.LaunchCount() != 1 || fake.Launches[0] != "/docs/a.pdf" {
		t.Fatalf("unexpected launches %v", fake.Launches)
	}
	if got := fake.CallLog(); !slices.Equal(got, []string{"GotoPage(0)"}) {
		t.Fatalf("calls = %v, want [GotoPage(0)]", got)
	}
	if fake.Cleans != 1 {
		t.Fatalf("expected history cleanup before launch, got %d", fake.Cleans)
	}
	if session.CurrentDocument() != 1 || session.CurrentPage() != 0 {
		t.Fatalf("state = (%d,%d), want (1,0)", session.CurrentDocument(), session.CurrentPage())
	}
	if !session.IsHealthy(context.Background()) {
		t.Fatal("expected healthy session after Start")
	}
}

func TestOpenDocumentInvalidIndexLeavesStateUntouched(t *testing.T) {
	fake := testsupport.NewFakeViewer()
	session := newSession(t, fake)
	ctx := context.Background()
	if err := session.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := session.TurnPage(ctx); err != nil {
		t.Fatalf("TurnPage: %v", err)
	}
	before := fake.CallLog()

	err := session.OpenDocument(ctx, 9)
	if !errors.Is(err, viewer.ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
	if session.CurrentDocument() != 1 || session.CurrentPage() != 1 {
		t.Fatalf("state changed to (%d,%d)", session.CurrentDocument(), session.CurrentPage())
	}
	if got := fake.CallLog(); !slices.Equal(got, before) {
		t.Fatalf("viewer was contacted: %v", got)
	}
}

func TestOpenDocumentResetsPage(t *testing.T) {
	fake := testsupport.NewFakeViewer()
	session := newSession(t, fake)
	ctx := context.Background()
	if err := session.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	fake.SetPage(6)

	if err := session.OpenDocument(ctx, 2); err != nil {
		t.Fatalf("OpenDocument: %v", err)
	}
	if session.CurrentDocument() != 2 || session.CurrentPage() != 0 {
		t.Fatalf("state = (%d,%d), want (2,0)", session.CurrentDocument(), session.CurrentPage())
	}
	if fake.Document() != "/docs/b.pdf" || fake.Page() != 0 {
		t.Fatalf("viewer shows %s page %d", fake.Document(), fake.Page())
	}
}

func TestOpenDocumentRestartsDeadViewerOnce(t *testing.T) {
	fake := testsupport.NewFakeViewer()
	session := newSession(t, fake)
	ctx := context.Background()
	if err := session.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	fake.Kill()

	if err := session.OpenDocument(ctx, 2); err != nil {
		t.Fatalf("OpenDocument: %v", err)
	}
	if fake.LaunchCount() != 2 {
		t.Fatalf("launches = %d, want 2", fake.LaunchCount())
	}
	if session.Restarts() != 1 {
		t.Fatalf("restarts = %d, want 1", session.Restarts())
	}
	calls := fake.CallLog()
	if calls[len(calls)-1] != "OpenDocument(/docs/b.pdf,0)" {
		t.Fatalf("last call = %q", calls[len(calls)-1])
	}
}

func TestOpenDocumentRestartFailureWrapsSessionError(t *testing.T) {
	fake := testsupport.NewFakeViewer()
	session := newSession(t, fake)
	ctx := context.Background()
	if err := session.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	fake.Kill()
	fake.LaunchErr = errors.New("exec: not found")

	err := session.OpenDocument(ctx, 2)
	if !errors.Is(err, viewer.ErrSession) {
		t.Fatalf("expected ErrSession, got %v", err)
	}
	if fake.LaunchCount() != 2 {
		t.Fatalf("expected exactly one restart attempt, got %d launches", fake.LaunchCount())
	}
}

func TestFailedPageResetDuringRestartLeavesNoViewerBound(t *testing.T) {
	fake := testsupport.NewFakeViewer()
	session := newSession(t, fake)
	ctx := context.Background()
	if err := session.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := session.OpenDocument(ctx, 2); err != nil {
		t.Fatalf("OpenDocument: %v", err)
	}
	fake.Kill()
	fake.GotoErr = errors.New("rejected")

	if err := session.OpenDocument(ctx, 2); !errors.Is(err, viewer.ErrSession) {
		t.Fatalf("expected ErrSession, got %v", err)
	}
	if session.IsHealthy(ctx) || session.Connected() {
		t.Fatal("expected no control endpoint after failed restart")
	}
	if fake.Running() {
		t.Fatal("expected half-started viewer to be terminated")
	}
	if session.CurrentDocument() != 0 || session.CurrentPage() != 0 {
		t.Fatalf("state = (%d,%d), want (0,0)", session.CurrentDocument(), session.CurrentPage())
	}

	fake.GotoErr = nil
	if err := session.OpenDocument(ctx, 2); err != nil {
		t.Fatalf("OpenDocument after failed restart: %v", err)
	}
	if fake.LaunchCount() != 3 {
		t.Fatalf("launches = %d, want 3", fake.LaunchCount())
	}
	if session.CurrentDocument() != 2 || fake.Document() != "/docs/b.pdf" {
		t.Fatalf("session shows %d, viewer shows %s", session.CurrentDocument(), fake.Document())
	}
}

func TestTurnPageFollowsViewerPage(t *testing.T) {
	fake := testsupport.NewFakeViewer()
	session := newSession(t, fake)
	ctx := context.Background()
	if err := session.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	fake.SetPage(4)

	if err := session.TurnPage(ctx); err != nil {
		t.Fatalf("TurnPage: %v", err)
	}
	calls := fake.CallLog()
	if calls[len(calls)-1] != "GotoPage(5)" {
		t.Fatalf("last call = %q, want GotoPage(5)", calls[len(calls)-1])
	}
	if session.CurrentPage() != 5 {
		t.Fatalf("page = %d, want 5", session.CurrentPage())
	}
}

func TestTurnPageWithoutControlIsNoop(t *testing.T) {
	fake := testsupport.NewFakeViewer()
	session := newSession(t, fake)

	if err := session.TurnPage(context.Background()); err != nil {
		t.Fatalf("TurnPage: %v", err)
	}
	if len(fake.CallLog()) != 0 || fake.LaunchCount() != 0 {
		t.Fatal("expected no viewer interaction")
	}
}

func TestTurnPageErrorWrapsSessionError(t *testing.T) {
	fake := testsupport.NewFakeViewer()
	session := newSession(t, fake)
	ctx := context.Background()
	if err := session.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	fake.GotoErr = errors.New("rejected")

	if err := session.TurnPage(ctx); !errors.Is(err, viewer.ErrSession) {
		t.Fatalf("expected ErrSession, got %v", err)
	}
}

func TestCloseTerminatesViewer(t *testing.T) {
	fake := testsupport.NewFakeViewer()
	session := newSession(t, fake)
	ctx := context.Background()
	if err := session.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := session.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if fake.Running() {
		t.Fatal("expected viewer to be terminated")
	}
	if session.Connected() {
		t.Fatal("expected control endpoint to be released")
	}
	if err := session.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestStartHonoursCancelledContextDuringSettle(t *testing.T) {
	fake := testsupport.NewFakeViewer()
	m, err := manifest.New("/docs", map[int]string{1: "a.pdf"})
	if err != nil {
		t.Fatalf("manifest.New: %v", err)
	}
	session, err := viewer.NewSession(m, fake.Backend(), viewer.Options{LaunchSettle: 1 << 40}, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := session.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
