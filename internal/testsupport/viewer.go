package testsupport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"prompter/internal/viewer"
)

var (
	// ErrViewerDown is returned by FakeControl once the fake viewer has been killed.
	ErrViewerDown = errors.New("fake viewer not running")
	// ErrLaunchFailed is returned for launches consumed by LaunchFailures.
	ErrLaunchFailed = errors.New("fake viewer launch failed")
)

// FakeViewer is a scripted viewer backend. It records every launch and
// control request so tests can assert on the exact call sequence.
type FakeViewer struct {
	mu sync.Mutex

	nextPID  int
	alive    bool
	page     int
	document string

	// Calls records control requests such as "GotoPage(5)".
	Calls    []string
	Launches []string
	Cleans   int

	// LaunchErr and ConnectErr make the corresponding step fail.
	LaunchErr  error
	ConnectErr error
	// LaunchFailures fails that many launches with ErrLaunchFailed before
	// launches start succeeding.
	LaunchFailures int
	// GotoErr makes GotoPage fail without killing the viewer.
	GotoErr error
}

// NewFakeViewer returns a fake with no running process.
func NewFakeViewer() *FakeViewer {
	return &FakeViewer{nextPID: 4000}
}

// Backend wires the fake into a viewer.Backend.
func (f *FakeViewer) Backend() viewer.Backend {
	return viewer.Backend{
		Launcher:  fakeLauncher{f},
		Connector: fakeConnector{f},
		Cleaner:   fakeCleaner{f},
	}
}

// Kill simulates the viewer window being closed by the user.
func (f *FakeViewer) Kill() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alive = false
}

// SetPage simulates manual navigation inside the viewer window.
func (f *FakeViewer) SetPage(page int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.page = page
}

// Page reports the page the fake viewer is showing.
func (f *FakeViewer) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

// Document reports the path the fake viewer is showing.
func (f *FakeViewer) Document() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.document
}

// Running reports whether the fake process is alive.
func (f *FakeViewer) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.alive
}

// CallLog returns a copy of the recorded control requests.
func (f *FakeViewer) CallLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Calls...)
}

// LaunchCount reports how many times the viewer was launched.
func (f *FakeViewer) LaunchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Launches)
}

func (f *FakeViewer) record(call string) {
	f.Calls = append(f.Calls, call)
}

type fakeLauncher struct{ f *FakeViewer }

func (l fakeLauncher) Launch(_ context.Context, path string) (viewer.Process, error) {
	f := l.f
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Launches = append(f.Launches, path)
	if f.LaunchErr != nil {
		return nil, f.LaunchErr
	}
	if f.LaunchFailures > 0 {
		f.LaunchFailures--
		return nil, ErrLaunchFailed
	}
	f.nextPID++
	f.alive = true
	f.document = path
	f.page = 0
	return &fakeProcess{f: f, pid: f.nextPID}, nil
}

type fakeProcess struct {
	f   *FakeViewer
	pid int
}

func (p *fakeProcess) PID() int { return p.pid }

func (p *fakeProcess) Terminate() error {
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	p.f.alive = false
	p.f.record("Terminate")
	return nil
}

func (p *fakeProcess) Wait() error { return nil }

type fakeConnector struct{ f *FakeViewer }

func (c fakeConnector) Connect(_ context.Context, pid int) (viewer.Control, error) {
	f := c.f
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ConnectErr != nil {
		return nil, f.ConnectErr
	}
	if !f.alive {
		return nil, fmt.Errorf("no control endpoint for pid %d", pid)
	}
	return &fakeControl{f: f}, nil
}

type fakeControl struct{ f *FakeViewer }

func (c *fakeControl) Ping(context.Context) error {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if !c.f.alive {
		return ErrViewerDown
	}
	return nil
}

func (c *fakeControl) OpenDocument(_ context.Context, path, _ string, page int) error {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if !c.f.alive {
		return ErrViewerDown
	}
	c.f.record(fmt.Sprintf("OpenDocument(%s,%d)", path, page))
	c.f.document = path
	c.f.page = page
	return nil
}

func (c *fakeControl) GotoPage(_ context.Context, page int) error {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if !c.f.alive {
		return ErrViewerDown
	}
	c.f.record(fmt.Sprintf("GotoPage(%d)", page))
	if c.f.GotoErr != nil {
		return c.f.GotoErr
	}
	c.f.page = page
	return nil
}

func (c *fakeControl) CurrentPage(context.Context) (int, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if !c.f.alive {
		return 0, ErrViewerDown
	}
	return c.f.page, nil
}

func (c *fakeControl) Close() error { return nil }

type fakeCleaner struct{ f *FakeViewer }

func (c fakeCleaner) Clean() error {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	c.f.Cleans++
	return nil
}
