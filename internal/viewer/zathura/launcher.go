package zathura

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/sys/unix"

	"prompter/internal/viewer"
)

// Launcher starts zathura processes.
type Launcher struct {
	Binary string
	// Mode is passed as --mode; presentation hides all chrome.
	Mode string
}

// Launch starts the viewer on documentPath at the first page.
func (l Launcher) Launch(_ context.Context, documentPath string) (viewer.Process, error) {
	binary := strings.TrimSpace(l.Binary)
	if binary == "" {
		binary = "zathura"
	}
	cmd := exec.Command(binary, launchArgs(documentPath, l.Mode)...) //nolint:gosec
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", binary, err)
	}
	p := &process{cmd: cmd, done: make(chan struct{})}
	go func() {
		p.waitErr = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

func launchArgs(documentPath, mode string) []string {
	if strings.TrimSpace(mode) == "" {
		mode = "presentation"
	}
	return []string{documentPath, "--mode=" + mode, "--page=1"}
}

type process struct {
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
	once    sync.Once
}

func (p *process) PID() int { return p.cmd.Process.Pid }

func (p *process) Terminate() error {
	select {
	case <-p.done:
		return nil
	default:
	}
	var err error
	p.once.Do(func() {
		err = unix.Kill(p.cmd.Process.Pid, unix.SIGTERM)
		if errors.Is(err, unix.ESRCH) {
			err = nil
		}
	})
	if err != nil {
		return fmt.Errorf("signal viewer pid %d: %w", p.PID(), err)
	}
	return nil
}

func (p *process) Wait() error {
	<-p.done
	var exitErr *exec.ExitError
	if errors.As(p.waitErr, &exitErr) && !exitErr.Exited() {
		// Killed by our SIGTERM.
		return nil
	}
	return p.waitErr
}
