package console_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"prompter/internal/command"
	"prompter/internal/console"
	"prompter/internal/midiin"
)

type recorder struct {
	mu   sync.Mutex
	cmds []command.Command
	err  error
}

func (r *recorder) Push(cmd command.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.cmds = append(r.cmds, cmd)
	return nil
}

func (r *recorder) pushed() []command.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]command.Command(nil), r.cmds...)
}

func TestParse(t *testing.T) {
	cases := []struct {
		line string
		want command.Command
	}{
		{"3", command.OpenDocument(3)},
		{"  12 ", command.OpenDocument(12)},
		{"next", command.TurnPage()},
		{"N", command.TurnPage()},
		{"exit", command.Exit()},
		{"EXIT", command.Exit()},
		{"quit", command.Exit()},
	}
	for _, tc := range cases {
		got, err := console.Parse(tc.line)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.line, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %s, want %s", tc.line, got, tc.want)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, line := range []string{"abc", "-1", "0", "1.5"} {
		if _, err := console.Parse(line); !errors.Is(err, console.ErrUnrecognized) {
			t.Fatalf("Parse(%q) error = %v, want ErrUnrecognized", line, err)
		}
	}
}

func TestPromptPushesUntilExit(t *testing.T) {
	rec := &recorder{}
	var out bytes.Buffer
	p := &console.Prompt{
		In:    console.NewLines(strings.NewReader("2\n\nbogus\nnext\nexit\n5\n")),
		Out:   &out,
		Queue: rec,
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []command.Command{command.OpenDocument(2), command.TurnPage(), command.Exit()}
	if got := rec.pushed(); !slices.Equal(got, want) {
		t.Fatalf("pushed %v, want %v", got, want)
	}
	if !strings.Contains(out.String(), "unrecognized input") {
		t.Fatalf("expected feedback for bad input, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Document number") {
		t.Fatalf("expected prompt text, got %q", out.String())
	}
}

func TestPromptEOFStopsProducerOnly(t *testing.T) {
	rec := &recorder{}
	p := &console.Prompt{In: console.NewLines(strings.NewReader("1\n")), Out: io.Discard, Queue: rec}
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := rec.pushed(); !slices.Equal(got, []command.Command{command.OpenDocument(1)}) {
		t.Fatalf("pushed %v", got)
	}
}

func TestPromptStopsOnCancel(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- (&console.Prompt{In: console.NewLines(reader), Out: io.Discard, Queue: rec}).Run(ctx)
	}()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("prompt did not stop after cancellation")
	}
}

func TestPromptQueueClosed(t *testing.T) {
	rec := &recorder{err: errors.New("closed")}
	p := &console.Prompt{In: console.NewLines(strings.NewReader("next\n")), Out: io.Discard, Queue: rec}
	if err := p.Run(context.Background()); err == nil {
		t.Fatal("expected error when queue rejects commands")
	}
}

func TestChoosePortRetriesUntilValid(t *testing.T) {
	ports := []midiin.Port{{Number: 1, Name: "Midi Through"}, {Number: 2, Name: "FS-6 Footswitch"}}
	var out bytes.Buffer
	got, err := console.ChoosePort(console.NewLines(strings.NewReader("7\nfs-6\n")), &out, ports)
	if err != nil {
		t.Fatalf("ChoosePort: %v", err)
	}
	if got.Number != 2 {
		t.Fatalf("chose %v, want port 2", got)
	}
	if !strings.Contains(out.String(), "1: Midi Through") {
		t.Fatalf("expected port listing, got %q", out.String())
	}
	if !strings.Contains(out.String(), "out of range") {
		t.Fatalf("expected range error feedback, got %q", out.String())
	}
}

func TestChoosePortEOF(t *testing.T) {
	ports := []midiin.Port{{Number: 1, Name: "Midi Through"}}
	if _, err := console.ChoosePort(console.NewLines(strings.NewReader("")), io.Discard, ports); err == nil {
		t.Fatal("expected error when no selection is read")
	}
}

func TestChoosePortNoPorts(t *testing.T) {
	if _, err := console.ChoosePort(console.NewLines(strings.NewReader("1\n")), io.Discard, nil); !errors.Is(err, midiin.ErrNoPorts) {
		t.Fatalf("expected ErrNoPorts, got %v", err)
	}
}

func TestPromptSeesLinesAfterPortChoice(t *testing.T) {
	ports := []midiin.Port{{Number: 1, Name: "Midi Through"}, {Number: 2, Name: "FS-6 Footswitch"}}
	in := console.NewLines(strings.NewReader("2\n3\nnext\nexit\n"))

	port, err := console.ChoosePort(in, io.Discard, ports)
	if err != nil {
		t.Fatalf("ChoosePort: %v", err)
	}
	if port.Number != 2 {
		t.Fatalf("chose %v, want port 2", port)
	}

	rec := &recorder{}
	if err := (&console.Prompt{In: in, Out: io.Discard, Queue: rec}).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []command.Command{command.OpenDocument(3), command.TurnPage(), command.Exit()}
	if got := rec.pushed(); !slices.Equal(got, want) {
		t.Fatalf("pushed %v, want %v", got, want)
	}
}
