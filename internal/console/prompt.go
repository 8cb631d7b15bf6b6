// Package console is the keyboard producer: a line prompt that turns typed
// document numbers, "next" and "exit" into queued commands.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"prompter/internal/command"
	"prompter/internal/decoder"
	"prompter/internal/logging"
)

const promptText = "Document number, 'next' or 'exit': "

// ErrUnrecognized reports input that is neither a number nor a keyword.
var ErrUnrecognized = errors.New("unrecognized input")

// Parse maps one input line to a command.
func Parse(line string) (command.Command, error) {
	text := strings.ToLower(strings.TrimSpace(line))
	switch text {
	case "exit", "quit", "q":
		return command.Exit(), nil
	case "next", "n", "+":
		return command.TurnPage(), nil
	}
	n, err := strconv.Atoi(text)
	if err != nil || n <= 0 {
		return command.Command{}, fmt.Errorf("%w: %q", ErrUnrecognized, strings.TrimSpace(line))
	}
	return command.OpenDocument(n), nil
}

// Prompt reads commands from In and pushes them to Queue.
type Prompt struct {
	In     *Lines
	Out    io.Writer
	Queue  decoder.Pusher
	Logger *slog.Logger
}

// Run prompts until "exit" is entered, In reaches EOF, or ctx is cancelled.
// EOF only stops this producer; other inputs keep feeding the queue.
func (p *Prompt) Run(ctx context.Context) error {
	logger := logging.NewComponentLogger(p.Logger, "console")
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		for {
			line, ok := p.In.Next()
			if !ok {
				break
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		readErr <- p.In.Err()
	}()

	for {
		p.print(promptText)
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			p.print("\n")
			if err != nil {
				return fmt.Errorf("read keyboard input: %w", err)
			}
			logger.Info("keyboard input closed", logging.String(logging.FieldEventType, "keyboard_eof"))
			return nil
		case line := <-lines:
			if strings.TrimSpace(line) == "" {
				continue
			}
			cmd, err := Parse(line)
			if err != nil {
				p.print(fmt.Sprintf("%v\n", err))
				continue
			}
			logger.Debug("keyboard command", logging.String(logging.FieldCommand, cmd.String()))
			if err := p.Queue.Push(cmd); err != nil {
				return fmt.Errorf("queue %s: %w", cmd, err)
			}
			if cmd.Kind == command.KindExit {
				return nil
			}
		}
	}
}

func (p *Prompt) print(text string) {
	if p.Out != nil {
		_, _ = io.WriteString(p.Out, text)
	}
}
