// Package dispatch drains the action queue into the viewer session.
//
// The loop is the single consumer: commands are executed one at a time, in
// enqueue order, and each finishes before the next is dequeued. Execution
// errors are logged and never stop the loop.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"prompter/internal/actionqueue"
	"prompter/internal/command"
	"prompter/internal/logging"
	"prompter/internal/viewer"
)

// DefaultPollInterval is the dequeue timeout used when none is configured.
const DefaultPollInterval = 100 * time.Millisecond

// Executor runs commands against the viewer. *viewer.Session satisfies it.
type Executor interface {
	OpenDocument(ctx context.Context, index int) error
	TurnPage(ctx context.Context) error
	Close(ctx context.Context) error
}

// Loop consumes Queue and applies each command to Executor.
type Loop struct {
	Queue        *actionqueue.Queue
	Executor     Executor
	Logger       *slog.Logger
	PollInterval time.Duration
}

// Run blocks until an Exit command is processed, the queue is closed or ctx
// is cancelled. The executor is always closed before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	if l.Queue == nil || l.Executor == nil {
		return errors.New("dispatch loop requires a queue and an executor")
	}
	logger := logging.NewComponentLogger(l.Logger, "dispatch")
	poll := l.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}

	for {
		cmd, ok, err := l.Queue.Pop(ctx, poll)
		if err != nil {
			if ctx.Err() != nil {
				l.discard(logger)
				l.close(ctx, logger)
				return nil
			}
			if errors.Is(err, actionqueue.ErrClosed) {
				logger.Info("action queue closed; stopping")
				l.close(ctx, logger)
				return nil
			}
			return err
		}
		if !ok {
			continue
		}
		if cmd.Kind == command.KindExit {
			logger.Info("exit requested", logging.String(logging.FieldEventType, "exit"))
			l.close(ctx, logger)
			return nil
		}
		l.execute(ctx, logger, cmd)
	}
}

func (l *Loop) execute(ctx context.Context, logger *slog.Logger, cmd command.Command) {
	started := time.Now()
	var err error
	switch cmd.Kind {
	case command.KindOpenDocument:
		err = l.Executor.OpenDocument(ctx, cmd.Index)
	case command.KindTurnPage:
		err = l.Executor.TurnPage(ctx)
	default:
		logger.Warn("unknown command ignored", logging.String(logging.FieldCommand, cmd.String()))
		return
	}
	if err == nil {
		logger.Debug("command executed",
			logging.String(logging.FieldCommand, cmd.String()),
			logging.Duration("elapsed", time.Since(started)),
		)
		return
	}

	switch {
	case errors.Is(err, viewer.ErrInvalidIndex):
		logging.WarnWithContext(logger, "document index not in manifest", "invalid_index",
			logging.String(logging.FieldCommand, cmd.String()),
			logging.Int(logging.FieldDocumentIndex, cmd.Index),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the program change number against the manifest"),
			logging.String(logging.FieldImpact, "command dropped"),
		)
	case ctx.Err() != nil:
		logger.Debug("command interrupted", logging.String(logging.FieldCommand, cmd.String()), logging.Error(err))
	default:
		logging.ErrorWithContext(logger, "viewer command failed", "viewer_command_failed",
			logging.String(logging.FieldCommand, cmd.String()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the viewer is installed and the D-Bus session bus is reachable"),
		)
	}
}

func (l *Loop) discard(logger *slog.Logger) {
	dropped := l.Queue.Drain()
	logger.Info("interrupted; discarding queued commands",
		logging.Int("discarded", len(dropped)),
		logging.String(logging.FieldEventType, "interrupted"),
	)
}

func (l *Loop) close(ctx context.Context, logger *slog.Logger) {
	// ctx may already be cancelled; closing must still reach the viewer.
	if err := l.Executor.Close(context.WithoutCancel(ctx)); err != nil {
		logging.WarnWithContext(logger, "viewer close failed", "viewer_close_failed", logging.Error(err))
	}
}
