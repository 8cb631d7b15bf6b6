// Package actionqueue is the multi-producer, single-consumer FIFO between
// input listeners and the dispatch loop.
//
// Push never blocks the producer. Pop blocks the consumer until a command is
// available, a timeout elapses, or the context is cancelled, so the dispatch
// loop does not need a fixed sleep between polls.
package actionqueue

import (
	"context"
	"errors"
	"sync"
	"time"

	"prompter/internal/command"
)

// ErrClosed is returned by Push after Close, and by Pop once a closed queue is empty.
var ErrClosed = errors.New("action queue closed")

// Queue is an unbounded FIFO of commands. The zero value is not usable; call New.
type Queue struct {
	mu     sync.Mutex
	items  []command.Command
	closed bool
	// ready holds at most one wake-up token for the consumer.
	ready chan struct{}
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Push appends cmd. It is safe for concurrent use by any number of producers.
func (q *Queue) Push(cmd command.Command) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, cmd)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return nil
}

// Pop removes the oldest command. It waits up to timeout for one to arrive;
// ok is false when the wait timed out. A closed, empty queue returns
// ErrClosed and a cancelled ctx returns ctx.Err().
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (cmd command.Command, ok bool, err error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return command.Command{}, false, err
		}
		q.mu.Lock()
		if len(q.items) > 0 {
			cmd = q.items[0]
			q.items[0] = command.Command{}
			q.items = q.items[1:]
			q.mu.Unlock()
			return cmd, true, nil
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return command.Command{}, false, ErrClosed
		}

		select {
		case <-ctx.Done():
			return command.Command{}, false, ctx.Err()
		case <-timer.C:
			return command.Command{}, false, nil
		case <-q.ready:
		}
	}
}

// Drain removes and returns every queued command in FIFO order.
func (q *Queue) Drain() []command.Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close rejects further pushes and wakes a waiting consumer. Commands
// already queued can still be popped or drained.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
