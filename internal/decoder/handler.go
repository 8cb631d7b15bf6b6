package decoder

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"prompter/internal/command"
	"prompter/internal/logging"
)

// Sink receives every raw message verbatim (MIDI thru / monitoring).
type Sink interface {
	Send(msg []byte) error
}

// Pusher accepts decoded commands without blocking.
type Pusher interface {
	Push(cmd command.Command) error
}

// Handler is the input callback: echo, log, decode, enqueue.
type Handler struct {
	port    string
	decoder Decoder
	sink    Sink
	queue   Pusher
	logger  *slog.Logger

	mu        sync.Mutex
	wallclock time.Time
}

// NewHandler builds a callback for one input port. sink may be nil.
func NewHandler(port string, dec Decoder, sink Sink, queue Pusher, logger *slog.Logger) *Handler {
	return &Handler{
		port:      port,
		decoder:   dec,
		sink:      sink,
		queue:     queue,
		logger:    logging.NewComponentLogger(logger, "midi"),
		wallclock: time.Now(),
	}
}

// Handle processes one event. It is safe to call from the driver goroutine.
func (h *Handler) Handle(ev RawEvent) {
	h.mu.Lock()
	h.wallclock = h.wallclock.Add(ev.Delta)
	at := h.wallclock
	h.mu.Unlock()

	raw := ev.Bytes()
	if h.sink != nil {
		if err := h.sink.Send(raw); err != nil {
			h.logger.Debug("midi thru send failed", logging.String(logging.FieldPort, h.port), logging.Error(err))
		}
	}
	h.logger.Debug("midi message",
		logging.String(logging.FieldPort, h.port),
		logging.String("at", fmt.Sprintf("%.6f", float64(at.UnixMicro())/1e6)),
		logging.String("bytes", fmt.Sprintf("% X", raw)),
	)

	cmd, ok := h.decoder.Decode(ev)
	if !ok {
		return
	}
	h.logger.Info("midi command received",
		logging.String(logging.FieldPort, h.port),
		logging.String(logging.FieldCommand, cmd.String()),
	)
	if err := h.queue.Push(cmd); err != nil {
		logging.WarnWithContext(h.logger, "command dropped", "command_dropped",
			logging.String(logging.FieldCommand, cmd.String()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "the viewer will not react to this message"),
		)
	}
}
