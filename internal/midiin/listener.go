package midiin

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"prompter/internal/decoder"
	"prompter/internal/logging"
)

// Client owns the rtmidi driver.
type Client struct {
	drv    drivers.Driver
	logger *slog.Logger
}

// NewClient opens the rtmidi driver.
func NewClient(logger *slog.Logger) (*Client, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("open rtmidi driver: %w", err)
	}
	return &Client{drv: drv, logger: logging.NewComponentLogger(logger, "midi")}, nil
}

// Ports lists the available inputs in driver order.
func (c *Client) Ports() ([]Port, error) {
	ins, err := c.drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("list MIDI inputs: %w", err)
	}
	ports := make([]Port, len(ins))
	for i, in := range ins {
		ports[i] = Port{Number: i + 1, Name: in.String()}
	}
	return ports, nil
}

// ListenOptions configures a Listener.
type ListenOptions struct {
	Decoder decoder.Decoder
	Queue   decoder.Pusher
	// Thru echoes every incoming message to the device's output port.
	Thru bool
}

// Listener is an open input port feeding the queue.
type Listener struct {
	port   Port
	in     drivers.In
	out    drivers.Out
	stop   func()
	logger *slog.Logger
	once   sync.Once
}

// Listen opens port and starts delivering messages on the driver goroutine.
func (c *Client) Listen(port Port, opts ListenOptions) (*Listener, error) {
	ins, err := c.drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("list MIDI inputs: %w", err)
	}
	var in drivers.In
	for _, candidate := range ins {
		if candidate.String() == port.Name {
			in = candidate
			break
		}
	}
	if in == nil {
		return nil, fmt.Errorf("MIDI input %q not found", port.Name)
	}
	if err := in.Open(); err != nil {
		return nil, fmt.Errorf("open MIDI input %q: %w", port.Name, err)
	}

	l := &Listener{port: port, in: in, logger: c.logger}

	var sink decoder.Sink
	if opts.Thru {
		out, send, err := c.openThru(port.Name)
		if err != nil {
			logging.WarnWithContext(c.logger, "MIDI thru unavailable", "midi_thru_unavailable",
				logging.String(logging.FieldPort, port.Name),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "set midi.thru = false to silence this warning"),
				logging.String(logging.FieldImpact, "incoming messages are not echoed"),
			)
		} else {
			l.out = out
			sink = send
		}
	}

	handler := decoder.NewHandler(port.Name, opts.Decoder, sink, opts.Queue, c.logger)
	var (
		mu   sync.Mutex
		last int32
	)
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		mu.Lock()
		delta := time.Duration(timestampms-last) * time.Millisecond
		last = timestampms
		mu.Unlock()
		ev, ok := decoder.FromBytes([]byte(msg), delta)
		if !ok {
			return
		}
		handler.Handle(ev)
	}, midi.HandleError(func(listenErr error) {
		logging.WarnWithContext(c.logger, "MIDI listener error", "midi_listener_error",
			logging.String(logging.FieldPort, port.Name),
			logging.Error(listenErr),
		)
	}))
	if err != nil {
		l.closePorts()
		return nil, fmt.Errorf("listen on %q: %w", port.Name, err)
	}
	l.stop = stop

	c.logger.Info("MIDI input connected",
		logging.String(logging.FieldPort, port.Name),
		logging.Bool("thru", l.out != nil),
		logging.String(logging.FieldEventType, "midi_connected"),
	)
	return l, nil
}

func (c *Client) openThru(name string) (drivers.Out, decoder.Sink, error) {
	outs, err := c.drv.Outs()
	if err != nil {
		return nil, nil, fmt.Errorf("list MIDI outputs: %w", err)
	}
	for _, out := range outs {
		if !sameDevice(out.String(), name) {
			continue
		}
		if err := out.Open(); err != nil {
			return nil, nil, fmt.Errorf("open MIDI output %q: %w", out.String(), err)
		}
		send, err := midi.SendTo(out)
		if err != nil {
			_ = out.Close()
			return nil, nil, fmt.Errorf("sender for %q: %w", out.String(), err)
		}
		return out, sendFunc(send), nil
	}
	return nil, nil, fmt.Errorf("no MIDI output named %q", name)
}

// sameDevice matches an output to an input by name. ALSA numbers the two
// directions of one device with different client:port suffixes, so only the
// device part is compared.
func sameDevice(out, in string) bool {
	return deviceName(out) == deviceName(in)
}

func deviceName(port string) string {
	port = strings.TrimSpace(port)
	if i := strings.LastIndex(port, " "); i > 0 && strings.Contains(port[i+1:], ":") {
		return port[:i]
	}
	return port
}

type sendFunc func(midi.Message) error

func (f sendFunc) Send(msg []byte) error {
	return f(midi.Message(msg))
}

// Port is the connected input.
func (l *Listener) Port() Port { return l.port }

// Close stops listening and releases both ports. It is idempotent.
func (l *Listener) Close() error {
	l.once.Do(func() {
		if l.stop != nil {
			l.stop()
		}
		l.closePorts()
		l.logger.Info("MIDI input closed", logging.String(logging.FieldPort, l.port.Name))
	})
	return nil
}

func (l *Listener) closePorts() {
	if l.in != nil {
		_ = l.in.Close()
	}
	if l.out != nil {
		_ = l.out.Close()
	}
}

// Close shuts the driver down.
func (c *Client) Close() error {
	return c.drv.Close()
}
