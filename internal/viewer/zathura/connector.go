package zathura

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"prompter/internal/viewer"
)

const (
	busNamePrefix = "org.pwmt.zathura.PID"
	objectPath    = dbus.ObjectPath("/org/pwmt/zathura")
	iface         = "org.pwmt.zathura"

	methodPing         = "org.freedesktop.DBus.Peer.Ping"
	methodListNames    = "org.freedesktop.DBus.ListNames"
	methodOpenDocument = iface + ".OpenDocument"
	methodGotoPage     = iface + ".GotoPage"
	propertyPageNumber = iface + ".pagenumber"

	discoveryInterval = 200 * time.Millisecond
)

// Connector binds the zathura control object on the D-Bus session bus.
type Connector struct {
	// Timeout bounds discovery; zathura registers its name asynchronously.
	Timeout time.Duration
	// Dial overrides the session bus connection, mainly for tests.
	Dial func() (*dbus.Conn, error)
}

// Connect waits until the process with pid exposes its control object.
func (c Connector) Connect(ctx context.Context, pid int) (viewer.Control, error) {
	dial := c.Dial
	if dial == nil {
		dial = func() (*dbus.Conn, error) { return dbus.ConnectSessionBus() }
	}
	conn, err := dial()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	control, err := discover(ctx, timeout, discoveryInterval, func(lastChance bool) (*Control, error) {
		return bind(ctx, conn, pid, lastChance)
	})
	if err != nil {
		_ = conn.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: no zathura endpoint for pid %d: %w", viewer.ErrConnectionLost, pid, err)
	}
	return control, nil
}

// discover retries try every interval until it succeeds or timeout elapses.
// Only the final attempt runs with lastChance set.
func discover[T any](ctx context.Context, timeout, interval time.Duration, try func(lastChance bool) (T, error)) (T, error) {
	deadline := time.Now().Add(timeout)
	for {
		lastChance := !time.Now().Add(interval).Before(deadline)
		v, err := try(lastChance)
		if err == nil || lastChance {
			return v, err
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-time.After(interval):
		}
	}
}

func bind(ctx context.Context, conn *dbus.Conn, pid int, fallback bool) (*Control, error) {
	var names []string
	if err := conn.BusObject().CallWithContext(ctx, methodListNames, 0).Store(&names); err != nil {
		return nil, fmt.Errorf("list bus names: %w", err)
	}
	name, ok := SelectBusName(names, pid, fallback)
	if !ok {
		return nil, errors.New("zathura bus name not registered yet")
	}
	control := &Control{conn: conn, obj: conn.Object(name, objectPath), name: name}
	if err := control.Ping(ctx); err != nil {
		return nil, err
	}
	return control, nil
}

// SelectBusName picks the D-Bus name owned by pid. With fallback set, the
// first zathura instance is accepted when the pid-specific name is absent;
// zathura may register under a forked child's pid.
func SelectBusName(names []string, pid int, fallback bool) (string, bool) {
	want := busNamePrefix + "-" + strconv.Itoa(pid)
	if slices.Contains(names, want) {
		return want, true
	}
	if !fallback {
		return "", false
	}
	for _, name := range names {
		if strings.HasPrefix(name, busNamePrefix) {
			return name, true
		}
	}
	return "", false
}

// Control is a bound zathura instance.
type Control struct {
	conn *dbus.Conn
	obj  dbus.BusObject
	name string
}

// BusName is the D-Bus name this control talks to.
func (c *Control) BusName() string { return c.name }

func (c *Control) Ping(ctx context.Context) error {
	if err := c.obj.CallWithContext(ctx, methodPing, 0).Err; err != nil {
		return fmt.Errorf("%w: ping %s: %w", viewer.ErrConnectionLost, c.name, err)
	}
	return nil
}

func (c *Control) OpenDocument(ctx context.Context, path, password string, page int) error {
	var ok bool
	if err := c.obj.CallWithContext(ctx, methodOpenDocument, 0, path, password, int32(page)).Store(&ok); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if !ok {
		return fmt.Errorf("zathura refused to open %s", path)
	}
	return nil
}

func (c *Control) GotoPage(ctx context.Context, page int) error {
	if page < 0 {
		return fmt.Errorf("invalid page %d", page)
	}
	var ok bool
	if err := c.obj.CallWithContext(ctx, methodGotoPage, 0, uint32(page)).Store(&ok); err != nil {
		return fmt.Errorf("go to page %d: %w", page, err)
	}
	if !ok {
		return fmt.Errorf("zathura refused page %d", page)
	}
	return nil
}

func (c *Control) CurrentPage(context.Context) (int, error) {
	variant, err := c.obj.GetProperty(propertyPageNumber)
	if err != nil {
		return 0, fmt.Errorf("read page number: %w", err)
	}
	page, ok := variant.Value().(uint32)
	if !ok {
		return 0, fmt.Errorf("unexpected page number type %s", variant.Signature())
	}
	return int(page), nil
}

func (c *Control) Close() error {
	return c.conn.Close()
}
