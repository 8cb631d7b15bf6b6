package deps

import (
	"os"
	"path/filepath"
	"strings"

	"prompter/internal/config"
)

// ViewerRequirements lists the binaries needed to drive the configured viewer.
func ViewerRequirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "PDF viewer",
			Command:     cfg.Viewer.Binary,
			Description: "Displays documents; controlled over D-Bus",
		},
		{
			Name:        "D-Bus daemon",
			Command:     "dbus-daemon",
			Description: "Session bus used to reach the viewer",
			Optional:    true,
		},
	}
}

// CheckSessionBus reports whether a D-Bus session bus address can be found.
func CheckSessionBus() Status {
	status := Status{Name: "Session bus", Description: "D-Bus session bus for viewer control"}
	if addr := strings.TrimSpace(os.Getenv("DBUS_SESSION_BUS_ADDRESS")); addr != "" {
		status.Available = true
		status.Path = addr
		return status
	}
	if runtime := strings.TrimSpace(os.Getenv("XDG_RUNTIME_DIR")); runtime != "" {
		socket := filepath.Join(runtime, "bus")
		if info, err := os.Stat(socket); err == nil && info.Mode()&os.ModeSocket != 0 {
			status.Available = true
			status.Path = "unix:path=" + socket
			return status
		}
	}
	status.Detail = "DBUS_SESSION_BUS_ADDRESS is not set and no $XDG_RUNTIME_DIR/bus socket exists"
	return status
}
