package zathura

import (
	"prompter/internal/config"
	"prompter/internal/viewer"
)

// NewBackend assembles the zathura launcher, connector and cleaner from configuration.
func NewBackend(cfg *config.Config) viewer.Backend {
	backend := viewer.Backend{
		Launcher:  Launcher{Binary: cfg.Viewer.Binary, Mode: cfg.Viewer.Mode},
		Connector: Connector{Timeout: cfg.ConnectTimeout()},
	}
	if cfg.Viewer.ClearHistory {
		backend.Cleaner = Cleaner{DataDir: cfg.Viewer.DataDir}
	}
	return backend
}

