package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMIDI(); err != nil {
		return err
	}
	if err := c.validateViewer(); err != nil {
		return err
	}
	if err := c.validateDispatch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateMIDI() error {
	if c.MIDI.Channel < 1 || c.MIDI.Channel > 16 {
		return fmt.Errorf("midi.channel must be between 1 and 16, got %d", c.MIDI.Channel)
	}
	if c.MIDI.NextPageNote < 0 || c.MIDI.NextPageNote > 127 {
		return fmt.Errorf("midi.next_page_note must be between 0 and 127, got %d", c.MIDI.NextPageNote)
	}
	return nil
}

func (c *Config) validateViewer() error {
	switch c.Viewer.Mode {
	case "presentation", "fullscreen", "normal":
	default:
		return fmt.Errorf("viewer.mode must be presentation, fullscreen or normal, got %q", c.Viewer.Mode)
	}
	if c.Viewer.LaunchSettleMS < 0 {
		return errors.New("viewer.launch_settle_ms must be >= 0")
	}
	if c.Viewer.OpenSettleMS < 0 {
		return errors.New("viewer.open_settle_ms must be >= 0")
	}
	if c.Viewer.ConnectTimeoutMS <= 0 {
		return errors.New("viewer.connect_timeout_ms must be positive")
	}
	return nil
}

func (c *Config) validateDispatch() error {
	if c.Dispatch.PollIntervalMS <= 0 {
		return errors.New("dispatch.poll_interval_ms must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be >= 0")
	}
	return nil
}
