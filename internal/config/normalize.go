package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMIDI()
	if err := c.normalizeViewer(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.DocumentDir, err = expandPath(strings.TrimSpace(c.Paths.DocumentDir)); err != nil {
		return fmt.Errorf("paths.document_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMIDI() {
	c.MIDI.Port = strings.TrimSpace(c.MIDI.Port)
	if c.MIDI.Port == "" {
		if value, ok := os.LookupEnv("PROMPTER_MIDI_PORT"); ok {
			c.MIDI.Port = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeViewer() error {
	c.Viewer.Binary = strings.TrimSpace(c.Viewer.Binary)
	if c.Viewer.Binary == "" {
		c.Viewer.Binary = defaultViewerBinary
	}
	c.Viewer.Mode = strings.ToLower(strings.TrimSpace(c.Viewer.Mode))
	if c.Viewer.Mode == "" {
		c.Viewer.Mode = defaultViewerMode
	}
	var err error
	if c.Viewer.DataDir, err = expandPath(strings.TrimSpace(c.Viewer.DataDir)); err != nil {
		return fmt.Errorf("viewer.data_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
