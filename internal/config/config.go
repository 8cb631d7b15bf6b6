package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir      string `toml:"log_dir"`
	DocumentDir string `toml:"document_dir"`
}

// MIDI contains input listener and decoder settings.
type MIDI struct {
	Port         string `toml:"port"`
	Channel      int    `toml:"channel"`
	NextPageNote int    `toml:"next_page_note"`
	Thru         bool   `toml:"thru"`
}

// Viewer contains external PDF viewer settings.
type Viewer struct {
	Binary           string `toml:"binary"`
	Mode             string `toml:"mode"`
	LaunchSettleMS   int    `toml:"launch_settle_ms"`
	OpenSettleMS     int    `toml:"open_settle_ms"`
	ConnectTimeoutMS int    `toml:"connect_timeout_ms"`
	ClearHistory     bool   `toml:"clear_history"`
	DataDir          string `toml:"data_dir"`
}

// Dispatch contains action queue settings.
type Dispatch struct {
	PollIntervalMS int `toml:"poll_interval_ms"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for prompter.
type Config struct {
	Paths    Paths    `toml:"paths"`
	MIDI     MIDI     `toml:"midi"`
	Viewer   Viewer   `toml:"viewer"`
	Dispatch Dispatch `toml:"dispatch"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/prompter/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	} else if path != "" {
		return nil, "", false, fmt.Errorf("config file %s not found", resolvedPath)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if os.IsNotExist(err) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("prompter.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories prompter writes to.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// DocumentDir resolves the folder holding manifest documents. An empty
// paths.document_dir means "pdf" next to the manifest file.
func (c *Config) DocumentDir(manifestPath string) string {
	if dir := strings.TrimSpace(c.Paths.DocumentDir); dir != "" {
		return dir
	}
	base := filepath.Dir(manifestPath)
	if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	return filepath.Join(base, "pdf")
}

// ChannelNibble returns the zero-based channel carried in the low nibble of
// a MIDI status byte.
func (c *Config) ChannelNibble() uint8 {
	return uint8(c.MIDI.Channel - 1)
}

// LaunchSettle is the wait after launching the viewer before binding its control endpoint.
func (c *Config) LaunchSettle() time.Duration {
	return time.Duration(c.Viewer.LaunchSettleMS) * time.Millisecond
}

// OpenSettle is the wait after opening a document.
func (c *Config) OpenSettle() time.Duration {
	return time.Duration(c.Viewer.OpenSettleMS) * time.Millisecond
}

// ConnectTimeout bounds control endpoint discovery.
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.Viewer.ConnectTimeoutMS) * time.Millisecond
}

// PollInterval is the dispatch loop's dequeue timeout.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Dispatch.PollIntervalMS) * time.Millisecond
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
