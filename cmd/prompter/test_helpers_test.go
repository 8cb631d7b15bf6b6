package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"prompter/internal/config"
	"prompter/internal/testsupport"
)

type cliTestEnv struct {
	cfg          *config.Config
	configPath   string
	manifestPath string
	baseDir      string
}

func setupCLITestEnv(t *testing.T, entries map[int]string, present map[int]string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("PROMPTER_MIDI_PORT", "")
	t.Chdir(base)

	cfg := testsupport.NewConfig(t, testsupport.WithClearHistory(false))
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	manifestPath := testsupport.WriteManifest(t, filepath.Join(base, "pdf_files.json"), entries)
	testsupport.WriteDocuments(t, cfg.Paths.DocumentDir, present)

	return &cliTestEnv{cfg: cfg, configPath: configPath, manifestPath: manifestPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
