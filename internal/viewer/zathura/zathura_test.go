package zathura_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"prompter/internal/config"
	"prompter/internal/viewer/zathura"
)

func TestSelectBusNamePrefersPID(t *testing.T) {
	names := []string{
		"org.freedesktop.DBus",
		"org.pwmt.zathura.PID-100",
		"org.pwmt.zathura.PID-4242",
	}
	got, ok := zathura.SelectBusName(names, 4242, false)
	if !ok || got != "org.pwmt.zathura.PID-4242" {
		t.Fatalf("SelectBusName = %q, %v", got, ok)
	}
}

func TestSelectBusNameFallsBackToFirstInstance(t *testing.T) {
	names := []string{":1.7", "org.pwmt.zathura.PID-100", "org.pwmt.zathura.PID-200"}
	if got, ok := zathura.SelectBusName(names, 4242, false); ok {
		t.Fatalf("expected no match without fallback, got %q", got)
	}
	got, ok := zathura.SelectBusName(names, 4242, true)
	if !ok || got != "org.pwmt.zathura.PID-100" {
		t.Fatalf("SelectBusName = %q, %v", got, ok)
	}
}

func TestSelectBusNameNoZathura(t *testing.T) {
	if _, ok := zathura.SelectBusName([]string{"org.freedesktop.DBus"}, 1, true); ok {
		t.Fatal("expected no match")
	}
}

func TestCleanerRemovesSessionsAndHistory(t *testing.T) {
	data := t.TempDir()
	root := filepath.Join(data, "zathura")
	mustWrite(t, filepath.Join(root, "sessions", "default"))
	mustWrite(t, filepath.Join(root, "sessions", "talk"))
	mustWrite(t, filepath.Join(root, "history", "a.pdf"))
	mustWrite(t, filepath.Join(root, "zathurarc"))

	if err := (zathura.Cleaner{DataDir: data}).Clean(); err != nil {
		t.Fatalf("Clean: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "sessions"))
	if err != nil {
		t.Fatalf("read sessions dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty sessions dir, found %d entries", len(entries))
	}
	if _, err := os.Stat(filepath.Join(root, "history")); !os.IsNotExist(err) {
		t.Fatalf("expected history removed, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "zathurarc")); err != nil {
		t.Fatalf("expected unrelated files to survive: %v", err)
	}
}

func TestCleanerHistoryFile(t *testing.T) {
	data := t.TempDir()
	history := filepath.Join(data, "zathura", "history")
	mustWrite(t, history)

	if err := (zathura.Cleaner{DataDir: data}).Clean(); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if _, err := os.Stat(history); !os.IsNotExist(err) {
		t.Fatalf("expected history file removed, stat err = %v", err)
	}
}

func TestCleanerMissingPathsAreNotErrors(t *testing.T) {
	if err := (zathura.Cleaner{DataDir: t.TempDir()}).Clean(); err != nil {
		t.Fatalf("Clean on empty data dir: %v", err)
	}
}

func TestCleanerUsesXDGDataHome(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	history := filepath.Join(data, "zathura", "history")
	mustWrite(t, history)

	if err := (zathura.Cleaner{}).Clean(); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if _, err := os.Stat(history); !os.IsNotExist(err) {
		t.Fatalf("expected history removed from XDG_DATA_HOME, stat err = %v", err)
	}
}

func TestLauncherTerminateAndWait(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fake-zathura")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexec sleep 30\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	proc, err := zathura.Launcher{Binary: script}.Launch(context.Background(), "/tmp/a.pdf")
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if proc.PID() <= 0 {
		t.Fatalf("unexpected pid %d", proc.PID())
	}
	if err := proc.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}
	if err := proc.Wait(); err != nil {
		t.Fatalf("Wait after SIGTERM: %v", err)
	}
	if err := proc.Terminate(); err != nil {
		t.Fatalf("Terminate after exit: %v", err)
	}
}

func TestLauncherMissingBinary(t *testing.T) {
	_, err := zathura.Launcher{Binary: filepath.Join(t.TempDir(), "missing")}.Launch(context.Background(), "a.pdf")
	if err == nil {
		t.Fatal("expected launch error for missing binary")
	}
}

func TestNewBackendHonoursClearHistory(t *testing.T) {
	cfg := config.Default()
	cfg.Viewer.ClearHistory = false
	if backend := zathura.NewBackend(&cfg); backend.Cleaner != nil {
		t.Fatal("expected no cleaner when clear_history is false")
	}
	cfg.Viewer.ClearHistory = true
	if backend := zathura.NewBackend(&cfg); backend.Cleaner == nil {
		t.Fatal("expected cleaner when clear_history is true")
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
