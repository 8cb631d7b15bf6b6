package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"prompter/internal/manifest"
)

func TestRunReportsMissingDocuments(t *testing.T) {
	env := setupCLITestEnv(t,
		map[int]string{1: "a.pdf", 2: "b.pdf", 3: "c.pdf"},
		map[int]string{1: "a.pdf"},
	)

	_, _, err := runCLI(t, []string{"-i", env.manifestPath, "--no-midi"}, env.configPath)
	var merr *manifest.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected manifest error, got %v", err)
	}

	var report bytes.Buffer
	reportError(&report, err)
	requireContains(t, report.String(), "ERROR: the following PDFs don't exist:")
	requireContains(t, report.String(), "  - 2: b.pdf")
	requireContains(t, report.String(), "  - 3: c.pdf")
}

func TestRunMissingManifestFile(t *testing.T) {
	env := setupCLITestEnv(t, map[int]string{1: "a.pdf"}, map[int]string{1: "a.pdf"})

	_, _, err := runCLI(t, []string{"-i", "nope.json", "--no-midi"}, env.configPath)
	var merr *manifest.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected manifest error, got %v", err)
	}
	var report bytes.Buffer
	reportError(&report, err)
	requireContains(t, report.String(), "nope.json")
}

func TestRunRejectsBadChannel(t *testing.T) {
	env := setupCLITestEnv(t, map[int]string{1: "a.pdf"}, map[int]string{1: "a.pdf"})

	_, _, err := runCLI(t, []string{"--channel", "17", "--no-midi"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for channel 17")
	}
	requireContains(t, err.Error(), "--channel")
}

func TestRejectsBadLogLevel(t *testing.T) {
	env := setupCLITestEnv(t, map[int]string{1: "a.pdf"}, map[int]string{1: "a.pdf"})

	_, _, err := runCLI(t, []string{"--log-level", "loud", "config", "validate"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
	requireContains(t, err.Error(), "log-level")
}

func TestReportErrorSkipsCancellation(t *testing.T) {
	var out bytes.Buffer
	reportError(&out, fmt.Errorf("run: %w", context.Canceled))
	if out.Len() != 0 {
		t.Fatalf("expected no output for cancellation, got %q", out.String())
	}
	reportError(&out, errors.New("boom"))
	requireContains(t, out.String(), "boom")
}
