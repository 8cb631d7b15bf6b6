package main

import "testing"

func TestCheckReportsMissingViewer(t *testing.T) {
	env := setupCLITestEnv(t, map[int]string{1: "a.pdf"}, map[int]string{1: "a.pdf"})
	env.cfg.Viewer.Binary = "clearly-not-a-viewer"
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"check", "-i", env.manifestPath}, env.configPath)
	if err == nil {
		t.Fatal("expected check failure for missing viewer")
	}
	requireContains(t, out, "Manifest:")
	requireContains(t, out, "[OK]")
	requireContains(t, out, "clearly-not-a-viewer")
}
