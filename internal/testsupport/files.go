package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0x42
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteManifest writes a JSON manifest mapping indices to relative document
// paths and returns its location.
func WriteManifest(t testing.TB, path string, entries map[int]string) string {
	t.Helper()

	raw := make(map[string]string, len(entries))
	for idx, rel := range entries {
		raw[strconv.Itoa(idx)] = rel
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write manifest %s: %v", path, err)
	}
	return path
}

// WriteDocuments creates placeholder documents under dir for every manifest entry.
func WriteDocuments(t testing.TB, dir string, entries map[int]string) {
	t.Helper()

	for _, rel := range entries {
		WriteFile(t, filepath.Join(dir, rel), 64)
	}
}
