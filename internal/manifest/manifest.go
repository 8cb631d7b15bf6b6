// Package manifest loads the JSON document manifest that maps MIDI program
// numbers to PDF files.
//
// The file is a JSON object whose keys are string-encoded positive integers
// and whose values are paths relative to the document folder:
//
//	{"1": "intro.pdf", "2": "songs/second.pdf"}
//
// Files ending in .yaml or .yml are read as a YAML mapping with the same
// shape:
//
//	1: intro.pdf
//	2: songs/second.pdf
//
// A Manifest is immutable after Load and is validated against the filesystem
// before the viewer session starts.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one manifest mapping.
type Entry struct {
	Index int
	Path  string
}

func (e Entry) String() string {
	return fmt.Sprintf("%d: %s", e.Index, e.Path)
}

// Error reports a manifest that cannot be used. Missing lists entries whose
// documents do not exist on disk.
type Error struct {
	Path    string
	Reason  string
	Missing []Entry
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("manifest ")
	b.WriteString(e.Path)
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Report renders the missing entries one per line, as shown to the operator.
func (e *Error) Report() string {
	if len(e.Missing) == 0 {
		return e.Error()
	}
	var b strings.Builder
	b.WriteString("ERROR: the following PDFs don't exist:\n")
	for _, entry := range e.Missing {
		b.WriteString("  - ")
		b.WriteString(entry.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Manifest maps positive indexes to document paths relative to Dir.
type Manifest struct {
	source  string
	dir     string
	entries map[int]string
	order   []int
}

// New builds a manifest from an in-memory mapping.
func New(dir string, entries map[int]string) (*Manifest, error) {
	m := &Manifest{source: "<memory>", dir: dir, entries: make(map[int]string, len(entries))}
	for idx, path := range entries {
		if idx <= 0 {
			return nil, &Error{Path: m.source, Reason: fmt.Sprintf("index %d is not a positive integer", idx)}
		}
		if strings.TrimSpace(path) == "" {
			return nil, &Error{Path: m.source, Reason: fmt.Sprintf("index %d has an empty path", idx)}
		}
		m.entries[idx] = path
		m.order = append(m.order, idx)
	}
	if len(m.order) == 0 {
		return nil, &Error{Path: m.source, Reason: "no documents listed"}
	}
	slices.Sort(m.order)
	return m, nil
}

// Load reads and parses the manifest at path. Documents are resolved
// relative to dir.
func Load(path, dir string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Reason: "read failed", Err: err}
	}

	raw, err := decode(path, data)
	if err != nil {
		return nil, &Error{Path: path, Reason: "parse failed", Err: err}
	}

	entries := make(map[int]string, len(raw))
	for key, value := range raw {
		idx, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, &Error{Path: path, Reason: fmt.Sprintf("key %q is not an integer", key)}
		}
		entries[idx] = value
	}

	m, err := New(dir, entries)
	if err != nil {
		var merr *Error
		if errors.As(err, &merr) {
			merr.Path = path
		}
		return nil, err
	}
	m.source = path
	return m, nil
}

func decode(path string, data []byte) (map[string]string, error) {
	var raw map[string]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// Validate checks that every referenced document exists. The returned
// *Error lists all missing entries in index order.
func (m *Manifest) Validate() error {
	var missing []Entry
	for _, idx := range m.order {
		info, err := os.Stat(m.Resolve(m.entries[idx]))
		if err != nil || info.IsDir() {
			missing = append(missing, Entry{Index: idx, Path: m.entries[idx]})
		}
	}
	if len(missing) > 0 {
		return &Error{
			Path:    m.source,
			Reason:  fmt.Sprintf("%d document(s) missing", len(missing)),
			Missing: missing,
		}
	}
	return nil
}

// Resolve joins a manifest-relative path with the document folder.
func (m *Manifest) Resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(m.dir, rel)
}

// Lookup returns the resolved path for index.
func (m *Manifest) Lookup(index int) (string, bool) {
	rel, ok := m.entries[index]
	if !ok {
		return "", false
	}
	return m.Resolve(rel), true
}

// First returns the lowest index in the manifest.
func (m *Manifest) First() int {
	return m.order[0]
}

// Entries returns the mappings in index order.
func (m *Manifest) Entries() []Entry {
	out := make([]Entry, 0, len(m.order))
	for _, idx := range m.order {
		out = append(out, Entry{Index: idx, Path: m.entries[idx]})
	}
	return out
}

// Len reports the number of documents.
func (m *Manifest) Len() int { return len(m.order) }

// Dir is the folder documents are resolved against.
func (m *Manifest) Dir() string { return m.dir }

// Source is the file the manifest was loaded from.
func (m *Manifest) Source() string { return m.source }
