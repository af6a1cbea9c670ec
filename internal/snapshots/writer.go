package snapshots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"esports-schedule/internal/domain/schedule"
)

// Writer persists the generated schedule and its manifest.
type Writer struct {
	path string
}

// NewWriter constructs a writer targeting the schedule file at path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path exposes the schedule file path.
func (w *Writer) Path() string {
	if w == nil {
		return ""
	}
	return w.path
}

// WriteSchedule replaces the schedule file atomically. Identical content is left untouched.
func (w *Writer) WriteSchedule(s schedule.Schedule) error {
	if w == nil || w.path == "" {
		return fmt.Errorf("schedule writer not configured")
	}
	data, err := json.MarshalIndent(s.Normalize(), "", "  ")
	if err != nil {
		return err
	}
	if existing, err := os.ReadFile(w.path); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	return writeAtomic(w.path, data)
}

// WriteManifest records generation metadata next to the schedule file.
func (w *Writer) WriteManifest(m Manifest) error {
	if w == nil || w.path == "" {
		return fmt.Errorf("schedule writer not configured")
	}
	return writeManifest(ManifestPath(w.path), m)
}

func writeAtomic(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
