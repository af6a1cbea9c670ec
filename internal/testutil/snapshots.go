package testutil

import (
	"path/filepath"
	"testing"

	"esports-schedule/internal/domain/schedule"
	"esports-schedule/internal/snapshots"
)

// NewTempWriter returns a schedule writer targeting a file in a temp dir.
func NewTempWriter(t *testing.T) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(filepath.Join(t.TempDir(), "data", "schedule.json"))
}

// WriteSchedule writes s through w, failing the test on error.
func WriteSchedule(t *testing.T, w *snapshots.Writer, s schedule.Schedule) {
	t.Helper()
	if err := w.WriteSchedule(s); err != nil {
		t.Fatalf("failed to write schedule: %v", err)
	}
}
