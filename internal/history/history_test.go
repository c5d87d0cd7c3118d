package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSaveAndLoadSnapshots(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	first := Snapshot{
		RunID:         "run-1",
		Timestamp:     base,
		FileCount:     3,
		ClassCount:    5,
		VerbatimCount: 2,
		EmittedCount:  6,
		RefCount:      4,
		ImportCount:   1,
		Duration:      120 * time.Millisecond,
	}
	if err := store.SaveSnapshot("frontend", first); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	second := first
	second.RunID = "run-2"
	second.Timestamp = base.Add(time.Hour)
	second.FileCount = 4
	if err := store.SaveSnapshot("frontend", second); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	snapshots, err := store.LoadSnapshots("frontend", time.Time{})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}
	if snapshots[0].RunID != "run-1" || snapshots[1].RunID != "run-2" {
		t.Errorf("snapshots out of order: %+v", snapshots)
	}
	if snapshots[0].ClassCount != 5 || snapshots[0].Duration != 120*time.Millisecond {
		t.Errorf("unexpected snapshot row: %+v", snapshots[0])
	}

	recent, err := store.LoadSnapshots("frontend", base.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("load since failed: %v", err)
	}
	if len(recent) != 1 || recent[0].RunID != "run-2" {
		t.Errorf("since filter failed: %+v", recent)
	}
}

func TestSaveSnapshotUpserts(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	snap := Snapshot{RunID: "run-1", FileCount: 1}
	if err := store.SaveSnapshot("", snap); err != nil {
		t.Fatal(err)
	}
	snap.FileCount = 7
	if err := store.SaveSnapshot("", snap); err != nil {
		t.Fatal(err)
	}

	snapshots, err := store.LoadSnapshots("default", time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(snapshots) != 1 || snapshots[0].FileCount != 7 {
		t.Errorf("expected upserted row, got %+v", snapshots)
	}
}

func TestOpenRejectsDirectory(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Fatal("expected error for directory path")
	}
}
