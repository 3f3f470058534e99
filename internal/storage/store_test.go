package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/gwave/internal/config"
	"github.com/san-kum/gwave/internal/dynamo"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.GetPreset("ring-plus")
	track := dynamo.Batch{{X: 0.2, Y: 0}, {X: 0.1, Y: -1e-17}, {X: -0.2, Y: 0}}

	runID, err := st.Save(RunMetadata{
		Preset:  "ring-plus",
		Probe:   "ring",
		Metrics: map[string]float64{"stretch": 0.2},
		Config:  cfg,
	}, track)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", meta.Frames)
	}
	if meta.Fingerprint != cfg.Fingerprint() {
		t.Errorf("expected fingerprint %s, got %s", cfg.Fingerprint(), meta.Fingerprint)
	}
	if meta.Metrics["stretch"] != 0.2 {
		t.Errorf("expected stretch 0.2, got %v", meta.Metrics["stretch"])
	}
	if *meta.Config != *cfg {
		t.Error("config did not round trip")
	}

	loaded, err := st.LoadTrack(runID)
	if err != nil {
		t.Fatalf("load track failed: %v", err)
	}
	if len(loaded) != len(track) {
		t.Fatalf("expected %d samples, got %d", len(track), len(loaded))
	}
	for i := range track {
		if loaded[i] != track[i] {
			t.Errorf("sample %d: expected %v, got %v", i, track[i], loaded[i])
		}
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	st := New(t.TempDir())

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "new"} {
		_, err := st.Save(RunMetadata{ID: id, Timestamp: base.Add(time.Duration(i) * time.Hour)}, nil)
		if err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	if err := os.WriteFile(filepath.Join(st.baseDir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "new" {
		t.Errorf("expected newest run first, got %s", runs[0].ID)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, err := st.LoadTrack("missing"); err == nil {
		t.Error("expected error for missing track")
	}
}

func TestStoreSaveFailureLeavesNoRun(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	_, err := st.Save(RunMetadata{
		ID:      "broken",
		Metrics: map[string]float64{"stretch": math.NaN()},
	}, dynamo.Batch{{X: 0.1, Y: 0}})
	if err == nil {
		t.Fatal("expected error encoding NaN metric")
	}

	if _, err := os.Stat(filepath.Join(dir, "broken")); !os.IsNotExist(err) {
		t.Errorf("expected run dir removed, stat err = %v", err)
	}
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
