package history_test

import (
	"path/filepath"
	"testing"

	"github.com/SameerRanjanJha/quick-eda-app/internal/history"
)

func TestLoadMissingFile(t *testing.T) {
	s := history.NewStore(filepath.Join(t.TempDir(), "history.json"), 10)
	entries, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history, got %d entries", len(entries))
	}
}

func TestRecordFillsAndPrepends(t *testing.T) {
	s := history.NewStore(filepath.Join(t.TempDir(), "history.json"), 10)

	if err := s.Record(history.Entry{Source: "a.csv", Output: "a.pdf", Format: "pdf", Rows: 3, Cols: 2}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(history.Entry{Source: "b.csv", Output: "b.pdf", Format: "pdf"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Source != "b.csv" {
		t.Errorf("newest entry should be first, got %q", entries[0].Source)
	}
	for _, e := range entries {
		if e.ID == "" {
			t.Errorf("entry %q missing generated ID", e.Source)
		}
		if e.GeneratedAt.IsZero() {
			t.Errorf("entry %q missing timestamp", e.Source)
		}
	}
}

func TestRecordEnforcesLimit(t *testing.T) {
	s := history.NewStore(filepath.Join(t.TempDir(), "history.json"), 3)

	for _, src := range []string{"a.csv", "b.csv", "c.csv", "d.csv", "e.csv"} {
		if err := s.Record(history.Entry{Source: src}); err != nil {
			t.Fatalf("Record %s: %v", src, err)
		}
	}
	entries, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected limit of 3 entries, got %d", len(entries))
	}
	if entries[0].Source != "e.csv" || entries[2].Source != "c.csv" {
		t.Errorf("unexpected retained window: %v", entries)
	}
}

func TestClear(t *testing.T) {
	s := history.NewStore(filepath.Join(t.TempDir(), "history.json"), 10)
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}
	if err := s.Record(history.Entry{Source: "a.csv"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, err := s.Load()
	if err != nil {
		t.Fatalf("Load after Clear: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history after Clear, got %d", len(entries))
	}
}
