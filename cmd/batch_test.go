package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBatch_GlobAndCollisionSuffix(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// Two CSV files with the same basename in different directories
	d1 := filepath.Join(home, "d1")
	d2 := filepath.Join(home, "d2")
	if err := os.MkdirAll(d1, 0o755); err != nil {
		t.Fatalf("mkdir d1: %v", err)
	}
	if err := os.MkdirAll(d2, 0o755); err != nil {
		t.Fatalf("mkdir d2: %v", err)
	}
	csv := "col1,col2\nA,1\nB,2\nC,3\n"
	if err := os.WriteFile(filepath.Join(d1, "metrics.csv"), []byte(csv), 0o644); err != nil {
		t.Fatalf("write d1: %v", err)
	}
	if err := os.WriteFile(filepath.Join(d2, "metrics.csv"), []byte(csv), 0o644); err != nil {
		t.Fatalf("write d2: %v", err)
	}
	outDir := filepath.Join(home, "reports")

	if err := runCmd(t, "batch", filepath.Join(home, "d*", "metrics.csv"), "-o", outDir, "--quiet"); err != nil {
		t.Fatalf("batch: %v", err)
	}

	for _, name := range []string{"metrics.pdf", "metrics__2.pdf"} {
		fi, err := os.Stat(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("missing report %s: %v", name, err)
		}
		if fi.Size() == 0 {
			t.Errorf("report %s is empty", name)
		}
	}
}

func TestBatch_SkipsUnsupportedFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, "data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data.csv"), []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.md"), []byte("# notes\n"), 0o644); err != nil {
		t.Fatalf("write md: %v", err)
	}
	outDir := filepath.Join(home, "reports")

	if err := runCmd(t, "batch", filepath.Join(dir, "*"), "-o", outDir, "--quiet"); err != nil {
		t.Fatalf("batch: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "data.pdf")); err != nil {
		t.Errorf("expected report for data.csv: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "readme.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("unsupported file should be skipped, stat: %v", err)
	}
}

func TestBatch_NoMatches(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := runCmd(t, "batch", filepath.Join(t.TempDir(), "none-*.csv"))
	if err == nil {
		t.Fatal("expected error when no inputs match")
	}
}
