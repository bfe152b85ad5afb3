package ignore

import (
	"os"
	"testing"
)

func TestScannerMatchesSequentialFilter(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, []string{
		"main.go",
		"debug.log",
		"src/app.go",
		"src/util/helper.go",
		"src/util/helper.log",
		"node_modules/pkg/index.js",
		"vendor/lib.go",
		"docs/guide.md",
	})

	m := NewMatcher("*.log\nnode_modules/\n/vendor/\n")

	for _, recursive := range []bool{true, false} {
		sequential, err := NewFilter(m, nil).FilterPaths(dir, recursive)
		if err != nil {
			t.Fatalf("FilterPaths failed: %v", err)
		}
		seqFiles := make(map[string]bool)
		for _, p := range sequential {
			info, err := os.Stat(p)
			if err != nil {
				t.Fatal(err)
			}
			if !info.IsDir() {
				seqFiles[p] = true
			}
		}

		for _, workers := range []int{1, 4, 16} {
			parallel, err := NewScanner(m, workers, nil).FilterFiles(dir, recursive)
			if err != nil {
				t.Fatalf("FilterFiles(workers=%d) failed: %v", workers, err)
			}
			if len(parallel) != len(seqFiles) {
				t.Fatalf("recursive=%v workers=%d: parallel returned %d files, sequential %d",
					recursive, workers, len(parallel), len(seqFiles))
			}
			for _, p := range parallel {
				if !seqFiles[p] {
					t.Errorf("recursive=%v workers=%d: unexpected file %q", recursive, workers, p)
				}
			}
		}
	}
}

func TestScannerDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, []string{"c.txt", "a.txt", "b/d.txt", "b/e.txt"})

	s := NewScanner(NewMatcher(""), 8, nil)
	first, err := s.FilterFiles(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := s.FilterFiles(dir, true)
		if err != nil {
			t.Fatal(err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d returned %d files, first run %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("run %d order differs at %d: %q vs %q", i, j, again[j], first[j])
			}
		}
	}
}

func TestScannerDefaultWorkers(t *testing.T) {
	s := NewScanner(NewMatcher(""), 0, nil)
	if s.workers != DefaultWorkers {
		t.Errorf("workers = %d, want %d", s.workers, DefaultWorkers)
	}
}
