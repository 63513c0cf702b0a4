package driver

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsChangedSourceFiles(t *testing.T) {
	tmpDir := t.TempDir()

	changed := make(chan []string, 1)
	w, err := NewWatcher(100*time.Millisecond, func(paths []string) {
		changed <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(tmpDir); err != nil {
		t.Fatal(err)
	}

	testFile := filepath.Join(tmpDir, "Widget.m")
	if err := os.WriteFile(testFile, []byte("@interface Widget : NSObject\n@end\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changed:
		found := false
		for _, p := range paths {
			if p == testFile {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s among changed files, got %v", testFile, paths)
		}
	case <-time.After(2 * time.Second):
		t.Error("timed out waiting for a file change notification")
	}
}

func TestWatcherIgnoresNonSourceFiles(t *testing.T) {
	tmpDir := t.TempDir()

	changed := make(chan []string, 1)
	w, err := NewWatcher(100*time.Millisecond, func(paths []string) {
		changed <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(tmpDir); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changed:
		t.Errorf("expected no notification for a non-source file, got %v", paths)
	case <-time.After(300 * time.Millisecond):
	}
}
