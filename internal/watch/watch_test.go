package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pump.toml")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Several quick writes collapse into one change.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte{'b' + byte(i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case got := <-w.Changes:
		if got != filepath.Clean(path) {
			t.Fatalf("change reported for %s", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case got := <-w.Changes:
		t.Errorf("extra change for %s", got)
	case <-time.After(4 * Debounce):
	}
}
