package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) record(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func TestNewWatcher_Files(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "b.txt")
	b := filepath.Join(dir, "a.txt")
	w := NewWatcher([]string{a, "", b, a}, nil)
	files := w.Files()
	if len(files) != 2 {
		t.Fatalf("Files() = %v, want 2 entries", files)
	}
	if files[0] != b || files[1] != a {
		t.Errorf("Files() = %v, want sorted [%s %s]", files, b, a)
	}
}

func TestWatcher_DebouncedChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "vectors.txt")
	writeFile(t, target, "king 1 0\n")

	rec := &recorder{}
	w := NewWatcher([]string{target}, rec.record, WithDebounce(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	writeFile(t, target, "king 1 0\nqueen 0.9 0.1\n")
	writeFile(t, target, "king 1 0\nqueen 0.9 0.1\ncrown 0.7 0.7\n")
	time.Sleep(600 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 {
		t.Fatalf("onChange called %d times (%v), want 1", len(got), got)
	}
	abs, _ := filepath.Abs(target)
	if got[0] != abs {
		t.Errorf("onChange path = %q, want %q", got[0], abs)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "pairs.csv")
	writeFile(t, target, "king,queen\n")

	rec := &recorder{}
	w := NewWatcher([]string{target}, rec.record, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	writeFile(t, filepath.Join(dir, "notes.txt"), "unrelated")
	time.Sleep(400 * time.Millisecond)

	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("onChange called for unrelated file: %v", got)
	}
}

func TestWatcher_StopDropsPending(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "vectors.txt")
	writeFile(t, target, "king 1 0\n")

	rec := &recorder{}
	w := NewWatcher([]string{target}, rec.record, WithDebounce(300*time.Millisecond))
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	writeFile(t, target, "king 0 1\n")
	time.Sleep(50 * time.Millisecond)
	w.Stop()
	w.Stop()
	time.Sleep(500 * time.Millisecond)

	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("onChange called after Stop: %v", got)
	}
}

func TestWatcher_StartMissingDir(t *testing.T) {
	w := NewWatcher([]string{filepath.Join(t.TempDir(), "missing", "vectors.txt")}, nil)
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Fatal("Start with missing parent directory should fail")
	}
}
