package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu       sync.Mutex
	ingested []string
	removed  []string
}

func (r *recorder) onIngest(path string) {
	r.mu.Lock()
	r.ingested = append(r.ingested, path)
	r.mu.Unlock()
}

func (r *recorder) onRemove(path string) {
	r.mu.Lock()
	r.removed = append(r.removed, path)
	r.mu.Unlock()
}

func (r *recorder) snapshot() ([]string, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ingested...), append([]string(nil), r.removed...)
}

func TestWatcher_IngestAndRemove(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}

	w := NewWatcher(dir, []string{".txt"}, rec.onIngest, rec.onRemove)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	fPath := filepath.Join(dir, "fever.txt")
	if err := os.WriteFile(fPath, []byte("paracetamol"), 0600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(600 * time.Millisecond)

	ingested, _ := rec.snapshot()
	if len(ingested) < 1 {
		t.Fatalf("expected at least one ingest callback, got %d", len(ingested))
	}
	if !strings.HasSuffix(ingested[0], "fever.txt") {
		t.Errorf("ingested path = %q", ingested[0])
	}

	if err := os.Remove(fPath); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	_, removed := rec.snapshot()
	if len(removed) != 1 || !strings.HasSuffix(removed[0], "fever.txt") {
		t.Errorf("expected one remove callback for fever.txt, got %v", removed)
	}
}

func TestWatcher_ExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}

	w := NewWatcher(dir, []string{".txt", ".md"}, rec.onIngest, rec.onRemove)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "skip.bin"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "keep.md"), []byte("y"), 0600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(600 * time.Millisecond)

	ingested, _ := rec.snapshot()
	for _, p := range ingested {
		if strings.HasSuffix(p, "skip.bin") {
			t.Errorf("skip.bin should not be ingested")
		}
	}
	found := false
	for _, p := range ingested {
		if strings.HasSuffix(p, "keep.md") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected keep.md to be ingested, got %v", ingested)
	}
}

func TestWatcher_NewDirectoryIsWatched(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}

	w := NewWatcher(dir, []string{".txt"}, rec.onIngest, rec.onRemove)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	nested := filepath.Join(dir, "level1", "level2")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "deep.txt"), []byte("deep content"), 0600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(800 * time.Millisecond)

	ingested, _ := rec.snapshot()
	found := false
	for _, p := range ingested {
		if strings.HasSuffix(p, "deep.txt") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected deep.txt to be ingested, got %v", ingested)
	}
}

func TestWatcher_Start_createsMissingRoot(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "corpus")

	w := NewWatcher(root, []string{".txt"}, nil, nil)
	// Use Background so run() keeps going; test exit cleans up.
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(root); err != nil {
		t.Errorf("root directory should exist after Start: %v", err)
	}
}

func TestMatchExtension(t *testing.T) {
	tests := []struct {
		path       string
		extensions []string
		want       bool
	}{
		{"/a/b.txt", []string{".txt"}, true},
		{"/a/b.TXT", []string{"txt"}, true},
		{"/a/b.md", []string{".txt"}, false},
		{"/a/b", nil, true},
	}
	for _, tt := range tests {
		w := NewWatcher("/a", tt.extensions, nil, nil)
		got := w.matchExtension(tt.path)
		if got != tt.want {
			t.Errorf("matchExtension(%q) with %v = %v, want %v", tt.path, tt.extensions, got, tt.want)
		}
	}
}
