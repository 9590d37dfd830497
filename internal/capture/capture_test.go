package capture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fakeyudi/glance/internal/history"
)

// memStore is an in-memory Repository.
type memStore struct {
	mu sync.Mutex
	h  history.History
}

func (m *memStore) Load() history.History {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.h
}

func (m *memStore) Save(h history.History) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.h = h
	return nil
}

func startCapturer(t *testing.T, dir string, store Repository) <-chan history.Entry {
	t.Helper()
	captured := make(chan history.Entry, 8)
	c, err := New(Options{
		Dirs:           []string{dir, filepath.Join(dir, "does-not-exist")},
		IgnoreSuffixes: []string{".part"},
		Settle:         50 * time.Millisecond,
		MaxHistory:     3,
		Store:          store,
		OnCapture: func(_ context.Context, e history.Entry) {
			captured <- e
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run: %v", err)
		}
	})
	return captured
}

func TestCapturePushesNewFile(t *testing.T) {
	dir := t.TempDir()
	store := &memStore{}
	captured := startCapturer(t, dir, store)

	path := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(path, make([]byte, 2048), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-captured:
		if e.Path != path || e.Name != "shot.png" || e.Size != 2048 {
			t.Errorf("unexpected entry %+v", e)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("file was never captured")
	}

	h := store.Load()
	if len(h.Entries) != 1 || h.Entries[0].Path != path || h.Selected != 0 {
		t.Errorf("unexpected history %+v", h)
	}
}

func TestCaptureSkipsIgnoredAndRepeatedFiles(t *testing.T) {
	dir := t.TempDir()
	store := &memStore{}
	captured := startCapturer(t, dir, store)

	for _, name := range []string{".hidden.png", "download.part"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "real.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-captured:
		if e.Path != path {
			t.Fatalf("captured %q, want %q", e.Path, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("file was never captured")
	}

	// Rewriting an already captured file does not capture it again.
	if err := os.WriteFile(path, []byte("xy"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case e := <-captured:
		t.Fatalf("unexpected capture %+v", e)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestNewFailsWithoutDirectories(t *testing.T) {
	_, err := New(Options{
		Dirs:  []string{filepath.Join(t.TempDir(), "missing")},
		Store: &memStore{},
	})
	if !errors.Is(err, ErrNoDirectories) {
		t.Fatalf("want ErrNoDirectories, got %v", err)
	}
}

func TestIgnored(t *testing.T) {
	suffixes := []string{".part", ".crdownload"}
	tests := map[string]bool{
		"/d/shot.png":            false,
		"/d/.shot.png":           true,
		"/d/file.zip.crdownload": true,
		"/d/file.part":           true,
		"/d/partial.png":         false,
	}
	for path, want := range tests {
		if got := Ignored(path, suffixes); got != want {
			t.Errorf("Ignored(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestLockIsExclusive(t *testing.T) {
	state := filepath.Join(t.TempDir(), "history.json")

	lock, err := Lock(state)
	if err != nil {
		t.Fatalf("first Lock: %v", err)
	}
	defer lock.Unlock()

	if _, err := Lock(state); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Lock: want ErrAlreadyRunning, got %v", err)
	}
}
