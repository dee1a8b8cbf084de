package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"figment/internal/logging"
)

func newTestLogger() *logging.Logger {
	return logging.NewLogger("test", logging.ERROR, os.Stderr)
}

func TestWatcherNotifiesOnTrackedFileWrite(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "characters.json")
	if err := os.WriteFile(tracked, []byte("[]"), 0644); err != nil {
		t.Fatalf("failed to create tracked file: %v", err)
	}

	var (
		mu      sync.Mutex
		changed []string
	)
	w, err := NewWatcher([]string{tracked}, func(path string) {
		mu.Lock()
		changed = append(changed, path)
		mu.Unlock()
	}, newTestLogger())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	time.Sleep(100 * time.Millisecond) // Give the event loop time to start

	if err := os.WriteFile(tracked, []byte(`[{"id":1}]`), 0644); err != nil {
		t.Fatalf("failed to modify tracked file: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(changed)
		mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for change notification")
		}
		time.Sleep(20 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	abs, _ := filepath.Abs(tracked)
	if changed[0] != abs {
		t.Errorf("notified path = %q, want %q", changed[0], abs)
	}
}

func TestWatcherIgnoresUntrackedFiles(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "characters.json")
	untracked := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(tracked, []byte("[]"), 0644); err != nil {
		t.Fatalf("failed to create tracked file: %v", err)
	}

	var (
		mu      sync.Mutex
		changed int
	)
	w, err := NewWatcher([]string{tracked}, func(string) {
		mu.Lock()
		changed++
		mu.Unlock()
	}, newTestLogger())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(untracked, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write untracked file: %v", err)
	}
	time.Sleep(500 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if changed != 0 {
		t.Errorf("expected no notifications for untracked files, got %d", changed)
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "theme.json")
	if err := os.WriteFile(tracked, []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to create tracked file: %v", err)
	}

	var (
		mu      sync.Mutex
		changed int
	)
	w, err := NewWatcher([]string{tracked}, func(string) {
		mu.Lock()
		changed++
		mu.Unlock()
	}, newTestLogger())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	// A save burst: several writes well inside the debounce window.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(tracked, []byte("{}"), 0644); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if changed != 1 {
		t.Errorf("expected 1 debounced notification, got %d", changed)
	}
}
