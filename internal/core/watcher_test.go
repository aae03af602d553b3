package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.csv")
	if err := os.WriteFile(path, []byte(",,F0\nONKO,CT,Hluk\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(FileSource{Path: path})
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	w, err := NewWatcher(svc, path, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	// Unrelated files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(",,F0\nONKO,CT,Hluk\nONKO,MR,Bez omezení\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if len(svc.Snapshot().Result.Rows) == 2 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	if got := len(svc.Snapshot().Result.Rows); got != 2 {
		t.Fatalf("rows after change = %d, want 2", got)
	}
	if w.Reloads() < 1 {
		t.Errorf("Reloads() = %d, want at least 1", w.Reloads())
	}
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	svc := NewService(DefaultSource())
	w, err := NewWatcher(svc, filepath.Join(t.TempDir(), "missing", "schedule.csv"), 0)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if w.debounce != DefaultWatchDebounce {
		t.Errorf("debounce = %v, want default", w.debounce)
	}

	if err := w.Start(context.Background()); err == nil {
		t.Error("Start() expected error for missing directory")
	}

	// Stop still releases the handle of a watcher that never started.
	w.Stop()
	if err := w.watcher.Add(t.TempDir()); !errors.Is(err, fsnotify.ErrClosed) {
		t.Errorf("Add() after Stop error = %v, want ErrClosed", err)
	}
	if err := w.Start(context.Background()); !errors.Is(err, fsnotify.ErrClosed) {
		t.Errorf("Start() after Stop error = %v, want ErrClosed", err)
	}
	w.Stop()
}
