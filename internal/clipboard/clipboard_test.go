package clipboard

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ideastash/internal/service"
	"ideastash/internal/storage"
)

func newTestWatcher(t *testing.T, cfg Config, notify func(*storage.Idea)) (*Watcher, *service.IdeaService) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := storage.Open(filepath.Join(t.TempDir(), "ideastash.db"), logger)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ideas := storage.NewIdeaRepository(db)
	cats := storage.NewCategoryRepository(db)
	tags := storage.NewTagRepository(db)
	svc := service.NewIdeaService(ideas, cats, tags, logger)

	if cfg.DefaultColor == "" {
		cfg.DefaultColor = "#95A5A6"
	}
	w, err := NewWatcher(svc, cfg, logger, notify)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	return w, svc
}

func TestCaptureStoresTextIdea(t *testing.T) {
	w, svc := newTestWatcher(t, Config{}, nil)

	idea, err := w.Capture(Event{Type: storage.ItemText, Text: "first line\nsecond line"})
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if idea == nil {
		t.Fatal("Expected a stored idea")
	}

	if idea.Title != "first line" {
		t.Errorf("Expected title from first line, got %q", idea.Title)
	}

	got, err := svc.Get(idea.ID, false)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Content == nil || *got.Content != "first line\nsecond line" {
		t.Errorf("Full text should be preserved as content: %v", got.Content)
	}
	if got.ContentHash == nil {
		t.Error("Capture should record a content hash")
	}
}

func TestCaptureTitleDerivation(t *testing.T) {
	w, _ := newTestWatcher(t, Config{}, nil)

	long := strings.Repeat("x", 80)
	idea, err := w.Capture(Event{Type: storage.ItemText, Text: "\n\n  " + long})
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if len([]rune(idea.Title)) != maxTitleRunes {
		t.Errorf("Long titles should be truncated to %d runes, got %d", maxTitleRunes, len([]rune(idea.Title)))
	}

	img, err := w.Capture(Event{Type: storage.ItemImage, Data: []byte{1, 2, 3}})
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if img.Title != "Image capture" {
		t.Errorf("Expected image label, got %q", img.Title)
	}
}

func TestCaptureDropsDuplicatesInWindow(t *testing.T) {
	w, svc := newTestWatcher(t, Config{DedupeWindow: 4}, nil)

	if _, err := w.Capture(Event{Type: storage.ItemText, Text: "same"}); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	dup, err := w.Capture(Event{Type: storage.ItemText, Text: "same"})
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if dup != nil {
		t.Error("Duplicate inside the window should be dropped")
	}

	n, err := svc.Count(storage.Filter{Scope: storage.ScopeAll})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected a single stored idea, got %d", n)
	}
}

func TestCaptureDropsDuplicatesAcrossWindowEviction(t *testing.T) {
	// Window of 1: the second distinct capture evicts the first hash, so
	// only the store-wide lookup can catch the repeat.
	w, svc := newTestWatcher(t, Config{DedupeWindow: 1}, nil)

	if _, err := w.Capture(Event{Type: storage.ItemText, Text: "alpha"}); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if _, err := w.Capture(Event{Type: storage.ItemText, Text: "beta"}); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	dup, err := w.Capture(Event{Type: storage.ItemText, Text: "alpha"})
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if dup != nil {
		t.Error("Repeat should be caught by the content hash lookup")
	}

	n, _ := svc.Count(storage.Filter{Scope: storage.ScopeAll})
	if n != 2 {
		t.Errorf("Expected two stored ideas, got %d", n)
	}
}

func TestCaptureSkipsEmptyEvents(t *testing.T) {
	w, svc := newTestWatcher(t, Config{}, nil)

	idea, err := w.Capture(Event{Type: storage.ItemText, Text: ""})
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if idea != nil {
		t.Error("Empty event should be dropped")
	}

	n, _ := svc.Count(storage.Filter{Scope: storage.ScopeAll})
	if n != 0 {
		t.Errorf("Expected empty store, got %d ideas", n)
	}
}

func TestCaptureNotifies(t *testing.T) {
	var notified *storage.Idea
	w, _ := newTestWatcher(t, Config{}, func(idea *storage.Idea) { notified = idea })

	idea, err := w.Capture(Event{Type: storage.ItemText, Text: "ping"})
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if notified == nil || notified.ID != idea.ID {
		t.Error("Notifier should fire for stored captures")
	}
}

func TestRunConsumesSourceUntilClose(t *testing.T) {
	w, svc := newTestWatcher(t, Config{}, nil)

	ch := make(chan Event, 3)
	ch <- Event{Type: storage.ItemText, Text: "one"}
	ch <- Event{Type: storage.ItemText, Text: "two"}
	ch <- Event{Type: storage.ItemText, Text: "one"}
	close(ch)

	if err := w.Run(context.Background(), FromChannel(ch)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	n, _ := svc.Count(storage.Filter{Scope: storage.ScopeAll})
	if n != 2 {
		t.Errorf("Expected two distinct ideas, got %d", n)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	w, _ := newTestWatcher(t, Config{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, FromChannel(make(chan Event))) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestFromReader(t *testing.T) {
	w, _ := newTestWatcher(t, Config{}, nil)

	src := FromReader(strings.NewReader("from stdin"), storage.ItemText)
	if err := w.Run(context.Background(), src); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	hash := contentHash(Event{Text: "from stdin"})
	if _, ok, err := w.svc.FindByHash(hash); err != nil || !ok {
		t.Errorf("Reader capture should be stored (ok=%v err=%v)", ok, err)
	}
}

func TestCaptureFilesIntoCategoryWithPresetTags(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := storage.Open(filepath.Join(t.TempDir(), "ideastash.db"), logger)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ideas := storage.NewIdeaRepository(db)
	cats := storage.NewCategoryRepository(db)
	tags := storage.NewTagRepository(db)
	svc := service.NewIdeaService(ideas, cats, tags, logger)
	catSvc := service.NewCategoryService(cats, logger)

	cat, err := catSvc.Create("Captures", nil)
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	if err := catSvc.SetPresetTags(cat.ID, "clipboard"); err != nil {
		t.Fatalf("Failed to set preset tags: %v", err)
	}

	w, err := NewWatcher(svc, Config{DefaultColor: "#95A5A6", CategoryID: &cat.ID}, logger, nil)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}

	idea, err := w.Capture(Event{Type: storage.ItemText, Text: "filed"})
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if idea.CategoryID == nil || *idea.CategoryID != cat.ID {
		t.Error("Capture should land in the configured category")
	}

	names, err := svc.Tags(idea.ID)
	if err != nil {
		t.Fatalf("Tags failed: %v", err)
	}
	if len(names) != 1 || names[0] != "clipboard" {
		t.Errorf("Preset tags should apply to captures, got %v", names)
	}
}
