// Package clipboard turns a stream of capture events into stored ideas,
// suppressing duplicates with a bounded recent-hash window plus a store-wide
// content hash lookup.
package clipboard

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"ideastash/internal/service"
	"ideastash/internal/storage"
)

// maxTitleRunes bounds titles derived from captured text.
const maxTitleRunes = 50

// Event is one captured payload. Text carries the content for text and file
// captures (a path for files); Data carries the binary payload for images.
type Event struct {
	Type storage.ItemType
	Text string
	Data []byte
}

// Source produces capture events. The channel closes when the source is
// exhausted.
type Source interface {
	Events() <-chan Event
}

// Config controls capture behavior.
type Config struct {
	// DedupeWindow is the size of the recent-hash window. Repeated captures
	// of the same content inside the window are dropped without a store
	// lookup.
	DedupeWindow int
	// DefaultColor is assigned to captured ideas.
	DefaultColor string
	// CategoryID, when set, files captures into this category (which also
	// applies its preset tags).
	CategoryID *int64
}

// Watcher consumes a capture source and stores new ideas.
type Watcher struct {
	svc    *service.IdeaService
	cfg    Config
	logger *slog.Logger
	recent *lru.Cache[string, struct{}]
	notify func(*storage.Idea)
}

// NewWatcher creates a watcher. notify, when non-nil, is called once per
// stored idea.
func NewWatcher(svc *service.IdeaService, cfg Config, logger *slog.Logger, notify func(*storage.Idea)) (*Watcher, error) {
	if cfg.DedupeWindow <= 0 {
		cfg.DedupeWindow = 64
	}
	recent, err := lru.New[string, struct{}](cfg.DedupeWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to create dedupe window: %w", err)
	}

	return &Watcher{svc: svc, cfg: cfg, logger: logger, recent: recent, notify: notify}, nil
}

// Run consumes events until the source closes or ctx is canceled. Per-event
// failures are logged and skipped; the loop keeps running.
func (w *Watcher) Run(ctx context.Context, src Source) error {
	events := src.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, err := w.Capture(ev); err != nil {
				w.logger.Error("failed to store capture", "type", ev.Type, "error", err)
			}
		}
	}
}

// Capture stores a single event, returning the new idea or nil when the
// event was dropped as a duplicate or empty.
func (w *Watcher) Capture(ev Event) (*storage.Idea, error) {
	if ev.Text == "" && len(ev.Data) == 0 {
		return nil, nil
	}

	hash := contentHash(ev)
	if _, seen := w.recent.Get(hash); seen {
		w.logger.Debug("capture dropped by dedupe window", "hash", hash)
		return nil, nil
	}
	if _, exists, err := w.svc.FindByHash(hash); err != nil {
		return nil, err
	} else if exists {
		w.recent.Add(hash, struct{}{})
		w.logger.Debug("capture already stored", "hash", hash)
		return nil, nil
	}

	p := storage.NewIdea{
		Title:       deriveTitle(ev),
		Color:       w.cfg.DefaultColor,
		CategoryID:  w.cfg.CategoryID,
		ItemType:    ev.Type,
		ContentHash: &hash,
	}
	switch ev.Type {
	case storage.ItemImage:
		p.DataBlob = ev.Data
	default:
		text := ev.Text
		p.Content = &text
	}

	idea, err := w.svc.Create(p, nil)
	if err != nil {
		return nil, err
	}
	w.recent.Add(hash, struct{}{})

	w.logger.Info("capture stored", "id", idea.ID, "type", idea.ItemType)
	if w.notify != nil {
		w.notify(idea)
	}
	return idea, nil
}

// contentHash fingerprints an event for duplicate suppression.
func contentHash(ev Event) string {
	h := md5.New()
	if len(ev.Data) > 0 {
		h.Write(ev.Data)
	} else {
		io.WriteString(h, ev.Text)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// deriveTitle builds a card title from the event: the first non-empty line
// of text captures, capped at maxTitleRunes, or a fixed label for binary
// captures.
func deriveTitle(ev Event) string {
	switch ev.Type {
	case storage.ItemImage:
		return "Image capture"
	case storage.ItemFile:
		if ev.Text != "" {
			return truncateRunes(ev.Text, maxTitleRunes)
		}
		return "File capture"
	}

	for _, line := range strings.Split(ev.Text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return truncateRunes(line, maxTitleRunes)
		}
	}
	return "Untitled capture"
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
