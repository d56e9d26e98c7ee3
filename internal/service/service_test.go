package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"ideastash/internal/storage"
)

type testEnv struct {
	db     *storage.DB
	ideas  *storage.IdeaRepository
	cats   *storage.CategoryRepository
	tags   *storage.TagRepository
	svc    *IdeaService
	catSvc *CategoryService
	stats  *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := storage.Open(filepath.Join(t.TempDir(), "ideastash.db"), logger)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	})

	ideas := storage.NewIdeaRepository(db)
	cats := storage.NewCategoryRepository(db)
	tags := storage.NewTagRepository(db)

	return &testEnv{
		db:     db,
		ideas:  ideas,
		cats:   cats,
		tags:   tags,
		svc:    NewIdeaService(ideas, cats, tags, logger),
		catSvc: NewCategoryService(cats, logger),
		stats:  NewStatsService(ideas),
	}
}

func (e *testEnv) addIdea(t *testing.T, title string) int64 {
	t.Helper()

	content := ""
	id, err := e.ideas.Add(storage.NewIdea{Title: title, Content: &content, Color: "#FFFFFF", ItemType: storage.ItemText})
	if err != nil {
		t.Fatalf("Failed to add idea %q: %v", title, err)
	}
	return id
}
