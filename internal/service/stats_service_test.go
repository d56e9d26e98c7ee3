package service

import (
	"errors"
	"testing"

	"ideastash/internal/storage"
)

func TestStatsSidebarCounts(t *testing.T) {
	env := newTestEnv(t)

	env.addIdea(t, "one")
	trashed := env.addIdea(t, "two")
	if err := env.svc.SoftDelete([]int64{trashed}); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	counts, err := env.stats.SidebarCounts()
	if err != nil {
		t.Fatalf("SidebarCounts failed: %v", err)
	}
	if counts.All != 1 || counts.Trash != 1 {
		t.Errorf("Expected all=1 trash=1, got all=%d trash=%d", counts.All, counts.Trash)
	}
}

func TestStatsFacetStatsDefaultsScope(t *testing.T) {
	env := newTestEnv(t)

	env.addIdea(t, "counted")

	stats, err := env.stats.FacetStats("", "", nil)
	if err != nil {
		t.Fatalf("FacetStats failed: %v", err)
	}
	if stats.Types[storage.ItemText] != 1 {
		t.Errorf("Empty scope should behave like all, got %v", stats.Types)
	}
}

func TestStatsFacetStatsRejectsUnknownScope(t *testing.T) {
	env := newTestEnv(t)

	var ve *ValidationError
	if _, err := env.stats.FacetStats("", "everything", nil); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
}
