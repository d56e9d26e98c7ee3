package service

import (
	"bytes"
	"errors"
	"testing"

	"ideastash/internal/palette"
	"ideastash/internal/storage"
)

func TestCreateAppliesDefaults(t *testing.T) {
	env := newTestEnv(t)

	idea, err := env.svc.Create(storage.NewIdea{Title: "  padded  "}, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if idea.Title != "padded" {
		t.Errorf("Title should be trimmed, got %q", idea.Title)
	}
	if idea.Color != palette.DefaultColor {
		t.Errorf("Expected default color, got %q", idea.Color)
	}
	if idea.ItemType != storage.ItemText {
		t.Errorf("Expected text item type, got %q", idea.ItemType)
	}
}

func TestCreateRejectsUnknownItemType(t *testing.T) {
	env := newTestEnv(t)

	var ve *ValidationError
	_, err := env.svc.Create(storage.NewIdea{Title: "x", ItemType: "video"}, nil)
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if ve.Field != "itemType" {
		t.Errorf("Expected itemType validation, got %q", ve.Field)
	}
}

func TestCreateAttachesExplicitAndPresetTags(t *testing.T) {
	env := newTestEnv(t)

	cat, err := env.catSvc.Create("Work", nil)
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	if err := env.catSvc.SetPresetTags(cat.ID, "work, inbox"); err != nil {
		t.Fatalf("Failed to set preset tags: %v", err)
	}

	idea, err := env.svc.Create(storage.NewIdea{Title: "note", CategoryID: &cat.ID}, []string{"manual"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	names, err := env.svc.Tags(idea.ID)
	if err != nil {
		t.Fatalf("Tags failed: %v", err)
	}
	want := []string{"inbox", "manual", "work"}
	if len(names) != len(want) {
		t.Fatalf("Expected tags %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Expected tags %v, got %v", want, names)
		}
	}
}

func TestImageBlobRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	// Repetitive payload so compression actually shrinks it.
	payload := bytes.Repeat([]byte("pixelrow"), 512)
	idea, err := env.svc.Create(storage.NewIdea{Title: "shot", ItemType: storage.ItemImage, DataBlob: payload}, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The stored column holds the compressed form.
	raw, err := env.ideas.Get(idea.ID, true)
	if err != nil {
		t.Fatalf("Failed to read raw idea: %v", err)
	}
	if len(raw.DataBlob) >= len(payload) {
		t.Errorf("Stored payload should be compressed: %d >= %d", len(raw.DataBlob), len(payload))
	}

	// The service hands back the original bytes.
	got, err := env.svc.Get(idea.ID, true)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got.DataBlob, payload) {
		t.Error("Payload did not survive the round trip")
	}
}

func TestLockedIdeaRejectsEdit(t *testing.T) {
	env := newTestEnv(t)

	id := env.addIdea(t, "protected")
	if err := env.svc.SetLocked([]int64{id}, true); err != nil {
		t.Fatalf("SetLocked failed: %v", err)
	}

	var le *LockedError
	err := env.svc.Update(id, storage.IdeaUpdate{Title: "changed", Color: "#000000", ItemType: storage.ItemText})
	if !errors.As(err, &le) {
		t.Fatalf("Expected LockedError, got %v", err)
	}
	if len(le.IDs) != 1 || le.IDs[0] != id {
		t.Errorf("Expected locked id %d, got %v", id, le.IDs)
	}

	idea, err := env.svc.Get(id, false)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if idea.Title != "protected" {
		t.Errorf("Locked idea must be untouched, got title %q", idea.Title)
	}

	// Unlocking reopens the idea for edits.
	if err := env.svc.SetLocked([]int64{id}, false); err != nil {
		t.Fatalf("SetLocked failed: %v", err)
	}
	if err := env.svc.Update(id, storage.IdeaUpdate{Title: "changed", Color: "#000000", ItemType: storage.ItemText}); err != nil {
		t.Fatalf("Update after unlock failed: %v", err)
	}
}

func TestLockedIdeaRejectsWholeBatch(t *testing.T) {
	env := newTestEnv(t)

	free := env.addIdea(t, "free")
	locked := env.addIdea(t, "locked")
	if err := env.svc.SetLocked([]int64{locked}, true); err != nil {
		t.Fatalf("SetLocked failed: %v", err)
	}

	var le *LockedError
	if err := env.svc.SoftDelete([]int64{free, locked}); !errors.As(err, &le) {
		t.Fatalf("Expected LockedError, got %v", err)
	}

	// The unlocked idea must not be half-trashed.
	idea, err := env.svc.Get(free, false)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if idea.IsDeleted {
		t.Error("Batch rejection must leave all rows untouched")
	}

	if err := env.svc.DeletePermanent([]int64{free, locked}); !errors.As(err, &le) {
		t.Errorf("Expected LockedError from permanent delete, got %v", err)
	}
	if _, err := env.svc.Get(free, false); err != nil {
		t.Errorf("Idea should survive rejected batch delete: %v", err)
	}
}

func TestLockedIdeaRejectsMove(t *testing.T) {
	env := newTestEnv(t)

	cat, err := env.catSvc.Create("Target", nil)
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	id := env.addIdea(t, "pinned down")
	if err := env.svc.SetLocked([]int64{id}, true); err != nil {
		t.Fatalf("SetLocked failed: %v", err)
	}

	var le *LockedError
	if err := env.svc.MoveToCategory([]int64{id}, &cat.ID); !errors.As(err, &le) {
		t.Fatalf("Expected LockedError, got %v", err)
	}

	idea, _ := env.svc.Get(id, false)
	if idea.CategoryID != nil {
		t.Error("Locked idea must not be moved")
	}
}

func TestLockDoesNotGateFlagsAndRating(t *testing.T) {
	env := newTestEnv(t)

	id := env.addIdea(t, "locked but flaggable")
	if err := env.svc.SetLocked([]int64{id}, true); err != nil {
		t.Fatalf("SetLocked failed: %v", err)
	}

	if err := env.svc.ToggleFavorite(id); err != nil {
		t.Errorf("Favorite should not be gated by the lock: %v", err)
	}
	if err := env.svc.SetPinned([]int64{id}, true); err != nil {
		t.Errorf("Pin should not be gated by the lock: %v", err)
	}
	if err := env.svc.SetRating(id, 4); err != nil {
		t.Errorf("Rating should not be gated by the lock: %v", err)
	}

	idea, _ := env.svc.Get(id, false)
	if !idea.IsFavorite || !idea.IsPinned || idea.Rating != 4 {
		t.Errorf("Flags should apply to locked idea: %+v", idea)
	}
}

func TestSetRatingRange(t *testing.T) {
	env := newTestEnv(t)

	id := env.addIdea(t, "rated")

	var ve *ValidationError
	if err := env.svc.SetRating(id, -1); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for -1, got %v", err)
	}
	if err := env.svc.SetRating(id, 6); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for 6, got %v", err)
	}
	if err := env.svc.SetRating(id, 0); err != nil {
		t.Errorf("Zero should clear the rating: %v", err)
	}
	if err := env.svc.SetRating(id, 5); err != nil {
		t.Errorf("Five should be accepted: %v", err)
	}
}

func TestMoveToCategoryAppliesPresetTags(t *testing.T) {
	env := newTestEnv(t)

	cat, err := env.catSvc.Create("Inbox", nil)
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	if err := env.catSvc.SetPresetTags(cat.ID, "inbox"); err != nil {
		t.Fatalf("Failed to set preset tags: %v", err)
	}

	id := env.addIdea(t, "wandering")
	if err := env.svc.MoveToCategory([]int64{id}, &cat.ID); err != nil {
		t.Fatalf("MoveToCategory failed: %v", err)
	}

	idea, _ := env.svc.Get(id, false)
	if idea.CategoryID == nil || *idea.CategoryID != cat.ID {
		t.Error("Idea should land in the target category")
	}
	names, _ := env.svc.Tags(id)
	if len(names) != 1 || names[0] != "inbox" {
		t.Errorf("Preset tags should follow the move, got %v", names)
	}
}

func TestMoveToMissingCategory(t *testing.T) {
	env := newTestEnv(t)

	id := env.addIdea(t, "stuck")
	missing := int64(999)
	if err := env.svc.MoveToCategory([]int64{id}, &missing); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMoveToUncategorized(t *testing.T) {
	env := newTestEnv(t)

	cat, err := env.catSvc.Create("Somewhere", nil)
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	idea, err := env.svc.Create(storage.NewIdea{Title: "homed", CategoryID: &cat.ID}, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := env.svc.MoveToCategory([]int64{idea.ID}, nil); err != nil {
		t.Fatalf("MoveToCategory failed: %v", err)
	}
	got, _ := env.svc.Get(idea.ID, false)
	if got.CategoryID != nil {
		t.Error("Idea should be uncategorized")
	}
}

func TestTrashLifecycle(t *testing.T) {
	env := newTestEnv(t)

	id := env.addIdea(t, "cycled")

	if err := env.svc.SoftDelete([]int64{id}); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	idea, _ := env.svc.Get(id, false)
	if !idea.IsDeleted {
		t.Fatal("Idea should be in the trash")
	}

	if err := env.svc.Restore([]int64{id}); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	idea, _ = env.svc.Get(id, false)
	if idea.IsDeleted {
		t.Fatal("Idea should be restored")
	}

	if err := env.svc.SoftDelete([]int64{id}); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	n, err := env.svc.EmptyTrash()
	if err != nil {
		t.Fatalf("EmptyTrash failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 idea purged, got %d", n)
	}
	if _, err := env.svc.Get(id, false); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected idea gone, got %v", err)
	}
}

func TestEmptyTrashRespectsLock(t *testing.T) {
	env := newTestEnv(t)

	id := env.addIdea(t, "trashed then locked")
	if err := env.svc.SoftDelete([]int64{id}); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	if err := env.svc.SetLocked([]int64{id}, true); err != nil {
		t.Fatalf("SetLocked failed: %v", err)
	}

	var le *LockedError
	if _, err := env.svc.EmptyTrash(); !errors.As(err, &le) {
		t.Fatalf("Expected LockedError, got %v", err)
	}
	if _, err := env.svc.Get(id, false); err != nil {
		t.Errorf("Locked idea must survive trash purge: %v", err)
	}
}

func TestEmptyTrashWhenEmpty(t *testing.T) {
	env := newTestEnv(t)

	n, err := env.svc.EmptyTrash()
	if err != nil {
		t.Fatalf("EmptyTrash failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 ideas purged, got %d", n)
	}
}

func TestBatchFlagSkipsMissingIDs(t *testing.T) {
	env := newTestEnv(t)

	id := env.addIdea(t, "real")
	if err := env.svc.SetFavorite([]int64{id, 999}, true); err != nil {
		t.Fatalf("Batch with missing id should succeed: %v", err)
	}

	idea, _ := env.svc.Get(id, false)
	if !idea.IsFavorite {
		t.Error("Existing idea should be favorited")
	}
}

func TestListRejectsUnknownScope(t *testing.T) {
	env := newTestEnv(t)

	var ve *ValidationError
	if _, err := env.svc.List(storage.Filter{Scope: "everything"}, 0, 0); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
	if _, err := env.svc.Count(storage.Filter{Scope: "everything"}); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
}
