package service

import (
	"errors"
	"testing"

	"ideastash/internal/palette"
	"ideastash/internal/storage"
)

func TestCategoryCreateValidatesName(t *testing.T) {
	env := newTestEnv(t)

	var ve *ValidationError
	if _, err := env.catSvc.Create("", nil); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for empty name, got %v", err)
	}
	if _, err := env.catSvc.Create("   ", nil); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for blank name, got %v", err)
	}

	cat, err := env.catSvc.Create("  Projects  ", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if cat.Name != "Projects" {
		t.Errorf("Name should be trimmed, got %q", cat.Name)
	}
}

func TestCategoryCreateRejectsMissingParent(t *testing.T) {
	env := newTestEnv(t)

	missing := int64(999)
	if _, err := env.catSvc.Create("Child", &missing); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCategoryRenameValidates(t *testing.T) {
	env := newTestEnv(t)

	cat, err := env.catSvc.Create("Old", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var ve *ValidationError
	if err := env.catSvc.Rename(cat.ID, "  "); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
	if err := env.catSvc.Rename(cat.ID, "New"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	got, _ := env.catSvc.Get(cat.ID)
	if got.Name != "New" {
		t.Errorf("Expected renamed category, got %q", got.Name)
	}
}

func TestCategoryDeleteRemovesSubtree(t *testing.T) {
	env := newTestEnv(t)

	root, err := env.catSvc.Create("Root", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	child, err := env.catSvc.Create("Child", &root.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	idea, err := env.svc.Create(storage.NewIdea{Title: "deep", CategoryID: &child.ID}, nil)
	if err != nil {
		t.Fatalf("Create idea failed: %v", err)
	}

	if err := env.catSvc.Delete(root.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	for _, id := range []int64{root.ID, child.ID} {
		if _, err := env.catSvc.Get(id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Category %d should be gone, got %v", id, err)
		}
	}

	got, err := env.svc.Get(idea.ID, false)
	if err != nil {
		t.Fatalf("Idea must survive subtree deletion: %v", err)
	}
	if got.CategoryID != nil {
		t.Error("Idea should be uncategorized after subtree deletion")
	}
}

func TestCategoryDeleteMissing(t *testing.T) {
	env := newTestEnv(t)

	if err := env.catSvc.Delete(999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCategorySetColorValidatesFormat(t *testing.T) {
	env := newTestEnv(t)

	cat, err := env.catSvc.Create("Tinted", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var ve *ValidationError
	if err := env.catSvc.SetColor(cat.ID, "red"); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for named color, got %v", err)
	}
	if err := env.catSvc.SetColor(cat.ID, "#12"); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for short hex, got %v", err)
	}

	if err := env.catSvc.SetColor(cat.ID, "#3498DB"); err != nil {
		t.Fatalf("SetColor failed: %v", err)
	}
	got, _ := env.catSvc.Get(cat.ID)
	if got.Color != "#3498DB" {
		t.Errorf("Expected recolored category, got %q", got.Color)
	}
}

func TestCategorySetRandomColorCascades(t *testing.T) {
	env := newTestEnv(t)

	root, err := env.catSvc.Create("Root", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	child, err := env.catSvc.Create("Child", &root.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	color, err := env.catSvc.SetRandomColor(root.ID)
	if err != nil {
		t.Fatalf("SetRandomColor failed: %v", err)
	}

	if l, err := palette.Lightness(color); err != nil {
		t.Fatalf("Random color %q is not a valid hex color: %v", color, err)
	} else if l < palette.MinLightness && color != palette.DefaultColor {
		t.Errorf("Random color %q is too dark (lightness %.2f)", color, l)
	}

	for _, id := range []int64{root.ID, child.ID} {
		got, _ := env.catSvc.Get(id)
		if got.Color != color {
			t.Errorf("Category %d should carry the new color %q, got %q", id, color, got.Color)
		}
	}
}

func TestCategorySetRandomColorMissing(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.catSvc.SetRandomColor(999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCategoryTree(t *testing.T) {
	env := newTestEnv(t)

	root, _ := env.catSvc.Create("Root", nil)
	child, _ := env.catSvc.Create("Child", &root.ID)

	roots, err := env.catSvc.Tree()
	if err != nil {
		t.Fatalf("Tree failed: %v", err)
	}
	if len(roots) != 1 || roots[0].ID != root.ID {
		t.Fatalf("Expected a single root, got %d", len(roots))
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].ID != child.ID {
		t.Error("Child should hang under the root")
	}
}
