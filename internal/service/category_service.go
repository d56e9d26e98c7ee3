package service

import (
	"log/slog"
	"strings"

	"ideastash/internal/palette"
	"ideastash/internal/storage"
)

// CategoryService wraps the category repository with naming rules and the
// subtree policies: color changes and deletion always act on the whole
// descendant closure.
type CategoryService struct {
	cats   *storage.CategoryRepository
	logger *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(cats *storage.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{cats: cats, logger: logger}
}

// List returns all categories as a flat, ordered list.
func (s *CategoryService) List() ([]*storage.Category, error) {
	return s.cats.List()
}

// Get retrieves a single category.
func (s *CategoryService) Get(id int64) (*storage.Category, error) {
	return s.cats.Get(id)
}

// Tree returns the categories as a forest ordered by sort_order.
func (s *CategoryService) Tree() ([]*storage.Category, error) {
	return s.cats.BuildTree()
}

// Create validates and inserts a new category under parentID (nil for a
// root) and returns it.
func (s *CategoryService) Create(name string, parentID *int64) (*storage.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if parentID != nil {
		if _, err := s.cats.Get(*parentID); err != nil {
			return nil, err
		}
	}

	id, err := s.cats.Add(name, parentID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("category created", "id", id, "name", name)
	return s.cats.Get(id)
}

// Rename validates and applies a new category name.
func (s *CategoryService) Rename(id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return s.cats.Rename(id, name)
}

// Delete removes the category and its entire subtree in one transaction.
// Ideas owned by any deleted category are moved to uncategorized first.
func (s *CategoryService) Delete(id int64) error {
	ids, err := s.cats.Descendants(id)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return storage.ErrNotFound
	}

	if err := s.cats.DeleteSubtree(ids); err != nil {
		return err
	}
	s.logger.Info("category subtree deleted", "root", id, "count", len(ids))
	return nil
}

// SetColor recolors the category, its descendants, and all their ideas.
func (s *CategoryService) SetColor(id int64, color string) error {
	if _, err := palette.Lightness(color); err != nil {
		return &ValidationError{Field: "color", Reason: "must be a #RRGGBB color"}
	}
	return s.cats.SetColor(id, color)
}

// SetRandomColor picks a random color bright enough to stay readable and
// applies it to the subtree. Returns the chosen color.
func (s *CategoryService) SetRandomColor(id int64) (string, error) {
	color := palette.RandomVisible()
	if err := s.cats.SetColor(id, color); err != nil {
		return "", err
	}
	return color, nil
}

// SaveOrder persists a drag-and-drop reorder atomically.
func (s *CategoryService) SaveOrder(updates []storage.OrderUpdate) error {
	return s.cats.SaveOrder(updates)
}

// SetPresetTags stores the comma-separated tags applied automatically to
// ideas entering the category.
func (s *CategoryService) SetPresetTags(id int64, tags string) error {
	return s.cats.SetPresetTags(id, tags)
}

// PresetTags returns a category's preset tags.
func (s *CategoryService) PresetTags(id int64) (string, error) {
	return s.cats.PresetTags(id)
}
