package service

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"ideastash/internal/blob"
	"ideastash/internal/palette"
	"ideastash/internal/storage"
)

// IdeaService wraps the idea repository with the business rules the UI and
// API rely on: locked ideas cannot be edited, moved, or deleted; ratings stay
// in range; binary payloads are compressed at rest; preset tags follow
// category membership.
type IdeaService struct {
	ideas  *storage.IdeaRepository
	cats   *storage.CategoryRepository
	tags   *storage.TagRepository
	logger *slog.Logger
}

// NewIdeaService creates a new idea service.
func NewIdeaService(ideas *storage.IdeaRepository, cats *storage.CategoryRepository, tags *storage.TagRepository, logger *slog.Logger) *IdeaService {
	return &IdeaService{ideas: ideas, cats: cats, tags: tags, logger: logger}
}

// List returns the ideas matching f, paginated when page and pageSize are
// both positive.
func (s *IdeaService) List(f storage.Filter, page, pageSize int) ([]*storage.Idea, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	return s.ideas.List(f, page, pageSize)
}

// Count returns the number of ideas matching f.
func (s *IdeaService) Count(f storage.Filter) (int, error) {
	if err := validateFilter(f); err != nil {
		return 0, err
	}
	return s.ideas.Count(f)
}

// Get retrieves a single idea. When includeBlob is set the binary payload is
// decompressed before it is returned.
func (s *IdeaService) Get(id int64, includeBlob bool) (*storage.Idea, error) {
	idea, err := s.ideas.Get(id, includeBlob)
	if err != nil {
		return nil, err
	}

	if includeBlob && len(idea.DataBlob) > 0 {
		data, err := blob.Decompress(idea.DataBlob)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload of idea %d: %w", id, err)
		}
		idea.DataBlob = data
	}

	return idea, nil
}

// Create validates and inserts a new idea, attaches the given tags, and
// applies the preset tags of the target category. Returns the stored idea.
func (s *IdeaService) Create(p storage.NewIdea, tagNames []string) (*storage.Idea, error) {
	if p.ItemType == "" {
		p.ItemType = storage.ItemText
	}
	if !storage.ValidItemType(p.ItemType) {
		return nil, &ValidationError{Field: "itemType", Reason: fmt.Sprintf("unknown type %q", p.ItemType)}
	}
	if p.Color == "" {
		p.Color = palette.DefaultColor
	}
	p.Title = strings.TrimSpace(p.Title)
	p.DataBlob = blob.Compress(p.DataBlob)

	id, err := s.ideas.Add(p)
	if err != nil {
		return nil, err
	}

	if len(tagNames) > 0 {
		if err := s.tags.AddTagsToIdeas([]int64{id}, tagNames); err != nil {
			return nil, err
		}
	}
	if p.CategoryID != nil {
		if err := s.applyPresetTags([]int64{id}, *p.CategoryID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("idea created", "id", id, "type", p.ItemType)
	return s.ideas.Get(id, false)
}

// Update replaces the content-bearing fields of an idea. Locked ideas are
// rejected.
func (s *IdeaService) Update(id int64, p storage.IdeaUpdate) error {
	if !storage.ValidItemType(p.ItemType) {
		return &ValidationError{Field: "itemType", Reason: fmt.Sprintf("unknown type %q", p.ItemType)}
	}
	if err := s.requireUnlocked(id); err != nil {
		return err
	}

	p.Title = strings.TrimSpace(p.Title)
	p.DataBlob = blob.Compress(p.DataBlob)
	return s.ideas.Update(id, p)
}

// SetRating sets an idea's star rating. Valid ratings are 0 through 5; zero
// means unrated.
func (s *IdeaService) SetRating(id int64, rating int) error {
	if rating < 0 || rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be between 0 and 5"}
	}
	return s.ideas.UpdateField(id, storage.FieldRating, rating)
}

// SetColor sets an idea's card color.
func (s *IdeaService) SetColor(id int64, color string) error {
	if _, err := palette.Lightness(color); err != nil {
		return &ValidationError{Field: "color", Reason: "must be a #RRGGBB color"}
	}
	return s.ideas.UpdateField(id, storage.FieldColor, color)
}

// SetFavorite sets the favorite flag on a batch of ideas. Missing ids are
// skipped.
func (s *IdeaService) SetFavorite(ids []int64, favorite bool) error {
	return s.setFlagBatch(ids, storage.FieldFavorite, favorite)
}

// SetPinned sets the pin flag on a batch of ideas. Missing ids are skipped.
func (s *IdeaService) SetPinned(ids []int64, pinned bool) error {
	return s.setFlagBatch(ids, storage.FieldPinned, pinned)
}

// ToggleFavorite flips the favorite flag of a single idea.
func (s *IdeaService) ToggleFavorite(id int64) error {
	return s.ideas.ToggleField(id, storage.FieldFavorite)
}

// TogglePinned flips the pin flag of a single idea.
func (s *IdeaService) TogglePinned(id int64) error {
	return s.ideas.ToggleField(id, storage.FieldPinned)
}

// SetLocked sets the lock flag on a batch of ideas. Locking is never gated
// on itself, so locked ideas can always be unlocked.
func (s *IdeaService) SetLocked(ids []int64, locked bool) error {
	return s.ideas.SetLocked(ids, locked)
}

// MoveToCategory moves a batch of ideas into a category (nil means
// uncategorized) and applies the target's preset tags. Locked ideas reject
// the whole batch.
func (s *IdeaService) MoveToCategory(ids []int64, categoryID *int64) error {
	if err := s.requireUnlocked(ids...); err != nil {
		return err
	}
	if categoryID != nil {
		if _, err := s.cats.Get(*categoryID); err != nil {
			return err
		}
	}

	for _, id := range ids {
		if err := s.ideas.UpdateField(id, storage.FieldCategory, categoryID); err != nil {
			if err == storage.ErrNotFound {
				continue
			}
			return err
		}
	}

	if categoryID != nil {
		return s.applyPresetTags(ids, *categoryID)
	}
	return nil
}

// SoftDelete moves a batch of ideas to the trash. Locked ideas reject the
// whole batch.
func (s *IdeaService) SoftDelete(ids []int64) error {
	if err := s.requireUnlocked(ids...); err != nil {
		return err
	}
	return s.setFlagBatch(ids, storage.FieldDeleted, true)
}

// Restore moves a batch of ideas out of the trash.
func (s *IdeaService) Restore(ids []int64) error {
	return s.setFlagBatch(ids, storage.FieldDeleted, false)
}

// DeletePermanent removes a batch of ideas for good, including their tag
// associations. Locked ideas reject the whole batch.
func (s *IdeaService) DeletePermanent(ids []int64) error {
	if err := s.requireUnlocked(ids...); err != nil {
		return err
	}

	for _, id := range ids {
		if err := s.ideas.DeletePermanent(id); err != nil {
			return err
		}
	}
	s.logger.Info("ideas permanently deleted", "count", len(ids))
	return nil
}

// EmptyTrash permanently deletes every idea in the trash. The lock gate
// still applies: a locked idea in the trash rejects the operation, so
// nothing protected is lost by a bulk action.
func (s *IdeaService) EmptyTrash() (int, error) {
	ids, err := s.ideas.TrashIDs()
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := s.DeletePermanent(ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// AddTags attaches tags to a batch of ideas.
func (s *IdeaService) AddTags(ids []int64, names []string) error {
	return s.tags.AddTagsToIdeas(ids, names)
}

// RemoveTag detaches a tag from a batch of ideas.
func (s *IdeaService) RemoveTag(ids []int64, name string) error {
	return s.tags.RemoveTagFromIdeas(ids, name)
}

// Tags returns the tag names attached to an idea.
func (s *IdeaService) Tags(id int64) ([]string, error) {
	return s.tags.TagsForIdea(id)
}

// AllTags returns every tag name known to the store.
func (s *IdeaService) AllTags() ([]string, error) {
	return s.tags.List()
}

// FindByHash looks up an idea by content hash. Capture sources use it to
// suppress duplicates across restarts.
func (s *IdeaService) FindByHash(hash string) (int64, bool, error) {
	return s.ideas.FindByHash(hash)
}

// requireUnlocked returns a LockedError naming every locked id in ids.
func (s *IdeaService) requireUnlocked(ids ...int64) error {
	status, err := s.ideas.LockStatus(ids)
	if err != nil {
		return err
	}

	var locked []int64
	for id, isLocked := range status {
		if isLocked {
			locked = append(locked, id)
		}
	}
	if len(locked) > 0 {
		sort.Slice(locked, func(i, j int) bool { return locked[i] < locked[j] })
		return &LockedError{IDs: locked}
	}
	return nil
}

// setFlagBatch applies a boolean field to each idea, skipping missing ids.
func (s *IdeaService) setFlagBatch(ids []int64, field storage.Field, value bool) error {
	for _, id := range ids {
		if err := s.ideas.UpdateField(id, field, value); err != nil {
			if err == storage.ErrNotFound {
				continue
			}
			return err
		}
	}
	return nil
}

// applyPresetTags attaches the category's preset tags to the given ideas.
func (s *IdeaService) applyPresetTags(ids []int64, categoryID int64) error {
	preset, err := s.cats.PresetTags(categoryID)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil
		}
		return err
	}
	names := splitPresetTags(preset)
	if len(names) == 0 {
		return nil
	}
	return s.tags.AddTagsToIdeas(ids, names)
}

// splitPresetTags parses the comma-separated preset tag column.
func splitPresetTags(preset string) []string {
	var names []string
	for _, n := range strings.Split(preset, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func validateFilter(f storage.Filter) error {
	if f.Scope == "" {
		return nil
	}
	if !storage.ValidScope(f.Scope) {
		return &ValidationError{Field: "scope", Reason: fmt.Sprintf("unknown scope %q", f.Scope)}
	}
	return nil
}
