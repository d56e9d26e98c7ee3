package storage

import (
	"database/sql"
	"fmt"
	"strings"
)

// TagRepository manages tag rows and the idea-tag association table. Tags
// are created lazily on first use and never deleted here; orphan tags are
// tolerated.
type TagRepository struct {
	db *DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *DB) *TagRepository {
	return &TagRepository{db: db}
}

// TagsForIdea returns the tag names attached to an idea, alphabetically.
func (r *TagRepository) TagsForIdea(ideaID int64) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT t.name
		FROM tags t
		JOIN idea_tags it ON t.id = it.tag_id
		WHERE it.idea_id = ?
		ORDER BY t.name
	`, ideaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get idea tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// List returns every tag name known to the store.
func (r *TagRepository) List() ([]string, error) {
	rows, err := r.db.Query("SELECT name FROM tags ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// AddTagsToIdeas attaches each named tag to each idea, creating missing tag
// rows on the way. Existing associations are left alone, so the operation
// is idempotent.
func (r *TagRepository) AddTagsToIdeas(ideaIDs []int64, names []string) error {
	names = cleanTagNames(names)
	if len(ideaIDs) == 0 || len(names) == 0 {
		return nil
	}

	return r.db.WithTx(func(tx *sql.Tx) error {
		for _, name := range names {
			tagID, err := getOrCreateTag(tx, name)
			if err != nil {
				return err
			}
			for _, ideaID := range ideaIDs {
				if _, err := tx.Exec(
					"INSERT OR IGNORE INTO idea_tags (idea_id, tag_id) VALUES (?, ?)",
					ideaID, tagID); err != nil {
					return fmt.Errorf("failed to link tag %q to idea %d: %w", name, ideaID, err)
				}
			}
		}
		return nil
	})
}

// RemoveTagFromIdeas detaches a tag from a batch of ideas. The tag row
// itself stays.
func (r *TagRepository) RemoveTagFromIdeas(ideaIDs []int64, name string) error {
	if len(ideaIDs) == 0 {
		return nil
	}

	params := make([]interface{}, 0, len(ideaIDs)+1)
	params = append(params, name)
	for _, id := range ideaIDs {
		params = append(params, id)
	}

	_, err := r.db.Exec(fmt.Sprintf(`
		DELETE FROM idea_tags
		WHERE tag_id = (SELECT id FROM tags WHERE name = ?)
		  AND idea_id IN (%s)
	`, placeholders(len(ideaIDs))), params...)
	if err != nil {
		return fmt.Errorf("failed to remove tag %q: %w", name, err)
	}
	return nil
}

// getOrCreateTag finds a tag by name or inserts it, returning the id.
func getOrCreateTag(tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRow("SELECT id FROM tags WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to find tag %q: %w", name, err)
	}

	res, err := tx.Exec("INSERT INTO tags (name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("failed to create tag %q: %w", name, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get created tag id: %w", err)
	}
	return id, nil
}

// cleanTagNames trims whitespace and drops empties and duplicates,
// preserving order.
func cleanTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
