package storage

import (
	"database/sql"
	"fmt"

	"ideastash/internal/palette"
)

// OrderUpdate is one row of a drag-and-drop reorder: the category's new
// position and (possibly new) parent.
type OrderUpdate struct {
	ID        int64  `json:"id"`
	SortOrder int    `json:"sortOrder"`
	ParentID  *int64 `json:"parentId"`
}

// CategoryRepository provides CRUD and tree operations over the categories
// table.
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories ordered by sort_order, then name.
func (r *CategoryRepository) List() ([]*Category, error) {
	rows, err := r.db.Query(`
		SELECT id, name, parent_id, color, sort_order, preset_tags
		FROM categories
		ORDER BY sort_order ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// Get retrieves a single category.
func (r *CategoryRepository) Get(id int64) (*Category, error) {
	var c Category
	var parentID sql.NullInt64

	err := r.db.QueryRow(`
		SELECT id, name, parent_id, color, sort_order, preset_tags
		FROM categories WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &parentID, &c.Color, &c.SortOrder, &c.PresetTags)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if parentID.Valid {
		c.ParentID = &parentID.Int64
	}
	return &c, nil
}

// Add inserts a category at the end of its sibling scope with a random
// palette color, and returns the new id.
func (r *CategoryRepository) Add(name string, parentID *int64) (int64, error) {
	var maxOrder sql.NullInt64
	var err error
	if parentID == nil {
		err = r.db.QueryRow("SELECT MAX(sort_order) FROM categories WHERE parent_id IS NULL").Scan(&maxOrder)
	} else {
		err = r.db.QueryRow("SELECT MAX(sort_order) FROM categories WHERE parent_id = ?", *parentID).Scan(&maxOrder)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to compute sibling order: %w", err)
	}

	res, err := r.db.Exec(
		"INSERT INTO categories (name, parent_id, sort_order, color) VALUES (?, ?, ?, ?)",
		name, parentID, maxOrder.Int64+1, palette.Random())
	if err != nil {
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted category id: %w", err)
	}
	return id, nil
}

// Rename updates a category's name.
func (r *CategoryRepository) Rename(id int64, name string) error {
	res, err := r.db.Exec("UPDATE categories SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("failed to rename category: %w", err)
	}
	return requireRow(res)
}

// SetPresetTags stores the comma-separated default tags for a category.
func (r *CategoryRepository) SetPresetTags(id int64, tags string) error {
	res, err := r.db.Exec("UPDATE categories SET preset_tags = ? WHERE id = ?", tags, id)
	if err != nil {
		return fmt.Errorf("failed to set preset tags: %w", err)
	}
	return requireRow(res)
}

// PresetTags returns the comma-separated default tags for a category.
func (r *CategoryRepository) PresetTags(id int64) (string, error) {
	var tags string
	err := r.db.QueryRow("SELECT preset_tags FROM categories WHERE id = ?", id).Scan(&tags)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get preset tags: %w", err)
	}
	return tags, nil
}

// Descendants resolves the descendant closure of id (self included) by
// loading the flat category list and walking parent links in memory, so the
// traversal is independent of the storage engine's recursive-query support.
func (r *CategoryRepository) Descendants(id int64) ([]int64, error) {
	cats, err := r.List()
	if err != nil {
		return nil, err
	}

	children := make(map[int64][]int64)
	exists := false
	for _, c := range cats {
		if c.ID == id {
			exists = true
		}
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}
	if !exists {
		return nil, nil
	}

	var result []int64
	queue := []int64{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		result = append(result, cur)
		queue = append(queue, children[cur]...)
	}
	return result, nil
}

// SetColor recolors the subtree rooted at id: every category in the
// descendant closure and every idea owned by one of them, atomically. Cards
// inherit their category's theme without per-idea bookkeeping.
func (r *CategoryRepository) SetColor(id int64, color string) error {
	ids, err := r.Descendants(id)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return ErrNotFound
	}

	params := make([]interface{}, 0, len(ids)+1)
	params = append(params, color)
	for _, cid := range ids {
		params = append(params, cid)
	}
	ph := placeholders(len(ids))

	return r.db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			fmt.Sprintf("UPDATE ideas SET color = ? WHERE category_id IN (%s)", ph), params...); err != nil {
			return fmt.Errorf("failed to recolor ideas: %w", err)
		}
		if _, err := tx.Exec(
			fmt.Sprintf("UPDATE categories SET color = ? WHERE id IN (%s)", ph), params...); err != nil {
			return fmt.Errorf("failed to recolor categories: %w", err)
		}
		return nil
	})
}

// Delete removes a single category, reparenting its ideas to uncategorized
// first. Child categories are not touched; subtree policy lives in the
// service layer (DeleteSubtree).
func (r *CategoryRepository) Delete(id int64) error {
	return r.DeleteSubtree([]int64{id})
}

// DeleteSubtree removes a set of categories in one transaction. Every idea
// owned by one of them is moved to uncategorized before the rows go away,
// so no idea is ever lost.
func (r *CategoryRepository) DeleteSubtree(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	params := make([]interface{}, len(ids))
	for i, id := range ids {
		params[i] = id
	}
	ph := placeholders(len(ids))

	return r.db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			fmt.Sprintf("UPDATE ideas SET category_id = NULL WHERE category_id IN (%s)", ph), params...); err != nil {
			return fmt.Errorf("failed to reparent ideas: %w", err)
		}
		if _, err := tx.Exec(
			fmt.Sprintf("DELETE FROM categories WHERE id IN (%s)", ph), params...); err != nil {
			return fmt.Errorf("failed to delete categories: %w", err)
		}
		return nil
	})
}

// SaveOrder persists a drag-and-drop reorder: all positions and reparents
// land together or not at all.
func (r *CategoryRepository) SaveOrder(updates []OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare("UPDATE categories SET sort_order = ?, parent_id = ? WHERE id = ?")
		if err != nil {
			return fmt.Errorf("failed to prepare order update: %w", err)
		}
		defer stmt.Close()

		for _, u := range updates {
			if _, err := stmt.Exec(u.SortOrder, u.ParentID, u.ID); err != nil {
				return fmt.Errorf("failed to update order of category %d: %w", u.ID, err)
			}
		}
		return nil
	})
}

// BuildTree converts the flat list into a parent-to-children forest.
// Categories whose parent id resolves to no existing category become roots:
// dangling references must not hide data.
func (r *CategoryRepository) BuildTree() ([]*Category, error) {
	cats, err := r.List()
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	var roots []*Category
	for _, c := range cats {
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				parent.Children = append(parent.Children, c)
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots, nil
}

func scanCategories(rows *sql.Rows) ([]*Category, error) {
	var cats []*Category
	for rows.Next() {
		var c Category
		var parentID sql.NullInt64

		if err := rows.Scan(&c.ID, &c.Name, &parentID, &c.Color, &c.SortOrder, &c.PresetTags); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if parentID.Valid {
			c.ParentID = &parentID.Int64
		}
		cats = append(cats, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return cats, nil
}
