package storage

import (
	"database/sql"
	"fmt"
)

// Field names an idea column that generic patch operations may touch.
// Anything outside the allow-list is rejected before SQL is built.
type Field string

const (
	FieldPinned   Field = "is_pinned"
	FieldFavorite Field = "is_favorite"
	FieldLocked   Field = "is_locked"
	FieldDeleted  Field = "is_deleted"
	FieldRating   Field = "rating"
	FieldColor    Field = "color"
	FieldTitle    Field = "title"
	FieldContent  Field = "content"
	FieldCategory Field = "category_id"
)

// mutableFields maps allow-listed fields to their columns.
var mutableFields = map[Field]string{
	FieldPinned:   "is_pinned",
	FieldFavorite: "is_favorite",
	FieldLocked:   "is_locked",
	FieldDeleted:  "is_deleted",
	FieldRating:   "rating",
	FieldColor:    "color",
	FieldTitle:    "title",
	FieldContent:  "content",
	FieldCategory: "category_id",
}

// toggleFields are the boolean columns ToggleField may flip.
var toggleFields = map[Field]bool{
	FieldPinned:   true,
	FieldFavorite: true,
	FieldLocked:   true,
	FieldDeleted:  true,
}

// NewIdea carries the fields for idea creation.
type NewIdea struct {
	Title       string
	Content     *string
	Color       string
	CategoryID  *int64
	ItemType    ItemType
	DataBlob    []byte
	ContentHash *string
}

// IdeaUpdate carries the fields for a full idea update.
type IdeaUpdate struct {
	Title      string
	Content    *string
	Color      string
	CategoryID *int64
	ItemType   ItemType
	DataBlob   []byte
}

// IdeaRepository provides queries and mutations over the ideas table.
type IdeaRepository struct {
	db *DB
}

// NewIdeaRepository creates a new idea repository.
func NewIdeaRepository(db *DB) *IdeaRepository {
	return &IdeaRepository{db: db}
}

// List returns the ideas matching f, ordered pinned-first then most
// recently updated (trash drops the pin ordering). Pagination applies only
// when both page and pageSize are positive; page is 1-indexed.
func (r *IdeaRepository) List(f Filter, page, pageSize int) ([]*Idea, error) {
	q, params := buildIdeaQuery(f, false)

	if f.Scope == ScopeTrash {
		q += " ORDER BY i.updated_at DESC"
	} else {
		q += " ORDER BY i.is_pinned DESC, i.updated_at DESC"
	}

	if page > 0 && pageSize > 0 {
		q += " LIMIT ? OFFSET ?"
		params = append(params, pageSize, (page-1)*pageSize)
	}

	rows, err := r.db.Query(q, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	defer rows.Close()

	return scanIdeas(rows)
}

// Count returns the number of distinct ideas matching f.
func (r *IdeaRepository) Count(f Filter) (int, error) {
	q, params := buildIdeaQuery(f, true)

	var n int
	if err := r.db.QueryRow(q, params...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count ideas: %w", err)
	}
	return n, nil
}

// Get retrieves a single idea. The blob column is only read when
// includeBlob is set.
func (r *IdeaRepository) Get(id int64, includeBlob bool) (*Idea, error) {
	q := fmt.Sprintf("SELECT %s FROM ideas i WHERE i.id = ?", ideaColumns)

	row := r.db.QueryRow(q, id)
	idea, err := scanIdea(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get idea: %w", err)
	}

	if includeBlob {
		var data []byte
		if err := r.db.QueryRow("SELECT data_blob FROM ideas WHERE id = ?", id).Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to load idea blob: %w", err)
		}
		idea.DataBlob = data
	}

	return idea, nil
}

// Add inserts a new idea and returns its id.
func (r *IdeaRepository) Add(p NewIdea) (int64, error) {
	if p.ItemType == "" {
		p.ItemType = ItemText
	}
	ts := now()

	res, err := r.db.Exec(`
		INSERT INTO ideas (title, content, color, category_id, item_type, data_blob, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Title, p.Content, p.Color, p.CategoryID, string(p.ItemType), p.DataBlob, p.ContentHash, ts, ts)
	if err != nil {
		return 0, fmt.Errorf("failed to insert idea: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted idea id: %w", err)
	}
	return id, nil
}

// Update replaces the content-bearing fields of an idea and bumps
// updated_at. Returns ErrNotFound when the id does not exist.
func (r *IdeaRepository) Update(id int64, p IdeaUpdate) error {
	res, err := r.db.Exec(`
		UPDATE ideas
		SET title = ?, content = ?, color = ?, category_id = ?, item_type = ?, data_blob = ?, updated_at = ?
		WHERE id = ?
	`, p.Title, p.Content, p.Color, p.CategoryID, string(p.ItemType), p.DataBlob, now(), id)
	if err != nil {
		return fmt.Errorf("failed to update idea: %w", err)
	}

	return requireRow(res)
}

// UpdateField patches a single allow-listed column.
func (r *IdeaRepository) UpdateField(id int64, field Field, value interface{}) error {
	col, ok := mutableFields[field]
	if !ok {
		return &InvalidFieldError{Field: string(field)}
	}

	res, err := r.db.Exec(fmt.Sprintf("UPDATE ideas SET %s = ? WHERE id = ?", col), value, id)
	if err != nil {
		return fmt.Errorf("failed to update idea field %s: %w", col, err)
	}

	return requireRow(res)
}

// ToggleField flips a boolean allow-listed column.
func (r *IdeaRepository) ToggleField(id int64, field Field) error {
	col, ok := mutableFields[field]
	if !ok || !toggleFields[field] {
		return &InvalidFieldError{Field: string(field)}
	}

	res, err := r.db.Exec(fmt.Sprintf("UPDATE ideas SET %s = NOT %s WHERE id = ?", col, col), id)
	if err != nil {
		return fmt.Errorf("failed to toggle idea field %s: %w", col, err)
	}

	return requireRow(res)
}

// SetLocked sets the lock flag on a batch of ideas. Missing ids are
// skipped.
func (r *IdeaRepository) SetLocked(ids []int64, locked bool) error {
	if len(ids) == 0 {
		return nil
	}

	params := make([]interface{}, 0, len(ids)+1)
	params = append(params, boolToInt(locked))
	for _, id := range ids {
		params = append(params, id)
	}

	_, err := r.db.Exec(
		fmt.Sprintf("UPDATE ideas SET is_locked = ? WHERE id IN (%s)", placeholders(len(ids))),
		params...)
	if err != nil {
		return fmt.Errorf("failed to set lock state: %w", err)
	}
	return nil
}

// LockStatus returns the lock flag for each existing id in ids.
func (r *IdeaRepository) LockStatus(ids []int64) (map[int64]bool, error) {
	status := make(map[int64]bool)
	if len(ids) == 0 {
		return status, nil
	}

	params := make([]interface{}, len(ids))
	for i, id := range ids {
		params[i] = id
	}

	rows, err := r.db.Query(
		fmt.Sprintf("SELECT id, is_locked FROM ideas WHERE id IN (%s)", placeholders(len(ids))),
		params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lock status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var locked bool
		if err := rows.Scan(&id, &locked); err != nil {
			return nil, fmt.Errorf("failed to scan lock status: %w", err)
		}
		status[id] = locked
	}

	return status, rows.Err()
}

// DeletePermanent removes an idea and its tag associations for good.
func (r *IdeaRepository) DeletePermanent(id int64) error {
	return r.db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM ideas WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete idea: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM idea_tags WHERE idea_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete idea tags: %w", err)
		}
		return nil
	})
}

// TrashIDs returns the ids of all soft-deleted ideas.
func (r *IdeaRepository) TrashIDs() ([]int64, error) {
	rows, err := r.db.Query("SELECT id FROM ideas WHERE is_deleted = 1")
	if err != nil {
		return nil, fmt.Errorf("failed to list trash: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan trash id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindByHash looks up an idea by content hash for duplicate-capture
// suppression.
func (r *IdeaRepository) FindByHash(hash string) (int64, bool, error) {
	var id int64
	err := r.db.QueryRow("SELECT id FROM ideas WHERE content_hash = ?", hash).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to find idea by hash: %w", err)
	}
	return id, true, nil
}

// SidebarCounts computes the independently scoped sidebar counters.
func (r *IdeaRepository) SidebarCounts() (*SidebarCounts, error) {
	counts := &SidebarCounts{Categories: make(map[int64]int)}

	singles := []struct {
		dst   *int
		where string
	}{
		{&counts.All, "is_deleted = 0 OR is_deleted IS NULL"},
		{&counts.Today, "(is_deleted = 0 OR is_deleted IS NULL) AND date(updated_at,'localtime') = date('now','localtime')"},
		{&counts.Uncategorized, "(is_deleted = 0 OR is_deleted IS NULL) AND category_id IS NULL"},
		{&counts.Untagged, "(is_deleted = 0 OR is_deleted IS NULL) AND id NOT IN (SELECT idea_id FROM idea_tags)"},
		{&counts.Bookmark, "(is_deleted = 0 OR is_deleted IS NULL) AND is_favorite = 1"},
		{&counts.Trash, "is_deleted = 1"},
	}

	for _, s := range singles {
		if err := r.db.QueryRow("SELECT COUNT(*) FROM ideas WHERE " + s.where).Scan(s.dst); err != nil {
			return nil, fmt.Errorf("failed to compute sidebar count: %w", err)
		}
	}

	rows, err := r.db.Query(`
		SELECT category_id, COUNT(*) FROM ideas
		WHERE (is_deleted = 0 OR is_deleted IS NULL) AND category_id IS NOT NULL
		GROUP BY category_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute category counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var catID int64
		var n int
		if err := rows.Scan(&catID, &n); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts.Categories[catID] = n
	}

	return counts, rows.Err()
}

// FacetStats computes grouped counts for every facet under the given scope
// and search, so the filter panel can show the options that are actually
// available.
func (r *IdeaRepository) FacetStats(search string, scope Scope, categoryID *int64) (*FacetStats, error) {
	where, params := buildStatsWhere(search, scope, categoryID)

	stats := &FacetStats{
		Stars:  make(map[int]int),
		Colors: make(map[string]int),
		Types:  make(map[ItemType]int),
		Dates:  make(map[DateBucket]int),
	}

	if err := r.groupCount("SELECT i.rating, COUNT(*) FROM ideas i WHERE "+where+" GROUP BY i.rating", params,
		func(rows *sql.Rows) error {
			var rating, n int
			if err := rows.Scan(&rating, &n); err != nil {
				return err
			}
			stats.Stars[rating] = n
			return nil
		}); err != nil {
		return nil, err
	}

	if err := r.groupCount("SELECT i.color, COUNT(*) FROM ideas i WHERE "+where+" GROUP BY i.color", params,
		func(rows *sql.Rows) error {
			var color string
			var n int
			if err := rows.Scan(&color, &n); err != nil {
				return err
			}
			stats.Colors[color] = n
			return nil
		}); err != nil {
		return nil, err
	}

	if err := r.groupCount("SELECT i.item_type, COUNT(*) FROM ideas i WHERE "+where+" GROUP BY i.item_type", params,
		func(rows *sql.Rows) error {
			var t string
			var n int
			if err := rows.Scan(&t, &n); err != nil {
				return err
			}
			stats.Types[ItemType(t)] = n
			return nil
		}); err != nil {
		return nil, err
	}

	tagQuery := fmt.Sprintf(`
		SELECT t.name, COUNT(it.idea_id) AS cnt
		FROM tags t
		JOIN idea_tags it ON t.id = it.tag_id
		JOIN ideas i ON it.idea_id = i.id
		WHERE %s
		GROUP BY t.id
		ORDER BY cnt DESC
	`, where)
	if err := r.groupCount(tagQuery, params, func(rows *sql.Rows) error {
		var tc TagCount
		if err := rows.Scan(&tc.Name, &tc.Count); err != nil {
			return err
		}
		stats.Tags = append(stats.Tags, tc)
		return nil
	}); err != nil {
		return nil, err
	}

	for _, bucket := range []DateBucket{DateToday, DateYesterday, DateWeek, DateMonth} {
		cond, _ := dateCondition(bucket)
		var n int
		q := fmt.Sprintf("SELECT COUNT(*) FROM ideas i WHERE %s AND %s", where, cond)
		if err := r.db.QueryRow(q, params...).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to compute date bucket %s: %w", bucket, err)
		}
		stats.Dates[bucket] = n
	}

	return stats, nil
}

func (r *IdeaRepository) groupCount(query string, params []interface{}, scan func(*sql.Rows) error) error {
	rows, err := r.db.Query(query, params...)
	if err != nil {
		return fmt.Errorf("failed to compute facet stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("failed to scan facet stats: %w", err)
		}
	}
	return rows.Err()
}

// scanIdea scans a single row in ideaColumns order.
func scanIdea(scan func(...interface{}) error) (*Idea, error) {
	var idea Idea
	var content, hash sql.NullString
	var categoryID sql.NullInt64
	var deleted sql.NullBool
	var createdAt, updatedAt string
	var itemType string

	err := scan(
		&idea.ID, &idea.Title, &content, &idea.Color, &idea.IsPinned,
		&idea.IsFavorite, &idea.IsLocked, &idea.Rating, &createdAt,
		&updatedAt, &categoryID, &deleted, &itemType, &hash,
	)
	if err != nil {
		return nil, err
	}

	if content.Valid {
		idea.Content = &content.String
	}
	if hash.Valid {
		idea.ContentHash = &hash.String
	}
	if categoryID.Valid {
		idea.CategoryID = &categoryID.Int64
	}
	idea.IsDeleted = deleted.Valid && deleted.Bool
	idea.ItemType = ItemType(itemType)

	if idea.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if idea.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &idea, nil
}

func scanIdeas(rows *sql.Rows) ([]*Idea, error) {
	var ideas []*Idea
	for rows.Next() {
		idea, err := scanIdea(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ideas: %w", err)
	}
	return ideas, nil
}

// requireRow converts a zero-rows-affected result into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
