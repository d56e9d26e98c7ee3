package storage

import (
	"fmt"
	"strings"
)

// ideaColumns is the non-blob projection. The blob is only loaded by
// Get(id, includeBlob=true) so list views stay cheap.
const ideaColumns = `i.id, i.title, i.content, i.color, i.is_pinned, i.is_favorite,
	       i.is_locked, i.rating, i.created_at, i.updated_at, i.category_id,
	       i.is_deleted, i.item_type, i.content_hash`

// dateCondition returns the SQL predicate for a creation-date bucket, using
// SQLite local-calendar date math so "today" follows the user's clock.
func dateCondition(b DateBucket) (string, bool) {
	switch b {
	case DateToday:
		return "date(i.created_at,'localtime') = date('now','localtime')", true
	case DateYesterday:
		return "date(i.created_at,'localtime') = date('now','-1 day','localtime')", true
	case DateWeek:
		return "date(i.created_at,'localtime') >= date('now','-6 days','localtime')", true
	case DateMonth:
		return "strftime('%Y-%m',i.created_at,'localtime') = strftime('%Y-%m','now','localtime')", true
	}
	return "", false
}

// placeholders builds "?,?,?" for IN lists.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// buildIdeaQuery composes the dynamic predicate for List and Count. The tag
// join is always present so search can reach tag names; DISTINCT de-dupes
// the rows it introduces.
func buildIdeaQuery(f Filter, countOnly bool) (string, []interface{}) {
	var q strings.Builder
	var params []interface{}

	if countOnly {
		q.WriteString("SELECT COUNT(DISTINCT i.id) FROM ideas i ")
	} else {
		fmt.Fprintf(&q, "SELECT DISTINCT %s FROM ideas i ", ideaColumns)
	}

	q.WriteString("LEFT JOIN idea_tags it ON i.id = it.idea_id ")
	q.WriteString("LEFT JOIN tags t ON it.tag_id = t.id WHERE 1=1")

	// Scope. Trash is the only view that shows soft-deleted rows.
	if f.Scope == ScopeTrash {
		q.WriteString(" AND i.is_deleted = 1")
	} else {
		q.WriteString(" AND (i.is_deleted = 0 OR i.is_deleted IS NULL)")
	}

	switch f.Scope {
	case ScopeCategory:
		if f.CategoryID == nil {
			q.WriteString(" AND i.category_id IS NULL")
		} else {
			q.WriteString(" AND i.category_id = ?")
			params = append(params, *f.CategoryID)
		}
	case ScopeToday:
		q.WriteString(" AND date(i.updated_at,'localtime') = date('now','localtime')")
	case ScopeUntagged:
		q.WriteString(" AND i.id NOT IN (SELECT idea_id FROM idea_tags)")
	case ScopeBookmark:
		q.WriteString(" AND i.is_favorite = 1")
	}

	if f.Search != "" {
		q.WriteString(" AND (i.title LIKE ? OR i.content LIKE ? OR t.name LIKE ?)")
		like := "%" + f.Search + "%"
		params = append(params, like, like, like)
	}

	if f.TagFilter != "" {
		q.WriteString(" AND i.id IN (SELECT idea_id FROM idea_tags WHERE tag_id = (SELECT id FROM tags WHERE name = ?))")
		params = append(params, f.TagFilter)
	}

	if !f.Criteria.Empty() {
		c := f.Criteria

		if len(c.Stars) > 0 {
			fmt.Fprintf(&q, " AND i.rating IN (%s)", placeholders(len(c.Stars)))
			for _, s := range c.Stars {
				params = append(params, s)
			}
		}
		if len(c.Colors) > 0 {
			fmt.Fprintf(&q, " AND i.color IN (%s)", placeholders(len(c.Colors)))
			for _, col := range c.Colors {
				params = append(params, col)
			}
		}
		if len(c.Types) > 0 {
			fmt.Fprintf(&q, " AND i.item_type IN (%s)", placeholders(len(c.Types)))
			for _, ty := range c.Types {
				params = append(params, string(ty))
			}
		}
		if len(c.Tags) > 0 {
			fmt.Fprintf(&q,
				" AND i.id IN (SELECT idea_id FROM idea_tags JOIN tags ON idea_tags.tag_id = tags.id WHERE tags.name IN (%s))",
				placeholders(len(c.Tags)))
			for _, name := range c.Tags {
				params = append(params, name)
			}
		}
		if len(c.Dates) > 0 {
			var conds []string
			for _, b := range c.Dates {
				if cond, ok := dateCondition(b); ok {
					conds = append(conds, cond)
				}
			}
			if len(conds) > 0 {
				fmt.Fprintf(&q, " AND (%s)", strings.Join(conds, " OR "))
			}
		}
	}

	return q.String(), params
}

// buildStatsWhere composes the base predicate used by FacetStats: the scope
// and search, without the criteria facets, so the panel reflects available
// options. Search here covers title and content only.
func buildStatsWhere(search string, scope Scope, categoryID *int64) (string, []interface{}) {
	clauses := []string{"1=1"}
	var params []interface{}

	if scope == ScopeTrash {
		clauses = append(clauses, "i.is_deleted = 1")
	} else {
		clauses = append(clauses, "(i.is_deleted = 0 OR i.is_deleted IS NULL)")
	}

	switch scope {
	case ScopeCategory:
		if categoryID == nil {
			clauses = append(clauses, "i.category_id IS NULL")
		} else {
			clauses = append(clauses, "i.category_id = ?")
			params = append(params, *categoryID)
		}
	case ScopeToday:
		clauses = append(clauses, "date(i.updated_at,'localtime') = date('now','localtime')")
	case ScopeUntagged:
		clauses = append(clauses, "i.id NOT IN (SELECT idea_id FROM idea_tags)")
	case ScopeBookmark:
		clauses = append(clauses, "i.is_favorite = 1")
	}

	if search != "" {
		clauses = append(clauses, "(i.title LIKE ? OR i.content LIKE ?)")
		like := "%" + search + "%"
		params = append(params, like, like)
	}

	return strings.Join(clauses, " AND "), params
}
