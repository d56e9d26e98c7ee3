package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"ideastash/internal/storage"
)

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// queryInt parses an integer query parameter, returning def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return n, nil
}

// queryBool reports whether a query flag is set to a truthy value.
func queryBool(r *http.Request, name string) bool {
	switch strings.ToLower(r.URL.Query().Get(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// splitList parses a comma-separated query value into its non-empty parts.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// filterFromQuery builds a storage.Filter from list query parameters:
// scope, category (numeric id, or "none" for uncategorized), q, tag, and the
// comma-separated facet lists stars, colors, types, tags, dates.
func filterFromQuery(r *http.Request) (storage.Filter, error) {
	q := r.URL.Query()

	f := storage.Filter{
		Search:    q.Get("q"),
		Scope:     storage.Scope(q.Get("scope")),
		TagFilter: q.Get("tag"),
	}
	if f.Scope == "" {
		f.Scope = storage.ScopeAll
	}

	if raw := q.Get("category"); raw != "" {
		f.Scope = storage.ScopeCategory
		if raw != "none" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return f, fmt.Errorf("invalid category %q", raw)
			}
			f.CategoryID = &id
		}
	}

	c := &storage.Criteria{}
	for _, raw := range splitList(q.Get("stars")) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return f, fmt.Errorf("invalid star value %q", raw)
		}
		c.Stars = append(c.Stars, n)
	}
	c.Colors = splitList(q.Get("colors"))
	for _, raw := range splitList(q.Get("types")) {
		c.Types = append(c.Types, storage.ItemType(raw))
	}
	c.Tags = splitList(q.Get("tags"))
	for _, raw := range splitList(q.Get("dates")) {
		c.Dates = append(c.Dates, storage.DateBucket(raw))
	}
	if !c.Empty() {
		f.Criteria = c
	}

	return f, nil
}
