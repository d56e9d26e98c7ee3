package api

import (
	"net/http"
	"strconv"

	"ideastash/internal/storage"
)

func (s *Server) handleSidebarCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.stats.SidebarCounts()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, counts, http.StatusOK)
}

func (s *Server) handleFacetStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var categoryID *int64
	scope := storage.Scope(q.Get("scope"))
	if raw := q.Get("category"); raw != "" {
		scope = storage.ScopeCategory
		if raw != "none" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				badRequest(w, "invalid category "+strconv.Quote(raw))
				return
			}
			categoryID = &id
		}
	}

	stats, err := s.stats.FacetStats(q.Get("q"), scope, categoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stats, http.StatusOK)
}
