package service

import (
	"fmt"

	"ideastash/internal/storage"
)

// StatsService exposes the aggregate counters that drive the sidebar and the
// facet filter panel.
type StatsService struct {
	ideas *storage.IdeaRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(ideas *storage.IdeaRepository) *StatsService {
	return &StatsService{ideas: ideas}
}

// SidebarCounts returns the per-view idea counts for the navigation sidebar.
func (s *StatsService) SidebarCounts() (*storage.SidebarCounts, error) {
	return s.ideas.SidebarCounts()
}

// FacetStats returns the available-option counts for each facet under the
// given scope and search.
func (s *StatsService) FacetStats(search string, scope storage.Scope, categoryID *int64) (*storage.FacetStats, error) {
	if scope == "" {
		scope = storage.ScopeAll
	}
	if !storage.ValidScope(scope) {
		return nil, &ValidationError{Field: "scope", Reason: fmt.Sprintf("unknown scope %q", scope)}
	}
	return s.ideas.FacetStats(search, scope, categoryID)
}
