package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ideastash/internal/version"
)

func (s *Server) registerRoutes() {
	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/ideas", func(r chi.Router) {
			r.Get("/", s.handleListIdeas)
			r.Post("/", s.handleCreateIdea)
			r.Get("/count", s.handleCountIdeas)

			r.Post("/favorite", s.handleBatchFavorite)
			r.Post("/pinned", s.handleBatchPinned)
			r.Post("/lock", s.handleBatchLock)
			r.Post("/move", s.handleBatchMove)
			r.Post("/delete", s.handleBatchSoftDelete)
			r.Post("/restore", s.handleBatchRestore)
			r.Post("/purge", s.handleBatchPurge)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetIdea)
				r.Put("/", s.handleUpdateIdea)
				r.Delete("/", s.handleDeleteIdea)
				r.Post("/rating", s.handleSetRating)
				r.Post("/color", s.handleSetIdeaColor)
				r.Get("/tags", s.handleIdeaTags)
				r.Post("/tags", s.handleAddIdeaTags)
				r.Delete("/tags/{name}", s.handleRemoveIdeaTag)
			})
		})

		r.Post("/trash/empty", s.handleEmptyTrash)
		r.Get("/tags", s.handleListTags)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Post("/", s.handleCreateCategory)
			r.Get("/tree", s.handleCategoryTree)
			r.Put("/order", s.handleSaveOrder)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", s.handleRenameCategory)
				r.Delete("/", s.handleDeleteCategory)
				r.Post("/color", s.handleSetCategoryColor)
				r.Get("/preset-tags", s.handleGetPresetTags)
				r.Put("/preset-tags", s.handleSetPresetTags)
			})
		})

		r.Get("/stats/sidebar", s.handleSidebarCounts)
		r.Get("/stats/facets", s.handleFacetStats)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":  "ok",
		"version": version.Version,
	}, http.StatusOK)
}
