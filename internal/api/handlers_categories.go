package api

import (
	"encoding/json"
	"net/http"

	"ideastash/internal/storage"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.cats.List()
	if err != nil {
		writeError(w, err)
		return
	}
	if cats == nil {
		cats = []*storage.Category{}
	}
	writeJSON(w, cats, http.StatusOK)
}

func (s *Server) handleCategoryTree(w http.ResponseWriter, r *http.Request) {
	roots, err := s.cats.Tree()
	if err != nil {
		writeError(w, err)
		return
	}
	if roots == nil {
		roots = []*storage.Category{}
	}
	writeJSON(w, roots, http.StatusOK)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var p struct {
		Name     string `json:"name"`
		ParentID *int64 `json:"parentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	cat, err := s.cats.Create(p.Name, p.ParentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, cat, http.StatusCreated)
}

func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var p struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := s.cats.Rename(id, p.Name); err != nil {
		writeError(w, err)
		return
	}

	cat, err := s.cats.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, cat, http.StatusOK)
}

// handleDeleteCategory deletes the category and its whole subtree; the ideas
// inside become uncategorized.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.cats.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetCategoryColor recolors the subtree. An empty color requests a
// random readable one; the chosen color is returned either way.
func (s *Server) handleSetCategoryColor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var p struct {
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	color := p.Color
	if color == "" {
		color, err = s.cats.SetRandomColor(id)
	} else {
		err = s.cats.SetColor(id, color)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"color": color}, http.StatusOK)
}

func (s *Server) handleSaveOrder(w http.ResponseWriter, r *http.Request) {
	var p struct {
		Updates []storage.OrderUpdate `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := s.cats.SaveOrder(p.Updates); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetPresetTags(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	tags, err := s.cats.PresetTags(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"presetTags": tags}, http.StatusOK)
}

func (s *Server) handleSetPresetTags(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var p struct {
		PresetTags string `json:"presetTags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := s.cats.SetPresetTags(id, p.PresetTags); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
