package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ideastash/internal/storage"
)

// ideaPayload is the request body for idea creation and full updates.
type ideaPayload struct {
	Title      string           `json:"title"`
	Content    *string          `json:"content"`
	Color      string           `json:"color"`
	CategoryID *int64           `json:"categoryId"`
	ItemType   storage.ItemType `json:"itemType"`
	DataBlob   []byte           `json:"dataBlob"`
	Tags       []string         `json:"tags"`
}

// idsPayload is the request body for batch operations.
type idsPayload struct {
	IDs        []int64 `json:"ids"`
	Value      bool    `json:"value"`
	CategoryID *int64  `json:"categoryId"`
}

// listResponse pairs a page of ideas with the total match count.
type listResponse struct {
	Ideas []*storage.Idea `json:"ideas"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
}

func (s *Server) handleListIdeas(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	page, err := queryInt(r, "page", 0)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	pageSize, err := queryInt(r, "pageSize", 0)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	ideas, err := s.ideas.List(f, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	total, err := s.ideas.Count(f)
	if err != nil {
		writeError(w, err)
		return
	}

	if ideas == nil {
		ideas = []*storage.Idea{}
	}
	writeJSON(w, listResponse{Ideas: ideas, Total: total, Page: page}, http.StatusOK)
}

func (s *Server) handleCountIdeas(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	total, err := s.ideas.Count(f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]int{"total": total}, http.StatusOK)
}

func (s *Server) handleGetIdea(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	idea, err := s.ideas.Get(id, queryBool(r, "blob"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, idea, http.StatusOK)
}

func (s *Server) handleCreateIdea(w http.ResponseWriter, r *http.Request) {
	var p ideaPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	idea, err := s.ideas.Create(storage.NewIdea{
		Title:      p.Title,
		Content:    p.Content,
		Color:      p.Color,
		CategoryID: p.CategoryID,
		ItemType:   p.ItemType,
		DataBlob:   p.DataBlob,
	}, p.Tags)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, idea, http.StatusCreated)
}

func (s *Server) handleUpdateIdea(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var p ideaPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	err = s.ideas.Update(id, storage.IdeaUpdate{
		Title:      p.Title,
		Content:    p.Content,
		Color:      p.Color,
		CategoryID: p.CategoryID,
		ItemType:   p.ItemType,
		DataBlob:   p.DataBlob,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	idea, err := s.ideas.Get(id, false)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, idea, http.StatusOK)
}

// handleDeleteIdea trashes an idea, or removes it permanently with
// ?permanent=true.
func (s *Server) handleDeleteIdea(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	// Single-entity delete distinguishes missing ids.
	if _, err := s.ideas.Get(id, false); err != nil {
		writeError(w, err)
		return
	}

	if queryBool(r, "permanent") {
		err = s.ideas.DeletePermanent([]int64{id})
	} else {
		err = s.ideas.SoftDelete([]int64{id})
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetRating(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var p struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := s.ideas.SetRating(id, p.Rating); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetIdeaColor(w http.ResponseWriter, r *http.Request) {
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

	if err := s.ideas.SetColor(id, p.Color); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBatchFavorite(w http.ResponseWriter, r *http.Request) {
	s.handleBatch(w, r, func(p idsPayload) error {
		return s.ideas.SetFavorite(p.IDs, p.Value)
	})
}

func (s *Server) handleBatchPinned(w http.ResponseWriter, r *http.Request) {
	s.handleBatch(w, r, func(p idsPayload) error {
		return s.ideas.SetPinned(p.IDs, p.Value)
	})
}

func (s *Server) handleBatchLock(w http.ResponseWriter, r *http.Request) {
	s.handleBatch(w, r, func(p idsPayload) error {
		return s.ideas.SetLocked(p.IDs, p.Value)
	})
}

func (s *Server) handleBatchMove(w http.ResponseWriter, r *http.Request) {
	s.handleBatch(w, r, func(p idsPayload) error {
		return s.ideas.MoveToCategory(p.IDs, p.CategoryID)
	})
}

func (s *Server) handleBatchSoftDelete(w http.ResponseWriter, r *http.Request) {
	s.handleBatch(w, r, func(p idsPayload) error {
		return s.ideas.SoftDelete(p.IDs)
	})
}

func (s *Server) handleBatchRestore(w http.ResponseWriter, r *http.Request) {
	s.handleBatch(w, r, func(p idsPayload) error {
		return s.ideas.Restore(p.IDs)
	})
}

func (s *Server) handleBatchPurge(w http.ResponseWriter, r *http.Request) {
	s.handleBatch(w, r, func(p idsPayload) error {
		return s.ideas.DeletePermanent(p.IDs)
	})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request, op func(idsPayload) error) {
	var p idsPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if len(p.IDs) == 0 {
		badRequest(w, "ids must not be empty")
		return
	}

	if err := op(p); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEmptyTrash(w http.ResponseWriter, r *http.Request) {
	n, err := s.ideas.EmptyTrash()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]int{"deleted": n}, http.StatusOK)
}

func (s *Server) handleIdeaTags(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if _, err := s.ideas.Get(id, false); err != nil {
		writeError(w, err)
		return
	}

	names, err := s.ideas.Tags(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, map[string][]string{"tags": names}, http.StatusOK)
}

func (s *Server) handleAddIdeaTags(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var p struct {
		Tags []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if _, err := s.ideas.Get(id, false); err != nil {
		writeError(w, err)
		return
	}

	if err := s.ideas.AddTags([]int64{id}, p.Tags); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveIdeaTag(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	name := chi.URLParam(r, "name")

	if err := s.ideas.RemoveTag([]int64{id}, name); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	names, err := s.ideas.AllTags()
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, map[string][]string{"tags": names}, http.StatusOK)
}
