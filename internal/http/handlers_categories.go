package http

import (
	"net/http"
	"strings"
)

type categoryRequest struct {
	Name string `json:"name"`
	Old  string `json:"old"`
	New  string `json:"new"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	cats := s.ledger.Categories()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := sanitizeInput(req.Name)
	if name == "" {
		writeError(w, http.StatusUnprocessableEntity, "empty category name")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.AddCategory(name)
	s.persist(r.Context())
	writeJSON(w, http.StatusOK, s.ledger.Categories())
}

func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	old := strings.TrimSpace(req.Old)
	newName := sanitizeInput(req.New)
	if old == "" || newName == "" {
		writeError(w, http.StatusUnprocessableEntity, "both old and new names are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.RenameCategory(old, newName)
	s.invalidateStats()
	s.persist(r.Context())
	writeJSON(w, http.StatusOK, s.ledger.Categories())
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusUnprocessableEntity, "empty category name")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.RemoveCategory(name)
	s.invalidateStats()
	s.persist(r.Context())
	writeJSON(w, http.StatusOK, s.ledger.Categories())
}
