package http

import (
	"log/slog"
	"net/http"

	"lumo/internal/core"
	"lumo/internal/ledger"
)

type accountRequest struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Type                string `json:"type"`
	InitialBalanceCents int64  `json:"initialBalanceCents"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	accounts := s.ledger.Accounts()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) handleSaveAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acc := core.Account{
		ID:      req.ID,
		Name:    sanitizeInput(req.Name),
		Type:    core.AccountType(req.Type),
		Balance: core.Money{Cents: req.InitialBalanceCents},
	}
	if acc.ID == "" {
		acc.ID = ledger.NewID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.SaveAccount(acc); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.invalidateStats()
	s.persist(r.Context())

	saved, _ := s.ledger.Account(acc.ID)
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.DeleteAccount(id)
	s.invalidateStats()
	s.persist(r.Context())

	slog.InfoContext(r.Context(), "Account deleted with cascade", "account_id", id)
	w.WriteHeader(http.StatusNoContent)
}
