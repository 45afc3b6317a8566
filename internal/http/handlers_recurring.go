package http

import (
	"log/slog"
	"net/http"

	"lumo/internal/core"
	"lumo/internal/ledger"
)

type recurringRequest struct {
	ID         string `json:"id"`
	Desc       string `json:"desc"`
	Amount     string `json:"amount"`
	Type       string `json:"type"`
	Category   string `json:"category"`
	AccountID  string `json:"accountId"`
	NextDate   string `json:"nextDate"`
	FreqMonths int    `json:"freq"`
	Active     bool   `json:"active"`
}

func (s *Server) handleListRecurring(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rules := s.ledger.Recurring()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, rules)
}

// handleSaveRecurring stores the rule and immediately runs a catch-up
// pass, so a rule saved with a past next date materializes its overdue
// occurrences right away.
func (s *Server) handleSaveRecurring(w http.ResponseWriter, r *http.Request) {
	var req recurringRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	nextDate, err := core.ParseDate(req.NextDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, core.ErrInvalidDate.Error())
		return
	}
	rule := core.RecurringRule{
		ID:          req.ID,
		Description: sanitizeInput(req.Desc),
		Amount:      core.Money{Cents: cents},
		Kind:        core.TxKind(req.Type),
		Category:    sanitizeInput(req.Category),
		AccountID:   req.AccountID,
		NextDate:    nextDate,
		FreqMonths:  req.FreqMonths,
		Active:      req.Active,
	}
	if rule.ID == "" {
		rule.ID = ledger.NewID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.SaveRecurring(rule); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	created := s.engine.CatchUp(r.Context(), s.ledger, core.Today())
	if created > 0 {
		slog.InfoContext(r.Context(), "Catch-up after rule save",
			"rule_id", rule.ID,
			"transactions_created", created)
	}
	s.invalidateStats()
	s.persist(r.Context())

	// The catch-up pass may have advanced NextDate; return the stored rule.
	for _, stored := range s.ledger.Recurring() {
		if stored.ID == rule.ID {
			rule = stored
			break
		}
	}
	writeJSON(w, http.StatusOK, rule)
}

func (s *Server) handleDeleteRecurring(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.DeleteRecurring(id)
	s.persist(r.Context())

	w.WriteHeader(http.StatusNoContent)
}
