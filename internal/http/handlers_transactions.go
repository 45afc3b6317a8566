package http

import (
	"log/slog"
	"net/http"

	"lumo/internal/core"
	"lumo/internal/ledger"
)

type transactionRequest struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Amount       string `json:"amount"`
	Date         string `json:"date"`
	Desc         string `json:"desc"`
	Category     string `json:"category"`
	AccountID    string `json:"accountId"`
	FromAccount  string `json:"fromAccount"`
	ToAccount    string `json:"toAccount"`
	Installments int    `json:"installments"`
}

// toTransaction builds the domain record through the per-kind
// constructors so a request can never smuggle fields from the wrong
// variant.
func (req transactionRequest) toTransaction() (core.Transaction, error) {
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, core.ErrInvalidDate
	}
	id := req.ID
	if id == "" {
		id = ledger.NewID()
	}
	amount := core.Money{Cents: cents}
	desc := sanitizeInput(req.Desc)
	category := sanitizeInput(req.Category)

	switch core.TxKind(req.Type) {
	case core.KindExpense:
		return core.NewExpense(id, amount, date, desc, category, req.AccountID, req.Installments), nil
	case core.KindIncome:
		return core.NewIncome(id, amount, date, desc, category, req.AccountID), nil
	case core.KindTransfer:
		return core.NewTransfer(id, amount, date, req.FromAccount, req.ToAccount), nil
	default:
		return core.Transaction{}, core.ErrInvalidKind
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	txs := s.ledger.Transactions()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleSaveTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tx, err := req.toTransaction()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.ledger.State().Transactions)
	if err := s.ledger.SaveTransaction(tx); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.invalidateStats()
	s.persist(r.Context())

	// Events mirror stored records: an installment expense yields one
	// event per child, each with the split amount, never the pre-split
	// parent. An in-place edit appends nothing, so the edited record is
	// published directly.
	if s.publisher != nil {
		created := s.ledger.State().Transactions[before:]
		if len(created) == 0 {
			created = []core.Transaction{tx}
		}
		for _, stored := range created {
			if err := s.publisher.PublishTransaction(r.Context(), stored); err != nil {
				slog.WarnContext(r.Context(), "Failed to publish transaction event",
					"transaction_id", stored.ID,
					"error", err)
			}
		}
	}

	saved, _ := s.ledger.Transaction(tx.ID)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.DeleteTransaction(id)
	s.invalidateStats()
	s.persist(r.Context())

	w.WriteHeader(http.StatusNoContent)
}
