package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"lumo/internal/core"
	"lumo/internal/ledger"
)

// handleExportBackup dumps the whole state blob as a JSON attachment.
func (s *Server) handleExportBackup(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	raw, err := json.MarshalIndent(s.ledger.State(), "", "  ")
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode backup")
		return
	}
	filename := "lumo_backup_" + core.Today().String() + ".json"
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(raw)
}

// handleImportBackup replaces the state wholesale. The only validation
// is a minimal shape check: the blob must carry accounts and
// transactions keys. No schema versioning, no merge.
func (s *Server) handleImportBackup(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 8<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read backup")
		return
	}

	var shape map[string]json.RawMessage
	if err := json.Unmarshal(raw, &shape); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid backup file")
		return
	}
	if _, ok := shape["accounts"]; !ok {
		writeError(w, http.StatusUnprocessableEntity, "backup missing accounts")
		return
	}
	if _, ok := shape["transactions"]; !ok {
		writeError(w, http.StatusUnprocessableEntity, "backup missing transactions")
		return
	}

	var state core.State
	if err := json.Unmarshal(raw, &state); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid backup file")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = ledger.New(&state)
	s.invalidateStats()
	s.persist(r.Context())

	slog.InfoContext(r.Context(), "State restored from backup",
		"accounts", len(state.Accounts),
		"transactions", len(state.Transactions))
	writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

type settingsRequest struct {
	Theme string `json:"theme"`
	PIN   string `json:"pin"`
}

type settingsResponse struct {
	Theme  string `json:"theme"`
	PINSet bool   `json:"pinSet"`
}

func validPIN(pin string) bool {
	if len(pin) < 4 || len(pin) > 6 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	state := s.ledger.State()
	resp := settingsResponse{Theme: state.Settings.Theme, PINSet: state.PIN != ""}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// handleUpdateSettings updates the theme and, optionally, the lock PIN.
// The PIN is stored as entered (at least four digits); the lock screen
// itself is a client concern.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.ledger.State()
	if req.Theme != "" {
		if req.Theme != "light" && req.Theme != "dark" {
			writeError(w, http.StatusUnprocessableEntity, "theme must be light or dark")
			return
		}
		state.Settings.Theme = req.Theme
	}
	if req.PIN != "" {
		pin := strings.TrimSpace(req.PIN)
		if !validPIN(pin) {
			writeError(w, http.StatusUnprocessableEntity, "pin must be 4 to 6 digits")
			return
		}
		state.PIN = pin
	}
	s.persist(r.Context())
	writeJSON(w, http.StatusOK, settingsResponse{Theme: state.Settings.Theme, PINSet: state.PIN != ""})
}
