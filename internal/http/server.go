// Package http exposes the ledger over a JSON API. Handlers serialize
// every operation through one mutex: the ledger is a single-actor
// aggregate and each mutation is a synchronous run-to-completion step
// followed by a write-through save.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"lumo/internal/cache"
	"lumo/internal/ledger"
	"lumo/internal/services"
	"lumo/internal/storage"
)

type Server struct {
	http.Server

	mu     sync.Mutex
	ledger *ledger.Ledger
	store  storage.Store
	engine *services.RecurrenceEngine

	// publisher receives user-created transactions; materialized ones
	// are published by the engine itself. Nil disables publishing.
	publisher services.EventPublisher

	statsCache  *cache.LRUCache[ledger.MonthStats]
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

func NewServer(addr string, lgr *ledger.Ledger, store storage.Store, engine *services.RecurrenceEngine, publisher services.EventPublisher) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:      lgr,
		store:       store,
		engine:      engine,
		publisher:   publisher,
		statsCache:  cache.NewLRUCache[ledger.MonthStats](100, 5*time.Minute),
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/accounts", s.withMiddleware(s.handleListAccounts))
	mux.HandleFunc("POST /api/accounts", s.withMiddleware(s.handleSaveAccount))
	mux.HandleFunc("DELETE /api/accounts/{id}", s.withMiddleware(s.handleDeleteAccount))

	mux.HandleFunc("GET /api/transactions", s.withMiddleware(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.handleSaveTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withMiddleware(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/recurring", s.withMiddleware(s.handleListRecurring))
	mux.HandleFunc("POST /api/recurring", s.withMiddleware(s.handleSaveRecurring))
	mux.HandleFunc("DELETE /api/recurring/{id}", s.withMiddleware(s.handleDeleteRecurring))

	mux.HandleFunc("GET /api/categories", s.withMiddleware(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.withMiddleware(s.handleAddCategory))
	mux.HandleFunc("POST /api/categories/rename", s.withMiddleware(s.handleRenameCategory))
	mux.HandleFunc("POST /api/categories/delete", s.withMiddleware(s.handleRemoveCategory))

	mux.HandleFunc("GET /api/stats", s.withMiddleware(s.handleStats))

	mux.HandleFunc("GET /api/settings", s.withMiddleware(s.handleGetSettings))
	mux.HandleFunc("POST /api/settings", s.withMiddleware(s.handleUpdateSettings))

	mux.HandleFunc("GET /backup", s.withMiddleware(s.handleExportBackup))
	mux.HandleFunc("POST /backup", s.withMiddleware(s.handleImportBackup))

	return s
}

// persist performs the write-through save after a mutation. A failed
// save leaves the in-memory state authoritative and is only logged.
func (s *Server) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.ledger.State()); err != nil {
		slog.ErrorContext(ctx, "Failed to persist state", "error", err)
	}
}

// invalidateStats drops memoized monthly summaries after any mutation.
func (s *Server) invalidateStats() {
	s.statsCache.Purge()
}

// Shutdown stops the HTTP server and the rate limiter's cleanup
// goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
