package http

import (
	"log/slog"
	"net/http"
	"strconv"
)

func (s *Server) statsKey(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)
	key := s.statsKey(year, month)

	// Lookup, compute and insert all happen under the ledger lock.
	// Mutations purge the cache while holding the same lock, so a purge
	// can never land between computing a summary and caching it; a stale
	// summary would otherwise outlive the write that purged it.
	s.mu.Lock()
	stats, ok := s.statsCache.Get(key)
	if !ok {
		stats = s.ledger.Stats(year, month)
		s.statsCache.Set(key, stats)
	} else {
		slog.DebugContext(r.Context(), "Stats cache hit", "year", year, "month", month)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, stats)
}
