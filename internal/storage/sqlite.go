package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"lumo/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the state blob in a one-row table keyed by StateKey.
// The blob stays opaque to SQL; SQLite just gives us durable writes and
// room for future per-entity tables.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*core.State, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT blob FROM state WHERE key = ?`, StateKey,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select state blob: %w", err)
	}
	var state core.State
	if err := json.Unmarshal(blob, &state); err != nil {
		slog.WarnContext(ctx, "State blob is corrupt, starting from defaults",
			"key", StateKey,
			"error", err)
		return nil, nil
	}
	return &state, nil
}

func (s *SQLiteStore) Save(ctx context.Context, state *core.State) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO state (key, blob, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`,
		StateKey, blob, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert state blob: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
