package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"lumo/internal/core"
)

// FileStore keeps the state blob in a single JSON file, written
// atomically via a temp file and rename.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load(ctx context.Context) (*core.State, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	var state core.State
	if err := json.Unmarshal(raw, &state); err != nil {
		slog.WarnContext(ctx, "State file is corrupt, starting from defaults",
			"path", s.path,
			"error", err)
		return nil, nil
	}
	return &state, nil
}

func (s *FileStore) Save(ctx context.Context, state *core.State) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
