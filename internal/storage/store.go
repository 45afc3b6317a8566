// Package storage persists the ledger state as one opaque JSON blob,
// either in a plain file or in a single-row SQLite table. The core never
// sees how the blob reaches disk; it hands a *core.State in and gets one
// back.
package storage

import (
	"context"

	"lumo/internal/core"
)

// StateKey versions the persisted blob; a format break gets a new key.
const StateKey = "lumo_v3"

// Store is the collaborator contract the ledger core expects: Load
// returns (nil, nil) when no state was ever saved, and a corrupt blob is
// treated the same way (logged, accepted data loss) rather than
// propagated.
type Store interface {
	Load(ctx context.Context) (*core.State, error)
	Save(ctx context.Context, state *core.State) error
	Close() error
}
