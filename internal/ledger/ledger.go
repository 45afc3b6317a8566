// Package ledger implements the mutable aggregate at the center of the
// application: accounts, transactions, recurring rules and the category
// registry, together with the balance bookkeeping that keeps every
// cached account balance consistent with the transaction set.
//
// A Ledger owns one *core.State and is the only code allowed to mutate
// it. All operations are synchronous and run to completion; persistence
// is the caller's concern (write-through after every mutation).
package ledger

import (
	"sort"

	"github.com/google/uuid"

	"lumo/internal/core"
)

type Ledger struct {
	state *core.State
}

// New wraps an existing state. A nil state gets the fresh-install
// default (one bank account, default categories).
func New(state *core.State) *Ledger {
	if state == nil {
		state = core.DefaultState()
	}
	if len(state.Categories) == 0 {
		state.Categories = core.DefaultCategories()
	}
	return &Ledger{state: state}
}

// State exposes the aggregate for persistence and read-only views.
func (l *Ledger) State() *core.State {
	return l.state
}

// NewID generates a fresh entity id.
func NewID() string {
	return uuid.NewString()
}

// Accounts returns the accounts in stored order.
func (l *Ledger) Accounts() []core.Account {
	out := make([]core.Account, len(l.state.Accounts))
	copy(out, l.state.Accounts)
	return out
}

// Account looks up an account by id.
func (l *Ledger) Account(id string) (core.Account, bool) {
	for _, a := range l.state.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return core.Account{}, false
}

// Transactions returns the transactions sorted by date descending.
// Same-date entries keep their stored order; no secondary key is
// defined.
func (l *Ledger) Transactions() []core.Transaction {
	out := make([]core.Transaction, len(l.state.Transactions))
	copy(out, l.state.Transactions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Date.Before(out[i].Date)
	})
	return out
}

// Transaction looks up a transaction by id.
func (l *Ledger) Transaction(id string) (core.Transaction, bool) {
	for _, t := range l.state.Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// Recurring returns the recurring rules in stored order.
func (l *Ledger) Recurring() []core.RecurringRule {
	out := make([]core.RecurringRule, len(l.state.Recurring))
	copy(out, l.state.Recurring)
	return out
}

// Categories returns the registry in insertion order.
func (l *Ledger) Categories() []string {
	out := make([]string, len(l.state.Categories))
	copy(out, l.state.Categories)
	return out
}
