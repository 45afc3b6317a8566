package ledger

import (
	"fmt"

	"lumo/internal/core"
)

// SaveAccount creates or updates an account. On update only name and
// type are caller-controlled; the cached balance stays owned by the
// balance bookkeeping. On create the given balance is the account's
// initial balance.
func (l *Ledger) SaveAccount(acc core.Account) error {
	if err := acc.Validate(); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	for i := range l.state.Accounts {
		if l.state.Accounts[i].ID == acc.ID {
			l.state.Accounts[i].Name = acc.Name
			l.state.Accounts[i].Type = acc.Type
			return nil
		}
	}
	l.state.Accounts = append(l.state.Accounts, acc)
	return nil
}

// DeleteAccount removes the account and cascades: every transaction
// touching it (as owner or transfer endpoint) and every recurring rule
// it owns are dropped outright. Removed transactions are not reverted
// against surviving counterparty accounts: a transfer partner keeps the
// balance it had at deletion time.
func (l *Ledger) DeleteAccount(id string) {
	accounts := l.state.Accounts[:0]
	for _, a := range l.state.Accounts {
		if a.ID != id {
			accounts = append(accounts, a)
		}
	}
	l.state.Accounts = accounts

	txs := l.state.Transactions[:0]
	for _, t := range l.state.Transactions {
		if !t.Touches(id) {
			txs = append(txs, t)
		}
	}
	l.state.Transactions = txs

	rules := l.state.Recurring[:0]
	for _, r := range l.state.Recurring {
		if r.AccountID != id {
			rules = append(rules, r)
		}
	}
	l.state.Recurring = rules
}
