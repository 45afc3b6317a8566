package ledger

import "lumo/internal/core"

// adjust shifts one account balance by signed cents. A reference to an
// account that no longer exists degrades to a no-op: stale references
// are tolerated, never raised.
func (l *Ledger) adjust(accountID string, cents int64) {
	for i := range l.state.Accounts {
		if l.state.Accounts[i].ID == accountID {
			l.state.Accounts[i].Balance.Cents += cents
			return
		}
	}
}

// applyBalance applies the monetary effect of a transaction: a transfer
// moves amount from From to To, an expense subtracts from its account,
// an income adds to it.
func (l *Ledger) applyBalance(t core.Transaction) {
	switch t.Kind {
	case core.KindTransfer:
		l.adjust(t.From, -t.Amount.Cents)
		l.adjust(t.To, t.Amount.Cents)
	case core.KindIncome:
		l.adjust(t.AccountID, t.Amount.Cents)
	case core.KindExpense:
		l.adjust(t.AccountID, -t.Amount.Cents)
	}
}

// revertBalance is the exact algebraic inverse of applyBalance. It runs
// before any edit or delete so the old effect is fully undone first.
func (l *Ledger) revertBalance(t core.Transaction) {
	switch t.Kind {
	case core.KindTransfer:
		l.adjust(t.From, t.Amount.Cents)
		l.adjust(t.To, -t.Amount.Cents)
	case core.KindIncome:
		l.adjust(t.AccountID, -t.Amount.Cents)
	case core.KindExpense:
		l.adjust(t.AccountID, t.Amount.Cents)
	}
}
