package ledger

import (
	"fmt"

	"lumo/internal/core"
)

// SaveTransaction creates or replaces a transaction and keeps the cached
// balances consistent.
//
// An existing id is an edit: the old effect is reverted, the record is
// replaced in place, the new effect applied. A new id is a create; a new
// expense with installments > 1 is expanded into that many monthly
// children before being stored (see splitInstallments).
//
// Validation runs before any mutation, so a rejected input leaves the
// ledger untouched.
func (l *Ledger) SaveTransaction(tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	for i := range l.state.Transactions {
		if l.state.Transactions[i].ID == tx.ID {
			l.revertBalance(l.state.Transactions[i])
			l.state.Transactions[i] = tx
			l.applyBalance(tx)
			return nil
		}
	}
	if tx.Kind == core.KindExpense && tx.Installments > 1 {
		l.splitInstallments(tx)
		return nil
	}
	l.state.Transactions = append(l.state.Transactions, tx)
	l.applyBalance(tx)
	return nil
}

// splitInstallments expands one installment-bearing expense into N
// monthly children: dates advance one month per step, each child gets
// total/N cents (integer division, remainder not redistributed), the
// description is suffixed " (i/N)" and the stored child carries
// installments = 1. The first child reuses the original id so an edit of
// the entered expense targets a real record. Children apply their
// balance effect in ascending order.
func (l *Ledger) splitInstallments(tx core.Transaction) {
	n := tx.Installments
	part := tx.Amount.SplitEven(n)
	for i := 0; i < n; i++ {
		id := tx.ID
		if i > 0 {
			id = NewID()
		}
		child := core.NewExpense(
			id, part, tx.Date.AddMonths(i),
			fmt.Sprintf("%s (%d/%d)", tx.Description, i+1, n),
			tx.Category, tx.AccountID, 1,
		)
		l.state.Transactions = append(l.state.Transactions, child)
		l.applyBalance(child)
	}
}

// DeleteTransaction reverts the transaction's balance effect and removes
// it. An unknown id is a silent no-op.
func (l *Ledger) DeleteTransaction(id string) {
	for i := range l.state.Transactions {
		if l.state.Transactions[i].ID == id {
			l.revertBalance(l.state.Transactions[i])
			l.state.Transactions = append(l.state.Transactions[:i], l.state.Transactions[i+1:]...)
			return
		}
	}
}
