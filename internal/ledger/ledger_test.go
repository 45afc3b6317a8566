package ledger

import (
	"testing"

	"lumo/internal/core"
)

func testState() *core.State {
	return &core.State{
		Accounts: []core.Account{
			{ID: "a1", Name: "Conto Corrente", Type: core.AccountBank, Balance: core.Money{Cents: 100000}},
			{ID: "a2", Name: "Contanti", Type: core.AccountCash, Balance: core.Money{Cents: 5000}},
		},
		Categories: core.DefaultCategories(),
	}
}

func balance(t *testing.T, l *Ledger, id string) int64 {
	t.Helper()
	acc, ok := l.Account(id)
	if !ok {
		t.Fatalf("account %s not found", id)
	}
	return acc.Balance.Cents
}

func TestApplyRevertIsNoOp(t *testing.T) {
	l := New(testState())
	txs := []core.Transaction{
		core.NewExpense("t1", core.Money{Cents: 2500}, core.NewDate(2024, 1, 10), "spesa", "Alimentari", "a1", 1),
		core.NewIncome("t2", core.Money{Cents: 180000}, core.NewDate(2024, 1, 27), "stipendio", "Stipendio", "a1"),
		core.NewTransfer("t3", core.Money{Cents: 3000}, core.NewDate(2024, 1, 5), "a1", "a2"),
	}
	for _, tx := range txs {
		before1, before2 := balance(t, l, "a1"), balance(t, l, "a2")
		l.applyBalance(tx)
		l.revertBalance(tx)
		if balance(t, l, "a1") != before1 || balance(t, l, "a2") != before2 {
			t.Fatalf("revert(apply(%s)) changed balances", tx.ID)
		}
	}
}

func TestBalanceRouting(t *testing.T) {
	l := New(testState())

	l.applyBalance(core.NewExpense("t1", core.Money{Cents: 2500}, core.NewDate(2024, 1, 1), "d", "c", "a1", 1))
	if got := balance(t, l, "a1"); got != 97500 {
		t.Fatalf("expense: a1 = %d, want 97500", got)
	}

	l.applyBalance(core.NewIncome("t2", core.Money{Cents: 500}, core.NewDate(2024, 1, 1), "d", "c", "a2"))
	if got := balance(t, l, "a2"); got != 5500 {
		t.Fatalf("income: a2 = %d, want 5500", got)
	}

	l.applyBalance(core.NewTransfer("t3", core.Money{Cents: 10000}, core.NewDate(2024, 1, 1), "a1", "a2"))
	if got := balance(t, l, "a1"); got != 87500 {
		t.Fatalf("transfer: a1 = %d, want 87500", got)
	}
	if got := balance(t, l, "a2"); got != 15500 {
		t.Fatalf("transfer: a2 = %d, want 15500", got)
	}
}

func TestAdjustMissingAccountIsNoOp(t *testing.T) {
	l := New(testState())
	// Must not panic nor touch existing accounts.
	l.applyBalance(core.NewExpense("t1", core.Money{Cents: 999}, core.NewDate(2024, 1, 1), "d", "c", "gone", 1))
	if balance(t, l, "a1") != 100000 || balance(t, l, "a2") != 5000 {
		t.Fatalf("balances changed by stale reference")
	}
}

func TestBalanceInvariantOverOperations(t *testing.T) {
	l := New(testState())
	initial := map[string]int64{"a1": 100000, "a2": 5000}

	ops := []core.Transaction{
		core.NewExpense("t1", core.Money{Cents: 2000}, core.NewDate(2024, 1, 5), "d", "Casa", "a1", 1),
		core.NewIncome("t2", core.Money{Cents: 7000}, core.NewDate(2024, 1, 6), "d", "Stipendio", "a2"),
		core.NewTransfer("t3", core.Money{Cents: 1500}, core.NewDate(2024, 1, 7), "a2", "a1"),
	}
	for _, tx := range ops {
		if err := l.SaveTransaction(tx); err != nil {
			t.Fatalf("save %s: %v", tx.ID, err)
		}
	}
	// Edit t1, delete t2.
	edited := core.NewExpense("t1", core.Money{Cents: 4500}, core.NewDate(2024, 1, 5), "d2", "Casa", "a1", 1)
	if err := l.SaveTransaction(edited); err != nil {
		t.Fatalf("edit: %v", err)
	}
	l.DeleteTransaction("t2")

	for _, id := range []string{"a1", "a2"} {
		want := initial[id]
		for _, tx := range l.State().Transactions {
			switch {
			case tx.Kind == core.KindExpense && tx.AccountID == id:
				want -= tx.Amount.Cents
			case tx.Kind == core.KindIncome && tx.AccountID == id:
				want += tx.Amount.Cents
			case tx.Kind == core.KindTransfer && tx.From == id:
				want -= tx.Amount.Cents
			case tx.Kind == core.KindTransfer && tx.To == id:
				want += tx.Amount.Cents
			}
		}
		if got := balance(t, l, id); got != want {
			t.Fatalf("invariant broken for %s: balance %d, derived %d", id, got, want)
		}
	}
}

func TestTransactionsSortedDateDescending(t *testing.T) {
	l := New(testState())
	dates := []core.Date{
		core.NewDate(2024, 1, 10),
		core.NewDate(2024, 3, 1),
		core.NewDate(2024, 2, 15),
		core.NewDate(2024, 3, 1), // tie, stays after the earlier 3/1 entry
	}
	for i, d := range dates {
		tx := core.NewExpense(string(rune('a'+i)), core.Money{Cents: 100}, d, "d", "c", "a1", 1)
		if err := l.SaveTransaction(tx); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	sorted := l.Transactions()
	want := []string{"b", "d", "c", "a"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, sorted[i].ID, id)
		}
	}
}
