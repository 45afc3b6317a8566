package services

import (
	"context"
	"strings"
	"testing"

	"lumo/internal/core"
	"lumo/internal/ledger"
)

func ruleState(rules ...core.RecurringRule) *core.State {
	return &core.State{
		Accounts: []core.Account{
			{ID: "a1", Name: "Conto Corrente", Type: core.AccountBank, Balance: core.Money{Cents: 100000}},
		},
		Categories: core.DefaultCategories(),
		Recurring:  rules,
	}
}

func monthlyExpense(cents int64, next core.Date) core.RecurringRule {
	return core.RecurringRule{
		ID: "r1", Description: "Affitto", Amount: core.Money{Cents: cents},
		Kind: core.KindExpense, Category: "Casa", AccountID: "a1",
		NextDate: next, FreqMonths: 1, Active: true,
	}
}

type recordingPublisher struct {
	published []core.Transaction
}

func (p *recordingPublisher) PublishTransaction(_ context.Context, tx core.Transaction) error {
	p.published = append(p.published, tx)
	return nil
}

func TestCatchUpMaterializesDueOccurrences(t *testing.T) {
	l := ledger.New(ruleState(monthlyExpense(5000, core.NewDate(2024, 1, 1))))
	pub := &recordingPublisher{}
	engine := NewRecurrenceEngine(pub)

	created := engine.CatchUp(context.Background(), l, core.NewDate(2024, 3, 15))
	if created != 3 {
		t.Fatalf("created = %d, want 3", created)
	}

	txs := l.State().Transactions
	if len(txs) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txs))
	}
	wantDates := []string{"2024-01-01", "2024-02-01", "2024-03-01"}
	for i, tx := range txs {
		if tx.Date.String() != wantDates[i] {
			t.Errorf("tx[%d] date = %s, want %s", i, tx.Date.String(), wantDates[i])
		}
		if !strings.HasSuffix(tx.Description, core.RecurringMarker) {
			t.Errorf("tx[%d] description %q lacks recurring marker", i, tx.Description)
		}
		if tx.Kind != core.KindExpense || tx.Amount.Cents != 5000 {
			t.Errorf("tx[%d] = %+v, want expense of 5000", i, tx)
		}
	}

	rule := l.Recurring()[0]
	if got := rule.NextDate.String(); got != "2024-04-01" {
		t.Fatalf("rule NextDate = %s, want 2024-04-01", got)
	}

	acc, _ := l.Account("a1")
	if acc.Balance.Cents != 100000-3*5000 {
		t.Fatalf("balance = %d, want %d", acc.Balance.Cents, 100000-3*5000)
	}
	if len(pub.published) != 3 {
		t.Fatalf("published %d events, want 3", len(pub.published))
	}
}

func TestCatchUpIsIdempotentForSameDay(t *testing.T) {
	l := ledger.New(ruleState(monthlyExpense(5000, core.NewDate(2024, 1, 1))))
	engine := NewRecurrenceEngine(nil)
	today := core.NewDate(2024, 3, 15)

	if created := engine.CatchUp(context.Background(), l, today); created != 3 {
		t.Fatalf("first pass created %d, want 3", created)
	}
	if created := engine.CatchUp(context.Background(), l, today); created != 0 {
		t.Fatalf("second pass created %d, want 0", created)
	}
	if got := len(l.State().Transactions); got != 3 {
		t.Fatalf("second pass changed transaction count: %d", got)
	}
}

func TestCatchUpBoundsDormantRules(t *testing.T) {
	// Five years behind: one pass materializes at most a year's worth,
	// the rule keeps pointing at the next unmaterialized occurrence.
	l := ledger.New(ruleState(monthlyExpense(100, core.NewDate(2019, 1, 1))))
	engine := NewRecurrenceEngine(nil)

	created := engine.CatchUp(context.Background(), l, core.NewDate(2024, 1, 1))
	if created != 12 {
		t.Fatalf("created = %d, want 12", created)
	}
	rule := l.Recurring()[0]
	if got := rule.NextDate.String(); got != "2020-01-01" {
		t.Fatalf("rule NextDate = %s, want 2020-01-01", got)
	}

	// The next pass resumes where the first stopped.
	if created := engine.CatchUp(context.Background(), l, core.NewDate(2024, 1, 1)); created != 12 {
		t.Fatalf("resumed pass created %d, want 12", created)
	}
}

func TestCatchUpSkipsInactiveAndMalformedRules(t *testing.T) {
	inactive := monthlyExpense(100, core.NewDate(2024, 1, 1))
	inactive.ID = "r-off"
	inactive.Active = false

	noDate := monthlyExpense(100, core.Date{})
	noDate.ID = "r-nodate"

	l := ledger.New(ruleState(inactive, noDate))
	engine := NewRecurrenceEngine(nil)

	if created := engine.CatchUp(context.Background(), l, core.NewDate(2024, 6, 1)); created != 0 {
		t.Fatalf("created = %d, want 0", created)
	}
	for _, r := range l.Recurring() {
		if r.ID == "r-off" && r.NextDate.String() != "2024-01-01" {
			t.Fatalf("inactive rule advanced to %s", r.NextDate.String())
		}
		if r.ID == "r-nodate" && !r.NextDate.IsZero() {
			t.Fatalf("malformed rule gained a date: %s", r.NextDate.String())
		}
	}
}

func TestCatchUpIncomeRule(t *testing.T) {
	rule := core.RecurringRule{
		ID: "r2", Description: "Stipendio", Amount: core.Money{Cents: 200000},
		Kind: core.KindIncome, Category: "Stipendio", AccountID: "a1",
		NextDate: core.NewDate(2024, 5, 27), FreqMonths: 1, Active: true,
	}
	l := ledger.New(ruleState(rule))
	engine := NewRecurrenceEngine(nil)

	if created := engine.CatchUp(context.Background(), l, core.NewDate(2024, 5, 31)); created != 1 {
		t.Fatalf("created != 1")
	}
	tx := l.State().Transactions[0]
	if tx.Kind != core.KindIncome || tx.Description != "Stipendio"+core.RecurringMarker {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	acc, _ := l.Account("a1")
	if acc.Balance.Cents != 300000 {
		t.Fatalf("balance = %d, want 300000", acc.Balance.Cents)
	}
}

func TestCatchUpEndOfMonthClamp(t *testing.T) {
	rule := monthlyExpense(100, core.NewDate(2024, 1, 31))
	l := ledger.New(ruleState(rule))
	engine := NewRecurrenceEngine(nil)

	if created := engine.CatchUp(context.Background(), l, core.NewDate(2024, 3, 31)); created != 3 {
		t.Fatalf("created != 3")
	}
	var dates []string
	for _, tx := range l.State().Transactions {
		dates = append(dates, tx.Date.String())
	}
	// The clamp to February's last day sticks: later months step from
	// the clamped day, not the original one.
	want := []string{"2024-01-31", "2024-02-29", "2024-03-29"}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("dates = %v, want %v", dates, want)
		}
	}
}
