// Package services orchestrates the temporal logic on top of the
// ledger, chiefly the recurrence engine that materializes transactions
// from recurring rules.
package services

import (
	"context"
	"log/slog"

	"lumo/internal/core"
	"lumo/internal/ledger"
)

// maxPerPass bounds catch-up per rule per pass. A rule dormant for years
// materializes at most a year's worth of monthly occurrences in one
// pass; NextDate keeps the true remaining position, so the rest is
// picked up on the next pass.
const maxPerPass = 12

// EventPublisher receives a notification for every transaction the
// engine materializes. A nil publisher disables publishing.
type EventPublisher interface {
	PublishTransaction(ctx context.Context, tx core.Transaction) error
}

// RecurrenceEngine brings recurring rules up to date against "today".
// It runs at process start and immediately after a rule is saved; there
// is no background timer.
type RecurrenceEngine struct {
	publisher EventPublisher
}

func NewRecurrenceEngine(publisher EventPublisher) *RecurrenceEngine {
	return &RecurrenceEngine{publisher: publisher}
}

// CatchUp materializes every due occurrence for every active rule, in
// rule order, and advances each rule's NextDate strictly forward by its
// frequency. It returns the number of transactions created; zero means
// nothing changed and the caller can skip persisting.
//
// Re-running with an unchanged today is a no-op: after a pass every
// active rule's NextDate is either beyond today or exactly maxPerPass
// steps further along.
func (e *RecurrenceEngine) CatchUp(ctx context.Context, l *ledger.Ledger, today core.Date) int {
	created := 0
	state := l.State()
	for i := range state.Recurring {
		rule := &state.Recurring[i]
		if !rule.Active {
			continue
		}
		if rule.NextDate.IsZero() {
			// Malformed date: treat as not due, never advance.
			slog.WarnContext(ctx, "Skipping recurring rule with invalid next date",
				"rule_id", rule.ID,
				"description", rule.Description)
			continue
		}
		for n := 0; !rule.NextDate.After(today) && n < maxPerPass; n++ {
			tx := e.materialize(*rule)
			if err := l.SaveTransaction(tx); err != nil {
				// One bad rule must not block the rest of the pass.
				slog.ErrorContext(ctx, "Failed to materialize recurring transaction",
					"rule_id", rule.ID,
					"description", rule.Description,
					"error", err)
				break
			}
			created++
			slog.InfoContext(ctx, "Materialized recurring transaction",
				"rule_id", rule.ID,
				"transaction_id", tx.ID,
				"date", tx.Date.String(),
				"amount_cents", tx.Amount.Cents)
			if e.publisher != nil {
				if err := e.publisher.PublishTransaction(ctx, tx); err != nil {
					slog.WarnContext(ctx, "Failed to publish materialized transaction",
						"transaction_id", tx.ID,
						"error", err)
				}
			}
			rule.NextDate = rule.NextDate.AddMonths(rule.Freq())
		}
	}
	return created
}

// materialize builds the concrete transaction for one due occurrence,
// dated at the rule's NextDate and marked as recurring.
func (e *RecurrenceEngine) materialize(rule core.RecurringRule) core.Transaction {
	desc := rule.Description + core.RecurringMarker
	if rule.Kind == core.KindIncome {
		return core.NewIncome(ledger.NewID(), rule.Amount, rule.NextDate, desc, rule.Category, rule.AccountID)
	}
	return core.NewExpense(ledger.NewID(), rule.Amount, rule.NextDate, desc, rule.Category, rule.AccountID, 1)
}
