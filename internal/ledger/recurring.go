package ledger

import (
	"fmt"

	"lumo/internal/core"
)

// SaveRecurring creates or replaces a recurring rule. Callers are
// expected to run a catch-up pass right after, so a rule saved with a
// past NextDate materializes immediately.
func (l *Ledger) SaveRecurring(rule core.RecurringRule) error {
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("save recurring rule: %w", err)
	}
	for i := range l.state.Recurring {
		if l.state.Recurring[i].ID == rule.ID {
			l.state.Recurring[i] = rule
			return nil
		}
	}
	l.state.Recurring = append(l.state.Recurring, rule)
	return nil
}

// DeleteRecurring removes a rule. Transactions it already materialized
// stay in the ledger. Unknown ids are a no-op.
func (l *Ledger) DeleteRecurring(id string) {
	rules := l.state.Recurring[:0]
	for _, r := range l.state.Recurring {
		if r.ID != id {
			rules = append(rules, r)
		}
	}
	l.state.Recurring = rules
}
