package amqp

import (
	"testing"

	"lumo/internal/core"
)

func TestTransactionEventRoundTrip(t *testing.T) {
	tx := core.NewExpense("t1", core.Money{Cents: 2550}, core.NewDate(2024, 6, 10), "Spesa", "Alimentari", "a1", 1)
	event := NewTransactionEvent(tx)

	if event.AmountCents != 2550 {
		t.Fatalf("amount_cents = %d, want 2550", event.AmountCents)
	}
	if event.AmountEuros != 25.50 {
		t.Fatalf("amount_euros = %v, want 25.50", event.AmountEuros)
	}
	if event.Date != "2024-06-10" || event.Kind != "expense" {
		t.Fatalf("unexpected event: %+v", event)
	}

	body, err := event.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := TransactionEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID != "t1" || decoded.AmountCents != 2550 || decoded.AmountEuros != 25.50 {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}
