package amqp

import (
	"encoding/json"
	"time"

	"lumo/internal/core"
)

// TransactionEvent is the lightweight wire form of a ledger mutation.
// Consumers that need the full record fetch it from the state blob. The
// amount is carried both as exact cents and as a display-ready euro
// value for consumers that only render it.
type TransactionEvent struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	AmountCents int64     `json:"amount_cents"`
	AmountEuros float64   `json:"amount_euros"`
	Date        string    `json:"date"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewTransactionEvent(tx core.Transaction) *TransactionEvent {
	return &TransactionEvent{
		ID:          tx.ID,
		Kind:        string(tx.Kind),
		AmountCents: tx.Amount.Cents,
		AmountEuros: tx.Amount.Euros(),
		Date:        tx.Date.String(),
		Timestamp:   time.Now(),
	}
}

func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
