// Package core holds the domain model of the ledger: accounts,
// transactions, recurring rules and the value types (Money, Date) they
// are built from. Everything here is plain data plus validation; the
// mutation logic lives in internal/ledger.
package core

import (
	"errors"
	"strings"
)

type (
	AccountType string
	TxKind      string
)

const (
	AccountBank    AccountType = "bank"
	AccountCash    AccountType = "cash"
	AccountSavings AccountType = "savings"

	KindExpense  TxKind = "expense"
	KindIncome   TxKind = "income"
	KindTransfer TxKind = "transfer"
)

const (
	// FallbackCategory receives transactions whose category is deleted.
	FallbackCategory = "Altro"
	// TransferCategory is the reserved category stamped on transfers.
	TransferCategory = "Bonifici"
	// TransferDescription is the fixed description for transfers.
	TransferDescription = "Giroconto"
	// RecurringMarker is appended to descriptions of materialized
	// recurring transactions.
	RecurringMarker = " (Fissa)"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrMissingAccount   = errors.New("missing account reference")
	ErrSameAccounts     = errors.New("transfer endpoints must differ")
	ErrInvalidKind      = errors.New("invalid transaction kind")
)

// Account is a money container. Balance is derived but cached: it always
// equals the initial balance plus the signed effect of every stored
// transaction touching the account. Only internal/ledger mutates it.
type Account struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Type    AccountType `json:"type"`
	Balance Money       `json:"balance"`
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("empty account name")
	}
	switch a.Type {
	case AccountBank, AccountCash, AccountSavings:
		return nil
	default:
		return errors.New("invalid account type")
	}
}

// Transaction is a single ledger movement. Kind decides which account
// references are meaningful: expense/income use AccountID, transfer uses
// From/To. The constructors below are the only sanctioned way to build
// one, and Validate enforces the per-kind shape, so a persisted record
// with fields from the wrong variant is rejected rather than silently
// half-read.
type Transaction struct {
	ID           string `json:"id"`
	Kind         TxKind `json:"type"`
	Amount       Money  `json:"amount"`
	Date         Date   `json:"date"`
	Description  string `json:"desc"`
	Category     string `json:"category"`
	AccountID    string `json:"accountId,omitempty"`
	From         string `json:"fromAccount,omitempty"`
	To           string `json:"toAccount,omitempty"`
	Installments int    `json:"installments"`
}

// NewExpense builds an expense movement against one account.
func NewExpense(id string, amount Money, date Date, desc, category, accountID string, installments int) Transaction {
	if installments < 1 {
		installments = 1
	}
	return Transaction{
		ID: id, Kind: KindExpense, Amount: amount, Date: date,
		Description: desc, Category: category, AccountID: accountID,
		Installments: installments,
	}
}

// NewIncome builds an income movement against one account.
func NewIncome(id string, amount Money, date Date, desc, category, accountID string) Transaction {
	return Transaction{
		ID: id, Kind: KindIncome, Amount: amount, Date: date,
		Description: desc, Category: category, AccountID: accountID,
		Installments: 1,
	}
}

// NewTransfer builds a movement between two accounts with the reserved
// description and category.
func NewTransfer(id string, amount Money, date Date, from, to string) Transaction {
	return Transaction{
		ID: id, Kind: KindTransfer, Amount: amount, Date: date,
		Description: TransferDescription, Category: TransferCategory,
		From: from, To: to, Installments: 1,
	}
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	switch t.Kind {
	case KindExpense, KindIncome:
		if t.AccountID == "" {
			return ErrMissingAccount
		}
		if strings.TrimSpace(t.Category) == "" {
			return ErrEmptyCategory
		}
		if t.From != "" || t.To != "" {
			return ErrInvalidKind
		}
	case KindTransfer:
		if t.From == "" || t.To == "" {
			return ErrMissingAccount
		}
		if t.From == t.To {
			return ErrSameAccounts
		}
		if t.AccountID != "" {
			return ErrInvalidKind
		}
	default:
		return ErrInvalidKind
	}
	return nil
}

// Touches reports whether the transaction references the account, either
// as owner or as a transfer endpoint.
func (t Transaction) Touches(accountID string) bool {
	return t.AccountID == accountID || t.From == accountID || t.To == accountID
}

// RecurringRule is a template that periodically materializes real
// transactions. NextDate is the single source of truth for the next due
// occurrence; the recurrence engine is the only writer that advances it,
// and it only ever moves forward.
type RecurringRule struct {
	ID          string `json:"id"`
	Description string `json:"desc"`
	Amount      Money  `json:"amount"`
	Kind        TxKind `json:"type"`
	Category    string `json:"category"`
	AccountID   string `json:"accountId"`
	NextDate    Date   `json:"nextDate"`
	FreqMonths  int    `json:"freq"`
	Active      bool   `json:"active"`
}

func (r RecurringRule) Validate() error {
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if r.Kind != KindExpense && r.Kind != KindIncome {
		return ErrInvalidKind
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if r.AccountID == "" {
		return ErrMissingAccount
	}
	if r.NextDate.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Freq returns the rule's period in months, clamped to at least one so a
// zero or negative frequency can never stall the catch-up loop.
func (r RecurringRule) Freq() int {
	if r.FreqMonths < 1 {
		return 1
	}
	return r.FreqMonths
}

// Settings are passive display preferences carried through the blob.
type Settings struct {
	Theme string `json:"theme"`
}

// State is the full persisted aggregate, versioned by its storage key.
type State struct {
	PIN          string          `json:"pin"`
	Accounts     []Account       `json:"accounts"`
	Transactions []Transaction   `json:"transactions"`
	Recurring    []RecurringRule `json:"recurring"`
	Categories   []string        `json:"categories"`
	Settings     Settings        `json:"settings"`
}

// DefaultCategories mirrors the category list a fresh install starts with.
func DefaultCategories() []string {
	return []string{
		"Alimentari", "Casa", "Trasporti", "Svago", "Salute",
		"Shopping", "Ristoranti", "Stipendio", FallbackCategory,
	}
}

// DefaultState seeds a fresh install: one bank account and the default
// category list.
func DefaultState() *State {
	return &State{
		Accounts: []Account{
			{ID: "a1", Name: "Conto Corrente", Type: AccountBank},
		},
		Categories: DefaultCategories(),
		Settings:   Settings{Theme: "light"},
	}
}
