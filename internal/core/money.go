package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in euro cents. Amounts are always non-negative;
// direction is carried by the transaction kind, never by the sign.
type Money struct {
	Cents int64
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Euros returns the value as a float64 for display only. Calculations
// stay in cents.
func (m Money) Euros() float64 {
	return float64(m.Cents) / 100.0
}

// SplitEven divides the amount into n equal parts using integer cents
// division. The remainder is not redistributed: splitting €100.00 in 3
// yields 3 × €33.33 and a persistent €0.01 drift against the nominal
// total.
func (m Money) SplitEven(n int) Money {
	if n < 1 {
		n = 1
	}
	return Money{Cents: m.Cents / int64(n)}
}

// MarshalJSON encodes the amount as a bare number of cents.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.Cents, 10)), nil
}

// UnmarshalJSON accepts integer cents. A fractional number (from an old
// euro-valued blob) is converted with half-up rounding; anything else
// decodes to zero so one bad amount cannot poison the whole state load.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if iv, err := strconv.ParseInt(s, 10, 64); err == nil {
		m.Cents = iv
		return nil
	}
	if fv, err := strconv.ParseFloat(s, 64); err == nil {
		m.Cents = int64(fv*100 + 0.5)
		return nil
	}
	m.Cents = 0
	return nil
}

// ParseDecimalToCents converts a user-entered decimal amount to cents.
// Both "12.34" and "12,34" are accepted; a third decimal digit rounds
// half-up. Signs, zero and garbage are rejected with ErrInvalidAmount.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, ErrInvalidAmount
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxEuros = (1<<63 - 1) / 100
	if iv > maxEuros {
		return 0, ErrInvalidAmount
	}
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
	}
	if len(fracPart) > 1 {
		frac += int64(fracPart[1] - '0')
	}
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		frac++
	}
	cents := iv*100 + frac
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}
