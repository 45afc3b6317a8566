package core

import (
	"fmt"
	"time"
)

// Date is a calendar day without a time zone. The zero value means "no
// date" and is invalid everywhere a date is required.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate builds a date, clamping the day into the month's valid range.
func NewDate(year, month, day int) Date {
	if month < 1 {
		month = 1
	}
	if month > 12 {
		month = 12
	}
	if day < 1 {
		day = 1
	}
	if max := daysInMonth(year, month); day > max {
		day = max
	}
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses the ISO form "2006-01-02". Anything else is an error.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// Today returns the current calendar day in local time.
func Today() Date {
	now := time.Now()
	return Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// ordinal gives a total order over days; only comparisons use it.
func (d Date) ordinal() int {
	return d.Year*10000 + d.Month*100 + d.Day
}

// Compare returns -1, 0 or 1 as d sorts before, equal to or after other.
func (d Date) Compare(other Date) int {
	switch a, b := d.ordinal(), other.ordinal(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool  { return d.Compare(other) == 0 }

// AddMonths moves the date n months forward, keeping the day where
// possible and clamping to the last day of the target month otherwise
// (Jan 31 + 1 month is Feb 29 in a leap year). The clamp does not look
// back: stepping again continues from the clamped day.
func (d Date) AddMonths(n int) Date {
	months := d.Year*12 + (d.Month - 1) + n
	year := months / 12
	month := months%12 + 1
	day := d.Day
	if max := daysInMonth(year, month); day > max {
		day = max
	}
	return Date{Year: year, Month: month, Day: day}
}

// InMonth reports whether the date falls in the given calendar month.
func (d Date) InMonth(year, month int) bool {
	return d.Year == year && d.Month == month
}

// MarshalJSON encodes the date as its ISO string; the zero value becomes
// the empty string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts the ISO string. Malformed or null input decodes
// to the zero value instead of erroring, so one bad date in a stored
// blob cannot fail the whole load.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		*d = Date{}
		return nil
	}
	*d = parsed
	return nil
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		if isLeap(year) {
			return 29
		}
		return 28
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
