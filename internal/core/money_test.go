package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12", 1200, true},
		{".50", 50, true},
		{"12.344", 1234, true}, // rounds down
		{"12.345", 1235, true}, // half-up
		{"0", 0, false},
		{"0,00", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}
	for i, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d (%q): expected ok, got %v", i, tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d (%q): expected error", i, tc.in)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("case %d (%q): got %d cents, want %d", i, tc.in, got, tc.want)
		}
	}
}

func TestSplitEvenKeepsRemainder(t *testing.T) {
	// 120.00 splits cleanly.
	if got := (Money{Cents: 12000}).SplitEven(3); got.Cents != 4000 {
		t.Fatalf("expected 4000 cents, got %d", got.Cents)
	}
	// 100.00 / 3 leaves a one-cent drift that is not redistributed.
	part := (Money{Cents: 10000}).SplitEven(3)
	if part.Cents != 3333 {
		t.Fatalf("expected 3333 cents, got %d", part.Cents)
	}
	if part.Cents*3 != 9999 {
		t.Fatalf("expected drift of one cent, sum is %d", part.Cents*3)
	}
	// Invalid n clamps to one.
	if got := (Money{Cents: 500}).SplitEven(0); got.Cents != 500 {
		t.Fatalf("expected 500 cents, got %d", got.Cents)
	}
}
