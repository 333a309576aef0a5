package billing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseQuantityDecimal(t *testing.T) {
	got, err := ParseQuantity("2.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("2.5")) {
		t.Fatalf("expected 2.5, got %s", got)
	}
}

func TestParseQuantityClock(t *testing.T) {
	got, err := ParseQuantity("7:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("7.5")) {
		t.Fatalf("expected 7.5 hours, got %s", got)
	}
}

func TestParseQuantityClockPricesExactly(t *testing.T) {
	// 20 minutes at $60/hr is one third of 6000 cents.
	got, err := ParseQuantity("0:20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	amount := ToCents(got.Mul(decimal.NewFromInt(6_000)))
	if amount != 2_000 {
		t.Fatalf("expected 2000 cents, got %d", amount)
	}
}

func TestParseQuantityRejects(t *testing.T) {
	cases := []string{"", "abc", "-1", "-0.5", "1:5", "1:60", "-1:30", "1:2:3", "1:ab"}
	for _, raw := range cases {
		if _, err := ParseQuantity(raw); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity for %q, got %v", raw, err)
		}
	}
}

func TestParseQuantityZero(t *testing.T) {
	got, err := ParseQuantity("0:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("expected zero quantity, got %s", got)
	}
}

func TestToCentsHalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"0", 0},
		{"2.4", 2},
		{"2.5", 3},
		{"50.5", 51},
		{"1999.999", 2000},
		{"12000", 12000},
	}
	for _, tc := range cases {
		if got := ToCents(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Fatalf("ToCents(%s) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
