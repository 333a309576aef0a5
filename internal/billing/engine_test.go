package billing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rate(v Money) *Money {
	return &v
}

func TestComputeBasicSplit(t *testing.T) {
	items := []LineItem{{Description: "development", Quantity: qty("1"), RateCents: rate(600_000)}}
	c, err := Compute(items, nil, 0, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.EquityCents != 120_000 {
		t.Fatalf("expected equity 120000, got %d", c.EquityCents)
	}
	if c.CashCents != 480_000 {
		t.Fatalf("expected cash 480000, got %d", c.CashCents)
	}
	if c.TotalCents != 600_000 {
		t.Fatalf("expected total 600000, got %d", c.TotalCents)
	}
}

func TestComputeHourlyLine(t *testing.T) {
	items := []LineItem{{Description: "consulting", Quantity: qty("2.5")}}
	c, err := Compute(items, nil, 6_000, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ServicesTotalCents != 15_000 {
		t.Fatalf("expected services total 15000, got %d", c.ServicesTotalCents)
	}
	if c.EquityCents != 3_000 || c.CashCents != 12_000 {
		t.Fatalf("expected 3000 equity / 12000 cash, got %d / %d", c.EquityCents, c.CashCents)
	}
}

func TestComputeExpenseOnly(t *testing.T) {
	expenses := []Expense{
		{Description: "flight", AmountCents: 2_550},
		{Description: "conference", AmountCents: 15_075},
	}
	c, err := Compute(nil, expenses, 6_000, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.TotalCents != 17_625 {
		t.Fatalf("expected total 17625, got %d", c.TotalCents)
	}
	if c.EquityCents != 0 {
		t.Fatalf("expected zero equity on expense-only invoice, got %d", c.EquityCents)
	}
	if c.CashCents != 17_625 {
		t.Fatalf("expected cash 17625, got %d", c.CashCents)
	}
}

func TestComputeExpensesStayCash(t *testing.T) {
	items := []LineItem{{Description: "development", Quantity: qty("1"), RateCents: rate(600_000)}}
	expenses := []Expense{{Description: "hosting", AmountCents: 10_000}}
	c, err := Compute(items, expenses, 0, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.EquityCents != 120_000 {
		t.Fatalf("expenses must not change the equity portion, got %d", c.EquityCents)
	}
	if c.CashCents != 490_000 {
		t.Fatalf("expected cash 490000, got %d", c.CashCents)
	}
	if c.TotalCents != 610_000 {
		t.Fatalf("expected total 610000, got %d", c.TotalCents)
	}
}

func TestComputeZeroPercentAllCash(t *testing.T) {
	items := []LineItem{{Description: "development", Quantity: qty("1"), RateCents: rate(600_000)}}
	c, err := Compute(items, nil, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.EquityCents != 0 || c.CashCents != 600_000 {
		t.Fatalf("expected all cash at 0%%, got equity %d cash %d", c.EquityCents, c.CashCents)
	}
}

func TestComputeEmptyInvoice(t *testing.T) {
	_, err := Compute(nil, nil, 6_000, 20)
	if !errors.Is(err, ErrEmptyInvoice) {
		t.Fatalf("expected ErrEmptyInvoice, got %v", err)
	}
}

func TestComputeNegativeQuantity(t *testing.T) {
	items := []LineItem{{Description: "bad", Quantity: qty("-1")}}
	_, err := Compute(items, nil, 6_000, 20)
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestComputeNegativeRate(t *testing.T) {
	items := []LineItem{{Description: "bad", Quantity: qty("1"), RateCents: rate(-100)}}
	_, err := Compute(items, nil, 6_000, 20)
	if !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
}

func TestComputeNegativeExpense(t *testing.T) {
	expenses := []Expense{{Description: "bad", AmountCents: -1}}
	_, err := Compute(nil, expenses, 6_000, 20)
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestSplitServicesFloors(t *testing.T) {
	s := SplitServices(99, 33)
	if s.EquityCents != 32 {
		t.Fatalf("expected floored equity 32, got %d", s.EquityCents)
	}
	if s.CashCents != 67 {
		t.Fatalf("expected cash 67, got %d", s.CashCents)
	}
}

func TestSplitServicesExactSum(t *testing.T) {
	totals := []Money{0, 1, 3, 99, 101, 15_000, 600_000, 1_234_567}
	for _, total := range totals {
		for pct := int32(0); pct <= 100; pct++ {
			s := SplitServices(total, pct)
			if s.CashCents+s.EquityCents != total {
				t.Fatalf("split of %d at %d%% does not recompose: cash %d equity %d", total, pct, s.CashCents, s.EquityCents)
			}
			if s.CashCents < 0 || s.EquityCents < 0 {
				t.Fatalf("split of %d at %d%% produced negative portion", total, pct)
			}
		}
	}
}

func TestAggregateLineItemsSumsRoundedParts(t *testing.T) {
	// Each line rounds 50.5 up to 51; the services total must be 102, not the
	// re-rounded 101 a sum-of-raw-products would give.
	items := []LineItem{
		{Description: "a", Quantity: qty("0.5"), RateCents: rate(101)},
		{Description: "b", Quantity: qty("0.5"), RateCents: rate(101)},
	}
	agg, err := AggregateLineItems(items, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg.Lines[0].AmountCents != 51 {
		t.Fatalf("expected per-line amount 51, got %d", agg.Lines[0].AmountCents)
	}
	if agg.TotalCents != 102 {
		t.Fatalf("expected services total 102, got %d", agg.TotalCents)
	}
}

func TestAggregateLineItemsDefaultRate(t *testing.T) {
	items := []LineItem{
		{Description: "default", Quantity: qty("2")},
		{Description: "override", Quantity: qty("2"), RateCents: rate(10_000)},
	}
	agg, err := AggregateLineItems(items, 6_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg.Lines[0].AmountCents != 12_000 {
		t.Fatalf("expected default-rate amount 12000, got %d", agg.Lines[0].AmountCents)
	}
	if agg.Lines[1].AmountCents != 20_000 {
		t.Fatalf("expected override amount 20000, got %d", agg.Lines[1].AmountCents)
	}
	if agg.TotalCents != 32_000 {
		t.Fatalf("expected services total 32000, got %d", agg.TotalCents)
	}
}

func TestComputeDeterministic(t *testing.T) {
	items := []LineItem{{Description: "work", Quantity: qty("3.75"), RateCents: rate(12_345)}}
	expenses := []Expense{{Description: "travel", AmountCents: 9_999}}
	first, err := Compute(items, expenses, 0, 37)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Compute(items, expenses, 0, 37)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TotalCents != second.TotalCents || first.CashCents != second.CashCents || first.EquityCents != second.EquityCents {
		t.Fatalf("recomputation diverged: %+v vs %+v", first, second)
	}
	if first.CashCents+first.EquityCents != first.TotalCents {
		t.Fatalf("totals do not recompose: %+v", first)
	}
}
