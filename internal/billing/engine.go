package billing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value stored in USD cents.
type Money = int64

var (
	// ErrInvalidQuantity is returned when a line item quantity is negative or unparseable.
	ErrInvalidQuantity = errors.New("invalid line item quantity")
	// ErrInvalidRate is returned when a line item resolves to a negative hourly or unit rate.
	ErrInvalidRate = errors.New("invalid line item rate")
	// ErrInvalidAmount is returned when an expense carries a negative amount.
	ErrInvalidAmount = errors.New("invalid expense amount")
	// ErrEmptyInvoice is returned when an invoice has neither line items nor expenses.
	ErrEmptyInvoice = errors.New("invoice has no line items or expenses")
	// ErrInconsistentTotals indicates the computed cash and equity portions do not
	// recompose the invoice total. It signals a bug in the engine, never bad input.
	ErrInconsistentTotals = errors.New("cash and equity do not sum to invoice total")
)

// LineItem describes a unit of billed work before pricing.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	// RateCents overrides the contractor default rate when set.
	RateCents *Money
}

// PricedLine pairs a line item with the rate and amount it was priced at.
type PricedLine struct {
	Description string
	Quantity    decimal.Decimal
	RateCents   Money
	AmountCents Money
}

// LineAggregate holds the priced lines and their integer sum.
type LineAggregate struct {
	Lines      []PricedLine
	TotalCents Money
}

// AggregateLineItems prices every line at its own or the default rate and sums
// the already-rounded per-line amounts. The services total is always the sum of
// rounded parts, never a re-rounded sum of raw products.
func AggregateLineItems(items []LineItem, defaultRate Money) (LineAggregate, error) {
	agg := LineAggregate{Lines: make([]PricedLine, 0, len(items))}
	for _, it := range items {
		if it.Quantity.IsNegative() {
			return LineAggregate{}, ErrInvalidQuantity
		}
		rate := defaultRate
		if it.RateCents != nil {
			rate = *it.RateCents
		}
		if rate < 0 {
			return LineAggregate{}, ErrInvalidRate
		}
		amount := ToCents(it.Quantity.Mul(decimal.NewFromInt(rate)))
		agg.Lines = append(agg.Lines, PricedLine{
			Description: it.Description,
			Quantity:    it.Quantity,
			RateCents:   rate,
			AmountCents: amount,
		})
		agg.TotalCents += amount
	}
	return agg, nil
}

// Expense is a reimbursable cost attached to an invoice.
type Expense struct {
	Description string
	AmountCents Money
	Category    string
	ReceiptKey  string
}

// AggregateExpenses sums expense amounts. Expenses are reimbursed in full and
// never participate in the equity split.
func AggregateExpenses(expenses []Expense) (Money, error) {
	var total Money
	for _, e := range expenses {
		if e.AmountCents < 0 {
			return 0, ErrInvalidAmount
		}
		total += e.AmountCents
	}
	return total, nil
}

// Split is the division of a services total between cash and equity.
type Split struct {
	CashCents   Money
	EquityCents Money
}

// SplitServices divides the services total at the given whole percentage.
// The equity share uses integer floor division; cash is derived by subtraction
// so the two portions always recompose the input exactly.
func SplitServices(servicesTotal Money, equityPercent int32) Split {
	if equityPercent <= 0 || servicesTotal <= 0 {
		return Split{CashCents: servicesTotal}
	}
	if equityPercent > 100 {
		equityPercent = 100
	}
	equity := (servicesTotal * Money(equityPercent)) / 100
	return Split{CashCents: servicesTotal - equity, EquityCents: equity}
}

// Computation is the final money breakdown persisted on an invoice.
type Computation struct {
	Lines              []PricedLine
	ServicesTotalCents Money
	ExpensesTotalCents Money
	TotalCents         Money
	CashCents          Money
	EquityCents        Money
	EquityPercent      int32
}

// Assemble combines priced lines and an expenses total into the final invoice
// breakdown. Only the services portion is split; expenses are added to the
// cash side afterwards.
func Assemble(lines LineAggregate, expensesTotal Money, equityPercent int32) (Computation, error) {
	split := SplitServices(lines.TotalCents, equityPercent)
	c := Computation{
		Lines:              lines.Lines,
		ServicesTotalCents: lines.TotalCents,
		ExpensesTotalCents: expensesTotal,
		TotalCents:         lines.TotalCents + expensesTotal,
		CashCents:          split.CashCents + expensesTotal,
		EquityCents:        split.EquityCents,
		EquityPercent:      equityPercent,
	}
	if c.CashCents+c.EquityCents != c.TotalCents {
		return Computation{}, ErrInconsistentTotals
	}
	return c, nil
}

// Compute runs the full pipeline: price lines, sum expenses, split the
// services portion, assemble totals.
func Compute(items []LineItem, expenses []Expense, defaultRate Money, equityPercent int32) (Computation, error) {
	if len(items) == 0 && len(expenses) == 0 {
		return Computation{}, ErrEmptyInvoice
	}
	lines, err := AggregateLineItems(items, defaultRate)
	if err != nil {
		return Computation{}, err
	}
	expensesTotal, err := AggregateExpenses(expenses)
	if err != nil {
		return Computation{}, err
	}
	return Assemble(lines, expensesTotal, equityPercent)
}
