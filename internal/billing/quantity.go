package billing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// ParseQuantity interprets a raw quantity string as either a plain decimal
// count or an HH:MM duration expressed in decimal hours. Negative and
// malformed values fail with ErrInvalidQuantity.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, ErrInvalidQuantity
	}
	if h, m, ok := strings.Cut(s, ":"); ok {
		return parseClock(h, m)
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, ErrInvalidQuantity
	}
	return d, nil
}

func parseClock(h, m string) (decimal.Decimal, error) {
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || strings.HasPrefix(h, "-") || strings.HasPrefix(h, "+") {
		return decimal.Decimal{}, ErrInvalidQuantity
	}
	if len(m) != 2 {
		return decimal.Decimal{}, ErrInvalidQuantity
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return decimal.Decimal{}, ErrInvalidQuantity
	}
	total := int64(hours)*60 + int64(minutes)
	return decimal.NewFromInt(total).Div(minutesPerHour), nil
}

// ToCents rounds a decimal cent value to the nearest whole cent, halves away
// from zero. Amounts are never truncated.
func ToCents(d decimal.Decimal) Money {
	return d.Round(0).IntPart()
}
