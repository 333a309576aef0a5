package invoice

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
)

func TestFormatInvoiceNumber(t *testing.T) {
	cases := []struct {
		seq  int64
		want string
	}{
		{1, "INV-0001"},
		{42, "INV-0042"},
		{9999, "INV-9999"},
		{10000, "INV-10000"},
		{0, "INV-0001"},
		{-3, "INV-0001"},
	}
	for _, tc := range cases {
		if got := FormatInvoiceNumber(tc.seq); got != tc.want {
			t.Errorf("FormatInvoiceNumber(%d) = %q, want %q", tc.seq, got, tc.want)
		}
	}
}

func TestEditable(t *testing.T) {
	editable := []dbgen.InvoiceStatus{dbgen.InvoiceStatusRECEIVED, dbgen.InvoiceStatusREJECTED}
	for _, s := range editable {
		if !Editable(s) {
			t.Errorf("Editable(%s) = false, want true", s)
		}
	}
	frozen := []dbgen.InvoiceStatus{
		dbgen.InvoiceStatusAPPROVED,
		dbgen.InvoiceStatusPAYMENTPENDING,
		dbgen.InvoiceStatusPAID,
		dbgen.InvoiceStatusFAILED,
	}
	for _, s := range frozen {
		if Editable(s) {
			t.Errorf("Editable(%s) = true, want false", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if status, ok := parseStatus("received"); !ok || status != dbgen.InvoiceStatusRECEIVED {
		t.Errorf("parseStatus(received) = %q, %v", status, ok)
	}
	if status, ok := parseStatus("PAYMENT_PENDING"); !ok || status != dbgen.InvoiceStatusPAYMENTPENDING {
		t.Errorf("parseStatus(PAYMENT_PENDING) = %q, %v", status, ok)
	}
	if _, ok := parseStatus("SHIPPED"); ok {
		t.Error("parseStatus(SHIPPED) accepted an unknown status")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation not detected")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation treated as unique violation")
	}
	if isUniqueViolation(errors.New("plain error")) {
		t.Error("plain error treated as unique violation")
	}
}

func TestNumericRoundTrip(t *testing.T) {
	cases := []string{"2.5", "0.25", "7", "1.3333"}
	for _, raw := range cases {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		n := numericFromDecimal(d)
		if got := numericString(n); got != raw {
			t.Errorf("round trip %q = %q", raw, got)
		}
	}
}

func TestToNullableText(t *testing.T) {
	if toNullableText(nil).Valid {
		t.Error("nil pointer produced a valid text")
	}
	v := "note"
	got := toNullableText(&v)
	if !got.Valid || got.String != "note" {
		t.Errorf("toNullableText = %+v", got)
	}
}
