package equity

import (
	"context"
	"testing"

	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
)

func TestRecordAllocationInsertsOnce(t *testing.T) {
	q := &stubQuerier{}
	svc := &Service{Q: q}
	grant := dbgen.EquityGrant{ID: newUUID(t), SharePriceCents: 500}
	invoiceID := newUUID(t)

	if err := svc.RecordAllocation(context.Background(), nil, grant, invoiceID, 120000); err != nil {
		t.Fatalf("RecordAllocation returned error: %v", err)
	}
	if len(q.inserted) != 1 {
		t.Fatalf("expected one allocation insert, got %d", len(q.inserted))
	}
	if q.inserted[0].AmountCents != 120000 {
		t.Fatalf("allocation amount = %d, want 120000", q.inserted[0].AmountCents)
	}
	if q.inserted[0].ShareCount != 240 {
		t.Fatalf("share count = %d, want 240", q.inserted[0].ShareCount)
	}
	if len(q.increased) != 1 || q.increased[0].AllocatedCents != 120000 {
		t.Fatalf("grant allocated counter not incremented: %+v", q.increased)
	}
}

func TestRecordAllocationIsIdempotentPerInvoice(t *testing.T) {
	existing := dbgen.EquityAllocation{AmountCents: 3000}
	q := &stubQuerier{allocation: &existing}
	svc := &Service{Q: q}

	if err := svc.RecordAllocation(context.Background(), nil, dbgen.EquityGrant{ID: newUUID(t), SharePriceCents: 100}, newUUID(t), 3000); err != nil {
		t.Fatalf("RecordAllocation returned error: %v", err)
	}
	if len(q.inserted) != 0 {
		t.Fatalf("duplicate approval must not insert a second allocation")
	}
	if len(q.increased) != 0 {
		t.Fatalf("duplicate approval must not increment the grant counter")
	}
}

func TestRecordAllocationSkipsZeroAmounts(t *testing.T) {
	q := &stubQuerier{}
	svc := &Service{Q: q}

	if err := svc.RecordAllocation(context.Background(), nil, dbgen.EquityGrant{ID: newUUID(t), SharePriceCents: 100}, newUUID(t), 0); err != nil {
		t.Fatalf("RecordAllocation returned error: %v", err)
	}
	if len(q.inserted) != 0 {
		t.Fatalf("zero equity amount must not create an allocation")
	}
}
