package equity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/obs"
)

// RecordAllocation settles the equity portion of an approved invoice against
// its grant. The operation is idempotent per invoice: re-approving an invoice
// that already has an allocation is a no-op.
func (s *Service) RecordAllocation(ctx context.Context, q Querier, grant dbgen.EquityGrant, invoiceID pgtype.UUID, amountCents int64) error {
	if s == nil {
		return errors.New("equity service not configured")
	}
	if q == nil {
		q = s.Q
	}
	if q == nil {
		return errors.New("equity service not configured")
	}
	if !invoiceID.Valid || amountCents <= 0 {
		return nil
	}
	_, err := q.GetAllocationByInvoice(ctx, invoiceID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	shares := SharesFor(grant, amountCents)
	if _, err := q.InsertEquityAllocation(ctx, dbgen.InsertEquityAllocationParams{
		EquityGrantID: grant.ID,
		InvoiceID:     invoiceID,
		AmountCents:   amountCents,
		ShareCount:    shares,
	}); err != nil {
		return err
	}
	if err := q.IncreaseGrantAllocatedCents(ctx, dbgen.IncreaseGrantAllocatedCentsParams{
		ID:             grant.ID,
		AllocatedCents: amountCents,
	}); err != nil {
		return err
	}
	if obs.EquityAllocationTotal != nil {
		obs.EquityAllocationTotal.Inc()
	}
	return nil
}
