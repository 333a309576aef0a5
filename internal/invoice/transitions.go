package invoice

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/crewpay/backend-crewpay/internal/common"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/events"
)

// Approve moves an invoice from RECEIVED or REJECTED to APPROVED and records
// the equity allocation against the contractor's grant in the same
// transaction. Approving twice is rejected by the status guard.
func (s *Service) Approve(ctx context.Context, companyID, invoiceID string) (dbgen.Invoice, error) {
	cID, iID, err := scopeIDs(companyID, invoiceID)
	if err != nil {
		return dbgen.Invoice{}, err
	}
	if _, err := s.Q.GetInvoiceByID(ctx, dbgen.GetInvoiceByIDParams{ID: iID, CompanyID: cID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Invoice{}, common.NewAppError("NOT_FOUND", "invoice not found", http.StatusNotFound, err)
		}
		return dbgen.Invoice{}, fmt.Errorf("load invoice: %w", err)
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return dbgen.Invoice{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	qtx := s.Q.WithTx(tx)

	approved, err := qtx.ApproveInvoice(ctx, dbgen.ApproveInvoiceParams{ID: iID, CompanyID: cID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Invoice{}, common.NewAppError("INVALID_STATE", "invoice cannot be approved from its current status", http.StatusConflict, err)
		}
		return dbgen.Invoice{}, fmt.Errorf("approve invoice: %w", err)
	}
	if approved.EquityAmountCents > 0 && s.Equity != nil {
		contractor, err := qtx.GetCompanyContractorByID(ctx, dbgen.GetCompanyContractorByIDParams{ID: approved.CompanyContractorID, CompanyID: cID})
		if err != nil {
			return dbgen.Invoice{}, fmt.Errorf("load contractor for allocation: %w", err)
		}
		decision, err := s.Equity.Resolve(ctx, contractor, approved.InvoiceDate.Time, true)
		if err != nil {
			return dbgen.Invoice{}, fmt.Errorf("resolve grant for allocation: %w", err)
		}
		if decision.Grant != nil {
			if err := s.Equity.RecordAllocation(ctx, qtx, *decision.Grant, approved.ID, approved.EquityAmountCents); err != nil {
				return dbgen.Invoice{}, fmt.Errorf("record allocation: %w", err)
			}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return dbgen.Invoice{}, err
	}

	s.emitTransition(ctx, events.TopicInvoiceApproved, approved)
	return approved, nil
}

// Reject moves a RECEIVED invoice to REJECTED with a reason the contractor
// can act on.
func (s *Service) Reject(ctx context.Context, companyID, invoiceID, reason string) (dbgen.Invoice, error) {
	cID, iID, err := scopeIDs(companyID, invoiceID)
	if err != nil {
		return dbgen.Invoice{}, err
	}
	if _, err := s.Q.GetInvoiceByID(ctx, dbgen.GetInvoiceByIDParams{ID: iID, CompanyID: cID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Invoice{}, common.NewAppError("NOT_FOUND", "invoice not found", http.StatusNotFound, err)
		}
		return dbgen.Invoice{}, fmt.Errorf("load invoice: %w", err)
	}
	rejected, err := s.Q.RejectInvoice(ctx, dbgen.RejectInvoiceParams{
		ID:              iID,
		CompanyID:       cID,
		RejectionReason: toNullableText(&reason),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Invoice{}, common.NewAppError("INVALID_STATE", "only received invoices can be rejected", http.StatusConflict, err)
		}
		return dbgen.Invoice{}, fmt.Errorf("reject invoice: %w", err)
	}
	s.emitTransition(ctx, events.TopicInvoiceRejected, rejected)
	return rejected, nil
}

// Pay moves an APPROVED (or FAILED, for retries) invoice to PAYMENT_PENDING
// and enqueues the payout for asynchronous execution. The terminal PAID or
// FAILED status is written by the payout worker.
func (s *Service) Pay(ctx context.Context, companyID, invoiceID string) (dbgen.Invoice, error) {
	cID, iID, err := scopeIDs(companyID, invoiceID)
	if err != nil {
		return dbgen.Invoice{}, err
	}
	if _, err := s.Q.GetInvoiceByID(ctx, dbgen.GetInvoiceByIDParams{ID: iID, CompanyID: cID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Invoice{}, common.NewAppError("NOT_FOUND", "invoice not found", http.StatusNotFound, err)
		}
		return dbgen.Invoice{}, fmt.Errorf("load invoice: %w", err)
	}
	pending, err := s.Q.MarkInvoicePaymentPending(ctx, dbgen.MarkInvoicePaymentPendingParams{ID: iID, CompanyID: cID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Invoice{}, common.NewAppError("INVALID_STATE", "invoice is not ready for payment", http.StatusConflict, err)
		}
		return dbgen.Invoice{}, fmt.Errorf("mark payment pending: %w", err)
	}
	if s.Payouts != nil {
		if err := s.Payouts.EnqueuePayout(ctx, companyID, invoiceID); err != nil {
			// The invoice stays PAYMENT_PENDING; admins can retry via the
			// payout sweep or by re-issuing the pay call after a failure.
			return pending, fmt.Errorf("enqueue payout: %w", err)
		}
	}
	return pending, nil
}

func (s *Service) emitTransition(ctx context.Context, topic string, inv dbgen.Invoice) {
	if s.Events == nil {
		return
	}
	payload := map[string]any{
		"invoiceId":     common.UUIDString(inv.ID),
		"invoiceNumber": inv.InvoiceNumber,
		"companyId":     common.UUIDString(inv.CompanyID),
		"totalCents":    inv.TotalAmountCents,
		"cashCents":     inv.CashAmountCents,
		"equityCents":   inv.EquityAmountCents,
		"status":        string(inv.Status),
	}
	if inv.RejectionReason.Valid {
		payload["rejectionReason"] = inv.RejectionReason.String
	}
	if contractor, err := s.Q.GetCompanyContractorByID(ctx, dbgen.GetCompanyContractorByIDParams{ID: inv.CompanyContractorID, CompanyID: inv.CompanyID}); err == nil {
		if user, err := s.Q.GetUserByID(ctx, contractor.UserID); err == nil && user.Email != "" {
			payload["email"] = user.Email
		}
	}
	_, _ = s.Events.Emit(ctx, topic, inv.ID, payload)
}

func scopeIDs(companyID, invoiceID string) (pgtype.UUID, pgtype.UUID, error) {
	cID, err := common.ToUUID(companyID)
	if err != nil {
		return pgtype.UUID{}, pgtype.UUID{}, common.NewAppError("BAD_REQUEST", "invalid company id", http.StatusBadRequest, err)
	}
	iID, err := common.ToUUID(invoiceID)
	if err != nil {
		return pgtype.UUID{}, pgtype.UUID{}, common.NewAppError("BAD_REQUEST", "invalid invoice id", http.StatusBadRequest, err)
	}
	return cID, iID, nil
}
