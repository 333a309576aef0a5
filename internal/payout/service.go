package payout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/events"
	"github.com/crewpay/backend-crewpay/internal/lock"
	"github.com/crewpay/backend-crewpay/internal/obs"
)

// Service executes payouts from the worker. One invoice is processed under a
// Redis lock at a time, and only while it sits in PAYMENT_PENDING, so task
// redelivery cannot double-pay.
type Service struct {
	Q        *dbgen.Queries
	Provider Provider
	Events   *events.Bus
	Locker   lock.Locker
	Settings *company.SettingsCache
	LockTTL  time.Duration
}

// Execute runs the payout for an invoice. A provider rejection marks the
// invoice FAILED and is not retried by the queue; infrastructure errors are
// returned so the task is redelivered.
func (s *Service) Execute(ctx context.Context, companyID, invoiceID string) error {
	ttl := s.LockTTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return s.Locker.WithLock(ctx, "lock:payout:"+invoiceID, ttl, func(ctx context.Context) error {
		return s.execute(ctx, companyID, invoiceID)
	})
}

func (s *Service) execute(ctx context.Context, companyID, invoiceID string) error {
	cID, err := common.ToUUID(companyID)
	if err != nil {
		return fmt.Errorf("invalid company id %q: %w", companyID, err)
	}
	iID, err := common.ToUUID(invoiceID)
	if err != nil {
		return fmt.Errorf("invalid invoice id %q: %w", invoiceID, err)
	}
	inv, err := s.Q.GetInvoiceByID(ctx, dbgen.GetInvoiceByIDParams{ID: iID, CompanyID: cID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("load invoice: %w", err)
	}
	if inv.Status != dbgen.InvoiceStatusPAYMENTPENDING {
		// Already settled by an earlier delivery of this task.
		return nil
	}

	currency := "USD"
	if s.Settings != nil {
		if settings, err := s.Settings.Get(ctx, companyID); err == nil && settings.Currency != "" {
			currency = settings.Currency
		}
	}

	result, providerErr := s.Provider.CreatePayout(ctx, Request{
		InvoiceID:   invoiceID,
		CompanyID:   companyID,
		AmountCents: inv.CashAmountCents,
		Currency:    currency,
		Reference:   inv.InvoiceNumber,
	})
	if providerErr != nil {
		s.count("failed")
		failed, err := s.Q.MarkInvoicePaymentFailed(ctx, iID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("mark payment failed: %w", err)
		}
		s.emit(ctx, events.TopicInvoicePaymentFailed, failed, map[string]any{
			"reason": providerErr.Error(),
		})
		return nil
	}

	paid, err := s.Q.MarkInvoicePaid(ctx, iID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("mark paid: %w", err)
	}
	s.count("ok")
	s.emit(ctx, events.TopicInvoicePaid, paid, map[string]any{
		"providerRef": result.ProviderRef,
	})
	return nil
}

func (s *Service) count(result string) {
	if obs.PayoutTotal != nil && s.Provider != nil {
		obs.PayoutTotal.WithLabelValues(s.Provider.Name(), result).Inc()
	}
}

func (s *Service) emit(ctx context.Context, topic string, inv dbgen.Invoice, extra map[string]any) {
	if s.Events == nil {
		return
	}
	payload := map[string]any{
		"invoiceId":     common.UUIDString(inv.ID),
		"invoiceNumber": inv.InvoiceNumber,
		"companyId":     common.UUIDString(inv.CompanyID),
		"cashCents":     inv.CashAmountCents,
		"equityCents":   inv.EquityAmountCents,
		"status":        string(inv.Status),
	}
	for k, v := range extra {
		payload[k] = v
	}
	if contractor, err := s.Q.GetCompanyContractorByID(ctx, dbgen.GetCompanyContractorByIDParams{ID: inv.CompanyContractorID, CompanyID: inv.CompanyID}); err == nil {
		if user, err := s.Q.GetUserByID(ctx, contractor.UserID); err == nil && user.Email != "" {
			payload["email"] = user.Email
		}
	}
	_, _ = s.Events.Emit(ctx, topic, inv.ID, payload)
}
