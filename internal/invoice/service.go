package invoice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/crewpay/backend-crewpay/internal/billing"
	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/equity"
	"github.com/crewpay/backend-crewpay/internal/events"
	"github.com/crewpay/backend-crewpay/internal/obs"
)

const dateLayout = "2006-01-02"

// LineItemInput is one unit of billed work as submitted.
type LineItemInput struct {
	Description string `json:"description" validate:"required,max=280"`
	// Quantity accepts either a bare decimal ("2.5") or HH:MM time notation.
	Quantity  string `json:"quantity" validate:"required"`
	RateCents *int64 `json:"rateCents" validate:"omitempty,gte=0"`
}

// ExpenseInput is one reimbursable expense as submitted.
type ExpenseInput struct {
	Description string  `json:"description" validate:"required,max=280"`
	AmountCents int64   `json:"amountCents" validate:"gte=0"`
	Category    *string `json:"category" validate:"omitempty,max=64"`
	ReceiptKey  *string `json:"receiptKey" validate:"omitempty,max=512"`
}

// Input is a full invoice submission.
type Input struct {
	InvoiceNumber string          `json:"invoiceNumber" validate:"omitempty,max=40"`
	InvoiceDate   string          `json:"invoiceDate" validate:"required"`
	Notes         *string         `json:"notes" validate:"omitempty,max=2000"`
	LineItems     []LineItemInput `json:"lineItems" validate:"dive"`
	Expenses      []ExpenseInput  `json:"expenses" validate:"dive"`
}

// Output carries the persisted invoice together with its computed breakdown.
type Output struct {
	Invoice     dbgen.Invoice
	Computation billing.Computation
}

// PayoutScheduler enqueues asynchronous payout execution for a paid invoice.
type PayoutScheduler interface {
	EnqueuePayout(ctx context.Context, companyID, invoiceID string) error
}

// Service runs the invoice lifecycle: computation, persistence and status
// transitions. All money math is delegated to the billing engine; the service
// never rounds on its own.
type Service struct {
	Q        *dbgen.Queries
	Pool     *pgxpool.Pool
	Settings *company.SettingsCache
	Equity   *equity.Service
	Events   *events.Bus
	Payouts  PayoutScheduler
	Now      func() time.Time
}

// Submit validates a submission, computes the cash/equity breakdown and
// persists the invoice with its lines and expenses in one transaction.
func (s *Service) Submit(ctx context.Context, companyID, userID string, in Input) (Output, error) {
	if s == nil || s.Q == nil || s.Pool == nil {
		return Output{}, errors.New("invoice service not configured")
	}
	cID, err := common.ToUUID(companyID)
	if err != nil {
		return Output{}, common.NewAppError("BAD_REQUEST", "invalid company id", http.StatusBadRequest, err)
	}
	uID, err := common.ToUUID(userID)
	if err != nil {
		return Output{}, common.NewAppError("BAD_REQUEST", "invalid user id", http.StatusBadRequest, err)
	}
	invoiceDate, err := time.Parse(dateLayout, in.InvoiceDate)
	if err != nil {
		return Output{}, common.NewAppError("VALIDATION", "invoiceDate must be YYYY-MM-DD", http.StatusUnprocessableEntity, err)
	}

	contractor, err := s.Q.GetContractorForUser(ctx, dbgen.GetContractorForUserParams{CompanyID: cID, UserID: uID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Output{}, common.NewAppError("NOT_A_CONTRACTOR", "no contractor relationship with this company", http.StatusForbidden, err)
		}
		return Output{}, fmt.Errorf("load contractor: %w", err)
	}

	comp, err := s.compute(ctx, "submit", companyID, contractor, invoiceDate, in)
	if err != nil {
		return Output{}, err
	}

	number := in.InvoiceNumber
	if number == "" {
		count, err := s.Q.CountInvoicesForNumbering(ctx, contractor.ID)
		if err != nil {
			return Output{}, fmt.Errorf("derive invoice number: %w", err)
		}
		number = FormatInvoiceNumber(count + 1)
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Output{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	qtx := s.Q.WithTx(tx)

	created, err := qtx.InsertInvoice(ctx, dbgen.InsertInvoiceParams{
		CompanyID:           cID,
		CompanyContractorID: contractor.ID,
		InvoiceNumber:       number,
		InvoiceDate:         pgtype.Date{Time: invoiceDate, Valid: true},
		ServicesTotalCents:  comp.ServicesTotalCents,
		ExpensesTotalCents:  comp.ExpensesTotalCents,
		TotalAmountCents:    comp.TotalCents,
		CashAmountCents:     comp.CashCents,
		EquityAmountCents:   comp.EquityCents,
		EquityPercentage:    comp.EquityPercent,
		Notes:               toNullableText(in.Notes),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return Output{}, common.NewAppError("INVOICE_NUMBER_TAKEN", "invoice number already used", http.StatusConflict, err)
		}
		return Output{}, fmt.Errorf("insert invoice: %w", err)
	}
	if err := insertLinesAndExpenses(ctx, qtx, created.ID, comp.Lines, in.Expenses); err != nil {
		return Output{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Output{}, err
	}

	if obs.InvoiceComputedTotal != nil {
		obs.InvoiceComputedTotal.WithLabelValues("submit", "ok").Inc()
	}
	s.emit(ctx, events.TopicInvoiceSubmitted, created, contractor)
	return Output{Invoice: created, Computation: comp}, nil
}

// Update recomputes and replaces an invoice that is still editable. Editing is
// only allowed while the invoice sits in RECEIVED or REJECTED; a successful
// update returns it to RECEIVED.
func (s *Service) Update(ctx context.Context, companyID, userID, invoiceID string, in Input) (Output, error) {
	if s == nil || s.Q == nil || s.Pool == nil {
		return Output{}, errors.New("invoice service not configured")
	}
	cID, err := common.ToUUID(companyID)
	if err != nil {
		return Output{}, common.NewAppError("BAD_REQUEST", "invalid company id", http.StatusBadRequest, err)
	}
	uID, err := common.ToUUID(userID)
	if err != nil {
		return Output{}, common.NewAppError("BAD_REQUEST", "invalid user id", http.StatusBadRequest, err)
	}
	iID, err := common.ToUUID(invoiceID)
	if err != nil {
		return Output{}, common.NewAppError("BAD_REQUEST", "invalid invoice id", http.StatusBadRequest, err)
	}
	invoiceDate, err := time.Parse(dateLayout, in.InvoiceDate)
	if err != nil {
		return Output{}, common.NewAppError("VALIDATION", "invoiceDate must be YYYY-MM-DD", http.StatusUnprocessableEntity, err)
	}

	contractor, err := s.Q.GetContractorForUser(ctx, dbgen.GetContractorForUserParams{CompanyID: cID, UserID: uID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Output{}, common.NewAppError("NOT_A_CONTRACTOR", "no contractor relationship with this company", http.StatusForbidden, err)
		}
		return Output{}, fmt.Errorf("load contractor: %w", err)
	}
	existing, err := s.Q.GetInvoiceForContractor(ctx, dbgen.GetInvoiceForContractorParams{ID: iID, CompanyContractorID: contractor.ID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Output{}, common.NewAppError("NOT_FOUND", "invoice not found", http.StatusNotFound, err)
		}
		return Output{}, fmt.Errorf("load invoice: %w", err)
	}
	if !Editable(existing.Status) {
		return Output{}, common.NewAppError("INVALID_STATE", "invoice can no longer be edited", http.StatusConflict, nil)
	}

	comp, err := s.compute(ctx, "update", companyID, contractor, invoiceDate, in)
	if err != nil {
		return Output{}, err
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Output{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	qtx := s.Q.WithTx(tx)

	updated, err := qtx.UpdateInvoiceAmounts(ctx, dbgen.UpdateInvoiceAmountsParams{
		ID:                  existing.ID,
		CompanyContractorID: contractor.ID,
		InvoiceDate:         pgtype.Date{Time: invoiceDate, Valid: true},
		Notes:               toNullableText(in.Notes),
		ServicesTotalCents:  comp.ServicesTotalCents,
		ExpensesTotalCents:  comp.ExpensesTotalCents,
		TotalAmountCents:    comp.TotalCents,
		CashAmountCents:     comp.CashCents,
		EquityAmountCents:   comp.EquityCents,
		EquityPercentage:    comp.EquityPercent,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Output{}, common.NewAppError("INVALID_STATE", "invoice can no longer be edited", http.StatusConflict, err)
		}
		return Output{}, fmt.Errorf("update invoice: %w", err)
	}
	if err := qtx.DeleteInvoiceLineItems(ctx, updated.ID); err != nil {
		return Output{}, fmt.Errorf("replace line items: %w", err)
	}
	if err := qtx.DeleteInvoiceExpenses(ctx, updated.ID); err != nil {
		return Output{}, fmt.Errorf("replace expenses: %w", err)
	}
	if err := insertLinesAndExpenses(ctx, qtx, updated.ID, comp.Lines, in.Expenses); err != nil {
		return Output{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Output{}, err
	}

	if obs.InvoiceComputedTotal != nil {
		obs.InvoiceComputedTotal.WithLabelValues("update", "ok").Inc()
	}
	return Output{Invoice: updated, Computation: comp}, nil
}

// compute runs the shared pipeline: parse inputs, resolve the equity split,
// and run the billing engine.
func (s *Service) compute(ctx context.Context, op, companyID string, contractor dbgen.CompanyContractor, invoiceDate time.Time, in Input) (billing.Computation, error) {
	items := make([]billing.LineItem, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		qty, err := billing.ParseQuantity(li.Quantity)
		if err != nil {
			if obs.InvoiceComputedTotal != nil {
				obs.InvoiceComputedTotal.WithLabelValues(op, "invalid").Inc()
			}
			return billing.Computation{}, err
		}
		items = append(items, billing.LineItem{Description: li.Description, Quantity: qty, RateCents: li.RateCents})
	}
	expenses := make([]billing.Expense, 0, len(in.Expenses))
	for _, e := range in.Expenses {
		exp := billing.Expense{Description: e.Description, AmountCents: e.AmountCents}
		if e.Category != nil {
			exp.Category = *e.Category
		}
		if e.ReceiptKey != nil {
			exp.ReceiptKey = *e.ReceiptKey
		}
		expenses = append(expenses, exp)
	}

	equityEnabled := false
	if s.Settings != nil {
		settings, err := s.Settings.Get(ctx, companyID)
		if err != nil {
			return billing.Computation{}, fmt.Errorf("load company settings: %w", err)
		}
		equityEnabled = settings.EquityEnabled
	}

	var percent int32
	if s.Equity != nil {
		decision, err := s.Equity.Resolve(ctx, contractor, invoiceDate, equityEnabled)
		if err != nil {
			return billing.Computation{}, err
		}
		percent = decision.Percent
	}

	var defaultRate billing.Money
	if contractor.PayRateCents.Valid {
		defaultRate = contractor.PayRateCents.Int64
	}
	comp, err := billing.Compute(items, expenses, defaultRate, percent)
	if err != nil {
		if obs.InvoiceComputedTotal != nil {
			obs.InvoiceComputedTotal.WithLabelValues(op, "invalid").Inc()
		}
		return billing.Computation{}, err
	}
	return comp, nil
}

func insertLinesAndExpenses(ctx context.Context, qtx *dbgen.Queries, invoiceID pgtype.UUID, lines []billing.PricedLine, expenses []ExpenseInput) error {
	for i, line := range lines {
		if err := qtx.InsertInvoiceLineItem(ctx, dbgen.InsertInvoiceLineItemParams{
			InvoiceID:   invoiceID,
			Position:    int32(i),
			Description: line.Description,
			Quantity:    numericFromDecimal(line.Quantity),
			RateCents:   line.RateCents,
			AmountCents: line.AmountCents,
		}); err != nil {
			return fmt.Errorf("insert line item: %w", err)
		}
	}
	for _, e := range expenses {
		if err := qtx.InsertInvoiceExpense(ctx, dbgen.InsertInvoiceExpenseParams{
			InvoiceID:   invoiceID,
			Description: e.Description,
			AmountCents: e.AmountCents,
			Category:    toNullableText(e.Category),
			ReceiptKey:  toNullableText(e.ReceiptKey),
		}); err != nil {
			return fmt.Errorf("insert expense: %w", err)
		}
	}
	return nil
}

func (s *Service) emit(ctx context.Context, topic string, inv dbgen.Invoice, contractor dbgen.CompanyContractor) {
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
	}
	if user, err := s.Q.GetUserByID(ctx, contractor.UserID); err == nil && user.Email != "" {
		payload["email"] = user.Email
	}
	_, _ = s.Events.Emit(ctx, topic, inv.ID, payload)
}

// FormatInvoiceNumber builds the sequential number assigned when a submission
// leaves the number blank.
func FormatInvoiceNumber(seq int64) string {
	if seq < 1 {
		seq = 1
	}
	return fmt.Sprintf("INV-%04d", seq)
}

// Editable reports whether an invoice can still be modified by its submitter.
func Editable(status dbgen.InvoiceStatus) bool {
	return status == dbgen.InvoiceStatusRECEIVED || status == dbgen.InvoiceStatusREJECTED
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func toNullableText(v *string) pgtype.Text {
	if v == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *v, Valid: true}
}

func numericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}
