package invoice

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/crewpay/backend-crewpay/internal/billing"
	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/equity"
)

// Handler exposes the contractor-facing invoice endpoints: submit, edit and
// read back their own invoices within the active company.
type Handler struct {
	Service  *Service
	Validate *validator.Validate
}

type invoiceResponse struct {
	ID                 string     `json:"id"`
	InvoiceNumber      string     `json:"invoiceNumber"`
	InvoiceDate        string     `json:"invoiceDate"`
	Status             string     `json:"status"`
	ServicesTotalCents int64      `json:"servicesTotalCents"`
	ExpensesTotalCents int64      `json:"expensesTotalCents"`
	TotalAmountCents   int64      `json:"totalAmountCents"`
	CashAmountCents    int64      `json:"cashAmountCents"`
	EquityAmountCents  int64      `json:"equityAmountCents"`
	EquityPercentage   int32      `json:"equityPercentage"`
	Notes              *string    `json:"notes,omitempty"`
	RejectionReason    *string    `json:"rejectionReason,omitempty"`
	ApprovedAt         *time.Time `json:"approvedAt,omitempty"`
	PaidAt             *time.Time `json:"paidAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

type lineItemResponse struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	RateCents   int64  `json:"rateCents"`
	AmountCents int64  `json:"amountCents"`
}

type expenseResponse struct {
	Description string  `json:"description"`
	AmountCents int64   `json:"amountCents"`
	Category    *string `json:"category,omitempty"`
	ReceiptKey  *string `json:"receiptKey,omitempty"`
}

// Submit creates a new invoice from the request body.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	companyID, userID, ok := h.scope(w, r)
	if !ok {
		return
	}
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(in); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "invalid invoice", common.ValidationDetails(err))
			return
		}
	}
	out, err := h.Service.Submit(r.Context(), companyID, userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": toInvoiceResponse(out.Invoice)})
}

// Update replaces an editable invoice with the recomputed submission.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	companyID, userID, ok := h.scope(w, r)
	if !ok {
		return
	}
	invoiceID := chi.URLParam(r, "invoiceId")
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(in); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "invalid invoice", common.ValidationDetails(err))
			return
		}
	}
	out, err := h.Service.Update(r.Context(), companyID, userID, invoiceID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toInvoiceResponse(out.Invoice)})
}

// ListMine returns the caller's invoices for the active company, newest first.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	companyID, userID, ok := h.scope(w, r)
	if !ok {
		return
	}
	contractor, ok := h.contractor(w, r, companyID, userID)
	if !ok {
		return
	}
	page, perPage := common.ParsePagination(r, 20)
	invoices, err := h.Service.Q.ListInvoicesByContractor(r.Context(), dbgen.ListInvoicesByContractorParams{
		CompanyContractorID: contractor.ID,
		Limit:               int32(perPage),
		Offset:              int32((page - 1) * perPage),
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list invoices", nil)
		return
	}
	total, err := h.Service.Q.CountInvoicesByContractor(r.Context(), contractor.ID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to count invoices", nil)
		return
	}
	response := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		response = append(response, toInvoiceResponse(inv))
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	common.JSON(w, http.StatusOK, map[string]any{
		"data": response,
		"meta": common.Pagination{Page: page, PerPage: perPage, TotalItems: int(total)},
	})
}

// GetMine returns one of the caller's invoices with its lines and expenses.
func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	companyID, userID, ok := h.scope(w, r)
	if !ok {
		return
	}
	contractor, ok := h.contractor(w, r, companyID, userID)
	if !ok {
		return
	}
	invoiceID, err := common.ToUUID(chi.URLParam(r, "invoiceId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid invoice id", nil)
		return
	}
	inv, err := h.Service.Q.GetInvoiceForContractor(r.Context(), dbgen.GetInvoiceForContractorParams{ID: invoiceID, CompanyContractorID: contractor.ID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "invoice not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load invoice", nil)
		return
	}
	writeInvoiceDetail(w, r, h.Service.Q, inv)
}

func (h *Handler) scope(w http.ResponseWriter, r *http.Request) (companyID, userID string, ok bool) {
	companyID, ok = company.From(r.Context())
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "COMPANY_REQUIRED", "company is required", nil)
		return "", "", false
	}
	userID, ok = common.UserID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return "", "", false
	}
	return companyID, userID, true
}

func (h *Handler) contractor(w http.ResponseWriter, r *http.Request, companyID, userID string) (dbgen.CompanyContractor, bool) {
	cID, err := common.ToUUID(companyID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid company id", nil)
		return dbgen.CompanyContractor{}, false
	}
	uID, err := common.ToUUID(userID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid user id", nil)
		return dbgen.CompanyContractor{}, false
	}
	contractor, err := h.Service.Q.GetContractorForUser(r.Context(), dbgen.GetContractorForUserParams{CompanyID: cID, UserID: uID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusForbidden, "NOT_A_CONTRACTOR", "no contractor relationship with this company", nil)
			return dbgen.CompanyContractor{}, false
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load contractor", nil)
		return dbgen.CompanyContractor{}, false
	}
	return contractor, true
}

// writeServiceError maps service and engine errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	switch {
	case errors.Is(err, billing.ErrInvalidQuantity),
		errors.Is(err, billing.ErrInvalidRate),
		errors.Is(err, billing.ErrInvalidAmount),
		errors.Is(err, billing.ErrEmptyInvoice):
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	case errors.Is(err, equity.ErrGrantConflict):
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to compute invoice", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to process invoice", nil)
	}
}

func writeInvoiceDetail(w http.ResponseWriter, r *http.Request, q *dbgen.Queries, inv dbgen.Invoice) {
	lines, err := q.ListInvoiceLineItems(r.Context(), inv.ID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load line items", nil)
		return
	}
	expenses, err := q.ListInvoiceExpenses(r.Context(), inv.ID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load expenses", nil)
		return
	}
	lineResp := make([]lineItemResponse, 0, len(lines))
	for _, li := range lines {
		lineResp = append(lineResp, lineItemResponse{
			Description: li.Description,
			Quantity:    numericString(li.Quantity),
			RateCents:   li.RateCents,
			AmountCents: li.AmountCents,
		})
	}
	expenseResp := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		expenseResp = append(expenseResp, expenseResponse{
			Description: e.Description,
			AmountCents: e.AmountCents,
			Category:    textPtr(e.Category),
			ReceiptKey:  textPtr(e.ReceiptKey),
		})
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"invoice":   toInvoiceResponse(inv),
		"lineItems": lineResp,
		"expenses":  expenseResp,
	}})
}

func toInvoiceResponse(inv dbgen.Invoice) invoiceResponse {
	resp := invoiceResponse{
		ID:                 common.UUIDString(inv.ID),
		InvoiceNumber:      inv.InvoiceNumber,
		Status:             string(inv.Status),
		ServicesTotalCents: inv.ServicesTotalCents,
		ExpensesTotalCents: inv.ExpensesTotalCents,
		TotalAmountCents:   inv.TotalAmountCents,
		CashAmountCents:    inv.CashAmountCents,
		EquityAmountCents:  inv.EquityAmountCents,
		EquityPercentage:   inv.EquityPercentage,
		CreatedAt:          inv.CreatedAt.Time,
	}
	if inv.InvoiceDate.Valid {
		resp.InvoiceDate = inv.InvoiceDate.Time.Format(dateLayout)
	}
	resp.Notes = textPtr(inv.Notes)
	resp.RejectionReason = textPtr(inv.RejectionReason)
	if inv.ApprovedAt.Valid {
		t := inv.ApprovedAt.Time
		resp.ApprovedAt = &t
	}
	if inv.PaidAt.Valid {
		t := inv.PaidAt.Time
		resp.PaidAt = &t
	}
	return resp
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	v := t.String
	return &v
}

func numericString(n pgtype.Numeric) string {
	if !n.Valid || n.Int == nil {
		return "0"
	}
	return decimal.NewFromBigInt(new(big.Int).Set(n.Int), n.Exp).String()
}
