package invoice

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
)

// AdminHandler exposes the company-admin invoice endpoints: review queues and
// the approve/reject/pay transitions.
type AdminHandler struct {
	Service  *Service
	Validate *validator.Validate
}

type rejectPayload struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

// List returns the company's invoices, optionally filtered by status.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := company.From(r.Context())
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "COMPANY_REQUIRED", "company is required", nil)
		return
	}
	cID, err := common.ToUUID(companyID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid company id", nil)
		return
	}
	page, perPage := common.ParsePagination(r, 20)
	limit, offset := int32(perPage), int32((page-1)*perPage)

	var (
		invoices []dbgen.Invoice
		total    int64
	)
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, valid := parseStatus(raw)
		if !valid {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "unknown invoice status", nil)
			return
		}
		invoices, err = h.Service.Q.ListCompanyInvoicesByStatus(r.Context(), dbgen.ListCompanyInvoicesByStatusParams{
			CompanyID: cID, Status: status, Limit: limit, Offset: offset,
		})
		if err == nil {
			total, err = h.Service.Q.CountCompanyInvoicesByStatus(r.Context(), dbgen.CountCompanyInvoicesByStatusParams{CompanyID: cID, Status: status})
		}
	} else {
		invoices, err = h.Service.Q.ListCompanyInvoices(r.Context(), dbgen.ListCompanyInvoicesParams{
			CompanyID: cID, Limit: limit, Offset: offset,
		})
		if err == nil {
			total, err = h.Service.Q.CountCompanyInvoices(r.Context(), cID)
		}
	}
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list invoices", nil)
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

// Get returns one invoice with its lines and expenses.
func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	companyID, ok := company.From(r.Context())
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "COMPANY_REQUIRED", "company is required", nil)
		return
	}
	cID, err := common.ToUUID(companyID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid company id", nil)
		return
	}
	invoiceID, err := common.ToUUID(chi.URLParam(r, "invoiceId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid invoice id", nil)
		return
	}
	inv, err := h.Service.Q.GetInvoiceByID(r.Context(), dbgen.GetInvoiceByIDParams{ID: invoiceID, CompanyID: cID})
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

// Approve transitions an invoice to APPROVED and records its equity
// allocation.
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	companyID, ok := company.From(r.Context())
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "COMPANY_REQUIRED", "company is required", nil)
		return
	}
	inv, err := h.Service.Approve(r.Context(), companyID, chi.URLParam(r, "invoiceId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toInvoiceResponse(inv)})
}

// Reject transitions a RECEIVED invoice to REJECTED with a reason.
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	companyID, ok := company.From(r.Context())
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "COMPANY_REQUIRED", "company is required", nil)
		return
	}
	var payload rejectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "a rejection reason is required", common.ValidationDetails(err))
			return
		}
	}
	inv, err := h.Service.Reject(r.Context(), companyID, chi.URLParam(r, "invoiceId"), payload.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toInvoiceResponse(inv)})
}

// Pay transitions an APPROVED or FAILED invoice to PAYMENT_PENDING and
// enqueues the payout.
func (h *AdminHandler) Pay(w http.ResponseWriter, r *http.Request) {
	companyID, ok := company.From(r.Context())
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "COMPANY_REQUIRED", "company is required", nil)
		return
	}
	inv, err := h.Service.Pay(r.Context(), companyID, chi.URLParam(r, "invoiceId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{"data": toInvoiceResponse(inv)})
}

func parseStatus(raw string) (dbgen.InvoiceStatus, bool) {
	status := dbgen.InvoiceStatus(strings.ToUpper(raw))
	switch status {
	case dbgen.InvoiceStatusRECEIVED,
		dbgen.InvoiceStatusAPPROVED,
		dbgen.InvoiceStatusREJECTED,
		dbgen.InvoiceStatusPAYMENTPENDING,
		dbgen.InvoiceStatusPAID,
		dbgen.InvoiceStatusFAILED:
		return status, true
	}
	return "", false
}
