package analytics

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
)

// Handler exposes analytics read endpoints scoped to the active company.
type Handler struct {
	Svc *Service
}

// Overview returns aggregated invoice totals for dashboards.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	companyID, ok := company.From(r.Context())
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "company scope required", nil)
		return
	}
	row, err := h.Svc.Overview(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"invoiceCount": row.InvoiceCount,
		"totalCents":   row.TotalCents,
		"cashCents":    row.CashCents,
		"equityCents":  row.EquityCents,
	}})
}

// Volume returns per-day invoice counts and totals for a date range.
func (h *Handler) Volume(w http.ResponseWriter, r *http.Request) {
	companyID, ok := company.From(r.Context())
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "company scope required", nil)
		return
	}
	query := r.URL.Query()
	fromStr := query.Get("from")
	toStr := query.Get("to")
	now := h.Svc.now()
	var (
		from time.Time
		to   time.Time
		err  error
	)
	if fromStr != "" && toStr != "" {
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid from date", nil)
			return
		}
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid to date", nil)
			return
		}
	} else {
		days := h.Svc.DefaultRange
		if days <= 0 {
			days = 30
		}
		if raw := query.Get("days"); raw != "" {
			parsed := common.AtoiDefault(raw, days)
			if parsed > 0 {
				days = parsed
			}
		}
		to = now
		from = to.AddDate(0, 0, -days)
	}
	if to.Before(from) {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "from must not be after to", nil)
		return
	}
	rows, err := h.Svc.Volume(r.Context(), companyID, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	data := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		data = append(data, map[string]any{
			"invoiceDate":  row.InvoiceDate.Time.Format("2006-01-02"),
			"invoiceCount": row.InvoiceCount,
			"totalCents":   row.TotalCents,
			"equityCents":  row.EquityCents,
		})
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": data})
}

// GrantAllocations returns per-grant share allocation totals for a contractor.
func (h *Handler) GrantAllocations(w http.ResponseWriter, r *http.Request) {
	companyID, ok := company.From(r.Context())
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "company scope required", nil)
		return
	}
	contractorID := chi.URLParam(r, "contractorId")
	rows, err := h.Svc.GrantAllocations(r.Context(), companyID, contractorID)
	if err != nil {
		writeError(w, err)
		return
	}
	data := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		data = append(data, map[string]any{
			"grantId":         common.UUIDString(row.GrantID),
			"effectiveYear":   row.EffectiveYear,
			"sharePriceCents": row.SharePriceCents,
			"allocatedCents":  row.AllocatedCents,
			"allocatedShares": row.AllocatedShares,
		})
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": data})
}

func writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "ANALYTICS_ERROR", "failed to load analytics", nil)
}
