package equity

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/events"
)

// Handler exposes admin endpoints for managing equity grants.
type Handler struct {
	Q        *dbgen.Queries
	Validate *validator.Validate
	Events   *events.Bus
}

type createGrantPayload struct {
	ContractorID    string `json:"contractorId" validate:"required,uuid4"`
	SharePriceCents int64  `json:"sharePriceCents" validate:"required,gt=0"`
	EffectiveYear   int32  `json:"effectiveYear" validate:"required,gte=2000,lte=2200"`
	VestedShares    int64  `json:"vestedShares" validate:"gte=0"`
	UnvestedShares  int64  `json:"unvestedShares" validate:"gte=0"`
}

type grantResponse struct {
	ID              string     `json:"id"`
	ContractorID    string     `json:"contractorId"`
	SharePriceCents int64      `json:"sharePriceCents"`
	EffectiveYear   int32      `json:"effectiveYear"`
	VestedShares    int64      `json:"vestedShares"`
	UnvestedShares  int64      `json:"unvestedShares"`
	AllocatedCents  int64      `json:"allocatedCents"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Create records a new equity grant for a contractor and year. A second
// active grant for the same contractor/year pair is rejected up front.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "grant queries not configured", nil)
		return
	}
	companyID, ok := company.From(r.Context())
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "COMPANY_REQUIRED", "company is required", nil)
		return
	}
	var payload createGrantPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "invalid grant", common.ValidationDetails(err))
			return
		}
	}
	cID, err := common.ToUUID(companyID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid company id", nil)
		return
	}
	contractorID, err := common.ToUUID(payload.ContractorID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid contractor id", nil)
		return
	}
	contractor, err := h.Q.GetCompanyContractorByID(r.Context(), dbgen.GetCompanyContractorByIDParams{ID: contractorID, CompanyID: cID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "contractor not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load contractor", nil)
		return
	}
	active, err := h.Q.CountActiveGrantsForYear(r.Context(), dbgen.CountActiveGrantsForYearParams{
		CompanyContractorID: contractor.ID,
		EffectiveYear:       payload.EffectiveYear,
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to check existing grants", nil)
		return
	}
	if active > 0 {
		common.JSONError(w, http.StatusConflict, "GRANT_EXISTS", "an active grant already exists for this contractor and year", nil)
		return
	}
	created, err := h.Q.InsertEquityGrant(r.Context(), dbgen.InsertEquityGrantParams{
		CompanyContractorID: contractor.ID,
		SharePriceCents:     payload.SharePriceCents,
		EffectiveYear:       payload.EffectiveYear,
		VestedShares:        payload.VestedShares,
		UnvestedShares:      payload.UnvestedShares,
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to create grant", nil)
		return
	}
	if h.Events != nil {
		_, _ = h.Events.Emit(r.Context(), events.TopicGrantCreated, created.ID, map[string]any{
			"grantId":       common.UUIDString(created.ID),
			"contractorId":  common.UUIDString(contractor.ID),
			"effectiveYear": created.EffectiveYear,
		})
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": toGrantResponse(created)})
}

// ListByContractor returns all grants for a contractor, newest first.
func (h *Handler) ListByContractor(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "grant queries not configured", nil)
		return
	}
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
	contractorID, err := common.ToUUID(chi.URLParam(r, "contractorId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid contractor id", nil)
		return
	}
	contractor, err := h.Q.GetCompanyContractorByID(r.Context(), dbgen.GetCompanyContractorByIDParams{ID: contractorID, CompanyID: cID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "contractor not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load contractor", nil)
		return
	}
	grants, err := h.Q.ListGrantsByContractor(r.Context(), contractor.ID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list grants", nil)
		return
	}
	response := make([]grantResponse, 0, len(grants))
	for _, g := range grants {
		response = append(response, toGrantResponse(g))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": response})
}

// Cancel marks a grant as cancelled. Cancelled grants stop matching
// eligibility lookups for their year.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "grant queries not configured", nil)
		return
	}
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
	grantID, err := common.ToUUID(chi.URLParam(r, "grantId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid grant id", nil)
		return
	}
	cancelled, err := h.Q.CancelEquityGrant(r.Context(), dbgen.CancelEquityGrantParams{ID: grantID, CompanyID: cID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "grant not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to cancel grant", nil)
		return
	}
	if h.Events != nil {
		_, _ = h.Events.Emit(r.Context(), events.TopicGrantCancelled, cancelled.ID, map[string]any{
			"grantId":       common.UUIDString(cancelled.ID),
			"effectiveYear": cancelled.EffectiveYear,
		})
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toGrantResponse(cancelled)})
}

func toGrantResponse(g dbgen.EquityGrant) grantResponse {
	resp := grantResponse{
		ID:              common.UUIDString(g.ID),
		ContractorID:    common.UUIDString(g.CompanyContractorID),
		SharePriceCents: g.SharePriceCents,
		EffectiveYear:   g.EffectiveYear,
		VestedShares:    g.VestedShares,
		UnvestedShares:  g.UnvestedShares,
		AllocatedCents:  g.AllocatedCents,
		CreatedAt:       g.CreatedAt.Time,
	}
	if g.CancelledAt.Valid {
		cancelled := g.CancelledAt.Time
		resp.CancelledAt = &cancelled
	}
	return resp
}
