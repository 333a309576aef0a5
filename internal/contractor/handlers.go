package contractor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
)

// Handler exposes contractor relationship endpoints. Admin operations manage
// the company roster; Me serves the caller's own relationship.
type Handler struct {
	Q        *dbgen.Queries
	Validate *validator.Validate
	Now      func() time.Time
}

type createPayload struct {
	Email            string `json:"email" validate:"required,email"`
	Role             string `json:"role" validate:"required,max=120"`
	PayRateCents     *int64 `json:"payRateCents" validate:"omitempty,gte=0"`
	EquityPercentage int32  `json:"equityPercentage" validate:"gte=0,lte=100"`
	StartedAt        string `json:"startedAt" validate:"omitempty"`
}

type updatePayload struct {
	Role             string `json:"role" validate:"required,max=120"`
	PayRateCents     *int64 `json:"payRateCents" validate:"omitempty,gte=0"`
	EquityPercentage int32  `json:"equityPercentage" validate:"gte=0,lte=100"`
}

type contractorResponse struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	Role             string     `json:"role"`
	PayRateCents     *int64     `json:"payRateCents,omitempty"`
	EquityPercentage int32      `json:"equityPercentage"`
	StartedAt        time.Time  `json:"startedAt"`
	EndedAt          *time.Time `json:"endedAt,omitempty"`
}

// Create links an existing user to the company as a contractor. The user must
// already exist; onboarding auth accounts is handled by the identity layer.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cID, ok := h.companyUUID(w, r)
	if !ok {
		return
	}
	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "invalid contractor", common.ValidationDetails(err))
			return
		}
	}
	user, err := h.Q.GetUserByEmail(r.Context(), payload.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "USER_NOT_FOUND", "no user with that email", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to look up user", nil)
		return
	}
	startedAt := h.now()
	if payload.StartedAt != "" {
		parsed, err := time.Parse("2006-01-02", payload.StartedAt)
		if err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "startedAt must be YYYY-MM-DD", nil)
			return
		}
		startedAt = parsed
	}
	created, err := h.Q.InsertCompanyContractor(r.Context(), dbgen.InsertCompanyContractorParams{
		CompanyID:        cID,
		UserID:           user.ID,
		Role:             payload.Role,
		PayRateCents:     toNullableInt8(payload.PayRateCents),
		EquityPercentage: payload.EquityPercentage,
		StartedAt:        pgtype.Timestamptz{Time: startedAt, Valid: true},
	})
	if err != nil {
		if isUniqueViolation(err) {
			common.JSONError(w, http.StatusConflict, "CONTRACTOR_EXISTS", "user is already a contractor for this company", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to create contractor", nil)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": toContractorResponse(created)})
}

// List returns the company's contractor roster.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cID, ok := h.companyUUID(w, r)
	if !ok {
		return
	}
	page, perPage := common.ParsePagination(r, 20)
	contractors, err := h.Q.ListCompanyContractors(r.Context(), dbgen.ListCompanyContractorsParams{
		CompanyID: cID,
		Limit:     int32(perPage),
		Offset:    int32((page - 1) * perPage),
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list contractors", nil)
		return
	}
	total, err := h.Q.CountCompanyContractors(r.Context(), cID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to count contractors", nil)
		return
	}
	response := make([]contractorResponse, 0, len(contractors))
	for _, c := range contractors {
		response = append(response, toContractorResponse(c))
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	common.JSON(w, http.StatusOK, map[string]any{
		"data": response,
		"meta": common.Pagination{Page: page, PerPage: perPage, TotalItems: int(total)},
	})
}

// Get returns a single contractor scoped to the company.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cID, ok := h.companyUUID(w, r)
	if !ok {
		return
	}
	contractorID, err := common.ToUUID(chi.URLParam(r, "contractorId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid contractor id", nil)
		return
	}
	found, err := h.Q.GetCompanyContractorByID(r.Context(), dbgen.GetCompanyContractorByIDParams{ID: contractorID, CompanyID: cID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "contractor not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load contractor", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toContractorResponse(found)})
}

// Update changes role, default pay rate or equity percentage. The new terms
// apply to invoices submitted after the change.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	cID, ok := h.companyUUID(w, r)
	if !ok {
		return
	}
	contractorID, err := common.ToUUID(chi.URLParam(r, "contractorId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid contractor id", nil)
		return
	}
	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "invalid contractor", common.ValidationDetails(err))
			return
		}
	}
	updated, err := h.Q.UpdateCompanyContractor(r.Context(), dbgen.UpdateCompanyContractorParams{
		ID:               contractorID,
		CompanyID:        cID,
		Role:             payload.Role,
		PayRateCents:     toNullableInt8(payload.PayRateCents),
		EquityPercentage: payload.EquityPercentage,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "contractor not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to update contractor", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toContractorResponse(updated)})
}

// End closes the relationship. Ended contractors keep their history and stay
// eligible for grants covering years they worked.
func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	cID, ok := h.companyUUID(w, r)
	if !ok {
		return
	}
	contractorID, err := common.ToUUID(chi.URLParam(r, "contractorId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid contractor id", nil)
		return
	}
	ended, err := h.Q.EndCompanyContractor(r.Context(), dbgen.EndCompanyContractorParams{
		ID:        contractorID,
		CompanyID: cID,
		EndedAt:   pgtype.Timestamptz{Time: h.now(), Valid: true},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "contractor not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to end contractor", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toContractorResponse(ended)})
}

// Me returns the caller's own contractor relationship for the active company.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	cID, ok := h.companyUUID(w, r)
	if !ok {
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	uID, err := common.ToUUID(userID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid user id", nil)
		return
	}
	found, err := h.Q.GetContractorForUser(r.Context(), dbgen.GetContractorForUserParams{CompanyID: cID, UserID: uID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_A_CONTRACTOR", "no contractor relationship with this company", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load contractor", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toContractorResponse(found)})
}

func (h *Handler) companyUUID(w http.ResponseWriter, r *http.Request) (pgtype.UUID, bool) {
	companyID, ok := company.From(r.Context())
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "COMPANY_REQUIRED", "company is required", nil)
		return pgtype.UUID{}, false
	}
	cID, err := common.ToUUID(companyID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid company id", nil)
		return pgtype.UUID{}, false
	}
	return cID, true
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

func toContractorResponse(c dbgen.CompanyContractor) contractorResponse {
	resp := contractorResponse{
		ID:               common.UUIDString(c.ID),
		UserID:           common.UUIDString(c.UserID),
		Role:             c.Role,
		EquityPercentage: c.EquityPercentage,
		StartedAt:        c.StartedAt.Time,
	}
	if c.PayRateCents.Valid {
		rate := c.PayRateCents.Int64
		resp.PayRateCents = &rate
	}
	if c.EndedAt.Valid {
		ended := c.EndedAt.Time
		resp.EndedAt = &ended
	}
	return resp
}

func toNullableInt8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
