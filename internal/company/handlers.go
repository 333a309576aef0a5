package company

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crewpay/backend-crewpay/internal/common"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
)

// Handler exposes company onboarding and settings endpoints.
type Handler struct {
	Q        *dbgen.Queries
	Pool     *pgxpool.Pool
	Settings *SettingsCache
	Validate *validator.Validate
}

type createPayload struct {
	Name          string `json:"name" validate:"required,min=2,max=120"`
	Currency      string `json:"currency" validate:"omitempty,len=3,alpha"`
	EquityEnabled bool   `json:"equityEnabled"`
}

type settingsPayload struct {
	Name          *string `json:"name" validate:"omitempty,min=2,max=120"`
	Currency      *string `json:"currency" validate:"omitempty,len=3,alpha"`
	EquityEnabled *bool   `json:"equityEnabled"`
}

type companyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Currency      string    `json:"currency"`
	EquityEnabled bool      `json:"equityEnabled"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Create onboards a new company with the caller as its first admin.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil || h.Pool == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "company queries not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "invalid company", common.ValidationDetails(err))
		return
	}
	uID, err := common.ToUUID(userID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid user id", nil)
		return
	}
	currency := strings.ToUpper(strings.TrimSpace(payload.Currency))
	if currency == "" {
		currency = "USD"
	}

	tx, err := h.Pool.BeginTx(r.Context(), pgx.TxOptions{})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to open transaction", nil)
		return
	}
	defer func() {
		_ = tx.Rollback(r.Context())
	}()
	qtx := h.Q.WithTx(tx)
	created, err := qtx.InsertCompany(r.Context(), dbgen.InsertCompanyParams{
		Name:                      strings.TrimSpace(payload.Name),
		Currency:                  currency,
		EquityCompensationEnabled: payload.EquityEnabled,
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to create company", nil)
		return
	}
	if err := qtx.InsertCompanyAdmin(r.Context(), dbgen.InsertCompanyAdminParams{
		CompanyID: created.ID,
		UserID:    uID,
	}); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to assign company admin", nil)
		return
	}
	if err := tx.Commit(r.Context()); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to create company", nil)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": toCompanyResponse(created)})
}

// Get returns the company resolved for the current request.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "company queries not configured", nil)
		return
	}
	companyID, ok := From(r.Context())
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "COMPANY_REQUIRED", "company is required", nil)
		return
	}
	id, err := common.ToUUID(companyID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid company id", nil)
		return
	}
	row, err := h.Q.GetCompanyByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "company not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load company", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toCompanyResponse(row)})
}

// UpdateSettings mutates company settings and invalidates the cached snapshot.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "company queries not configured", nil)
		return
	}
	companyID, ok := From(r.Context())
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "COMPANY_REQUIRED", "company is required", nil)
		return
	}
	var payload settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "invalid settings", common.ValidationDetails(err))
		return
	}
	id, err := common.ToUUID(companyID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid company id", nil)
		return
	}
	current, err := h.Q.GetCompanyByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "company not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load company", nil)
		return
	}
	params := dbgen.UpdateCompanySettingsParams{
		ID:                        current.ID,
		Name:                      current.Name,
		Currency:                  current.Currency,
		EquityCompensationEnabled: current.EquityCompensationEnabled,
	}
	if payload.Name != nil {
		params.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Currency != nil {
		params.Currency = strings.ToUpper(strings.TrimSpace(*payload.Currency))
	}
	if payload.EquityEnabled != nil {
		params.EquityCompensationEnabled = *payload.EquityEnabled
	}
	updated, err := h.Q.UpdateCompanySettings(r.Context(), params)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to update settings", nil)
		return
	}
	if h.Settings != nil {
		h.Settings.Invalidate(r.Context(), companyID)
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toCompanyResponse(updated)})
}

func (h *Handler) validate(v any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(v)
}

func toCompanyResponse(row dbgen.Company) companyResponse {
	return companyResponse{
		ID:            common.UUIDString(row.ID),
		Name:          row.Name,
		Currency:      row.Currency,
		EquityEnabled: row.EquityCompensationEnabled,
		CreatedAt:     row.CreatedAt.Time,
	}
}
