package audit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
)

// Handler exposes the admin listing endpoint for a company's audit trail.
type Handler struct {
	Store Store
}

type entryResponse struct {
	ID           string    `json:"id"`
	ActorUserID  string    `json:"actorUserId,omitempty"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resourceType"`
	ResourceID   string    `json:"resourceId,omitempty"`
	Method       string    `json:"method"`
	Path         string    `json:"path"`
	Status       int32     `json:"status"`
	RequestID    string    `json:"requestId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// List returns a paginated list of audit logs for the active company.
func (h Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "AUDIT_NOT_CONFIGURED", "audit store not configured", nil)
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
	limit := common.AtoiDefault(r.URL.Query().Get("limit"), 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := common.AtoiDefault(r.URL.Query().Get("offset"), 0)
	if offset < 0 {
		offset = 0
	}

	rows, err := h.Store.ListAuditLogsByCompany(r.Context(), dbgen.ListAuditLogsByCompanyParams{
		CompanyID: cID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "AUDIT_QUERY_FAILED", "unable to fetch audit logs", nil)
		return
	}
	total, err := h.Store.CountAuditLogsByCompany(r.Context(), cID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "AUDIT_QUERY_FAILED", "unable to count audit logs", nil)
		return
	}
	response := make([]entryResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, entryResponse{
			ID:           common.UUIDString(row.ID),
			ActorUserID:  common.UUIDString(row.ActorUserID),
			Action:       row.Action,
			ResourceType: row.ResourceType,
			ResourceID:   row.ResourceID,
			Method:       row.Method,
			Path:         row.Path,
			Status:       row.Status,
			RequestID:    row.RequestID,
			CreatedAt:    row.CreatedAt.Time,
		})
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	common.JSON(w, http.StatusOK, map[string]any{"data": response})
}
