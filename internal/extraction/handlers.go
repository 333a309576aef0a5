package extraction

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
)

// Handler exposes the PDF import endpoints.
type Handler struct {
	Service *Service
}

type jobResponse struct {
	ID            string          `json:"id"`
	Filename      string          `json:"filename"`
	ByteSize      int64           `json:"byteSize"`
	Status        string          `json:"status"`
	Draft         json.RawMessage `json:"draft,omitempty"`
	FailureReason *string         `json:"failureReason,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Upload accepts a multipart PDF upload and creates an import job.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	companyID, userID, ok := scope(w, r)
	if !ok {
		return
	}
	maxBytes := h.Service.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+(1<<20))
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		common.JSONError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "uploaded file exceeds the size limit", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "multipart field \"file\" is required", nil)
		return
	}
	defer func() { _ = file.Close() }()
	payload, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "failed to read uploaded file", nil)
		return
	}

	job, err := h.Service.CreateJob(r.Context(), companyID, userID, header.Filename, payload)
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to create import job", nil)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{"data": map[string]any{
		"id":       common.UUIDString(job.ID),
		"filename": job.Filename,
		"byteSize": job.ByteSize,
		"status":   string(job.Status),
	}})
}

// Get returns the status and, once completed, the extracted draft.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := scope(w, r)
	if !ok {
		return
	}
	job, err := h.Service.GetJob(r.Context(), companyID, chi.URLParam(r, "jobId"))
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load import job", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toJobResponse(job)})
}

// ListMine returns the caller's import jobs for the active company.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	companyID, userID, ok := scope(w, r)
	if !ok {
		return
	}
	cID, err := common.ToUUID(companyID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid company id", nil)
		return
	}
	uID, err := common.ToUUID(userID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid user id", nil)
		return
	}
	page, perPage := common.ParsePagination(r, 20)
	jobs, err := h.Service.Q.ListImportJobsForUser(r.Context(), dbgen.ListImportJobsForUserParams{
		CompanyID: cID,
		UserID:    uID,
		Limit:     int32(perPage),
		Offset:    int32((page - 1) * perPage),
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list import jobs", nil)
		return
	}
	response := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		response = append(response, toJobResponse(dbgen.GetImportJobRow(job)))
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(len(response)))
	common.JSON(w, http.StatusOK, map[string]any{
		"data": response,
		"meta": common.Pagination{Page: page, PerPage: perPage, TotalItems: len(response)},
	})
}

func scope(w http.ResponseWriter, r *http.Request) (companyID, userID string, ok bool) {
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

func toJobResponse(job dbgen.GetImportJobRow) jobResponse {
	resp := jobResponse{
		ID:        common.UUIDString(job.ID),
		Filename:  job.Filename,
		ByteSize:  job.ByteSize,
		Status:    string(job.Status),
		CreatedAt: job.CreatedAt.Time,
	}
	if len(job.Result) > 0 {
		resp.Draft = json.RawMessage(job.Result)
	}
	if job.FailureReason.Valid {
		reason := job.FailureReason.String
		resp.FailureReason = &reason
	}
	return resp
}
