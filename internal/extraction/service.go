package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/crewpay/backend-crewpay/internal/common"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/events"
	"github.com/crewpay/backend-crewpay/internal/obs"
)

var pdfMagic = []byte("%PDF-")

// ErrNotPDF is returned when the uploaded payload is not a PDF document.
var ErrNotPDF = errors.New("payload is not a PDF document")

// ErrTooLarge is returned when the uploaded payload exceeds the size cap.
var ErrTooLarge = errors.New("payload exceeds the size limit")

// ImportScheduler enqueues asynchronous processing of a stored import job.
type ImportScheduler interface {
	EnqueueImport(ctx context.Context, jobID string) error
}

// Service owns the import job lifecycle: accepting uploads, processing them
// through the extractor, and serving job status.
type Service struct {
	Q         *dbgen.Queries
	Extractor Extractor
	Events    *events.Bus
	Scheduler ImportScheduler
	MaxBytes  int64
}

// CreateJob validates and stores an uploaded PDF and enqueues its processing.
// The content is sniffed; a spoofed Content-Type header is not enough.
func (s *Service) CreateJob(ctx context.Context, companyID, userID, filename string, payload []byte) (dbgen.InsertImportJobRow, error) {
	cID, err := common.ToUUID(companyID)
	if err != nil {
		return dbgen.InsertImportJobRow{}, common.NewAppError("BAD_REQUEST", "invalid company id", http.StatusBadRequest, err)
	}
	uID, err := common.ToUUID(userID)
	if err != nil {
		return dbgen.InsertImportJobRow{}, common.NewAppError("BAD_REQUEST", "invalid user id", http.StatusBadRequest, err)
	}
	if s.MaxBytes > 0 && int64(len(payload)) > s.MaxBytes {
		return dbgen.InsertImportJobRow{}, common.NewAppError("PAYLOAD_TOO_LARGE", "uploaded file exceeds the size limit", http.StatusRequestEntityTooLarge, ErrTooLarge)
	}
	if !bytes.HasPrefix(payload, pdfMagic) {
		return dbgen.InsertImportJobRow{}, common.NewAppError("UNSUPPORTED_MEDIA_TYPE", "only PDF documents are accepted", http.StatusUnsupportedMediaType, ErrNotPDF)
	}

	job, err := s.Q.InsertImportJob(ctx, dbgen.InsertImportJobParams{
		CompanyID: cID,
		UserID:    uID,
		Filename:  filename,
		ByteSize:  int64(len(payload)),
		Payload:   payload,
	})
	if err != nil {
		return dbgen.InsertImportJobRow{}, fmt.Errorf("insert import job: %w", err)
	}
	if s.Scheduler != nil {
		if err := s.Scheduler.EnqueueImport(ctx, common.UUIDString(job.ID)); err != nil {
			// The row stays PENDING; a requeue sweep or manual retry picks it up.
			return job, fmt.Errorf("enqueue import job: %w", err)
		}
	}
	return job, nil
}

// GetJob returns a job scoped to the company.
func (s *Service) GetJob(ctx context.Context, companyID, jobID string) (dbgen.GetImportJobRow, error) {
	cID, err := common.ToUUID(companyID)
	if err != nil {
		return dbgen.GetImportJobRow{}, common.NewAppError("BAD_REQUEST", "invalid company id", http.StatusBadRequest, err)
	}
	jID, err := common.ToUUID(jobID)
	if err != nil {
		return dbgen.GetImportJobRow{}, common.NewAppError("BAD_REQUEST", "invalid job id", http.StatusBadRequest, err)
	}
	job, err := s.Q.GetImportJob(ctx, dbgen.GetImportJobParams{ID: jID, CompanyID: cID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.GetImportJobRow{}, common.NewAppError("NOT_FOUND", "import job not found", http.StatusNotFound, err)
		}
		return dbgen.GetImportJobRow{}, fmt.Errorf("load import job: %w", err)
	}
	return job, nil
}

// Process runs extraction for a stored job. It is called from the worker and
// is safe to retry: the PENDING -> PROCESSING guard means a redelivered task
// for an already-processed job is a no-op.
func (s *Service) Process(ctx context.Context, jobID string) error {
	jID, err := common.ToUUID(jobID)
	if err != nil {
		return fmt.Errorf("invalid import job id %q: %w", jobID, err)
	}
	claimed, err := s.Q.MarkImportJobProcessing(ctx, jID)
	if err != nil {
		return fmt.Errorf("claim import job: %w", err)
	}
	if claimed == 0 {
		return nil
	}
	job, err := s.Q.GetImportJobPayload(ctx, jID)
	if err != nil {
		return fmt.Errorf("load import payload: %w", err)
	}

	fields, err := s.Extractor.Extract(ctx, job.Payload)
	if err != nil {
		return s.fail(ctx, job, fmt.Sprintf("extraction failed: %v", err))
	}
	if fields.IsEmpty() {
		result, err := json.Marshal(Draft{LineItems: []DraftLineItem{}, Expenses: []DraftExpense{}})
		if err != nil {
			return s.fail(ctx, job, "encode empty draft")
		}
		if err := s.Q.MarkImportJobNotInvoice(ctx, dbgen.MarkImportJobNotInvoiceParams{ID: jID, Result: result}); err != nil {
			return fmt.Errorf("mark not invoice: %w", err)
		}
		s.count(string(dbgen.ImportJobStatusNOTINVOICE))
		s.emit(ctx, events.TopicImportCompleted, job, string(dbgen.ImportJobStatusNOTINVOICE))
		return nil
	}

	draft := BuildDraft(fields)
	result, err := json.Marshal(draft)
	if err != nil {
		return s.fail(ctx, job, "encode draft")
	}
	if err := s.Q.CompleteImportJob(ctx, dbgen.CompleteImportJobParams{ID: jID, Result: result}); err != nil {
		return fmt.Errorf("complete import job: %w", err)
	}
	s.count(string(dbgen.ImportJobStatusCOMPLETED))
	s.emit(ctx, events.TopicImportCompleted, job, string(dbgen.ImportJobStatusCOMPLETED))
	return nil
}

func (s *Service) fail(ctx context.Context, job dbgen.GetImportJobPayloadRow, reason string) error {
	if err := s.Q.FailImportJob(ctx, dbgen.FailImportJobParams{
		ID:            job.ID,
		FailureReason: pgtype.Text{String: reason, Valid: true},
	}); err != nil {
		return fmt.Errorf("fail import job: %w", err)
	}
	s.count(string(dbgen.ImportJobStatusFAILED))
	s.emit(ctx, events.TopicImportFailed, job, string(dbgen.ImportJobStatusFAILED))
	return nil
}

func (s *Service) count(status string) {
	if obs.ImportJobTotal != nil {
		obs.ImportJobTotal.WithLabelValues(status).Inc()
	}
}

func (s *Service) emit(ctx context.Context, topic string, job dbgen.GetImportJobPayloadRow, status string) {
	if s.Events == nil {
		return
	}
	payload := map[string]any{
		"jobId":     common.UUIDString(job.ID),
		"companyId": common.UUIDString(job.CompanyID),
		"userId":    common.UUIDString(job.UserID),
		"status":    status,
	}
	if user, err := s.Q.GetUserByID(ctx, job.UserID); err == nil && user.Email != "" {
		payload["email"] = user.Email
	}
	_, _ = s.Events.Emit(ctx, topic, job.ID, payload)
}
