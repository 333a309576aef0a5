package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/crewpay/backend-crewpay/internal/common"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/events"
	"github.com/crewpay/backend-crewpay/internal/extraction"
	"github.com/crewpay/backend-crewpay/internal/payout"
)

// Handlers hosts the worker-side task implementations.
type Handlers struct {
	Imports   *extraction.Service
	Payouts   *payout.Service
	Q         *dbgen.Queries
	Notifiers []events.Notifier
	Logger    zerolog.Logger
}

// NewMux routes task types to their handlers.
func (h *Handlers) NewMux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeImportProcess, h.HandleImport)
	mux.HandleFunc(TypeNotifyEvent, h.HandleNotify)
	mux.HandleFunc(TypePayoutProcess, h.HandlePayout)
	return mux
}

// HandleImport runs extraction for a stored import job.
func (h *Handlers) HandleImport(ctx context.Context, task *asynq.Task) error {
	var payload ImportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode import payload: %w: %w", err, asynq.SkipRetry)
	}
	h.Logger.Info().Str("job_id", payload.JobID).Msg("processing import job")
	if err := h.Imports.Process(ctx, payload.JobID); err != nil {
		h.Logger.Error().Err(err).Str("job_id", payload.JobID).Msg("import job failed")
		return err
	}
	return nil
}

// HandleNotify delivers a persisted domain event to the configured notifiers
// and marks it delivered. Redelivery of an already-delivered event is a no-op.
func (h *Handlers) HandleNotify(ctx context.Context, task *asynq.Task) error {
	var payload NotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode notify payload: %w: %w", err, asynq.SkipRetry)
	}
	eventID, err := common.ToUUID(payload.EventID)
	if err != nil {
		return fmt.Errorf("invalid event id %q: %w: %w", payload.EventID, err, asynq.SkipRetry)
	}
	event, err := h.Q.GetDomainEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("load domain event: %w", err)
	}
	if event.DeliveredAt.Valid {
		return nil
	}
	for _, notifier := range h.Notifiers {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, event); err != nil {
			h.Logger.Error().Err(err).Str("topic", event.Topic).Msg("notifier failed")
			return err
		}
	}
	if err := h.Q.MarkDomainEventDelivered(ctx, event.ID); err != nil {
		return fmt.Errorf("mark event delivered: %w", err)
	}
	return nil
}

// HandlePayout executes a payout for a PAYMENT_PENDING invoice.
func (h *Handlers) HandlePayout(ctx context.Context, task *asynq.Task) error {
	var payload PayoutPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payout payload: %w: %w", err, asynq.SkipRetry)
	}
	h.Logger.Info().Str("invoice_id", payload.InvoiceID).Msg("executing payout")
	if err := h.Payouts.Execute(ctx, payload.CompanyID, payload.InvoiceID); err != nil {
		h.Logger.Error().Err(err).Str("invoice_id", payload.InvoiceID).Msg("payout failed")
		return err
	}
	return nil
}

// NewServer builds the asynq server processing the task queues.
func NewServer(redisAddr, redisPassword string, db, concurrency int, logger zerolog.Logger) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 10
	}
	return asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword, DB: db},
		asynq.Config{
			Concurrency: concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
				logger.Error().Err(err).Str("type", task.Type()).Msg("task handler error")
			}),
		},
	)
}
