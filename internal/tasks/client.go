package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/crewpay/backend-crewpay/internal/common"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
)

// Client enqueues background tasks. It implements the scheduler interfaces
// the domain packages declare, so those packages never see asynq directly.
type Client struct {
	Inner *asynq.Client
}

// NewClient builds a task client on the given Redis address.
func NewClient(redisAddr, redisPassword string, db int) *Client {
	return &Client{Inner: asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})}
}

// Close releases the underlying asynq client.
func (c *Client) Close() error {
	if c == nil || c.Inner == nil {
		return nil
	}
	return c.Inner.Close()
}

// EnqueueImport schedules processing of a stored import job.
func (c *Client) EnqueueImport(ctx context.Context, jobID string) error {
	return c.enqueue(ctx, TypeImportProcess, ImportPayload{JobID: jobID},
		asynq.MaxRetry(5), asynq.Timeout(2*time.Minute))
}

// EnqueuePayout schedules payout execution for an invoice.
func (c *Client) EnqueuePayout(ctx context.Context, companyID, invoiceID string) error {
	return c.enqueue(ctx, TypePayoutProcess, PayoutPayload{CompanyID: companyID, InvoiceID: invoiceID},
		asynq.MaxRetry(8), asynq.Timeout(5*time.Minute))
}

// Schedule implements events.DeliveryScheduler: emitted domain events are
// delivered out of band by the notify task.
func (c *Client) Schedule(ctx context.Context, event dbgen.DomainEvent) error {
	return c.enqueue(ctx, TypeNotifyEvent, NotifyPayload{EventID: common.UUIDString(event.ID)},
		asynq.MaxRetry(10), asynq.Timeout(time.Minute))
}

func (c *Client) enqueue(ctx context.Context, typename string, payload any, opts ...asynq.Option) error {
	if c == nil || c.Inner == nil {
		return errors.New("tasks: client not configured")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("tasks: encode %s payload: %w", typename, err)
	}
	if _, err := c.Inner.EnqueueContext(ctx, asynq.NewTask(typename, data), opts...); err != nil {
		return fmt.Errorf("tasks: enqueue %s: %w", typename, err)
	}
	return nil
}
