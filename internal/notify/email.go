package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/crewpay/backend-crewpay/internal/common"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/events"
	"github.com/crewpay/backend-crewpay/internal/obs"
)

// EmailNotifier sends transactional emails for selected topics.
type EmailNotifier struct {
	Mail         common.EmailSender
	Enabled      bool
	From         string
	TopicToggles map[string]bool
}

// Notify implements the events.Notifier interface.
func (n EmailNotifier) Notify(_ context.Context, event dbgen.DomainEvent) error {
	if !n.Enabled || n.Mail == nil {
		return nil
	}
	if n.TopicToggles != nil {
		if enabled, ok := n.TopicToggles[event.Topic]; ok && !enabled {
			return nil
		}
	}
	payload := map[string]any{}
	if len(event.Payload) > 0 {
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("email notify: decode payload: %w", err)
		}
	}
	to := extractRecipient(payload)
	if to == "" {
		return nil
	}
	subject := subjectFor(event.Topic)
	body := bodyFor(event.Topic, payload, event.OccurredAt.Time)
	err := n.Mail.Send(to, subject, body)
	if obs.NotifyEmailTotal != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		obs.NotifyEmailTotal.WithLabelValues(event.Topic, result).Inc()
	}
	return err
}

func extractRecipient(payload map[string]any) string {
	keys := []string{"email", "recipient", "userEmail"}
	for _, key := range keys {
		if val, ok := payload[key]; ok {
			if s, ok := val.(string); ok {
				s = strings.TrimSpace(s)
				if s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func subjectFor(topic string) string {
	switch topic {
	case events.TopicInvoiceSubmitted:
		return "Invoice received"
	case events.TopicInvoiceApproved:
		return "Invoice approved"
	case events.TopicInvoiceRejected:
		return "Invoice rejected"
	case events.TopicInvoicePaid:
		return "Invoice paid"
	case events.TopicInvoicePaymentFailed:
		return "Invoice payment failed"
	case events.TopicImportCompleted:
		return "Invoice import finished"
	case events.TopicImportFailed:
		return "Invoice import failed"
	case events.TopicGrantCreated:
		return "Equity grant created"
	case events.TopicGrantCancelled:
		return "Equity grant cancelled"
	default:
		return fmt.Sprintf("Notification %s", topic)
	}
}

func bodyFor(topic string, payload map[string]any, occurred time.Time) string {
	summary := fmt.Sprintf("Event %s occurred at %s.", topic, occurred.Format(time.RFC3339))
	if number, ok := payload["invoiceNumber"].(string); ok && number != "" {
		summary += fmt.Sprintf("\nInvoice: %s", number)
	}
	if total, ok := payload["totalCents"].(float64); ok && total > 0 {
		summary += fmt.Sprintf("\nTotal: %.2f", total/100)
	}
	if reason, ok := payload["rejectionReason"].(string); ok && reason != "" {
		summary += fmt.Sprintf("\nReason: %s", reason)
	}
	if reason, ok := payload["reason"].(string); ok && reason != "" {
		summary += fmt.Sprintf("\nReason: %s", reason)
	}
	if jobID, ok := payload["jobId"].(string); ok && jobID != "" {
		summary += fmt.Sprintf("\nImport job: %s", jobID)
	}
	return summary
}
