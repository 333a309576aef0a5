package notify

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/crewpay/backend-crewpay/internal/common"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/events"
)

func event(topic, payload string) dbgen.DomainEvent {
	return dbgen.DomainEvent{
		ID:      pgtype.UUID{Bytes: [16]byte{1}, Valid: true},
		Topic:   topic,
		Payload: []byte(payload),
	}
}

func TestEmailNotifierSendsForKnownTopic(t *testing.T) {
	mail := &common.InMemoryEmail{}
	n := EmailNotifier{Mail: mail, Enabled: true}
	err := n.Notify(context.Background(), event(events.TopicInvoiceApproved,
		`{"email":"dev@example.com","invoiceNumber":"INV-0042","totalCents":125000}`))
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(mail.Outbox) != 1 {
		t.Fatalf("outbox = %d, want 1", len(mail.Outbox))
	}
	sent := mail.Outbox[0]
	if sent.To != "dev@example.com" {
		t.Errorf("to = %q", sent.To)
	}
	if sent.Subject != "Invoice approved" {
		t.Errorf("subject = %q", sent.Subject)
	}
	if !strings.Contains(sent.HTML, "INV-0042") {
		t.Errorf("body missing invoice number: %q", sent.HTML)
	}
	if !strings.Contains(sent.HTML, "1250.00") {
		t.Errorf("body missing total: %q", sent.HTML)
	}
}

func TestEmailNotifierSkipsWithoutRecipient(t *testing.T) {
	mail := &common.InMemoryEmail{}
	n := EmailNotifier{Mail: mail, Enabled: true}
	if err := n.Notify(context.Background(), event(events.TopicInvoicePaid, `{"invoiceNumber":"INV-1"}`)); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(mail.Outbox) != 0 {
		t.Fatalf("outbox = %d, want 0", len(mail.Outbox))
	}
}

func TestEmailNotifierHonoursToggles(t *testing.T) {
	mail := &common.InMemoryEmail{}
	n := EmailNotifier{
		Mail:         mail,
		Enabled:      true,
		TopicToggles: map[string]bool{events.TopicInvoiceSubmitted: false},
	}
	if err := n.Notify(context.Background(), event(events.TopicInvoiceSubmitted, `{"email":"dev@example.com"}`)); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(mail.Outbox) != 0 {
		t.Fatalf("outbox = %d, want 0", len(mail.Outbox))
	}
}
