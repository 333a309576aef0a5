package extraction

import (
	"fmt"
	"strings"
	"time"

	"github.com/crewpay/backend-crewpay/internal/billing"
)

// DraftLineItem is a validated line item ready to prefill the submission form.
type DraftLineItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	RateCents   *int64 `json:"rateCents,omitempty"`
}

// DraftExpense is a validated expense ready to prefill the submission form.
type DraftExpense struct {
	Description string `json:"description"`
	AmountCents int64  `json:"amountCents"`
	Category    string `json:"category,omitempty"`
}

// Draft is the cleaned-up extraction result stored on a completed import job.
// Drafts only prefill the submission form; they are never submitted on the
// contractor's behalf.
type Draft struct {
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	InvoiceDate   string          `json:"invoiceDate,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	LineItems     []DraftLineItem `json:"lineItems"`
	Expenses      []DraftExpense  `json:"expenses"`
	Warnings      []string        `json:"warnings,omitempty"`
}

// BuildDraft runs the extracted fields through the same validation as manual
// input. Values that fail validation are dropped with a warning instead of
// failing the whole job.
func BuildDraft(fields PartialInvoiceFields) Draft {
	draft := Draft{
		InvoiceNumber: strings.TrimSpace(fields.InvoiceNumber),
		Notes:         strings.TrimSpace(fields.Notes),
		LineItems:     []DraftLineItem{},
		Expenses:      []DraftExpense{},
	}

	if raw := strings.TrimSpace(fields.InvoiceDate); raw != "" {
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			draft.Warnings = append(draft.Warnings, fmt.Sprintf("dropped invoice date %q: not in YYYY-MM-DD format", raw))
		} else {
			draft.InvoiceDate = raw
		}
	}

	for i, li := range fields.LineItems {
		description := strings.TrimSpace(li.Description)
		if description == "" {
			draft.Warnings = append(draft.Warnings, fmt.Sprintf("dropped line item %d: missing description", i+1))
			continue
		}
		qty, err := billing.ParseQuantity(li.Quantity)
		if err != nil {
			draft.Warnings = append(draft.Warnings, fmt.Sprintf("dropped line item %q: unreadable quantity %q", description, li.Quantity))
			continue
		}
		item := DraftLineItem{Description: description, Quantity: qty.String()}
		if li.RateCents != nil {
			if *li.RateCents < 0 {
				draft.Warnings = append(draft.Warnings, fmt.Sprintf("dropped rate on line item %q: negative rate", description))
			} else {
				rate := *li.RateCents
				item.RateCents = &rate
			}
		}
		draft.LineItems = append(draft.LineItems, item)
	}

	for i, e := range fields.Expenses {
		description := strings.TrimSpace(e.Description)
		if description == "" {
			draft.Warnings = append(draft.Warnings, fmt.Sprintf("dropped expense %d: missing description", i+1))
			continue
		}
		if e.AmountCents == nil || *e.AmountCents < 0 {
			draft.Warnings = append(draft.Warnings, fmt.Sprintf("dropped expense %q: missing or negative amount", description))
			continue
		}
		draft.Expenses = append(draft.Expenses, DraftExpense{
			Description: description,
			AmountCents: *e.AmountCents,
			Category:    strings.TrimSpace(e.Category),
		})
	}
	return draft
}
