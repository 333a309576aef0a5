package extraction

import "strings"

// PartialLineItem is a best-effort line item pulled out of a PDF. All fields
// may be missing or garbage; nothing here is trusted until it passes the same
// validation as manual input.
type PartialLineItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	RateCents   *int64 `json:"rateCents"`
}

// PartialExpense is a best-effort expense pulled out of a PDF.
type PartialExpense struct {
	Description string `json:"description"`
	AmountCents *int64 `json:"amountCents"`
	Category    string `json:"category"`
}

// PartialInvoiceFields is what the extraction service could read from a
// document. Every field is optional.
type PartialInvoiceFields struct {
	InvoiceNumber string            `json:"invoiceNumber"`
	InvoiceDate   string            `json:"invoiceDate"`
	Notes         string            `json:"notes"`
	LineItems     []PartialLineItem `json:"lineItems"`
	Expenses      []PartialExpense  `json:"expenses"`
}

// IsEmpty reports whether extraction found nothing usable at all. An empty
// result means the document was not an invoice.
func (f PartialInvoiceFields) IsEmpty() bool {
	if strings.TrimSpace(f.InvoiceNumber) != "" || strings.TrimSpace(f.InvoiceDate) != "" {
		return false
	}
	if strings.TrimSpace(f.Notes) != "" {
		return false
	}
	return len(f.LineItems) == 0 && len(f.Expenses) == 0
}
