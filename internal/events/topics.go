package events

// Topic constants for domain events emitted by the platform.
const (
	TopicInvoiceSubmitted     = "invoice.submitted"
	TopicInvoiceApproved      = "invoice.approved"
	TopicInvoiceRejected      = "invoice.rejected"
	TopicInvoicePaid          = "invoice.paid"
	TopicInvoicePaymentFailed = "invoice.payment_failed"
	TopicImportCompleted      = "import.completed"
	TopicImportFailed         = "import.failed"
	TopicGrantCreated         = "grant.created"
	TopicGrantCancelled       = "grant.cancelled"
)

// DefaultTopics returns the canonical list of topics that support notifications.
func DefaultTopics() []string {
	return []string{
		TopicInvoiceSubmitted,
		TopicInvoiceApproved,
		TopicInvoiceRejected,
		TopicInvoicePaid,
		TopicInvoicePaymentFailed,
		TopicImportCompleted,
		TopicImportFailed,
		TopicGrantCreated,
		TopicGrantCancelled,
	}
}
