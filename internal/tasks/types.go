package tasks

// Task type names routed through asynq.
const (
	TypeImportProcess = "import:process"
	TypeNotifyEvent   = "notify:event"
	TypePayoutProcess = "payout:process"
)

// ImportPayload identifies the import job a worker should process.
type ImportPayload struct {
	JobID string `json:"jobId"`
}

// NotifyPayload identifies the persisted domain event to deliver.
type NotifyPayload struct {
	EventID string `json:"eventId"`
}

// PayoutPayload identifies the invoice to pay out. The company id rides along
// so worker-side lookups stay tenant scoped.
type PayoutPayload struct {
	CompanyID string `json:"companyId"`
	InvoiceID string `json:"invoiceId"`
}
