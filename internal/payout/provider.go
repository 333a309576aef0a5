package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/crewpay/backend-crewpay/internal/resilience"
)

// Request describes a single payout to execute. Only the cash portion of an
// invoice is transferred; the equity portion is allocated against a grant,
// never wired.
type Request struct {
	InvoiceID   string `json:"invoiceId"`
	CompanyID   string `json:"companyId"`
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
	Reference   string `json:"reference"`
}

// Result is the provider's acknowledgement of an accepted payout.
type Result struct {
	ProviderRef string `json:"providerRef"`
}

// Provider executes payouts against an external money-movement service.
type Provider interface {
	Name() string
	CreatePayout(ctx context.Context, req Request) (Result, error)
}

// StubProvider accepts every payout without moving money. Default for
// development and tests.
type StubProvider struct{}

func (StubProvider) Name() string { return "stub" }

func (StubProvider) CreatePayout(_ context.Context, _ Request) (Result, error) {
	return Result{ProviderRef: "stub-" + uuid.NewString()}, nil
}

// HTTPProvider posts payouts to a gateway over HTTP through the resilience
// client. The invoice id doubles as the gateway idempotency key so retries
// never double-pay.
type HTTPProvider struct {
	BaseURL string
	APIKey  string
	Client  resilience.HTTPClient
}

func (p *HTTPProvider) Name() string { return "http" }

func (p *HTTPProvider) CreatePayout(ctx context.Context, payoutReq Request) (Result, error) {
	body, err := json.Marshal(payoutReq)
	if err != nil {
		return Result{}, fmt.Errorf("encode payout request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/payouts", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", payoutReq.InvoiceID)
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}
	resp, err := p.Client.Do(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("call payout gateway: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Result{}, fmt.Errorf("payout gateway returned %s: %s", resp.Status, string(detail))
	}
	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decode payout response: %w", err)
	}
	return result, nil
}
