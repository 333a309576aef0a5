package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crewpay/backend-crewpay/internal/obs"
	"github.com/crewpay/backend-crewpay/internal/resilience"
)

// Extractor reads structured invoice fields out of a PDF document.
type Extractor interface {
	Extract(ctx context.Context, pdf []byte) (PartialInvoiceFields, error)
}

// HTTPExtractor calls the extraction service over HTTP. Calls go through the
// resilience client so a slow or flapping extractor cannot stall the worker.
type HTTPExtractor struct {
	BaseURL string
	APIKey  string
	Client  resilience.HTTPClient
}

func (e *HTTPExtractor) Extract(ctx context.Context, pdf []byte) (PartialInvoiceFields, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/v1/extract", bytes.NewReader(pdf))
	if err != nil {
		return PartialInvoiceFields{}, err
	}
	req.Header.Set("Content-Type", "application/pdf")
	if e.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.APIKey)
	}

	start := time.Now()
	resp, err := e.Client.Do(ctx, req)
	result := "ok"
	if err != nil || (resp != nil && resp.StatusCode >= 400) {
		result = "error"
	}
	if obs.ExtractLatency != nil {
		obs.ExtractLatency.WithLabelValues(result).Observe(float64(time.Since(start).Milliseconds()))
	}
	if err != nil {
		return PartialInvoiceFields{}, fmt.Errorf("call extractor: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return PartialInvoiceFields{}, fmt.Errorf("extractor returned %s: %s", resp.Status, string(body))
	}
	var fields PartialInvoiceFields
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return PartialInvoiceFields{}, fmt.Errorf("decode extractor response: %w", err)
	}
	return fields, nil
}

// StaticExtractor returns fixed fields. Used in development and tests.
type StaticExtractor struct {
	Fields PartialInvoiceFields
	Err    error
}

func (e *StaticExtractor) Extract(_ context.Context, _ []byte) (PartialInvoiceFields, error) {
	return e.Fields, e.Err
}
