package company

import (
	"context"
	"strings"
)

type contextKey string

const companyContextKey contextKey = "company.id"

// With stores the company identifier inside the context.
func With(ctx context.Context, companyID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, companyContextKey, companyID)
}

// From extracts the company identifier from the context if available.
func From(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	companyID, ok := ctx.Value(companyContextKey).(string)
	if !ok {
		return "", false
	}
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return "", false
	}
	return companyID, true
}

// PrefixKey creates a namespaced cache key per company id.
func PrefixKey(companyID, key string) string {
	if companyID == "" {
		return key
	}
	return companyID + ":" + key
}
