package ratelimit

import (
	"net/http/httptest"
	"testing"

	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
)

func TestKeyByCompanyOrIP(t *testing.T) {
	req := httptest.NewRequest("POST", "/v1/imports", nil)
	req.RemoteAddr = "203.0.113.7:51423"

	if key := KeyByCompanyOrIP(req); key != "ip:203.0.113.7" {
		t.Fatalf("unexpected fallback key: %q", key)
	}

	ctx := company.With(req.Context(), "acme")
	ctx = common.WithIdentity(ctx, common.Identity{UserID: "u-1"})
	scoped := req.WithContext(ctx)

	if key := KeyByCompanyOrIP(scoped); key != "acme:u-1" {
		t.Fatalf("unexpected scoped key: %q", key)
	}
}
