package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crewpay/backend-crewpay/internal/common"
	"github.com/crewpay/backend-crewpay/internal/company"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/http/middleware"
)

func TestRequireCompanyMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	handler := middleware.RequireCompany(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRequireCompanyPresent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req = req.WithContext(company.With(req.Context(), "company-123"))
	rec := httptest.NewRecorder()
	handler := middleware.RequireCompany(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

type stubAdminQuerier struct {
	isAdmin bool
}

func (s stubAdminQuerier) IsCompanyAdmin(_ context.Context, _ dbgen.IsCompanyAdminParams) (bool, error) {
	return s.isAdmin, nil
}

func adminRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	ctx := company.With(req.Context(), "6a36a471-5a68-4d95-a3c5-43d10fe1a4f1")
	ctx = common.WithIdentity(ctx, common.Identity{UserID: "a81b5a54-9b1e-4c3e-9e80-80f7d3ed6c81"})
	return req.WithContext(ctx)
}

func TestRequireCompanyAdminForbidden(t *testing.T) {
	rec := httptest.NewRecorder()
	handler := middleware.RequireCompanyAdmin(stubAdminQuerier{isAdmin: false})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(rec, adminRequest())
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireCompanyAdminAllows(t *testing.T) {
	rec := httptest.NewRecorder()
	handler := middleware.RequireCompanyAdmin(stubAdminQuerier{isAdmin: true})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(rec, adminRequest())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
