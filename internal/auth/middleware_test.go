package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/crewpay/backend-crewpay/internal/common"
)

func newTestMiddleware(t *testing.T, fixed time.Time) Middleware {
	t.Helper()
	return Middleware{
		Verifier:   newTestVerifier(t, fixed),
		Identities: &IdentityResolver{Q: &stubUserQuerier{}, Cache: newTestSubjectCache(t)},
	}
}

func TestRequireAuthMissingToken(t *testing.T) {
	mw := newTestMiddleware(t, time.Now())

	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/invoices", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "UNAUTHORIZED") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	mw := newTestMiddleware(t, time.Now())

	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/invoices", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthResolvesIdentity(t *testing.T) {
	fixed := time.Now()
	mw := newTestMiddleware(t, fixed)

	signed, err := jwt.Sign(buildProviderToken(t, fixed), jwt.WithKey(jwa.HS256, []byte(testSecret)))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	var seen common.Identity
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.IdentityFrom(r.Context())
		if !ok {
			t.Fatal("expected identity on context")
		}
		seen = id
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/invoices", nil)
	req.Header.Set("Authorization", "Bearer "+string(signed))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if seen.Subject != "idp|4f2d" {
		t.Fatalf("unexpected subject: %s", seen.Subject)
	}
	if seen.UserID == "" {
		t.Fatal("expected resolved user id")
	}
}

func TestRequireAuthUnconfigured(t *testing.T) {
	mw := Middleware{}
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/invoices", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
