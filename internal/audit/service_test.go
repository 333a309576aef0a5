package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/crewpay/backend-crewpay/internal/common"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/obs"
)

type stubStore struct {
	lastInsert dbgen.InsertAuditLogParams
	called     bool
}

func (s *stubStore) InsertAuditLog(ctx context.Context, arg dbgen.InsertAuditLogParams) error {
	s.called = true
	s.lastInsert = arg
	return nil
}

func (s *stubStore) ListAuditLogsByCompany(ctx context.Context, arg dbgen.ListAuditLogsByCompanyParams) ([]dbgen.AuditLog, error) {
	return nil, nil
}

func (s *stubStore) CountAuditLogsByCompany(ctx context.Context, companyID pgtype.UUID) (int64, error) {
	return 0, nil
}

func TestServiceRecord(t *testing.T) {
	store := &stubStore{}
	svc := Service{Store: store, Enabled: true, SamplingRate: 1}
	userID := uuid.NewString()
	companyID := uuid.NewString()

	req := httptest.NewRequest(http.MethodPost, "https://api.test/api/v1/admin/invoices?status=RECEIVED", nil)
	req.Header.Set("User-Agent", "tester")
	req.Header.Set("X-Request-ID", "req-123")
	req.RemoteAddr = "10.0.0.2:54321"
	ctx := common.WithIdentity(req.Context(), common.Identity{UserID: userID})
	ctx = obs.WithRoutePattern(ctx, "/api/v1/admin/invoices")
	req = req.WithContext(ctx)

	if err := svc.Record(req.Context(), companyID, Actor{UserID: &userID}, "", "", "", req, http.StatusCreated, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	if !store.called {
		t.Fatal("expected store to be called")
	}
	if !store.lastInsert.CompanyID.Valid {
		t.Fatal("expected company id to be stored")
	}
	if !store.lastInsert.ActorUserID.Valid {
		t.Fatal("expected user id to be stored")
	}
	actualUUID, err := uuid.FromBytes(store.lastInsert.ActorUserID.Bytes[:])
	if err != nil {
		t.Fatalf("decode uuid: %v", err)
	}
	if actualUUID.String() != userID {
		t.Fatalf("unexpected stored user id: %s", actualUUID.String())
	}
	if store.lastInsert.Action != "POST /api/v1/admin/invoices" {
		t.Fatalf("unexpected action: %s", store.lastInsert.Action)
	}
	if store.lastInsert.ResourceType != "admin.invoices" {
		t.Fatalf("unexpected resource type: %s", store.lastInsert.ResourceType)
	}
	if store.lastInsert.Ip != "10.0.0.2" {
		t.Fatalf("expected ip capture, got %q", store.lastInsert.Ip)
	}
	if store.lastInsert.RequestID != "req-123" {
		t.Fatalf("expected request id, got %q", store.lastInsert.RequestID)
	}
	if len(store.lastInsert.Metadata) == 0 {
		t.Fatal("expected metadata to be set")
	}
	var meta map[string]string
	if err := json.Unmarshal(store.lastInsert.Metadata, &meta); err != nil {
		t.Fatalf("metadata json: %v", err)
	}
	if meta["query"] != "status=RECEIVED" {
		t.Fatalf("unexpected metadata query: %s", meta["query"])
	}
}

func TestServiceRecordDisabled(t *testing.T) {
	store := &stubStore{}
	svc := Service{Store: store, Enabled: false}
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if err := svc.Record(req.Context(), uuid.NewString(), Actor{}, "", "", "", req, http.StatusOK, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	if store.called {
		t.Fatal("expected no insert when disabled")
	}
}

func TestServiceRecordRequiresCompany(t *testing.T) {
	store := &stubStore{}
	svc := Service{Store: store, Enabled: true}
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if err := svc.Record(req.Context(), "not-a-uuid", Actor{}, "", "", "", req, http.StatusOK, nil); err == nil {
		t.Fatal("expected error for invalid company id")
	}
	if store.called {
		t.Fatal("expected no insert without a company")
	}
}
