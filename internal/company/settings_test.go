package company

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"

	"github.com/crewpay/backend-crewpay/internal/cache"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
)

type stubCompanyQuerier struct {
	company dbgen.Company
	calls   int
	err     error
}

func (s *stubCompanyQuerier) GetCompanyByID(_ context.Context, id pgtype.UUID) (dbgen.Company, error) {
	s.calls++
	if s.err != nil {
		return dbgen.Company{}, s.err
	}
	c := s.company
	c.ID = id
	return c, nil
}

func TestSettingsCacheReadThrough(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	q := &stubCompanyQuerier{company: dbgen.Company{
		Name:                      "Acme",
		Currency:                  "USD",
		EquityCompensationEnabled: true,
	}}
	sc := &SettingsCache{Q: q, Cache: cache.NewJSON(client, time.Minute)}

	ctx := context.Background()
	companyID := "4b6eead8-4b0f-41e8-aa3f-02b8e9b6293c"

	first, err := sc.Get(ctx, companyID)
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	if !first.EquityEnabled || first.Name != "Acme" {
		t.Fatalf("unexpected settings: %+v", first)
	}
	if q.calls != 1 {
		t.Fatalf("expected one query, got %d", q.calls)
	}

	second, err := sc.Get(ctx, companyID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if second != first {
		t.Fatalf("cached settings mismatch: %+v vs %+v", second, first)
	}
	if q.calls != 1 {
		t.Fatalf("expected cache hit, queries = %d", q.calls)
	}

	sc.Invalidate(ctx, companyID)
	if _, err := sc.Get(ctx, companyID); err != nil {
		t.Fatalf("get after invalidate: %v", err)
	}
	if q.calls != 2 {
		t.Fatalf("expected refetch after invalidate, queries = %d", q.calls)
	}
}

func TestSettingsCacheRejectsBadID(t *testing.T) {
	sc := &SettingsCache{Q: &stubCompanyQuerier{}}
	if _, err := sc.Get(context.Background(), "not-a-uuid"); err == nil {
		t.Fatal("expected error for malformed company id")
	}
}
