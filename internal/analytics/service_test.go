package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"

	"github.com/crewpay/backend-crewpay/internal/analytics"
	"github.com/crewpay/backend-crewpay/internal/common"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
)

type stubQueries struct {
	overviewCalls int
	volumeCalls   int
	grantCalls    int
}

func (s *stubQueries) GetCompanyInvoiceSummary(ctx context.Context, companyID pgtype.UUID) (dbgen.GetCompanyInvoiceSummaryRow, error) {
	s.overviewCalls++
	return dbgen.GetCompanyInvoiceSummaryRow{InvoiceCount: 4, TotalCents: 100000, CashCents: 80000, EquityCents: 20000}, nil
}

func (s *stubQueries) GetInvoiceVolumeRange(ctx context.Context, arg dbgen.GetInvoiceVolumeRangeParams) ([]dbgen.GetInvoiceVolumeRangeRow, error) {
	s.volumeCalls++
	return []dbgen.GetInvoiceVolumeRangeRow{{InvoiceDate: arg.StartDate, InvoiceCount: 2, TotalCents: 50000, EquityCents: 10000}}, nil
}

func (s *stubQueries) GetCompanyContractorByID(ctx context.Context, arg dbgen.GetCompanyContractorByIDParams) (dbgen.CompanyContractor, error) {
	return dbgen.CompanyContractor{ID: arg.ID, CompanyID: arg.CompanyID}, nil
}

func (s *stubQueries) GetGrantAllocationSummary(ctx context.Context, companyContractorID pgtype.UUID) ([]dbgen.GetGrantAllocationSummaryRow, error) {
	s.grantCalls++
	return []dbgen.GetGrantAllocationSummaryRow{{GrantID: companyContractorID, EffectiveYear: 2026, SharePriceCents: 250, AllocatedCents: 20000, AllocatedShares: 80}}, nil
}

func newService(t *testing.T, queries *stubQueries) *analytics.Service {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &analytics.Service{Q: queries, R: rdb, TTL: time.Minute, DefaultRange: 30}
}

func TestOverviewCached(t *testing.T) {
	queries := &stubQueries{}
	svc := newService(t, queries)
	companyID := uuid.NewString()
	first, err := svc.Overview(context.Background(), companyID)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.Overview(context.Background(), companyID)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if queries.overviewCalls != 1 {
		t.Fatalf("expected 1 DB call, got %d", queries.overviewCalls)
	}
	if first != second {
		t.Fatalf("cached row mismatch: %+v vs %+v", first, second)
	}
	if first.TotalCents != first.CashCents+first.EquityCents {
		t.Fatalf("totals not additive: %+v", first)
	}
}

func TestVolumeCachedPerRange(t *testing.T) {
	queries := &stubQueries{}
	svc := newService(t, queries)
	companyID := uuid.NewString()
	to := time.Now().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -7)
	if _, err := svc.Volume(context.Background(), companyID, from, to); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.Volume(context.Background(), companyID, from, to); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if queries.volumeCalls != 1 {
		t.Fatalf("expected 1 DB call, got %d", queries.volumeCalls)
	}
	// A different window must not reuse the cache entry.
	if _, err := svc.Volume(context.Background(), companyID, from.AddDate(0, 0, -7), to); err != nil {
		t.Fatalf("third call: %v", err)
	}
	if queries.volumeCalls != 2 {
		t.Fatalf("expected 2 DB calls, got %d", queries.volumeCalls)
	}
}

func TestGrantAllocationsRequiresValidIDs(t *testing.T) {
	queries := &stubQueries{}
	svc := newService(t, queries)
	_, err := svc.GrantAllocations(context.Background(), uuid.NewString(), "not-a-uuid")
	if err == nil {
		t.Fatal("expected error for invalid contractor id")
	}
	if !common.IsAppError(err) {
		t.Fatalf("expected app error, got %v", err)
	}
	if queries.grantCalls != 0 {
		t.Fatalf("expected no DB calls, got %d", queries.grantCalls)
	}
}
