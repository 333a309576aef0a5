package equity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
)

type stubQuerier struct {
	grants      []dbgen.EquityGrant
	grantsErr   error
	listedYear  int32
	allocation  *dbgen.EquityAllocation
	inserted    []dbgen.InsertEquityAllocationParams
	increased   []dbgen.IncreaseGrantAllocatedCentsParams
	activeCount int64
}

func (s *stubQuerier) ListActiveGrantsForYear(_ context.Context, arg dbgen.ListActiveGrantsForYearParams) ([]dbgen.EquityGrant, error) {
	s.listedYear = arg.EffectiveYear
	if s.grantsErr != nil {
		return nil, s.grantsErr
	}
	var matched []dbgen.EquityGrant
	for _, g := range s.grants {
		if g.EffectiveYear == arg.EffectiveYear {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

func (s *stubQuerier) CountActiveGrantsForYear(context.Context, dbgen.CountActiveGrantsForYearParams) (int64, error) {
	return s.activeCount, nil
}

func (s *stubQuerier) GetAllocationByInvoice(context.Context, pgtype.UUID) (dbgen.EquityAllocation, error) {
	if s.allocation != nil {
		return *s.allocation, nil
	}
	return dbgen.EquityAllocation{}, pgx.ErrNoRows
}

func (s *stubQuerier) InsertEquityAllocation(_ context.Context, arg dbgen.InsertEquityAllocationParams) (dbgen.EquityAllocation, error) {
	s.inserted = append(s.inserted, arg)
	return dbgen.EquityAllocation{EquityGrantID: arg.EquityGrantID, InvoiceID: arg.InvoiceID, AmountCents: arg.AmountCents, ShareCount: arg.ShareCount}, nil
}

func (s *stubQuerier) IncreaseGrantAllocatedCents(_ context.Context, arg dbgen.IncreaseGrantAllocatedCentsParams) error {
	s.increased = append(s.increased, arg)
	return nil
}

func newUUID(t *testing.T) pgtype.UUID {
	t.Helper()
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func newContractor(t *testing.T, percent int32) dbgen.CompanyContractor {
	t.Helper()
	return dbgen.CompanyContractor{ID: newUUID(t), EquityPercentage: percent}
}

func TestResolveEquityDisabledOverridesStoredPercent(t *testing.T) {
	q := &stubQuerier{}
	svc := &Service{Q: q}
	contractor := newContractor(t, 20)

	decision, err := svc.Resolve(context.Background(), contractor, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), false)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if decision.Percent != 0 {
		t.Fatalf("expected percent 0 when equity disabled, got %d", decision.Percent)
	}
	if decision.Grant != nil {
		t.Fatalf("expected no grant context when equity disabled")
	}
	if q.listedYear != 0 {
		t.Fatalf("grant lookup should be skipped when equity disabled")
	}
}

func TestResolveScopesGrantsByInvoiceYear(t *testing.T) {
	contractor := newContractor(t, 20)
	grant2021 := dbgen.EquityGrant{ID: newUUID(t), CompanyContractorID: contractor.ID, EffectiveYear: 2021, SharePriceCents: 500}
	q := &stubQuerier{grants: []dbgen.EquityGrant{grant2021}}
	svc := &Service{Q: q}

	decision, err := svc.Resolve(context.Background(), contractor, time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC), true)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if decision.Percent != 20 {
		t.Fatalf("expected stored percent 20, got %d", decision.Percent)
	}
	if decision.Grant == nil || decision.Grant.EffectiveYear != 2021 {
		t.Fatalf("expected 2021 grant context, got %+v", decision.Grant)
	}

	// A grant recorded for 2021 must not attach to a 2022 invoice.
	decision, err = svc.Resolve(context.Background(), contractor, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), true)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if decision.Grant != nil {
		t.Fatalf("grant for year 2021 leaked into 2022 invoice")
	}
	if decision.Percent != 20 {
		t.Fatalf("percent should still come from the contractor, got %d", decision.Percent)
	}
}

func TestResolveAlumniContractorStaysEligible(t *testing.T) {
	contractor := newContractor(t, 15)
	contractor.EndedAt = pgtype.Timestamptz{Time: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), Valid: true}
	grant := dbgen.EquityGrant{ID: newUUID(t), CompanyContractorID: contractor.ID, EffectiveYear: 2021, SharePriceCents: 100}
	svc := &Service{Q: &stubQuerier{grants: []dbgen.EquityGrant{grant}}}

	decision, err := svc.Resolve(context.Background(), contractor, time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC), true)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if decision.Grant == nil {
		t.Fatalf("ended relationship must not block a historical equity year")
	}
}

func TestResolveRejectsConflictingGrants(t *testing.T) {
	contractor := newContractor(t, 10)
	q := &stubQuerier{grants: []dbgen.EquityGrant{
		{ID: newUUID(t), CompanyContractorID: contractor.ID, EffectiveYear: 2023},
		{ID: newUUID(t), CompanyContractorID: contractor.ID, EffectiveYear: 2023},
	}}
	svc := &Service{Q: q}

	_, err := svc.Resolve(context.Background(), contractor, time.Date(2023, 5, 5, 0, 0, 0, 0, time.UTC), true)
	if !errors.Is(err, ErrGrantConflict) {
		t.Fatalf("expected ErrGrantConflict, got %v", err)
	}
}

func TestResolveClampsStoredPercent(t *testing.T) {
	svc := &Service{Q: &stubQuerier{}}

	decision, err := svc.Resolve(context.Background(), newContractor(t, 130), time.Now(), true)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if decision.Percent != 100 {
		t.Fatalf("expected percent clamped to 100, got %d", decision.Percent)
	}
}

func TestSharesForRoundsHalfUp(t *testing.T) {
	grant := dbgen.EquityGrant{SharePriceCents: 300}
	cases := []struct {
		amount int64
		want   int64
	}{
		{amount: 0, want: 0},
		{amount: 300, want: 1},
		{amount: 450, want: 2},  // 1.5 rounds up
		{amount: 440, want: 1},  // 1.46 rounds down
		{amount: 1200, want: 4},
	}
	for _, tc := range cases {
		if got := SharesFor(grant, tc.amount); got != tc.want {
			t.Fatalf("SharesFor(%d) = %d, want %d", tc.amount, got, tc.want)
		}
	}
	if got := SharesFor(dbgen.EquityGrant{SharePriceCents: 0}, 100); got != 0 {
		t.Fatalf("zero share price must yield zero shares, got %d", got)
	}
}
