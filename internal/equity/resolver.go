package equity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
	"github.com/crewpay/backend-crewpay/internal/obs"
)

var (
	// ErrGrantConflict indicates more than one active grant matched a
	// contractor and year. The data is corrupt upstream; the resolver never
	// picks one silently.
	ErrGrantConflict = errors.New("multiple active equity grants for contractor year")
)

// Querier captures the database methods the equity service depends on.
type Querier interface {
	ListActiveGrantsForYear(ctx context.Context, arg dbgen.ListActiveGrantsForYearParams) ([]dbgen.EquityGrant, error)
	CountActiveGrantsForYear(ctx context.Context, arg dbgen.CountActiveGrantsForYearParams) (int64, error)
	GetAllocationByInvoice(ctx context.Context, invoiceID pgtype.UUID) (dbgen.EquityAllocation, error)
	InsertEquityAllocation(ctx context.Context, arg dbgen.InsertEquityAllocationParams) (dbgen.EquityAllocation, error)
	IncreaseGrantAllocatedCents(ctx context.Context, arg dbgen.IncreaseGrantAllocatedCentsParams) error
}

// Decision is the equity split decision for one invoice.
type Decision struct {
	Percent int32
	Grant   *dbgen.EquityGrant
}

// Service resolves equity eligibility and settles allocations against grants.
type Service struct {
	Q Querier
}

// Resolve determines the equity percentage and grant context for an invoice.
// When company equity compensation is disabled the stored contractor
// percentage is overridden to zero unconditionally. Grant lookup is scoped by
// the invoice date's calendar year, not by relationship status, so alumni
// contractors stay eligible for their historical years.
func (s *Service) Resolve(ctx context.Context, contractor dbgen.CompanyContractor, invoiceDate time.Time, companyEquityEnabled bool) (Decision, error) {
	if s == nil || s.Q == nil {
		return Decision{}, errors.New("equity service not configured")
	}
	if !companyEquityEnabled {
		if obs.EquitySplitTotal != nil {
			obs.EquitySplitTotal.WithLabelValues("disabled").Inc()
		}
		return Decision{Percent: 0}, nil
	}
	percent := contractor.EquityPercentage
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	grants, err := s.Q.ListActiveGrantsForYear(ctx, dbgen.ListActiveGrantsForYearParams{
		CompanyContractorID: contractor.ID,
		EffectiveYear:       int32(invoiceDate.Year()),
	})
	if err != nil {
		return Decision{}, err
	}
	switch len(grants) {
	case 0:
		if obs.EquitySplitTotal != nil {
			obs.EquitySplitTotal.WithLabelValues("no_grant").Inc()
		}
		return Decision{Percent: percent}, nil
	case 1:
		if obs.EquitySplitTotal != nil {
			obs.EquitySplitTotal.WithLabelValues("granted").Inc()
		}
		grant := grants[0]
		return Decision{Percent: percent, Grant: &grant}, nil
	default:
		return Decision{}, ErrGrantConflict
	}
}

// SharesFor converts an equity amount into a share count at the grant's share
// price, rounded half away from zero. The count is informational; it never
// feeds back into the cash math.
func SharesFor(grant dbgen.EquityGrant, equityCents int64) int64 {
	if grant.SharePriceCents <= 0 || equityCents <= 0 {
		return 0
	}
	shares := decimal.NewFromInt(equityCents).
		Div(decimal.NewFromInt(grant.SharePriceCents)).
		Round(0)
	return shares.IntPart()
}
