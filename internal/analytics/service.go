package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"

	"github.com/crewpay/backend-crewpay/internal/common"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
)

// Querier defines the database access required for analytics operations.
type Querier interface {
	GetCompanyInvoiceSummary(ctx context.Context, companyID pgtype.UUID) (dbgen.GetCompanyInvoiceSummaryRow, error)
	GetInvoiceVolumeRange(ctx context.Context, arg dbgen.GetInvoiceVolumeRangeParams) ([]dbgen.GetInvoiceVolumeRangeRow, error)
	GetCompanyContractorByID(ctx context.Context, arg dbgen.GetCompanyContractorByIDParams) (dbgen.CompanyContractor, error)
	GetGrantAllocationSummary(ctx context.Context, companyContractorID pgtype.UUID) ([]dbgen.GetGrantAllocationSummaryRow, error)
}

// Service provides cached read models over invoice and equity aggregates.
type Service struct {
	Q            Querier
	R            *redis.Client
	TTL          time.Duration
	DefaultRange int
	Now          func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func cacheKey(parts ...any) string {
	formatted := make([]string, 0, len(parts))
	for _, part := range parts {
		formatted = append(formatted, fmt.Sprint(part))
	}
	return strings.Join(formatted, ":")
}

// Overview returns company-wide totals across approved, pending and paid invoices.
func (s *Service) Overview(ctx context.Context, companyID string) (dbgen.GetCompanyInvoiceSummaryRow, error) {
	if s == nil || s.Q == nil {
		return dbgen.GetCompanyInvoiceSummaryRow{}, fmt.Errorf("analytics service not configured")
	}
	cID, err := common.ToUUID(companyID)
	if err != nil {
		return dbgen.GetCompanyInvoiceSummaryRow{}, fmt.Errorf("invalid company id: %w", err)
	}
	key := cacheKey("an", "overview", companyID)
	var cached dbgen.GetCompanyInvoiceSummaryRow
	if s.getFromCache(ctx, key, &cached) {
		return cached, nil
	}
	row, err := s.Q.GetCompanyInvoiceSummary(ctx, cID)
	if err != nil {
		return dbgen.GetCompanyInvoiceSummaryRow{}, err
	}
	s.store(ctx, key, row)
	return row, nil
}

// Volume returns per-day invoice counts and totals between from and to inclusive.
func (s *Service) Volume(ctx context.Context, companyID string, from, to time.Time) ([]dbgen.GetInvoiceVolumeRangeRow, error) {
	if s == nil || s.Q == nil {
		return nil, fmt.Errorf("analytics service not configured")
	}
	cID, err := common.ToUUID(companyID)
	if err != nil {
		return nil, fmt.Errorf("invalid company id: %w", err)
	}
	key := cacheKey("an", "volume", companyID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	var cached []dbgen.GetInvoiceVolumeRangeRow
	if s.getFromCache(ctx, key, &cached) {
		return cached, nil
	}
	params := dbgen.GetInvoiceVolumeRangeParams{
		CompanyID: cID,
		StartDate: pgtype.Date{Time: from, Valid: true},
		EndDate:   pgtype.Date{Time: to, Valid: true},
	}
	rows, err := s.Q.GetInvoiceVolumeRange(ctx, params)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, rows)
	return rows, nil
}

// GrantAllocations summarizes share allocations per grant for one contractor.
// The contractor must belong to the given company.
func (s *Service) GrantAllocations(ctx context.Context, companyID, contractorID string) ([]dbgen.GetGrantAllocationSummaryRow, error) {
	if s == nil || s.Q == nil {
		return nil, fmt.Errorf("analytics service not configured")
	}
	cID, err := common.ToUUID(companyID)
	if err != nil {
		return nil, fmt.Errorf("invalid company id: %w", err)
	}
	ctrID, err := common.ToUUID(contractorID)
	if err != nil {
		return nil, common.NewAppError("BAD_REQUEST", "invalid contractor id", http.StatusBadRequest, err)
	}
	contractor, err := s.Q.GetCompanyContractorByID(ctx, dbgen.GetCompanyContractorByIDParams{ID: ctrID, CompanyID: cID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewAppError("NOT_FOUND", "contractor not found", http.StatusNotFound, err)
		}
		return nil, err
	}
	key := cacheKey("an", "grants", companyID, contractorID)
	var cached []dbgen.GetGrantAllocationSummaryRow
	if s.getFromCache(ctx, key, &cached) {
		return cached, nil
	}
	rows, err := s.Q.GetGrantAllocationSummary(ctx, contractor.ID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, rows)
	return rows, nil
}

func (s *Service) getFromCache(ctx context.Context, key string, out any) bool {
	if s.R == nil || s.TTL <= 0 {
		return false
	}
	data, err := s.R.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false
	}
	return true
}

func (s *Service) store(ctx context.Context, key string, value any) {
	if s.R == nil || s.TTL <= 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = s.R.Set(ctx, key, data, s.TTL).Err()
}
