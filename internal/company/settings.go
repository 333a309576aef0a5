package company

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/crewpay/backend-crewpay/internal/cache"
	"github.com/crewpay/backend-crewpay/internal/common"
	dbgen "github.com/crewpay/backend-crewpay/internal/db/gen"
)

// SettingsQuerier captures the queries the settings lookup depends on.
type SettingsQuerier interface {
	GetCompanyByID(ctx context.Context, id pgtype.UUID) (dbgen.Company, error)
}

// Settings is the company configuration snapshot consulted on every invoice computation.
type Settings struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Currency      string `json:"currency"`
	EquityEnabled bool   `json:"equityEnabled"`
}

// SettingsCache resolves company settings through a Redis read-through cache.
type SettingsCache struct {
	Q     SettingsQuerier
	Cache *cache.JSON
}

// Get returns the settings for the company, preferring the cached snapshot.
func (s *SettingsCache) Get(ctx context.Context, companyID string) (Settings, error) {
	if s == nil || s.Q == nil {
		return Settings{}, errors.New("company: settings lookup not configured")
	}
	key := cache.KeyCompanySettings(companyID)
	var cached Settings
	if ok, err := s.Cache.Get(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}
	id, err := common.ToUUID(companyID)
	if err != nil {
		return Settings{}, err
	}
	row, err := s.Q.GetCompanyByID(ctx, id)
	if err != nil {
		return Settings{}, err
	}
	settings := Settings{
		ID:            common.UUIDString(row.ID),
		Name:          row.Name,
		Currency:      row.Currency,
		EquityEnabled: row.EquityCompensationEnabled,
	}
	_ = s.Cache.Set(ctx, key, settings)
	return settings, nil
}

// Invalidate drops the cached snapshot after a settings mutation.
func (s *SettingsCache) Invalidate(ctx context.Context, companyID string) {
	if s == nil {
		return
	}
	_ = s.Cache.Del(ctx, cache.KeyCompanySettings(companyID))
}
