package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/crewpay/backend-crewpay/internal/cache"
	"github.com/crewpay/backend-crewpay/internal/common"
	db "github.com/crewpay/backend-crewpay/internal/db/gen"
)

// UserQuerier is the subset of generated queries identity resolution needs.
type UserQuerier interface {
	UpsertUserBySubject(ctx context.Context, arg db.UpsertUserBySubjectParams) (db.User, error)
}

// IdentityResolver maps verified token claims onto local user rows,
// provisioning the row on first sight of a subject. Resolved identities are
// cached by a hash of the subject so the hot path skips the database.
type IdentityResolver struct {
	Q     UserQuerier
	Cache *cache.JSON
}

type cachedIdentity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Resolve returns the local identity for the supplied claims.
func (r *IdentityResolver) Resolve(ctx context.Context, claims Claims) (common.Identity, error) {
	if r == nil || r.Q == nil {
		return common.Identity{}, errors.New("auth: identity resolver not configured")
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return common.Identity{}, common.NewAppError("UNAUTHORIZED", "token subject is required", httpStatusUnauthorized, nil)
	}

	key := cache.KeyAuthSubject(hashSubject(subject))
	var cached cachedIdentity
	if ok, err := r.Cache.Get(ctx, key, &cached); err == nil && ok && cached.UserID != "" {
		return common.Identity{UserID: cached.UserID, Subject: subject, Email: cached.Email}, nil
	}

	user, err := r.Q.UpsertUserBySubject(ctx, db.UpsertUserBySubjectParams{
		ExternalSubject: subject,
		Email:           strings.ToLower(strings.TrimSpace(claims.Email)),
		DisplayName:     strings.TrimSpace(claims.Name),
	})
	if err != nil {
		return common.Identity{}, fmt.Errorf("upsert user by subject: %w", err)
	}

	identity := common.Identity{
		UserID:  common.UUIDString(user.ID),
		Subject: subject,
		Email:   user.Email,
	}
	if identity.UserID == "" {
		return common.Identity{}, errors.New("auth: invalid user identifier")
	}

	_ = r.Cache.Set(ctx, key, cachedIdentity{UserID: identity.UserID, Email: identity.Email})
	return identity, nil
}

func hashSubject(subject string) string {
	sum := sha256.Sum256([]byte(subject))
	return hex.EncodeToString(sum[:])
}
