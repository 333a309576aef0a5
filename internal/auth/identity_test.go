package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"

	"github.com/crewpay/backend-crewpay/internal/cache"
	db "github.com/crewpay/backend-crewpay/internal/db/gen"
)

type stubUserQuerier struct {
	calls int
	err   error
}

func (s *stubUserQuerier) UpsertUserBySubject(_ context.Context, arg db.UpsertUserBySubjectParams) (db.User, error) {
	s.calls++
	if s.err != nil {
		return db.User{}, s.err
	}
	return db.User{
		ID:              pgtype.UUID{Bytes: uuid.MustParse("c0ff33aa-0000-4000-8000-000000000001"), Valid: true},
		ExternalSubject: arg.ExternalSubject,
		Email:           arg.Email,
		DisplayName:     arg.DisplayName,
	}, nil
}

func newTestSubjectCache(t *testing.T) *cache.JSON {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewJSON(client, time.Minute)
}

func TestIdentityResolverProvisionsAndCaches(t *testing.T) {
	queries := &stubUserQuerier{}
	resolver := &IdentityResolver{Q: queries, Cache: newTestSubjectCache(t)}

	claims := Claims{Subject: "idp|4f2d", Email: "Dev@crewpay.test", Name: "Dev One"}

	identity, err := resolver.Resolve(context.Background(), claims)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if identity.UserID == "" {
		t.Fatal("expected user id")
	}
	if identity.Subject != "idp|4f2d" {
		t.Fatalf("unexpected subject: %s", identity.Subject)
	}
	if identity.Email != "dev@crewpay.test" {
		t.Fatalf("expected normalised email, got %s", identity.Email)
	}
	if queries.calls != 1 {
		t.Fatalf("expected one upsert, got %d", queries.calls)
	}

	again, err := resolver.Resolve(context.Background(), claims)
	if err != nil {
		t.Fatalf("resolve cached: %v", err)
	}
	if again.UserID != identity.UserID {
		t.Fatalf("cached identity mismatch: %s vs %s", again.UserID, identity.UserID)
	}
	if queries.calls != 1 {
		t.Fatalf("expected cache hit, got %d upserts", queries.calls)
	}
}

func TestIdentityResolverWorksWithoutCache(t *testing.T) {
	queries := &stubUserQuerier{}
	resolver := &IdentityResolver{Q: queries}

	if _, err := resolver.Resolve(context.Background(), Claims{Subject: "idp|nocache"}); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := resolver.Resolve(context.Background(), Claims{Subject: "idp|nocache"}); err != nil {
		t.Fatalf("resolve twice: %v", err)
	}
	if queries.calls != 2 {
		t.Fatalf("expected two upserts without cache, got %d", queries.calls)
	}
}

func TestIdentityResolverRequiresSubject(t *testing.T) {
	resolver := &IdentityResolver{Q: &stubUserQuerier{}}
	if _, err := resolver.Resolve(context.Background(), Claims{Subject: "   "}); err == nil {
		t.Fatal("expected subject error")
	}
}
