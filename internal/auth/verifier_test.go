package auth

import (
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const testSecret = "super-secret-key"

func newTestVerifier(t *testing.T, fixed time.Time) *Verifier {
	t.Helper()
	v, err := NewVerifier(VerifierConfig{
		Secret:    testSecret,
		Issuer:    "https://id.crewpay.test",
		Audience:  "crewpay-api",
		ClockSkew: time.Second,
	})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	v.WithNow(func() time.Time { return fixed })
	return v
}

func buildProviderToken(t *testing.T, now time.Time) jwt.Token {
	t.Helper()
	token, err := jwt.NewBuilder().
		Subject("idp|4f2d").
		Issuer("https://id.crewpay.test").
		Audience([]string{"crewpay-api"}).
		IssuedAt(now).
		NotBefore(now).
		Expiration(now.Add(time.Minute)).
		Claim("email", "dev@crewpay.test").
		Claim("name", "Dev One").
		Build()
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	return token
}

func TestVerifierVerifyTokenSuccess(t *testing.T) {
	fixed := time.Now()
	v := newTestVerifier(t, fixed)

	signed, err := jwt.Sign(buildProviderToken(t, fixed), jwt.WithKey(jwa.HS256, []byte(testSecret)))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	claims, err := v.VerifyToken(string(signed))
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Subject != "idp|4f2d" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Email != "dev@crewpay.test" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if claims.Name != "Dev One" {
		t.Fatalf("unexpected name: %s", claims.Name)
	}
}

func TestVerifierRejectsAlgorithmMismatch(t *testing.T) {
	fixed := time.Now()
	v := newTestVerifier(t, fixed)

	signed, err := jwt.Sign(buildProviderToken(t, fixed), jwt.WithKey(jwa.HS384, []byte(testSecret)))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := v.VerifyToken(string(signed)); err == nil {
		t.Fatal("expected algorithm mismatch error")
	}
}

func TestVerifierRejectsExpiredToken(t *testing.T) {
	fixed := time.Now()
	v := newTestVerifier(t, fixed)

	token, err := jwt.NewBuilder().
		Subject("idp|4f2d").
		Issuer("https://id.crewpay.test").
		Audience([]string{"crewpay-api"}).
		IssuedAt(fixed.Add(-2 * time.Hour)).
		NotBefore(fixed.Add(-2 * time.Hour)).
		Expiration(fixed.Add(-time.Hour)).
		Build()
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(testSecret)))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := v.VerifyToken(string(signed)); err == nil {
		t.Fatal("expected expiration error")
	}
}

func TestVerifierRejectsWrongIssuer(t *testing.T) {
	fixed := time.Now()
	v := newTestVerifier(t, fixed)

	token, err := jwt.NewBuilder().
		Subject("idp|4f2d").
		Issuer("https://rogue.test").
		Audience([]string{"crewpay-api"}).
		IssuedAt(fixed).
		Expiration(fixed.Add(time.Minute)).
		Build()
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(testSecret)))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := v.VerifyToken(string(signed)); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}

func TestVerifierRejectsWrongSecret(t *testing.T) {
	fixed := time.Now()
	v := newTestVerifier(t, fixed)

	signed, err := jwt.Sign(buildProviderToken(t, fixed), jwt.WithKey(jwa.HS256, []byte("some-other-secret")))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := v.VerifyToken(string(signed)); err == nil {
		t.Fatal("expected signature verification error")
	}
}

func TestVerifierRejectsMissingSubject(t *testing.T) {
	fixed := time.Now()
	v := newTestVerifier(t, fixed)

	token, err := jwt.NewBuilder().
		Issuer("https://id.crewpay.test").
		Audience([]string{"crewpay-api"}).
		IssuedAt(fixed).
		Expiration(fixed.Add(time.Minute)).
		Build()
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(testSecret)))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := v.VerifyToken(string(signed)); err == nil {
		t.Fatal("expected missing subject error")
	}
}

func TestVerifierRejectsGarbage(t *testing.T) {
	v := newTestVerifier(t, time.Now())
	if _, err := v.VerifyToken("not-a-token"); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := v.VerifyToken(""); err == nil {
		t.Fatal("expected missing token error")
	}
}
