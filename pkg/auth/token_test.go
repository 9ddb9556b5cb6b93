package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/qommercehub/backoffice-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "qommercehub",
		ExpirationMinutes: 15,
	}
}

func TestIssueAndParse(t *testing.T) {
	cfg := testJWTConfig()
	tenantID := uuid.New()

	raw, err := IssueToken(cfg, tenantID, "owner@shop.test")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := ParseToken(cfg, raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.TenantID != tenantID {
		t.Fatalf("tenant id mismatch: %s", claims.TenantID)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti for blacklist lookups")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	raw, err := IssueToken(cfg, uuid.New(), "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseToken(other, raw); err == nil {
		t.Fatal("expected signature validation to fail")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	raw, err := IssueToken(cfg, uuid.New(), "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseToken(other, raw); err == nil {
		t.Fatal("expected issuer validation to fail")
	}
}
