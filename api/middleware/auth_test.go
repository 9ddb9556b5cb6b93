package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/qommercehub/backoffice-backend/pkg/auth"
	"github.com/qommercehub/backoffice-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "qommercehub",
		ExpirationMinutes: 5,
	}
}

func authHarness(t *testing.T, cfg config.JWTConfig) (http.Handler, *uuid.UUID) {
	t.Helper()
	var seen uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TenantIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	return Auth(cfg, nil, nil)(next), &seen
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler, _ := authHarness(t, testJWTConfig())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsMalformedToken(t *testing.T) {
	handler, _ := authHarness(t, testJWTConfig())

	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	r.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	other := cfg
	other.Secret = "different-secret"

	token, err := pkgAuth.IssueToken(other, uuid.New(), "ops@example.com")
	require.NoError(t, err)

	handler, _ := authHarness(t, cfg)
	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthSeedsTenantContext(t *testing.T) {
	cfg := testJWTConfig()
	tenantID := uuid.New()

	token, err := pkgAuth.IssueToken(cfg, tenantID, "ops@example.com")
	require.NoError(t, err)

	handler, seen := authHarness(t, cfg)
	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, tenantID, *seen)
}
