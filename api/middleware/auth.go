package middleware

import (
	"net/http"
	"strings"

	"github.com/qommercehub/backoffice-backend/api/responses"
	pkgAuth "github.com/qommercehub/backoffice-backend/pkg/auth"
	"github.com/qommercehub/backoffice-backend/pkg/config"
	pkgerrors "github.com/qommercehub/backoffice-backend/pkg/errors"
	"github.com/qommercehub/backoffice-backend/pkg/logger"
	"github.com/qommercehub/backoffice-backend/pkg/redis"
)

// Auth validates the bearer token, rejects revoked tokens and seeds the
// request context with the tenant identity. Every tenant-scoped route sits
// behind this; handlers never read tenant ids from the request payload.
func Auth(cfg config.JWTConfig, blacklist *redis.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if blacklist != nil && claims.ID != "" {
				revoked, err := blacklist.IsTokenBlacklisted(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check token revocation"))
					return
				}
				if revoked {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token revoked"))
					return
				}
			}

			ctx := WithTenantID(r.Context(), claims.TenantID)
			ctx = WithTokenID(ctx, claims.ID)
			ctx = WithEmail(ctx, claims.Email)

			if logg != nil {
				ctx = logg.WithTenantID(ctx, claims.TenantID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
