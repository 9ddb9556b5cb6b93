package controllers

import (
	"net/http"

	"github.com/qommercehub/backoffice-backend/api/middleware"
	"github.com/qommercehub/backoffice-backend/api/responses"
	"github.com/qommercehub/backoffice-backend/pkg/config"
	pkgerrors "github.com/qommercehub/backoffice-backend/pkg/errors"
	"github.com/qommercehub/backoffice-backend/pkg/logger"
	"github.com/qommercehub/backoffice-backend/pkg/redis"
)

// AuthLogout blacklists the presented token until it would have expired
// naturally. Subsequent requests with the same token fail the auth
// middleware's revocation check.
func AuthLogout(blacklist *redis.Client, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jti := middleware.TokenIDFromContext(r.Context())
		if jti == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
			return
		}

		if blacklist != nil {
			if err := blacklist.BlacklistToken(r.Context(), jti, cfg.Expiration()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke token"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
