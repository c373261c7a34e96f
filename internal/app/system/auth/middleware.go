package auth

import (
	"errors"
	"net/http"

	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// RequireAdmin returns middleware that rejects requests without a valid
// admin bearer token.
//
// Usage in routes.go:
//
//	r.Group(func(r chi.Router) {
//	    r.Use(auth.RequireAdmin(tokens, logger))
//	    r.Post("/", h.update)
//	})
//
// Absent, malformed, expired or badly signed tokens get 401 with the
// standard failure envelope. Valid claims are available via CurrentAdmin.
func RequireAdmin(tm *TokenManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := BearerToken(r)
			if !ok {
				logger.Debug("admin request rejected: missing or malformed Authorization header",
					zap.String("path", r.URL.Path),
				)
				jsonutil.Fail(w, apperr.Unauthorized("Unauthorized"))
				return
			}

			claims, err := tm.Verify(tok)
			if err != nil {
				if errors.Is(err, ErrExpiredToken) {
					logger.Debug("admin request rejected: token expired",
						zap.String("path", r.URL.Path),
					)
				} else {
					logger.Warn("admin request rejected: invalid token",
						zap.String("path", r.URL.Path),
						zap.String("remote_addr", r.RemoteAddr),
					)
				}
				jsonutil.Fail(w, apperr.Unauthorized("Unauthorized"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), claims)))
		})
	}
}
