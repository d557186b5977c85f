package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"planetgen/internal/auth"
	"planetgen/internal/shared/errors"
	"planetgen/internal/shared/response"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

// JWTMiddleware authenticates requests carrying "Authorization: Bearer <jwt>"
// signed with secret.
func JWTMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := slog.With(
				"middleware", "jwt",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			token, ok := bearerToken(r)
			if !ok {
				response.Error(w, r, logger, errors.Unauthorized("authentication required"))
				return
			}

			claims, err := auth.ValidateJWT(token, secret)
			if err != nil {
				logger.Debug("Token rejected", "error", err)
				response.Error(w, r, logger, errors.Unauthorized("invalid token"))
				return
			}

			logger.Debug("JWT authentication successful", "subject", claims.Subject, "role", claims.Role)

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func GetClaimsFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(ClaimsContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
