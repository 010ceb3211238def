package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/techbay/auth-backend/internal/apperr"
)

const bearerPrefix = "Bearer "

type contextKey string

const userIDKey = contextKey("userID")

// UserIDFrom returns the authenticated user id stored by RequireAuth.
func UserIDFrom(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// RequireAuth creates a middleware protecting a route. It extracts the
// bearer token, verifies it and, when requireAdmin is set, checks the Admin
// role. Handlers only ever see the numeric user id via the request context.
func (j *JWT) RequireAuth(requireAdmin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, err := j.authorize(r.Header, requireAdmin)
			if err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected request")
				apperr.Write(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (j *JWT) authorize(headers http.Header, requireAdmin bool) (int, error) {
	token, err := tokenFromHeaders(headers)
	if err != nil {
		return 0, err
	}

	claims, err := j.Verify(token)
	if err != nil {
		return 0, err
	}

	if requireAdmin && claims.User.Role != RoleAdmin {
		return 0, apperr.New(apperr.Unauthorized, "Not authorized!")
	}

	return claims.User.UserID, nil
}

func tokenFromHeaders(headers http.Header) (string, error) {
	header := headers.Get("Authorization")
	if header == "" {
		return "", apperr.New(apperr.Unauthenticated, "No Authorization in header.")
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", apperr.New(apperr.Unauthenticated, "Invalid Authorization in header.")
	}
	return strings.TrimPrefix(header, bearerPrefix), nil
}
