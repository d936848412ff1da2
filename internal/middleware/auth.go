package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/focusflow/backend/internal/web"
)

type ctxKey int

const userIDKey ctxKey = 0

// UserID returns the authenticated user id from the request context, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// TokenVerifier validates a bearer access token and returns its subject.
type TokenVerifier interface {
	VerifyAccess(token string) (string, error)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}

// RequireAuth validates the bearer access token and injects the user id
// into the request context.
func RequireAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				web.Fail(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			userID, err := tokens.VerifyAccess(token)
			if err != nil {
				web.Fail(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// OptionalAuth injects the user id when a valid bearer token is present
// but lets anonymous requests through.
func OptionalAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if userID, err := tokens.VerifyAccess(token); err == nil {
					r = r.WithContext(WithUserID(r.Context(), userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
