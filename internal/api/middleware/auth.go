package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/worlddist/ordering-backend/internal/domain"
	"github.com/worlddist/ordering-backend/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_id"

// Auth resolves the session cookie to a user and injects it into the
// request context. Missing, unknown, and expired tokens all answer 401.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				token = cookie.Value
			}

			user, err := authService.Resolve(r.Context(), token)
			if err != nil {
				writeAuthError(w, http.StatusInternalServerError, domain.KindInternal, "internal server error")
				return
			}
			if user == nil {
				writeAuthError(w, http.StatusUnauthorized, domain.KindUnauthenticated, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated user stored by Auth.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

func writeAuthError(w http.ResponseWriter, status int, kind domain.ErrorKind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    string(kind),
			"message": message,
		},
	})
}
