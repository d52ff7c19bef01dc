package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/pkg/utils"
)

type ContextKey string

const (
	UserKey      ContextKey = "user"
	SessionIDKey ContextKey = "sessionID"
)

// SessionValidator resolves a session id to its owning user, or nil when the
// session is unknown, expired or the user is inactive.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) (*domain.User, error)
}

// SessionIDFromRequest extracts the opaque session id from the Authorization
// bearer header, falling back to X-Session-ID.
func SessionIDFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return r.Header.Get("X-Session-ID")
}

// SessionMiddleware validates the request's session and injects the owning
// user into the request context.
func SessionMiddleware(validator SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := SessionIDFromRequest(r)
			if sessionID == "" {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			user, err := validator.ValidateSession(r.Context(), sessionID)
			if err != nil {
				utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if user == nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			ctx = context.WithValue(ctx, SessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware rejects non-admin users with an authorization error. It must
// run after SessionMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(UserKey).(*domain.User)
		if !ok || user.Role != domain.RoleAdmin {
			utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user injected by SessionMiddleware.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(UserKey).(*domain.User)
	return user
}
