package middleware

import (
	"errors"
	"net/http"

	"github.com/AnshRaj112/goexplore-backend/internal/common"
	"github.com/AnshRaj112/goexplore-backend/internal/logging"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"github.com/AnshRaj112/goexplore-backend/internal/services"
)

// RequireSession verifies the session cookie and attaches the principal to the request
// context. The user record is not consulted.
func RequireSession(sessions *services.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(services.SessionCookieName)
			if err != nil || cookie.Value == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			p, err := sessions.Verify(r.Context(), cookie.Value)
			switch {
			case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrMissingToken):
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			case err != nil:
				logging.FromContext(r.Context()).Error("session verification failed", "error", err)
				writeError(w, http.StatusServiceUnavailable, "Session store unavailable")
				return
			}

			ctx := services.WithPrincipal(r.Context(), p)
			ctx = logging.WithLogger(ctx, logging.FromContext(ctx).With("session_email", p.Email))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin looks up the caller's role. It must run after RequireSession.
func RequireAdmin(users services.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := services.PrincipalFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			user, err := users.FindByEmail(r.Context(), p.Email)
			if errors.Is(err, common.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if err != nil {
				logging.FromContext(r.Context()).Error("role lookup failed", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if user.Role != models.RoleAdmin {
				writeError(w, http.StatusForbidden, "Forbidden access")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminIf applies RequireAdmin only when enabled.
func AdminIf(enabled bool, users services.UserStore) func(http.Handler) http.Handler {
	if !enabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return RequireAdmin(users)
}
