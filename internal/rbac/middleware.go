package rbac

import (
	"log/slog"
	"net/http"

	"github.com/velora-beauty/velora/internal/platform/httpx"
	"github.com/velora-beauty/velora/internal/shared"
)

// Middleware wires authorization guards for HTTP handlers. Responses stay
// generic: a 403 never reveals which permission was required.
type Middleware struct {
	Logger *slog.Logger
}

// RequirePermission rejects requests whose session lacks the permission.
// The check runs before any domain logic or audit write.
func (m Middleware) RequirePermission(perm Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			if sess == nil {
				httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !sess.HasPermission(string(perm)) {
				if m.Logger != nil {
					m.Logger.Warn("permission denied",
						slog.String("actor", sess.Email),
						slog.String("path", r.URL.Path))
				}
				httpx.Error(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects requests whose session role differs from the given
// role, regardless of the permission set. Used for the audit prune gate,
// which is restricted to admins by role rather than by permission.
func (m Middleware) RequireRole(role Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			if sess == nil {
				httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if Role(sess.Role) != role {
				if m.Logger != nil {
					m.Logger.Warn("role denied",
						slog.String("actor", sess.Email),
						slog.String("path", r.URL.Path))
				}
				httpx.Error(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
