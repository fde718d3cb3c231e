package middleware

import (
	"net/http"

	"github.com/joshwmy/record-management/internal"
	"github.com/joshwmy/record-management/internal/authz"
)

// Require gates a route on one role-based permission. It expects SessionAuth
// to have run already; a missing session denies the request.
func Require(domain authz.Domain, action authz.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := internal.SessionFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if !authz.Can(sess.Role, domain, action) {
				writeAuthError(w, http.StatusForbidden, "permission denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
