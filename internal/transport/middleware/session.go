package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/joshwmy/record-management/internal"
	"github.com/joshwmy/record-management/internal/session"
	"github.com/joshwmy/record-management/pkg/logger"
)

// SessionValidator resolves a bearer token to a live session.
type SessionValidator interface {
	Validate(token string) (*session.Session, error)
}

// SessionAuth validates the Authorization bearer token and attaches the
// session to the request context. Requests without a valid session get 401.
func SessionAuth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			sess, err := sessions.Validate(token)
			if err != nil {
				if errors.Is(err, session.ErrSessionExpired) {
					writeAuthError(w, http.StatusUnauthorized, "session expired")
					return
				}
				writeAuthError(w, http.StatusUnauthorized, "invalid session")
				return
			}

			ctx := internal.ContextWithSession(r.Context(), sess)
			ctx = logger.With(ctx, "username", sess.Username, "role", string(sess.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return header[len(prefix):]
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    status,
		"message": message,
	})
}
