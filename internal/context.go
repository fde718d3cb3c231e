package internal

import (
	"context"
	"time"

	"github.com/joshwmy/record-management/internal/session"
)

type ctxKey string

const ContextSessionKey ctxKey = "session"

// SessionFromContext returns the validated session attached by the auth
// middleware, if any.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	if ctx == nil {
		return nil, false
	}
	sess, ok := ctx.Value(ContextSessionKey).(*session.Session)
	return sess, ok
}

func ContextWithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, ContextSessionKey, sess)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
