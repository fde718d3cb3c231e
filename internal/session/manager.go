package session

import (
	"fmt"
	"time"

	"github.com/joshwmy/record-management/internal/authz"
)

// Manager owns all session state. Sessions are created on login, destroyed on
// logout or expiry, and every protected operation validates through here
// before any permission check runs.
type Manager struct {
	repo   Repository
	tokens TokenGenerator
	ttl    time.Duration
}

func NewManager(repo Repository, tokens TokenGenerator, ttl time.Duration) *Manager {
	return &Manager{
		repo:   repo,
		tokens: tokens,
		ttl:    ttl,
	}
}

// Create issues a new session for a user. Each login gets an independent
// session; a second login for the same user does not displace the first.
func (m *Manager) Create(username string, role authz.Role) (*Session, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)

	token, err := m.tokens.Generate(username, role, now, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	sess := &Session{
		Username:  username,
		Role:      role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}

	if err := m.repo.Create(sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return sess, nil
}

// Validate checks the token signature, the stored session row and its expiry.
// A token that parses but has no row was revoked and is reported as invalid.
func (m *Manager) Validate(token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}

	if _, err := m.tokens.Parse(token); err != nil {
		if err == ErrSessionExpired {
			// expired token, drop the stale row as well
			_ = m.repo.DeleteByToken(token)
		}
		return nil, err
	}

	sess, err := m.repo.GetByToken(token)
	if err != nil {
		return nil, err
	}

	if time.Now().After(sess.ExpiresAt) {
		_ = m.repo.DeleteByToken(token)
		return nil, ErrSessionExpired
	}

	return sess, nil
}

// Invalidate removes a session. Invalidating an already-removed session is
// not an error.
func (m *Manager) Invalidate(token string) error {
	if token == "" {
		return nil
	}
	return m.repo.DeleteByToken(token)
}

// Sweep deletes every expired session row and returns how many were removed.
func (m *Manager) Sweep() (int64, error) {
	return m.repo.DeleteExpired(time.Now())
}
