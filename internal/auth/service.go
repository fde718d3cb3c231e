package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/joshwmy/record-management/internal/authz"
	"github.com/joshwmy/record-management/internal/core/events"
	"github.com/joshwmy/record-management/internal/session"
	"golang.org/x/crypto/bcrypt"
)

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service is the authenticator. All credential writes for a given username
// are serialized through a per-username mutex so concurrent failed logins
// cannot lose a lockout increment.
type Service struct {
	repo          Repository
	sessions      SessionIssuer
	bus           EventPublisher
	bcryptCost    int
	lockThreshold int
	lockDuration  time.Duration

	userLocks sync.Map // username -> *sync.Mutex
}

func NewService(repo Repository, sessions SessionIssuer, bus EventPublisher, bcryptCost, lockThreshold int, lockDuration time.Duration) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:          repo,
		sessions:      sessions,
		bus:           bus,
		bcryptCost:    bcryptCost,
		lockThreshold: lockThreshold,
		lockDuration:  lockDuration,
	}
}

func (s *Service) lockFor(username string) *sync.Mutex {
	mu, _ := s.userLocks.LoadOrStore(username, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Register creates a new account with a salted bcrypt hash and a fresh
// lockout state. The plaintext password is never stored.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	mu := s.lockFor(dto.Username)
	mu.Lock()
	defer mu.Unlock()

	exists, err := s.repo.Exists(dto.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUser
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:     dto.Username,
		PasswordHash: hash,
		Role:         authz.RoleUser,
	}

	if err := s.repo.Create(u); err != nil {
		return nil, err
	}

	return u, nil
}

// Login verifies credentials and issues a session. Lockout bookkeeping:
// three consecutive failures lock the account; the lock clears itself lazily
// once its deadline passes, or eagerly through Unlock.
func (s *Service) Login(dto LoginDTO) (*session.Session, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	mu := s.lockFor(dto.Username)
	mu.Lock()
	defer mu.Unlock()

	u, err := s.repo.GetByUsername(dto.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now()
	if u.LockedUntil != nil {
		if now.Before(*u.LockedUntil) {
			return nil, &LockedError{Until: *u.LockedUntil}
		}
		// lock expired, clear it before checking the password
		u.FailedAttempts = 0
		u.LockedUntil = nil
		if err := s.repo.Update(u); err != nil {
			return nil, err
		}
	}

	if err := VerifyPassword(u.PasswordHash, dto.Password); err != nil {
		u.FailedAttempts++
		if u.FailedAttempts >= s.lockThreshold {
			until := now.Add(s.lockDuration)
			u.LockedUntil = &until
		}
		if err := s.repo.Update(u); err != nil {
			return nil, err
		}
		if u.LockedUntil != nil && s.bus != nil {
			_ = s.bus.Publish(context.Background(), events.NewAccountLockedEvent(u.Username, *u.LockedUntil))
		}
		return nil, ErrInvalidCredentials
	}

	u.FailedAttempts = 0
	u.LockedUntil = nil
	if err := s.repo.Update(u); err != nil {
		return nil, err
	}

	return s.sessions.Create(u.Username, u.Role)
}

// Unlock clears the lockout state unconditionally. Callers gate this on the
// manage-users permission.
func (s *Service) Unlock(username string) error {
	mu := s.lockFor(username)
	mu.Lock()
	defer mu.Unlock()

	u, err := s.repo.GetByUsername(username)
	if err != nil {
		return err
	}

	u.FailedAttempts = 0
	u.LockedUntil = nil
	return s.repo.Update(u)
}
