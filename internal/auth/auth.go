package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/joshwmy/record-management/internal/authz"
	"github.com/joshwmy/record-management/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// User is the credential-store view of an account. The core never deletes
// users; lockout state lives here and is persisted on every change.
type User struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	PasswordHash   string     `json:"-"`
	Role           authz.Role `json:"role"`
	FailedAttempts int        `json:"failed_attempts"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Locked reports whether the account is locked at the given instant.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// ServiceAPI is what handlers and the admin user module consume.
type ServiceAPI interface {
	Register(dto RegisterDTO) (*User, error)
	Login(dto LoginDTO) (*session.Session, error)
	Unlock(username string) error
}

// Repository is the credential store contract. Implementations must persist
// every mutation immediately so lockout state survives restarts.
type Repository interface {
	// GetByUsername returns ErrUserNotFound when the username is unknown.
	GetByUsername(username string) (*User, error)
	// Create returns ErrDuplicateUser when the username is taken.
	Create(u *User) error
	Update(u *User) error
	Exists(username string) (bool, error)
}

// SessionIssuer decouples the authenticator from the session manager.
type SessionIssuer interface {
	Create(username string, role authz.Role) (*session.Session, error)
}

var (
	ErrDuplicateUser      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrStorageUnavailable = errors.New("credential store unavailable")
)

// LockedError reports a login against a locked account, including how long
// the caller has to wait.
type LockedError struct {
	Until time.Time
}

func (e *LockedError) Error() string {
	remaining := time.Until(e.Until).Round(time.Second)
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("account locked; try again in %s", remaining)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
