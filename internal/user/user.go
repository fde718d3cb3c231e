package user

import (
	"errors"
	"time"

	"github.com/joshwmy/record-management/internal/authz"
)

// Account is the administrative view of a user record. Password hashes
// never leave the repository layer.
type Account struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Role           authz.Role `json:"role"`
	FailedAttempts int        `json:"failed_attempts"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Locked reports whether the account is lock-limited at the given time.
func (a *Account) Locked(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}

var ErrNotFound = errors.New("user not found")

// Repository defines the account management data access methods.
type Repository interface {
	List(limit, offset int) ([]*Account, error)
	GetByUsername(username string) (*Account, error)
	UpdateRole(username string, role authz.Role) error
}
