package sqlite

import (
	"errors"
	"strings"

	"github.com/joshwmy/record-management/internal/auth"
	"github.com/joshwmy/record-management/internal/authz"
	userDatamodel "github.com/joshwmy/record-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// Repository is the credential store backed by the local relational store.
// Every mutation is an immediate committed write so lockout state survives
// process restarts.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByUsername(username string) (*auth.User, error) {
	var row userDatamodel.User
	err := r.db.Where("username = ?", username).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, storageErr(err)
	}
	return fromDataModel(&row), nil
}

func (r *Repository) Create(u *auth.User) error {
	row := toDataModel(u)
	if err := r.db.Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return auth.ErrDuplicateUser
		}
		return storageErr(err)
	}
	u.ID = row.ID
	u.CreatedAt = row.CreatedAt
	u.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *Repository) Update(u *auth.User) error {
	res := r.db.Model(&userDatamodel.User{}).
		Where("username = ?", u.Username).
		Updates(map[string]interface{}{
			"password_hash":   u.PasswordHash,
			"role":            string(u.Role),
			"failed_attempts": u.FailedAttempts,
			"locked_until":    u.LockedUntil,
		})
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (r *Repository) Exists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, storageErr(err)
	}
	return count > 0, nil
}

func toDataModel(u *auth.User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:             u.ID,
		Username:       u.Username,
		PasswordHash:   u.PasswordHash,
		Role:           string(u.Role),
		FailedAttempts: u.FailedAttempts,
		LockedUntil:    u.LockedUntil,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func fromDataModel(row *userDatamodel.User) *auth.User {
	return &auth.User{
		ID:             row.ID,
		Username:       row.Username,
		PasswordHash:   row.PasswordHash,
		Role:           authz.Role(row.Role),
		FailedAttempts: row.FailedAttempts,
		LockedUntil:    row.LockedUntil,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func storageErr(err error) error {
	return errors.Join(auth.ErrStorageUnavailable, err)
}
