package sqlite

import (
	"errors"

	"github.com/joshwmy/record-management/internal/authz"
	userDatamodel "github.com/joshwmy/record-management/internal/core/datamodel/user"
	"github.com/joshwmy/record-management/internal/user"
	"gorm.io/gorm"
)

// Repository implements user.Repository on the local relational store.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(limit, offset int) ([]*user.Account, error) {
	var rows []userDatamodel.User
	err := r.db.Order("username ASC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	accounts := make([]*user.Account, len(rows))
	for i := range rows {
		accounts[i] = fromDataModel(&rows[i])
	}
	return accounts, nil
}

func (r *Repository) GetByUsername(username string) (*user.Account, error) {
	var row userDatamodel.User
	err := r.db.Where("username = ?", username).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return fromDataModel(&row), nil
}

func (r *Repository) UpdateRole(username string, role authz.Role) error {
	res := r.db.Model(&userDatamodel.User{}).Where("username = ?", username).Update("role", string(role))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func fromDataModel(row *userDatamodel.User) *user.Account {
	return &user.Account{
		ID:             row.ID,
		Username:       row.Username,
		Role:           authz.Role(row.Role),
		FailedAttempts: row.FailedAttempts,
		LockedUntil:    row.LockedUntil,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
