package sqlite

import (
	"errors"
	"time"

	"github.com/joshwmy/record-management/internal/authz"
	sessionDatamodel "github.com/joshwmy/record-management/internal/core/datamodel/session"
	"github.com/joshwmy/record-management/internal/session"
	"gorm.io/gorm"
)

// Repository implements session.Repository on the local relational store.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(s *session.Session) error {
	row := toDataModel(s)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	s.ID = row.ID
	return nil
}

func (r *Repository) GetByToken(token string) (*session.Session, error) {
	var row sessionDatamodel.Session
	err := r.db.Where("token = ?", token).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, session.ErrSessionInvalid
		}
		return nil, err
	}
	return fromDataModel(&row), nil
}

func (r *Repository) DeleteByToken(token string) error {
	// deleting a missing row is fine, logout is idempotent
	return r.db.Where("token = ?", token).Delete(&sessionDatamodel.Session{}).Error
}

func (r *Repository) DeleteExpired(now time.Time) (int64, error) {
	res := r.db.Where("expires_at < ?", now).Delete(&sessionDatamodel.Session{})
	return res.RowsAffected, res.Error
}

func toDataModel(s *session.Session) *sessionDatamodel.Session {
	return &sessionDatamodel.Session{
		ID:        s.ID,
		Username:  s.Username,
		Role:      string(s.Role),
		Token:     s.Token,
		IssuedAt:  s.IssuedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

func fromDataModel(row *sessionDatamodel.Session) *session.Session {
	return &session.Session{
		ID:        row.ID,
		Username:  row.Username,
		Role:      authz.Role(row.Role),
		Token:     row.Token,
		IssuedAt:  row.IssuedAt,
		ExpiresAt: row.ExpiresAt,
	}
}
