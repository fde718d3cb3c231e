package session

import "time"

type Session struct {
	ID        int64     `gorm:"primaryKey"`
	Username  string    `gorm:"column:username;not null;index"`
	Role      string    `gorm:"column:role;not null"`
	Token     string    `gorm:"column:token;uniqueIndex;not null"`
	IssuedAt  time.Time `gorm:"column:issued_at;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index"`
}

func (Session) TableName() string {
	return "sessions"
}
