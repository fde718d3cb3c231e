package user

import "time"

type User struct {
	ID             int64      `gorm:"primaryKey"`
	Username       string     `gorm:"column:username;uniqueIndex;not null"`
	PasswordHash   string     `gorm:"column:password_hash;not null"`
	Role           string     `gorm:"column:role;not null;default:user"`
	FailedAttempts int        `gorm:"column:failed_attempts;not null;default:0"`
	LockedUntil    *time.Time `gorm:"column:locked_until"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
