package models

import (
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// User represents a login identity for the intake application.
type User struct {
	ID           uint           `gorm:"primaryKey;autoIncrement"`
	Email        string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	FullName     string         `gorm:"column:full_name;type:varchar(255);not null"`
	Role         enums.UserRole `gorm:"type:varchar(20);not null;default:member"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	FailedLoginCount  int        `gorm:"column:failed_login_count;not null;default:0"`
	LastFailedLoginAt *time.Time `gorm:"column:last_failed_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
