package models

import "time"

// ResponsiblePerson is a directory entry assignable to follow-up actions.
// Rows are deactivated rather than deleted so existing actions keep their
// assignee.
type ResponsiblePerson struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	Name       string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Email      *string   `gorm:"type:varchar(255)"`
	Department *string   `gorm:"type:varchar(100)"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
