package models

import "time"

// Company is a customer company that files complaints.
type Company struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	Complaints []Complaint `gorm:"foreignKey:CompanyID"`
}
