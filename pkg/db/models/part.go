package models

import "time"

// Part is a catalog part identified by its part number.
type Part struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	PartNumber  string    `gorm:"column:part_number;type:varchar(100);not null;uniqueIndex"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`

	Complaints []Complaint `gorm:"foreignKey:PartID"`
}
