package models

import "time"

// ComplaintAttachment is a file stored on disk and linked to a complaint.
// Filename is the generated unique name, OriginalFilename what the client sent.
type ComplaintAttachment struct {
	ID               uint      `gorm:"primaryKey;autoIncrement"`
	ComplaintID      uint      `gorm:"column:complaint_id;not null;index"`
	Filename         string    `gorm:"type:varchar(255);not null"`
	OriginalFilename string    `gorm:"column:original_filename;type:varchar(255);not null"`
	FilePath         string    `gorm:"column:file_path;type:varchar(500);not null"`
	FileSize         int64     `gorm:"column:file_size;not null"`
	MimeType         string    `gorm:"column:mime_type;type:varchar(100);not null"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}
