package models

import "time"

// AppSetting is a key/value row holding a JSON-encoded setting.
type AppSetting struct {
	Key       string    `gorm:"primaryKey;type:varchar(255)"`
	ValueJSON string    `gorm:"column:value_json;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
	UpdatedBy string    `gorm:"column:updated_by;type:varchar(255);not null"`
}
