package models

import "time"

// ActionHistory is an immutable audit row recording a single field change
// on a follow-up action.
type ActionHistory struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	ActionID     uint      `gorm:"column:action_id;not null;index"`
	FieldChanged string    `gorm:"column:field_changed;type:varchar(100);not null"`
	OldValue     *string   `gorm:"column:old_value;type:text"`
	NewValue     *string   `gorm:"column:new_value;type:text"`
	ChangedBy    string    `gorm:"column:changed_by;type:varchar(255);not null"`
	ChangeReason *string   `gorm:"column:change_reason;type:text"`
	ChangedAt    time.Time `gorm:"column:changed_at;autoCreateTime;index"`
}

// TableName overrides the default pluralisation.
func (ActionHistory) TableName() string {
	return "action_history"
}
