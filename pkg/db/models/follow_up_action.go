package models

import (
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// FollowUpAction is a corrective action attached to a complaint.
// ActionNumber is unique within the complaint and drives display order.
type FollowUpAction struct {
	ID                   uint                 `gorm:"primaryKey;autoIncrement"`
	ComplaintID          uint                 `gorm:"column:complaint_id;not null;uniqueIndex:idx_actions_complaint_number,priority:1"`
	ActionNumber         int                  `gorm:"column:action_number;not null;uniqueIndex:idx_actions_complaint_number,priority:2"`
	ActionText           string               `gorm:"column:action_text;type:text;not null"`
	ResponsiblePerson    string               `gorm:"column:responsible_person;type:varchar(255);not null;index"`
	DueDate              *time.Time           `gorm:"column:due_date;type:date"`
	Status               enums.ActionStatus   `gorm:"type:varchar(20);not null;default:open;index"`
	Priority             enums.ActionPriority `gorm:"type:varchar(10);not null;default:medium"`
	Notes                *string              `gorm:"type:text"`
	CompletionPercentage int                  `gorm:"column:completion_percentage;not null;default:0"`
	StartedAt            *time.Time           `gorm:"column:started_at"`
	CompletedAt          *time.Time           `gorm:"column:completed_at"`
	CreatedAt            time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	History      []ActionHistory    `gorm:"foreignKey:ActionID;constraint:OnDelete:CASCADE"`
	Dependencies []ActionDependency `gorm:"foreignKey:ActionID;constraint:OnDelete:CASCADE"`
}
