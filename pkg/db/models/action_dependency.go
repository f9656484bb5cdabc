package models

import (
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// ActionDependency links a follow-up action to a prerequisite action on
// the same complaint.
type ActionDependency struct {
	ID                uint                 `gorm:"primaryKey;autoIncrement"`
	ActionID          uint                 `gorm:"column:action_id;not null;uniqueIndex:idx_dependency_pair,priority:1"`
	DependsOnActionID uint                 `gorm:"column:depends_on_action_id;not null;uniqueIndex:idx_dependency_pair,priority:2"`
	DependencyType    enums.DependencyType `gorm:"column:dependency_type;type:varchar(20);not null;default:sequential"`
	CreatedAt         time.Time            `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the default pluralisation.
func (ActionDependency) TableName() string {
	return "action_dependencies"
}
