package models

import (
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// Complaint is the central intake record for a part order issue.
type Complaint struct {
	ID               uint                  `gorm:"primaryKey;autoIncrement"`
	CompanyID        uint                  `gorm:"column:company_id;not null;index"`
	PartID           uint                  `gorm:"column:part_id;not null;index"`
	IssueType        enums.IssueType       `gorm:"column:issue_type;type:varchar(50);not null;index"`
	Details          string                `gorm:"type:text;not null"`
	QuantityOrdered  *int                  `gorm:"column:quantity_ordered"`
	QuantityReceived *int                  `gorm:"column:quantity_received"`
	WorkOrderNumber  string                `gorm:"column:work_order_number;type:varchar(100);not null"`
	Occurrence       *string               `gorm:"type:varchar(100)"`
	PartReceived     *string               `gorm:"column:part_received;type:varchar(100)"`
	HumanFactor      bool                  `gorm:"column:human_factor;not null;default:false"`
	Status           enums.ComplaintStatus `gorm:"type:varchar(20);not null;default:open;index"`
	ComplaintKind    enums.ComplaintKind   `gorm:"column:complaint_kind;type:varchar(20);not null;default:notification"`
	DateReceived     time.Time             `gorm:"column:date_received;type:date;not null"`
	NCRNumber        *string               `gorm:"column:ncr_number;type:varchar(100)"`
	FollowUp         *string               `gorm:"column:follow_up;type:text"`
	HasAttachments   bool                  `gorm:"column:has_attachments;not null;default:false"`
	LastEditBy       *string               `gorm:"column:last_edit_by;type:varchar(255)"`
	ResolvedAt       *time.Time            `gorm:"column:resolved_at"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime"`

	Company     Company               `gorm:"foreignKey:CompanyID"`
	Part        Part                  `gorm:"foreignKey:PartID"`
	Attachments []ComplaintAttachment `gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE"`
	Actions     []FollowUpAction      `gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE"`
}
