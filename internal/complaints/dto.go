package complaints

import (
	"time"

	"github.com/partsdesk/partsdesk-backend/internal/companies"
	"github.com/partsdesk/partsdesk-backend/internal/parts"
	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// ComplaintDTO exposes a complaint with its company and part expanded.
type ComplaintDTO struct {
	ID               uint                  `json:"id"`
	Company          companies.CompanyDTO  `json:"company"`
	Part             parts.PartDTO         `json:"part"`
	IssueType        enums.IssueType       `json:"issue_type"`
	Details          string                `json:"details"`
	QuantityOrdered  *int                  `json:"quantity_ordered"`
	QuantityReceived *int                  `json:"quantity_received"`
	WorkOrderNumber  string                `json:"work_order_number"`
	Occurrence       *string               `json:"occurrence"`
	PartReceived     *string               `json:"part_received"`
	HumanFactor      bool                  `json:"human_factor"`
	Status           enums.ComplaintStatus `json:"status"`
	ComplaintKind    enums.ComplaintKind   `json:"complaint_kind"`
	DateReceived     time.Time             `json:"date_received"`
	NCRNumber        *string               `json:"ncr_number"`
	FollowUp         *string               `json:"follow_up"`
	HasAttachments   bool                  `json:"has_attachments"`
	LastEditBy       *string               `json:"last_edit_by"`
	ResolvedAt       *time.Time            `json:"resolved_at"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// FromModel maps the persisted complaint into a DTO. Company and Part are
// expected to be preloaded.
func FromModel(m *models.Complaint) *ComplaintDTO {
	if m == nil {
		return nil
	}
	return &ComplaintDTO{
		ID:               m.ID,
		Company:          *companies.FromModel(&m.Company),
		Part:             *parts.FromModel(&m.Part),
		IssueType:        m.IssueType,
		Details:          m.Details,
		QuantityOrdered:  m.QuantityOrdered,
		QuantityReceived: m.QuantityReceived,
		WorkOrderNumber:  m.WorkOrderNumber,
		Occurrence:       m.Occurrence,
		PartReceived:     m.PartReceived,
		HumanFactor:      m.HumanFactor,
		Status:           m.Status,
		ComplaintKind:    m.ComplaintKind,
		DateReceived:     m.DateReceived,
		NCRNumber:        m.NCRNumber,
		FollowUp:         m.FollowUp,
		HasAttachments:   m.HasAttachments,
		LastEditBy:       m.LastEditBy,
		ResolvedAt:       m.ResolvedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FromModels maps a slice of complaints into DTOs.
func FromModels(rows []models.Complaint) []ComplaintDTO {
	out := make([]ComplaintDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
