package actions

import (
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// ActionDTO exposes a follow-up action.
type ActionDTO struct {
	ID                   uint                 `json:"id"`
	ComplaintID          uint                 `json:"complaint_id"`
	ActionNumber         int                  `json:"action_number"`
	ActionText           string               `json:"action_text"`
	ResponsiblePerson    string               `json:"responsible_person"`
	DueDate              *time.Time           `json:"due_date"`
	Status               enums.ActionStatus   `json:"status"`
	Priority             enums.ActionPriority `json:"priority"`
	Notes                *string              `json:"notes"`
	CompletionPercentage int                  `json:"completion_percentage"`
	StartedAt            *time.Time           `json:"started_at"`
	CompletedAt          *time.Time           `json:"completed_at"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// HistoryDTO exposes one audit row.
type HistoryDTO struct {
	ID           uint      `json:"id"`
	ActionID     uint      `json:"action_id"`
	FieldChanged string    `json:"field_changed"`
	OldValue     *string   `json:"old_value"`
	NewValue     *string   `json:"new_value"`
	ChangedBy    string    `json:"changed_by"`
	ChangeReason *string   `json:"change_reason"`
	ChangedAt    time.Time `json:"changed_at"`
}

// DependencyDTO exposes a prerequisite link between two actions.
type DependencyDTO struct {
	ID                uint                 `json:"id"`
	ActionID          uint                 `json:"action_id"`
	DependsOnActionID uint                 `json:"depends_on_action_id"`
	DependencyType    enums.DependencyType `json:"dependency_type"`
	CreatedAt         time.Time            `json:"created_at"`
}

// MetricsDTO summarizes a complaint's actions for the dashboard.
type MetricsDTO struct {
	TotalActions      int            `json:"total_actions"`
	OpenActions       int            `json:"open_actions"`
	OverdueActions    int            `json:"overdue_actions"`
	CompletionRate    float64        `json:"completion_rate"`
	ActionsByStatus   map[string]int `json:"actions_by_status"`
	ActionsByPriority map[string]int `json:"actions_by_priority"`
}

// BulkUpdateResultDTO reports the outcome of a bulk update.
type BulkUpdateResultDTO struct {
	UpdatedCount  int                `json:"updated_count"`
	FailedUpdates []BulkUpdateFailed `json:"failed_updates"`
}

// BulkUpdateFailed names one action that could not be updated.
type BulkUpdateFailed struct {
	ActionID uint   `json:"action_id"`
	Error    string `json:"error"`
}

// FromModel maps the persisted action into a DTO.
func FromModel(m *models.FollowUpAction) *ActionDTO {
	if m == nil {
		return nil
	}
	return &ActionDTO{
		ID:                   m.ID,
		ComplaintID:          m.ComplaintID,
		ActionNumber:         m.ActionNumber,
		ActionText:           m.ActionText,
		ResponsiblePerson:    m.ResponsiblePerson,
		DueDate:              m.DueDate,
		Status:               m.Status,
		Priority:             m.Priority,
		Notes:                m.Notes,
		CompletionPercentage: m.CompletionPercentage,
		StartedAt:            m.StartedAt,
		CompletedAt:          m.CompletedAt,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// FromModels maps a slice of actions into DTOs.
func FromModels(rows []models.FollowUpAction) []ActionDTO {
	out := make([]ActionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func historyFromModel(m *models.ActionHistory) *HistoryDTO {
	return &HistoryDTO{
		ID:           m.ID,
		ActionID:     m.ActionID,
		FieldChanged: m.FieldChanged,
		OldValue:     m.OldValue,
		NewValue:     m.NewValue,
		ChangedBy:    m.ChangedBy,
		ChangeReason: m.ChangeReason,
		ChangedAt:    m.ChangedAt,
	}
}

func historyFromModels(rows []models.ActionHistory) []HistoryDTO {
	out := make([]HistoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *historyFromModel(&rows[i]))
	}
	return out
}

func dependencyFromModel(m *models.ActionDependency) *DependencyDTO {
	return &DependencyDTO{
		ID:                m.ID,
		ActionID:          m.ActionID,
		DependsOnActionID: m.DependsOnActionID,
		DependencyType:    m.DependencyType,
		CreatedAt:         m.CreatedAt,
	}
}

func dependencyFromModels(rows []models.ActionDependency) []DependencyDTO {
	out := make([]DependencyDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *dependencyFromModel(&rows[i]))
	}
	return out
}
